package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lovico/lovico-server/internal/domain"
	"github.com/lovico/lovico-server/internal/repository"
	"github.com/lovico/lovico-server/internal/schema"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ChatService stores chat turns for a project. Assistant replies are mocked
// server-side; no model is called.
type ChatService struct {
	messageRepo repository.MessageRepository
	projectRepo repository.ProjectRepository
}

func NewChatService(messageRepo repository.MessageRepository, projectRepo repository.ProjectRepository) *ChatService {
	return &ChatService{
		messageRepo: messageRepo,
		projectRepo: projectRepo,
	}
}

func (s *ChatService) ListMessages(ctx context.Context, userID, projectID uuid.UUID) ([]*domain.Message, error) {
	owned, err := s.projectRepo.ExistsForUser(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, domain.ErrNotFound
	}
	return s.messageRepo.ListByProjectID(ctx, projectID)
}

// SendMessage validates and stores the user turn, then stores and returns a
// canned assistant turn alongside it.
func (s *ChatService) SendMessage(ctx context.Context, userID uuid.UUID, input schema.ChatRequest) (*domain.Message, *domain.Message, error) {
	if err := input.Validate(); err != nil {
		return nil, nil, err
	}

	owned, err := s.projectRepo.ExistsForUser(ctx, input.ProjectID, userID)
	if err != nil {
		return nil, nil, err
	}
	if !owned {
		return nil, nil, domain.ErrNotFound
	}

	if input.ParentMessageID != nil {
		parent, err := s.messageRepo.GetByID(ctx, *input.ParentMessageID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, domain.ErrNotFound
			}
			return nil, nil, err
		}
		if parent.ProjectID != input.ProjectID {
			// A parent in someone else's project must look exactly like a
			// nonexistent id; only the caller's own cross-project mistake is
			// named as such.
			parentOwned, err := s.projectRepo.ExistsForUser(ctx, parent.ProjectID, userID)
			if err != nil {
				return nil, nil, err
			}
			if !parentOwned {
				return nil, nil, domain.ErrNotFound
			}
			return nil, nil, domain.ErrParentMessageMismatch
		}
	}

	userMsg := &domain.Message{
		ID:              uuid.New(),
		ProjectID:       input.ProjectID,
		Role:            domain.MessageRoleUser,
		Content:         input.Message,
		Model:           input.Model,
		ParentMessageID: input.ParentMessageID,
		CreatedAt:       time.Now(),
	}
	if len(input.Attachments) > 0 {
		blob, err := json.Marshal(input.Attachments)
		if err != nil {
			return nil, nil, err
		}
		userMsg.Attachments = datatypes.JSON(blob)
	}

	if err := s.messageRepo.Create(ctx, userMsg); err != nil {
		return nil, nil, err
	}

	reply := &domain.Message{
		ID:              uuid.New(),
		ProjectID:       input.ProjectID,
		Role:            domain.MessageRoleAssistant,
		Content:         mockReply(input.Message),
		Model:           input.Model,
		ParentMessageID: &userMsg.ID,
		CreatedAt:       time.Now(),
	}
	if err := s.messageRepo.Create(ctx, reply); err != nil {
		return nil, nil, err
	}

	return userMsg, reply, nil
}

// mockReply stands in for model output until real generation is wired up.
func mockReply(prompt string) string {
	short := prompt
	if len(short) > 80 {
		short = short[:80] + "..."
	}
	return fmt.Sprintf(
		"I've started working on %q. The preview will update once the generated code is ready. "+
			"You can refine the result by describing what you'd like changed.",
		short,
	)
}
