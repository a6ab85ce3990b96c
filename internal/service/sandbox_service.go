package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/lovico/lovico-server/internal/config"
	"github.com/lovico/lovico-server/internal/domain"
	"github.com/lovico/lovico-server/internal/repository"
	"gorm.io/gorm"
)

// SandboxService tracks mock preview environments. Lifecycle bookkeeping is
// real (statuses, expiry, ownership); the sandbox itself is not.
type SandboxService struct {
	sandboxRepo repository.SandboxRepository
	projectRepo repository.ProjectRepository
	cfg         *config.Config
}

func NewSandboxService(sandboxRepo repository.SandboxRepository, projectRepo repository.ProjectRepository, cfg *config.Config) *SandboxService {
	return &SandboxService{
		sandboxRepo: sandboxRepo,
		projectRepo: projectRepo,
		cfg:         cfg,
	}
}

// Start provisions a preview for an owned project. An existing live sandbox
// is reused instead of stacking a second one.
func (s *SandboxService) Start(ctx context.Context, userID, projectID uuid.UUID) (*domain.Sandbox, error) {
	project, err := s.projectRepo.GetByIDForUser(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if existing, err := s.sandboxRepo.GetRunningByProjectID(ctx, projectID); err == nil {
		if !existing.Expired(time.Now()) {
			return existing, nil
		}
		// Reap through the state machine: running winds down to stopped, a
		// sandbox that expired while still starting can only fault.
		reaped := domain.SandboxStopped
		if existing.Status != domain.SandboxRunning {
			reaped = domain.SandboxError
		}
		if err := s.transition(ctx, existing, reaped); err != nil {
			return nil, err
		}
	}

	port := 42000 + rand.IntN(2000)
	now := time.Now()
	sandbox := &domain.Sandbox{
		ID:        uuid.New(),
		ProjectID: projectID,
		URL:       fmt.Sprintf("http://localhost:%d", port),
		Status:    domain.SandboxStarting,
		Framework: project.Framework,
		Port:      port,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.SandboxTTL),
	}

	if err := s.sandboxRepo.Create(ctx, sandbox); err != nil {
		return nil, err
	}

	// No real environment boots, so the sandbox is promoted immediately.
	if err := s.transition(ctx, sandbox, domain.SandboxRunning); err != nil {
		return nil, err
	}
	return sandbox, nil
}

func (s *SandboxService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Sandbox, error) {
	sandbox, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	// Expired previews are reaped lazily on read.
	if sandbox.Status == domain.SandboxRunning && sandbox.Expired(time.Now()) {
		if err := s.transition(ctx, sandbox, domain.SandboxStopped); err != nil {
			return nil, err
		}
	}
	return sandbox, nil
}

func (s *SandboxService) Stop(ctx context.Context, userID, id uuid.UUID) (*domain.Sandbox, error) {
	sandbox, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, sandbox, domain.SandboxStopped); err != nil {
		return nil, err
	}
	return sandbox, nil
}

func (s *SandboxService) getOwned(ctx context.Context, userID, id uuid.UUID) (*domain.Sandbox, error) {
	sandbox, err := s.sandboxRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	owned, err := s.projectRepo.ExistsForUser(ctx, sandbox.ProjectID, userID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, domain.ErrNotFound
	}
	return sandbox, nil
}

func (s *SandboxService) transition(ctx context.Context, sandbox *domain.Sandbox, to domain.SandboxStatus) error {
	if !sandbox.CanTransition(to) {
		return domain.ErrInvalidTransition
	}
	sandbox.Status = to
	return s.sandboxRepo.Update(ctx, sandbox)
}
