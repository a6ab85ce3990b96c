package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
	MessageRoleSystem    MessageRole = "system"
	MessageRoleTool      MessageRole = "tool"
)

// Models the chat panel can request. No inference runs server-side; the
// identifier is recorded on the message for display.
var KnownModels = []string{
	"gpt-4o",
	"gpt-4-turbo",
	"claude-3-opus",
	"claude-3-sonnet",
	"deepseek-r1",
	"gemini-pro",
}

func IsKnownModel(model string) bool {
	for _, m := range KnownModels {
		if m == model {
			return true
		}
	}
	return false
}

// Message is one turn in a project's chat. ParentMessageID supports
// branching; when set it must reference a message in the same project.
type Message struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProjectID       uuid.UUID      `json:"projectId" gorm:"type:uuid;index;not null"`
	Role            MessageRole    `json:"role" gorm:"type:varchar(10);not null"`
	Content         string         `json:"content" gorm:"not null"`
	Model           string         `json:"model,omitempty"`
	Attachments     datatypes.JSON `json:"attachments,omitempty" gorm:"type:jsonb"`
	ToolCalls       datatypes.JSON `json:"toolCalls,omitempty" gorm:"type:jsonb"`
	ParentMessageID *uuid.UUID     `json:"parentMessageId,omitempty" gorm:"type:uuid"`
	CreatedAt       time.Time      `json:"createdAt"`
}

type AttachmentType string

const (
	AttachmentImage AttachmentType = "image"
	AttachmentText  AttachmentType = "text"
)

type MessageAttachment struct {
	ID      string         `json:"id"`
	Type    AttachmentType `json:"type"`
	Name    string         `json:"name"`
	URL     string         `json:"url,omitempty"`
	Content string         `json:"content,omitempty"`
}
