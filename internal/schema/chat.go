package schema

import (
	"github.com/google/uuid"
	"github.com/lovico/lovico-server/internal/domain"
)

type Attachment struct {
	ID      string `json:"id" validate:"required"`
	Type    string `json:"type" validate:"required,oneof=image text"`
	Name    string `json:"name" validate:"required"`
	URL     string `json:"url" validate:"omitempty,url"`
	Content string `json:"content"`
}

// ChatRequest is one user turn sent to a project's chat. The model field is
// recorded verbatim on the stored message; no inference happens here.
type ChatRequest struct {
	ProjectID       uuid.UUID    `json:"projectId"`
	Message         string       `json:"message" validate:"required,min=1"`
	Model           string       `json:"model" validate:"required"`
	ParentMessageID *uuid.UUID   `json:"parentMessageId"`
	Attachments     []Attachment `json:"attachments" validate:"omitempty,dive"`
	Temperature     *float64     `json:"temperature" validate:"omitempty,gte=0,lte=2"`
	WebSearch       bool         `json:"webSearchEnabled"`
}

func (in *ChatRequest) Validate() error {
	if in.ProjectID == uuid.Nil {
		return fieldError("projectId", "is required")
	}
	if err := Validate(in); err != nil {
		return err
	}
	if !domain.IsKnownModel(in.Model) {
		return fieldError("model", "must be one of: "+joinModels())
	}
	return nil
}

func joinModels() string {
	out := ""
	for i, m := range domain.KnownModels {
		if i > 0 {
			out += ", "
		}
		out += m
	}
	return out
}
