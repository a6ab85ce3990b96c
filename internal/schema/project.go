package schema

import (
	"strings"

	"github.com/google/uuid"
)

type CreateProject struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

func (in *CreateProject) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	return Validate(in)
}

// UpdateProject carries the owner-editable project fields. Server-assigned
// fields (id, userId, timestamps) are never accepted here.
type UpdateProject struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Framework   *string `json:"framework" validate:"omitempty,oneof=nextjs react vue svelte vanilla"`
	Status      *string `json:"status" validate:"omitempty,oneof=draft active deployed archived"`
	Thumbnail   *string `json:"thumbnail" validate:"omitempty,url"`
	PreviewURL  *string `json:"previewUrl" validate:"omitempty,url"`
	IsPublic    *bool   `json:"isPublic"`
}

func (in *UpdateProject) Validate() error {
	if in.Name != nil {
		n := strings.TrimSpace(*in.Name)
		in.Name = &n
	}
	return Validate(in)
}

func (in *UpdateProject) Fields() map[string]any {
	fields := make(map[string]any)
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Framework != nil {
		fields["framework"] = *in.Framework
	}
	if in.Status != nil {
		fields["status"] = *in.Status
	}
	if in.Thumbnail != nil {
		fields["thumbnail"] = *in.Thumbnail
	}
	if in.PreviewURL != nil {
		fields["preview_url"] = *in.PreviewURL
	}
	if in.IsPublic != nil {
		fields["is_public"] = *in.IsPublic
	}
	return fields
}

type CreateGeneration struct {
	ProjectID  uuid.UUID         `json:"projectId" validate:"required"`
	Prompt     string            `json:"prompt" validate:"required,min=1"`
	HTML       string            `json:"html"`
	CSS        string            `json:"css"`
	JavaScript string            `json:"javascript"`
	Files      map[string]string `json:"files"`
}

func (in *CreateGeneration) Validate() error {
	if in.ProjectID == uuid.Nil {
		return fieldError("projectId", "is required")
	}
	return Validate(in)
}
