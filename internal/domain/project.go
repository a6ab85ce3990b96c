package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ProjectStatus string

const (
	ProjectStatusDraft    ProjectStatus = "draft"
	ProjectStatusActive   ProjectStatus = "active"
	ProjectStatusDeployed ProjectStatus = "deployed"
	ProjectStatusArchived ProjectStatus = "archived"
)

type Framework string

const (
	FrameworkNextJS  Framework = "nextjs"
	FrameworkReact   Framework = "react"
	FrameworkVue     Framework = "vue"
	FrameworkSvelte  Framework = "svelte"
	FrameworkVanilla Framework = "vanilla"
)

type Project struct {
	ID          uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string        `json:"name" gorm:"size:100;not null"`
	Description string        `json:"description"`
	Framework   Framework     `json:"framework" gorm:"type:varchar(10);not null;default:'vanilla'"`
	Status      ProjectStatus `json:"status" gorm:"type:varchar(10);not null;default:'draft'"`
	Thumbnail   string        `json:"thumbnail"`
	PreviewURL  string        `json:"previewUrl"`
	IsPublic    bool          `json:"isPublic" gorm:"not null;default:false"`
	IsFeatured  bool          `json:"isFeatured" gorm:"not null;default:false"`
	UserID      uuid.UUID     `json:"userId" gorm:"type:uuid;index;not null"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`

	// Relations
	User        *User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Generations []Generation `json:"generations,omitempty" gorm:"foreignKey:ProjectID"`
}

// Generation is an append-only artifact produced for a project. The newest
// generation per project is the one the dashboard renders.
type Generation struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProjectID  uuid.UUID      `json:"projectId" gorm:"type:uuid;index;not null"`
	Prompt     string         `json:"prompt" gorm:"not null"`
	HTML       string         `json:"html" gorm:"not null"`
	CSS        string         `json:"css"`
	JavaScript string         `json:"javascript"`
	Files      datatypes.JSON `json:"files,omitempty" gorm:"type:jsonb"`
	CreatedAt  time.Time      `json:"createdAt"`

	// Relations
	Project *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
}
