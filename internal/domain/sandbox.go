package domain

import (
	"time"

	"github.com/google/uuid"
)

type SandboxStatus string

const (
	SandboxStarting SandboxStatus = "starting"
	SandboxRunning  SandboxStatus = "running"
	SandboxStopped  SandboxStatus = "stopped"
	SandboxError    SandboxStatus = "error"
)

// Sandbox is a preview environment for a project. Only the lifecycle
// bookkeeping lives here; no real process is launched.
type Sandbox struct {
	ID        uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProjectID uuid.UUID     `json:"projectId" gorm:"type:uuid;index;not null"`
	URL       string        `json:"url" gorm:"not null"`
	Status    SandboxStatus `json:"status" gorm:"type:varchar(10);not null;default:'starting'"`
	Framework Framework     `json:"framework" gorm:"type:varchar(10);not null"`
	Port      int           `json:"port" gorm:"not null"`
	CreatedAt time.Time     `json:"createdAt"`
	ExpiresAt time.Time     `json:"expiresAt" gorm:"not null"`
}

// CanTransition reports whether a sandbox may move from its current status
// to the target. Valid paths: starting→running, running→stopped, and any
// non-terminal state →error.
func (s *Sandbox) CanTransition(to SandboxStatus) bool {
	switch s.Status {
	case SandboxStarting:
		return to == SandboxRunning || to == SandboxError
	case SandboxRunning:
		return to == SandboxStopped || to == SandboxError
	default:
		return false
	}
}

func (s *Sandbox) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
