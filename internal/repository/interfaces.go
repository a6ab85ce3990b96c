package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lovico/lovico-server/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// UpdateFields applies a partial update keyed on the user id and returns
	// the number of rows touched.
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (int64, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.UserSession) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	// ListByUserID returns the owner's projects newest-updated first, each
	// with its generations preloaded newest-first.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Project, error)
	// ListFeatured returns public+featured projects newest-updated first,
	// with owners preloaded, capped at limit.
	ListFeatured(ctx context.Context, limit int) ([]*domain.Project, error)
	// GetByIDForUser is the owner-scoped single-record read; absence and
	// non-ownership are both gorm.ErrRecordNotFound.
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Project, error)
	ExistsForUser(ctx context.Context, id, userID uuid.UUID) (bool, error)
	// UpdateFields is a single conditional UPDATE scoped to (id, user_id);
	// the returned count is zero when the project is absent or not owned.
	UpdateFields(ctx context.Context, id, userID uuid.UUID, fields map[string]any) (int64, error)
	// DeleteForUser is the matching conditional DELETE.
	DeleteForUser(ctx context.Context, id, userID uuid.UUID) (int64, error)
}

type GenerationRepository interface {
	Create(ctx context.Context, generation *domain.Generation) error
	GetByIDWithProject(ctx context.Context, id uuid.UUID) (*domain.Generation, error)
}

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error)
	ListByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Message, error)
}

type SandboxRepository interface {
	Create(ctx context.Context, sandbox *domain.Sandbox) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Sandbox, error)
	GetRunningByProjectID(ctx context.Context, projectID uuid.UUID) (*domain.Sandbox, error)
	Update(ctx context.Context, sandbox *domain.Sandbox) error
}

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error)
	Create(ctx context.Context, profile *domain.UserProfile) error
	UpdateFields(ctx context.Context, userID uuid.UUID, fields map[string]any) (int64, error)
}

type SettingsRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)
	Create(ctx context.Context, settings *domain.UserSettings) error
	UpdateFields(ctx context.Context, userID uuid.UUID, fields map[string]any) (int64, error)
}

type Repositories struct {
	User       UserRepository
	Session    SessionRepository
	Project    ProjectRepository
	Generation GenerationRepository
	Message    MessageRepository
	Sandbox    SandboxRepository
	Profile    ProfileRepository
	Settings   SettingsRepository
}
