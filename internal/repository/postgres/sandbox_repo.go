package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/lovico/lovico-server/internal/domain"
	"gorm.io/gorm"
)

type sandboxRepository struct {
	db *gorm.DB
}

func NewSandboxRepository(db *gorm.DB) *sandboxRepository {
	return &sandboxRepository{db: db}
}

func (r *sandboxRepository) Create(ctx context.Context, sandbox *domain.Sandbox) error {
	return r.db.WithContext(ctx).Create(sandbox).Error
}

func (r *sandboxRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Sandbox, error) {
	var sandbox domain.Sandbox
	err := r.db.WithContext(ctx).First(&sandbox, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sandbox, nil
}

func (r *sandboxRepository) GetRunningByProjectID(ctx context.Context, projectID uuid.UUID) (*domain.Sandbox, error) {
	var sandbox domain.Sandbox
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND status IN ?", projectID, []domain.SandboxStatus{domain.SandboxStarting, domain.SandboxRunning}).
		Order("created_at DESC").
		First(&sandbox).Error
	if err != nil {
		return nil, err
	}
	return &sandbox, nil
}

func (r *sandboxRepository) Update(ctx context.Context, sandbox *domain.Sandbox) error {
	return r.db.WithContext(ctx).Save(sandbox).Error
}
