package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/lovico/lovico-server/internal/domain"
	"gorm.io/gorm"
)

type generationRepository struct {
	db *gorm.DB
}

func NewGenerationRepository(db *gorm.DB) *generationRepository {
	return &generationRepository{db: db}
}

func (r *generationRepository) Create(ctx context.Context, generation *domain.Generation) error {
	return r.db.WithContext(ctx).Create(generation).Error
}

func (r *generationRepository) GetByIDWithProject(ctx context.Context, id uuid.UUID) (*domain.Generation, error) {
	var generation domain.Generation
	err := r.db.WithContext(ctx).
		Preload("Project").
		First(&generation, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &generation, nil
}
