package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lovico/lovico-server/internal/domain"
	"github.com/lovico/lovico-server/internal/repository"
	"github.com/lovico/lovico-server/internal/schema"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FeaturedLimit caps the public gallery listing.
const FeaturedLimit = 12

type ProjectService struct {
	projectRepo    repository.ProjectRepository
	generationRepo repository.GenerationRepository
}

func NewProjectService(projectRepo repository.ProjectRepository, generationRepo repository.GenerationRepository) *ProjectService {
	return &ProjectService{
		projectRepo:    projectRepo,
		generationRepo: generationRepo,
	}
}

// ListOwned returns the caller's projects newest-updated first, each carrying
// only its most recent generation.
func (s *ProjectService) ListOwned(ctx context.Context, userID uuid.UUID) ([]*domain.Project, error) {
	projects, err := s.projectRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		if len(p.Generations) > 1 {
			p.Generations = p.Generations[:1]
		}
	}
	return projects, nil
}

// ListFeatured is the unauthenticated gallery: public and featured projects,
// newest-updated first, with owner display fields attached.
func (s *ProjectService) ListFeatured(ctx context.Context) ([]*domain.Project, error) {
	return s.projectRepo.ListFeatured(ctx, FeaturedLimit)
}

func (s *ProjectService) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Project, error) {
	project, err := s.projectRepo.GetByIDForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Create(ctx context.Context, userID uuid.UUID, input schema.CreateProject) (*domain.Project, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	project := &domain.Project{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Framework:   domain.FrameworkVanilla,
		Status:      domain.ProjectStatusDraft,
		UserID:      userID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Update applies a field-level merge in one conditional statement scoped to
// (id, owner); zero rows touched means absent or not owned.
func (s *ProjectService) Update(ctx context.Context, userID, id uuid.UUID, input schema.UpdateProject) (*domain.Project, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	fields := input.Fields()
	if len(fields) == 0 {
		return s.GetByID(ctx, userID, id)
	}
	fields["updated_at"] = time.Now()

	affected, err := s.projectRepo.UpdateFields(ctx, id, userID, fields)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrNotFound
	}

	return s.GetByID(ctx, userID, id)
}

// Delete removes an owned project. A second delete of the same id reports
// NotFound rather than succeeding silently.
func (s *ProjectService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	affected, err := s.projectRepo.DeleteForUser(ctx, id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *ProjectService) CreateGeneration(ctx context.Context, userID uuid.UUID, input schema.CreateGeneration) (*domain.Generation, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	owned, err := s.projectRepo.ExistsForUser(ctx, input.ProjectID, userID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, domain.ErrNotFound
	}

	generation := &domain.Generation{
		ID:         uuid.New(),
		ProjectID:  input.ProjectID,
		Prompt:     input.Prompt,
		HTML:       input.HTML,
		CSS:        input.CSS,
		JavaScript: input.JavaScript,
		CreatedAt:  time.Now(),
	}
	if len(input.Files) > 0 {
		blob, err := json.Marshal(input.Files)
		if err != nil {
			return nil, err
		}
		generation.Files = datatypes.JSON(blob)
	}

	if err := s.generationRepo.Create(ctx, generation); err != nil {
		return nil, err
	}
	return generation, nil
}

// GetGenerationByID re-checks the stored parent project's owner against the
// caller so generation ids cannot be probed across users.
func (s *ProjectService) GetGenerationByID(ctx context.Context, userID, id uuid.UUID) (*domain.Generation, error) {
	generation, err := s.generationRepo.GetByIDWithProject(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if generation.Project == nil || generation.Project.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return generation, nil
}

// GetGenerationTree builds the virtual file tree for a generation's files
// blob. Generations without a files blob yield a tree synthesized from the
// html/css/javascript triplet.
func (s *ProjectService) GetGenerationTree(ctx context.Context, userID, id uuid.UUID) ([]*domain.FileNode, error) {
	generation, err := s.GetGenerationByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	files := make(map[string]string)
	if len(generation.Files) > 0 {
		if err := json.Unmarshal(generation.Files, &files); err != nil {
			return nil, err
		}
	} else {
		files["index.html"] = generation.HTML
		if generation.CSS != "" {
			files["styles.css"] = generation.CSS
		}
		if generation.JavaScript != "" {
			files["script.js"] = generation.JavaScript
		}
	}

	return domain.BuildFileTree(files)
}
