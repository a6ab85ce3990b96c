package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lovico/lovico-server/internal/domain"
	"github.com/lovico/lovico-server/internal/repository"
	"github.com/lovico/lovico-server/internal/schema"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo     repository.UserRepository
	profileRepo  repository.ProfileRepository
	settingsRepo repository.SettingsRepository
}

func NewUserService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, settingsRepo repository.SettingsRepository) *UserService {
	return &UserService{
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		settingsRepo: settingsRepo,
	}
}

func (s *UserService) GetMe(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetPublicUser is the one unauthenticated user lookup; it never exposes
// email or account status.
func (s *UserService) GetPublicUser(ctx context.Context, username string) (*domain.PublicUser, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if user.Status != domain.UserStatusActive {
		return nil, domain.ErrNotFound
	}
	pub := user.Public()
	return &pub, nil
}

func (s *UserService) UpdateMe(ctx context.Context, userID uuid.UUID, input schema.UpdateUser) (*domain.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if input.Username != nil {
		if existing, err := s.userRepo.GetByUsername(ctx, *input.Username); err == nil && existing.ID != userID {
			return nil, ErrUsernameExists
		}
	}

	fields := input.Fields()
	if len(fields) == 0 {
		return s.GetMe(ctx, userID)
	}

	affected, err := s.userRepo.UpdateFields(ctx, userID, fields)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrNotFound
	}

	return s.GetMe(ctx, userID)
}

// GetProfile returns the stored profile or an empty one; a user who has
// never filled in a profile is not an error.
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.UserProfile{UserID: userID}, nil
		}
		return nil, err
	}
	return profile, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, input schema.UpdateProfile) (*domain.UserProfile, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	fields := input.Fields()
	if len(fields) == 0 {
		return s.GetProfile(ctx, userID)
	}

	affected, err := s.profileRepo.UpdateFields(ctx, userID, fields)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// First write creates the row.
		profile := &domain.UserProfile{UserID: userID}
		applyProfileFields(profile, fields)
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return nil, err
		}
		return profile, nil
	}

	return s.GetProfile(ctx, userID)
}

func (s *UserService) GetSettings(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	settings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return defaultSettings(userID), nil
		}
		return nil, err
	}
	return settings, nil
}

func (s *UserService) UpdateSettings(ctx context.Context, userID uuid.UUID, input schema.UpdateSettings) (*domain.UserSettings, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	fields := input.Fields()
	if len(fields) == 0 {
		return s.GetSettings(ctx, userID)
	}

	affected, err := s.settingsRepo.UpdateFields(ctx, userID, fields)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		settings := defaultSettings(userID)
		applySettingsFields(settings, fields)
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, err
		}
		return settings, nil
	}

	return s.GetSettings(ctx, userID)
}

func defaultSettings(userID uuid.UUID) *domain.UserSettings {
	return &domain.UserSettings{
		UserID:             userID,
		Theme:              "system",
		DefaultModel:       "gpt-4o",
		CodeEditorTheme:    "vs-dark",
		AutoSave:           true,
		EmailNotifications: true,
		Language:           "en",
	}
}

func applyProfileFields(p *domain.UserProfile, fields map[string]any) {
	if v, ok := fields["bio"].(string); ok {
		p.Bio = v
	}
	if v, ok := fields["website"].(string); ok {
		p.Website = v
	}
	if v, ok := fields["location"].(string); ok {
		p.Location = v
	}
	if v, ok := fields["twitter"].(string); ok {
		p.Twitter = v
	}
	if v, ok := fields["github"].(string); ok {
		p.GitHub = v
	}
}

func applySettingsFields(s *domain.UserSettings, fields map[string]any) {
	if v, ok := fields["theme"].(string); ok {
		s.Theme = v
	}
	if v, ok := fields["default_model"].(string); ok {
		s.DefaultModel = v
	}
	if v, ok := fields["code_editor_theme"].(string); ok {
		s.CodeEditorTheme = v
	}
	if v, ok := fields["auto_save"].(bool); ok {
		s.AutoSave = v
	}
	if v, ok := fields["email_notifications"].(bool); ok {
		s.EmailNotifications = v
	}
	if v, ok := fields["language"].(string); ok {
		s.Language = v
	}
}
