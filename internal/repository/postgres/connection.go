package postgres

import (
	"github.com/lovico/lovico-server/internal/domain"
	"github.com/lovico/lovico-server/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.User{},
		&domain.UserSession{},
		&domain.UserProfile{},
		&domain.UserSettings{},
		&domain.Project{},
		&domain.Generation{},
		&domain.Message{},
		&domain.Sandbox{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:       NewUserRepository(db),
		Session:    NewSessionRepository(db),
		Project:    NewProjectRepository(db),
		Generation: NewGenerationRepository(db),
		Message:    NewMessageRepository(db),
		Sandbox:    NewSandboxRepository(db),
		Profile:    NewProfileRepository(db),
		Settings:   NewSettingsRepository(db),
	}
}
