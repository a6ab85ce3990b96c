package service

import (
	"github.com/lovico/lovico-server/internal/config"
	"github.com/lovico/lovico-server/internal/repository"
)

type Services struct {
	Auth    *AuthService
	Project *ProjectService
	User    *UserService
	Chat    *ChatService
	Sandbox *SandboxService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:    NewAuthService(repos.User, repos.Session, cfg),
		Project: NewProjectService(repos.Project, repos.Generation),
		User:    NewUserService(repos.User, repos.Profile, repos.Settings),
		Chat:    NewChatService(repos.Message, repos.Project),
		Sandbox: NewSandboxService(repos.Sandbox, repos.Project, cfg),
	}
}
