package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/lovico/lovico-server/internal/api/handlers"
	"github.com/lovico/lovico-server/internal/api/middleware"
	"github.com/lovico/lovico-server/internal/config"
	"github.com/lovico/lovico-server/internal/service"
	"github.com/lovico/lovico-server/internal/ws"
	"github.com/sirupsen/logrus"
)

func NewRouter(services *service.Services, cfg *config.Config, log *logrus.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.CORS(cfg))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	projectHandler := handlers.NewProjectHandler(services.Project)
	userHandler := handlers.NewUserHandler(services.User)
	chatHandler := handlers.NewChatHandler(services.Chat)
	sandboxHandler := handlers.NewSandboxHandler(services.Sandbox)
	wsChatHandler := ws.NewChatHandler(services.Chat, services.Auth, log)

	// Identity provider routes
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))
			r.Get("/me", authHandler.Me)
			r.Post("/logout", authHandler.Logout)
		})
	})

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public discovery surface
		r.Get("/projects/featured", projectHandler.Featured)
		r.Get("/users/{username}", userHandler.GetPublic)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", projectHandler.List)
				r.Post("/", projectHandler.Create)
				r.Get("/{id}", projectHandler.Get)
				r.Put("/{id}", projectHandler.Update)
				r.Delete("/{id}", projectHandler.Delete)
				r.Post("/{id}/generations", projectHandler.CreateGeneration)
				r.Get("/{id}/messages", chatHandler.ListMessages)
				r.Post("/{id}/sandbox", sandboxHandler.Start)
			})

			r.Route("/generations", func(r chi.Router) {
				r.Get("/{id}", projectHandler.GetGeneration)
				r.Get("/{id}/tree", projectHandler.GetGenerationTree)
			})

			r.Post("/chat", chatHandler.Send)

			r.Route("/sandboxes", func(r chi.Router) {
				r.Get("/{id}", sandboxHandler.Get)
				r.Post("/{id}/stop", sandboxHandler.Stop)
			})

			r.Route("/users/me", func(r chi.Router) {
				r.Put("/", userHandler.UpdateMe)
				r.Get("/profile", userHandler.GetProfile)
				r.Put("/profile", userHandler.UpdateProfile)
				r.Get("/settings", userHandler.GetSettings)
				r.Put("/settings", userHandler.UpdateSettings)
			})
		})

		// WebSocket endpoint (token auth inside the handler)
		r.Get("/ws/chat", wsChatHandler.Handle)
	})

	// Catch-all for unmatched routes
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Not Found"}`))
	})

	return r
}
