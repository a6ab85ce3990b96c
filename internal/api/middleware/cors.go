package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/lovico/lovico-server/internal/config"
)

// CORS builds the cross-origin policy from configuration: an explicit
// allow-list when ALLOWED_ORIGINS is set, wildcard in development when it
// is not, and deny-all otherwise.
func CORS(cfg *config.Config) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}

	switch {
	case len(cfg.AllowedOrigins) > 0:
		opts.AllowedOrigins = cfg.AllowedOrigins
	case cfg.IsDevelopment():
		opts.AllowedOrigins = []string{"*"}
	default:
		// cors falls back to allow-all when the list is empty, so deny-all
		// needs an explicit origin func.
		opts.AllowOriginFunc = func(r *http.Request, origin string) bool {
			return false
		}
	}

	return cors.Handler(opts)
}
