// Package http exposes the record service over a JSON API.
package http

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"spendbook/internal/config"
	"spendbook/internal/middleware/ratelimit"
	"spendbook/internal/middleware/security"
	"spendbook/internal/middleware/trace"
	"spendbook/internal/services"
)

type Server struct {
	http.Server

	records    *services.RecordService
	categories *services.CategoryDirectory
	validate   *validator.Validate
	limiter    *ratelimit.Limiter
}

func NewServer(cfg *config.Config, records *services.RecordService, categories *services.CategoryDirectory) *Server {
	s := &Server{
		records:    records,
		categories: categories,
		validate:   validator.New(),
		limiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: cfg.RateLimitPerMinute,
			CleanupInterval:   5 * time.Minute,
		}),
	}

	router := mux.NewRouter()
	router.Use(trace.NewMiddleware(extractClientIP).Middleware)
	router.Use(security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware)
	router.Use(limitMutations(s.limiter))

	router.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/readyz", handleReady).Methods(http.MethodGet)

	auth := NewAuthenticator(cfg.JWTSecret)
	app := router.PathPrefix("/").Subrouter()
	app.Use(auth.Middleware)

	app.HandleFunc("/", s.handleHome).Methods(http.MethodGet)
	app.HandleFunc("/records/new", s.handleNewRecordForm).Methods(http.MethodGet)
	app.HandleFunc("/records", s.handleCreateRecord).Methods(http.MethodPost)
	app.HandleFunc("/records", s.handleListRecords).Methods(http.MethodGet)
	app.HandleFunc("/records/{id}/edit", s.handleEditRecord).Methods(http.MethodGet)
	app.HandleFunc("/records/{id}", s.handleUpdateRecord).Methods(http.MethodPut)
	app.HandleFunc("/records/{id}", s.handleDeleteRecord).Methods(http.MethodDelete)

	s.Server = http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	return s
}

// Shutdown stops the HTTP server and the limiter cleanup routine.
func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.Shutdown()
	return s.Server.Shutdown(ctx)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// limitMutations rate-limits writes only; reads stay unthrottled.
func limitMutations(limiter *ratelimit.Limiter) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		limited := limiter.Middleware(extractClientIP)(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodDelete:
				limited.ServeHTTP(w, r)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// extractClientIP prefers the first X-Forwarded-For hop, falling back
// to the connection address.
func extractClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(first) != nil {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
