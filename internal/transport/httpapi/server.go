package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/rs/cors"
	"github.com/sandevgo/companion/internal/config"
	"github.com/sandevgo/companion/internal/core"
	"github.com/sandevgo/companion/internal/service/chat"
	"github.com/sandevgo/companion/pkg/log"
)

// ChatService is the single-turn entrypoint the chat endpoint drives.
type ChatService interface {
	Turn(ctx context.Context, req chat.TurnRequest) (string, error)
}

// PersonaService covers custom descriptor management for the settings UI.
type PersonaService interface {
	CreateCustom(ctx context.Context, userID, name, description string) (core.Persona, error)
	List(ctx context.Context, userID string) ([]core.Persona, error)
}

type Handler struct {
	chat     ChatService
	personas PersonaService
	leads    core.LeadsRepository
}

func NewHandler(chatSvc ChatService, personas PersonaService, leads core.LeadsRepository) *Handler {
	return &Handler{chat: chatSvc, personas: personas, leads: leads}
}

// NewRouter wires the API surface. CORS mirrors what the web client expects:
// any origin, with the auth/client headers it sends on every call.
func (h *Handler) NewRouter(ctx context.Context) http.Handler {
	router := chi.NewRouter()
	router.Use(requestLogger(ctx))
	router.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type"},
	}).Handler)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Post("/api/chat", h.handleChat)
	router.Post("/api/leads", h.handleLeads)
	router.Post("/api/personas", h.handleCreatePersona)
	router.Get("/api/personas", h.handleListPersonas)

	return router
}

// requestLogger carries the application logger into every request context so
// handlers and services can use log.FromCtx.
func requestLogger(ctx context.Context) func(http.Handler) http.Handler {
	logger := log.FromCtx(ctx)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context())))
		})
	}
}

// Server runs the HTTP API as a srv.Service.
type Server struct {
	cfg  *config.ServerConfig
	http *http.Server
}

func NewServer(ctx context.Context, cfg *config.ServerConfig, h *Handler) *Server {
	return &Server{
		cfg: cfg,
		http: &http.Server{
			Addr:              cfg.Addr,
			Handler:           h.NewRouter(ctx),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.cfg.Addr).Msg("http api listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}
