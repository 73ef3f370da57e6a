package http

import (
	"context"
	nethttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
)

// QuestionBank is the store served by the questions API.
type QuestionBank interface {
	Questions(ctx context.Context) ([]entities.Question, error)
}

// Importer replaces the stored question bank.
type Importer interface {
	Import(ctx context.Context, questions []entities.Question) error
}

type Options struct {
	Bank           QuestionBank
	Auth           *AuthService
	Logger         *zap.Logger
	CORSOrigins    []string
	RequestTimeout time.Duration
	// Ready reports whether the backing store is reachable. Nil means always ready.
	Ready func(ctx context.Context) error
}

func NewRouter(opts Options) nethttp.Handler {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}

	h := &QuestionsHandler{bank: opts.Bank, logger: opts.Logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger(opts.Logger), middleware.Recoverer)
	r.Use(middleware.Timeout(opts.RequestTimeout))

	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{"GET", "PUT", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/healthz", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		respondJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/readyz", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if opts.Ready != nil {
			if err := opts.Ready(r.Context()); err != nil {
				opts.Logger.Warn("readiness check failed", zap.Error(err))
				respondError(w, nethttp.StatusServiceUnavailable, "not ready")
				return
			}
		}
		respondJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"})
	})

	r.Route("/questions", func(qr chi.Router) {
		qr.Get("/", h.List)
		qr.With(opts.Auth.RequireRole(RoleAdmin)).Put("/", h.Replace)
	})

	return r
}
