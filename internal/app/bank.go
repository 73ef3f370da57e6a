// Package app wires the configured question source for the binaries.
package app

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-bot/internal/config"
	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/quiz-bot/internal/infra/postgres"
	"github.com/aliskhannn/quiz-bot/internal/infra/sqlite"
	"github.com/aliskhannn/quiz-bot/internal/repository"
)

// Source yields the full question set.
type Source interface {
	Questions(ctx context.Context) ([]entities.Question, error)
}

type storedBank interface {
	Source
	Migrate(ctx context.Context) error
	Import(ctx context.Context, questions []entities.Question) error
}

// Bank is an opened question source with its lifecycle hooks.
type Bank struct {
	Source Source
	// Ready checks the backing store. Nil for sources without one.
	Ready func(ctx context.Context) error

	closers []func()
}

// Close releases the resources held by the bank.
func (b *Bank) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// OpenBank opens the source selected by cfg.Source.Driver. Database banks get
// their schema ensured and are seeded from cfg.Source.SeedPath while empty.
func OpenBank(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Bank, error) {
	switch cfg.Source.Driver {
	case config.SourceHTTP:
		return &Bank{Source: repository.NewHTTPQuestionSource(cfg.Source.URL, cfg.Source.FetchTimeout)}, nil

	case config.SourceFile:
		return &Bank{Source: repository.NewFileQuestionSource(cfg.Source.Path)}, nil

	case config.SourcePostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, err
		}

		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("open postgres bank: %w", err)
		}

		repo := repository.NewPostgresQuestionRepository(pool, postgres.NewTransactor(pool))
		b := &Bank{Source: repo, Ready: pool.Ping, closers: []func(){pool.Close}}
		if err := prepare(ctx, repo, cfg.Source.SeedPath, log); err != nil {
			b.Close()
			return nil, err
		}
		return b, nil

	case config.SourceSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite bank: %w", err)
		}

		repo := repository.NewSQLiteQuestionRepository(db)
		b := &Bank{Source: repo, Ready: db.PingContext, closers: []func(){func() { _ = db.Close() }}}
		if err := prepare(ctx, repo, cfg.Source.SeedPath, log); err != nil {
			b.Close()
			return nil, err
		}
		return b, nil

	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownSourceDriver, cfg.Source.Driver)
	}
}

func prepare(ctx context.Context, bank storedBank, seedPath string, log *zap.Logger) error {
	if err := bank.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate question bank: %w", err)
	}

	if seedPath == "" {
		return nil
	}

	existing, err := bank.Questions(ctx)
	if err != nil {
		return fmt.Errorf("read question bank: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	return seed(ctx, bank, seedPath, log)
}

func seed(ctx context.Context, bank storedBank, path string, log *zap.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	questions, err := repository.DecodeQuestions(f)
	if err != nil {
		return fmt.Errorf("seed question bank: %w", err)
	}

	if err := bank.Import(ctx, questions); err != nil {
		return fmt.Errorf("seed question bank: %w", err)
	}

	log.Info("question bank seeded",
		zap.String("path", path),
		zap.Int("count", len(questions)),
	)
	return nil
}
