package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/quiz-bot/internal/quiz"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS questions (
  id BIGSERIAL PRIMARY KEY,
  position INTEGER NOT NULL,
  prompt TEXT NOT NULL,
  category TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS answers (
  id BIGSERIAL PRIMARY KEY,
  question_id BIGINT NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
  position INTEGER NOT NULL,
  text TEXT NOT NULL,
  correct BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS answers_question_id_idx ON answers (question_id, position);
`

// Transactor runs a function inside a transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

// PostgresQuestionRepository stores the question bank in PostgreSQL.
type PostgresQuestionRepository struct {
	db *pgxpool.Pool
	tx Transactor
}

// NewPostgresQuestionRepository creates a repository on the given pool.
func NewPostgresQuestionRepository(db *pgxpool.Pool, tx Transactor) *PostgresQuestionRepository {
	return &PostgresQuestionRepository{db: db, tx: tx}
}

// Migrate creates the question bank tables if they do not exist.
func (r *PostgresQuestionRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("migrate question bank: %w", err)
	}
	return nil
}

// Questions returns the whole bank ordered by question and answer position.
func (r *PostgresQuestionRepository) Questions(ctx context.Context) ([]entities.Question, error) {
	query := `
		SELECT q.id, q.prompt, q.category, a.text, a.correct
		FROM questions q
		JOIN answers a ON a.question_id = q.id
		ORDER BY q.position, q.id, a.position, a.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: query questions: %w", quiz.ErrFetchFailed, err)
	}
	defer rows.Close()

	var (
		questions []entities.Question
		lastID    int64 = -1
	)

	for rows.Next() {
		var (
			id       int64
			prompt   string
			category string
			answer   entities.Answer
		)

		if err := rows.Scan(&id, &prompt, &category, &answer.Text, &answer.Correct); err != nil {
			return nil, fmt.Errorf("%w: scan question: %w", quiz.ErrFetchFailed, err)
		}

		if id != lastID {
			questions = append(questions, entities.Question{Prompt: prompt, Category: category})
			lastID = id
		}

		last := &questions[len(questions)-1]
		last.Answers = append(last.Answers, answer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate questions: %w", quiz.ErrFetchFailed, err)
	}

	return questions, nil
}

// Import replaces the whole bank with questions in one transaction.
func (r *PostgresQuestionRepository) Import(ctx context.Context, questions []entities.Question) error {
	for i := range questions {
		if err := questions[i].Validate(); err != nil {
			return fmt.Errorf("%w: question %d: %w", quiz.ErrInvalidData, i, err)
		}
	}

	return r.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM questions`); err != nil {
			return fmt.Errorf("clear questions: %w", err)
		}

		for pos, q := range questions {
			var id int64
			err := tx.QueryRow(
				ctx,
				`INSERT INTO questions (position, prompt, category) VALUES ($1, $2, $3) RETURNING id`,
				pos,
				q.Prompt,
				q.Category,
			).Scan(&id)
			if err != nil {
				return fmt.Errorf("insert question %d: %w", pos, err)
			}

			batch := &pgx.Batch{}
			for apos, a := range q.Answers {
				batch.Queue(
					`INSERT INTO answers (question_id, position, text, correct) VALUES ($1, $2, $3, $4)`,
					id, apos, a.Text, a.Correct,
				)
			}

			if err := tx.SendBatch(ctx, batch).Close(); err != nil {
				return fmt.Errorf("insert answers of question %d: %w", pos, err)
			}
		}

		return nil
	})
}
