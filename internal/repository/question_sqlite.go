package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/quiz-bot/internal/quiz"
)

const sqliteSchema = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS questions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  position INTEGER NOT NULL,
  prompt TEXT NOT NULL,
  category TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS answers (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  question_id INTEGER NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
  position INTEGER NOT NULL,
  text TEXT NOT NULL,
  correct INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS answers_question_id_idx ON answers (question_id, position);
`

// SQLiteQuestionRepository stores the question bank in a SQLite database.
type SQLiteQuestionRepository struct {
	db *sql.DB
}

// NewSQLiteQuestionRepository creates a repository on db.
func NewSQLiteQuestionRepository(db *sql.DB) *SQLiteQuestionRepository {
	return &SQLiteQuestionRepository{db: db}
}

// Migrate creates the question bank tables if they do not exist.
func (r *SQLiteQuestionRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("migrate question bank: %w", err)
	}
	return nil
}

// Questions returns the whole bank ordered by question and answer position.
func (r *SQLiteQuestionRepository) Questions(ctx context.Context) ([]entities.Question, error) {
	query := `
		SELECT q.id, q.prompt, q.category, a.text, a.correct
		FROM questions q
		JOIN answers a ON a.question_id = q.id
		ORDER BY q.position, q.id, a.position, a.id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: query questions: %w", quiz.ErrFetchFailed, err)
	}
	defer func() { _ = rows.Close() }()

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
func (r *SQLiteQuestionRepository) Import(ctx context.Context, questions []entities.Question) error {
	for i := range questions {
		if err := questions[i].Validate(); err != nil {
			return fmt.Errorf("%w: question %d: %w", quiz.ErrInvalidData, i, err)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM answers`); err != nil {
		return fmt.Errorf("clear answers: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM questions`); err != nil {
		return fmt.Errorf("clear questions: %w", err)
	}

	for pos, q := range questions {
		res, err := tx.ExecContext(
			ctx,
			`INSERT INTO questions (position, prompt, category) VALUES (?, ?, ?)`,
			pos, q.Prompt, q.Category,
		)
		if err != nil {
			return fmt.Errorf("insert question %d: %w", pos, err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("question %d id: %w", pos, err)
		}

		for apos, a := range q.Answers {
			_, err := tx.ExecContext(
				ctx,
				`INSERT INTO answers (question_id, position, text, correct) VALUES (?, ?, ?, ?)`,
				id, apos, a.Text, a.Correct,
			)
			if err != nil {
				return fmt.Errorf("insert answer %d of question %d: %w", apos, pos, err)
			}
		}
	}

	return tx.Commit()
}
