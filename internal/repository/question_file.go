package repository

import (
	"context"
	"fmt"
	"os"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/quiz-bot/internal/quiz"
)

// FileQuestionSource reads the question set from a JSON file.
// The file is read on every call so edits are picked up by new quizzes.
type FileQuestionSource struct {
	path string
}

// NewFileQuestionSource creates a source backed by the file at path.
func NewFileQuestionSource(path string) *FileQuestionSource {
	return &FileQuestionSource{path: path}
}

// Questions reads and decodes the file.
func (s *FileQuestionSource) Questions(_ context.Context) ([]entities.Question, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", quiz.ErrFetchFailed, err)
	}
	defer func() { _ = f.Close() }()

	return DecodeQuestions(f)
}
