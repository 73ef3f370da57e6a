package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aliskhannn/quiz-bot/internal/quiz"
)

// QuizStorage holds the engine of every chat.
type QuizStorage interface {
	Store(chatID int64, engine *quiz.Engine)
	Get(chatID int64) (*quiz.Engine, bool)
	Delete(chatID int64)
}

// QuizService forwards user intents to the engine of a chat and returns
// the resulting view for rendering.
type QuizService struct {
	source       quiz.QuestionSource
	storage      QuizStorage
	fetchTimeout time.Duration
}

// NewQuizService creates a service that loads every quiz from source.
// fetchTimeout bounds one fetch; zero disables the bound.
func NewQuizService(source quiz.QuestionSource, storage QuizStorage, fetchTimeout time.Duration) *QuizService {
	return &QuizService{
		source:       source,
		storage:      storage,
		fetchTimeout: fetchTimeout,
	}
}

// Begin fetches a fresh question set for the chat and replaces any running
// quiz. When the fetch fails the chat keeps the quiz it had.
func (s *QuizService) Begin(ctx context.Context, chatID int64, userName string) (quiz.View, error) {
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}

	engine := quiz.New(s.source)
	if err := engine.Fetch(ctx); err != nil {
		return quiz.View{}, fmt.Errorf("begin quiz: %w", err)
	}

	if err := engine.SetUserName(userName); err != nil {
		return quiz.View{}, fmt.Errorf("begin quiz: %w", err)
	}

	s.storage.Store(chatID, engine)
	return engine.Snapshot(), nil
}

// View returns the current state of the chat's quiz.
func (s *QuizService) View(chatID int64) (quiz.View, error) {
	return s.apply(chatID, func(*quiz.Engine) error { return nil })
}

// SetUserName sets the name shown with the chat's final score.
func (s *QuizService) SetUserName(chatID int64, name string) (quiz.View, error) {
	return s.apply(chatID, func(e *quiz.Engine) error { return e.SetUserName(name) })
}

// SetSelectedCount sets how many questions the chat's run will contain.
func (s *QuizService) SetSelectedCount(chatID int64, n int) (quiz.View, error) {
	return s.apply(chatID, func(e *quiz.Engine) error { return e.SetSelectedCount(n) })
}

// AdjustCount changes the selected count by delta.
func (s *QuizService) AdjustCount(chatID int64, delta int) (quiz.View, error) {
	return s.apply(chatID, func(e *quiz.Engine) error { return e.SetSelectedCount(e.SelectedCount() + delta) })
}

// Start begins the chat's run with the selected number of questions.
func (s *QuizService) Start(chatID int64) (quiz.View, error) {
	return s.apply(chatID, (*quiz.Engine).Start)
}

// ToggleAnswer flips an answer of the current question.
func (s *QuizService) ToggleAnswer(chatID int64, answerIndex int) (quiz.View, error) {
	return s.apply(chatID, func(e *quiz.Engine) error { return e.ToggleAnswer(answerIndex) })
}

// Move shifts the chat's cursor by delta questions.
func (s *QuizService) Move(chatID int64, delta int) (quiz.View, error) {
	return s.apply(chatID, func(e *quiz.Engine) error { return e.Move(delta) })
}

// Score corrects the chat's quiz.
func (s *QuizService) Score(chatID int64) (quiz.View, error) {
	return s.apply(chatID, func(e *quiz.Engine) error {
		_, err := e.Score()
		return err
	})
}

// Reset brings the chat back to the menu with the full question set.
func (s *QuizService) Reset(chatID int64) (quiz.View, error) {
	return s.apply(chatID, (*quiz.Engine).Reset)
}

// End drops the chat's quiz.
func (s *QuizService) End(chatID int64) {
	s.storage.Delete(chatID)
}

// apply runs fn on the chat's engine. On error the engine keeps its
// previous state and the returned view reflects it.
func (s *QuizService) apply(chatID int64, fn func(*quiz.Engine) error) (quiz.View, error) {
	engine, ok := s.storage.Get(chatID)
	if !ok {
		return quiz.View{}, quiz.ErrNotLoaded
	}

	if err := fn(engine); err != nil {
		return engine.Snapshot(), err
	}

	return engine.Snapshot(), nil
}
