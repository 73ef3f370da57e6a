package storage

import (
	"sync"

	"github.com/aliskhannn/quiz-bot/internal/quiz"
)

// QuizStorage keeps one quiz engine per chat in memory.
// Engines are discarded on restart.
type QuizStorage struct {
	mu      sync.RWMutex
	engines map[int64]*quiz.Engine
}

// NewQuizStorage creates a new QuizStorage.
func NewQuizStorage() *QuizStorage {
	return &QuizStorage{
		engines: make(map[int64]*quiz.Engine),
	}
}

// Store saves the engine for a chat, replacing any previous one.
func (s *QuizStorage) Store(chatID int64, engine *quiz.Engine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engines[chatID] = engine
}

// Get returns the engine of a chat, if any.
func (s *QuizStorage) Get(chatID int64) (*quiz.Engine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.engines[chatID]
	return e, ok
}

// Delete removes the engine of a chat.
func (s *QuizStorage) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.engines, chatID)
}
