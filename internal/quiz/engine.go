// Package quiz implements the multi-select quiz state machine.
//
// An Engine moves through Unloaded → Loaded → InProgress → Completed.
// It is not safe for concurrent use: the presentation layer owns one
// engine and feeds it events one at a time.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
)

// Scoring weights applied per answer.
const (
	CorrectSelectScore   = 1
	IncorrectSelectScore = -1
)

// QuestionSource provides question data for an engine.
type QuestionSource interface {
	Questions(ctx context.Context) ([]entities.Question, error)
}

// State is the lifecycle stage of an engine.
type State int

const (
	StateUnloaded State = iota
	StateLoaded
	StateInProgress
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoaded:
		return "loaded"
	case StateInProgress:
		return "in_progress"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Engine holds the questions, selections and cursor of one quiz run.
type Engine struct {
	source QuestionSource

	original      []entities.Question // untruncated set, used by Reset
	questions     []entities.Question
	userName      string
	selectedCount int
	currentIndex  int
	finalScore    int
	result        entities.QuizResult
	state         State
}

// New creates an engine that fetches its questions from source.
func New(source QuestionSource) *Engine {
	return &Engine{source: source}
}

// Fetch retrieves questions from the source and loads them.
// The engine stays unloaded when the fetch fails.
func (e *Engine) Fetch(ctx context.Context) error {
	if e.state != StateUnloaded {
		return fmt.Errorf("fetch: %w", ErrInvalidState)
	}

	if e.source == nil {
		return fmt.Errorf("%w: no question source configured", ErrFetchFailed)
	}

	questions, err := e.source.Questions(ctx)
	if err != nil {
		if errors.Is(err, ErrInvalidData) || errors.Is(err, ErrFetchFailed) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	return e.Load(questions)
}

// Load replaces the question set. An empty set leaves the engine loaded
// but empty, and Start will refuse to run.
func (e *Engine) Load(questions []entities.Question) error {
	if e.state != StateUnloaded && e.state != StateLoaded {
		return fmt.Errorf("load: %w", ErrInvalidState)
	}

	for i := range questions {
		if err := questions[i].Validate(); err != nil {
			return fmt.Errorf("%w: question %d: %w", ErrInvalidData, i, err)
		}
	}

	loaded := entities.CloneQuestions(questions)
	for i := range loaded {
		loaded[i].ClearSelection()
	}

	e.original = loaded
	e.questions = entities.CloneQuestions(loaded)
	e.selectedCount = defaultCount(len(loaded))
	e.currentIndex = 0
	e.finalScore = 0
	e.state = StateLoaded

	if len(loaded) == 0 {
		return ErrNoQuestionsAvailable
	}

	return nil
}

// defaultCount picks half of the available questions, rounded, at least one.
func defaultCount(total int) int {
	if total == 0 {
		return 0
	}
	return max(1, int(math.Round(float64(total)/2)))
}

// SetUserName records the name shown with the final score.
func (e *Engine) SetUserName(name string) error {
	if err := e.requireLoaded(); err != nil {
		return err
	}

	e.userName = strings.TrimSpace(name)
	return nil
}

// SetSelectedCount sets how many questions the run will contain.
// Values outside [1, Total] are rejected, not clamped.
func (e *Engine) SetSelectedCount(n int) error {
	if err := e.requireLoaded(); err != nil {
		return err
	}

	if n < 1 || n > len(e.questions) {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidRange, n, len(e.questions))
	}

	e.selectedCount = n
	return nil
}

// Start truncates the question list to the selected count and shows
// the first question. The truncation cannot be undone except by Reset.
func (e *Engine) Start() error {
	if err := e.requireLoaded(); err != nil {
		return err
	}

	if len(e.questions) == 0 {
		return ErrNoQuestionsAvailable
	}

	if e.selectedCount < 1 || e.selectedCount > len(e.questions) {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidRange, e.selectedCount, len(e.questions))
	}

	e.questions = entities.CloneQuestions(e.questions[:e.selectedCount])
	e.currentIndex = 0
	e.state = StateInProgress

	return nil
}

// ToggleAnswer flips the selection of an answer of the current question.
func (e *Engine) ToggleAnswer(answerIndex int) error {
	if err := e.requireInProgress(); err != nil {
		return err
	}

	answers := e.questions[e.currentIndex].Answers
	if answerIndex < 0 || answerIndex >= len(answers) {
		return fmt.Errorf("answer %d: %w", answerIndex, ErrIndexOutOfRange)
	}

	answers[answerIndex].Selected = !answers[answerIndex].Selected
	return nil
}

// Move shifts the cursor by delta. A move past either end is rejected
// and the cursor stays where it was.
func (e *Engine) Move(delta int) error {
	if err := e.requireInProgress(); err != nil {
		return err
	}

	next := e.currentIndex + delta
	if next < 0 || next >= len(e.questions) {
		return fmt.Errorf("question %d: %w", next, ErrIndexOutOfRange)
	}

	e.currentIndex = next
	return nil
}

// PossibleScore is the maximum attainable score for the current questions.
func (e *Engine) PossibleScore() (int, error) {
	if e.state == StateUnloaded {
		return 0, ErrNotLoaded
	}
	return PossibleScore(e.questions), nil
}

// NetScore reports the score of the current selections without
// finishing the quiz.
func (e *Engine) NetScore() (int, error) {
	if e.state == StateUnloaded {
		return 0, ErrNotLoaded
	}
	return NetScore(e.questions), nil
}

// Score corrects the quiz, stores the final score and completes the run.
// Calling it again without changes returns the same value.
func (e *Engine) Score() (int, error) {
	switch e.state {
	case StateUnloaded:
		return 0, ErrNotLoaded
	case StateLoaded:
		return 0, fmt.Errorf("score: %w", ErrInvalidState)
	case StateCompleted:
		return e.finalScore, nil
	}

	e.finalScore = NetScore(e.questions)
	e.result = entities.NewQuizResult(e.userName, e.finalScore, PossibleScore(e.questions), len(e.questions))
	e.state = StateCompleted

	return e.finalScore, nil
}

// Result returns the outcome of a completed run.
func (e *Engine) Result() (entities.QuizResult, error) {
	if e.state != StateCompleted {
		return entities.QuizResult{}, fmt.Errorf("result: %w", ErrInvalidState)
	}

	return e.result, nil
}

// Reset restores the untruncated question set with selections cleared,
// keeping the user name and count.
func (e *Engine) Reset() error {
	if e.state == StateUnloaded {
		return ErrNotLoaded
	}

	e.questions = entities.CloneQuestions(e.original)
	if e.selectedCount > len(e.questions) {
		e.selectedCount = defaultCount(len(e.questions))
	}
	e.currentIndex = 0
	e.finalScore = 0
	e.result = entities.QuizResult{}
	e.state = StateLoaded

	return nil
}

func (e *Engine) State() State { return e.state }
func (e *Engine) UserName() string { return e.userName }
func (e *Engine) SelectedCount() int { return e.selectedCount }
func (e *Engine) CurrentIndex() int { return e.currentIndex }
func (e *Engine) FinalScore() int { return e.finalScore }
func (e *Engine) Total() int { return len(e.questions) }
func (e *Engine) Available() int { return len(e.original) }
func (e *Engine) IsFirst() bool { return e.currentIndex == 0 }
func (e *Engine) IsLast() bool { return e.currentIndex == len(e.questions)-1 }

// Current returns a copy of the question under the cursor.
func (e *Engine) Current() (entities.Question, error) {
	if e.state != StateInProgress && e.state != StateCompleted {
		if e.state == StateUnloaded {
			return entities.Question{}, ErrNotLoaded
		}
		return entities.Question{}, fmt.Errorf("current: %w", ErrInvalidState)
	}

	return e.questions[e.currentIndex].Clone(), nil
}

func (e *Engine) requireLoaded() error {
	switch e.state {
	case StateUnloaded:
		return ErrNotLoaded
	case StateLoaded:
		return nil
	default:
		return fmt.Errorf("quiz already started: %w", ErrInvalidState)
	}
}

func (e *Engine) requireInProgress() error {
	switch e.state {
	case StateUnloaded:
		return ErrNotLoaded
	case StateInProgress:
		return nil
	default:
		return fmt.Errorf("quiz is %s: %w", e.state, ErrInvalidState)
	}
}
