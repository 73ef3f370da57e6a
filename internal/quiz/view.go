package quiz

import "github.com/aliskhannn/quiz-bot/internal/domain/entities"

// View is a read-only copy of the engine state for renderers.
type View struct {
	State         State
	UserName      string
	SelectedCount int
	Available     int // questions loaded before truncation
	Total         int // questions in the current list
	Index         int
	Question      *entities.Question  // current question while in progress or completed
	Questions     []entities.Question // full run, only once completed
	Score         int
	PossibleScore int
	Result        *entities.QuizResult // set once completed
}

// IsFirst reports whether the cursor is on the first question.
func (v View) IsFirst() bool { return v.Index == 0 }

// IsLast reports whether the cursor is on the last question.
func (v View) IsLast() bool { return v.Index == v.Total-1 }

// Snapshot copies the engine state. Mutating the result has no effect
// on the engine.
func (e *Engine) Snapshot() View {
	v := View{
		State:         e.state,
		UserName:      e.userName,
		SelectedCount: e.selectedCount,
		Available:     len(e.original),
		Total:         len(e.questions),
		Index:         e.currentIndex,
		PossibleScore: PossibleScore(e.questions),
	}

	switch e.state {
	case StateInProgress:
		q := e.questions[e.currentIndex].Clone()
		v.Question = &q
	case StateCompleted:
		q := e.questions[e.currentIndex].Clone()
		v.Question = &q
		v.Questions = entities.CloneQuestions(e.questions)
		v.Score = e.finalScore
		res := e.result
		v.Result = &res
	}

	return v
}
