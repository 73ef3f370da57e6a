// Package entities contains domain entities used across the application.
package entities

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyPrompt     = errors.New("question prompt is empty")
	ErrNoAnswers       = errors.New("question has no answers")
	ErrEmptyAnswerText = errors.New("answer text is empty")
)

// Answer is a single selectable option of a question.
// Correct is fixed at load time, Selected reflects user input.
type Answer struct {
	Text     string `json:"answer"`  // answer text shown to the user
	Correct  bool   `json:"correct"` // whether selecting this answer is right
	Selected bool   `json:"-"`       // whether the user has marked this answer
}

// Question is a prompt with an ordered list of answers.
// Answer order is significant: it is both the presentation order
// and the index used by toggle operations.
type Question struct {
	Prompt   string   `json:"question"` // question text
	Category string   `json:"category"` // free-form category label
	Answers  []Answer `json:"answers"`  // answers in presentation order
}

// Validate checks that the question is well-formed.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return ErrEmptyPrompt
	}

	if len(q.Answers) == 0 {
		return ErrNoAnswers
	}

	for i, a := range q.Answers {
		if strings.TrimSpace(a.Text) == "" {
			return fmt.Errorf("answer %d: %w", i, ErrEmptyAnswerText)
		}
	}

	return nil
}

// CorrectCount returns the number of answers marked as correct.
func (q *Question) CorrectCount() int {
	n := 0
	for _, a := range q.Answers {
		if a.Correct {
			n++
		}
	}
	return n
}

// ClearSelection unmarks every answer.
func (q *Question) ClearSelection() {
	for i := range q.Answers {
		q.Answers[i].Selected = false
	}
}

// Clone returns a deep copy of the question.
func (q Question) Clone() Question {
	answers := make([]Answer, len(q.Answers))
	copy(answers, q.Answers)
	q.Answers = answers
	return q
}

// CloneQuestions deep-copies a list of questions.
func CloneQuestions(questions []Question) []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		out[i] = q.Clone()
	}
	return out
}
