package repository

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/quiz-bot/internal/quiz"
)

// questionRecord is the wire shape served by question sources.
type questionRecord struct {
	Question *string        `json:"question"`
	Category string         `json:"category"`
	Answers  []answerRecord `json:"answers"`
}

type answerRecord struct {
	Answer  *string `json:"answer"`
	Correct *bool   `json:"correct"`
}

// DecodeQuestions reads a JSON array of question records.
// Any shape violation is reported as quiz.ErrInvalidData.
func DecodeQuestions(r io.Reader) ([]entities.Question, error) {
	var records []questionRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: decode questions: %w", quiz.ErrInvalidData, err)
	}

	questions := make([]entities.Question, 0, len(records))
	for i, rec := range records {
		q, err := rec.toEntity()
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", quiz.ErrInvalidData, i, err)
		}
		questions = append(questions, q)
	}

	return questions, nil
}

// EncodeQuestions writes questions in the wire shape.
func EncodeQuestions(w io.Writer, questions []entities.Question) error {
	records := make([]questionRecord, 0, len(questions))
	for _, q := range questions {
		records = append(records, fromEntity(q))
	}

	return json.NewEncoder(w).Encode(records)
}

func (r questionRecord) toEntity() (entities.Question, error) {
	if r.Question == nil {
		return entities.Question{}, fmt.Errorf("missing field %q", "question")
	}

	q := entities.Question{
		Prompt:   *r.Question,
		Category: r.Category,
		Answers:  make([]entities.Answer, 0, len(r.Answers)),
	}

	for i, a := range r.Answers {
		if a.Answer == nil || a.Correct == nil {
			return entities.Question{}, fmt.Errorf("answer %d: missing text or correctness flag", i)
		}
		q.Answers = append(q.Answers, entities.Answer{Text: *a.Answer, Correct: *a.Correct})
	}

	if err := q.Validate(); err != nil {
		return entities.Question{}, err
	}

	return q, nil
}

func fromEntity(q entities.Question) questionRecord {
	prompt := q.Prompt
	rec := questionRecord{
		Question: &prompt,
		Category: q.Category,
		Answers:  make([]answerRecord, 0, len(q.Answers)),
	}

	for _, a := range q.Answers {
		text, correct := a.Text, a.Correct
		rec.Answers = append(rec.Answers, answerRecord{Answer: &text, Correct: &correct})
	}

	return rec
}
