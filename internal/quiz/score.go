package quiz

import "github.com/aliskhannn/quiz-bot/internal/domain/entities"

// PossibleScore sums the reward of every correct answer.
// Selections do not affect it.
func PossibleScore(questions []entities.Question) int {
	total := 0
	for _, q := range questions {
		total += q.CorrectCount() * CorrectSelectScore
	}
	return total
}

// NetScore applies rewards and penalties to every answer:
// a chosen correct answer earns a point, a missed correct answer or a
// chosen wrong answer costs one, and an ignored wrong answer is neutral.
func NetScore(questions []entities.Question) int {
	total := 0
	for _, q := range questions {
		for _, a := range q.Answers {
			total += answerScore(a)
		}
	}
	return total
}

func answerScore(a entities.Answer) int {
	switch {
	case a.Correct && a.Selected:
		return CorrectSelectScore
	case !a.Correct && !a.Selected:
		return 0
	default:
		return IncorrectSelectScore
	}
}
