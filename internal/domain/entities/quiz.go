package entities

// QuizResult is the outcome of a completed quiz run.
type QuizResult struct {
	UserName       string // name the user entered before starting
	Score          int    // net score after rewards and penalties
	PossibleScore  int    // maximum attainable score for the run
	TotalQuestions int    // number of questions in the run
}

// NewQuizResult creates the result of a corrected run.
func NewQuizResult(userName string, score, possible, total int) QuizResult {
	return QuizResult{
		UserName:       userName,
		Score:          score,
		PossibleScore:  possible,
		TotalQuestions: total,
	}
}

// Percentage returns the score as a share of the possible score.
// Negative scores are reported as 0%.
func (r QuizResult) Percentage() float64 {
	if r.PossibleScore <= 0 || r.Score <= 0 {
		return 0
	}
	return float64(r.Score) / float64(r.PossibleScore) * 100
}
