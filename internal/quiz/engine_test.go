package quiz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
)

type stubSource struct {
	questions []entities.Question
	err       error
	calls     int
}

func (s *stubSource) Questions(_ context.Context) ([]entities.Question, error) {
	s.calls++
	return s.questions, s.err
}

func sampleQuestions(n int) []entities.Question {
	out := make([]entities.Question, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, entities.Question{
			Prompt:   "Which are even?",
			Category: "math",
			Answers: []entities.Answer{
				{Text: "2", Correct: true},
				{Text: "3"},
				{Text: "4", Correct: true},
			},
		})
	}
	return out
}

func startedEngine(t *testing.T, questions []entities.Question, count int) *Engine {
	t.Helper()

	e := New(nil)
	require.NoError(t, e.Load(questions))
	require.NoError(t, e.SetSelectedCount(count))
	require.NoError(t, e.Start())
	return e
}

func TestFetchLoadsQuestions(t *testing.T) {
	src := &stubSource{questions: sampleQuestions(4)}
	e := New(src)

	require.NoError(t, e.Fetch(context.Background()))
	require.Equal(t, StateLoaded, e.State())
	require.Equal(t, 4, e.Total())
	require.Equal(t, 2, e.SelectedCount())
	require.Equal(t, 1, src.calls)
}

func TestFetchFailureKeepsEngineUnloaded(t *testing.T) {
	e := New(&stubSource{err: errors.New("connection refused")})

	err := e.Fetch(context.Background())
	require.ErrorIs(t, err, ErrFetchFailed)
	require.Equal(t, StateUnloaded, e.State())

	require.ErrorIs(t, e.Start(), ErrNotLoaded)
	require.ErrorIs(t, e.SetUserName("bob"), ErrNotLoaded)
	require.ErrorIs(t, e.ToggleAnswer(0), ErrNotLoaded)
	require.ErrorIs(t, e.Move(1), ErrNotLoaded)

	_, err = e.Score()
	require.ErrorIs(t, err, ErrNotLoaded)
}

func TestFetchPassesInvalidDataThrough(t *testing.T) {
	e := New(&stubSource{err: ErrInvalidData})

	err := e.Fetch(context.Background())
	require.ErrorIs(t, err, ErrInvalidData)
	require.NotErrorIs(t, err, ErrFetchFailed)
}

func TestFetchWithoutSource(t *testing.T) {
	require.ErrorIs(t, New(nil).Fetch(context.Background()), ErrFetchFailed)
}

func TestLoadRejectsMalformedQuestions(t *testing.T) {
	e := New(nil)
	require.NoError(t, e.Load(sampleQuestions(2)))

	bad := []entities.Question{{Prompt: "no answers"}}
	require.ErrorIs(t, e.Load(bad), ErrInvalidData)

	// previous state is kept
	require.Equal(t, 2, e.Total())
}

func TestLoadEmptyThenStart(t *testing.T) {
	e := New(nil)

	require.ErrorIs(t, e.Load(nil), ErrNoQuestionsAvailable)
	require.Equal(t, StateLoaded, e.State())
	require.ErrorIs(t, e.Start(), ErrNoQuestionsAvailable)
	require.Equal(t, StateLoaded, e.State())
}

func TestLoadClearsIncomingSelections(t *testing.T) {
	qs := sampleQuestions(1)
	qs[0].Answers[1].Selected = true

	e := startedEngine(t, qs, 1)
	cur, err := e.Current()
	require.NoError(t, err)
	require.False(t, cur.Answers[1].Selected)

	// the caller's slice is not aliased
	require.True(t, qs[0].Answers[1].Selected)
}

func TestSetSelectedCountRange(t *testing.T) {
	e := New(nil)
	require.NoError(t, e.Load(sampleQuestions(5)))

	tests := []struct {
		n       int
		wantErr bool
	}{
		{n: 0, wantErr: true},
		{n: -1, wantErr: true},
		{n: 6, wantErr: true},
		{n: 1},
		{n: 5},
	}

	for _, tt := range tests {
		err := e.SetSelectedCount(tt.n)
		if tt.wantErr {
			require.ErrorIs(t, err, ErrInvalidRange, "n=%d", tt.n)
			continue
		}
		require.NoError(t, err, "n=%d", tt.n)
		require.Equal(t, tt.n, e.SelectedCount())
	}
}

func TestDefaultCount(t *testing.T) {
	require.Equal(t, 0, defaultCount(0))
	require.Equal(t, 1, defaultCount(1))
	require.Equal(t, 1, defaultCount(2))
	require.Equal(t, 2, defaultCount(3))
	require.Equal(t, 5, defaultCount(10))
}

func TestSetUserNameTrims(t *testing.T) {
	e := New(nil)
	require.NoError(t, e.Load(sampleQuestions(1)))
	require.NoError(t, e.SetUserName("  Ada  "))
	require.Equal(t, "Ada", e.UserName())
}

func TestStartTruncates(t *testing.T) {
	for k := 1; k <= 5; k++ {
		e := startedEngine(t, sampleQuestions(5), k)
		require.Equal(t, k, e.Total())
		require.Equal(t, 0, e.CurrentIndex())
		require.Equal(t, StateInProgress, e.State())
		require.Equal(t, 5, e.Available())
	}
}

func TestStartTwiceFails(t *testing.T) {
	e := startedEngine(t, sampleQuestions(3), 2)

	require.ErrorIs(t, e.Start(), ErrInvalidState)
	require.ErrorIs(t, e.SetSelectedCount(1), ErrInvalidState)
	require.ErrorIs(t, e.SetUserName("x"), ErrInvalidState)
	require.Equal(t, 2, e.Total())
}

func TestToggleAnswerInvolution(t *testing.T) {
	e := startedEngine(t, sampleQuestions(1), 1)

	require.NoError(t, e.ToggleAnswer(1))
	cur, _ := e.Current()
	require.True(t, cur.Answers[1].Selected)

	require.NoError(t, e.ToggleAnswer(1))
	cur, _ = e.Current()
	require.False(t, cur.Answers[1].Selected)
}

func TestToggleAnswerAllowsMultiSelect(t *testing.T) {
	e := startedEngine(t, sampleQuestions(1), 1)

	for i := 0; i < 3; i++ {
		require.NoError(t, e.ToggleAnswer(i))
	}

	cur, _ := e.Current()
	for _, a := range cur.Answers {
		require.True(t, a.Selected)
	}
}

func TestToggleAnswerOutOfRange(t *testing.T) {
	e := startedEngine(t, sampleQuestions(1), 1)

	require.ErrorIs(t, e.ToggleAnswer(-1), ErrIndexOutOfRange)
	require.ErrorIs(t, e.ToggleAnswer(3), ErrIndexOutOfRange)
}

func TestToggleBeforeStart(t *testing.T) {
	e := New(nil)
	require.NoError(t, e.Load(sampleQuestions(1)))
	require.ErrorIs(t, e.ToggleAnswer(0), ErrInvalidState)
	require.ErrorIs(t, e.Move(1), ErrInvalidState)
}

func TestMoveBounds(t *testing.T) {
	e := startedEngine(t, sampleQuestions(3), 3)

	require.ErrorIs(t, e.Move(-1), ErrIndexOutOfRange)
	require.Equal(t, 0, e.CurrentIndex())
	require.True(t, e.IsFirst())

	require.NoError(t, e.Move(1))
	require.NoError(t, e.Move(1))
	require.True(t, e.IsLast())

	require.ErrorIs(t, e.Move(1), ErrIndexOutOfRange)
	require.Equal(t, 2, e.CurrentIndex())

	require.NoError(t, e.Move(-2))
	require.Equal(t, 0, e.CurrentIndex())
}

func TestSelectionsSurviveNavigation(t *testing.T) {
	e := startedEngine(t, sampleQuestions(2), 2)

	require.NoError(t, e.ToggleAnswer(0))
	require.NoError(t, e.Move(1))
	require.NoError(t, e.Move(-1))

	cur, _ := e.Current()
	require.True(t, cur.Answers[0].Selected)
}

func TestScoreScenarios(t *testing.T) {
	tests := []struct {
		name         string
		answers      []entities.Answer
		wantScore    int
		wantPossible int
	}{
		{
			name: "correct chosen, wrong ignored",
			answers: []entities.Answer{
				{Text: "a", Correct: true, Selected: true},
				{Text: "b", Correct: false, Selected: false},
			},
			wantScore:    1,
			wantPossible: 1,
		},
		{
			name: "correct missed, wrong chosen",
			answers: []entities.Answer{
				{Text: "a", Correct: true, Selected: false},
				{Text: "b", Correct: false, Selected: true},
			},
			wantScore:    -2,
			wantPossible: 1,
		},
		{
			name: "nothing chosen",
			answers: []entities.Answer{
				{Text: "a", Correct: true},
				{Text: "b", Correct: true},
				{Text: "c"},
			},
			wantScore:    -2,
			wantPossible: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs := []entities.Question{{Prompt: "q", Answers: tt.answers}}
			e := startedEngine(t, qs, 1)

			// apply selections through the engine since Load clears them
			for i, a := range tt.answers {
				if a.Selected {
					require.NoError(t, e.ToggleAnswer(i))
				}
			}

			got, err := e.Score()
			require.NoError(t, err)
			require.Equal(t, tt.wantScore, got)
			possible, err := e.PossibleScore()
			require.NoError(t, err)
			require.Equal(t, tt.wantPossible, possible)
			require.Equal(t, StateCompleted, e.State())
			require.Equal(t, tt.wantScore, e.FinalScore())
		})
	}
}

func TestScoreNeverExceedsPossible(t *testing.T) {
	qs := sampleQuestions(1)

	// every subset of the three answers
	for mask := 0; mask < 1<<3; mask++ {
		e := startedEngine(t, qs, 1)
		for i := 0; i < 3; i++ {
			if mask&(1<<i) != 0 {
				require.NoError(t, e.ToggleAnswer(i))
			}
		}

		net, err := e.NetScore()
		require.NoError(t, err)
		possible, err := e.PossibleScore()
		require.NoError(t, err)
		require.LessOrEqual(t, net, possible, "mask=%03b", mask)
	}
}

func TestPossibleScoreIgnoresSelection(t *testing.T) {
	e := startedEngine(t, sampleQuestions(2), 2)
	before, err := e.PossibleScore()
	require.NoError(t, err)

	require.NoError(t, e.ToggleAnswer(0))
	require.NoError(t, e.ToggleAnswer(1))

	after, err := e.PossibleScore()
	require.NoError(t, err)
	require.Equal(t, before, after)
	require.Equal(t, 4, before)
}

func TestScoreIsIdempotent(t *testing.T) {
	e := startedEngine(t, sampleQuestions(2), 2)
	require.NoError(t, e.ToggleAnswer(0))

	first, err := e.Score()
	require.NoError(t, err)
	second, err := e.Score()
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestCompletedQuizIsFrozen(t *testing.T) {
	e := startedEngine(t, sampleQuestions(2), 2)
	_, err := e.Score()
	require.NoError(t, err)

	require.ErrorIs(t, e.ToggleAnswer(0), ErrInvalidState)
	require.ErrorIs(t, e.Move(1), ErrInvalidState)
}

func TestScoreBeforeStart(t *testing.T) {
	e := New(nil)
	require.NoError(t, e.Load(sampleQuestions(1)))

	_, err := e.Score()
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestResult(t *testing.T) {
	e := startedEngine(t, sampleQuestions(3), 2)
	require.NoError(t, e.ToggleAnswer(0))

	_, err := e.Result()
	require.ErrorIs(t, err, ErrInvalidState)

	_, err = e.Score()
	require.NoError(t, err)

	res, err := e.Result()
	require.NoError(t, err)
	require.Equal(t, 2, res.TotalQuestions)
	require.Equal(t, 4, res.PossibleScore)
	require.Equal(t, -2, res.Score)

	v := e.Snapshot()
	require.NotNil(t, v.Result)
	require.Equal(t, res, *v.Result)

	require.NoError(t, e.Reset())
	require.Nil(t, e.Snapshot().Result)
}

func TestScoresBeforeLoad(t *testing.T) {
	e := New(nil)

	_, err := e.PossibleScore()
	require.ErrorIs(t, err, ErrNotLoaded)
	_, err = e.NetScore()
	require.ErrorIs(t, err, ErrNotLoaded)

	require.NoError(t, e.Load(sampleQuestions(2)))
	possible, err := e.PossibleScore()
	require.NoError(t, err)
	require.Equal(t, 4, possible)
}

func TestResetRestoresUntruncatedSet(t *testing.T) {
	e := New(nil)
	require.NoError(t, e.Load(sampleQuestions(5)))
	require.NoError(t, e.SetUserName("Ada"))
	require.NoError(t, e.SetSelectedCount(2))
	require.NoError(t, e.Start())
	require.NoError(t, e.ToggleAnswer(0))
	_, err := e.Score()
	require.NoError(t, err)

	require.NoError(t, e.Reset())
	require.Equal(t, StateLoaded, e.State())
	require.Equal(t, 5, e.Total())
	require.Equal(t, "Ada", e.UserName())
	require.Equal(t, 0, e.FinalScore())

	require.NoError(t, e.SetSelectedCount(5))
	require.NoError(t, e.Start())
	cur, _ := e.Current()
	require.False(t, cur.Answers[0].Selected)
}

func TestResetBeforeLoad(t *testing.T) {
	require.ErrorIs(t, New(nil).Reset(), ErrNotLoaded)
}

func TestSnapshotIsDetached(t *testing.T) {
	e := startedEngine(t, sampleQuestions(2), 2)

	v := e.Snapshot()
	require.NotNil(t, v.Question)
	require.Nil(t, v.Questions)
	v.Question.Answers[0].Selected = true

	cur, _ := e.Current()
	require.False(t, cur.Answers[0].Selected)
	require.True(t, v.IsFirst())
	require.False(t, v.IsLast())
}

func TestSnapshotCompleted(t *testing.T) {
	e := startedEngine(t, sampleQuestions(2), 2)
	require.NoError(t, e.ToggleAnswer(0))
	_, err := e.Score()
	require.NoError(t, err)

	v := e.Snapshot()
	require.Equal(t, StateCompleted, v.State)
	require.Len(t, v.Questions, 2)
	require.Equal(t, e.FinalScore(), v.Score)
}
