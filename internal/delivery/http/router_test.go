package http

import (
	"context"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/quiz-bot/internal/repository"
)

const testSecret = "test-secret"

type memoryBank struct {
	questions []entities.Question
}

func (b *memoryBank) Questions(context.Context) ([]entities.Question, error) {
	return entities.CloneQuestions(b.questions), nil
}

func (b *memoryBank) Import(_ context.Context, qs []entities.Question) error {
	b.questions = entities.CloneQuestions(qs)
	return nil
}

type readOnlyBank struct{ memoryBank }

func (b readOnlyBank) Questions(ctx context.Context) ([]entities.Question, error) {
	return b.memoryBank.Questions(ctx)
}

type failingBank struct{}

func (failingBank) Questions(context.Context) ([]entities.Question, error) {
	return nil, errors.New("db down")
}

func newTestRouter(bank QuestionBank, ready func(context.Context) error) nethttp.Handler {
	return NewRouter(Options{
		Bank:        bank,
		Auth:        NewAuthService(testSecret),
		Logger:      zap.NewNop(),
		CORSOrigins: []string{"http://localhost:3000"},
		Ready:       ready,
	})
}

func do(t *testing.T, h nethttp.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func adminToken(t *testing.T, role string) string {
	t.Helper()
	tok, err := NewAuthService(testSecret).IssueToken("tester", role, time.Hour)
	require.NoError(t, err)
	return tok
}

func bankFixture() []entities.Question {
	return []entities.Question{
		{Prompt: "Pick primes", Category: "math", Answers: []entities.Answer{
			{Text: "2", Correct: true}, {Text: "4"},
		}},
	}
}

const validBody = `[{"question":"Pick vowels","category":"letters","answers":[{"answer":"a","correct":true},{"answer":"b","correct":false}]}]`

func TestListQuestions(t *testing.T) {
	h := newTestRouter(&memoryBank{questions: bankFixture()}, nil)

	rec := do(t, h, nethttp.MethodGet, "/questions", "", "")
	require.Equal(t, nethttp.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	got, err := repository.DecodeQuestions(rec.Body)
	require.NoError(t, err)
	require.Equal(t, bankFixture(), got)
}

func TestListQuestionsStoreError(t *testing.T) {
	rec := do(t, newTestRouter(failingBank{}, nil), nethttp.MethodGet, "/questions", "", "")
	require.Equal(t, nethttp.StatusInternalServerError, rec.Code)
}

func TestReplaceQuestions(t *testing.T) {
	bank := &memoryBank{questions: bankFixture()}
	h := newTestRouter(bank, nil)

	tests := []struct {
		name   string
		body   string
		token  string
		status int
	}{
		{name: "no token", body: validBody, status: nethttp.StatusUnauthorized},
		{name: "bad token", body: validBody, token: "garbage", status: nethttp.StatusUnauthorized},
		{name: "wrong role", body: validBody, token: adminToken(t, "viewer"), status: nethttp.StatusForbidden},
		{name: "malformed body", body: `[{"question":"x"}]`, token: adminToken(t, RoleAdmin), status: nethttp.StatusBadRequest},
		{name: "ok", body: validBody, token: adminToken(t, RoleAdmin), status: nethttp.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, nethttp.MethodPut, "/questions", tt.body, tt.token)
			require.Equal(t, tt.status, rec.Code)
		})
	}

	require.Len(t, bank.questions, 1)
	require.Equal(t, "Pick vowels", bank.questions[0].Prompt)
}

func TestReplaceQuestionsReadOnly(t *testing.T) {
	h := newTestRouter(readOnlyBank{memoryBank{questions: bankFixture()}}, nil)

	rec := do(t, h, nethttp.MethodPut, "/questions", validBody, adminToken(t, RoleAdmin))
	require.Equal(t, nethttp.StatusNotImplemented, rec.Code)
}

func TestTokenFromOtherSecretRejected(t *testing.T) {
	tok, err := NewAuthService("other").IssueToken("tester", RoleAdmin, time.Hour)
	require.NoError(t, err)

	rec := do(t, newTestRouter(&memoryBank{}, nil), nethttp.MethodPut, "/questions", validBody, tok)
	require.Equal(t, nethttp.StatusUnauthorized, rec.Code)
}

func TestExpiredTokenRejected(t *testing.T) {
	_, err := NewAuthService(testSecret).Parse(func() string {
		tok, err := NewAuthService(testSecret).IssueToken("tester", RoleAdmin, -time.Minute)
		require.NoError(t, err)
		return tok
	}())
	require.Error(t, err)
}

func TestHealthAndReadiness(t *testing.T) {
	h := newTestRouter(&memoryBank{}, nil)
	require.Equal(t, nethttp.StatusOK, do(t, h, nethttp.MethodGet, "/healthz", "", "").Code)
	require.Equal(t, nethttp.StatusOK, do(t, h, nethttp.MethodGet, "/readyz", "", "").Code)

	h = newTestRouter(&memoryBank{}, func(context.Context) error { return errors.New("no db") })
	require.Equal(t, nethttp.StatusServiceUnavailable, do(t, h, nethttp.MethodGet, "/readyz", "", "").Code)
}

func TestCORSPreflight(t *testing.T) {
	h := newTestRouter(&memoryBank{}, nil)

	req := httptest.NewRequest(nethttp.MethodOptions, "/questions", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", nethttp.MethodPut)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
