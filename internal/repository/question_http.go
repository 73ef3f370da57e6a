package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/quiz-bot/internal/quiz"
)

// HTTPQuestionSource fetches the question set from a JSON endpoint.
type HTTPQuestionSource struct {
	url    string
	client *http.Client
}

// NewHTTPQuestionSource creates a source for url. The timeout bounds a
// single fetch; zero means no client-side timeout.
func NewHTTPQuestionSource(url string, timeout time.Duration) *HTTPQuestionSource {
	return &HTTPQuestionSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Questions performs one GET request and decodes the response body.
func (s *HTTPQuestionSource) Questions(ctx context.Context) ([]entities.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", quiz.ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", quiz.ErrFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %s", quiz.ErrFetchFailed, resp.Status)
	}

	return DecodeQuestions(resp.Body)
}
