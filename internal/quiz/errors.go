package quiz

import "errors"

var (
	ErrNoQuestionsAvailable = errors.New("no questions available")
	ErrInvalidRange         = errors.New("selected question count out of range")
	ErrIndexOutOfRange      = errors.New("index out of range")
	ErrNotLoaded            = errors.New("questions are not loaded")
	ErrInvalidData          = errors.New("invalid question data")
	ErrFetchFailed          = errors.New("failed to fetch questions")
	ErrInvalidState         = errors.New("operation not allowed in current quiz state")
)
