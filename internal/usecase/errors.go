package usecase

import (
	"errors"
	"fmt"
)

// ErrCompletionOverloaded reports that every completion attempt failed with
// a retryable upstream error. CompletionClient implementations return it,
// possibly wrapped, once their retry budget is spent; the turn answers with
// the fixed overload reply.
var ErrCompletionOverloaded = errors.New("usecase: completion attempts exhausted")

// CompletionFatalError wraps a completion failure that must not be retried.
// Its detail is surfaced to the customer after the fixed error prefix.
type CompletionFatalError struct {
	Err error
}

func (e *CompletionFatalError) Error() string {
	return fmt.Sprintf("usecase: fatal completion failure: %v", e.Err)
}

func (e *CompletionFatalError) Unwrap() error {
	return e.Err
}
