package engine

import (
	"context"
	"errors"
	"fmt"
)

// ErrScoringUnavailable marks comparisons that could not be scored because no
// embedding backend answered.
var ErrScoringUnavailable = errors.New("scoring unavailable")

// ScoringUnavailableError is returned per document when both the primary and
// the fallback embedding paths failed.
type ScoringUnavailableError struct {
	Document string
	Err      error
}

func (e *ScoringUnavailableError) Error() string {
	if e.Document == "" {
		return fmt.Sprintf("%s: %v", ErrScoringUnavailable, e.Err)
	}
	return fmt.Sprintf("%s for %s: %v", ErrScoringUnavailable, e.Document, e.Err)
}

func (e *ScoringUnavailableError) Unwrap() []error {
	return []error{ErrScoringUnavailable, e.Err}
}

func unavailable(document string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &ScoringUnavailableError{Document: document, Err: err}
}
