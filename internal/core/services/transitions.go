package services

import (
	"fmt"

	"github.com/buchwerk/buchwerk/internal/apperrors"
)

// InvalidTransitionError reports an attempted document status transition that
// the lifecycle does not allow. It unwraps to apperrors.ErrConflict so
// callers can treat it uniformly.
type InvalidTransitionError struct {
	Entity    string
	From      string
	Attempted string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s cannot move from %s to %s", e.Entity, e.From, e.Attempted)
}

func (e *InvalidTransitionError) Unwrap() error {
	return apperrors.ErrConflict
}

// guardTransition returns an InvalidTransitionError unless current is one of
// the allowed source statuses for the attempted target.
func guardTransition[S ~string](entity string, current S, attempted S, allowed ...S) error {
	for _, a := range allowed {
		if current == a {
			return nil
		}
	}
	return &InvalidTransitionError{
		Entity:    entity,
		From:      string(current),
		Attempted: string(attempted),
	}
}
