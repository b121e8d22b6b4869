package interview

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no interview exists for the given id.
var ErrNotFound = errors.New("interview: not found")

// ErrTooManyAnswers is returned when a patch carries more answers than the
// fixed question count.
var ErrTooManyAnswers = errors.New("interview: too many answers")

// Patch carries the optional fields of a partial update. Nil fields are
// left untouched.
type Patch struct {
	Answers     []Answer
	Score       *int
	Feedback    *string
	TabSwitches *int
	Duration    *int
	Completed   *bool
}

// Store defines how interviews are stored and retrieved.
//
// Update with Completed=true must stamp the completion timestamp in the
// same write and must leave already-completed rows untouched. An answers
// slice longer than QuestionCount is rejected with ErrTooManyAnswers
// before anything is written. Concurrent
// updates to one id are not expected under the single-candidate model;
// where they happen anyway, last write wins.
type Store interface {
	Create(ctx context.Context, role string) (*Interview, error)
	Get(ctx context.Context, id string) (*Interview, error)
	Update(ctx context.Context, id string, p Patch) (*Interview, error)
}
