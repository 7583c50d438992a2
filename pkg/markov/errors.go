package markov

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTable is returned when sampling a SuccessorTable that never
	// recorded a successor.
	ErrEmptyTable = errors.New("markov: successor table is empty")
	// ErrNoStartContext is returned when a model has no context that can
	// begin a sentence, e.g. the corpus had no terminal tokens.
	ErrNoStartContext = errors.New("markov: model has no start context")
	// ErrUnknownContext is matched by every *UnknownContextError.
	ErrUnknownContext = errors.New("markov: context not in model")
	// ErrStepLimit is returned when a sentence walk exceeds its step bound
	// without sampling a terminal token.
	ErrStepLimit = errors.New("markov: sentence exceeded step limit")
	// ErrFinalized is returned when mutating a model after Finalize.
	ErrFinalized = errors.New("markov: model is finalized")
	// ErrInvalidOrder is returned by NewModel for an order below 1.
	ErrInvalidOrder = errors.New("markov: order must be at least 1")
	// ErrInvalidLength is returned for a negative step or sentence count.
	ErrInvalidLength = errors.New("markov: length must not be negative")
	// ErrInvalidContext is returned when a caller-supplied start context
	// does not have exactly Order tokens.
	ErrInvalidContext = errors.New("markov: context length does not match model order")
)

// UnknownContextError reports a walk that reached a context with no entry in
// the model. It indicates a corpus/model inconsistency, so retrying with the
// same seed fails the same way.
type UnknownContextError struct {
	Context Context
}

func (e *UnknownContextError) Error() string {
	return fmt.Sprintf("markov: context %q not in model", e.Context.String())
}

// Is lets errors.Is(err, ErrUnknownContext) match.
func (e *UnknownContextError) Is(target error) bool {
	return target == ErrUnknownContext
}
