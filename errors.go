package geneva

import "github.com/pkg/errors"

// Sentinel errors surfaced to the embedding host, per the exit-code
// taxonomy: ok on any halt, ErrBadConfig on invalid configuration,
// ErrNoIndividual if the engine is started with an empty population.
var (
	ErrBadConfig    = errors.New("geneva: invalid configuration")
	ErrNoIndividual = errors.New("geneva: no individual to seed the population")
)

// EvaluationError wraps a failure returned by a user objective function.
// The individual that produced it is dropped by the engine after the
// evaluate phase; it never causes the engine itself to fail unless every
// individual in a generation errors.
type EvaluationError struct {
	Cause error
}

func (e *EvaluationError) Error() string { return "geneva: evaluation failed: " + e.Cause.Error() }
func (e *EvaluationError) Unwrap() error { return e.Cause }

// NewEvaluationError wraps cause as an EvaluationError.
func NewEvaluationError(cause error) *EvaluationError {
	return &EvaluationError{Cause: cause}
}
