package nn

import "errors"

// Domain errors for training operations.
var (
	// ErrDiverged indicates parameters or activations contain NaN or Inf.
	ErrDiverged = errors.New("nn: training diverged (NaN or Inf detected)")

	// ErrDimensionMismatch indicates mismatched input/output dimensions.
	ErrDimensionMismatch = errors.New("nn: dimension mismatch between sample and network")

	// ErrEmptyDataset indicates a training set with no samples.
	ErrEmptyDataset = errors.New("nn: empty training set")

	// ErrNotSetup indicates a trainer used before Setup completed.
	ErrNotSetup = errors.New("nn: trainer not set up")
)

// EpochError wraps an error with training context.
type EpochError struct {
	Epoch   int
	Wrapped error
}

func (e *EpochError) Error() string {
	return e.Wrapped.Error()
}

func (e *EpochError) Unwrap() error {
	return e.Wrapped
}
