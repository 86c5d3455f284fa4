package nn

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch matches any *DimensionMismatchError via errors.Is.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrMalformedLayer reports a layer whose weights and biases disagree.
	ErrMalformedLayer = errors.New("malformed layer")
	// ErrChainMismatch matches any *ChainMismatchError via errors.Is.
	ErrChainMismatch = errors.New("layer chain mismatch")
)

// DimensionMismatchError is returned by Predict when the Vector flowing into
// a layer does not have the width that layer's rows expect.
type DimensionMismatchError struct {
	Layer    int
	Expected int
	Actual   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("layer %d: dimension mismatch: expected input width %d, got %d", e.Layer, e.Expected, e.Actual)
}

func (e *DimensionMismatchError) Is(target error) bool {
	return target == ErrDimensionMismatch
}

// ChainMismatchError is returned at construction when layer Layer expects
// inputs of width Expected but the previous layer produces Actual outputs.
type ChainMismatchError struct {
	Layer    int
	Expected int
	Actual   int
}

func (e *ChainMismatchError) Error() string {
	return fmt.Sprintf("layer %d: expects input width %d but layer %d outputs %d", e.Layer, e.Expected, e.Layer-1, e.Actual)
}

func (e *ChainMismatchError) Is(target error) bool {
	return target == ErrChainMismatch
}
