package nn

import (
	"fmt"

	"sonic/tensor"
)

// Layer is one affine transform: a weight Matrix with one row per output
// neuron and a bias per row.
type Layer struct {
	Weights tensor.Matrix
	Biases  tensor.Vector
}

// NewLayer validates weights and biases and returns a Layer holding copies
// of both.
func NewLayer(weights tensor.Matrix, biases tensor.Vector) (Layer, error) {
	l := Layer{Weights: weights, Biases: biases}
	if err := l.validate(); err != nil {
		return Layer{}, err
	}
	return l.clone(), nil
}

// InputWidth is the Vector length every weight row expects.
func (l Layer) InputWidth() int {
	if len(l.Weights) == 0 {
		return 0
	}
	return len(l.Weights[0])
}

// OutputWidth is the number of neurons, i.e. the bias count.
func (l Layer) OutputWidth() int {
	return len(l.Biases)
}

// Params returns the number of weights plus biases.
func (l Layer) Params() int {
	return len(l.Weights)*l.InputWidth() + len(l.Biases)
}

func (l Layer) validate() error {
	rows, cols, ok := l.Weights.Dims()
	if rows == 0 {
		return fmt.Errorf("%w: no weight rows", ErrMalformedLayer)
	}
	if !ok {
		return fmt.Errorf("%w: weight rows have unequal widths", ErrMalformedLayer)
	}
	if cols == 0 {
		return fmt.Errorf("%w: weight rows are empty", ErrMalformedLayer)
	}
	if len(l.Biases) != rows {
		return fmt.Errorf("%w: %d biases for %d weight rows", ErrMalformedLayer, len(l.Biases), rows)
	}
	return nil
}

func (l Layer) clone() Layer {
	return Layer{Weights: l.Weights.Clone(), Biases: tensor.Clone(l.Biases)}
}
