package utils

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"sonic/tensor"
)

// Prediction is one ranked output neuron.
type Prediction struct {
	Class       int
	Score       float32
	Probability float64
}

// Softmax converts raw outputs into probabilities, computed in float64 for
// stability.
func Softmax(v tensor.Vector) []float64 {
	if len(v) == 0 {
		return nil
	}
	s := v.Float64s()
	lse := floats.LogSumExp(s)
	for i := range s {
		s[i] = math.Exp(s[i] - lse)
	}
	return s
}

// TopK ranks the k largest outputs, highest first. Ties keep index order.
func TopK(v tensor.Vector, k int) []Prediction {
	if k > len(v) {
		k = len(v)
	}
	if k <= 0 {
		return nil
	}
	probs := Softmax(v)

	// Argsort is ascending, so sort the negated scores.
	neg := v.Float64s()
	floats.Scale(-1, neg)
	inds := make([]int, len(neg))
	floats.ArgsortStable(neg, inds)

	out := make([]Prediction, k)
	for i := range out {
		idx := inds[i]
		out[i] = Prediction{Class: idx, Score: v[idx], Probability: probs[idx]}
	}
	return out
}
