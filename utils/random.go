package utils

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"sonic/nn"
	"sonic/tensor"
)

// RandomLayers draws weights for the given widths (input first) uniformly
// from ±1/sqrt(fan-in). Biases start at zero. The same seed always yields the
// same layers.
func RandomLayers(arch []int, seed int64) ([]nn.Layer, error) {
	if len(arch) < 2 {
		return nil, fmt.Errorf("architecture must have at least 2 layers (input and output)")
	}
	src := rand.NewSource(uint64(seed))
	layers := make([]nn.Layer, len(arch)-1)
	for k := range layers {
		rows, cols := arch[k+1], arch[k]
		if rows <= 0 || cols <= 0 {
			return nil, fmt.Errorf("layer %d: widths must be positive, got %dx%d", k, rows, cols)
		}
		layers[k] = nn.Layer{
			Weights: randomMatrix(rows, cols, src),
			Biases:  tensor.Zeros(rows),
		}
	}
	return layers, nil
}

// RandomNetwork builds a Network from RandomLayers.
func RandomNetwork(arch []int, seed int64, opts ...nn.Option) (*nn.Network, error) {
	layers, err := RandomLayers(arch, seed)
	if err != nil {
		return nil, err
	}
	return nn.NewNetwork(layers, opts...)
}

// RandomInput draws n values uniformly from [0, 1).
func RandomInput(n int, seed int64) tensor.Vector {
	dist := distuv.Uniform{Min: 0, Max: 1, Src: rand.NewSource(uint64(seed))}
	out := make(tensor.Vector, n)
	for i := range out {
		out[i] = float32(dist.Rand())
	}
	return out
}

func randomMatrix(rows, cols int, src rand.Source) tensor.Matrix {
	dist := distuv.Uniform{
		Min: -1 / math.Sqrt(float64(cols)),
		Max: 1 / math.Sqrt(float64(cols)),
		Src: src,
	}
	m := make(tensor.Matrix, rows)
	for i := range m {
		m[i] = make(tensor.Vector, cols)
		for j := range m[i] {
			m[i][j] = float32(dist.Rand())
		}
	}
	return m
}
