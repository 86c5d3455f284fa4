package nn

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Activation is an elementwise nonlinearity applied to a layer's affine
// output before it becomes the next layer's input.
type Activation func(x float32) float32

// ErrUnknownActivation is returned by ParseActivation for unregistered names.
var ErrUnknownActivation = errors.New("unknown activation")

// Abs is the default nonlinearity.
func Abs(x float32) float32 {
	return float32(math.Abs(float64(x)))
}

// ReLU clamps negative values to zero.
func ReLU(x float32) float32 {
	if x < 0 {
		return 0
	}
	return x
}

func Tanh(x float32) float32 {
	return float32(math.Tanh(float64(x)))
}

func Sigmoid(x float32) float32 {
	return float32(1.0 / (1.0 + math.Exp(-float64(x))))
}

// Identity leaves x unchanged; a network using it is purely affine.
func Identity(x float32) float32 {
	return x
}

// ActivationLookup maps configuration names to activations.
var ActivationLookup = map[string]Activation{
	"abs":      Abs,
	"relu":     ReLU,
	"tanh":     Tanh,
	"sigmoid":  Sigmoid,
	"identity": Identity,
}

// ParseActivation resolves a name from ActivationLookup, case-insensitively.
// The empty name selects Abs.
func ParseActivation(name string) (Activation, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Abs, nil
	}
	act, ok := ActivationLookup[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownActivation, name)
	}
	return act, nil
}
