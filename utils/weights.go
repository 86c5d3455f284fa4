package utils

import (
	"encoding/json"
	"fmt"
	"os"

	"sonic/nn"
	"sonic/tensor"
)

// WeightsVersion is written into every saved weights file.
const WeightsVersion = "1.0"

// WeightData represents serializable weight data for a layer
type WeightData struct {
	Name  string    `json:"name"`
	Shape []int     `json:"shape"`
	Data  []float32 `json:"data"`
}

// ModelWeights represents all weights in a model, in evaluation order.
type ModelWeights struct {
	Version      string        `json:"version"`
	Activation   string        `json:"activation,omitempty"`
	LinearOutput bool          `json:"linear_output,omitempty"`
	Layers       []LayerWeight `json:"layers"`
}

// LayerWeight contains weights and bias for a layer
type LayerWeight struct {
	Weight *WeightData `json:"weight"`
	Bias   *WeightData `json:"bias"`
}

// SaveWeights saves model weights to a JSON file
func SaveWeights(filepath string, weights *ModelWeights) error {
	data, err := json.MarshalIndent(weights, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal weights: %w", err)
	}
	return os.WriteFile(filepath, data, 0644)
}

// LoadWeights loads model weights from a JSON file
func LoadWeights(filepath string) (*ModelWeights, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read weights file: %w", err)
	}
	var weights ModelWeights
	if err := json.Unmarshal(data, &weights); err != nil {
		return nil, fmt.Errorf("failed to unmarshal weights: %w", err)
	}
	return &weights, nil
}

// MatrixToWeightData converts a weight matrix to serializable weight data
func MatrixToWeightData(name string, m tensor.Matrix) *WeightData {
	rows, cols, _ := m.Dims()
	return &WeightData{
		Name:  name,
		Shape: []int{rows, cols},
		Data:  tensor.Flatten(m),
	}
}

// VectorToWeightData converts a bias vector to serializable weight data
func VectorToWeightData(name string, v tensor.Vector) *WeightData {
	return &WeightData{
		Name:  name,
		Shape: []int{len(v)},
		Data:  tensor.Clone(v),
	}
}

// WeightDataToMatrix converts 2-D weight data back to a matrix
func WeightDataToMatrix(wd *WeightData) (tensor.Matrix, error) {
	if wd == nil {
		return nil, fmt.Errorf("missing weight data")
	}
	if len(wd.Shape) != 2 {
		return nil, fmt.Errorf("%s: expected 2-D shape, got %v", wd.Name, wd.Shape)
	}
	if wd.Shape[0]*wd.Shape[1] != len(wd.Data) {
		return nil, fmt.Errorf("%s: shape %v does not hold %d values", wd.Name, wd.Shape, len(wd.Data))
	}
	return tensor.Reshape(wd.Data, wd.Shape[1])
}

// WeightDataToVector converts 1-D weight data back to a vector
func WeightDataToVector(wd *WeightData) (tensor.Vector, error) {
	if wd == nil {
		return nil, fmt.Errorf("missing bias data")
	}
	if len(wd.Shape) != 1 || wd.Shape[0] != len(wd.Data) {
		return nil, fmt.Errorf("%s: shape %v does not describe a vector of %d values", wd.Name, wd.Shape, len(wd.Data))
	}
	return tensor.Clone(wd.Data), nil
}

// NetworkToWeights snapshots net into serializable form. activation names the
// nonlinearity the network was built with.
func NetworkToWeights(net *nn.Network, activation string) *ModelWeights {
	mw := &ModelWeights{
		Version:      WeightsVersion,
		Activation:   activation,
		LinearOutput: net.LinearOutput(),
		Layers:       make([]LayerWeight, net.Len()),
	}
	for k := range mw.Layers {
		l := net.Layer(k)
		mw.Layers[k] = LayerWeight{
			Weight: MatrixToWeightData(fmt.Sprintf("layer%d_weight", k), l.Weights),
			Bias:   VectorToWeightData(fmt.Sprintf("layer%d_bias", k), l.Biases),
		}
	}
	return mw
}

// BuildNetwork rebuilds a Network from saved weights. The activation and
// linear-output settings recorded in the file are applied first, so opts
// passed by the caller take precedence.
func BuildNetwork(weights *ModelWeights, opts ...nn.Option) (*nn.Network, error) {
	act, err := nn.ParseActivation(weights.Activation)
	if err != nil {
		return nil, err
	}
	base := []nn.Option{nn.WithActivation(act)}
	if weights.LinearOutput {
		base = append(base, nn.WithLinearOutput())
	}

	layers := make([]nn.Layer, len(weights.Layers))
	for k, lw := range weights.Layers {
		w, err := WeightDataToMatrix(lw.Weight)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", k, err)
		}
		b, err := WeightDataToVector(lw.Bias)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", k, err)
		}
		layers[k] = nn.Layer{Weights: w, Biases: b}
	}
	return nn.NewNetwork(layers, append(base, opts...)...)
}

// LoadNetwork reads a weights file and builds the Network it describes.
func LoadNetwork(filepath string, opts ...nn.Option) (*nn.Network, error) {
	weights, err := LoadWeights(filepath)
	if err != nil {
		return nil, err
	}
	return BuildNetwork(weights, opts...)
}
