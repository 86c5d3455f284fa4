package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"sonic/nn"
	"sonic/tensor"
)

func TestMatrixToWeightData(t *testing.T) {
	m := tensor.Matrix{{0, 0.5, 1}, {1.5, 2, 2.5}}

	wd := MatrixToWeightData("test_weight", m)

	if wd.Name != "test_weight" {
		t.Errorf("Name = %s, want test_weight", wd.Name)
	}
	if len(wd.Shape) != 2 || wd.Shape[0] != 2 || wd.Shape[1] != 3 {
		t.Errorf("Shape = %v, want [2, 3]", wd.Shape)
	}
	for i, v := range wd.Data {
		expected := float32(i) * 0.5
		if v != expected {
			t.Errorf("Data[%d] = %f, want %f", i, v, expected)
		}
	}
}

func TestWeightDataToMatrix(t *testing.T) {
	wd := &WeightData{
		Name:  "test",
		Shape: []int{3, 4},
		Data:  make([]float32, 12),
	}
	for i := range wd.Data {
		wd.Data[i] = float32(i)
	}

	m, err := WeightDataToMatrix(wd)
	require.NoError(t, err)
	require.Len(t, m, 3)
	for i, row := range m {
		require.Len(t, row, 4)
		for j, v := range row {
			if v != float32(i*4+j) {
				t.Errorf("m[%d][%d] = %f, want %d", i, j, v, i*4+j)
			}
		}
	}

	wd.Shape = []int{5, 4}
	_, err = WeightDataToMatrix(wd)
	require.Error(t, err)

	_, err = WeightDataToMatrix(nil)
	require.Error(t, err)
}

func TestWeightDataToVector(t *testing.T) {
	v, err := WeightDataToVector(&WeightData{Name: "b", Shape: []int{2}, Data: []float32{1, 2}})
	require.NoError(t, err)
	require.Equal(t, tensor.Vector{1, 2}, v)

	_, err = WeightDataToVector(&WeightData{Name: "b", Shape: []int{3}, Data: []float32{1, 2}})
	require.Error(t, err)
}

func TestSaveLoadNetwork(t *testing.T) {
	weightsFile := filepath.Join(t.TempDir(), "test_weights.json")

	net, err := RandomNetwork([]int{8, 5, 3}, 42, nn.WithActivation(nn.ReLU), nn.WithLinearOutput())
	require.NoError(t, err)

	require.NoError(t, SaveWeights(weightsFile, NetworkToWeights(net, "relu")))

	loaded, err := LoadWeights(weightsFile)
	require.NoError(t, err)
	require.Equal(t, WeightsVersion, loaded.Version)
	require.Equal(t, "relu", loaded.Activation)
	require.True(t, loaded.LinearOutput)
	require.Len(t, loaded.Layers, 2)
	require.Equal(t, []int{5, 8}, loaded.Layers[0].Weight.Shape)
	require.Equal(t, "layer1_bias", loaded.Layers[1].Bias.Name)

	rebuilt, err := LoadNetwork(weightsFile)
	require.NoError(t, err)
	require.Equal(t, net.Widths(), rebuilt.Widths())
	require.True(t, rebuilt.LinearOutput())

	x := RandomInput(8, 7)
	want, err := net.Predict(x)
	require.NoError(t, err)
	got, err := rebuilt.Predict(x)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestBuildNetworkOptionsOverrideFile(t *testing.T) {
	weights := &ModelWeights{
		Version:    WeightsVersion,
		Activation: "relu",
		Layers: []LayerWeight{{
			Weight: &WeightData{Name: "w", Shape: []int{1, 1}, Data: []float32{-1}},
			Bias:   &WeightData{Name: "b", Shape: []int{1}, Data: []float32{0}},
		}},
	}

	net, err := BuildNetwork(weights)
	require.NoError(t, err)
	out, err := net.Predict(tensor.Vector{2})
	require.NoError(t, err)
	require.Equal(t, tensor.Vector{0}, out)

	net, err = BuildNetwork(weights, nn.WithActivation(nn.Abs))
	require.NoError(t, err)
	out, err = net.Predict(tensor.Vector{2})
	require.NoError(t, err)
	require.Equal(t, tensor.Vector{2}, out)
}

func TestBuildNetworkRejectsBadWeights(t *testing.T) {
	chain := &ModelWeights{Layers: []LayerWeight{
		{
			Weight: &WeightData{Shape: []int{2, 1}, Data: []float32{1, 1}},
			Bias:   &WeightData{Shape: []int{2}, Data: []float32{0, 0}},
		},
		{
			Weight: &WeightData{Shape: []int{1, 3}, Data: []float32{1, 1, 1}},
			Bias:   &WeightData{Shape: []int{1}, Data: []float32{0}},
		},
	}}
	_, err := BuildNetwork(chain)
	require.True(t, errors.Is(err, nn.ErrChainMismatch), "got %v", err)

	missing := &ModelWeights{Layers: []LayerWeight{{Weight: &WeightData{Shape: []int{1, 1}, Data: []float32{1}}}}}
	_, err = BuildNetwork(missing)
	require.Error(t, err)

	badAct := &ModelWeights{Activation: "swish"}
	_, err = BuildNetwork(badAct)
	require.True(t, errors.Is(err, nn.ErrUnknownActivation))
}

func TestEmptyWeightsBuildIdentity(t *testing.T) {
	net, err := BuildNetwork(&ModelWeights{Version: WeightsVersion})
	require.NoError(t, err)
	out, err := net.Predict(tensor.Vector{3, -1})
	require.NoError(t, err)
	require.Equal(t, tensor.Vector{3, -1}, out)
}

func TestLoadWeightsNotFound(t *testing.T) {
	_, err := LoadWeights("/nonexistent/path/weights.json")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadWeightsInvalidJSON(t *testing.T) {
	badFile := filepath.Join(t.TempDir(), "bad.json")
	err := os.WriteFile(badFile, []byte("not valid json"), 0644)
	if err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	_, err = LoadWeights(badFile)
	if err == nil {
		t.Error("Expected error for invalid JSON")
	}
}
