package nn

import "sonic/tensor"

// Record captures one inference for inspection: every intermediate Vector
// and every weighted edge contribution.
type Record struct {
	// Stages holds the input followed by each layer's output, Len()+1
	// Vectors in total.
	Stages []tensor.Vector

	// EdgeValues[k][i][j] is weights[i][j]*x[j] for layer k, where x is the
	// Vector that entered layer k.
	EdgeValues []tensor.Matrix
}

// Record runs Predict and keeps the intermediate state.
func (n *Network) Record(input tensor.Vector) (*Record, error) {
	rec := &Record{
		Stages:     make([]tensor.Vector, 0, n.Len()+1),
		EdgeValues: make([]tensor.Matrix, 0, n.Len()),
	}
	rec.Stages = append(rec.Stages, tensor.Clone(input))
	_, err := n.forward(input, func(k int, in, out tensor.Vector) {
		rec.EdgeValues = append(rec.EdgeValues, edgeValues(in, n.layers[k].Weights))
		rec.Stages = append(rec.Stages, out)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Output is the final stage.
func (r *Record) Output() tensor.Vector {
	return r.Stages[len(r.Stages)-1]
}

// Class is the index of the largest output.
func (r *Record) Class() int {
	return tensor.Argmax(r.Output())
}

// Classify returns the index of the largest element of Predict's output.
func (n *Network) Classify(input tensor.Vector) (int, error) {
	out, err := n.Predict(input)
	if err != nil {
		return -1, err
	}
	return tensor.Argmax(out), nil
}

func edgeValues(x tensor.Vector, w tensor.Matrix) tensor.Matrix {
	out := make(tensor.Matrix, len(w))
	for i, row := range w {
		out[i] = make(tensor.Vector, len(row))
		for j, wij := range row {
			out[i][j] = wij * x[j]
		}
	}
	return out
}
