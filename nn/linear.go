package nn

import "sonic/tensor"

// Linear returns bias + Σ input[i]*weightRow[i]. The accumulator starts at the
// bias and adds products in index order. Callers guarantee equal lengths.
func Linear(input, weightRow tensor.Vector, bias float32) float32 {
	out := bias
	for i, x := range input {
		out += x * weightRow[i]
	}
	return out
}

// LinearLayer applies Linear once per weight row; element i of the result
// comes from weights[i] and biases[i].
func LinearLayer(input tensor.Vector, weights tensor.Matrix, biases tensor.Vector) tensor.Vector {
	out := make(tensor.Vector, len(weights))
	linearInto(out, input, weights, biases)
	return out
}

// InnerLayer is LinearLayer followed by Abs on every element.
func InnerLayer(input tensor.Vector, weights tensor.Matrix, biases tensor.Vector) tensor.Vector {
	return ApplyLayer(input, weights, biases, Abs)
}

// ApplyLayer is LinearLayer followed by act on every element. A nil act
// leaves the affine output untouched.
func ApplyLayer(input tensor.Vector, weights tensor.Matrix, biases tensor.Vector, act Activation) tensor.Vector {
	out := LinearLayer(input, weights, biases)
	activate(out, act)
	return out
}

func linearInto(dst, input tensor.Vector, weights tensor.Matrix, biases tensor.Vector) {
	for i, row := range weights {
		dst[i] = Linear(input, row, biases[i])
	}
}

func activate(v tensor.Vector, act Activation) {
	if act == nil {
		return
	}
	for i, x := range v {
		v[i] = act(x)
	}
}
