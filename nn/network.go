package nn

import (
	"fmt"

	"sonic/tensor"
)

// Network is an ordered stack of Layers. It is frozen once NewNetwork
// returns: the layers are private copies and nothing mutates them, so any
// number of goroutines may call Predict on one Network.
type Network struct {
	layers       []Layer
	affine       []Affine
	act          Activation
	linearOutput bool
	kernel       Kernel
}

// Option configures a Network at construction.
type Option func(*Network)

// WithActivation replaces the default Abs nonlinearity. A nil act restores
// Abs.
func WithActivation(act Activation) Option {
	return func(n *Network) {
		if act == nil {
			act = Abs
		}
		n.act = act
	}
}

// WithLinearOutput leaves the final layer's output affine, skipping the
// nonlinearity on the last layer only.
func WithLinearOutput() Option {
	return func(n *Network) {
		n.linearOutput = true
	}
}

// WithKernel selects how each layer's affine transform is evaluated. A nil
// kernel keeps the reference kernel.
func WithKernel(k Kernel) Option {
	return func(n *Network) {
		if k != nil {
			n.kernel = k
		}
	}
}

// NewNetwork validates layers and the widths between consecutive layers and
// returns a Network holding deep copies of them. An empty layer list is a
// valid network whose Predict is the identity.
func NewNetwork(layers []Layer, opts ...Option) (*Network, error) {
	n := &Network{
		act:    Abs,
		kernel: ReferenceKernel{},
	}
	for _, opt := range opts {
		opt(n)
	}

	n.layers = make([]Layer, len(layers))
	n.affine = make([]Affine, len(layers))
	for k, l := range layers {
		if err := l.validate(); err != nil {
			return nil, fmt.Errorf("layer %d: %w", k, err)
		}
		if k > 0 {
			prev := layers[k-1].OutputWidth()
			if l.InputWidth() != prev {
				return nil, &ChainMismatchError{Layer: k, Expected: l.InputWidth(), Actual: prev}
			}
		}
		n.layers[k] = l.clone()
		n.affine[k] = n.kernel.Compile(n.layers[k])
	}
	return n, nil
}

// Predict pushes input through every layer in order and returns the last
// layer's output. A Vector whose width does not match a layer yields a
// *DimensionMismatchError and no output. With zero layers Predict returns a
// copy of input.
func (n *Network) Predict(input tensor.Vector) (tensor.Vector, error) {
	return n.forward(input, nil)
}

// Predict evaluates net on input. A nil net behaves as a network with no
// layers.
func Predict(net *Network, input tensor.Vector) (tensor.Vector, error) {
	return net.Predict(input)
}

// forward runs the pipeline, calling visit after each layer with the
// layer index and the Vectors that entered and left it.
func (n *Network) forward(input tensor.Vector, visit func(k int, in, out tensor.Vector)) (tensor.Vector, error) {
	if n == nil || len(n.layers) == 0 {
		return tensor.Clone(input), nil
	}
	x := input
	last := len(n.layers) - 1
	for k, l := range n.layers {
		if want := l.InputWidth(); len(x) != want {
			return nil, &DimensionMismatchError{Layer: k, Expected: want, Actual: len(x)}
		}
		out := make(tensor.Vector, l.OutputWidth())
		n.affine[k].Apply(out, x)
		if k != last || !n.linearOutput {
			activate(out, n.act)
		}
		if visit != nil {
			visit(k, x, out)
		}
		x = out
	}
	return x, nil
}

// Len returns the number of layers.
func (n *Network) Len() int {
	if n == nil {
		return 0
	}
	return len(n.layers)
}

// InputWidth is the width of Vectors Predict accepts, or 0 for an empty
// network (which accepts any width).
func (n *Network) InputWidth() int {
	if n.Len() == 0 {
		return 0
	}
	return n.layers[0].InputWidth()
}

// OutputWidth is the width of Vectors Predict returns, or 0 for an empty
// network.
func (n *Network) OutputWidth() int {
	if n.Len() == 0 {
		return 0
	}
	return n.layers[len(n.layers)-1].OutputWidth()
}

// Widths lists the input width followed by each layer's output width.
func (n *Network) Widths() []int {
	if n.Len() == 0 {
		return nil
	}
	out := []int{n.InputWidth()}
	for _, l := range n.layers {
		out = append(out, l.OutputWidth())
	}
	return out
}

// Layer returns a copy of layer k.
func (n *Network) Layer(k int) Layer {
	return n.layers[k].clone()
}

// Params returns the total weight and bias count.
func (n *Network) Params() int {
	total := 0
	for k := 0; k < n.Len(); k++ {
		total += n.layers[k].Params()
	}
	return total
}

// LinearOutput reports whether the final layer skips the nonlinearity.
func (n *Network) LinearOutput() bool {
	return n != nil && n.linearOutput
}

// KernelName names the kernel the network was compiled with.
func (n *Network) KernelName() string {
	if n == nil {
		return ReferenceKernel{}.Name()
	}
	return n.kernel.Name()
}
