package nn

import (
	"errors"
	"fmt"
	"strings"

	"github.com/klauspost/cpuid/v2"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"

	"sonic/tensor"
)

// ErrUnknownKernel is returned by SelectKernel for unregistered names.
var ErrUnknownKernel = errors.New("unknown kernel")

// Kernel turns a validated Layer into an Affine evaluator. Compile runs once
// per layer when a Network is built, never on the predict path.
type Kernel interface {
	Name() string
	Compile(l Layer) Affine
}

// Affine writes weights·input + biases into dst. len(dst) is the layer's
// output width and len(input) its input width.
type Affine interface {
	Apply(dst, input tensor.Vector)
}

// ReferenceKernel evaluates each row with Linear: bias first, then products
// in index order.
type ReferenceKernel struct{}

func (ReferenceKernel) Name() string { return "reference" }

func (ReferenceKernel) Compile(l Layer) Affine {
	return referenceAffine(l)
}

type referenceAffine Layer

func (r referenceAffine) Apply(dst, input tensor.Vector) {
	linearInto(dst, input, r.Weights, r.Biases)
}

// BLASKernel packs the weights into one row-major block and evaluates the
// layer with a single Sgemv seeded with the biases. Results are close to the
// reference kernel but not bit-identical.
type BLASKernel struct{}

func (BLASKernel) Name() string { return "blas" }

func (BLASKernel) Compile(l Layer) Affine {
	rows, cols := len(l.Weights), l.InputWidth()
	data := make([]float32, 0, rows*cols)
	for _, row := range l.Weights {
		data = append(data, row...)
	}
	return blasAffine{
		a: blas32.General{Rows: rows, Cols: cols, Stride: cols, Data: data},
		b: tensor.Clone(l.Biases),
	}
}

type blasAffine struct {
	a blas32.General
	b tensor.Vector
}

func (p blasAffine) Apply(dst, input tensor.Vector) {
	copy(dst, p.b)
	x := blas32.Vector{N: len(input), Inc: 1, Data: input}
	y := blas32.Vector{N: len(dst), Inc: 1, Data: dst}
	blas32.Gemv(blas.NoTrans, 1, p.a, x, 1, y)
}

// SIMDAvailable reports whether the CPU has the vector extensions the BLAS
// kernel benefits from.
func SIMDAvailable() bool {
	return cpuid.CPU.Supports(cpuid.AVX2) || cpuid.CPU.Supports(cpuid.ASIMD)
}

// SelectKernel resolves "reference", "blas" or "auto". The empty name selects
// the reference kernel; "auto" picks BLAS when SIMDAvailable.
func SelectKernel(name string) (Kernel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "reference":
		return ReferenceKernel{}, nil
	case "blas":
		return BLASKernel{}, nil
	case "auto":
		if SIMDAvailable() {
			return BLASKernel{}, nil
		}
		return ReferenceKernel{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKernel, name)
	}
}
