// Package tensor holds the single-precision vector and matrix types that flow
// through the inference kernel.
package tensor

import (
	"fmt"
	"math"
)

// Vector is an ordered, fixed-length sequence of float32 values.
type Vector []float32

// Matrix is an ordered sequence of rows. Row i holds the weights of output
// neuron i; all rows are expected to share one width.
type Matrix []Vector

// Zeros allocates a Vector of n zeros.
func Zeros(n int) Vector {
	return make(Vector, n)
}

// Clone returns a copy of v. A nil Vector clones to an empty one.
func Clone(v Vector) Vector {
	return append(Vector{}, v...)
}

// Clone returns a deep copy of m.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = Clone(row)
	}
	return out
}

// Dims returns the row count and the shared row width. ok is false when the
// rows disagree on width; cols then reports the width of row 0.
func (m Matrix) Dims() (rows, cols int, ok bool) {
	rows = len(m)
	if rows == 0 {
		return 0, 0, true
	}
	cols = len(m[0])
	for _, row := range m[1:] {
		if len(row) != cols {
			return rows, cols, false
		}
	}
	return rows, cols, true
}

// Flatten concatenates the rows of table into a single Vector, row-major.
// It turns a 2-D input grid (e.g. a drawn digit) into a network input.
func Flatten(table Matrix) Vector {
	n := 0
	for _, row := range table {
		n += len(row)
	}
	out := make(Vector, 0, n)
	for _, row := range table {
		out = append(out, row...)
	}
	return out
}

// Reshape splits v into rows of width cols, the inverse of Flatten.
func Reshape(v Vector, cols int) (Matrix, error) {
	if cols <= 0 || len(v)%cols != 0 {
		return nil, fmt.Errorf("reshape: cannot split %d values into rows of %d", len(v), cols)
	}
	out := make(Matrix, len(v)/cols)
	for i := range out {
		out[i] = Clone(v[i*cols : (i+1)*cols])
	}
	return out, nil
}

// Argmax returns the index of the largest element, the first one on ties,
// or -1 for an empty Vector.
func Argmax(v Vector) int {
	if len(v) == 0 {
		return -1
	}
	idx, best := 0, v[0]
	for i := 1; i < len(v); i++ {
		if v[i] > best {
			idx, best = i, v[i]
		}
	}
	return idx
}

// Equal reports whether a and b hold the same values in the same order.
func Equal(a, b Vector) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// EqualApprox reports whether a and b match elementwise within eps.
func EqualApprox(a, b Vector, eps float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if float32(math.Abs(float64(a[i]-b[i]))) > eps {
			return false
		}
	}
	return true
}

// Float64s widens v for use with float64 numeric libraries.
func (v Vector) Float64s() []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

// FromFloat64s narrows data into a Vector.
func FromFloat64s(data []float64) Vector {
	out := make(Vector, len(data))
	for i, x := range data {
		out[i] = float32(x)
	}
	return out
}
