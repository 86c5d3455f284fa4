package tensor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZerosAndClone(t *testing.T) {
	z := Zeros(3)
	require.Equal(t, Vector{0, 0, 0}, z)

	v := Vector{1, 2, 3}
	c := Clone(v)
	c[0] = 9
	if v[0] != 1 {
		t.Fatalf("clone aliases source: got %f", v[0])
	}
	require.NotNil(t, Clone(nil))
	require.Len(t, Clone(nil), 0)
}

func TestMatrixCloneIsDeep(t *testing.T) {
	m := Matrix{{1, 2}, {3, 4}}
	c := m.Clone()
	c[1][0] = -1
	require.Equal(t, float32(3), m[1][0])
}

func TestDims(t *testing.T) {
	rows, cols, ok := Matrix{{1, 2, 3}, {4, 5, 6}}.Dims()
	require.True(t, ok)
	require.Equal(t, 2, rows)
	require.Equal(t, 3, cols)

	_, _, ok = Matrix{{1, 2}, {3}}.Dims()
	require.False(t, ok)

	rows, cols, ok = Matrix{}.Dims()
	require.True(t, ok)
	require.Zero(t, rows)
	require.Zero(t, cols)
}

func TestFlattenReshape(t *testing.T) {
	table := Matrix{{4, 3, 6}, {7, 3, 5}}
	flat := Flatten(table)
	require.Equal(t, Vector{4, 3, 6, 7, 3, 5}, flat)

	back, err := Reshape(flat, 3)
	require.NoError(t, err)
	require.Equal(t, table, back)

	_, err = Reshape(flat, 4)
	require.Error(t, err)
}

func TestArgmax(t *testing.T) {
	cases := []struct {
		in   Vector
		want int
	}{
		{nil, -1},
		{Vector{3}, 0},
		{Vector{1, 5, 2}, 1},
		{Vector{2, 7, 7}, 1},
		{Vector{-3, -1, -2}, 1},
	}
	for _, c := range cases {
		if got := Argmax(c.in); got != c.want {
			t.Errorf("Argmax(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestEqualApprox(t *testing.T) {
	require.True(t, Equal(Vector{1, 2}, Vector{1, 2}))
	require.False(t, Equal(Vector{1, 2}, Vector{1}))
	require.True(t, EqualApprox(Vector{1, 2}, Vector{1.0001, 1.9999}, 1e-3))
	require.False(t, EqualApprox(Vector{1, 2}, Vector{1.1, 2}, 1e-3))
}

func TestFloat64RoundTrip(t *testing.T) {
	v := Vector{0.5, -2, 8}
	require.Equal(t, []float64{0.5, -2, 8}, v.Float64s())
	require.Equal(t, v, FromFloat64s(v.Float64s()))
}
