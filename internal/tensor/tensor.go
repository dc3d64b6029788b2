// Package tensor holds the float32 kernels exercised by the benchmark suite.
package tensor

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrShape is returned when operand shapes are incompatible.
var ErrShape = errors.New("tensor: shape mismatch")

// Matrix is a dense row-major float32 matrix.
type Matrix struct {
	Rows, Cols int
	Data       []float32
}

// NewMatrix allocates a zeroed rows x cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{Rows: rows, Cols: cols, Data: make([]float32, rows*cols)}
}

// At returns the element at (i, j).
func (m *Matrix) At(i, j int) float32 {
	return m.Data[i*m.Cols+j]
}

// RandomMatrix fills a new matrix with values drawn uniformly from [lo, hi).
func RandomMatrix(rng *rand.Rand, rows, cols int, lo, hi float32) *Matrix {
	m := NewMatrix(rows, cols)
	fillUniform(rng, m.Data, lo, hi)
	return m
}

// RandomVector returns n values drawn uniformly from [lo, hi).
func RandomVector(rng *rand.Rand, n int, lo, hi float32) []float32 {
	v := make([]float32, n)
	fillUniform(rng, v, lo, hi)
	return v
}

func fillUniform(rng *rand.Rand, dst []float32, lo, hi float32) {
	span := hi - lo
	for i := range dst {
		dst[i] = lo + rng.Float32()*span
	}
}

// MatMul computes C = A x B.
func MatMul(a, b *Matrix) (*Matrix, error) {
	if a.Cols != b.Rows {
		return nil, fmt.Errorf("%w: matmul %dx%d by %dx%d", ErrShape, a.Rows, a.Cols, b.Rows, b.Cols)
	}
	c := NewMatrix(a.Rows, b.Cols)
	n := b.Cols
	// i-k-j order keeps the inner loop on contiguous rows of B and C.
	for i := 0; i < a.Rows; i++ {
		crow := c.Data[i*n : (i+1)*n]
		for k := 0; k < a.Cols; k++ {
			aik := a.Data[i*a.Cols+k]
			brow := b.Data[k*n : (k+1)*n]
			for j, bkj := range brow {
				crow[j] += aik * bkj
			}
		}
	}
	return c, nil
}

// ReLU returns max(x, 0) element-wise.
func ReLU(x []float32) []float32 {
	out := make([]float32, len(x))
	for i, v := range x {
		if v > 0 {
			out[i] = v
		}
	}
	return out
}

// Add returns a + b element-wise.
func Add(a, b []float32) ([]float32, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: add %d and %d", ErrShape, len(a), len(b))
	}
	out := make([]float32, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out, nil
}
