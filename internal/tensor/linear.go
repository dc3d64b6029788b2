package tensor

import (
	"fmt"
	"math/rand/v2"
)

// Linear is a fully connected layer computing W·x + b.
type Linear struct {
	Weights *Matrix // out x in
	Bias    []float32
}

// NewLinear builds an in -> out layer with small random weights and bias.
func NewLinear(rng *rand.Rand, in, out int) *Linear {
	return &Linear{
		Weights: RandomMatrix(rng, out, in, -0.1, 0.1),
		Bias:    RandomVector(rng, out, -0.01, 0.01),
	}
}

// In returns the input width.
func (l *Linear) In() int { return l.Weights.Cols }

// Out returns the output width.
func (l *Linear) Out() int { return l.Weights.Rows }

// Forward applies the layer to a single input vector.
func (l *Linear) Forward(x []float32) ([]float32, error) {
	if len(x) != l.In() {
		return nil, fmt.Errorf("%w: linear expects %d inputs, got %d", ErrShape, l.In(), len(x))
	}
	if len(l.Bias) != l.Out() {
		return nil, fmt.Errorf("%w: bias has %d entries for %d outputs", ErrShape, len(l.Bias), l.Out())
	}
	out := make([]float32, l.Out())
	in := l.In()
	for o := range out {
		row := l.Weights.Data[o*in : (o+1)*in]
		sum := l.Bias[o]
		for i, w := range row {
			sum += w * x[i]
		}
		out[o] = sum
	}
	return out, nil
}
