package benchmark

import (
	"fmt"
	"math/rand/v2"

	"tensorbench/internal/tensor"
)

// sink keeps kernel results reachable so the work is not optimised away.
var sink float32

// Suite returns the fixed set of tensor benchmarks. The seed makes the
// operands reproducible between runs.
func Suite(seed uint64) []Section {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	return []Section{
		{Title: "Matrix Multiplication Benchmark", Cases: []Case{
			matmulCase(rng, 4, 1000, 100),
			matmulCase(rng, 32, 1000, 100),
			matmulCase(rng, 128, 100, 10),
		}},
		{Title: "ReLU Activation Benchmark", Cases: []Case{
			reluCase(rng, 16, 10000, 1000),
			reluCase(rng, 1024, 10000, 1000),
			reluCase(rng, 4096, 1000, 100),
		}},
		{Title: "Linear Layer Forward Pass Benchmark", Cases: []Case{
			linearCase(rng, 64, 32, 1000, 100),
			linearCase(rng, 256, 128, 1000, 100),
			linearCase(rng, 1024, 512, 100, 10),
		}},
		{Title: "Element-wise Operations Benchmark", Cases: []Case{
			addCase(rng, 16, 10000, 1000),
			addCase(rng, 1024, 10000, 1000),
		}},
	}
}

func matmulCase(rng *rand.Rand, n, iterations, warmup int) Case {
	a := tensor.RandomMatrix(rng, n, n, -1, 1)
	b := tensor.RandomMatrix(rng, n, n, -1, 1)
	return Case{
		Label:      fmt.Sprintf("MatMul (%dx%d)", n, n),
		Iterations: iterations,
		Warmup:     warmup,
		Op: func() {
			c, err := tensor.MatMul(a, b)
			if err != nil {
				panic(err)
			}
			sink += c.Data[0]
		},
	}
}

func reluCase(rng *rand.Rand, n, iterations, warmup int) Case {
	x := tensor.RandomVector(rng, n, -2, 2)
	return Case{
		Label:      fmt.Sprintf("ReLU (%d)", n),
		Iterations: iterations,
		Warmup:     warmup,
		Op: func() {
			sink += tensor.ReLU(x)[0]
		},
	}
}

func linearCase(rng *rand.Rand, in, out, iterations, warmup int) Case {
	layer := tensor.NewLinear(rng, in, out)
	x := tensor.RandomVector(rng, in, -1, 1)
	return Case{
		Label:      fmt.Sprintf("Linear (%d->%d)", in, out),
		Iterations: iterations,
		Warmup:     warmup,
		Op: func() {
			y, err := layer.Forward(x)
			if err != nil {
				panic(err)
			}
			sink += y[0]
		},
	}
}

func addCase(rng *rand.Rand, n, iterations, warmup int) Case {
	a := tensor.RandomVector(rng, n, -1, 1)
	b := tensor.RandomVector(rng, n, -1, 1)
	return Case{
		Label:      fmt.Sprintf("Add (%d)", n),
		Iterations: iterations,
		Warmup:     warmup,
		Op: func() {
			c, err := tensor.Add(a, b)
			if err != nil {
				panic(err)
			}
			sink += c[0]
		},
	}
}
