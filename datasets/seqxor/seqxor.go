// Package seqxor generates pairs of random bit sequences labelled with their
// element wise xor
package seqxor

import "math/rand"

import "github.com/neurlang/circlecount/datasets"

// SequenceSize is the length of one bit sequence
const SequenceSize = 10

// TrainingSize is the default number of training samples
const TrainingSize = 5000

// TestSize is the default number of test samples
const TestSize = 100

// Epochs is the default number of training epochs
const Epochs = 10

// RandomSeq returns SequenceSize random bits.
func RandomSeq(rng *rand.Rand) []float32 {
	o := make([]float32, SequenceSize)
	for i := range o {
		o[i] = float32(rng.Intn(2))
	}
	return o
}

// RandomPairs returns size pairs of random sequences.
func RandomPairs(rng *rand.Rand, size int) [][2][]float32 {
	o := make([][2][]float32, size)
	for i := range o {
		o[i][0] = RandomSeq(rng)
		o[i][1] = RandomSeq(rng)
	}
	return o
}

// Xor returns the element wise xor of two bit sequences of equal length.
func Xor(a, b []float32) []float32 {
	o := make([]float32, len(a))
	for i := range a {
		if (a[i] >= 0.5) != (b[i] >= 0.5) {
			o[i] = 1
		}
	}
	return o
}

// Join lays out a pair as one input row: first sequence then second.
func Join(pair [2][]float32) []float32 {
	return append(append(make([]float32, 0, 2*SequenceSize), pair[0]...), pair[1]...)
}

// Split undoes Join.
func Split(input []float32) (a, b []float32) {
	return input[:len(input)/2], input[len(input)/2:]
}

// Generate returns size samples drawn from seed.
func Generate(size int, seed int64) datasets.Samples {
	rng := rand.New(rand.NewSource(seed))
	o := make(datasets.Samples, size)
	for i, p := range RandomPairs(rng, size) {
		o[i] = datasets.Sample{
			Input:  Join(p),
			Target: Xor(p[0], p[1]),
		}
	}
	return o
}

// TrainingData returns TrainingSize samples.
func TrainingData(seed int64) datasets.Samples {
	return Generate(TrainingSize, seed)
}

// TestData returns TestSize samples.
func TestData(seed int64) datasets.Samples {
	return Generate(TestSize, seed)
}
