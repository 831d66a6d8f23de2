// Package datasets implements the sample type, the data provider interface and
// the deterministic holdout split shared by all datasets
package datasets

import "math/rand"

import "github.com/neurlang/circlecount/hash"

// Sample is one input with its expected output.
type Sample struct {
	Input  []float32
	Target []float32
}

// Samples is a list of samples.
type Samples []Sample

// Inputs returns the inputs of all samples.
func (s Samples) Inputs() [][]float32 {
	o := make([][]float32, len(s))
	for i := range s {
		o[i] = s[i].Input
	}
	return o
}

// Targets returns the targets of all samples.
func (s Samples) Targets() [][]float32 {
	o := make([][]float32, len(s))
	for i := range s {
		o[i] = s[i].Target
	}
	return o
}

// Shuffle shuffles the samples in place using rng, or the global source if nil.
func (s Samples) Shuffle(rng *rand.Rand) {
	swap := func(i, j int) { s[i], s[j] = s[j], s[i] }
	if rng == nil {
		rand.Shuffle(len(s), swap)
		return
	}
	rng.Shuffle(len(s), swap)
}

// Zip joins inputs and targets into samples. Missing targets stay nil.
func Zip(x, y [][]float32) Samples {
	o := make(Samples, len(x))
	for i := range x {
		o[i].Input = x[i]
		if i < len(y) {
			o[i].Target = y[i]
		}
	}
	return o
}

// Provider prepares raw samples for a model
type Provider interface {

	// PrepareData splits raw samples into a train set and a test set.
	PrepareData(raw Samples) (train, test Samples)

	// PreProcess converts inputs and, if not nil, targets into what the
	// network consumes. It never modifies its arguments.
	PreProcess(x, y [][]float32) ([][]float32, [][]float32)
}

// DefaultHoldoutPercent is the share of samples Holdout puts into the test set.
const DefaultHoldoutPercent = 20

// Holdout is a Provider splitting samples by a salted hash of their index.
// The same index always lands on the same side for a given salt.
type Holdout struct {
	Percent uint32
	Salt    uint32
}

// PrepareData splits raw samples into a train set and a test set
func (h Holdout) PrepareData(raw Samples) (train, test Samples) {
	var percent = h.Percent
	if percent == 0 {
		percent = DefaultHoldoutPercent
	}
	for i := range raw {
		if hash.Holdout(uint32(i), h.Salt, percent) {
			test = append(test, raw[i])
		} else {
			train = append(train, raw[i])
		}
	}
	return
}

// PreProcess copies inputs and targets unchanged
func (h Holdout) PreProcess(x, y [][]float32) ([][]float32, [][]float32) {
	return Copy(x), Copy(y)
}

// Copy deep copies a batch of vectors, nil stays nil.
func Copy(v [][]float32) [][]float32 {
	if v == nil {
		return nil
	}
	o := make([][]float32, len(v))
	for i := range v {
		o[i] = append([]float32(nil), v[i]...)
	}
	return o
}
