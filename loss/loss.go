// Package loss names the loss functions a model head can be compiled with and
// computes them over encoded targets
package loss

import "fmt"
import "math"

// ID identifies a loss function.
type ID string

const (
	SparseCategoricalCrossentropy ID = "sparse_categorical_crossentropy"
	MeanSquaredError              ID = "mean_squared_error"
	BinaryCrossentropy            ID = "binary_crossentropy"
)

const epsilon = 1e-7

// Loom maps the loss onto the loss type of the loom trainer, which only
// knows "mse" and "cross_entropy".
func (id ID) Loom() string {
	if id == SparseCategoricalCrossentropy {
		return "cross_entropy"
	}
	return "mse"
}

// Compute returns the loss of one prediction against its encoded target.
// Sparse categorical targets are expected one-hot encoded.
func (id ID) Compute(pred, target []float32) (float64, error) {
	if len(pred) != len(target) {
		return 0, fmt.Errorf("loss %s: prediction has %d values, target %d", id, len(pred), len(target))
	}
	if len(pred) == 0 {
		return 0, fmt.Errorf("loss %s: empty prediction", id)
	}
	switch id {
	case MeanSquaredError:
		var sum float64
		for i := range pred {
			d := float64(pred[i]) - float64(target[i])
			sum += d * d
		}
		return sum / float64(len(pred)), nil
	case SparseCategoricalCrossentropy:
		var best = 0
		for i := range target {
			if target[i] > target[best] {
				best = i
			}
		}
		return -math.Log(clip(float64(pred[best]))), nil
	case BinaryCrossentropy:
		var sum float64
		for i := range pred {
			p := clip(float64(pred[i]))
			t := float64(target[i])
			sum -= t*math.Log(p) + (1-t)*math.Log(1-p)
		}
		return sum / float64(len(pred)), nil
	}
	return 0, fmt.Errorf("unknown loss %q", string(id))
}

// Mean returns the average loss over a batch of predictions.
func (id ID) Mean(preds, targets [][]float32) (float64, error) {
	if len(preds) != len(targets) {
		return 0, fmt.Errorf("loss %s: %d predictions for %d targets", id, len(preds), len(targets))
	}
	if len(preds) == 0 {
		return 0, nil
	}
	var sum float64
	for i := range preds {
		l, err := id.Compute(preds[i], targets[i])
		if err != nil {
			return 0, err
		}
		sum += l
	}
	return sum / float64(len(preds)), nil
}

func clip(p float64) float64 {
	if p < epsilon {
		return epsilon
	}
	if p > 1-epsilon {
		return 1 - epsilon
	}
	return p
}
