// Package metrics implements the accuracy metrics reported during training and evaluation
package metrics

import "fmt"
import "math"

// ID identifies a metric.
type ID string

const (
	// Accuracy compares the argmax for multi valued outputs and the
	// rounded value for scalar outputs.
	Accuracy ID = "accuracy"

	// BinaryAccuracy is the share of outputs on the right side of 0.5.
	BinaryAccuracy ID = "binary_accuracy"
)

// Argmax returns the index of the largest value, -1 for an empty slice.
func Argmax(v []float32) int {
	if len(v) == 0 {
		return -1
	}
	var best int
	for i := range v {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}

// Score returns the metric of one prediction against its encoded target, 0 to 1.
func (id ID) Score(pred, target []float32) (float64, error) {
	if len(pred) != len(target) || len(pred) == 0 {
		return 0, fmt.Errorf("metric %s: prediction has %d values, target %d", id, len(pred), len(target))
	}
	switch id {
	case Accuracy:
		if len(pred) == 1 {
			if math.Round(float64(pred[0])) == math.Round(float64(target[0])) {
				return 1, nil
			}
			return 0, nil
		}
		if Argmax(pred) == Argmax(target) {
			return 1, nil
		}
		return 0, nil
	case BinaryAccuracy:
		var right int
		for i := range pred {
			if (pred[i] >= 0.5) == (target[i] >= 0.5) {
				right++
			}
		}
		return float64(right) / float64(len(pred)), nil
	}
	return 0, fmt.Errorf("unknown metric %q", string(id))
}

// Mean averages the metric over a batch.
func (id ID) Mean(preds, targets [][]float32) (float64, error) {
	if len(preds) != len(targets) {
		return 0, fmt.Errorf("metric %s: %d predictions for %d targets", id, len(preds), len(targets))
	}
	if len(preds) == 0 {
		return 0, nil
	}
	var sum float64
	for i := range preds {
		s, err := id.Score(preds[i], targets[i])
		if err != nil {
			return 0, err
		}
		sum += s
	}
	return sum / float64(len(preds)), nil
}
