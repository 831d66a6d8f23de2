package circles

import "math"

import "github.com/neurlang/circlecount/datasets"
import "github.com/neurlang/circlecount/metrics"

// Count reads the predicted circle count from a network output. A single
// output is a regression value, several outputs are class scores.
func Count(pred []float32) int {
	if len(pred) == 1 {
		return int(math.Round(float64(pred[0])))
	}
	return metrics.Argmax(pred)
}

// Errors returns the samples whose prediction misses the true count. A
// regression output misses when it is more than threshold away, class scores
// miss when the top class is wrong.
func Errors(samples datasets.Samples, preds [][]float32, threshold float64) (o datasets.Samples) {
	for i := range samples {
		if i >= len(preds) || len(samples[i].Target) == 0 {
			break
		}
		want := float64(samples[i].Target[0])
		p := preds[i]
		var miss bool
		if len(p) == 1 {
			miss = math.Abs(float64(p[0])-want) > threshold
		} else {
			miss = metrics.Argmax(p) != int(want)
		}
		if miss {
			o = append(o, samples[i])
		}
	}
	return
}
