package trainer

import "fmt"
import "time"

// Optimizer describes how a compiled model steps its weights
type Optimizer struct {
	Name         string
	LearningRate float64
	GradientClip float64
}

// String formats the optimizer for logs
func (o Optimizer) String() string {
	return fmt.Sprintf("%s(lr=%g, clip=%g)", o.Name, o.LearningRate, o.GradientClip)
}

// Epoch is the outcome of one training epoch
type Epoch struct {
	Index       int
	Loss        float64
	ValLoss     float64
	ValAccuracy float64
	Duration    time.Duration
}

// History is the list of finished epochs
type History []Epoch

// Last returns the last epoch, or false if there is none
func (h History) Last() (Epoch, bool) {
	if len(h) == 0 {
		return Epoch{}, false
	}
	return h[len(h)-1], true
}

// Losses returns the training loss of every epoch
func (h History) Losses() []float64 {
	o := make([]float64, len(h))
	for i := range h {
		o[i] = h[i].Loss
	}
	return o
}

// Accuracies returns the validation accuracy of every epoch
func (h History) Accuracies() []float64 {
	o := make([]float64, len(h))
	for i := range h {
		o[i] = h[i].ValAccuracy
	}
	return o
}

// Callback is notified after every epoch. An error stops training.
type Callback interface {
	OnEpochEnd(e Epoch) error
}

// CallbackFunc adapts a function to a Callback
type CallbackFunc func(e Epoch) error

// OnEpochEnd calls f
func (f CallbackFunc) OnEpochEnd(e Epoch) error {
	return f(e)
}

// Fit runs step for every epoch, then validate when not nil, then callbacks in
// order. The history of all finished epochs is returned even on error.
func Fit(epochs int, step func(epoch int) (float64, error), validate func() (float64, float64, error),
	callbacks ...Callback) (History, error) {
	var h History
	for i := 0; i < epochs; i++ {
		start := time.Now()
		loss, err := step(i)
		if err != nil {
			return h, fmt.Errorf("epoch %d: %w", i+1, err)
		}
		var e = Epoch{Index: i, Loss: loss}
		if validate != nil {
			e.ValLoss, e.ValAccuracy, err = validate()
			if err != nil {
				return h, fmt.Errorf("epoch %d validate: %w", i+1, err)
			}
		}
		e.Duration = time.Since(start)
		h = append(h, e)
		for _, c := range callbacks {
			if c == nil {
				continue
			}
			if err := c.OnEpochEnd(e); err != nil {
				return h, fmt.Errorf("epoch %d callback: %w", i+1, err)
			}
		}
	}
	return h, nil
}
