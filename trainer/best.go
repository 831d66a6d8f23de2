package trainer

// Best is a callback calling Save whenever the validation accuracy improves
// on the best one seen so far.
type Best struct {
	Save func(e Epoch) error

	seen bool
	best float64
}

// OnEpochEnd saves on improvement
func (b *Best) OnEpochEnd(e Epoch) error {
	if b.seen && e.ValAccuracy <= b.best {
		return nil
	}
	b.seen = true
	b.best = e.ValAccuracy
	if b.Save == nil {
		return nil
	}
	return b.Save(e)
}

// Accuracy returns the best validation accuracy seen so far
func (b *Best) Accuracy() float64 {
	return b.best
}
