package circles

import "github.com/neurlang/circlecount/datasets"

// Provider splits circle samples by holdout and scales pixels into 0..1.
type Provider struct {
	datasets.Holdout
}

// PreProcess scales inputs by 1/255. Targets are copied unchanged.
func (p Provider) PreProcess(x, y [][]float32) ([][]float32, [][]float32) {
	o := datasets.Copy(x)
	for i := range o {
		for j := range o[i] {
			o[i][j] /= 255
		}
	}
	return o, datasets.Copy(y)
}

var _ datasets.Provider = Provider{}
