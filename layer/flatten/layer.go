// Package flatten implements the input flattening stage
package flatten

import "fmt"

import "github.com/neurlang/circlecount/layer"

// FlattenLayer reshapes its input into one dimension. Loom layers consume flat
// input already, so it lays out into no loom layer.
type FlattenLayer struct{}

// New creates a new flatten layer
func New() *FlattenLayer {
	return new(FlattenLayer)
}

// Lay turns flatten layer into a stage
func (f *FlattenLayer) Lay(in layer.Shape) (layer.Stage, error) {
	if !in.Valid() {
		return layer.Stage{}, fmt.Errorf("Flatten: invalid input shape %s", in)
	}
	return layer.Stage{
		Kind: layer.Flatten,
		In:   in,
		Out:  layer.Flat(in.Size()),
	}, nil
}
