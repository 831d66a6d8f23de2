// Package dense implements a fully connected layer
package dense

import "fmt"

import "github.com/neurlang/circlecount/layer"

// DenseLayer is a fully connected layer of units outputs.
type DenseLayer struct {
	units      int
	activation layer.Activation
}

// MustNew creates a new dense layer with units and activation
func MustNew(units int, activation layer.Activation) *DenseLayer {
	o, err := New(units, activation)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// New creates a new dense layer with units and activation
func New(units int, activation layer.Activation) (o *DenseLayer, err error) {
	if units <= 0 {
		return nil, fmt.Errorf("New Dense: Units %d must be positive", units)
	}
	o = new(DenseLayer)
	o.units = units
	o.activation = activation
	return
}

// Units is the output width.
func (d *DenseLayer) Units() int {
	return d.units
}

// Activation is the output nonlinearity.
func (d *DenseLayer) Activation() layer.Activation {
	return d.activation
}

// Lay turns dense layer into a stage. The input is consumed flat.
func (d *DenseLayer) Lay(in layer.Shape) (layer.Stage, error) {
	if !in.Valid() {
		return layer.Stage{}, fmt.Errorf("Dense: invalid input shape %s", in)
	}
	var s = layer.Stage{
		Kind:       layer.Dense,
		Activation: d.activation,
		In:         in,
		Out:        layer.Flat(d.units),
	}
	s.Definitions = append(s.Definitions, layer.Definition{
		Type:         "dense",
		Activation:   d.activation.Loom(),
		InputHeight:  in.Size(),
		OutputHeight: d.units,
	})
	if d.activation == layer.Softmax {
		s.Definitions = append(s.Definitions, layer.Definition{
			Type:        "softmax",
			Activation:  "none",
			InputHeight: d.units,
		})
	}
	return s, nil
}
