// Package maxpool2d implements the 2D pooling layer
package maxpool2d

import "fmt"

import "github.com/neurlang/circlecount/layer"

// MaxPool2DLayer halves (by default) the spatial size of its input.
type MaxPool2DLayer struct {
	size int
}

// New creates a new MaxPool2D layer with a square pool size
func New(size int) (o *MaxPool2DLayer, err error) {
	if size <= 0 {
		return nil, fmt.Errorf("New MaxPool2D: Size %d must be positive", size)
	}
	return &MaxPool2DLayer{size: size}, nil
}

// MustNew creates a new MaxPool2D layer with a square pool size
func MustNew(size int) (o *MaxPool2DLayer) {
	o, err := New(size)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// Lay turns MaxPool2D layer into a stage.
//
// Loom has no pooling layer, so the pool lays out into a per channel
// convolution whose kernel and stride equal the pool size.
func (i *MaxPool2DLayer) Lay(in layer.Shape) (layer.Stage, error) {
	if !in.Valid() {
		return layer.Stage{}, fmt.Errorf("MaxPool2D: invalid input shape %s", in)
	}
	if in.Width < i.size || in.Height < i.size {
		return layer.Stage{}, fmt.Errorf("MaxPool2D: input %s is smaller than pool %d", in, i.size)
	}
	out := layer.Shape{
		Height:   in.Height / i.size,
		Width:    in.Width / i.size,
		Channels: in.Channels,
	}
	return layer.Stage{
		Kind: layer.MaxPool2D,
		In:   in,
		Out:  out,
		Definitions: []layer.Definition{{
			Type:          "conv2d",
			Activation:    "none",
			InputHeight:   in.Height,
			InputWidth:    in.Width,
			InputChannels: in.Channels,
			Filters:       in.Channels,
			KernelSize:    i.size,
			Stride:        i.size,
			OutputHeight:  out.Height,
			OutputWidth:   out.Width,
		}},
	}, nil
}
