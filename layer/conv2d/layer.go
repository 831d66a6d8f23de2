// Package conv2d implements a 2D convolution layer
package conv2d

import "fmt"
import "github.com/neurlang/circlecount/layer"

type Conv2DLayer struct {
	filters, kernel, stride int
	activation              layer.Activation
}

// MustNew creates a new Conv2D layer with filters, square kernel size and activation
func MustNew(filters, kernel int, activation layer.Activation) *Conv2DLayer {
	o, err := New(filters, kernel, activation)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// New creates a new Conv2D layer with filters, square kernel size and activation
func New(filters, kernel int, activation layer.Activation) (o *Conv2DLayer, err error) {
	return New2(filters, kernel, 1, activation)
}

// MustNew2 creates a new Conv2D layer with filters, kernel, stride and activation
func MustNew2(filters, kernel, stride int, activation layer.Activation) *Conv2DLayer {
	o, err := New2(filters, kernel, stride, activation)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// New2 creates a new Conv2D layer with filters, kernel, stride and activation
func New2(filters, kernel, stride int, activation layer.Activation) (o *Conv2DLayer, err error) {
	if filters <= 0 {
		return nil, fmt.Errorf("New Conv2D: Filters %d must be positive", filters)
	}
	if kernel <= 0 {
		return nil, fmt.Errorf("New Conv2D: Kernel %d must be positive", kernel)
	}
	if stride <= 0 {
		return nil, fmt.Errorf("New Conv2D: Stride %d must be positive", stride)
	}
	if activation == layer.Softmax {
		return nil, fmt.Errorf("New Conv2D: Softmax activation is not supported")
	}
	o = new(Conv2DLayer)
	o.filters = filters
	o.kernel = kernel
	o.stride = stride
	o.activation = activation
	return
}

// Filters is the number of output channels.
func (i *Conv2DLayer) Filters() int {
	return i.filters
}

// Lay turns Conv2D layer into a stage. No padding is applied.
func (i *Conv2DLayer) Lay(in layer.Shape) (layer.Stage, error) {
	if !in.Valid() {
		return layer.Stage{}, fmt.Errorf("Conv2D: invalid input shape %s", in)
	}
	if in.Width < i.kernel {
		return layer.Stage{}, fmt.Errorf("Conv2D: Width %d is lower than Kernel %d", in.Width, i.kernel)
	}
	if in.Height < i.kernel {
		return layer.Stage{}, fmt.Errorf("Conv2D: Height %d is lower than Kernel %d", in.Height, i.kernel)
	}
	out := layer.Shape{
		Height:   (in.Height-i.kernel)/i.stride + 1,
		Width:    (in.Width-i.kernel)/i.stride + 1,
		Channels: i.filters,
	}
	return layer.Stage{
		Kind:       layer.Conv2D,
		Activation: i.activation,
		In:         in,
		Out:        out,
		Definitions: []layer.Definition{{
			Type:          "conv2d",
			Activation:    i.activation.Loom(),
			InputHeight:   in.Height,
			InputWidth:    in.Width,
			InputChannels: in.Channels,
			Filters:       i.filters,
			KernelSize:    i.kernel,
			Stride:        i.stride,
			OutputHeight:  out.Height,
			OutputWidth:   out.Width,
		}},
	}, nil
}
