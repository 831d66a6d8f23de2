// Package layer defines the stage interface shared by all layer kinds and the
// loom layer definition they lay out into
package layer

import "fmt"

// Layer is the layer which can be resolved into a stage of a sequential graph
type Layer interface {

	// Lay resolves the layer against its input shape.
	Lay(in Shape) (Stage, error)
}

// Shape is the height, width and channel count flowing between stages.
type Shape struct {
	Height   int `json:"height"`
	Width    int `json:"width"`
	Channels int `json:"channels"`
}

// Flat creates a one dimensional shape of n values.
func Flat(n int) Shape {
	return Shape{Height: n, Width: 1, Channels: 1}
}

// Size is the number of values in the shape.
func (s Shape) Size() int {
	return s.Height * s.Width * s.Channels
}

// Valid reports whether every dimension is positive.
func (s Shape) Valid() bool {
	return s.Height > 0 && s.Width > 0 && s.Channels > 0
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%dx%d", s.Height, s.Width, s.Channels)
}

// Kind names a layer kind.
type Kind string

const (
	Flatten   Kind = "flatten"
	Dense     Kind = "dense"
	Conv2D    Kind = "conv2d"
	MaxPool2D Kind = "max_pool2d"
)

// Emulated reports whether loom has no layer of this kind. A max_pool2d stage
// runs as a learnable per channel conv2d whose kernel and stride equal the pool
// size, it does not take the maximum.
func (k Kind) Emulated() bool {
	return k == MaxPool2D
}

// Activation names the nonlinearity applied by a stage.
type Activation string

const (
	Linear  Activation = "linear"
	ReLU    Activation = "relu"
	Sigmoid Activation = "sigmoid"
	Tanh    Activation = "tanh"
	Softmax Activation = "softmax"
)

// Loom maps the activation onto the loom activation name.
// Softmax has no loom activation, it is a separate loom layer.
func (a Activation) Loom() string {
	switch a {
	case ReLU, Sigmoid, Tanh:
		return string(a)
	}
	return "none"
}

// Stage is a layer resolved against a concrete input shape
type Stage struct {
	Kind        Kind         `json:"kind"`
	Activation  Activation   `json:"activation,omitempty"`
	In          Shape        `json:"in"`
	Out         Shape        `json:"out"`
	Definitions []Definition `json:"-"`
}

func (s Stage) String() string {
	if s.Activation == "" {
		return fmt.Sprintf("%s %s -> %s", s.Kind, s.In, s.Out)
	}
	return fmt.Sprintf("%s(%s) %s -> %s", s.Kind, s.Activation, s.In, s.Out)
}

// Definition is one entry of the "layers" list of a loom network description.
type Definition struct {
	Type          string `json:"type"`
	Activation    string `json:"activation"`
	InputHeight   int    `json:"input_height,omitempty"`
	InputWidth    int    `json:"input_width,omitempty"`
	InputChannels int    `json:"input_channels,omitempty"`
	Filters       int    `json:"filters,omitempty"`
	KernelSize    int    `json:"kernel_size,omitempty"`
	Stride        int    `json:"stride,omitempty"`
	Padding       int    `json:"padding"`
	OutputHeight  int    `json:"output_height,omitempty"`
	OutputWidth   int    `json:"output_width,omitempty"`
}
