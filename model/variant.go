package model

import "fmt"
import "math"

import "github.com/neurlang/circlecount/layer"
import "github.com/neurlang/circlecount/layer/conv2d"
import "github.com/neurlang/circlecount/layer/dense"
import "github.com/neurlang/circlecount/layer/flatten"
import "github.com/neurlang/circlecount/layer/maxpool2d"
import "github.com/neurlang/circlecount/loss"
import "github.com/neurlang/circlecount/metrics"

// Topology produces the feature extraction stages in front of the dense layers
type Topology interface {

	// InputStages returns the stages taking the raw input down to a flat vector.
	InputStages(p Params) ([]layer.Layer, error)

	// NameSuffix is appended to the derived model name.
	NameSuffix(p Params) string
}

// Head produces the output stages and decides how the model is trained
type Head interface {

	// OutputStages returns the stages after the dense layers.
	OutputStages(p Params) ([]layer.Layer, error)

	// Loss is the loss the model is compiled with.
	Loss() loss.ID

	// Metrics are reported on validation and evaluation, the first one is
	// the accuracy of the training history.
	Metrics() []metrics.ID

	// Encode converts a sample target into the network output space.
	Encode(target []float32, p Params) ([]float32, error)

	// Decode converts a network output back into the target space.
	Decode(out []float32) []float32
}

// Variant is a named combination of topology and head
type Variant struct {
	Name     string
	Topology Topology
	Head     Head
}

// Abstract reports whether the variant misses a topology or a head
func (v Variant) Abstract() bool {
	return v.Topology == nil || v.Head == nil
}

func (v Variant) String() string {
	return v.Name
}

// Plain flattens the input
type Plain struct{}

// InputStages returns a single flatten stage
func (Plain) InputStages(p Params) ([]layer.Layer, error) {
	return []layer.Layer{flatten.New()}, nil
}

// NameSuffix is empty
func (Plain) NameSuffix(p Params) string {
	return ""
}

// ConvFilters is the filter count of the first convolution
const ConvFilters = 32

// ConvKernel is the kernel size of every convolution
const ConvKernel = 3

// PoolSize is the max pooling window
const PoolSize = 2

// Conv extracts features by convolution and max pooling before flattening
type Conv struct{}

// InputStages returns a ConvFilters convolution, ConvLayers blocks of
// convolution and max pooling, then flatten
func (Conv) InputStages(p Params) (o []layer.Layer, err error) {
	first, err := conv2d.New(ConvFilters, ConvKernel, layer.ReLU)
	if err != nil {
		return nil, err
	}
	o = append(o, first)
	for i := 0; i < p.ConvLayers; i++ {
		c, err := conv2d.New(p.ConvFilters, ConvKernel, layer.ReLU)
		if err != nil {
			return nil, err
		}
		pool, err := maxpool2d.New(PoolSize)
		if err != nil {
			return nil, err
		}
		o = append(o, c, pool)
	}
	return append(o, flatten.New()), nil
}

// NameSuffix is .conv<layers>-<filters>
func (Conv) NameSuffix(p Params) string {
	return fmt.Sprintf(".conv%d-%d", p.ConvLayers, p.ConvFilters)
}

// Classification predicts one class out of OutputUnits
type Classification struct{}

// OutputStages returns a softmax dense stage of OutputUnits
func (Classification) OutputStages(p Params) ([]layer.Layer, error) {
	d, err := dense.New(p.OutputUnits, layer.Softmax)
	if err != nil {
		return nil, fmt.Errorf("classification head: %w", err)
	}
	return []layer.Layer{d}, nil
}

// Loss is sparse categorical crossentropy
func (Classification) Loss() loss.ID {
	return loss.SparseCategoricalCrossentropy
}

// Metrics is accuracy
func (Classification) Metrics() []metrics.ID {
	return []metrics.ID{metrics.Accuracy}
}

// Encode one-hot encodes the class in target[0]
func (Classification) Encode(target []float32, p Params) ([]float32, error) {
	if len(target) != 1 {
		return nil, fmt.Errorf("classification target has %d values", len(target))
	}
	class := int(target[0])
	if class < 0 || class >= p.OutputUnits {
		return nil, fmt.Errorf("class %d out of %d output units", class, p.OutputUnits)
	}
	o := make([]float32, p.OutputUnits)
	o[class] = 1
	return o, nil
}

// Decode returns the most probable class
func (Classification) Decode(out []float32) []float32 {
	return []float32{float32(metrics.Argmax(out))}
}

// Regression predicts a single scalar
type Regression struct{}

// OutputStages returns a linear dense stage of one unit
func (Regression) OutputStages(p Params) ([]layer.Layer, error) {
	d, err := dense.New(1, layer.Linear)
	if err != nil {
		return nil, err
	}
	return []layer.Layer{d}, nil
}

// Loss is mean squared error
func (Regression) Loss() loss.ID {
	return loss.MeanSquaredError
}

// Metrics is accuracy of the rounded value
func (Regression) Metrics() []metrics.ID {
	return []metrics.ID{metrics.Accuracy}
}

// Encode copies the scalar target
func (Regression) Encode(target []float32, p Params) ([]float32, error) {
	if len(target) != 1 {
		return nil, fmt.Errorf("regression target has %d values", len(target))
	}
	return []float32{target[0]}, nil
}

// Decode returns the output value
func (Regression) Decode(out []float32) []float32 {
	return append([]float32(nil), out...)
}

// MultiLabel predicts OutputUnits independent bits
type MultiLabel struct{}

// OutputStages returns a sigmoid dense stage of OutputUnits
func (MultiLabel) OutputStages(p Params) ([]layer.Layer, error) {
	d, err := dense.New(p.OutputUnits, layer.Sigmoid)
	if err != nil {
		return nil, fmt.Errorf("multi label head: %w", err)
	}
	return []layer.Layer{d}, nil
}

// Loss is binary crossentropy
func (MultiLabel) Loss() loss.ID {
	return loss.BinaryCrossentropy
}

// Metrics is binary accuracy
func (MultiLabel) Metrics() []metrics.ID {
	return []metrics.ID{metrics.BinaryAccuracy}
}

// Encode copies the bits
func (MultiLabel) Encode(target []float32, p Params) ([]float32, error) {
	if len(target) != p.OutputUnits {
		return nil, fmt.Errorf("multi label target has %d values, want %d", len(target), p.OutputUnits)
	}
	return append([]float32(nil), target...), nil
}

// Decode rounds every output to a bit
func (MultiLabel) Decode(out []float32) []float32 {
	o := make([]float32, len(out))
	for i := range out {
		o[i] = float32(math.Round(float64(out[i])))
	}
	return o
}

var _ Topology = Plain{}
var _ Topology = Conv{}
var _ Head = Classification{}
var _ Head = Regression{}
var _ Head = MultiLabel{}

var (
	// BaseModel has neither topology nor head
	BaseModel = Variant{Name: "Model"}
	// ConvModel has the convolutional topology but no head
	ConvModel = Variant{Name: "ConvModel", Topology: Conv{}}

	ClassificationModel = Variant{Name: "ClassificationModel", Topology: Plain{}, Head: Classification{}}
	RegressionModel     = Variant{Name: "RegressionModel", Topology: Plain{}, Head: Regression{}}
	ConvClsModel        = Variant{Name: "ConvClsModel", Topology: Conv{}, Head: Classification{}}
	ConvRegModel        = Variant{Name: "ConvRegModel", Topology: Conv{}, Head: Regression{}}
	XorModel            = Variant{Name: "XorModel", Topology: Plain{}, Head: MultiLabel{}}
)
