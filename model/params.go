package model

import "encoding/json"
import "fmt"
import "os"

import "github.com/neurlang/circlecount/datasets/circles"
import "github.com/neurlang/circlecount/layer"

// Prefix is the default first component of a derived model name
const Prefix = "circle_count"

// BaseDir is the default directory of persisted model records
const BaseDir = "data/model"

// DefaultLearningRate is used by Compile for a non-positive learning rate
const DefaultLearningRate = 0.001

// TrainEpochs is the default epoch count of Train
const TrainEpochs = 10

// RerunEpochs is the epoch count of training a loaded model again
const RerunEpochs = 100

// Params configures a model. A model never modifies its params.
type Params struct {
	InputShape  layer.Shape `json:"input_shape"`
	FCLayers    int         `json:"fc_layers"`
	FCUnits     int         `json:"fc_layers_units"`
	ConvLayers  int         `json:"conv_layers"`
	ConvFilters int         `json:"conv_filters"`
	OutputUnits int         `json:"output_units"`
	ModelType   string      `json:"model_type"`
	Prefix      string      `json:"prefix,omitempty"`

	// Variant, when it has a head, selects the variant directly instead of ModelType
	Variant *Variant `json:"-"`
}

// Validate checks that the params are usable for building a network,
// including the output units the head of the selected variant needs.
func (p Params) Validate() error {
	if !p.InputShape.Valid() {
		return fmt.Errorf("params: invalid input shape %s", p.InputShape)
	}
	if p.FCLayers < 0 {
		return fmt.Errorf("params: negative fc_layers %d", p.FCLayers)
	}
	if p.FCLayers > 0 && p.FCUnits <= 0 {
		return fmt.Errorf("params: %d fc_layers of %d units", p.FCLayers, p.FCUnits)
	}
	if p.ConvLayers < 0 {
		return fmt.Errorf("params: negative conv_layers %d", p.ConvLayers)
	}
	if p.ConvLayers > 0 && p.ConvFilters <= 0 {
		return fmt.Errorf("params: %d conv_layers of %d filters", p.ConvLayers, p.ConvFilters)
	}
	if p.OutputUnits < 0 {
		return fmt.Errorf("params: negative output_units %d", p.OutputUnits)
	}
	if v, err := Resolve(p); err == nil {
		if _, err := v.Head.OutputStages(p); err != nil {
			return fmt.Errorf("params: %s: %w", v.Name, err)
		}
	}
	return nil
}

func (p Params) prefix() string {
	if p.Prefix == "" {
		return Prefix
	}
	return p.Prefix
}

var imageShape = layer.Shape{Height: circles.ImgSize, Width: circles.ImgSize, Channels: 1}

// RegParams is the dense regression preset
func RegParams() Params {
	return Params{
		InputShape: imageShape,
		FCLayers:   2,
		FCUnits:    128,
		ModelType:  RegressionModel.Name,
	}
}

// ClsParams is the dense classification preset
func ClsParams() Params {
	return Params{
		InputShape:  imageShape,
		FCLayers:    2,
		FCUnits:     128,
		OutputUnits: circles.DefaultConfig().Classes(),
		ModelType:   ClassificationModel.Name,
	}
}

// ConvRegParams is the convolutional regression preset
func ConvRegParams() Params {
	return Params{
		InputShape:  imageShape,
		FCLayers:    1,
		FCUnits:     64,
		ConvLayers:  2,
		ConvFilters: 32,
		ModelType:   ConvRegModel.Name,
	}
}

// ConvClsParams is the convolutional classification preset
func ConvClsParams() Params {
	return Params{
		InputShape:  imageShape,
		FCLayers:    1,
		FCUnits:     64,
		ConvLayers:  2,
		ConvFilters: 32,
		OutputUnits: circles.DefaultConfig().Classes(),
		ModelType:   ConvClsModel.Name,
	}
}

// XorParams is the sequence xor preset, two rows of sequenceSize bits
func XorParams(sequenceSize int) Params {
	return Params{
		InputShape:  layer.Shape{Height: 2, Width: sequenceSize, Channels: 1},
		FCLayers:    2,
		FCUnits:     128,
		OutputUnits: sequenceSize,
		ModelType:   XorModel.Name,
		Prefix:      "seq_xor",
	}
}

// Presets maps preset names accepted by the commands to their params
var Presets = map[string]func() Params{
	"reg":      RegParams,
	"cls":      ClsParams,
	"conv_reg": ConvRegParams,
	"conv_cls": ConvClsParams,
}

// LookupParams reads params from file when not empty, otherwise returns the named preset
func LookupParams(preset, file string) (Params, error) {
	if file != "" {
		return ReadParamsFromFile(file)
	}
	f, ok := Presets[preset]
	if !ok {
		return Params{}, fmt.Errorf("no such preset %q, use reg, cls, conv_reg or conv_cls", preset)
	}
	return f(), nil
}

// ReadParamsFromFile reads params from a json file
func ReadParamsFromFile(name string) (p Params, err error) {
	file, err := os.Open(name)
	if err != nil {
		return p, err
	}
	defer file.Close()
	dec := json.NewDecoder(file)
	dec.DisallowUnknownFields()
	if err = dec.Decode(&p); err != nil {
		return p, fmt.Errorf("params %s: %w", name, err)
	}
	return p, p.Validate()
}
