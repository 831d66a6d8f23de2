package model

import "github.com/neurlang/circlecount/datasets"
import "github.com/neurlang/circlecount/net/sequential"
import "github.com/neurlang/circlecount/trainer"

// Visualizer renders the structure and the results of a model
type Visualizer interface {

	// Graph renders the structural diagram of a network.
	Graph(g *sequential.Network) error

	// Curve returns a callback rendering the training curve of the named model.
	Curve(name string) trainer.Callback

	// Predictions renders samples next to the raw predictions of the named model.
	Predictions(name string, samples datasets.Samples, preds [][]float32) error
}
