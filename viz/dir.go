package viz

import "io"
import "os"
import "path/filepath"

import "github.com/neurlang/circlecount/datasets"
import "github.com/neurlang/circlecount/net/sequential"
import "github.com/neurlang/circlecount/trainer"

// Dir writes all renderings of a model into a directory, named after the model.
// Width and Height are the sample image size, zero means square.
type Dir struct {
	Path          string
	Width, Height int
}

func (d Dir) file(name, ext string) (string, error) {
	if err := os.MkdirAll(d.Path, 0755); err != nil {
		return "", err
	}
	return filepath.Join(d.Path, name+ext), nil
}

// Graph writes <name>.graph.svg
func (d Dir) Graph(g *sequential.Network) error {
	name, err := d.file(g.Name(), ".graph.svg")
	if err != nil {
		return err
	}
	return writeFile(name, func(w io.Writer) error {
		return WriteGraph(w, g)
	})
}

// Curve returns a callback writing <name>.curve.svg
func (d Dir) Curve(name string) trainer.Callback {
	path, err := d.file(name, ".curve.svg")
	if err != nil {
		return trainer.CallbackFunc(func(trainer.Epoch) error { return err })
	}
	return &Curve{Path: path}
}

// Predictions writes <name>.predict.png
func (d Dir) Predictions(name string, samples datasets.Samples, preds [][]float32) error {
	path, err := d.file(name, ".predict.png")
	if err != nil {
		return err
	}
	return writeFile(path, func(w io.Writer) error {
		return WritePredictions(w, samples, preds, d.Width, d.Height)
	})
}
