package main

import "flag"
import "log"
import "os"

import "github.com/neurlang/circlecount/datasets"
import "github.com/neurlang/circlecount/datasets/circles"
import "github.com/neurlang/circlecount/model"
import "github.com/neurlang/circlecount/store"
import "github.com/neurlang/circlecount/viz"

func main() {
	preset := flag.String("model", "conv_reg", "model preset: reg, cls, conv_reg or conv_cls")
	paramsFile := flag.String("params", "", "model params .json file, overrides -model")
	base := flag.String("base", model.BaseDir, "model store directory")
	data := flag.String("data", "", "directory of stored samples, generated samples when empty")
	size := flag.Int("size", 100, "number of generated samples")
	minCircles := flag.Int("min", 0, "minimum circles per generated image")
	maxCircles := flag.Int("max", 8, "maximum circles per generated image")
	minRadius := flag.Int("rmin", 2, "minimum generated circle radius")
	maxRadius := flag.Int("rmax", 4, "maximum generated circle radius")
	threshold := flag.Float64("threshold", 0.5, "regression error threshold")
	out := flag.String("out", "data/out", "directory of the rendered graph and predictions")
	seed := flag.Int64("seed", 2, "random seed")
	flag.Parse()

	l := log.New(os.Stderr, "", log.LstdFlags)

	params, err := model.LookupParams(*preset, *paramsFile)
	if err != nil {
		l.Fatal(err)
	}
	width, height := params.InputShape.Width, params.InputShape.Height
	m, err := model.Load(params, true, model.Options{
		Logger:     l,
		Store:      store.New(*base),
		Provider:   circles.Provider{},
		Visualizer: viz.Dir{Path: *out, Width: width, Height: height},
	})
	if err != nil {
		l.Fatal(err)
	}
	if err := m.Show(); err != nil {
		l.Fatal(err)
	}

	var samples datasets.Samples
	if *data != "" {
		samples, err = circles.LoadDir(*data, width, height)
	} else {
		cfg := circles.DataConfig([2]int{*minCircles, *maxCircles}, [2]int{*minRadius, *maxRadius})
		cfg.Width, cfg.Height = width, height
		samples, err = circles.Generate(cfg, *size, *seed)
	}
	if err != nil {
		l.Fatal(err)
	}
	if err := m.Verify(samples); err != nil {
		l.Fatal(err)
	}

	preds, err := m.Predict(samples.Inputs())
	if err != nil {
		l.Fatal(err)
	}
	wrong := circles.Errors(samples, preds, *threshold)
	println("errors:", len(wrong), "of", len(samples))
}
