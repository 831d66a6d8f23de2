package main

import "flag"
import "log"
import "os"

import "github.com/neurlang/circlecount/datasets"
import "github.com/neurlang/circlecount/datasets/circles"
import "github.com/neurlang/circlecount/device"
import "github.com/neurlang/circlecount/history"
import "github.com/neurlang/circlecount/model"
import "github.com/neurlang/circlecount/store"
import "github.com/neurlang/circlecount/trainer"
import "github.com/neurlang/circlecount/viz"

// VerifySize is the number of fresh samples the trained model is verified on
const VerifySize = 100

func main() {
	preset := flag.String("model", "reg", "model preset: reg, cls, conv_reg or conv_cls")
	paramsFile := flag.String("params", "", "model params .json file, overrides -model")
	base := flag.String("base", model.BaseDir, "model store directory")
	resume := flag.Bool("resume", false, "load the saved model and train it further")
	epochs := flag.Int("epochs", 0, "training epochs, 0 means 10 for a new model and 100 for a resumed one")
	lr := flag.Float64("lr", model.DefaultLearningRate, "learning rate")
	size := flag.Int("size", 5000, "number of generated training samples")
	data := flag.String("data", "", "directory of stored samples to train on instead of generated ones")
	errs := flag.Float64("errors", 0, "when positive, train only on samples predicted wrong by more than this")
	dry := flag.Bool("dry", false, "do not save the model")
	ask := flag.Bool("ask", false, "ask before saving the model")
	best := flag.Bool("best", false, "save the model whenever validation accuracy improves")
	out := flag.String("out", "data/out", "directory of the rendered graph, curve and predictions")
	hist := flag.String("history", "", "sqlite database recording the training run")
	gpu := flag.Bool("gpu", false, "train on the gpu when one is available")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	l := log.New(os.Stderr, "", log.LstdFlags)

	params, err := model.LookupParams(*preset, *paramsFile)
	if err != nil {
		l.Fatal(err)
	}
	info := device.Probe()
	l.Println(info)
	if *gpu && !info.Accelerated() {
		l.Println("no gpu found, training on cpu")
	}

	opts := model.Options{
		Logger:   l,
		Store:    store.New(*base),
		Provider: circles.Provider{Holdout: datasets.Holdout{Salt: uint32(*seed)}},
		Visualizer: viz.Dir{
			Path:   *out,
			Width:  params.InputShape.Width,
			Height: params.InputShape.Height,
		},
		UseGPU: *gpu && info.Accelerated(),
		Seed:   *seed,
	}
	m, loaded, err := model.Resume(params, *resume, opts)
	if err != nil {
		l.Fatal(err)
	}
	if err := m.Compile(*lr); err != nil {
		l.Fatal(err)
	}

	cfg := dataConfig(params)
	var samples datasets.Samples
	if *data != "" {
		samples, err = circles.LoadDir(*data, cfg.Width, cfg.Height)
	} else {
		samples, err = circles.Generate(cfg, *size, *seed)
	}
	if err != nil {
		l.Fatal(err)
	}
	if *errs > 0 {
		preds, err := m.Predict(samples.Inputs())
		if err != nil {
			l.Fatal(err)
		}
		samples = circles.Errors(samples, preds, *errs)
		l.Printf("training on %d error samples", len(samples))
		if len(samples) == 0 {
			return
		}
	}

	n := *epochs
	if n <= 0 {
		n = model.TrainEpochs
		if loaded {
			n = model.RerunEpochs
		}
	}

	var run *history.Run
	if *hist != "" {
		db, err := history.Open(*hist)
		if err != nil {
			l.Fatal(err)
		}
		defer db.Close()
		run, err = db.StartRun(m.Name(), m.Variant().Name, n, m.Optimizer().LearningRate)
		if err != nil {
			l.Fatal(err)
		}
		m.AddCallbacks(run)
		l.Println("history run", run.ID)
	}
	if *best && !*dry {
		m.AddCallbacks(checkpoint(m, *ask || loaded))
	}

	h, err := m.Train(samples, n, nil)
	if run != nil {
		if ferr := run.Finish(h, err); ferr != nil {
			l.Println(ferr)
		}
	}
	if err != nil {
		l.Fatal(err)
	}

	fresh, err := circles.Generate(cfg, VerifySize, *seed+int64(*size))
	if err != nil {
		l.Fatal(err)
	}
	if err := m.Verify(fresh); err != nil {
		l.Fatal(err)
	}
	if err := m.Show(); err != nil {
		l.Fatal(err)
	}

	if *dry || *best {
		return
	}
	if err := m.Save(*ask || loaded); err != nil {
		l.Fatal(err)
	}
}

// checkpoint saves m on every validation improvement, asking first when ask is set
func checkpoint(m *model.Model, ask bool) *trainer.Best {
	return &trainer.Best{Save: func(e trainer.Epoch) error {
		return m.Save(ask)
	}}
}

// dataConfig fits the default circle images to the model input and output
func dataConfig(p model.Params) circles.Config {
	cfg := circles.DefaultConfig()
	cfg.Width, cfg.Height = p.InputShape.Width, p.InputShape.Height
	if p.OutputUnits > 0 && cfg.Circles[1] >= p.OutputUnits {
		cfg.Circles[1] = p.OutputUnits - 1
	}
	return cfg
}
