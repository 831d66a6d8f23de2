package main

import "flag"
import "fmt"
import "log"
import "math/rand"
import "os"
import "path/filepath"

import "github.com/neurlang/circlecount/datasets/seqxor"
import "github.com/neurlang/circlecount/device"
import "github.com/neurlang/circlecount/model"
import "github.com/neurlang/circlecount/store"
import "github.com/neurlang/circlecount/viz"

func main() {
	epochs := flag.Int("epochs", seqxor.Epochs, "training epochs")
	lr := flag.Float64("lr", 0.01, "learning rate")
	size := flag.Int("size", seqxor.TrainingSize, "number of training samples")
	out := flag.String("out", "data/out", "directory of the rendered curve and result")
	base := flag.String("base", model.BaseDir, "model store directory")
	save := flag.Bool("save", false, "save the trained model")
	gpu := flag.Bool("gpu", false, "train on the gpu when one is available")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	l := log.New(os.Stderr, "", log.LstdFlags)
	info := device.Probe()
	l.Println(info)

	if err := os.MkdirAll(*out, 0755); err != nil {
		l.Fatal(err)
	}
	params := model.XorParams(seqxor.SequenceSize)
	m, err := model.New(params, model.Options{
		Logger: l,
		Store:  store.New(*base),
		UseGPU: *gpu && info.Accelerated(),
		Seed:   *seed,
	})
	if err != nil {
		l.Fatal(err)
	}
	m.AddCallbacks(&viz.Curve{Path: filepath.Join(*out, m.Name()+".curve.svg")})
	if err := m.Compile(*lr); err != nil {
		l.Fatal(err)
	}

	train := seqxor.Generate(*size, *seed)
	test := seqxor.TestData(*seed + 1)
	if _, err := m.Train(train, *epochs, test); err != nil {
		l.Fatal(err)
	}
	e, err := m.Evaluate(test)
	if err != nil {
		l.Fatal(err)
	}
	l.Println("evaluation:", e)

	pair := seqxor.RandomPairs(rand.New(rand.NewSource(*seed+2)), 1)[0]
	preds, err := m.Predict([][]float32{seqxor.Join(pair)})
	if err != nil {
		l.Fatal(err)
	}
	fmt.Println("seq 1 ", pair[0])
	fmt.Println("seq 2 ", pair[1])
	fmt.Println("xor   ", seqxor.Xor(pair[0], pair[1]))
	fmt.Println("output", preds[0])

	result, err := os.Create(filepath.Join(*out, m.Name()+".result.svg"))
	if err != nil {
		l.Fatal(err)
	}
	defer result.Close()
	if err := viz.Bars(result, []string{"seq 1", "seq 2", "xor"}, [][]float32{pair[0], pair[1], preds[0]}); err != nil {
		l.Fatal(err)
	}
	if *save {
		if err := m.Save(false); err != nil {
			l.Fatal(err)
		}
	}
}
