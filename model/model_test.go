package model

import "bytes"
import "errors"
import "io"
import "log"
import "math"
import "os"
import "path/filepath"
import "strings"
import "testing"

import "github.com/neurlang/circlecount/datasets"
import "github.com/neurlang/circlecount/datasets/circles"
import "github.com/neurlang/circlecount/layer"
import "github.com/neurlang/circlecount/loss"
import "github.com/neurlang/circlecount/store"
import "github.com/neurlang/circlecount/trainer"

var concrete = []Variant{ClassificationModel, RegressionModel, ConvClsModel, ConvRegModel, XorModel}

func smallParams(v Variant) Params {
	v2 := v
	return Params{
		InputShape:  layer.Shape{Height: 8, Width: 8, Channels: 1},
		FCLayers:    1,
		FCUnits:     8,
		ConvLayers:  1,
		ConvFilters: 4,
		OutputUnits: 3,
		Variant:     &v2,
	}
}

func testOptions(t *testing.T) Options {
	return Options{
		Logger: log.New(io.Discard, "", 0),
		Store:  store.New(t.TempDir()),
		Confirmer: ConfirmFunc(func(string) (bool, error) {
			t.Fatal("unexpected prompt")
			return false, nil
		}),
	}
}

func smallData(n int, seed int64) datasets.Samples {
	cfg := circles.Config{Width: 8, Height: 8, Circles: [2]int{0, 2}, Radius: [2]int{1, 2}}
	s, err := circles.Generate(cfg, n, seed)
	if err != nil {
		panic(err)
	}
	return s
}

func TestDoubleBuildFails(t *testing.T) {
	for _, v := range concrete {
		m, err := New(smallParams(v), testOptions(t))
		if err != nil {
			t.Fatalf("%s: %v", v, err)
		}
		if err := m.Build(); !errors.Is(err, ErrInitialized) {
			t.Fatalf("%s: second build got %v", v, err)
		}
		if err := m.Load(false); !errors.Is(err, ErrInitialized) {
			t.Fatalf("%s: load after build got %v", v, err)
		}
	}
}

func TestTrainVerifyNeedCompile(t *testing.T) {
	data := smallData(4, 1)
	for _, v := range concrete {
		m, err := New(smallParams(v), testOptions(t))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := m.Train(data, 1, nil); !errors.Is(err, ErrNotCompiled) {
			t.Fatalf("%s: train got %v", v, err)
		}
		if err := m.Verify(data); !errors.Is(err, ErrNotCompiled) {
			t.Fatalf("%s: verify got %v", v, err)
		}
	}
}

func TestUninitialized(t *testing.T) {
	m, err := NewModel(smallParams(RegressionModel), testOptions(t))
	if err != nil {
		t.Fatal(err)
	}
	data := smallData(2, 1)
	checks := map[string]error{
		"compile": m.Compile(0.1),
		"save":    m.Save(false),
		"show":    m.Show(),
		"verify":  m.Verify(data),
	}
	_, checks["predict"] = m.Predict(data.Inputs())
	_, checks["evaluate"] = m.Evaluate(data)
	for op, err := range checks {
		if !errors.Is(err, ErrNotInitialized) {
			t.Errorf("%s got %v", op, err)
		}
	}
}

func TestNameIsPure(t *testing.T) {
	p := ConvClsParams()
	a, err := NewModel(p, testOptions(t))
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewModel(p, testOptions(t))
	if err != nil {
		t.Fatal(err)
	}
	if a.Name() != b.Name() || a.Name() != DeriveName(p, ConvClsModel) {
		t.Fatalf("%s != %s", a.Name(), b.Name())
	}
	if err := a.Build(); err != nil {
		t.Fatal(err)
	}
	if a.Graph().Name() != b.Name() {
		t.Fatalf("graph name %s", a.Graph().Name())
	}
}

func TestClassificationGraph(t *testing.T) {
	p := Params{
		InputShape:  layer.Shape{Height: circles.ImgSize, Width: circles.ImgSize, Channels: 1},
		FCLayers:    1,
		FCUnits:     8,
		OutputUnits: 2,
		ModelType:   "ClassificationModel",
	}
	m, err := New(p, testOptions(t))
	if err != nil {
		t.Fatal(err)
	}
	if m.Name() != "circle_count.ClassificationModel.fc1-8" {
		t.Fatalf("name %s", m.Name())
	}
	last, ok := m.Graph().Last()
	if !ok {
		t.Fatal("empty graph")
	}
	if last.Out.Size() != 2 || last.Activation != layer.Softmax {
		t.Fatalf("last stage %s", last)
	}
	if err := m.Compile(0); err != nil {
		t.Fatal(err)
	}
	if m.Loss() != loss.SparseCategoricalCrossentropy || m.Optimizer().LearningRate != DefaultLearningRate {
		t.Fatalf("compiled with %s %s", m.Loss(), m.Optimizer())
	}
}

func TestConvRegNameAndLoss(t *testing.T) {
	p := Params{
		InputShape:  layer.Shape{Height: circles.ImgSize, Width: circles.ImgSize, Channels: 1},
		FCLayers:    1,
		FCUnits:     8,
		ConvLayers:  1,
		ConvFilters: 16,
		ModelType:   "ConvRegModel",
	}
	m, err := New(p, testOptions(t))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(m.Name(), ".conv1-16") {
		t.Fatalf("name %s", m.Name())
	}
	if err := m.Compile(0.01); err != nil {
		t.Fatal(err)
	}
	if m.Loss() != loss.MeanSquaredError {
		t.Fatalf("loss %s", m.Loss())
	}
}

func readRecord(t *testing.T, dir string) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, ModelFile))
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestSaveTwiceKeepsOneBackup(t *testing.T) {
	opts := testOptions(t)
	m, err := New(smallParams(RegressionModel), opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Save(false); err != nil {
		t.Fatal(err)
	}
	current, backup := opts.Store.Paths(m.Name())
	first := readRecord(t, current)
	if err := m.Save(false); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(readRecord(t, backup), first) {
		t.Fatal("backup differs from first save")
	}
	if !bytes.Equal(readRecord(t, current), first) {
		t.Fatal("current differs from unmodified model")
	}
	entries, err := os.ReadDir(opts.Store.Base())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("%d records in store", len(entries))
	}
}

func TestSaveDeclined(t *testing.T) {
	opts := testOptions(t)
	var prompt string
	opts.Confirmer = ConfirmFunc(func(p string) (bool, error) {
		prompt = p
		return false, nil
	})
	m, err := New(smallParams(RegressionModel), opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Save(true); err != nil {
		t.Fatal(err)
	}
	if prompt != "save model [\""+m.Name()+"\"]? (y|n): " {
		t.Fatalf("prompt %q", prompt)
	}
	if _, err := os.Stat(opts.Store.Base()); !os.IsNotExist(err) {
		entries, _ := os.ReadDir(opts.Store.Base())
		if len(entries) != 0 {
			t.Fatalf("declined save wrote %d records", len(entries))
		}
	}
	if err := m.Save(false); err != nil {
		t.Fatal(err)
	}
	if err := m.Save(true); err != nil {
		t.Fatal(err)
	}
	_, backup := opts.Store.Paths(m.Name())
	if _, err := os.Stat(backup); !os.IsNotExist(err) {
		t.Fatal("declined save rotated the record")
	}
}

func TestLoadRestoresNetwork(t *testing.T) {
	opts := testOptions(t)
	p := smallParams(ClassificationModel)
	m, err := New(p, opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Save(false); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(p, true, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !loaded.Compiled() {
		t.Fatal("load with compile is not compiled")
	}
	x := smallData(3, 2).Inputs()
	a, err := m.Predict(x)
	if err != nil {
		t.Fatal(err)
	}
	b, err := loaded.Predict(x)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		for j := range a[i] {
			if math.Abs(float64(a[i][j]-b[i][j])) > 1e-4 {
				t.Fatalf("prediction %d differs: %v %v", i, a[i], b[i])
			}
		}
	}
	uncompiled, err := Load(p, false, opts)
	if err != nil {
		t.Fatal(err)
	}
	if uncompiled.Compiled() {
		t.Fatal("load without compile is compiled")
	}
	p.FCUnits = 9
	if _, err := Load(p, false, opts); err == nil {
		t.Fatal("loaded a record that was never saved")
	}
}

func TestResume(t *testing.T) {
	opts := testOptions(t)
	p := smallParams(RegressionModel)
	m, loaded, err := Resume(p, true, opts)
	if err != nil || loaded {
		t.Fatalf("fresh resume loaded=%v err=%v", loaded, err)
	}
	if err := m.Save(false); err != nil {
		t.Fatal(err)
	}
	if _, loaded, err = Resume(p, false, opts); err != nil || loaded {
		t.Fatalf("resume disabled loaded=%v err=%v", loaded, err)
	}
	if _, loaded, err = Resume(p, true, opts); err != nil || !loaded {
		t.Fatalf("resume loaded=%v err=%v", loaded, err)
	}
}

func TestTrainAndEvaluate(t *testing.T) {
	opts := testOptions(t)
	var seen int
	opts.Callbacks = []trainer.Callback{trainer.CallbackFunc(func(e trainer.Epoch) error {
		seen++
		return nil
	})}
	m, err := New(smallParams(RegressionModel), opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Compile(0.01); err != nil {
		t.Fatal(err)
	}
	h, err := m.Train(smallData(40, 3), 2, smallData(10, 4))
	if err != nil {
		t.Fatal(err)
	}
	if len(h) != 2 || seen != 2 {
		t.Fatalf("history %d callbacks %d", len(h), seen)
	}
	e, err := m.Evaluate(smallData(10, 5))
	if err != nil {
		t.Fatal(err)
	}
	if e.Samples != 10 || e.Accuracy < 0 || e.Accuracy > 1 {
		t.Fatalf("evaluation %s", e)
	}
	if err := m.Verify(smallData(5, 6)); err != nil {
		t.Fatal(err)
	}
}

func TestTrainSplitsWithoutTestData(t *testing.T) {
	m, err := New(smallParams(ClassificationModel), testOptions(t))
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Compile(0.01); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Train(smallData(30, 7), 1, nil); err != nil {
		t.Fatal(err)
	}
}

func TestPredictRejectsWrongInput(t *testing.T) {
	m, err := New(smallParams(RegressionModel), testOptions(t))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Predict([][]float32{{1, 2, 3}}); err == nil {
		t.Fatal("short input accepted")
	}
}
