// Package model builds, trains, evaluates and persists the sequential models
// of the circle count and sequence xor experiments
package model

import "fmt"
import "log"
import "math/rand"
import "os"
import "path/filepath"

import "github.com/openfluke/loom/nn"

import "github.com/neurlang/circlecount/datasets"
import "github.com/neurlang/circlecount/layer"
import "github.com/neurlang/circlecount/layer/dense"
import "github.com/neurlang/circlecount/loss"
import "github.com/neurlang/circlecount/metrics"
import "github.com/neurlang/circlecount/net/sequential"
import "github.com/neurlang/circlecount/store"
import "github.com/neurlang/circlecount/trainer"

// ModelFile holds the loom network inside a record directory
const ModelFile = "model.json"

// GraphFile holds the stage manifest inside a record directory
const GraphFile = "graph.json"

// Options are the collaborators of a model. Zero values get defaults.
type Options struct {
	Logger     *log.Logger
	Store      *store.Store
	Provider   datasets.Provider
	Visualizer Visualizer
	Confirmer  Confirmer
	Callbacks  []trainer.Callback

	UseGPU       bool
	GradientClip float64
	Seed         int64
}

// Model is one model instance. It is built or loaded exactly once.
type Model struct {
	params  Params
	variant Variant
	opts    Options
	l       *log.Logger
	rng     *rand.Rand

	graph *sequential.Network
	net   *nn.Network

	compiled  bool
	optimizer trainer.Optimizer
	loss      loss.ID
	metrics   []metrics.ID
}

func newModel(p Params, v Variant, opts Options) *Model {
	if opts.Store == nil {
		opts.Store = store.New(BaseDir)
	}
	if opts.Provider == nil {
		opts.Provider = datasets.Holdout{}
	}
	if opts.Confirmer == nil {
		opts.Confirmer = StdinConfirmer()
	}
	l := opts.Logger
	if l == nil {
		l = log.New(os.Stderr, "", log.LstdFlags)
	}
	return &Model{
		params:  p,
		variant: v,
		opts:    opts,
		l:       l,
		rng:     rand.New(rand.NewSource(opts.Seed)),
	}
}

// SetLogger replaces the logger
func (m *Model) SetLogger(l *log.Logger) {
	m.l = l
}

// AddCallbacks appends callbacks notified after every training epoch
func (m *Model) AddCallbacks(c ...trainer.Callback) {
	m.opts.Callbacks = append(m.opts.Callbacks, c...)
}

// Params returns the params the model was created with
func (m *Model) Params() Params {
	return m.params
}

// Variant returns the resolved variant
func (m *Model) Variant() Variant {
	return m.variant
}

// Graph returns the stage description, nil before Build or Load
func (m *Model) Graph() *sequential.Network {
	return m.graph
}

// Network returns the loom network, nil before Build or Load
func (m *Model) Network() *nn.Network {
	return m.net
}

// Compiled reports whether the model may be trained and verified
func (m *Model) Compiled() bool {
	return m.compiled
}

// Optimizer returns the optimizer attached by Compile
func (m *Model) Optimizer() trainer.Optimizer {
	return m.optimizer
}

// Loss returns the loss attached by Compile, empty before
func (m *Model) Loss() loss.ID {
	return m.loss
}

// Metrics returns the metrics attached by Compile, nil before
func (m *Model) Metrics() []metrics.ID {
	return m.metrics
}

// Name derives the model name from the variant and the layer counts
func (m *Model) Name() string {
	return DeriveName(m.params, m.variant)
}

// DeriveName returns <prefix>.<variant>.fc<layers>-<units> followed by the
// topology suffix
func DeriveName(p Params, v Variant) string {
	var suffix string
	if v.Topology != nil {
		suffix = v.Topology.NameSuffix(p)
	}
	return fmt.Sprintf("%s.%s.fc%d-%d%s", p.prefix(), v.Name, p.FCLayers, p.FCUnits, suffix)
}

func (m *Model) store() *store.Store {
	return m.opts.Store
}

// describe lays out the stages of the model without building a network
func (m *Model) describe() (*sequential.Network, error) {
	p := m.params
	g := sequential.New(m.Name(), p.InputShape)
	in, err := m.variant.Topology.InputStages(p)
	if err != nil {
		return nil, err
	}
	var stages = in
	for i := 0; i < p.FCLayers; i++ {
		d, err := dense.New(p.FCUnits, layer.ReLU)
		if err != nil {
			return nil, err
		}
		stages = append(stages, d)
	}
	out, err := m.variant.Head.OutputStages(p)
	if err != nil {
		return nil, err
	}
	stages = append(stages, out...)
	for _, s := range stages {
		if err := g.NewLayer(s); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (m *Model) summary() {
	if err := m.graph.Summary(m.l.Writer()); err != nil {
		m.l.Println(err)
	}
}

// Build lays out the stages and builds a freshly initialized network
func (m *Model) Build() error {
	if m.net != nil {
		return ErrInitialized
	}
	g, err := m.describe()
	if err != nil {
		return err
	}
	net, err := g.Build()
	if err != nil {
		return err
	}
	m.graph, m.net = g, net
	m.summary()
	return nil
}

// Load restores the current record of the model name. The model is compiled
// with the default learning rate when compile is set.
func (m *Model) Load(compile bool) error {
	if m.net != nil {
		return ErrInitialized
	}
	g, err := m.describe()
	if err != nil {
		return err
	}
	name := m.Name()
	current, _ := m.store().Paths(name)
	manifest, err := sequential.ReadManifestFromFile(filepath.Join(current, GraphFile))
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	if err := manifest.Matches(g); err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	net, err := nn.LoadModel(filepath.Join(current, ModelFile), name)
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	if n := net.TotalLayers(); n != g.LenLayers() {
		return fmt.Errorf("load %s: record has %d layers, graph lays out %d", name, n, g.LenLayers())
	}
	m.graph, m.net = g, net
	m.l.Println(current, "loaded")
	m.summary()
	m.compiled = false
	if compile {
		return m.Compile(DefaultLearningRate)
	}
	return nil
}

// Save writes the model into the store, keeping the previous record as the
// backup. With ask set the operator has to confirm first.
func (m *Model) Save(ask bool) error {
	if m.net == nil {
		return ErrNotInitialized
	}
	name := m.Name()
	if ask {
		ok, err := m.opts.Confirmer.Confirm(fmt.Sprintf("save model [\"%s\"]? (y|n): ", name))
		if err != nil {
			return err
		}
		if !ok {
			m.l.Printf("model [%s] not saved", name)
			return nil
		}
	}
	err := m.store().Save(name, func(dir string) error {
		if err := m.net.SaveModel(filepath.Join(dir, ModelFile), name); err != nil {
			return err
		}
		return m.graph.WriteManifestToFile(filepath.Join(dir, GraphFile))
	})
	if err != nil {
		return err
	}
	m.l.Printf("model [%s] saved", name)
	return nil
}

// Compile attaches the optimizer, the loss and the metrics of the head
func (m *Model) Compile(learningRate float64) error {
	if m.net == nil {
		return ErrNotInitialized
	}
	if learningRate <= 0 {
		learningRate = DefaultLearningRate
	}
	m.optimizer = trainer.Optimizer{
		Name:         "sgd",
		LearningRate: learningRate,
		GradientClip: m.opts.GradientClip,
	}
	m.loss = m.variant.Head.Loss()
	m.metrics = m.variant.Head.Metrics()
	m.compiled = true
	return nil
}

// prepare preprocesses samples and encodes their targets
func (m *Model) prepare(s datasets.Samples) (x, y [][]float32, err error) {
	x, y = m.opts.Provider.PreProcess(s.Inputs(), s.Targets())
	for i := range y {
		y[i], err = m.variant.Head.Encode(y[i], m.params)
		if err != nil {
			return nil, nil, fmt.Errorf("sample %d: %w", i, err)
		}
	}
	return x, y, nil
}

func (m *Model) forward(x [][]float32) ([][]float32, error) {
	want := m.params.InputShape.Size()
	o := make([][]float32, len(x))
	for i := range x {
		if len(x[i]) != want {
			return nil, fmt.Errorf("input %d has %d values, want %d", i, len(x[i]), want)
		}
		out, _ := m.net.Forward(x[i])
		o[i] = append([]float32(nil), out...)
	}
	return o, nil
}

// Train fits the model. Without testData the provider splits data into train
// and validation sets, with testData all of data trains.
func (m *Model) Train(data datasets.Samples, epochs int, testData datasets.Samples) (trainer.History, error) {
	if !m.compiled {
		return nil, ErrNotCompiled
	}
	if epochs <= 0 {
		epochs = TrainEpochs
	}
	var train, test = data, testData
	if testData == nil {
		train, test = m.opts.Provider.PrepareData(data)
	}
	if len(train) == 0 {
		return nil, fmt.Errorf("train %s: no training samples", m.Name())
	}
	tx, ty, err := m.prepare(train)
	if err != nil {
		return nil, err
	}
	vx, vy, err := m.prepare(test)
	if err != nil {
		return nil, err
	}
	batches := make([]nn.TrainingBatch, len(tx))
	for i := range tx {
		batches[i] = nn.TrainingBatch{Input: tx[i], Target: ty[i]}
	}
	config := &nn.TrainingConfig{
		Epochs:       1,
		LearningRate: float32(m.optimizer.LearningRate),
		UseGPU:       m.opts.UseGPU,
		GradientClip: float32(m.optimizer.GradientClip),
		LossType:     m.loss.Loom(),
		Verbose:      false,
	}
	step := func(epoch int) (float64, error) {
		m.rng.Shuffle(len(batches), func(i, j int) { batches[i], batches[j] = batches[j], batches[i] })
		result, err := m.net.Train(batches, config)
		if err != nil {
			return 0, err
		}
		return float64(result.FinalLoss), nil
	}
	var validate func() (float64, float64, error)
	if len(vx) > 0 {
		validate = func() (float64, float64, error) {
			preds, err := m.forward(vx)
			if err != nil {
				return 0, 0, err
			}
			l, err := m.loss.Mean(preds, vy)
			if err != nil {
				return 0, 0, err
			}
			acc, err := m.metrics[0].Mean(preds, vy)
			return l, acc, err
		}
	}
	var callbacks = []trainer.Callback{trainer.CallbackFunc(m.logEpoch)}
	if m.opts.Visualizer != nil {
		callbacks = append(callbacks, m.opts.Visualizer.Curve(m.Name()))
	}
	callbacks = append(callbacks, m.opts.Callbacks...)

	m.l.Printf("training %s on %d samples, validating on %d, %d epochs, %s, loss %s",
		m.Name(), len(tx), len(vx), epochs, m.optimizer, m.loss)
	return trainer.Fit(epochs, step, validate, callbacks...)
}

func (m *Model) logEpoch(e trainer.Epoch) error {
	m.l.Printf("epoch %d: loss %.6f val_loss %.6f val_%s %.4f (%s)",
		e.Index+1, e.Loss, e.ValLoss, m.metrics[0], e.ValAccuracy, e.Duration)
	return nil
}

// Predict returns the raw network outputs for label-less inputs
func (m *Model) Predict(x [][]float32) ([][]float32, error) {
	if m.net == nil {
		return nil, ErrNotInitialized
	}
	px, _ := m.opts.Provider.PreProcess(x, nil)
	return m.forward(px)
}

// Evaluation is the outcome of evaluating a model on labelled samples
type Evaluation struct {
	Samples          int
	Loss             float64
	Accuracy         float64
	Score            float64
	AverageDeviation float64
}

func (e Evaluation) String() string {
	return fmt.Sprintf("[loss %.6f, accuracy %.4f, score %.2f, deviation %.4f%%] on %d samples",
		e.Loss, e.Accuracy, e.Score, e.AverageDeviation, e.Samples)
}

// Evaluate measures loss and accuracy of the head on labelled samples
func (m *Model) Evaluate(data datasets.Samples) (Evaluation, error) {
	if m.net == nil {
		return Evaluation{}, ErrNotInitialized
	}
	x, y, err := m.prepare(data)
	if err != nil {
		return Evaluation{}, err
	}
	preds, err := m.forward(x)
	if err != nil {
		return Evaluation{}, err
	}
	return m.evaluate(preds, y)
}

func (m *Model) evaluate(preds, y [][]float32) (e Evaluation, err error) {
	head := m.variant.Head
	e.Samples = len(preds)
	if e.Samples == 0 {
		return e, nil
	}
	if e.Loss, err = head.Loss().Mean(preds, y); err != nil {
		return e, err
	}
	if e.Accuracy, err = head.Metrics()[0].Mean(preds, y); err != nil {
		return e, err
	}
	var expected, actual []float64
	for i := range preds {
		for _, v := range head.Decode(y[i]) {
			expected = append(expected, float64(v))
		}
		for _, v := range head.Decode(preds[i]) {
			actual = append(actual, float64(v))
		}
	}
	dev, err := nn.EvaluateModel(expected, actual)
	if err != nil {
		return e, err
	}
	e.Score = float64(dev.Score)
	e.AverageDeviation = float64(dev.AverageDeviation)
	return e, nil
}

// Verify evaluates the compiled model, logs the evaluation and renders the
// predictions
func (m *Model) Verify(data datasets.Samples) error {
	if m.net == nil {
		return ErrNotInitialized
	}
	if !m.compiled {
		return ErrNotCompiled
	}
	x, y, err := m.prepare(data)
	if err != nil {
		return err
	}
	preds, err := m.forward(x)
	if err != nil {
		return err
	}
	e, err := m.evaluate(preds, y)
	if err != nil {
		return err
	}
	m.l.Println("evaluation:", e)
	if m.opts.Visualizer == nil {
		return nil
	}
	return m.opts.Visualizer.Predictions(m.Name(), data, preds)
}

// Show renders the structural diagram, or logs the summary without a visualizer
func (m *Model) Show() error {
	if m.graph == nil {
		return ErrNotInitialized
	}
	if m.opts.Visualizer == nil {
		m.summary()
		return nil
	}
	return m.opts.Visualizer.Graph(m.graph)
}
