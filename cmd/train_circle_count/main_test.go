package main

import "io"
import "log"
import "testing"

import "github.com/neurlang/circlecount/layer"
import "github.com/neurlang/circlecount/model"
import "github.com/neurlang/circlecount/store"
import "github.com/neurlang/circlecount/trainer"

func checkpointModel(t *testing.T, prompts *int) (*model.Model, *store.Store) {
	st := store.New(t.TempDir())
	p := model.Params{
		InputShape: layer.Shape{Height: 8, Width: 8, Channels: 1},
		FCLayers:   1,
		FCUnits:    8,
		ModelType:  model.RegressionModel.Name,
	}
	m, err := model.New(p, model.Options{
		Logger: log.New(io.Discard, "", 0),
		Store:  st,
		Confirmer: model.ConfirmFunc(func(string) (bool, error) {
			*prompts++
			return false, nil
		}),
	})
	if err != nil {
		t.Fatal(err)
	}
	return m, st
}

func TestCheckpointAsksOnRerun(t *testing.T) {
	var prompts int
	m, st := checkpointModel(t, &prompts)
	b := checkpoint(m, true)
	for i, acc := range []float64{0.1, 0.2, 0.3} {
		if err := b.OnEpochEnd(trainer.Epoch{Index: i, ValAccuracy: acc}); err != nil {
			t.Fatal(err)
		}
	}
	if prompts != 3 {
		t.Errorf("%d prompts, want 3", prompts)
	}
	if st.Exists(m.Name()) {
		t.Error("declined checkpoint was saved")
	}
}

func TestCheckpointSavesWithoutAsking(t *testing.T) {
	var prompts int
	m, st := checkpointModel(t, &prompts)
	if err := checkpoint(m, false).OnEpochEnd(trainer.Epoch{ValAccuracy: 0.5}); err != nil {
		t.Fatal(err)
	}
	if prompts != 0 {
		t.Errorf("%d prompts", prompts)
	}
	if !st.Exists(m.Name()) {
		t.Error("checkpoint not saved")
	}
}

func TestDataConfigFitsOutputUnits(t *testing.T) {
	cfg := dataConfig(model.ClsParams())
	if cfg.Circles[1] >= model.ClsParams().OutputUnits {
		t.Errorf("max circles %d", cfg.Circles[1])
	}
	if cfg.Width != 32 || cfg.Height != 32 {
		t.Errorf("size %dx%d", cfg.Width, cfg.Height)
	}
}
