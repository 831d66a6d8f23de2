package history

import "errors"
import "path/filepath"
import "testing"
import "time"

import "github.com/neurlang/circlecount/trainer"

func openTest(t *testing.T) *DB {
	t.Helper()
	d, err := Open(filepath.Join(t.TempDir(), "history.sqlite3"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestRunLifecycle(t *testing.T) {
	d := openTest(t)
	r, err := d.StartRun("circle_count.RegressionModel.fc2-128", "RegressionModel", 3, 0.001)
	if err != nil {
		t.Fatal(err)
	}
	var h trainer.History
	for i := 0; i < 3; i++ {
		e := trainer.Epoch{Index: i, Loss: 1 / float64(i+1), ValAccuracy: 0.2 * float64(i), Duration: 1500 * time.Millisecond}
		if err := r.OnEpochEnd(e); err != nil {
			t.Fatal(err)
		}
		h = append(h, e)
	}
	if err := r.Finish(h, nil); err != nil {
		t.Fatal(err)
	}
	runs, err := d.Runs("circle_count.RegressionModel.fc2-128")
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].ID != r.ID || runs[0].Status != StatusDone {
		t.Fatalf("runs %+v", runs)
	}
	if runs[0].ValAccuracy != 0.4 || runs[0].Epochs != 3 {
		t.Fatalf("run %+v", runs[0])
	}
	epochs, err := d.Epochs(r.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(epochs) != 3 || epochs[2].Loss != h[2].Loss || epochs[1].Duration != 1500*time.Millisecond {
		t.Fatalf("epochs %+v", epochs)
	}
}

func TestFailedRunAndFilter(t *testing.T) {
	d := openTest(t)
	a, err := d.StartRun("a", "RegressionModel", 1, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Finish(nil, errors.New("boom")); err != nil {
		t.Fatal(err)
	}
	b, err := d.StartRun("b", "ClassificationModel", 1, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == b.ID {
		t.Fatal("duplicate run id")
	}
	all, err := d.Runs("")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("%d runs", len(all))
	}
	only, err := d.Runs("a")
	if err != nil {
		t.Fatal(err)
	}
	if len(only) != 1 || only[0].Status != StatusFailed || only[0].Error != "boom" {
		t.Fatalf("runs %+v", only)
	}
	if all[1].ID != b.ID || !all[1].Finished.IsZero() || all[1].Status != StatusRunning {
		t.Fatalf("running run %+v", all[1])
	}
}

var _ trainer.Callback = (*Run)(nil)
