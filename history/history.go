// Package history records training runs and their epochs in a sqlite database
package history

import "database/sql"
import "fmt"
import "time"

import "github.com/google/uuid"
import _ "github.com/mattn/go-sqlite3"
import "github.com/sasha-s/go-deadlock"

import "github.com/neurlang/circlecount/trainer"

// Run status values
const (
	StatusRunning = "running"
	StatusDone    = "done"
	StatusFailed  = "failed"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		model TEXT,
		variant TEXT,
		epochs INTEGER,
		learning_rate REAL,
		started INTEGER,
		finished INTEGER,
		-- 'running', 'done' or 'failed'
		status TEXT,
		error TEXT,
		final_loss REAL,
		val_accuracy REAL
	)`,
	`CREATE TABLE IF NOT EXISTS epochs (
		run_id TEXT REFERENCES runs(id),
		idx INTEGER,
		loss REAL,
		val_loss REAL,
		val_accuracy REAL,
		duration_ms INTEGER,
		PRIMARY KEY (run_id, idx)
	)`,
}

// DB is the run history database
type DB struct {
	db *sql.DB
	mu deadlock.Mutex
}

// Open opens or creates the database at path
func Open(path string) (*DB, error) {
	sdb, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	for _, q := range schema {
		if _, err := sdb.Exec(q); err != nil {
			sdb.Close()
			return nil, fmt.Errorf("history %s: %w", path, err)
		}
	}
	return &DB{db: sdb}, nil
}

// Close closes the database
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.db.Close()
}

func (d *DB) exec(q string, args ...interface{}) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err := d.db.Exec(q, args...)
	return err
}

// Run is one training run. It is a trainer callback recording every epoch.
type Run struct {
	ID string

	db *DB
}

// StartRun records a new running run
func (d *DB) StartRun(model, variant string, epochs int, learningRate float64) (*Run, error) {
	r := &Run{ID: uuid.New().String(), db: d}
	err := d.exec(`INSERT INTO runs (id, model, variant, epochs, learning_rate, started, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, model, variant, epochs, learningRate, time.Now().Unix(), StatusRunning)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// OnEpochEnd records the epoch
func (r *Run) OnEpochEnd(e trainer.Epoch) error {
	return r.db.exec(`INSERT INTO epochs (run_id, idx, loss, val_loss, val_accuracy, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, e.Index, e.Loss, e.ValLoss, e.ValAccuracy, e.Duration.Milliseconds())
}

// Finish marks the run done, or failed when err is not nil
func (r *Run) Finish(h trainer.History, err error) error {
	var status, msg = StatusDone, ""
	if err != nil {
		status, msg = StatusFailed, err.Error()
	}
	last, _ := h.Last()
	return r.db.exec(`UPDATE runs SET finished = ?, status = ?, error = ?, final_loss = ?, val_accuracy = ?
		WHERE id = ?`,
		time.Now().Unix(), status, msg, last.Loss, last.ValAccuracy, r.ID)
}

// RunInfo is a recorded run
type RunInfo struct {
	ID           string
	Model        string
	Variant      string
	Epochs       int
	LearningRate float64
	Started      time.Time
	Finished     time.Time
	Status       string
	Error        string
	FinalLoss    float64
	ValAccuracy  float64
}

// Runs lists the runs of model, all runs when model is empty, oldest first
func (d *DB) Runs(model string) ([]RunInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	q := `SELECT id, model, variant, epochs, learning_rate, started, IFNULL(finished, 0), status,
		IFNULL(error, ''), IFNULL(final_loss, 0), IFNULL(val_accuracy, 0) FROM runs`
	var args []interface{}
	if model != "" {
		q += ` WHERE model = ?`
		args = append(args, model)
	}
	q += ` ORDER BY started, rowid`
	rows, err := d.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var o []RunInfo
	for rows.Next() {
		var r RunInfo
		var started, finished int64
		err := rows.Scan(&r.ID, &r.Model, &r.Variant, &r.Epochs, &r.LearningRate, &started, &finished,
			&r.Status, &r.Error, &r.FinalLoss, &r.ValAccuracy)
		if err != nil {
			return nil, err
		}
		r.Started = time.Unix(started, 0)
		if finished > 0 {
			r.Finished = time.Unix(finished, 0)
		}
		o = append(o, r)
	}
	return o, rows.Err()
}

// Epochs returns the recorded epochs of a run in order
func (d *DB) Epochs(runID string) (trainer.History, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	rows, err := d.db.Query(`SELECT idx, loss, val_loss, val_accuracy, duration_ms FROM epochs
		WHERE run_id = ? ORDER BY idx`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var h trainer.History
	for rows.Next() {
		var e trainer.Epoch
		var ms int64
		if err := rows.Scan(&e.Index, &e.Loss, &e.ValLoss, &e.ValAccuracy, &ms); err != nil {
			return nil, err
		}
		e.Duration = time.Duration(ms) * time.Millisecond
		h = append(h, e)
	}
	return h, rows.Err()
}
