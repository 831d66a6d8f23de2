package main

import "encoding/json"
import "image"
import _ "image/png"
import "net/http"

import "github.com/gorilla/mux"
import "github.com/sasha-s/go-deadlock"

import "github.com/neurlang/circlecount/datasets/circles"
import "github.com/neurlang/circlecount/history"
import "github.com/neurlang/circlecount/layer"
import "github.com/neurlang/circlecount/model"
import "github.com/neurlang/circlecount/viz"

// maxImageBytes limits the size of a posted image
const maxImageBytes = 1 << 20

type server struct {
	m       *model.Model
	history *history.DB

	// the loom network keeps per call state
	mu deadlock.Mutex
}

type modelResponse struct {
	Name    string        `json:"name"`
	Variant string        `json:"variant"`
	Params  model.Params  `json:"params"`
	Stages  []layer.Stage `json:"stages"`
}

type predictResponse struct {
	Output []float32 `json:"output"`
	Count  int       `json:"count"`
}

func jsonResponse(w http.ResponseWriter, x interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(x); err != nil {
		http.Error(w, err.Error(), 500)
	}
}

func newRouter(s *server) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/model", s.getModel).Methods("GET")
	r.HandleFunc("/model/graph.svg", s.getGraph).Methods("GET")
	r.HandleFunc("/runs", s.getRuns).Methods("GET")
	r.HandleFunc("/predict", s.predict).Methods("POST")
	return r
}

func (s *server) getModel(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, modelResponse{
		Name:    s.m.Name(),
		Variant: s.m.Variant().Name,
		Params:  s.m.Params(),
		Stages:  s.m.Graph().Stages(),
	})
}

func (s *server) getGraph(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := viz.WriteGraph(w, s.m.Graph()); err != nil {
		http.Error(w, err.Error(), 500)
	}
}

func (s *server) getRuns(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		http.Error(w, "no history database", 404)
		return
	}
	runs, err := s.history.Runs(s.m.Name())
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	jsonResponse(w, runs)
}

func (s *server) predict(w http.ResponseWriter, r *http.Request) {
	img, _, err := image.Decode(http.MaxBytesReader(w, r.Body, maxImageBytes))
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	shape := s.m.Params().InputShape
	px, err := circles.FromImage(img, shape.Width, shape.Height)
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	s.mu.Lock()
	preds, err := s.m.Predict([][]float32{px})
	s.mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	jsonResponse(w, predictResponse{
		Output: preds[0],
		Count:  circles.Count(preds[0]),
	})
}
