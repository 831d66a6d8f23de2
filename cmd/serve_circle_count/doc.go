// Package main serves a saved circle count model over HTTP.
//
//	GET  /model            model name, variant, params and stages
//	GET  /model/graph.svg  model graph diagram
//	GET  /runs             training runs of the model, needs -history
//	POST /predict          png image body, returns the raw output and the count
package main
