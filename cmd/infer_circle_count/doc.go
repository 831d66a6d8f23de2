// Package main is a demo program loading a saved circle count model and
// verifying it on generated or stored circle images. It renders the model
// graph and the predictions into the output directory.
package main
