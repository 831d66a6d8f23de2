// Package main trains a circle count model on generated or stored circle
// images. The first run builds a fresh model, a re-run with -resume loads the
// saved one and trains it further. After training the model is verified on
// fresh samples and saved, keeping the previous save as backup. A resumed
// model asks for confirmation before it replaces the saved one.
package main
