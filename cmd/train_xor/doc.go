// Package main trains a dense network to predict the element wise xor of two
// random bit sequences. It renders the training curve and a bar chart of one
// predicted pair.
package main
