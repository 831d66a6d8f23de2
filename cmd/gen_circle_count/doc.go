// Package main generates circle images and stores them as png files named
// <index>_<count>.png for later training or verification.
package main
