package main

import "flag"

import "github.com/neurlang/circlecount/datasets/circles"

func main() {
	dir := flag.String("dir", "data/circles", "output directory")
	size := flag.Int("size", 1000, "number of images")
	width := flag.Int("width", circles.ImgSize, "image width")
	height := flag.Int("height", circles.ImgSize, "image height")
	minCircles := flag.Int("min", 0, "minimum circles per image")
	maxCircles := flag.Int("max", 8, "maximum circles per image")
	minRadius := flag.Int("rmin", 2, "minimum circle radius")
	maxRadius := flag.Int("rmax", 4, "maximum circle radius")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	cfg := circles.DataConfig([2]int{*minCircles, *maxCircles}, [2]int{*minRadius, *maxRadius})
	cfg.Width, cfg.Height = *width, *height

	samples, err := circles.Generate(cfg, *size, *seed)
	if err != nil {
		panic(err.Error())
	}
	if err := circles.SaveDir(*dir, samples, cfg.Width, cfg.Height); err != nil {
		panic(err.Error())
	}
	println(len(samples), "images written to", *dir)
}
