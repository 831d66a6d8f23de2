package viz

import "fmt"
import "io"
import "os"

import svg "github.com/ajstarks/svgo"

import "github.com/neurlang/circlecount/trainer"

const (
	plotWidth  = 640
	plotHeight = 360
	plotMargin = 48
)

// WriteCurve plots training loss and validation accuracy per epoch
func WriteCurve(w io.Writer, h trainer.History) error {
	canvas := svg.New(w)
	canvas.Start(plotWidth, plotHeight)
	canvas.Rect(0, 0, plotWidth, plotHeight, "fill:white")
	canvas.Text(plotWidth/2, 24, "training history", "text-anchor:middle;font-family:sans-serif;font-size:14px")

	left, right := plotMargin, plotWidth-plotMargin
	top, bottom := plotMargin, plotHeight-plotMargin
	canvas.Line(left, bottom, right, bottom, "stroke:black")
	canvas.Line(left, top, left, bottom, "stroke:black")
	canvas.Text((left+right)/2, plotHeight-12, "epoch", "text-anchor:middle;font-family:sans-serif;font-size:12px")

	if len(h) == 0 {
		canvas.End()
		return nil
	}
	var maxLoss float64
	for _, e := range h {
		if e.Loss > maxLoss {
			maxLoss = e.Loss
		}
		if e.ValLoss > maxLoss {
			maxLoss = e.ValLoss
		}
	}
	if maxLoss == 0 {
		maxLoss = 1
	}
	x := func(i int) int {
		if len(h) == 1 {
			return (left + right) / 2
		}
		return left + i*(right-left)/(len(h)-1)
	}
	y := func(v, max float64) int {
		if v < 0 {
			v = 0
		}
		return bottom - int(v/max*float64(bottom-top))
	}
	series := func(values []float64, max float64, color string) {
		xs := make([]int, len(values))
		ys := make([]int, len(values))
		for i, v := range values {
			xs[i], ys[i] = x(i), y(v, max)
			canvas.Circle(xs[i], ys[i], 3, "fill:"+color)
		}
		canvas.Polyline(xs, ys, "fill:none;stroke-width:2;stroke:"+color)
		last := len(values) - 1
		canvas.Text(xs[last], ys[last]-8, fmt.Sprintf("%.4f", values[last]),
			"text-anchor:end;font-family:sans-serif;font-size:11px;fill:"+color)
	}
	series(h.Losses(), maxLoss, "red")
	series(h.Accuracies(), 1, "blue")
	for i := range h {
		canvas.Text(x(i), bottom+16, fmt.Sprint(i+1), "text-anchor:middle;font-family:sans-serif;font-size:10px")
	}
	canvas.Text(right, top-8, "accuracy", "text-anchor:end;font-family:sans-serif;font-size:12px;fill:blue")
	canvas.Text(right-70, top-8, "loss", "text-anchor:end;font-family:sans-serif;font-size:12px;fill:red")
	canvas.End()
	return nil
}

// Curve is a training callback rewriting the curve file at Path after every epoch
type Curve struct {
	Path string

	history trainer.History
}

// OnEpochEnd records the epoch and rewrites the curve
func (c *Curve) OnEpochEnd(e trainer.Epoch) error {
	c.history = append(c.history, e)
	return writeFile(c.Path, func(w io.Writer) error {
		return WriteCurve(w, c.history)
	})
}

// History returns the epochs seen so far
func (c *Curve) History() trainer.History {
	return c.history
}

func writeFile(name string, write func(w io.Writer) error) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	err = write(file)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return err
}
