package viz

import "fmt"
import "io"

import svg "github.com/ajstarks/svgo"

const (
	barsWidth    = 640
	barsRow      = 120
	barsMargin   = 40
	barsMaxValue = 1
)

// Bars draws one bar chart row per labelled series of values in 0..1
func Bars(w io.Writer, labels []string, rows [][]float32) error {
	if len(labels) != len(rows) {
		return fmt.Errorf("viz: %d labels for %d rows", len(labels), len(rows))
	}
	height := 2*barsMargin + len(rows)*barsRow
	canvas := svg.New(w)
	canvas.Start(barsWidth, height)
	canvas.Rect(0, 0, barsWidth, height, "fill:white")
	for r, values := range rows {
		top := barsMargin + r*barsRow
		bottom := top + barsRow - 28
		canvas.Text(8, (top+bottom)/2, labels[r], "font-family:sans-serif;font-size:12px")
		canvas.Line(barsMargin+40, bottom, barsWidth-barsMargin, bottom, "stroke:black")
		if len(values) == 0 {
			continue
		}
		step := (barsWidth - 2*barsMargin - 40) / len(values)
		for i, v := range values {
			if v < 0 {
				v = 0
			}
			if v > barsMaxValue {
				v = barsMaxValue
			}
			h := int(float32(bottom-top) * v / barsMaxValue)
			x := barsMargin + 40 + i*step
			canvas.Rect(x+step/6, bottom-h, step*2/3, h, "fill:steelblue")
			canvas.Text(x+step/2, bottom+14, fmt.Sprint(i+1), "text-anchor:middle;font-family:sans-serif;font-size:10px")
		}
	}
	canvas.End()
	return nil
}
