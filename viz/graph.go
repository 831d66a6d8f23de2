// Package viz renders model graphs, training curves and predictions into SVG
// and PNG files
package viz

import "fmt"
import "io"

import svg "github.com/ajstarks/svgo"

import "github.com/neurlang/circlecount/layer"
import "github.com/neurlang/circlecount/net/sequential"

const (
	boxWidth  = 360
	boxHeight = 44
	boxGap    = 22
	margin    = 20
)

var kindFill = map[layer.Kind]string{
	layer.Flatten:   "#e8e8e8",
	layer.Dense:     "#cfe2ff",
	layer.Conv2D:    "#d1f2d9",
	layer.MaxPool2D: "#ffe8c2",
}

// WriteGraph draws the network as a vertical chain of boxes, input first
func WriteGraph(w io.Writer, g *sequential.Network) error {
	stages := g.Stages()
	rows := len(stages) + 1
	width := boxWidth + 2*margin
	height := 2*margin + 24 + rows*boxHeight + (rows-1)*boxGap

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white")
	canvas.Text(width/2, margin+8, g.Name(), "text-anchor:middle;font-family:monospace;font-size:13px;font-weight:bold")

	box := func(i int, title, detail, fill string) {
		y := margin + 24 + i*(boxHeight+boxGap)
		canvas.Roundrect(margin, y, boxWidth, boxHeight, 6, 6, "fill:"+fill+";stroke:#333")
		canvas.Text(margin+10, y+18, title, "font-family:monospace;font-size:13px")
		canvas.Text(margin+10, y+36, detail, "font-family:monospace;font-size:11px;fill:#555")
		if i > 0 {
			canvas.Line(width/2, y-boxGap, width/2, y, "stroke:#333;stroke-width:2")
		}
	}
	box(0, "input", g.Input().String(), "#ffffff")
	for i, s := range stages {
		title := string(s.Kind)
		if s.Activation != "" {
			title += " (" + string(s.Activation) + ")"
		}
		fill, ok := kindFill[s.Kind]
		if !ok {
			fill = "#f5f5f5"
		}
		box(i+1, title, fmt.Sprintf("%s -> %s, %d loom layers", s.In, s.Out, len(s.Definitions)), fill)
	}
	canvas.End()
	return nil
}
