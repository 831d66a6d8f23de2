package viz

import "fmt"
import "image"
import "image/color"
import "image/draw"
import "image/png"
import "io"
import "math"

import "golang.org/x/image/font"
import "golang.org/x/image/font/basicfont"
import "golang.org/x/image/math/fixed"

import "github.com/neurlang/circlecount/datasets"
import "github.com/neurlang/circlecount/datasets/circles"

const (
	tileScale   = 3
	labelHeight = 16
	tilePad     = 4
	gridColumns = 10
)

var (
	colorRight = color.RGBA{0x1a, 0x7f, 0x37, 0xff}
	colorWrong = color.RGBA{0xcf, 0x22, 0x2e, 0xff}
)

// Predictions draws every sample scaled up with its true and predicted circle
// count underneath, green when they agree and red otherwise.
func Predictions(samples datasets.Samples, preds [][]float32, width, height int) (*image.RGBA, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("viz: no samples")
	}
	if width <= 0 || height <= 0 {
		width, height = squareSide(len(samples[0].Input))
	}
	tw, th := width*tileScale, height*tileScale+labelHeight
	cols := gridColumns
	if len(samples) < cols {
		cols = len(samples)
	}
	rows := (len(samples) + cols - 1) / cols
	img := image.NewRGBA(image.Rect(0, 0, cols*(tw+tilePad)+tilePad, rows*(th+tilePad)+tilePad))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	for i, s := range samples {
		gray, err := circles.Image(s.Input, width, height)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		x0 := tilePad + (i%cols)*(tw+tilePad)
		y0 := tilePad + (i/cols)*(th+tilePad)
		for y := 0; y < height*tileScale; y++ {
			for x := 0; x < width*tileScale; x++ {
				img.Set(x0+x, y0+y, gray.GrayAt(x/tileScale, y/tileScale))
			}
		}
		label, ok := predictionLabel(s, preds, i)
		col := colorWrong
		if ok {
			col = colorRight
		}
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(col),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(x0+2, y0+height*tileScale+labelHeight-4),
		}
		d.DrawString(label)
	}
	return img, nil
}

func predictionLabel(s datasets.Sample, preds [][]float32, i int) (string, bool) {
	var truth = -1
	if len(s.Target) > 0 {
		truth = int(s.Target[0])
	}
	if i >= len(preds) {
		return fmt.Sprintf("%d/?", truth), false
	}
	p := preds[i]
	got := circles.Count(p)
	if len(p) == 1 {
		return fmt.Sprintf("%d/%.1f", truth, p[0]), got == truth
	}
	return fmt.Sprintf("%d/%d", truth, got), got == truth
}

func squareSide(n int) (int, int) {
	side := int(math.Sqrt(float64(n)))
	return side, side
}

// WritePredictions encodes the prediction grid as png
func WritePredictions(w io.Writer, samples datasets.Samples, preds [][]float32, width, height int) error {
	img, err := Predictions(samples, preds, width, height)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
