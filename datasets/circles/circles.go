// Package circles generates synthetic grayscale images of non overlapping filled
// circles labelled with their circle count
package circles

import "fmt"
import "image"
import "math"
import "math/rand"

import "golang.org/x/image/vector"

import "github.com/neurlang/circlecount/datasets"
import "github.com/neurlang/circlecount/parallel"

// ImgSize is the default image width and height
const ImgSize = 32

// Config controls the generated images. Circles and Radius are inclusive
// minimum and maximum.
type Config struct {
	Width, Height int
	Circles       [2]int
	Radius        [2]int
}

// DefaultConfig returns images of ImgSize with 0 to 8 circles of radius 2 to 4.
func DefaultConfig() Config {
	return DataConfig([2]int{0, 8}, [2]int{2, 4})
}

// DataConfig returns a config of default image size with the circle count
// and radius ranges given.
func DataConfig(circles, radius [2]int) Config {
	return Config{
		Width:   ImgSize,
		Height:  ImgSize,
		Circles: circles,
		Radius:  radius,
	}
}

// Validate checks the ranges of the config.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("circles: invalid image size %dx%d", c.Width, c.Height)
	}
	if c.Circles[0] < 0 || c.Circles[1] < c.Circles[0] {
		return fmt.Errorf("circles: invalid circle count range %v", c.Circles)
	}
	if c.Radius[0] < 1 || c.Radius[1] < c.Radius[0] {
		return fmt.Errorf("circles: invalid radius range %v", c.Radius)
	}
	if 2*c.Radius[1] > c.Width || 2*c.Radius[1] > c.Height {
		return fmt.Errorf("circles: radius %d does not fit %dx%d", c.Radius[1], c.Width, c.Height)
	}
	return nil
}

// Classes is the number of distinct counts a classifier must tell apart.
func (c Config) Classes() int {
	return c.Circles[1] + 1
}

type circle struct {
	x, y, r float64
}

func (c circle) overlaps(o circle) bool {
	return math.Hypot(c.x-o.x, c.y-o.y) < c.r+o.r+1
}

// place picks up to n non overlapping circles. Fewer are returned when the
// image is too crowded to fit them.
func (c Config) place(rng *rand.Rand, n int) (o []circle) {
	for attempts := 0; len(o) < n && attempts < 100*(n+1); attempts++ {
		r := float64(c.Radius[0] + rng.Intn(c.Radius[1]-c.Radius[0]+1))
		candidate := circle{
			x: r + rng.Float64()*(float64(c.Width)-2*r),
			y: r + rng.Float64()*(float64(c.Height)-2*r),
			r: r,
		}
		var free = true
		for _, p := range o {
			if candidate.overlaps(p) {
				free = false
				break
			}
		}
		if free {
			o = append(o, candidate)
		}
	}
	return o
}

// kappa places cubic bezier control points approximating a quarter circle
const kappa = 0.5522847498

func addCircle(z *vector.Rasterizer, c circle) {
	x, y, r := float32(c.x), float32(c.y), float32(c.r)
	k := float32(kappa) * r
	z.MoveTo(x+r, y)
	z.CubeTo(x+r, y+k, x+k, y+r, x, y+r)
	z.CubeTo(x-k, y+r, x-r, y+k, x-r, y)
	z.CubeTo(x-r, y-k, x-k, y-r, x, y-r)
	z.CubeTo(x+k, y-r, x+r, y-k, x+r, y)
	z.ClosePath()
}

// Render draws one image and returns it with the number of circles drawn.
func (c Config) Render(rng *rand.Rand) (*image.Gray, int) {
	img := image.NewGray(image.Rect(0, 0, c.Width, c.Height))
	n := c.Circles[0] + rng.Intn(c.Circles[1]-c.Circles[0]+1)
	placed := c.place(rng, n)
	if len(placed) == 0 {
		return img, 0
	}
	z := vector.NewRasterizer(c.Width, c.Height)
	for _, p := range placed {
		addCircle(z, p)
	}
	z.Draw(img, img.Bounds(), image.White, image.Point{})
	return img, len(placed)
}

// Generate renders size samples. Sample i is seeded with seed+i, so the result
// does not depend on scheduling.
func Generate(c Config, size int, seed int64) (datasets.Samples, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	o := make(datasets.Samples, size)
	parallel.ForEach(size, 0, func(i int) {
		rng := rand.New(rand.NewSource(seed + int64(i)))
		img, n := c.Render(rng)
		o[i] = datasets.Sample{
			Input:  Pixels(img),
			Target: []float32{float32(n)},
		}
	})
	return o, nil
}

// Pixels returns the raw gray values 0 to 255 of an image, row by row.
func Pixels(img *image.Gray) []float32 {
	b := img.Bounds()
	o := make([]float32, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			o = append(o, float32(img.GrayAt(x, y).Y))
		}
	}
	return o
}
