package circles

import "fmt"
import "image"
import "image/color"
import "image/png"
import "os"
import "path/filepath"
import "sort"
import "strconv"
import "strings"

import "github.com/neurlang/circlecount/datasets"

// Image converts raw 0..255 pixels back into a gray image.
func Image(input []float32, width, height int) (*image.Gray, error) {
	if len(input) != width*height {
		return nil, fmt.Errorf("circles: %d pixels do not make %dx%d", len(input), width, height)
	}
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i, v := range input {
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		img.Pix[i] = uint8(v + 0.5)
	}
	return img, nil
}

// FromImage converts any image of the given size into raw 0..255 gray pixels.
func FromImage(img image.Image, width, height int) ([]float32, error) {
	b := img.Bounds()
	if b.Dx() != width || b.Dy() != height {
		return nil, fmt.Errorf("circles: image is %dx%d, want %dx%d", b.Dx(), b.Dy(), width, height)
	}
	o := make([]float32, 0, width*height)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			o = append(o, float32(g.Y))
		}
	}
	return o, nil
}

// SaveDir writes every sample as <index>_<count>.png into dir.
func SaveDir(dir string, samples datasets.Samples, width, height int) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for i, s := range samples {
		img, err := Image(s.Input, width, height)
		if err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
		var count int
		if len(s.Target) > 0 {
			count = int(s.Target[0])
		}
		name := filepath.Join(dir, fmt.Sprintf("%06d_%d.png", i, count))
		if err := writePNG(name, img); err != nil {
			return err
		}
	}
	return nil
}

func writePNG(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadDir reads samples written by SaveDir, ordered by index. The count is
// taken from the file name.
func LoadDir(dir string, width, height int) (datasets.Samples, error) {
	names, err := filepath.Glob(filepath.Join(dir, "*.png"))
	if err != nil {
		return nil, err
	}
	type entry struct {
		index, count int
		name         string
	}
	var entries []entry
	for _, name := range names {
		base := strings.TrimSuffix(filepath.Base(name), ".png")
		parts := strings.Split(base, "_")
		if len(parts) != 2 {
			return nil, fmt.Errorf("circles: bad sample name %s", name)
		}
		index, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("circles: bad sample index %s: %w", name, err)
		}
		count, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("circles: bad sample count %s: %w", name, err)
		}
		entries = append(entries, entry{index, count, name})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].index < entries[j].index })
	o := make(datasets.Samples, 0, len(entries))
	for _, e := range entries {
		img, err := readPNG(e.name)
		if err != nil {
			return nil, err
		}
		px, err := FromImage(img, width, height)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.name, err)
		}
		o = append(o, datasets.Sample{Input: px, Target: []float32{float32(e.count)}})
	}
	return o, nil
}

func readPNG(name string) (image.Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}
