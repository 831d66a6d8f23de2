package circles

import "image"
import "image/color"
import "math/rand"
import "reflect"
import "testing"

import "github.com/neurlang/circlecount/datasets"

func TestRenderCountInRange(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		img, n := cfg.Render(rng)
		if n < 0 || n > cfg.Circles[1] {
			t.Fatalf("count %d out of range %v", n, cfg.Circles)
		}
		var lit int
		for _, v := range img.Pix {
			if v > 0 {
				lit++
			}
		}
		if n == 0 && lit != 0 {
			t.Fatalf("empty image has %d lit pixels", lit)
		}
		if n > 0 && lit == 0 {
			t.Fatalf("image with %d circles is dark", n)
		}
	}
}

func TestRenderExactCount(t *testing.T) {
	cfg := DataConfig([2]int{3, 3}, [2]int{2, 2})
	_, n := cfg.Render(rand.New(rand.NewSource(5)))
	if n != 3 {
		t.Fatalf("got %d circles, want 3", n)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	a, err := Generate(cfg, 50, 42)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(cfg, 50, 42)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed generated different samples")
	}
	if len(a[0].Input) != cfg.Width*cfg.Height {
		t.Fatalf("input size %d", len(a[0].Input))
	}
}

func TestValidate(t *testing.T) {
	bad := []Config{
		{Width: 0, Height: 32, Circles: [2]int{0, 1}, Radius: [2]int{1, 2}},
		{Width: 32, Height: 32, Circles: [2]int{3, 1}, Radius: [2]int{1, 2}},
		{Width: 32, Height: 32, Circles: [2]int{0, 1}, Radius: [2]int{0, 2}},
		{Width: 8, Height: 8, Circles: [2]int{0, 1}, Radius: [2]int{1, 5}},
	}
	for i, c := range bad {
		if c.Validate() == nil {
			t.Errorf("config %d accepted", i)
		}
		if _, err := Generate(c, 1, 0); err == nil {
			t.Errorf("generate with config %d succeeded", i)
		}
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestProviderScales(t *testing.T) {
	x := [][]float32{{0, 255, 51}}
	y := [][]float32{{2}}
	px, py := Provider{}.PreProcess(x, y)
	if px[0][1] != 1 || px[0][2] != 0.2 {
		t.Fatalf("scaled %v", px[0])
	}
	if x[0][1] != 255 {
		t.Fatal("input modified")
	}
	if py[0][0] != 2 {
		t.Fatalf("targets %v", py)
	}
	_, py = Provider{}.PreProcess(x, nil)
	if py != nil {
		t.Fatal("nil targets became non nil")
	}
}

func TestSaveLoadDir(t *testing.T) {
	cfg := DefaultConfig()
	s, err := Generate(cfg, 12, 7)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	if err := SaveDir(dir, s, cfg.Width, cfg.Height); err != nil {
		t.Fatal(err)
	}
	back, err := LoadDir(dir, cfg.Width, cfg.Height)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(s, back) {
		t.Fatal("loaded samples differ")
	}
	if _, err := LoadDir(dir, 16, 16); err == nil {
		t.Fatal("size mismatch not reported")
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(1, 0, color.White)
	px, err := FromImage(img, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if px[0] != 0 || px[1] != 255 {
		t.Fatalf("pixels %v", px)
	}
}

func TestErrors(t *testing.T) {
	s := datasets.Samples{
		{Target: []float32{2}},
		{Target: []float32{3}},
		{Target: []float32{1}},
	}
	reg := [][]float32{{2.2}, {4.1}, {1.4}}
	if e := Errors(s, reg, 0.5); len(e) != 1 || e[0].Target[0] != 3 {
		t.Fatalf("regression errors %v", e)
	}
	cls := [][]float32{{0, 0, 1, 0}, {0, 0, 1, 0}, {0, 1, 0, 0}}
	if e := Errors(s, cls, 0.5); len(e) != 1 || e[0].Target[0] != 3 {
		t.Fatalf("classification errors %v", e)
	}
	if Count([]float32{2.6}) != 3 || Count([]float32{0.1, 0.7, 0.2}) != 1 {
		t.Fatal("count")
	}
}
