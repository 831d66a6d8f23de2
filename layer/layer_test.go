package layer

import "testing"

func TestShape(t *testing.T) {
	s := Shape{Height: 4, Width: 5, Channels: 2}
	if s.Size() != 40 {
		t.Errorf("size %d", s.Size())
	}
	if s.String() != "4x5x2" {
		t.Errorf("string %q", s.String())
	}
	if !s.Valid() || (Shape{Height: 1, Width: 0, Channels: 1}).Valid() {
		t.Error("validity check is wrong")
	}
	if Flat(7) != (Shape{Height: 7, Width: 1, Channels: 1}) {
		t.Errorf("flat %v", Flat(7))
	}
}

func TestActivationLoom(t *testing.T) {
	for a, want := range map[Activation]string{
		ReLU:    "relu",
		Sigmoid: "sigmoid",
		Tanh:    "tanh",
		Linear:  "none",
		Softmax: "none",
		"":      "none",
	} {
		if got := a.Loom(); got != want {
			t.Errorf("%q maps to %q, want %q", a, got, want)
		}
	}
}

func TestEmulated(t *testing.T) {
	if !MaxPool2D.Emulated() {
		t.Error("max_pool2d has a loom layer")
	}
	for _, k := range []Kind{Flatten, Dense, Conv2D} {
		if k.Emulated() {
			t.Errorf("%s is emulated", k)
		}
	}
}
