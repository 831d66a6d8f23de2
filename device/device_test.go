package device

import "strings"
import "testing"

func TestProbe(t *testing.T) {
	i := Probe()
	if i.LogicalCores < 0 || i.PhysicalCores < 0 {
		t.Errorf("negative core count: %+v", i)
	}
	if !strings.HasPrefix(i.String(), "cpu ") {
		t.Errorf("unexpected description %q", i.String())
	}
}

func TestAccelerated(t *testing.T) {
	if (Info{}).Accelerated() {
		t.Error("empty info reports an accelerator")
	}
	i := Info{CUDA: []CUDADevice{{Name: "test", Major: 8, Minor: 6}}}
	if !i.Accelerated() {
		t.Error("info with a cuda device is not accelerated")
	}
	if !strings.Contains(i.String(), "sm_86") {
		t.Errorf("missing compute capability in %q", i.String())
	}
}
