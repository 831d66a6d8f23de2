package hash

import "testing"

// performance benchmark
func BenchmarkHash(b *testing.B) {
	var n, s uint32
	for i := 0; i < b.N; i++ {
		n = Hash(n, s, 1<<20)
		s++
	}
}

func TestHashRange(t *testing.T) {
	for max := uint32(1); max <= 1<<20; max <<= 2 {
		for n := uint32(0); n < 1000; n++ {
			if out := Hash(n, 7, max); out >= max {
				t.Fatalf("Hash(%d, 7, %d) == %d, out of range", n, max, out)
			}
		}
	}
	if out := Hash(12345, 1, 0); out != 0 {
		t.Errorf("Hash with max 0 returned %d", out)
	}
}

func TestHoldoutDeterministic(t *testing.T) {
	for n := uint32(0); n < 500; n++ {
		if Holdout(n, 3, 20) != Holdout(n, 3, 20) {
			t.Fatalf("holdout of %d is not stable", n)
		}
	}
}

func TestHoldoutProportion(t *testing.T) {
	const total = 10000
	var held int
	for n := uint32(0); n < total; n++ {
		if Holdout(n, 0, 20) {
			held++
		}
	}
	if held < total*10/100 || held > total*30/100 {
		t.Errorf("holdout of 20 percent kept %d of %d", held, total)
	}
	for n := uint32(0); n < 100; n++ {
		if Holdout(n, 0, 0) {
			t.Fatalf("zero percent holdout selected %d", n)
		}
		if !Holdout(n, 0, 100) {
			t.Fatalf("full holdout skipped %d", n)
		}
	}
}

// sanity check fuzz
func FuzzHash(f *testing.F) {
	f.Add(uint32(0), uint32(0), uint32(0))
	f.Fuzz(func(t *testing.T, n, s, max uint32) {
		out := Hash(n, s, max)
		if max == 0 && out != 0 {
			t.Errorf("Hash(%d, %d, 0) == %d (max=0 should be 0)", n, s, out)
		}
		if max > 1 && out >= max {
			t.Errorf("Hash(%d, %d, %d) == %d (output bigger or equal than max)", n, s, max, out)
		}
	})
}
