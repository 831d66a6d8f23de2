package parallel

import "errors"
import "sync/atomic"
import "testing"

func TestForEachVisitsAll(t *testing.T) {
	const n = 1000
	var seen [n]int32
	ForEach(n, 8, func(i int) {
		atomic.AddInt32(&seen[i], 1)
	})
	for i, v := range seen {
		if v != 1 {
			t.Fatalf("index %d visited %d times", i, v)
		}
	}
}

func TestForEachRespectsLimit(t *testing.T) {
	var running, peak int32
	ForEach(200, 3, func(i int) {
		cur := atomic.AddInt32(&running, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if cur <= old || atomic.CompareAndSwapInt32(&peak, old, cur) {
				break
			}
		}
		atomic.AddInt32(&running, -1)
	})
	if peak > 3 {
		t.Errorf("peak concurrency %d exceeds limit 3", peak)
	}
}

func TestForEachEmpty(t *testing.T) {
	ForEach(0, 4, func(i int) {
		t.Fatal("body called for empty range")
	})
}

func TestForEachErr(t *testing.T) {
	errOdd := errors.New("odd")
	err := ForEachErr(10, 0, func(i int) error {
		if i == 3 || i == 7 {
			return errOdd
		}
		return nil
	})
	if !errors.Is(err, errOdd) {
		t.Errorf("expected odd error, got %v", err)
	}
	if err := ForEachErr(10, 2, func(int) error { return nil }); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func TestLimitPositive(t *testing.T) {
	if Limit() < 1 {
		t.Errorf("limit %d", Limit())
	}
}
