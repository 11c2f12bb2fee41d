package compute

import (
	"sync"
	"testing"
)

func TestCPURunCoversRangeExactlyOnce(t *testing.T) {
	backend := NewCPUBackend()

	const n = 1000
	var mu sync.Mutex
	seen := make([]int, n)

	backend.Run(n, 16, func(start, end int) {
		mu.Lock()
		defer mu.Unlock()
		for i := start; i < end; i++ {
			seen[i]++
		}
	})

	for i, count := range seen {
		if count != 1 {
			t.Errorf("index %d visited %d times", i, count)
		}
	}
}

func TestCPURunSmallInputIsSerial(t *testing.T) {
	backend := NewCPUBackend()

	calls := 0
	backend.Run(8, 16, func(start, end int) {
		calls++
		if start != 0 || end != 8 {
			t.Errorf("expected full range, got [%d, %d)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("expected one serial call, got %d", calls)
	}
}

func TestRunZeroIsNoop(t *testing.T) {
	backend := NewCPUBackend()
	backend.Run(0, 16, func(start, end int) {
		t.Error("fn called for empty range")
	})
}

func TestSerialBackend(t *testing.T) {
	var b Serial

	total := 0
	b.Run(100, 16, func(start, end int) {
		total += end - start
	})
	if total != 100 {
		t.Errorf("expected 100 indices, got %d", total)
	}
}

func TestSetBackend(t *testing.T) {
	orig := GetBackend()
	defer SetBackend(orig)

	SetBackend(Serial{})
	if GetBackend().Name() != "serial" {
		t.Errorf("expected serial backend, got %s", GetBackend().Name())
	}
}
