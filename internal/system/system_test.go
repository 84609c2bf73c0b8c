package system

import (
	"image"
	"testing"
)

func TestWorkerCount(t *testing.T) {
	if got := WorkerCount(3); got != 3 {
		t.Errorf("explicit request ignored: %d", got)
	}
	if got := WorkerCount(0); got < 1 {
		t.Errorf("derived worker count must be positive, got %d", got)
	}
	if got := WorkerCount(-2); got < 1 {
		t.Errorf("negative request must fall back, got %d", got)
	}
}

func TestFrameBudgetBounds(t *testing.T) {
	if got := FrameBudget(1280 * 720 * 4); got < 8 || got > 256 {
		t.Errorf("budget out of bounds: %d", got)
	}
	if got := FrameBudget(0); got != 8 {
		t.Errorf("zero frame size should hit the floor, got %d", got)
	}
}

func TestFramePoolReuse(t *testing.T) {
	rect := image.Rect(0, 0, 64, 48)

	f1 := GetFrame(rect)
	if f1.Bounds() != rect {
		t.Fatalf("unexpected bounds %v", f1.Bounds())
	}
	PutFrame(f1)

	f2 := GetFrame(rect)
	if f2.Bounds() != rect {
		t.Fatalf("unexpected bounds %v", f2.Bounds())
	}
	PutFrame(f2)

	// Distinct sizes never share a pool.
	other := GetFrame(image.Rect(0, 0, 32, 32))
	if other.Bounds() == rect {
		t.Error("pool mixed frame sizes")
	}

	// nil is tolerated.
	PutFrame(nil)
}
