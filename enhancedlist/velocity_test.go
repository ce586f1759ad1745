package enhancedlist

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
)

func TestVelocityTracker(t *testing.T) {
	var v velocityTracker
	start := time.Now()

	if vx, vy := v.velocity(); vx != 0 || vy != 0 {
		t.Fatalf("expected zero velocity without samples, got %v, %v", vx, vy)
	}

	v.add(fyne.NewPos(0, 0), start)
	v.add(fyne.NewPos(10, 5), start.Add(10*time.Millisecond))
	v.add(fyne.NewPos(40, 20), start.Add(40*time.Millisecond))

	vx, vy := v.velocity()
	if vx != 1000 || vy != 500 {
		t.Fatalf("expected 1000, 500 units/s, got %v, %v", vx, vy)
	}
}

func TestVelocityTracker_DropsOldSamples(t *testing.T) {
	var v velocityTracker
	start := time.Now()

	v.add(fyne.NewPos(0, 0), start)
	v.add(fyne.NewPos(500, 0), start.Add(300*time.Millisecond))
	if len(v.samples) != 1 {
		t.Fatalf("expected the stale sample to be dropped, have %d", len(v.samples))
	}

	v.add(fyne.NewPos(550, 0), start.Add(350*time.Millisecond))
	if vx, _ := v.velocity(); vx != 1000 {
		t.Fatalf("expected 1000 units/s from recent samples, got %v", vx)
	}

	v.reset()
	if len(v.samples) != 0 {
		t.Fatalf("expected reset to clear samples")
	}
}
