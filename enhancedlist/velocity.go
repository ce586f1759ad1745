package enhancedlist

import (
	"time"

	"fyne.io/fyne/v2"
)

// Only samples this recent contribute to the release velocity.
const velocityWindow = 100 * time.Millisecond

type velocitySample struct {
	pos fyne.Position
	at  time.Time
}

type velocityTracker struct {
	samples []velocitySample
}

func (v *velocityTracker) add(pos fyne.Position, at time.Time) {
	v.samples = append(v.samples, velocitySample{pos: pos, at: at})

	// Drop samples that fell out of the window, keeping the newest one.
	cut := 0
	for cut < len(v.samples)-1 && at.Sub(v.samples[cut].at) > velocityWindow {
		cut++
	}
	if cut > 0 {
		v.samples = append(v.samples[:0], v.samples[cut:]...)
	}
}

// velocity returns units per second along both axes.
func (v *velocityTracker) velocity() (vx, vy float32) {
	if len(v.samples) < 2 {
		return 0, 0
	}

	first := v.samples[0]
	last := v.samples[len(v.samples)-1]
	dt := last.at.Sub(first.at).Seconds()
	if dt <= 0 {
		return 0, 0
	}

	return float32(float64(last.pos.X-first.pos.X) / dt), float32(float64(last.pos.Y-first.pos.Y) / dt)
}

func (v *velocityTracker) reset() {
	v.samples = v.samples[:0]
}
