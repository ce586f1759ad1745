package enhancedlist

import (
	"time"

	"fyne.io/fyne/v2"
)

// animator runs a frame-driven transition. tick receives the progress in
// [0, 1]; done runs once after the final tick unless the returned stop func
// was called first. Both run on the UI goroutine and may run before animate
// returns.
type animator interface {
	animate(d time.Duration, tick func(progress float32), done func()) (stop func())
}

type fyneAnimator struct{}

func (fyneAnimator) animate(d time.Duration, tick func(float32), done func()) func() {
	finished := false
	a := fyne.NewAnimation(d, func(p float32) {
		if finished {
			return
		}
		tick(p)
		if p >= 1 {
			finished = true
			if done != nil {
				done()
			}
		}
	})
	a.Curve = fyne.AnimationLinear
	a.Start()

	return func() {
		finished = true
		a.Stop()
	}
}

func lerp(from, to, p float32) float32 {
	return from + (to-from)*p
}
