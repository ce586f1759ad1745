package enhancedlist

import (
	"math"
	"time"

	"fyne.io/fyne/v2"
)

type gestureMode int

const (
	gestureIdle gestureMode = iota
	// gesturePressed is a pointer down that has not moved past the slop yet.
	gesturePressed
	gestureSwiping
	// gestureScrolling hands vertical movement back to the list.
	gestureScrolling
	// gestureDragging routes every move to the reorder engine.
	gestureDragging
)

type gestureIntent int

const (
	intentNone gestureIntent = iota
	intentSwipe
	intentScroll
	intentDrag
)

type pointerEvent struct {
	id  int
	pos fyne.Position
	at  time.Time
}

type swipeFeedback struct {
	translation float32
	alpha       float32
}

type swipeRelease struct {
	commit  bool
	toRight bool
}

// gestureClassifier turns pointer events on a row into swipe, scroll or drag
// intents. Only one gesture can be tracked at a time.
type gestureClassifier struct {
	direction SwipeDirection
	slop      float32
	minFling  float32
	maxFling  float32

	mode         gestureMode
	pointerID    int
	position     int
	downPos      fyne.Position
	last         fyne.Position
	width        float32
	rtl          bool
	swipeAllowed bool
	velocity     velocityTracker
}

func newGestureClassifier() *gestureClassifier {
	return &gestureClassifier{
		slop:     touchSlop,
		minFling: minFlingVelocity,
		maxFling: maxFlingVelocity,
	}
}

// down starts tracking a gesture on the row at position. It fails while
// another gesture is active.
func (g *gestureClassifier) down(ev pointerEvent, position int, width float32, rtl, swipeAllowed bool) bool {
	if g.mode != gestureIdle {
		return false
	}

	g.mode = gesturePressed
	g.pointerID = ev.id
	g.position = position
	g.downPos = ev.pos
	g.last = ev.pos
	g.width = width
	g.rtl = rtl
	g.swipeAllowed = swipeAllowed
	g.velocity.reset()
	g.velocity.add(ev.pos, ev.at)
	return true
}

func (g *gestureClassifier) move(ev pointerEvent) (gestureIntent, swipeFeedback) {
	if g.mode == gestureIdle || ev.id != g.pointerID {
		return intentNone, swipeFeedback{}
	}

	g.last = ev.pos
	g.velocity.add(ev.pos, ev.at)
	dx := ev.pos.X - g.downPos.X
	dy := ev.pos.Y - g.downPos.Y

	switch g.mode {
	case gestureDragging:
		return intentDrag, swipeFeedback{}
	case gestureScrolling:
		return intentScroll, swipeFeedback{}
	case gesturePressed:
		adx, ady := abs32(dx), abs32(dy)
		switch {
		case g.swipeAllowed && adx > g.slop && adx > ady && g.directionAllows(dx):
			g.mode = gestureSwiping
		case ady > g.slop:
			g.mode = gestureScrolling
			return intentScroll, swipeFeedback{}
		default:
			return intentNone, swipeFeedback{}
		}
	}

	if !g.directionAllows(dx) {
		dx = 0
	}
	return intentSwipe, g.feedback(dx)
}

func (g *gestureClassifier) feedback(dx float32) swipeFeedback {
	alpha := float32(1)
	if g.width > 0 {
		alpha = clamp32(1-2*abs32(dx)/g.width, 0, 1)
	}
	return swipeFeedback{translation: dx, alpha: alpha}
}

// up ends the gesture and reports whether a swipe should dismiss its row.
func (g *gestureClassifier) up(ev pointerEvent) swipeRelease {
	if g.mode == gestureIdle || ev.id != g.pointerID {
		return swipeRelease{}
	}
	defer g.reset()

	if g.mode != gestureSwiping {
		return swipeRelease{}
	}

	dx := ev.pos.X - g.downPos.X
	if !g.directionAllows(dx) || g.width <= 0 {
		return swipeRelease{}
	}

	if abs32(dx) > g.width/2 {
		return swipeRelease{commit: true, toRight: dx > 0}
	}

	vx, vy := g.velocityAt(ev.at)
	avx, avy := abs32(vx), abs32(vy)
	if avx >= g.minFling && avx <= g.maxFling && avy < avx &&
		abs32(dx) >= minFlingFraction*g.width &&
		(vx > 0) == (dx > 0) {
		return swipeRelease{commit: true, toRight: vx > 0}
	}
	return swipeRelease{}
}

// velocityAt ignores samples that went stale while the pointer rested.
func (g *gestureClassifier) velocityAt(now time.Time) (float32, float32) {
	var recent velocityTracker
	for _, s := range g.velocity.samples {
		if now.Sub(s.at) <= velocityWindow {
			recent.samples = append(recent.samples, s)
		}
	}
	return recent.velocity()
}

// promoteToDrag turns a resting press into a reorder drag.
func (g *gestureClassifier) promoteToDrag() bool {
	if g.mode != gesturePressed {
		return false
	}
	if abs32(g.last.X-g.downPos.X) > g.slop || abs32(g.last.Y-g.downPos.Y) > g.slop {
		return false
	}
	g.mode = gestureDragging
	return true
}

// cancel drops the gesture without committing and returns the mode it was in.
func (g *gestureClassifier) cancel() gestureMode {
	mode := g.mode
	g.reset()
	return mode
}

func (g *gestureClassifier) reset() {
	g.mode = gestureIdle
	g.swipeAllowed = false
	g.velocity.reset()
}

func (g *gestureClassifier) directionAllows(dx float32) bool {
	if g.direction == SwipeBoth {
		return true
	}
	if g.rtl {
		dx = -dx
	}
	if g.direction == SwipeStart {
		return dx < 0
	}
	return dx > 0
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
