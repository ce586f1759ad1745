package enhancedlist

import (
	"image"

	"fyne.io/fyne/v2"
)

// bounds is a rectangle in list viewport coordinates.
type bounds struct {
	pos  fyne.Position
	size fyne.Size
}

func (b bounds) top() float32 {
	return b.pos.Y
}

func (b bounds) bottom() float32 {
	return b.pos.Y + b.size.Height
}

func (b bounds) centerY() float32 {
	return b.pos.Y + b.size.Height/2
}

func (b bounds) offsetY(dy float32) bounds {
	return bounds{pos: b.pos.AddXY(0, dy), size: b.size}
}

// lerpBounds interpolates each of the four edges independently.
func lerpBounds(from, to bounds, p float32) bounds {
	left := lerp(from.pos.X, to.pos.X, p)
	top := lerp(from.pos.Y, to.pos.Y, p)
	right := lerp(from.pos.X+from.size.Width, to.pos.X+to.size.Width, p)
	bottom := lerp(from.bottom(), to.bottom(), p)
	return bounds{pos: fyne.NewPos(left, top), size: fyne.NewSize(right-left, bottom-top)}
}

// reorderHost is what the reorder engine needs from the list surface.
type reorderHost interface {
	length() int
	stableID(position int) int64
	positionForID(id int64) (int, bool)
	// rowBounds reports where the row at position is laid out and whether
	// any of it is on screen.
	rowBounds(position int) (b bounds, visible bool)
	viewportHeight() float32
	canScroll(dy float32) bool
	// scrollBy returns how far the list actually moved.
	scrollBy(dy float32) float32

	swapRows(i, j int)
	setMobile(id int64, active bool)
	setRowOffset(id int64, dy float32)

	snapshot(position int) image.Image
	showHover(img image.Image, b bounds)
	moveHover(b bounds)
	hideHover()

	setInputEnabled(enabled bool)
	startedRearranging()
	finishedRearranging()
}

type neighbor struct {
	id int64
	ok bool
}

// dragSession is the state of one drag, from long press until the hover
// cell has settled.
type dragSession struct {
	mobile       int64
	above, below neighbor

	hover    image.Image
	original bounds
	current  bounds

	downY       float32
	lastY       float32
	totalOffset float32
}

type reorderState int

const (
	reorderIdle reorderState = iota
	reorderDragging
	reorderSettling
)

type reorderEngine struct {
	host reorderHost
	anim animator

	state   reorderState
	session *dragSession

	scrolling         bool
	scrolled          float32
	settleAfterScroll bool
	stopScroll        func()
	stopSettle        func()
}

func newReorderEngine(host reorderHost, anim animator) *reorderEngine {
	return &reorderEngine{host: host, anim: anim}
}

func (e *reorderEngine) active() bool {
	return e.state != reorderIdle
}

// start lifts the row at position into a hover cell. y is the pointer
// position, only differences to it are used.
func (e *reorderEngine) start(position int, y float32) bool {
	if e.state != reorderIdle || position < 0 || position >= e.host.length() {
		return false
	}
	b, ok := e.host.rowBounds(position)
	if !ok {
		return false
	}

	s := &dragSession{
		mobile:   e.host.stableID(position),
		original: b,
		current:  b,
		downY:    y,
		lastY:    y,
	}
	s.hover = e.host.snapshot(position)
	e.session = s
	e.state = reorderDragging

	e.host.startedRearranging()
	e.host.setMobile(s.mobile, true)
	e.updateNeighbors(position)
	e.host.showHover(s.hover, b)
	return true
}

func (e *reorderEngine) move(y float32) {
	if e.state != reorderDragging {
		return
	}

	s := e.session
	s.lastY = y
	s.current = s.original.offsetY(s.totalOffset + s.lastY - s.downY)
	e.host.moveHover(s.current)

	if !e.scrolling {
		e.switchCells()
	}
	e.autoScroll()
}

type resolvedRow struct {
	id       int64
	position int
	bounds   bounds
	visible  bool
}

func (e *reorderEngine) resolve(n neighbor) (resolvedRow, bool) {
	if !n.ok {
		return resolvedRow{}, false
	}
	pos, ok := e.host.positionForID(n.id)
	if !ok {
		return resolvedRow{}, false
	}
	b, visible := e.host.rowBounds(pos)
	return resolvedRow{id: n.id, position: pos, bounds: b, visible: visible}, true
}

func (e *reorderEngine) switchCells() {
	s := e.session
	mobilePos, ok := e.host.positionForID(s.mobile)
	if !ok {
		return
	}

	below, belowOK := e.resolve(s.below)
	above, aboveOK := e.resolve(s.above)

	center := s.current.centerY()
	var target resolvedRow
	switch {
	case belowOK && center > below.bounds.top():
		target = below
	case aboveOK && center < above.bounds.bottom():
		target = above
	default:
		if (s.below.ok && !belowOK) || (s.above.ok && !aboveOK) {
			e.updateNeighbors(mobilePos)
		}
		return
	}
	if !target.visible {
		// Not materialised, pick the neighbours again and retry on the next move.
		e.updateNeighbors(mobilePos)
		return
	}

	s.totalOffset += s.lastY - s.downY
	s.downY = s.lastY
	e.host.swapRows(mobilePos, target.position)

	// The switched row now sits in the mobile row's old slot, start it where
	// it was drawn before and let it slide in.
	nb, _ := e.host.rowBounds(mobilePos)
	e.slideRow(target.id, target.bounds.top()-nb.top())
	e.updateNeighbors(target.position)
}

func (e *reorderEngine) slideRow(id int64, delta float32) {
	if delta == 0 {
		return
	}
	e.host.setRowOffset(id, delta)
	e.anim.animate(moveDuration, func(p float32) {
		e.host.setRowOffset(id, lerp(delta, 0, p))
	}, nil)
}

func (e *reorderEngine) updateNeighbors(position int) {
	s := e.session
	s.above, s.below = neighbor{}, neighbor{}
	if position > 0 {
		s.above = neighbor{id: e.host.stableID(position - 1), ok: true}
	}
	if position+1 < e.host.length() {
		s.below = neighbor{id: e.host.stableID(position + 1), ok: true}
	}
}

// autoScroll moves the list by one step while the hover cell touches the
// top or bottom edge of the viewport.
func (e *reorderEngine) autoScroll() {
	if e.scrolling || e.state != reorderDragging {
		return
	}

	s := e.session
	var dy float32
	switch {
	case s.current.top() <= 0 && e.host.canScroll(-autoScrollStep):
		dy = -autoScrollStep
	case s.current.bottom() >= e.host.viewportHeight() && e.host.canScroll(autoScrollStep):
		dy = autoScrollStep
	default:
		return
	}

	e.scrolling = true
	e.scrolled = 0
	applied := float32(0)
	stop := e.anim.animate(scrollDuration, func(p float32) {
		step := dy*p - applied
		applied += step
		e.scrolled += e.host.scrollBy(step)
	}, e.scrollFinished)
	if e.scrolling {
		e.stopScroll = stop
	}
}

func (e *reorderEngine) scrollFinished() {
	e.scrolling = false
	e.stopScroll = nil

	if e.settleAfterScroll {
		e.settleAfterScroll = false
		e.settle()
		return
	}
	if e.state == reorderDragging {
		e.switchCells()
		// A step that did not move the list means the end was reached.
		if e.scrolled != 0 {
			e.autoScroll()
		}
	}
}

// end drops the hover cell back into the list. If an edge scroll is still
// running the settle waits for it.
func (e *reorderEngine) end() {
	if e.state != reorderDragging {
		return
	}
	if e.scrolling {
		e.settleAfterScroll = true
		return
	}
	e.settle()
}

// cancel settles like end. Swaps already made stay in the data source.
func (e *reorderEngine) cancel() {
	e.end()
}

func (e *reorderEngine) settle() {
	s := e.session
	e.state = reorderSettling
	e.host.setInputEnabled(false)

	from, to := s.current, s.current
	if pos, ok := e.host.positionForID(s.mobile); ok {
		to, _ = e.host.rowBounds(pos)
	}

	stop := e.anim.animate(moveDuration, func(p float32) {
		s.current = lerpBounds(from, to, p)
		e.host.moveHover(s.current)
	}, e.finish)
	if e.state == reorderSettling {
		e.stopSettle = stop
	}
}

func (e *reorderEngine) finish() {
	if e.state == reorderIdle {
		return
	}

	e.session = nil
	e.state = reorderIdle
	e.scrolling = false
	e.settleAfterScroll = false
	e.stopScroll = nil
	e.stopSettle = nil

	e.host.setMobile(0, false)
	e.host.hideHover()
	e.host.setInputEnabled(true)
	e.host.finishedRearranging()
}

// reset aborts any drag immediately, still reporting the end of it once.
func (e *reorderEngine) reset() {
	if e.stopScroll != nil {
		e.stopScroll()
	}
	if e.stopSettle != nil {
		e.stopSettle()
	}
	e.finish()
}
