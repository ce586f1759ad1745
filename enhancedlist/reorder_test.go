package enhancedlist

import (
	"image"
	"testing"

	"fyne.io/fyne/v2"
)

type fakeReorderHost struct {
	ids       []int64
	rowH      float32
	width     float32
	viewport  float32
	offset    float32
	maxOffset float32
	hidden    map[int]bool

	// alwaysRoom makes canScroll report room even at the end.
	alwaysRoom bool

	swaps    [][2]int
	started  int
	finished int

	mobile       int64
	mobileActive bool
	rowOffsets   map[int64]float32

	hover        bool
	hoverBounds  bounds
	inputEnabled bool
}

func newFakeReorderHost(n int) *fakeReorderHost {
	h := &fakeReorderHost{
		rowH:         40,
		width:        300,
		viewport:     200,
		hidden:       make(map[int]bool),
		rowOffsets:   make(map[int64]float32),
		inputEnabled: true,
	}
	for i := 0; i < n; i++ {
		h.ids = append(h.ids, int64(100+i))
	}
	return h
}

func (h *fakeReorderHost) length() int                 { return len(h.ids) }
func (h *fakeReorderHost) stableID(position int) int64 { return h.ids[position] }

func (h *fakeReorderHost) positionForID(id int64) (int, bool) {
	for i, v := range h.ids {
		if v == id {
			return i, true
		}
	}
	return -1, false
}

func (h *fakeReorderHost) rowBounds(position int) (bounds, bool) {
	b := bounds{
		pos:  fyne.NewPos(0, float32(position)*h.rowH-h.offset),
		size: fyne.NewSize(h.width, h.rowH),
	}
	visible := b.bottom() > 0 && b.top() < h.viewport && !h.hidden[position]
	return b, visible
}

func (h *fakeReorderHost) viewportHeight() float32 { return h.viewport }

func (h *fakeReorderHost) canScroll(dy float32) bool {
	if h.alwaysRoom {
		return true
	}
	if dy < 0 {
		return h.offset > 0
	}
	return h.offset < h.maxOffset
}

func (h *fakeReorderHost) scrollBy(dy float32) float32 {
	next := min(max(h.offset+dy, 0), h.maxOffset)
	moved := next - h.offset
	h.offset = next
	return moved
}

func (h *fakeReorderHost) swapRows(i, j int) {
	h.ids[i], h.ids[j] = h.ids[j], h.ids[i]
	h.swaps = append(h.swaps, [2]int{i, j})
}

func (h *fakeReorderHost) setMobile(id int64, active bool) {
	h.mobile, h.mobileActive = id, active
}

func (h *fakeReorderHost) setRowOffset(id int64, dy float32) { h.rowOffsets[id] = dy }

func (h *fakeReorderHost) snapshot(int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, 1, 1))
}

func (h *fakeReorderHost) showHover(_ image.Image, b bounds) {
	h.hover, h.hoverBounds = true, b
}

func (h *fakeReorderHost) moveHover(b bounds) { h.hoverBounds = b }
func (h *fakeReorderHost) hideHover()         { h.hover = false }

func (h *fakeReorderHost) setInputEnabled(enabled bool) { h.inputEnabled = enabled }
func (h *fakeReorderHost) startedRearranging()          { h.started++ }
func (h *fakeReorderHost) finishedRearranging()         { h.finished++ }

func TestReorderEngine_SingleCrossingSwapsOnce(t *testing.T) {
	host := newFakeReorderHost(5)
	anim := &manualAnimator{}
	e := newReorderEngine(host, anim)

	if !e.start(0, 20) {
		t.Fatalf("expected drag to start")
	}
	if host.started != 1 || !host.mobileActive || host.mobile != 100 || !host.hover {
		t.Fatalf("unexpected host state after start: %+v", host)
	}

	e.move(45)
	e.move(50)
	e.move(55)

	if len(host.swaps) != 1 || host.swaps[0] != [2]int{0, 1} {
		t.Fatalf("expected exactly one swap (0, 1), got %v", host.swaps)
	}
	if host.rowOffsets[101] != 40 {
		t.Fatalf("expected the switched row to start where it was drawn, got offset %v", host.rowOffsets[101])
	}
	if host.hoverBounds.top() != 35 {
		t.Fatalf("expected hover to follow the pointer, top %v", host.hoverBounds.top())
	}

	e.end()
	if e.state != reorderSettling || host.inputEnabled {
		t.Fatalf("expected settling with input disabled")
	}

	anim.finishAll()
	if host.rowOffsets[101] != 0 {
		t.Fatalf("expected switched row to slide to rest, got %v", host.rowOffsets[101])
	}
	if host.hoverBounds.top() != 40 {
		t.Fatalf("expected hover to settle on the new slot, top %v", host.hoverBounds.top())
	}
	if e.active() || host.hover || host.mobileActive || !host.inputEnabled {
		t.Fatalf("expected engine to be idle and host restored")
	}
	if host.finished != 1 {
		t.Fatalf("expected one finished notification, got %d", host.finished)
	}
}

func TestReorderEngine_SwitchUpwards(t *testing.T) {
	host := newFakeReorderHost(5)
	e := newReorderEngine(host, &manualAnimator{})

	e.start(2, 100)
	e.move(90)
	if len(host.swaps) != 0 {
		t.Fatalf("expected no swap before crossing, got %v", host.swaps)
	}
	e.move(75)
	if len(host.swaps) != 1 || host.swaps[0] != [2]int{2, 1} {
		t.Fatalf("expected swap (2, 1), got %v", host.swaps)
	}
	if pos, _ := host.positionForID(102); pos != 1 {
		t.Fatalf("expected dragged row at 1, got %d", pos)
	}
}

func TestReorderEngine_UnresolvedTargetRetries(t *testing.T) {
	host := newFakeReorderHost(5)
	e := newReorderEngine(host, &manualAnimator{})

	e.start(0, 0)
	host.hidden[1] = true
	e.move(30)
	if len(host.swaps) != 0 {
		t.Fatalf("expected no swap with an unresolved target, got %v", host.swaps)
	}

	delete(host.hidden, 1)
	e.move(31)
	if len(host.swaps) != 1 {
		t.Fatalf("expected the switch to happen once the target resolves, got %v", host.swaps)
	}
}

func TestReorderEngine_AutoScrollDefersSwitchAndSettle(t *testing.T) {
	host := newFakeReorderHost(8)
	host.maxOffset = 120
	anim := &manualAnimator{}
	e := newReorderEngine(host, anim)

	e.start(4, 0)
	e.move(5)
	if !e.scrolling {
		t.Fatalf("expected hover at the bottom edge to scroll")
	}
	scroll := anim.pending()[0]
	if scroll.d != scrollDuration {
		t.Fatalf("expected %v scroll step, got %v", scrollDuration, scroll.d)
	}

	// Past the below neighbour, but the scroll is still running.
	e.move(30)
	if len(host.swaps) != 0 {
		t.Fatalf("expected cell switches to wait for the scroll, got %v", host.swaps)
	}

	e.end()
	if e.state != reorderDragging || host.finished != 0 {
		t.Fatalf("expected settle to wait for the scroll")
	}

	scroll.finish()
	if host.offset != autoScrollStep {
		t.Fatalf("expected one scroll step, offset %v", host.offset)
	}
	if e.state != reorderSettling {
		t.Fatalf("expected settle after the scroll, state %d", e.state)
	}

	anim.finishAll()
	if host.finished != 1 || e.active() {
		t.Fatalf("expected a single finish, got %d", host.finished)
	}
}

func TestReorderEngine_AutoScrollStopsAtEdge(t *testing.T) {
	host := newFakeReorderHost(8)
	e := newReorderEngine(host, &manualAnimator{})

	e.start(4, 0)
	e.move(5)
	if e.scrolling {
		t.Fatalf("expected no scroll when the list cannot scroll")
	}
}

func TestReorderEngine_AutoScrollStopsWhenListDoesNotMove(t *testing.T) {
	host := newFakeReorderHost(8)
	host.maxOffset = 120
	anim := &manualAnimator{}
	e := newReorderEngine(host, anim)

	host.offset = host.maxOffset
	host.alwaysRoom = true
	// Last row, flush with the bottom edge.
	if !e.start(7, 0) {
		t.Fatalf("expected drag to start")
	}
	e.move(5)
	if !e.scrolling {
		t.Fatalf("expected hover at the bottom edge to scroll")
	}

	anim.finishAll()
	if e.scrolling {
		t.Fatalf("expected scrolling to stop once a step does not move the list")
	}
	if got := len(anim.runs); got != 1 {
		t.Fatalf("expected a single scroll animation, got %d", got)
	}
	if host.offset != host.maxOffset {
		t.Fatalf("offset moved past the end: %v", host.offset)
	}
}

func TestReorderEngine_ResetNotifiesOnce(t *testing.T) {
	host := newFakeReorderHost(5)
	anim := &manualAnimator{}
	e := newReorderEngine(host, anim)

	e.start(1, 50)
	e.cancel()
	if e.state != reorderSettling {
		t.Fatalf("expected cancel to settle, state %d", e.state)
	}

	e.reset()
	anim.finishAll()
	e.reset()
	if host.finished != 1 {
		t.Fatalf("expected one finished notification, got %d", host.finished)
	}
	if !host.inputEnabled || host.hover {
		t.Fatalf("expected host restored after reset")
	}
}

func TestReorderEngine_StartPreconditions(t *testing.T) {
	host := newFakeReorderHost(10)
	e := newReorderEngine(host, &manualAnimator{})

	if e.start(9, 0) {
		t.Fatalf("expected off screen row to be refused")
	}
	if e.start(10, 0) {
		t.Fatalf("expected out of range row to be refused")
	}
	if !e.start(2, 0) {
		t.Fatalf("expected visible row to start")
	}
	if e.start(3, 0) {
		t.Fatalf("expected second drag to be refused")
	}
	if host.started != 1 {
		t.Fatalf("expected one started notification, got %d", host.started)
	}
}

func TestLerpBounds(t *testing.T) {
	from := bounds{pos: fyne.NewPos(0, 0), size: fyne.NewSize(100, 40)}
	to := bounds{pos: fyne.NewPos(10, 100), size: fyne.NewSize(80, 60)}

	mid := lerpBounds(from, to, 0.5)
	if mid.pos != fyne.NewPos(5, 50) || mid.size != fyne.NewSize(90, 50) {
		t.Fatalf("unexpected midpoint %+v", mid)
	}
	if end := lerpBounds(from, to, 1); end != to {
		t.Fatalf("expected %+v at the end, got %+v", to, end)
	}
}
