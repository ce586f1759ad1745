package enhancedlist

import (
	"sort"
	"time"
)

// rowView is the part of a bound row the animators drive.
type rowView interface {
	translation() float32
	setTranslation(dx float32)
	alpha() float32
	setAlpha(alpha float32)
	height() float32
}

type dismissHost interface {
	setRowHeight(position int, height float32)
	// dismiss runs the host callback for one row, positions arrive in
	// descending order.
	dismiss(position int)
	dismissFlushed()
}

type pendingDismiss struct {
	position int
	view     rowView // nil when the row was not on screen
	height   float32
}

// dismissAnimator slides rows out, collapses them and hands them to the host
// in one batch once every overlapping animation has finished. Until then the
// data source is untouched, so every queued position still refers to the
// indexing the user saw.
type dismissAnimator struct {
	host     dismissHost
	anim     animator
	duration time.Duration

	inFlight  int
	animating map[rowView]struct{}
	sliding   map[rowView]int
	stops     map[rowView]func()
	positions map[int]struct{}
	pending   []pendingDismiss
}

func newDismissAnimator(host dismissHost, anim animator) *dismissAnimator {
	return &dismissAnimator{
		host:      host,
		anim:      anim,
		duration:  dismissDuration,
		animating: make(map[rowView]struct{}),
		sliding:   make(map[rowView]int),
		stops:     make(map[rowView]func()),
		positions: make(map[int]struct{}),
	}
}

func (d *dismissAnimator) busy() bool {
	return d.inFlight > 0
}

func (d *dismissAnimator) isAnimating(view rowView) bool {
	_, ok := d.animating[view]
	return ok
}

// slideOut starts the exit of a row. Repeated requests for a row that is
// already leaving are ignored.
func (d *dismissAnimator) slideOut(view rowView, position int, width float32, toRight bool) bool {
	if d.isAnimating(view) {
		return false
	}
	if _, ok := d.positions[position]; ok {
		return false
	}
	d.animating[view] = struct{}{}
	d.sliding[view] = position
	d.positions[position] = struct{}{}
	d.inFlight++

	from, fromAlpha := view.translation(), view.alpha()
	to := width
	if !toRight {
		to = -width
	}

	stop := d.anim.animate(d.duration, func(p float32) {
		view.setTranslation(lerp(from, to, p))
		view.setAlpha(lerp(fromAlpha, 0, p))
	}, func() {
		d.collapse(view, position)
	})
	if _, ok := d.sliding[view]; ok {
		d.stops[view] = stop
	}
	return true
}

func (d *dismissAnimator) collapse(view rowView, position int) {
	delete(d.sliding, view)
	h := view.height()
	d.pending = append(d.pending, pendingDismiss{position: position, view: view, height: h})

	stop := d.anim.animate(d.duration, func(p float32) {
		d.host.setRowHeight(position, h*(1-p))
	}, func() {
		d.finished(view)
	})
	if d.isAnimating(view) {
		d.stops[view] = stop
	}
}

func (d *dismissAnimator) finished(view rowView) {
	delete(d.animating, view)
	delete(d.stops, view)
	d.inFlight--
	if d.inFlight > 0 {
		return
	}
	d.flush()
}

// dismissNow queues a row that has no view to animate. It joins the batch
// in flight, if any.
func (d *dismissAnimator) dismissNow(position int) bool {
	if _, ok := d.positions[position]; ok {
		return false
	}
	d.positions[position] = struct{}{}
	d.pending = append(d.pending, pendingDismiss{position: position})
	if d.inFlight == 0 {
		d.flush()
	}
	return true
}

// complete cuts every running animation short and hands the whole batch to
// the host right away, while positions still match the bound data.
func (d *dismissAnimator) complete() {
	if d.inFlight == 0 {
		return
	}
	for _, stop := range d.stops {
		stop()
	}
	for view, position := range d.sliding {
		d.pending = append(d.pending, pendingDismiss{position: position, view: view, height: view.height()})
	}
	d.animating = make(map[rowView]struct{})
	d.sliding = make(map[rowView]int)
	d.stops = make(map[rowView]func())
	d.inFlight = 0
	d.flush()
}

func (d *dismissAnimator) flush() {
	pending := d.pending
	d.pending = nil
	d.positions = make(map[int]struct{})
	if len(pending) == 0 {
		return
	}

	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].position > pending[j].position
	})
	for _, p := range pending {
		d.host.dismiss(p.position)
	}

	// Rows are recycled, put them back to full size before they are rebound.
	for _, p := range pending {
		if p.view == nil {
			continue
		}
		p.view.setTranslation(0)
		p.view.setAlpha(1)
		d.host.setRowHeight(p.position, p.height)
	}
	d.host.dismissFlushed()
}
