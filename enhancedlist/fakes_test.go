package enhancedlist

import (
	"time"
)

// manualAnimator records animations and only completes them when asked.
type manualAnimator struct {
	runs []*manualRun
}

type manualRun struct {
	d       time.Duration
	tick    func(float32)
	done    func()
	stopped bool
	ended   bool
}

func (m *manualAnimator) animate(d time.Duration, tick func(float32), done func()) func() {
	run := &manualRun{d: d, tick: tick, done: done}
	m.runs = append(m.runs, run)
	return func() {
		run.stopped = true
	}
}

func (m *manualAnimator) pending() []*manualRun {
	var out []*manualRun
	for _, r := range m.runs {
		if !r.stopped && !r.ended {
			out = append(out, r)
		}
	}
	return out
}

func (r *manualRun) advance(p float32) {
	if r.stopped || r.ended {
		return
	}
	r.tick(p)
}

func (r *manualRun) finish() {
	if r.stopped || r.ended {
		return
	}
	r.tick(1)
	r.ended = true
	if r.done != nil {
		r.done()
	}
}

// finishAll completes every animation, including the ones started by
// completion callbacks.
func (m *manualAnimator) finishAll() {
	for {
		pending := m.pending()
		if len(pending) == 0 {
			return
		}
		for _, r := range pending {
			r.finish()
		}
	}
}

// instantAnimator jumps to the end of every animation before returning.
type instantAnimator struct{}

func (instantAnimator) animate(_ time.Duration, tick func(float32), done func()) func() {
	tick(1)
	if done != nil {
		done()
	}
	return func() {}
}

// fakeTimers collects scheduled callbacks instead of waiting for them.
type fakeTimers struct {
	fns    []func()
	delays []time.Duration
}

func (f *fakeTimers) schedule(d time.Duration, fn func()) {
	f.fns = append(f.fns, fn)
	f.delays = append(f.delays, d)
}

func (f *fakeTimers) fire(i int) {
	f.fns[i]()
}

func (f *fakeTimers) fireAll() {
	fns := f.fns
	f.fns, f.delays = nil, nil
	for _, fn := range fns {
		fn()
	}
}

// undoRecorder builds actions that log what happened to them.
type undoRecorder struct {
	events []string
}

func (r *undoRecorder) action(name string) *UndoAction {
	return &UndoAction{
		Label: name,
		OnUndo: func() {
			r.events = append(r.events, "undo "+name)
		},
		OnDiscard: func() {
			r.events = append(r.events, "discard "+name)
		},
	}
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
