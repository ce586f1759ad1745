package enhancedlist

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/lang"
)

// undoStack holds the reversible deletions behind the undo bar.
//
// A single auto-hide timer is emulated with a generation counter: every push,
// touch or undo bumps the generation and any timer armed for an older one is
// ignored when it fires.
type undoStack struct {
	style        UndoStyle
	delay        time.Duration
	requireTouch bool

	actions    []Undoable
	generation uint64

	schedule func(d time.Duration, fn func())
	onChange func()
}

func newUndoStack() *undoStack {
	return &undoStack{
		style:        UndoSingle,
		delay:        defaultUndoHideDelay,
		requireTouch: true,
		schedule:     scheduleOnMain,
	}
}

// scheduleOnMain runs fn on the UI goroutine after d.
func scheduleOnMain(d time.Duration, fn func()) {
	time.AfterFunc(d, func() {
		fyne.Do(fn)
	})
}

func (u *undoStack) size() int {
	return len(u.actions)
}

func (u *undoStack) setStyle(style UndoStyle) {
	if u.style == style {
		return
	}
	// Pending entries were grouped for the old style, commit them first.
	u.discardAll()
	u.style = style
}

func (u *undoStack) push(a Undoable) {
	if a == nil {
		return
	}
	if u.style == UndoSingle {
		u.discardActions()
	}

	u.actions = append(u.actions, a)
	u.generation++
	if !u.requireTouch {
		u.arm()
	}
	u.changed()
}

// undo applies one press of the undo button according to the style.
func (u *undoStack) undo() {
	n := len(u.actions)
	if n == 0 {
		return
	}

	switch u.style {
	case UndoMultilevel:
		last := u.actions[n-1]
		u.actions[n-1] = nil
		u.actions = u.actions[:n-1]
		last.Undo()
	case UndoCollapsed:
		pending := u.actions
		u.actions = nil
		for i := len(pending) - 1; i >= 0; i-- {
			pending[i].Undo()
		}
	default:
		last := u.actions[n-1]
		u.actions = nil
		last.Undo()
	}

	u.generation++
	if len(u.actions) > 0 && !u.requireTouch {
		u.arm()
	}
	u.changed()
}

// touched restarts the countdown while the undo bar is showing.
func (u *undoStack) touched() {
	if len(u.actions) == 0 || !u.requireTouch {
		return
	}
	u.generation++
	u.arm()
}

func (u *undoStack) arm() {
	gen := u.generation
	u.schedule(u.delay, func() {
		u.flush(gen)
	})
}

// flush discards every pending action when the timer armed for generation
// is still the current one.
func (u *undoStack) flush(generation uint64) {
	if generation != u.generation {
		return
	}
	u.discardAll()
}

func (u *undoStack) discardAll() {
	if len(u.actions) == 0 {
		return
	}
	u.discardActions()
	u.generation++
	u.changed()
}

func (u *undoStack) discardActions() {
	pending := u.actions
	u.actions = nil
	for _, a := range pending {
		a.Discard()
	}
}

// message returns the undo bar text and button label.
func (u *undoStack) message() (text, button string) {
	n := len(u.actions)
	if n == 0 {
		return "", ""
	}
	if u.style == UndoCollapsed && n > 1 {
		return lang.N("{{.Count}} items deleted", n, map[string]any{"Count": n}), lang.L("Undo all")
	}

	text = u.actions[n-1].Title()
	if text == "" {
		text = lang.L("Item deleted")
	}
	return text, lang.L("Undo")
}

func (u *undoStack) changed() {
	if u.onChange != nil {
		u.onChange()
	}
}
