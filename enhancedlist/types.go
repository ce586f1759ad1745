package enhancedlist

import (
	"time"

	"fyne.io/fyne/v2"
)

// SwipeDirection restricts which horizontal swipes may dismiss a row.
type SwipeDirection int

const (
	// SwipeBoth accepts swipes towards either edge.
	SwipeBoth SwipeDirection = iota
	// SwipeStart only accepts swipes towards the leading edge (left in a
	// left-to-right layout).
	SwipeStart
	// SwipeEnd only accepts swipes towards the trailing edge.
	SwipeEnd
)

// UndoStyle selects how several pending deletions are presented and undone.
type UndoStyle int

const (
	// UndoSingle keeps only the most recent deletion undoable; older ones are
	// discarded as soon as a new one arrives.
	UndoSingle UndoStyle = iota
	// UndoMultilevel undoes one deletion per press, newest first.
	UndoMultilevel
	// UndoCollapsed shows a count and undoes every pending deletion at once.
	UndoCollapsed
)

const (
	defaultUndoHideDelay = 5000 * time.Millisecond

	dismissDuration = 200 * time.Millisecond
	moveDuration    = 150 * time.Millisecond
	scrollDuration  = 50 * time.Millisecond
	longPressDelay  = 500 * time.Millisecond

	touchSlop        = float32(8)
	minFlingVelocity = float32(800)
	maxFlingVelocity = float32(8000)

	// Share of the row width a fling must have travelled to count.
	minFlingFraction = float32(0.2)

	autoScrollStep   = float32(15)
	hoverBorderWidth = float32(3)

	primaryPointer = 0
)

// DataSource provides the rows shown by an EnhancedList. Row content is
// created and bound by the host, the list only moves it around.
type DataSource interface {
	Length() int
	CreateItem() fyne.CanvasObject
	UpdateItem(position int, item fyne.CanvasObject)
}

// StableIDSource is implemented by data sources that can name each row
// independently of its position. Drag reordering tracks rows by these ids.
type StableIDSource interface {
	StableID(position int) int64
}

// Rearranger is implemented by data sources that support drag reordering.
type Rearranger interface {
	OnStartedRearranging()
	// SwapElements must swap the two positions in the underlying data.
	SwapElements(i, j int)
	OnFinishedRearranging()
}

// DismissCallback is called once per dismissed row, in descending position
// order. It must remove the row from the data source before returning. The
// returned Undoable (may be nil) is kept until it is undone or discarded.
type DismissCallback func(list *EnhancedList, position int) Undoable

// ShouldSwipeCallback can veto swiping of individual rows.
type ShouldSwipeCallback func(list *EnhancedList, position int) bool

// Undoable is a reversible deletion handed back by a DismissCallback.
type Undoable interface {
	// Title is shown on the undo bar, an empty string uses the default text.
	Title() string
	Undo()
	// Discard makes the deletion permanent.
	Discard()
}

// UndoAction adapts plain functions to Undoable.
type UndoAction struct {
	Label     string
	OnUndo    func()
	OnDiscard func()
}

func (a *UndoAction) Title() string {
	return a.Label
}

func (a *UndoAction) Undo() {
	if a.OnUndo != nil {
		a.OnUndo()
	}
}

func (a *UndoAction) Discard() {
	if a.OnDiscard != nil {
		a.OnDiscard()
	}
}

var _ Undoable = (*UndoAction)(nil)
