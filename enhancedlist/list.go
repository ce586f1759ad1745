package enhancedlist

import (
	"image"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// EnhancedList is a vertical list whose rows can be swiped away, with an undo
// bar for the deletions, and rearranged by long pressing and dragging them.
//
// All methods must be called on the fyne UI goroutine.
type EnhancedList struct {
	widget.BaseWidget

	source     DataSource
	ids        StableIDSource
	rearranger Rearranger

	list    *widget.List
	overlay *hoverOverlay
	bar     *undoBar
	body    *fyne.Container

	gesture     *gestureClassifier
	undo        *undoStack
	dismissAnim *dismissAnimator
	reorder     *reorderEngine
	anim        animator
	schedule    func(d time.Duration, fn func())

	onDismiss   DismissCallback
	shouldSwipe ShouldSwipeCallback
	swipeTarget func(item fyne.CanvasObject) fyne.CanvasObject
	rtl         func() bool

	swipeEnabled     bool
	rearrangeEnabled bool
	inputDisabled    bool

	rows       map[*row]struct{}
	bound      map[int]*row
	heights    map[int]float32
	itemHeight float32

	gestureRow   *row
	pressGen     uint64
	mobileID     int64
	mobileActive bool
}

// New creates a list showing the rows of source. Swiping and rearranging
// start disabled.
func New(source DataSource) *EnhancedList {
	l := &EnhancedList{
		gesture:  newGestureClassifier(),
		undo:     newUndoStack(),
		anim:     fyneAnimator{},
		schedule: scheduleOnMain,
		rows:     make(map[*row]struct{}),
		bound:    make(map[int]*row),
		heights:  make(map[int]float32),
	}
	l.bindSource(source)

	l.dismissAnim = newDismissAnimator(l, l.anim)
	l.reorder = newReorderEngine(l, l.anim)
	l.undo.onChange = l.undoChanged

	l.list = widget.NewList(l.length, l.createRow, l.updateRow)
	l.overlay = newHoverOverlay(l.list)
	l.bar = newUndoBar(l.Undo)
	l.body = container.NewBorder(nil, l.bar, nil, nil, l.overlay)

	l.ExtendBaseWidget(l)
	return l
}

func (l *EnhancedList) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(l.body)
}

// setAnimator replaces the frame driver of every animation.
func (l *EnhancedList) setAnimator(a animator) {
	l.anim = a
	l.dismissAnim.anim = a
	l.reorder.anim = a
}

func (l *EnhancedList) setScheduler(schedule func(d time.Duration, fn func())) {
	l.schedule = schedule
	l.undo.schedule = schedule
}

// SetDataSource binds a new data source. When rearranging is enabled the
// source must also implement StableIDSource and Rearranger. Dismiss
// animations still running are finished against the previous source first.
func (l *EnhancedList) SetDataSource(source DataSource) error {
	if source == nil {
		return configError("SetDataSource", "data source is nil")
	}
	if l.rearrangeEnabled {
		if _, _, ok := rearrangeable(source); !ok {
			return configError("SetDataSource", "rearranging is enabled and the data source does not implement StableIDSource and Rearranger")
		}
	}

	l.abortGesture()
	l.reorder.reset()
	// Rows already swiped away belong to the old source.
	l.dismissAnim.complete()
	l.bindSource(source)
	l.heights = make(map[int]float32)
	l.bound = make(map[int]*row)
	l.list.Refresh()
	return nil
}

func (l *EnhancedList) bindSource(source DataSource) {
	l.source = source
	l.ids, _ = source.(StableIDSource)
	l.rearranger, _ = source.(Rearranger)
	l.itemHeight = 0
}

func rearrangeable(source DataSource) (StableIDSource, Rearranger, bool) {
	ids, ok := source.(StableIDSource)
	if !ok {
		return nil, nil, false
	}
	r, ok := source.(Rearranger)
	return ids, r, ok
}

// SetDismissCallback registers the callback that removes a dismissed row.
// Clearing it also disables swipe to dismiss.
func (l *EnhancedList) SetDismissCallback(cb DismissCallback) {
	l.onDismiss = cb
	if cb == nil {
		l.swipeEnabled = false
	}
}

// SetShouldSwipeCallback lets the host refuse swiping of single rows.
func (l *EnhancedList) SetShouldSwipeCallback(cb ShouldSwipeCallback) {
	l.shouldSwipe = cb
}

// EnableSwipeToDismiss fails with a ConfigurationError when no dismiss
// callback has been set.
func (l *EnhancedList) EnableSwipeToDismiss() error {
	if l.onDismiss == nil {
		return configError("EnableSwipeToDismiss", "no dismiss callback set")
	}
	l.swipeEnabled = true
	return nil
}

func (l *EnhancedList) DisableSwipeToDismiss() {
	l.swipeEnabled = false
}

// EnableRearranging fails with a ConfigurationError when the data source
// does not implement StableIDSource and Rearranger.
func (l *EnhancedList) EnableRearranging() error {
	if l.source == nil {
		return configError("EnableRearranging", "no data source set")
	}
	if _, _, ok := rearrangeable(l.source); !ok {
		return configError("EnableRearranging", "data source does not implement StableIDSource and Rearranger")
	}
	l.rearrangeEnabled = true
	return nil
}

// DisableRearranging drops a drag in progress immediately.
func (l *EnhancedList) DisableRearranging() {
	l.rearrangeEnabled = false
	if l.reorder.active() {
		l.abortGesture()
		l.reorder.reset()
	}
}

// SetSwipeDirection restricts the swipes that dismiss a row.
func (l *EnhancedList) SetSwipeDirection(dir SwipeDirection) {
	l.gesture.direction = dir
}

// SetUndoStyle changes how pending deletions are undone. Deletions pending
// under the previous style are made permanent.
func (l *EnhancedList) SetUndoStyle(style UndoStyle) {
	l.undo.setStyle(style)
}

// SetUndoHideDelay sets how long the undo bar stays up. Non positive values
// restore the default of five seconds.
func (l *EnhancedList) SetUndoHideDelay(d time.Duration) {
	if d <= 0 {
		d = defaultUndoHideDelay
	}
	l.undo.delay = d
}

// SetRequireTouchBeforeDismiss controls whether the undo countdown only
// starts once the user touches the list again. It is on by default.
func (l *EnhancedList) SetRequireTouchBeforeDismiss(require bool) {
	l.undo.requireTouch = require
	if !require && l.undo.size() > 0 {
		l.undo.generation++
		l.undo.arm()
	}
}

// SetSwipeTarget picks the part of each row that moves with a swipe. The
// function receives the item created by the data source. Nil moves the
// whole row.
func (l *EnhancedList) SetSwipeTarget(target func(item fyne.CanvasObject) fyne.CanvasObject) {
	l.swipeTarget = target
	for r := range l.rows {
		r.rest()
		r.target = l.targetFor(r.content)
	}
}

// SetRightToLeft sets how the layout direction is read. It is sampled at
// the start of every gesture.
func (l *EnhancedList) SetRightToLeft(isRTL func() bool) {
	l.rtl = isRTL
}

func (l *EnhancedList) isRTL() bool {
	return l.rtl != nil && l.rtl()
}

// RefreshData rebinds every visible row after the data source changed.
func (l *EnhancedList) RefreshData() {
	l.list.Refresh()
}

// Delete dismisses the row at position as if it had been swiped towards the
// trailing edge.
func (l *EnhancedList) Delete(position int) error {
	if n := l.length(); position < 0 || position >= n {
		return &BoundsError{Position: position, Length: n}
	}
	if l.onDismiss == nil {
		return configError("Delete", "no dismiss callback set")
	}
	if l.reorder.active() {
		return configError("Delete", "rows are being rearranged")
	}

	if r := l.viewFor(position); r != nil {
		l.dismissAnim.slideOut(r, position, r.Size().Width, !l.isRTL())
		return nil
	}
	l.dismissAnim.dismissNow(position)
	return nil
}

// Undo acts like pressing the undo button.
func (l *EnhancedList) Undo() {
	l.undo.undo()
}

// DiscardUndo makes every pending deletion permanent. Hosts must call it
// before the list goes away, for example from the window close handler.
func (l *EnhancedList) DiscardUndo() {
	l.undo.discardAll()
}

// PendingUndos returns how many deletions can still be undone.
func (l *EnhancedList) PendingUndos() int {
	return l.undo.size()
}

// Presses on rows reach the rows, these catch the rest of the list and the
// undo bar so any touch restarts the undo countdown.

func (l *EnhancedList) MouseDown(*desktop.MouseEvent) {
	l.undo.touched()
}

func (l *EnhancedList) MouseUp(*desktop.MouseEvent) {}

func (l *EnhancedList) TouchDown(*mobile.TouchEvent) {
	l.undo.touched()
}

func (l *EnhancedList) TouchUp(*mobile.TouchEvent) {}

func (l *EnhancedList) TouchCancel(*mobile.TouchEvent) {}

func (l *EnhancedList) Tapped(*fyne.PointEvent) {
	l.undo.touched()
}

func (l *EnhancedList) undoChanged() {
	if l.undo.size() == 0 {
		l.bar.Hide()
	} else {
		l.bar.set(l.undo.message())
		l.bar.Show()
	}
	l.body.Refresh()
}

func (l *EnhancedList) createRow() fyne.CanvasObject {
	r := newRow(l, l.source.CreateItem())
	r.target = l.targetFor(r.content)
	l.rows[r] = struct{}{}
	return r
}

func (l *EnhancedList) targetFor(content fyne.CanvasObject) fyne.CanvasObject {
	if l.swipeTarget == nil {
		return nil
	}
	t := l.swipeTarget(content)
	if t == content {
		return nil
	}
	return t
}

func (l *EnhancedList) updateRow(id widget.ListItemID, o fyne.CanvasObject) {
	r := o.(*row)
	if old, ok := l.bound[r.position]; ok && old == r {
		delete(l.bound, r.position)
	}
	r.position = id
	l.bound[id] = r

	if id >= l.length() {
		return
	}
	l.source.UpdateItem(id, r.content)

	if r != l.gestureRow && !l.dismissAnim.isAnimating(r) {
		r.rest()
	}
	r.setHidden(l.mobileActive && l.stableID(id) == l.mobileID)
}

// viewFor returns the row bound to position if it is on screen.
func (l *EnhancedList) viewFor(position int) *row {
	r, ok := l.bound[position]
	if !ok || r.position != position {
		return nil
	}
	if _, visible := l.rowBounds(position); !visible {
		return nil
	}
	return r
}

func (l *EnhancedList) pointerDown(r *row, ev pointerEvent) {
	l.undo.touched()
	if l.inputDisabled || l.reorder.active() || l.dismissAnim.isAnimating(r) {
		return
	}
	pos := r.position
	if pos < 0 || pos >= l.length() {
		return
	}

	swipe := l.swipeEnabled && (l.shouldSwipe == nil || l.shouldSwipe(l, pos))
	if !l.gesture.down(ev, pos, r.Size().Width, l.isRTL(), swipe) {
		return
	}
	l.gestureRow = r
	if l.rearrangeEnabled {
		l.armLongPress()
	}
}

func (l *EnhancedList) armLongPress() {
	l.pressGen++
	gen := l.pressGen
	l.schedule(longPressDelay, func() {
		if gen == l.pressGen {
			l.longPressed()
		}
	})
}

func (l *EnhancedList) longPressed() {
	if !l.rearrangeEnabled || l.dismissAnim.busy() || !l.gesture.promoteToDrag() {
		return
	}
	if !l.reorder.start(l.gesture.position, l.gesture.last.Y) {
		l.abortGesture()
	}
}

func (l *EnhancedList) pointerMove(ev pointerEvent) {
	prev := l.gesture.last
	intent, fb := l.gesture.move(ev)

	switch intent {
	case intentSwipe:
		l.pressGen++
		if r := l.gestureRow; r != nil {
			r.setTranslation(fb.translation)
			r.setAlpha(fb.alpha)
		}
	case intentScroll:
		l.pressGen++
		// Rows take the drag from the scroller, pan it for touch input.
		if fyne.CurrentDevice().IsMobile() {
			l.scrollBy(prev.Y - ev.pos.Y)
		}
	case intentDrag:
		l.reorder.move(ev.pos.Y)
	}
}

func (l *EnhancedList) pointerUp(ev pointerEvent) {
	l.pressGen++
	if l.gesture.mode == gestureDragging {
		l.gesture.reset()
		l.gestureRow = nil
		l.reorder.end()
		return
	}

	r, pos := l.gestureRow, l.gesture.position
	rel := l.gesture.up(ev)
	l.gestureRow = nil
	if r == nil {
		return
	}

	if rel.commit && l.swipeEnabled && l.onDismiss != nil && r.position == pos {
		l.dismissAnim.slideOut(r, pos, r.Size().Width, rel.toRight)
		return
	}
	l.settleRow(r)
}

func (l *EnhancedList) pointerCancel() {
	l.pressGen++
	r := l.gestureRow
	l.gestureRow = nil
	if l.gesture.cancel() == gestureDragging {
		l.reorder.cancel()
		return
	}
	if r != nil {
		r.rest()
	}
}

// abortGesture forgets the tracked gesture and snaps its row back.
func (l *EnhancedList) abortGesture() {
	l.pressGen++
	l.gesture.reset()
	if r := l.gestureRow; r != nil && !l.dismissAnim.isAnimating(r) {
		r.rest()
	}
	l.gestureRow = nil
}

// settleRow animates a released row that was not dismissed back to rest.
func (l *EnhancedList) settleRow(r *row) {
	from, fromAlpha := r.translation(), r.alpha()
	if from == 0 && fromAlpha == 1 {
		return
	}
	l.anim.animate(moveDuration, func(p float32) {
		r.setTranslation(lerp(from, 0, p))
		r.setAlpha(lerp(fromAlpha, 1, p))
	}, nil)
}

// Geometry follows the widget.List layout: every row is the template height
// unless resized, separated by the theme padding.

func (l *EnhancedList) length() int {
	if l.source == nil {
		return 0
	}
	return l.source.Length()
}

func (l *EnhancedList) templateHeight() float32 {
	if l.itemHeight == 0 && l.source != nil {
		l.itemHeight = l.source.CreateItem().MinSize().Height
	}
	return l.itemHeight
}

func (l *EnhancedList) padding() float32 {
	return l.list.Theme().Size(theme.SizeNamePadding)
}

func (l *EnhancedList) rowHeight(position int) float32 {
	if h, ok := l.heights[position]; ok {
		return h
	}
	return l.templateHeight()
}

func (l *EnhancedList) rowTop(position int) float32 {
	base := l.templateHeight()
	top := float32(position) * (base + l.padding())
	for p, h := range l.heights {
		if p < position {
			top += h - base
		}
	}
	return top
}

func (l *EnhancedList) rowBounds(position int) (bounds, bool) {
	y := l.rowTop(position) - l.list.GetScrollOffset()
	b := bounds{
		pos:  fyne.NewPos(0, y),
		size: fyne.NewSize(l.list.Size().Width, l.rowHeight(position)),
	}
	visible := position >= 0 && position < l.length() &&
		b.bottom() > 0 && b.top() < l.viewportHeight()
	return b, visible
}

func (l *EnhancedList) viewportHeight() float32 {
	return l.list.Size().Height
}

func (l *EnhancedList) maxScrollOffset() float32 {
	n := l.length()
	if n == 0 {
		return 0
	}
	// The last row has no separator below it.
	max := l.rowTop(n) - l.padding() - l.viewportHeight()
	if max < 0 {
		return 0
	}
	return max
}

func (l *EnhancedList) canScroll(dy float32) bool {
	offset := l.list.GetScrollOffset()
	if dy < 0 {
		return offset > 0
	}
	return dy > 0 && offset < l.maxScrollOffset()
}

func (l *EnhancedList) scrollBy(dy float32) float32 {
	offset := l.list.GetScrollOffset()
	next := offset + dy
	if max := l.maxScrollOffset(); next > max {
		next = max
	}
	if next < 0 {
		next = 0
	}
	if next == offset {
		return 0
	}
	l.list.ScrollToOffset(next)
	return l.list.GetScrollOffset() - offset
}

func (l *EnhancedList) setRowHeight(position int, height float32) {
	if height == l.templateHeight() {
		delete(l.heights, position)
	} else {
		l.heights[position] = height
	}
	l.list.SetItemHeight(position, height)
}

func (l *EnhancedList) dismiss(position int) {
	if l.onDismiss == nil || position >= l.length() {
		return
	}
	l.undo.push(l.onDismiss(l, position))
}

func (l *EnhancedList) dismissFlushed() {
	l.list.Refresh()
}

func (l *EnhancedList) stableID(position int) int64 {
	if l.ids == nil {
		return int64(position)
	}
	return l.ids.StableID(position)
}

func (l *EnhancedList) positionForID(id int64) (int, bool) {
	n := l.length()
	for i := 0; i < n; i++ {
		if l.stableID(i) == id {
			return i, true
		}
	}
	return -1, false
}

func (l *EnhancedList) swapRows(i, j int) {
	if l.rearranger == nil {
		return
	}
	l.rearranger.SwapElements(i, j)

	hi, iok := l.heights[i]
	hj, jok := l.heights[j]
	delete(l.heights, i)
	delete(l.heights, j)
	if iok {
		l.heights[j] = hi
	}
	if jok {
		l.heights[i] = hj
	}

	l.list.RefreshItem(i)
	l.list.RefreshItem(j)
}

func (l *EnhancedList) setMobile(id int64, active bool) {
	l.mobileID, l.mobileActive = id, active
	n := l.length()
	for pos, r := range l.bound {
		if r.position != pos || pos >= n {
			continue
		}
		r.setHidden(active && l.stableID(pos) == id)
	}
}

func (l *EnhancedList) setRowOffset(id int64, dy float32) {
	pos, ok := l.positionForID(id)
	if !ok {
		return
	}
	if r := l.viewFor(pos); r != nil {
		r.setOffsetY(dy)
	}
}

func (l *EnhancedList) snapshot(position int) image.Image {
	r := l.viewFor(position)
	if r == nil {
		return nil
	}
	return captureRow(r)
}

func (l *EnhancedList) showHover(img image.Image, b bounds) {
	l.overlay.show(img, b)
}

func (l *EnhancedList) moveHover(b bounds) {
	l.overlay.place(b)
}

func (l *EnhancedList) hideHover() {
	l.overlay.hide()
}

func (l *EnhancedList) setInputEnabled(enabled bool) {
	l.inputDisabled = !enabled
}

func (l *EnhancedList) startedRearranging() {
	if l.rearranger != nil {
		l.rearranger.OnStartedRearranging()
	}
}

func (l *EnhancedList) finishedRearranging() {
	if l.rearranger != nil {
		l.rearranger.OnFinishedRearranging()
	}
}

var (
	_ fyne.Widget       = (*EnhancedList)(nil)
	_ fyne.Tappable     = (*EnhancedList)(nil)
	_ desktop.Mouseable = (*EnhancedList)(nil)
	_ mobile.Touchable  = (*EnhancedList)(nil)
	_ dismissHost       = (*EnhancedList)(nil)
	_ reorderHost       = (*EnhancedList)(nil)
)
