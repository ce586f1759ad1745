package enhancedlist

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// row wraps one item created by the data source. It owns the swipe offset,
// the fade and the vertical slide used while another row is dragged past it.
type row struct {
	widget.BaseWidget
	list    *EnhancedList
	content fyne.CanvasObject

	// target is the sub view that follows a swipe, nil for the whole row.
	target     fyne.CanvasObject
	targetBase fyne.Position

	veil *canvas.Rectangle

	position int
	dx       float32
	offsetY  float32
	opacity  float32
	hidden   bool

	lastPos fyne.Position
}

func newRow(l *EnhancedList, content fyne.CanvasObject) *row {
	r := &row{
		list:     l,
		content:  content,
		veil:     canvas.NewRectangle(color.Transparent),
		position: -1,
		opacity:  1,
	}
	r.veil.Hide()
	r.ExtendBaseWidget(r)
	return r
}

func (r *row) CreateRenderer() fyne.WidgetRenderer {
	return &rowRenderer{row: r}
}

func (r *row) translation() float32 {
	return r.dx
}

func (r *row) setTranslation(dx float32) {
	if r.target != nil {
		if r.dx == 0 {
			r.targetBase = r.target.Position()
		}
		r.target.Move(r.targetBase.AddXY(dx, 0))
	}
	r.dx = dx
	r.Refresh()
}

func (r *row) alpha() float32 {
	return r.opacity
}

func (r *row) setAlpha(alpha float32) {
	r.opacity = clamp32(alpha, 0, 1)
	r.Refresh()
}

func (r *row) height() float32 {
	return r.Size().Height
}

func (r *row) setOffsetY(dy float32) {
	if r.offsetY == dy {
		return
	}
	r.offsetY = dy
	r.Refresh()
}

func (r *row) setHidden(hidden bool) {
	if r.hidden == hidden {
		return
	}
	r.hidden = hidden
	r.Refresh()
}

// rest puts the row back to its idle look without animating.
func (r *row) rest() {
	if r.dx == 0 && r.opacity == 1 && r.offsetY == 0 {
		return
	}
	r.setTranslation(0)
	r.opacity = 1
	r.offsetY = 0
	r.Refresh()
}

func (r *row) event(pos fyne.Position) pointerEvent {
	r.lastPos = pos
	return pointerEvent{id: primaryPointer, pos: pos, at: time.Now()}
}

func (r *row) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	r.list.pointerDown(r, r.event(e.AbsolutePosition))
}

func (r *row) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	r.list.pointerUp(r.event(e.AbsolutePosition))
}

func (r *row) TouchDown(e *mobile.TouchEvent) {
	r.list.pointerDown(r, r.event(e.AbsolutePosition))
}

func (r *row) TouchUp(e *mobile.TouchEvent) {
	r.list.pointerUp(r.event(e.AbsolutePosition))
}

func (r *row) TouchCancel(*mobile.TouchEvent) {
	r.list.pointerCancel()
}

func (r *row) Dragged(e *fyne.DragEvent) {
	r.list.pointerMove(r.event(e.AbsolutePosition))
}

// DragEnd carries no position, the release happens where the last drag
// event was.
func (r *row) DragEnd() {
	r.list.pointerUp(r.event(r.lastPos))
}

type rowRenderer struct {
	row *row
}

func (r *rowRenderer) Layout(size fyne.Size) {
	row := r.row
	if row.target == nil {
		row.content.Move(fyne.NewPos(row.dx, row.offsetY))
	} else {
		row.content.Move(fyne.NewPos(0, row.offsetY))
	}
	row.content.Resize(size)

	veilPos, veilSize := fyne.NewPos(row.dx, row.offsetY), size
	if row.target != nil {
		veilPos = row.targetOffset().AddXY(0, row.offsetY)
		veilSize = row.target.Size()
	}
	row.veil.Move(veilPos)
	row.veil.Resize(veilSize)
}

// targetOffset is where the swipe target is drawn, relative to the row.
func (r *row) targetOffset() fyne.Position {
	app := fyne.CurrentApp()
	if app == nil {
		return r.target.Position()
	}
	d := app.Driver()
	return d.AbsolutePositionForObject(r.target).Subtract(d.AbsolutePositionForObject(r))
}

func (r *rowRenderer) MinSize() fyne.Size {
	return r.row.content.MinSize()
}

func (r *rowRenderer) Refresh() {
	row := r.row
	if row.hidden {
		row.content.Hide()
		row.veil.Hide()
		return
	}
	row.content.Show()

	if row.opacity < 1 {
		bg := theme.Color(theme.ColorNameBackground)
		cr, cg, cb, _ := bg.RGBA()
		row.veil.FillColor = color.NRGBA{R: uint8(cr >> 8), G: uint8(cg >> 8), B: uint8(cb >> 8), A: uint8((1 - row.opacity) * 255)}
		row.veil.Show()
	} else {
		row.veil.Hide()
	}

	r.Layout(row.Size())
	row.veil.Refresh()
	canvas.Refresh(row.content)
}

func (r *rowRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.row.content, r.row.veil}
}

func (r *rowRenderer) Destroy() {}

var (
	_ fyne.Draggable    = (*row)(nil)
	_ desktop.Mouseable = (*row)(nil)
	_ mobile.Touchable  = (*row)(nil)
	_ rowView           = (*row)(nil)
)
