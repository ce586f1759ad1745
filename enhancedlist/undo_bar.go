package enhancedlist

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// undoBar is the affordance shown under the list while deletions can still
// be undone.
type undoBar struct {
	widget.BaseWidget

	bg     *canvas.Rectangle
	label  *widget.Label
	button *widget.Button
}

func newUndoBar(onUndo func()) *undoBar {
	b := &undoBar{
		bg:     canvas.NewRectangle(theme.Color(theme.ColorNameOverlayBackground)),
		label:  widget.NewLabel(""),
		button: widget.NewButton("", onUndo),
	}
	b.label.Truncation = fyne.TextTruncateEllipsis
	b.button.Importance = widget.LowImportance
	b.ExtendBaseWidget(b)
	b.Hide()
	return b
}

func (b *undoBar) set(text, button string) {
	b.label.SetText(text)
	b.button.SetText(button)
}

func (b *undoBar) CreateRenderer() fyne.WidgetRenderer {
	return &undoBarRenderer{bar: b}
}

type undoBarRenderer struct {
	bar *undoBar
}

func (r *undoBarRenderer) Layout(size fyne.Size) {
	b := r.bar
	b.bg.Resize(size)

	pad := theme.Padding()
	btn := b.button.MinSize()
	b.button.Resize(fyne.NewSize(btn.Width, size.Height-pad*2))
	b.button.Move(fyne.NewPos(size.Width-btn.Width-pad, pad))

	b.label.Resize(fyne.NewSize(size.Width-btn.Width-pad*3, size.Height))
	b.label.Move(fyne.NewPos(pad, 0))
}

func (r *undoBarRenderer) MinSize() fyne.Size {
	b := r.bar
	pad := theme.Padding()
	label, btn := b.label.MinSize(), b.button.MinSize()
	return fyne.NewSize(label.Width+btn.Width+pad*3, fyne.Max(label.Height, btn.Height+pad*2))
}

func (r *undoBarRenderer) Refresh() {
	r.bar.bg.FillColor = theme.Color(theme.ColorNameOverlayBackground)
	r.bar.bg.Refresh()
	r.bar.label.Refresh()
	r.bar.button.Refresh()
	r.Layout(r.bar.Size())
}

func (r *undoBarRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bar.bg, r.bar.label, r.bar.button}
}

func (r *undoBarRenderer) Destroy() {}
