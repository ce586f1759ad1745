package enhancedlist

import (
	"image"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"golang.org/x/image/draw"
)

// hoverOverlay draws the list with the floating hover cell on top of it.
type hoverOverlay struct {
	widget.BaseWidget
	content fyne.CanvasObject

	image *canvas.Image
	frame *canvas.Rectangle
	cell  fyne.CanvasObject
}

func newHoverOverlay(content fyne.CanvasObject) *hoverOverlay {
	h := &hoverOverlay{
		content: content,
		image:   canvas.NewImageFromImage(nil),
		frame:   canvas.NewRectangle(color.Transparent),
	}
	h.image.FillMode = canvas.ImageFillStretch

	// Used when no snapshot could be taken.
	h.frame.StrokeColor = theme.Color(theme.ColorNamePrimary)
	h.frame.StrokeWidth = hoverBorderWidth
	r, g, b, _ := theme.Color(theme.ColorNameFocus).RGBA()
	h.frame.FillColor = color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 64}

	h.image.Hide()
	h.frame.Hide()
	h.ExtendBaseWidget(h)
	return h
}

func (h *hoverOverlay) show(img image.Image, b bounds) {
	if img != nil {
		h.image.Image = img
		h.image.Show()
		h.frame.Hide()
		h.cell = h.image
	} else {
		h.image.Hide()
		h.frame.Show()
		h.cell = h.frame
	}
	h.place(b)
}

func (h *hoverOverlay) place(b bounds) {
	if !h.showing() {
		return
	}
	h.cell.Move(b.pos)
	h.cell.Resize(b.size)
	h.cell.Refresh()
}

func (h *hoverOverlay) hide() {
	if !h.showing() {
		return
	}
	h.cell = nil
	h.image.Image = nil
	h.image.Hide()
	h.frame.Hide()
	h.Refresh()
}

func (h *hoverOverlay) showing() bool {
	return h.cell != nil
}

func (h *hoverOverlay) CreateRenderer() fyne.WidgetRenderer {
	return &hoverOverlayRenderer{h: h}
}

type hoverOverlayRenderer struct {
	h *hoverOverlay
}

func (r *hoverOverlayRenderer) Layout(size fyne.Size) {
	r.h.content.Resize(size)
	r.h.content.Move(fyne.NewPos(0, 0))
}

func (r *hoverOverlayRenderer) MinSize() fyne.Size {
	return r.h.content.MinSize()
}

func (r *hoverOverlayRenderer) Refresh() {
	r.h.image.Refresh()
	r.h.frame.Refresh()
}

func (r *hoverOverlayRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.h.content, r.h.frame, r.h.image}
}

func (r *hoverOverlayRenderer) Destroy() {}

// captureRow returns what obj currently shows on its canvas, framed with the
// hover border, or nil when obj is not on a canvas.
func captureRow(obj fyne.CanvasObject) image.Image {
	app := fyne.CurrentApp()
	if app == nil {
		return nil
	}
	d := app.Driver()
	c := d.CanvasForObject(obj)
	if c == nil {
		return nil
	}

	full := c.Capture()
	if full == nil {
		fyne.LogError("could not capture canvas for hover cell", nil)
		return nil
	}

	scale := c.Scale()
	pos := d.AbsolutePositionForObject(obj)
	size := obj.Size()
	region := image.Rect(
		int(pos.X*scale), int(pos.Y*scale),
		int(math.Ceil(float64((pos.X+size.Width)*scale))), int(math.Ceil(float64((pos.Y+size.Height)*scale))),
	).Intersect(full.Bounds())
	if region.Empty() {
		return nil
	}

	logical := image.Pt(int(math.Ceil(float64(size.Width))), int(math.Ceil(float64(size.Height))))
	return frameSnapshot(full, region, logical, int(hoverBorderWidth), theme.Color(theme.ColorNamePrimary))
}

// frameSnapshot copies region of src into a new image of the given size and
// draws a border of width pixels around it.
func frameSnapshot(src image.Image, region image.Rectangle, size image.Point, width int, c color.Color) *image.RGBA {
	if size.X <= 0 || size.Y <= 0 {
		size = region.Size()
	}
	dst := image.NewRGBA(image.Rectangle{Max: size})

	if region.Size() == size {
		draw.Copy(dst, image.Point{}, src, region, draw.Src, nil)
	} else {
		// Captures are in device pixels, the hover cell is drawn in canvas units.
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, region, draw.Src, nil)
	}

	b := dst.Bounds()
	border := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+width),
		image.Rect(b.Min.X, b.Max.Y-width, b.Max.X, b.Max.Y),
		image.Rect(b.Min.X, b.Min.Y, b.Min.X+width, b.Max.Y),
		image.Rect(b.Max.X-width, b.Min.Y, b.Max.X, b.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(b), border, image.Point{}, draw.Src)
	}
	return dst
}
