package ui

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/go-gl/mathgl/mgl64"

	"SpatialBoard/internal/export"
	"SpatialBoard/internal/scene"
	"SpatialBoard/internal/state"
	"SpatialBoard/internal/touch"
)

// MouseProxy is the proxy toucher the desktop mouse draws with.
const MouseProxy scene.ProxyID = "mouse"

// pixelsPerMeter converts between board space and screen pixels.
const pixelsPerMeter = 1000.0

// BoardWidget shows every committed stroke plus the lines currently being
// drawn, and turns mouse drags into proxy-touch events.
type BoardWidget struct {
	widget.BaseWidget
	router  *touch.Router
	scene   *scene.Scene
	strokes *state.StrokeLog

	mu         sync.RWMutex
	panX, panY float32
	drawing    bool

	statusBar *widget.Label
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)

func NewBoardWidget(r *touch.Router, s *scene.Scene, strokes *state.StrokeLog) *BoardWidget {
	b := &BoardWidget{
		router:    r,
		scene:     s,
		strokes:   strokes,
		statusBar: widget.NewLabel("Ready"),
	}
	b.ExtendBaseWidget(b)
	return b
}

// ToSpace maps a widget position to a point on the board plane.
func ToSpace(pos fyne.Position, panX, panY float32) mgl64.Vec3 {
	return mgl64.Vec3{
		float64(pos.X-panX) / pixelsPerMeter,
		-float64(pos.Y-panY) / pixelsPerMeter,
		0,
	}
}

// ToScreen is the inverse of ToSpace, dropping depth.
func ToScreen(p mgl64.Vec3, panX, panY float32) fyne.Position {
	return fyne.NewPos(float32(p.X()*pixelsPerMeter)+panX, float32(-p.Y()*pixelsPerMeter)+panY)
}

func (b *BoardWidget) pan() (float32, float32) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.panX, b.panY
}

// SetStatus can be called from any goroutine.
func (b *BoardWidget) SetStatus(text string) {
	fyne.Do(func() {
		b.statusBar.SetText(text)
	})
}

func (b *BoardWidget) StatusBar() *widget.Label { return b.statusBar }

// RefreshAsync schedules a redraw from any goroutine.
func (b *BoardWidget) RefreshAsync() {
	fyne.Do(b.Refresh)
}

// SetStyle applies color and width to every drawer this participant owns.
func (b *BoardWidget) SetStyle(colorName string, width float32) {
	for _, d := range b.scene.Drawers() {
		if d.HasAuthority() {
			d.SetStyle(colorName, width)
		}
	}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	panX, panY := b.pan()
	b.mu.Lock()
	b.drawing = true
	b.mu.Unlock()
	b.router.ProxyContactStart(MouseProxy, ToSpace(e.Position, panX, panY))
	b.Refresh()
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	b.mu.Lock()
	wasDrawing := b.drawing
	b.drawing = false
	b.mu.Unlock()
	if e.Button == desktop.MouseButtonPrimary && wasDrawing {
		b.router.ProxyContactEnd(MouseProxy)
		b.Refresh()
	}
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.mu.Lock()
	drawing := b.drawing
	if !drawing {
		b.panX += e.Dragged.DX
		b.panY += e.Dragged.DY
	}
	panX, panY := b.panX, b.panY
	b.mu.Unlock()

	if drawing {
		b.router.ProxyContactStay(MouseProxy, ToSpace(e.Position, panX, panY))
	}
	b.Refresh()
}

func (b *BoardWidget) Scrolled(e *fyne.ScrollEvent) {
	b.mu.Lock()
	b.panX += e.Scrolled.DX
	b.panY += e.Scrolled.DY
	b.mu.Unlock()
	b.Refresh()
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (b *BoardWidget) MouseOut()                      {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}
func (b *BoardWidget) DragEnd()                       {}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	objects := []fyne.CanvasObject{r.background}
	panX, panY := r.board.pan()

	for _, st := range r.board.strokes.Strokes() {
		objects = appendSegments(objects, st.Points, st.Color, st.Width, panX, panY)
	}
	// lines still being drawn, from the mouse and from spatial devices
	for _, d := range r.board.scene.Drawers() {
		if pts := d.Current(); len(pts) > 1 {
			objects = appendSegments(objects, pts, "black", 2, panX, panY)
		}
	}
	return objects
}

func appendSegments(objects []fyne.CanvasObject, pts []mgl64.Vec3, colorName string, width, panX, panY float32) []fyne.CanvasObject {
	rr, gg, bb := export.RGB(colorName)
	c := color.NRGBA{R: uint8(rr), G: uint8(gg), B: uint8(bb), A: 255}
	for i := 0; i < len(pts)-1; i++ {
		segment := canvas.NewLine(c)
		segment.StrokeWidth = width
		segment.Position1 = ToScreen(pts[i], panX, panY)
		segment.Position2 = ToScreen(pts[i+1], panX, panY)
		objects = append(objects, segment)
	}
	return objects
}

func (r *boardWidgetRenderer) Refresh() {
	canvas.Refresh(r.board)
}

func (r *boardWidgetRenderer) Destroy() {}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}
