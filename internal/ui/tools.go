package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Actions are the toolbar callbacks that reach outside the board.
type Actions struct {
	Clear  func()
	Save   func()
	Load   func()
	Export func()
}

// palette pairs the board's color names with swatch colors.
var palette = []struct {
	name string
	c    color.Color
}{
	{"black", color.Black},
	{"red", color.NRGBA{R: 255, A: 255}},
	{"green", color.NRGBA{G: 255, A: 255}},
	{"blue", color.NRGBA{B: 255, A: 255}},
	{"yellow", color.NRGBA{R: 255, G: 255, A: 255}},
}

type colorSwatch struct {
	widget.BaseWidget
	Name     string
	Color    color.Color
	OnTapped func(name string)
}

func newColorSwatch(name string, c color.Color, tapped func(string)) *colorSwatch {
	s := &colorSwatch{Name: name, Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Name)
	}
}

// penState remembers the color to return to after erasing.
type penState struct {
	color string
	width float32
}

func NewToolbar(board *BoardWidget, colorName string, width float32, actions Actions) fyne.CanvasObject {
	pen := &penState{color: colorName, width: width}
	board.SetStyle(pen.color, pen.width)

	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() {
			board.SetStyle(pen.color, pen.width)
		}), // Pen
		widget.NewToolbarAction(theme.ContentClearIcon(), func() {
			board.SetStyle("white", 20)
		}), // Eraser
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DeleteIcon(), orNop(actions.Clear)),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), orNop(actions.Save)),
		widget.NewToolbarAction(theme.FolderOpenIcon(), orNop(actions.Load)),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), orNop(actions.Export)),
	)

	onColorTapped := func(name string) {
		pen.color = name
		board.SetStyle(pen.color, pen.width)
	}
	colorBox := container.NewHBox()
	for _, p := range palette {
		colorBox.Add(newColorSwatch(p.name, p.c, onColorTapped))
	}

	strokeSlider := widget.NewSlider(1.0, 50.0)
	strokeSlider.SetValue(float64(width))
	strokeSlider.OnChanged = func(val float64) {
		pen.width = float32(val)
		board.SetStyle(pen.color, pen.width)
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), strokeSlider)

	return container.NewHBox(
		widget.NewLabel("Tool:"),
		tb,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		layout.NewSpacer(),
	)
}

func orNop(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	return fn
}
