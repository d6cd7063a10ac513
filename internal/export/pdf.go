package export

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/jung-kurt/gofpdf"

	"SpatialBoard/internal/scene"
)

// ErrNoStrokes is returned when there is nothing to export.
var ErrNoStrokes = errors.New("no strokes to export")

const (
	pageW  = 210.0
	pageH  = 297.0
	margin = 15.0
)

// RGB maps the board's color names to PDF draw colors.
func RGB(name string) (int, int, int) {
	switch name {
	case "red":
		return 255, 0, 0
	case "green":
		return 0, 255, 0
	case "blue":
		return 0, 0, 255
	case "yellow":
		return 255, 255, 0
	case "white":
		return 255, 255, 255
	}
	return 0, 0, 0
}

// WritePDF renders strokes projected onto the XY plane, scaled to fit an A4
// page, and writes the document to w.
func WritePDF(w io.Writer, strokes []scene.Stroke) error {
	minX, minY, maxX, maxY, ok := bounds(strokes)
	if !ok {
		return ErrNoStrokes
	}
	spanX := math.Max(maxX-minX, 1e-6)
	spanY := math.Max(maxY-minY, 1e-6)
	scale := math.Min((pageW-2*margin)/spanX, (pageH-2*margin)/spanY)

	// spatial Y points up, page Y points down
	toPage := func(x, y float64) (float64, float64) {
		return margin + (x-minX)*scale, margin + (maxY-y)*scale
	}

	p := gofpdf.New("P", "mm", "A4", "")
	p.AddPage()
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")
	for _, st := range strokes {
		r, g, b := RGB(st.Color)
		p.SetDrawColor(r, g, b)
		p.SetLineWidth(math.Max(float64(st.Width)/6, 0.2))
		for i := 1; i < len(st.Points); i++ {
			x1, y1 := toPage(st.Points[i-1].X(), st.Points[i-1].Y())
			x2, y2 := toPage(st.Points[i].X(), st.Points[i].Y())
			p.Line(x1, y1, x2, y2)
		}
	}
	if err := p.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// PDF writes strokes to a file at path.
func PDF(path string, strokes []scene.Stroke) (err error) {
	if _, _, _, _, ok := bounds(strokes); !ok {
		return ErrNoStrokes
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return WritePDF(f, strokes)
}

func bounds(strokes []scene.Stroke) (minX, minY, maxX, maxY float64, ok bool) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, st := range strokes {
		if len(st.Points) < 2 {
			continue
		}
		for _, pt := range st.Points {
			minX = math.Min(minX, pt.X())
			maxX = math.Max(maxX, pt.X())
			minY = math.Min(minY, pt.Y())
			maxY = math.Max(maxY, pt.Y())
			ok = true
		}
	}
	return minX, minY, maxX, maxY, ok
}
