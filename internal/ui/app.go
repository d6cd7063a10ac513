package ui

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog/log"

	"SpatialBoard/internal/export"
)

type AppConfig struct {
	ShareLink  string
	OwnerID    string
	ExportPath string
	Color      string
	Width      float32
}

// RunApp opens the board window and blocks until it is closed.
func RunApp(cfg AppConfig, board *BoardWidget) {
	myApp := app.New()
	myWindow := myApp.NewWindow("Spatial Board")
	myWindow.Resize(fyne.NewSize(1024, 768))

	actions := Actions{
		Clear: func() {
			n := board.ClearOwner(cfg.OwnerID)
			board.SetStatus(fmt.Sprintf("Cleared %d strokes", n))
		},
		Save: func() {
			dialog.ShowFileSave(func(w fyne.URIWriteCloser, err error) {
				if err != nil {
					dialog.ShowError(err, myWindow)
					return
				}
				if w != nil {
					board.SaveToFile(w)
				}
			}, myWindow)
		},
		Load: func() {
			dialog.ShowFileOpen(func(r fyne.URIReadCloser, err error) {
				if err != nil {
					dialog.ShowError(err, myWindow)
					return
				}
				if r != nil {
					board.LoadFromFile(r)
				}
			}, myWindow)
		},
		Export: func() {
			err := export.PDF(cfg.ExportPath, board.strokes.Strokes())
			switch {
			case errors.Is(err, export.ErrNoStrokes):
				board.SetStatus("Nothing to export")
			case err != nil:
				log.Error().Err(err).Str("path", cfg.ExportPath).Msg("pdf export failed")
				board.SetStatus("Export failed")
			default:
				board.SetStatus("Exported to " + cfg.ExportPath)
			}
		},
	}

	toolbar := NewToolbar(board, cfg.Color, cfg.Width, actions)
	footer := container.NewHBox(board.StatusBar())
	if cfg.ShareLink != "" {
		link := widget.NewEntry()
		link.SetText(cfg.ShareLink)
		link.Disable()
		footer.Add(widget.NewLabel("Devices connect to:"))
		footer.Add(link)
	}

	content := container.NewBorder(toolbar, footer, nil, nil, board)
	myWindow.SetContent(content)
	myWindow.ShowAndRun()
}
