package ui

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
)

// ClearOwner drops every stroke of ownerID and the lines this participant
// is drawing.
func (b *BoardWidget) ClearOwner(ownerID string) int {
	n := b.strokes.ClearOwner(ownerID)
	for _, d := range b.scene.Drawers() {
		if d.HasAuthority() {
			d.Clear()
		}
	}
	b.Refresh()
	return n
}

func (b *BoardWidget) SaveToFile(writer io.WriteCloser) {
	defer func() {
		if err := writer.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing writer")
		}
	}()

	n, err := b.strokes.Save(writer)
	if err != nil {
		log.Error().Err(err).Msg("save failed")
		b.SetStatus("Error saving file")
		return
	}
	log.Info().Int("strokes", n).Msg("board saved")
	b.SetStatus(fmt.Sprintf("Saved %d strokes", n))
}

func (b *BoardWidget) LoadFromFile(reader io.ReadCloser) {
	defer func() {
		if err := reader.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing reader")
		}
	}()

	b.SetStatus("Loading file...")
	n, err := b.strokes.Load(reader)
	if err != nil {
		log.Error().Err(err).Msg("load failed")
		b.SetStatus("Error parsing file - invalid format")
		return
	}
	log.Info().Int("strokes", n).Msg("board loaded")
	b.SetStatus(fmt.Sprintf("Loaded %d strokes", n))
	b.RefreshAsync()
}
