package state

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"SpatialBoard/internal/scene"
)

// Entry is a committed stroke stamped with the Lamport time and site that
// produced it.
type Entry struct {
	Stroke  scene.Stroke `json:"stroke"`
	Lamport uint64       `json:"lamport"`
	Site    string       `json:"site"`
}

// StrokeLog collects every stroke committed on this board. Entries are keyed
// by stroke id, so adding the same stroke twice is harmless.
type StrokeLog struct {
	siteID  string
	clock   Clock
	entries map[string]Entry
	mu      sync.RWMutex

	// OnChange fires after the set of strokes changed.
	OnChange func()
}

func NewStrokeLog() *StrokeLog {
	return &StrokeLog{
		siteID:  uuid.NewString(),
		entries: make(map[string]Entry),
	}
}

func (l *StrokeLog) SiteID() string { return l.siteID }

// AddLocal stamps a stroke committed on this site and stores it.
func (l *StrokeLog) AddLocal(st scene.Stroke) Entry {
	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	e := Entry{Stroke: st, Lamport: l.clock.Tick(), Site: l.siteID}

	l.mu.Lock()
	l.entries[st.ID] = e
	l.mu.Unlock()

	log.Debug().Str("stroke", st.ID).Uint64("lamport", e.Lamport).Msg("local stroke logged")
	l.changed()
	return e
}

// AddRemote merges an entry produced elsewhere and reports whether it was new.
func (l *StrokeLog) AddRemote(e Entry) bool {
	l.mu.Lock()
	if _, exists := l.entries[e.Stroke.ID]; exists {
		l.mu.Unlock()
		return false
	}
	l.entries[e.Stroke.ID] = e
	l.mu.Unlock()

	l.clock.Update(e.Lamport)
	log.Debug().Str("stroke", e.Stroke.ID).Str("site", e.Site).Msg("remote stroke merged")
	l.changed()
	return true
}

// Entries returns all entries ordered by Lamport time, ties broken by site.
func (l *StrokeLog) Entries() []Entry {
	l.mu.RLock()
	out := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e)
	}
	l.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Lamport != out[j].Lamport {
			return out[i].Lamport < out[j].Lamport
		}
		return out[i].Site < out[j].Site
	})
	return out
}

func (l *StrokeLog) Strokes() []scene.Stroke {
	entries := l.Entries()
	out := make([]scene.Stroke, len(entries))
	for i, e := range entries {
		out[i] = e.Stroke
	}
	return out
}

func (l *StrokeLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Remove deletes a stroke by id.
func (l *StrokeLog) Remove(strokeID string) bool {
	l.mu.Lock()
	_, exists := l.entries[strokeID]
	delete(l.entries, strokeID)
	l.mu.Unlock()
	if exists {
		l.changed()
	}
	return exists
}

// ClearOwner removes every stroke of ownerID, or all strokes for "all".
func (l *StrokeLog) ClearOwner(ownerID string) int {
	l.mu.Lock()
	removed := 0
	for id, e := range l.entries {
		if ownerID == "all" || e.Stroke.OwnerID == ownerID {
			delete(l.entries, id)
			removed++
		}
	}
	l.mu.Unlock()
	if removed > 0 {
		log.Info().Str("owner", ownerID).Int("removed", removed).Msg("strokes cleared")
		l.changed()
	}
	return removed
}

// Save writes the log as indented JSON.
func (l *StrokeLog) Save(w io.Writer) (int, error) {
	entries := l.Entries()
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("encode stroke log: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return 0, fmt.Errorf("write stroke log: %w", err)
	}
	return len(entries), nil
}

// Load merges entries read from r and returns how many were new.
func (l *StrokeLog) Load(r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read stroke log: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return 0, fmt.Errorf("decode stroke log: %w", err)
	}
	added := 0
	for _, e := range entries {
		if e.Stroke.ID == "" {
			continue
		}
		if l.AddRemote(e) {
			added++
		}
	}
	return added, nil
}

func (l *StrokeLog) changed() {
	if l.OnChange != nil {
		l.OnChange()
	}
}
