package scene

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Scene is the registry of drawable surfaces currently instantiated.
// Drawers register on creation and deregister on destruction; every change
// to the set, or to the authority of a registered drawer, bumps Generation.
type Scene struct {
	mu         sync.RWMutex
	drawers    []*Drawer
	byID       map[string]*Drawer
	generation uint64
}

func New() *Scene {
	return &Scene{byID: make(map[string]*Drawer)}
}

// Add registers d. Adding an already registered drawer is a no-op.
func (s *Scene) Add(d *Drawer) {
	s.mu.Lock()
	if _, exists := s.byID[d.ID]; exists {
		s.mu.Unlock()
		return
	}
	s.drawers = append(s.drawers, d)
	s.byID[d.ID] = d
	s.generation++
	s.mu.Unlock()

	d.mu.Lock()
	d.scene = s
	d.mu.Unlock()
	log.Debug().Str("drawer", d.Name()).Msg("drawer registered")
}

// Remove deregisters the drawer with the given id and reports whether it
// was present.
func (s *Scene) Remove(id string) bool {
	s.mu.Lock()
	d, ok := s.byID[id]
	if !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.byID, id)
	for i, cur := range s.drawers {
		if cur == d {
			s.drawers = append(s.drawers[:i], s.drawers[i+1:]...)
			break
		}
	}
	s.generation++
	s.mu.Unlock()

	d.mu.Lock()
	d.scene = nil
	d.mu.Unlock()
	log.Debug().Str("drawer", d.Name()).Msg("drawer deregistered")
	return true
}

// Drawers returns the registered drawers in registration order.
func (s *Scene) Drawers() []*Drawer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Drawer, len(s.drawers))
	copy(out, s.drawers)
	return out
}

func (s *Scene) Get(id string) (*Drawer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.byID[id]
	return d, ok
}

// Contains reports whether d is currently registered.
func (s *Scene) Contains(d *Drawer) bool {
	if d == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[d.ID] == d
}

// DrawerForProxy returns the first drawer bound to the given proxy.
func (s *Scene) DrawerForProxy(id ProxyID) *Drawer {
	for _, d := range s.Drawers() {
		if pid, ok := d.ProxyID(); ok && pid == id {
			return d
		}
	}
	return nil
}

// Generation is a counter that changes whenever the drawer set or the
// authority of a registered drawer changes.
func (s *Scene) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

func (s *Scene) bump() {
	s.mu.Lock()
	s.generation++
	s.mu.Unlock()
}
