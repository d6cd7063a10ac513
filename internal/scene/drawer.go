package scene

import (
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Stroke is a finished line committed by a Drawer.
type Stroke struct {
	ID       string       `json:"id"`
	OwnerID  string       `json:"owner_id"`
	DrawerID string       `json:"drawer_id"`
	Points   []mgl64.Vec3 `json:"points"`
	Color    string       `json:"color"`
	Width    float32      `json:"width"`
	Time     time.Time    `json:"time"`
}

// Drawer is a drawable surface. It owns the in-progress line and the
// strokes committed onto it. Rasterization is left to whoever consumes
// OnCommit.
type Drawer struct {
	ID   string
	Node *Node

	mu        sync.RWMutex
	scene     *Scene
	authority bool
	ownerID   string
	color     string
	width     float32
	current   *Stroke
	strokes   []Stroke

	// OnCommit is called after EndLine finishes a line with at least two
	// points. It runs outside the drawer lock.
	OnCommit func(Stroke)
}

func NewDrawer(node *Node, ownerID string) *Drawer {
	return &Drawer{
		ID:      uuid.NewString(),
		Node:    node,
		ownerID: ownerID,
		color:   "black",
		width:   3.0,
	}
}

func (d *Drawer) Name() string {
	if d.Node == nil {
		return d.ID
	}
	return d.Node.Path()
}

// HasAuthority reports whether this participant owns the drawer's
// networked state.
func (d *Drawer) HasAuthority() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.authority
}

// SetAuthority changes the authority flag. The owning scene's generation is
// bumped when the flag actually changes.
func (d *Drawer) SetAuthority(v bool) {
	d.mu.Lock()
	changed := d.authority != v
	d.authority = v
	s := d.scene
	d.mu.Unlock()
	if changed && s != nil {
		s.bump()
	}
}

// HasProxyAncestor reports whether the drawer is bound to a proxy-input node.
func (d *Drawer) HasProxyAncestor() bool {
	_, ok := d.ProxyID()
	return ok
}

func (d *Drawer) ProxyID() (ProxyID, bool) {
	if d.Node == nil {
		return "", false
	}
	return d.Node.ProxyAncestor()
}

func (d *Drawer) SetStyle(color string, width float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.color = color
	d.width = width
}

// AddPoint extends the in-progress line, starting one if needed.
func (d *Drawer) AddPoint(pos mgl64.Vec3) {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current == nil {
		d.current = &Stroke{
			ID:       uuid.NewString(),
			OwnerID:  d.ownerID,
			DrawerID: d.ID,
			Color:    d.color,
			Width:    d.width,
		}
	}
	d.current.Points = append(d.current.Points, pos)
}

// EndLine finishes the in-progress line. Lines with fewer than two points
// are dropped.
func (d *Drawer) EndLine() {
	if d == nil {
		return
	}
	d.mu.Lock()
	line := d.current
	d.current = nil
	if line == nil || len(line.Points) < 2 {
		d.mu.Unlock()
		return
	}
	line.Time = time.Now()
	d.strokes = append(d.strokes, *line)
	hook := d.OnCommit
	d.mu.Unlock()

	log.Debug().Str("drawer", d.Name()).Str("stroke", line.ID).Int("points", len(line.Points)).Msg("line committed")
	if hook != nil {
		hook(*line)
	}
}

// Current returns a copy of the points of the in-progress line.
func (d *Drawer) Current() []mgl64.Vec3 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.current == nil {
		return nil
	}
	out := make([]mgl64.Vec3, len(d.current.Points))
	copy(out, d.current.Points)
	return out
}

// Strokes returns the committed strokes in commit order.
func (d *Drawer) Strokes() []Stroke {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Stroke, len(d.strokes))
	copy(out, d.strokes)
	return out
}

// Clear drops every committed stroke and the in-progress line.
func (d *Drawer) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.strokes = nil
	d.current = nil
}
