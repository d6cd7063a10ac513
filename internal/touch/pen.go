package touch

import (
	"github.com/go-gl/mathgl/mgl64"

	"SpatialBoard/internal/scene"
)

// Base is the drawing collaborator driven by the Router.
type Base interface {
	Draw(src Source, pos mgl64.Vec3)
	EndLine(src Source)
	AudioFeedback(src Source, cue Cue)
	PositionBuffer(src Source) *[]mgl64.Vec3
}

var _ Base = (*Pen)(nil)

// Pen appends positions to per-source buffers and forwards them to the
// resolved drawer. It is not safe for concurrent use; the Router serializes
// access.
type Pen struct {
	proxy    *proxyResolver
	spatial  *spatialResolver
	feedback Feedback
	active   map[Source]*scene.Drawer
}

func NewPen(s *scene.Scene, fb Feedback) *Pen {
	return &Pen{
		proxy:    newProxyResolver(s),
		spatial:  newSpatialResolver(s),
		feedback: fb,
		active:   make(map[Source]*scene.Drawer),
	}
}

func (p *Pen) resolver(src Source) Resolver {
	if src.IsSpatial() {
		return p.spatial
	}
	return p.proxy
}

func (p *Pen) ResolveDrawer(src Source) *scene.Drawer {
	return p.resolver(src).ResolveDrawer(src)
}

func (p *Pen) PositionBuffer(src Source) *[]mgl64.Vec3 {
	return p.resolver(src).PositionBuffer(src)
}

// Draw adds pos to the stroke of src. Without a target it does nothing.
func (p *Pen) Draw(src Source, pos mgl64.Vec3) {
	d := p.ResolveDrawer(src)
	if d == nil {
		return
	}
	if prev, ok := p.active[src]; ok && prev != d {
		// target moved mid-stroke; finish the line on the old surface
		prev.EndLine()
		buf := p.PositionBuffer(src)
		*buf = (*buf)[:0]
	}
	p.active[src] = d
	buf := p.PositionBuffer(src)
	*buf = append(*buf, pos)
	d.AddPoint(pos)
}

// EndLine commits the current line of src on the drawer that received it.
func (p *Pen) EndLine(src Source) {
	if d, ok := p.active[src]; ok {
		d.EndLine()
		delete(p.active, src)
	}
	buf := p.PositionBuffer(src)
	*buf = (*buf)[:0]
}

func (p *Pen) AudioFeedback(src Source, cue Cue) {
	if p.feedback != nil {
		p.feedback.Cue(src, cue)
	}
}

// InvalidateSpatial drops the cached spatial target.
func (p *Pen) InvalidateSpatial() {
	p.spatial.invalidate()
}

// ForgetProxy releases the cached target and buffer of a proxy toucher.
func (p *Pen) ForgetProxy(id scene.ProxyID) {
	delete(p.active, Proxy(id))
	p.proxy.forget(id)
}
