package touch

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"

	"SpatialBoard/internal/scene"
)

// Policy gates the two input modalities. drawing.Policy satisfies it.
type Policy interface {
	SpatialTouchEnabled() bool
	ProxyTouchEnabled() bool
}

// PointerState is the auxiliary data delivered with a spatial-pointer
// event. The router does not act on it.
type PointerState struct {
	InteractionID  int        `json:"interaction_id"`
	StartPosition  mgl64.Vec3 `json:"start_position"`
	DevicePosition mgl64.Vec3 `json:"device_position"`
}

type proxyForgetter interface {
	ForgetProxy(id scene.ProxyID)
}

// Router turns spatial-pointer and proxy-toucher events into strokes. Each
// source runs its own Idle/Drawing state machine. All handlers are
// serialized, so events may arrive from several goroutines.
type Router struct {
	mu     sync.Mutex
	policy Policy
	base   Base
	status map[Source]Status
}

func NewRouter(policy Policy, base Base) *Router {
	return &Router{
		policy: policy,
		base:   base,
		status: make(map[Source]Status),
	}
}

// Status returns the drawing state of src.
func (r *Router) Status(src Source) Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status[src]
}

// Buffer returns a copy of the stroke positions buffered for src.
func (r *Router) Buffer(src Source) []mgl64.Vec3 {
	r.mu.Lock()
	defer r.mu.Unlock()
	buf := *r.base.PositionBuffer(src)
	out := make([]mgl64.Vec3, len(buf))
	copy(out, buf)
	return out
}

// TouchStart begins (or restarts) the spatial stroke. It does not look at
// the current status, so a second start while drawing keeps drawing.
func (r *Router) TouchStart(kind Kind, pos mgl64.Vec3, _ PointerState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.policy.SpatialTouchEnabled() || kind != KindTouch {
		return
	}
	r.start(Spatial, pos)
}

// TouchStay continues the spatial stroke.
func (r *Router) TouchStay(kind Kind, pos mgl64.Vec3, _ PointerState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.policy.SpatialTouchEnabled() || r.status[Spatial] != StatusDrawing {
		return
	}
	if kind != KindTouch {
		return
	}
	r.stay(Spatial, pos)
}

// TouchEnd finishes the spatial stroke.
func (r *Router) TouchEnd() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.policy.SpatialTouchEnabled() || r.status[Spatial] != StatusDrawing {
		return
	}
	buf := r.base.PositionBuffer(Spatial)
	*buf = (*buf)[:0]
	r.end(Spatial)
}

// ProxyContactStart begins a stroke for a proxy toucher touching a surface.
func (r *Router) ProxyContactStart(id scene.ProxyID, pos mgl64.Vec3) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id == "" || !r.policy.ProxyTouchEnabled() {
		return
	}
	r.start(Proxy(id), pos)
}

func (r *Router) ProxyContactStay(id scene.ProxyID, pos mgl64.Vec3) {
	r.mu.Lock()
	defer r.mu.Unlock()
	src := Proxy(id)
	if id == "" || !r.policy.ProxyTouchEnabled() || r.status[src] != StatusDrawing {
		return
	}
	r.stay(src, pos)
}

func (r *Router) ProxyContactEnd(id scene.ProxyID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	src := Proxy(id)
	if id == "" || !r.policy.ProxyTouchEnabled() || r.status[src] != StatusDrawing {
		return
	}
	r.end(src)
}

// ReleaseProxy forgets a proxy toucher that left the scene, committing its
// line first if it was drawing.
func (r *Router) ReleaseProxy(id scene.ProxyID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id == "" {
		return
	}
	src := Proxy(id)
	if r.status[src] == StatusDrawing {
		r.base.EndLine(src)
	}
	delete(r.status, src)
	if f, ok := r.base.(proxyForgetter); ok {
		f.ForgetProxy(id)
	}
}

func (r *Router) start(src Source, pos mgl64.Vec3) {
	if r.status[src] != StatusDrawing {
		log.Debug().Str("source", src.String()).Msg("stroke started")
	}
	r.status[src] = StatusDrawing
	r.base.Draw(src, pos)
	r.base.AudioFeedback(src, CueStart)
}

func (r *Router) stay(src Source, pos mgl64.Vec3) {
	r.base.Draw(src, pos)
	r.base.AudioFeedback(src, CueStay)
}

func (r *Router) end(src Source) {
	r.base.EndLine(src)
	r.base.AudioFeedback(src, CueEnd)
	r.status[src] = StatusIdle
	log.Debug().Str("source", src.String()).Msg("stroke ended")
}
