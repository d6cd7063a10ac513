package touch

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"

	"SpatialBoard/internal/scene"
)

// Resolver finds the drawing target and stroke buffer for a source.
type Resolver interface {
	ResolveDrawer(src Source) *scene.Drawer
	PositionBuffer(src Source) *[]mgl64.Vec3
}

var (
	_ Resolver = (*proxyResolver)(nil)
	_ Resolver = (*spatialResolver)(nil)
)

// proxyResolver binds each proxy toucher to the drawer parented under its
// proxy-input node, one buffer per proxy.
type proxyResolver struct {
	scene   *scene.Scene
	drawers map[scene.ProxyID]*scene.Drawer
	buffers map[scene.ProxyID]*[]mgl64.Vec3
}

func newProxyResolver(s *scene.Scene) *proxyResolver {
	return &proxyResolver{
		scene:   s,
		drawers: make(map[scene.ProxyID]*scene.Drawer),
		buffers: make(map[scene.ProxyID]*[]mgl64.Vec3),
	}
}

func (r *proxyResolver) ResolveDrawer(src Source) *scene.Drawer {
	id := src.ProxyID()
	if d, ok := r.drawers[id]; ok && r.scene.Contains(d) {
		return d
	}
	d := r.scene.DrawerForProxy(id)
	if d == nil {
		delete(r.drawers, id)
		return nil
	}
	r.drawers[id] = d
	return d
}

func (r *proxyResolver) PositionBuffer(src Source) *[]mgl64.Vec3 {
	id := src.ProxyID()
	buf, ok := r.buffers[id]
	if !ok {
		buf = new([]mgl64.Vec3)
		r.buffers[id] = buf
	}
	return buf
}

// forget drops the cache and buffer of a proxy that left the scene.
func (r *proxyResolver) forget(id scene.ProxyID) {
	delete(r.drawers, id)
	delete(r.buffers, id)
}

// spatialResolver picks the first authoritative drawer not bound to any
// proxy and keeps it until the scene generation moves and the cached
// drawer is no longer registered or eligible. A cached miss is retried on
// the next generation change.
type spatialResolver struct {
	scene      *scene.Scene
	cached     *scene.Drawer
	resolved   bool
	generation uint64
	buffer     []mgl64.Vec3
	scans      int
}

func newSpatialResolver(s *scene.Scene) *spatialResolver {
	return &spatialResolver{scene: s}
}

func (r *spatialResolver) ResolveDrawer(Source) *scene.Drawer {
	gen := r.scene.Generation()
	if r.resolved {
		if gen == r.generation {
			return r.cached
		}
		if r.cached != nil && r.scene.Contains(r.cached) && eligibleForSpatial(r.cached) {
			r.generation = gen
			return r.cached
		}
	}
	r.cached = r.scan()
	r.resolved = true
	r.generation = gen
	return r.cached
}

func (r *spatialResolver) scan() *scene.Drawer {
	r.scans++
	for _, d := range r.scene.Drawers() {
		if eligibleForSpatial(d) {
			log.Debug().Str("drawer", d.Name()).Msg("spatial touch drawer resolved")
			return d
		}
	}
	log.Debug().Msg("no drawer eligible for spatial touch")
	return nil
}

func (r *spatialResolver) PositionBuffer(Source) *[]mgl64.Vec3 {
	return &r.buffer
}

func (r *spatialResolver) invalidate() {
	r.cached = nil
	r.resolved = false
}

func eligibleForSpatial(d *scene.Drawer) bool {
	return d.HasAuthority() && !d.HasProxyAncestor()
}
