package touch

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"SpatialBoard/internal/drawing"
	"SpatialBoard/internal/scene"
)

// recordingBase counts calls made by the router.
type recordingBase struct {
	draws    []mgl64.Vec3
	ends     int
	cues     []Cue
	buffers  map[Source]*[]mgl64.Vec3
	drawSrcs []Source
}

func newRecordingBase() *recordingBase {
	return &recordingBase{buffers: make(map[Source]*[]mgl64.Vec3)}
}

func (b *recordingBase) Draw(src Source, pos mgl64.Vec3) {
	b.draws = append(b.draws, pos)
	b.drawSrcs = append(b.drawSrcs, src)
	buf := b.PositionBuffer(src)
	*buf = append(*buf, pos)
}

func (b *recordingBase) EndLine(Source) { b.ends++ }

func (b *recordingBase) AudioFeedback(_ Source, cue Cue) { b.cues = append(b.cues, cue) }

func (b *recordingBase) PositionBuffer(src Source) *[]mgl64.Vec3 {
	buf, ok := b.buffers[src]
	if !ok {
		buf = new([]mgl64.Vec3)
		b.buffers[src] = buf
	}
	return buf
}

func (b *recordingBase) sideEffects() int {
	return len(b.draws) + b.ends + len(b.cues)
}

// switchPolicy lets tests flip modalities between events.
type switchPolicy struct{ spatial, proxy bool }

func (p *switchPolicy) SpatialTouchEnabled() bool { return p.spatial }
func (p *switchPolicy) ProxyTouchEnabled() bool   { return p.proxy }

var (
	p1 = mgl64.Vec3{0.1, 0.2, 0.3}
	p2 = mgl64.Vec3{0.4, 0.5, 0.6}
)

func spatialPolicy() drawing.Policy {
	return drawing.NewPolicy(drawing.PlatformVisionOS, drawing.ModeSpatialTouch)
}

func TestTouchLifecycle(t *testing.T) {
	base := newRecordingBase()
	r := NewRouter(spatialPolicy(), base)

	r.TouchStart(KindTouch, p1, PointerState{})
	if r.Status(Spatial) != StatusDrawing {
		t.Fatal("expected drawing after start")
	}
	r.TouchStay(KindTouch, p2, PointerState{})
	r.TouchEnd()

	if len(base.draws) != 2 || base.draws[0] != p1 || base.draws[1] != p2 {
		t.Fatalf("draws = %v, want [p1 p2]", base.draws)
	}
	if base.ends != 1 {
		t.Fatalf("EndLine calls = %d, want 1", base.ends)
	}
	want := []Cue{CueStart, CueStay, CueEnd}
	if len(base.cues) != len(want) {
		t.Fatalf("cues = %v, want %v", base.cues, want)
	}
	for i := range want {
		if base.cues[i] != want[i] {
			t.Fatalf("cues = %v, want %v", base.cues, want)
		}
	}
	if got := r.Buffer(Spatial); len(got) != 0 {
		t.Fatalf("buffer = %v, want empty", got)
	}
	if r.Status(Spatial) != StatusIdle {
		t.Fatal("expected idle after end")
	}
}

func TestStayAndEndWhileIdleAreNoOps(t *testing.T) {
	base := newRecordingBase()
	r := NewRouter(spatialPolicy(), base)

	r.TouchStay(KindTouch, p1, PointerState{})
	r.TouchEnd()

	if n := base.sideEffects(); n != 0 {
		t.Fatalf("side effects = %d, want 0", n)
	}
	if r.Status(Spatial) != StatusIdle {
		t.Fatal("status changed")
	}
}

func TestNonTouchKindsIgnored(t *testing.T) {
	kinds := []Kind{KindDirectPinch, KindIndirectPinch, KindPointer, KindStylus}
	for _, k := range kinds {
		t.Run(k.String(), func(t *testing.T) {
			base := newRecordingBase()
			r := NewRouter(spatialPolicy(), base)
			r.TouchStart(k, p1, PointerState{})
			if n := base.sideEffects(); n != 0 {
				t.Fatalf("side effects = %d, want 0", n)
			}
			if r.Status(Spatial) != StatusIdle {
				t.Fatal("status changed")
			}

			r.TouchStart(KindTouch, p1, PointerState{})
			r.TouchStay(k, p2, PointerState{})
			if len(base.draws) != 1 {
				t.Fatalf("stay with kind %s drew", k)
			}
		})
	}
}

func TestTouchStartIsReentrant(t *testing.T) {
	base := newRecordingBase()
	r := NewRouter(spatialPolicy(), base)

	r.TouchStart(KindTouch, p1, PointerState{})
	r.TouchStart(KindTouch, p2, PointerState{})

	if len(base.draws) != 2 || base.draws[1] != p2 {
		t.Fatalf("draws = %v", base.draws)
	}
	if base.ends != 0 {
		t.Fatal("restart must not end the line")
	}
	if r.Status(Spatial) != StatusDrawing {
		t.Fatal("expected drawing")
	}
}

func TestSpatialDisabledIsFullNoOp(t *testing.T) {
	policies := map[string]drawing.Policy{
		"desktop":        drawing.NewPolicy(drawing.PlatformDesktop, drawing.ModeBoth),
		"visionos-proxy": drawing.NewPolicy(drawing.PlatformVisionOS, drawing.ModeProxyToucher),
		"visionos-none":  drawing.NewPolicy(drawing.PlatformVisionOS, drawing.ModeNone),
	}
	for name, pol := range policies {
		t.Run(name, func(t *testing.T) {
			base := newRecordingBase()
			r := NewRouter(pol, base)
			r.TouchStart(KindTouch, p1, PointerState{})
			r.TouchStay(KindTouch, p2, PointerState{})
			r.TouchEnd()
			if n := base.sideEffects(); n != 0 {
				t.Fatalf("side effects = %d, want 0", n)
			}
			if r.Status(Spatial) != StatusIdle {
				t.Fatal("status changed")
			}
		})
	}
}

func TestDisablingMidStrokeLeavesStrokeOpen(t *testing.T) {
	pol := &switchPolicy{spatial: true}
	base := newRecordingBase()
	r := NewRouter(pol, base)

	r.TouchStart(KindTouch, p1, PointerState{})
	pol.spatial = false
	r.TouchEnd()

	if base.ends != 0 {
		t.Fatal("disabled end must not terminate the line")
	}
	if r.Status(Spatial) != StatusDrawing || len(r.Buffer(Spatial)) != 1 {
		t.Fatal("stroke should stay open until a later end")
	}

	pol.spatial = true
	r.TouchEnd()
	if base.ends != 1 || r.Status(Spatial) != StatusIdle {
		t.Fatal("end after re-enable should close the stroke")
	}
}

func TestSourcesHaveIndependentStatus(t *testing.T) {
	pol := drawing.NewPolicy(drawing.PlatformVisionOS, drawing.ModeBoth)
	base := newRecordingBase()
	r := NewRouter(pol, base)

	r.ProxyContactStart("left", p1)
	r.TouchStay(KindTouch, p2, PointerState{})
	if len(base.draws) != 1 {
		t.Fatal("proxy drawing must not enable spatial stay")
	}

	r.TouchStart(KindTouch, p2, PointerState{})
	r.ProxyContactEnd("left")
	if r.Status(Spatial) != StatusDrawing {
		t.Fatal("proxy end must not stop the spatial stroke")
	}
	if r.Status(Proxy("left")) != StatusIdle {
		t.Fatal("proxy should be idle")
	}
}

func TestProxyGating(t *testing.T) {
	base := newRecordingBase()
	r := NewRouter(drawing.NewPolicy(drawing.PlatformVisionOS, drawing.ModeSpatialTouch), base)
	r.ProxyContactStart("left", p1)
	r.ProxyContactStay("left", p2)
	r.ProxyContactEnd("left")
	if n := base.sideEffects(); n != 0 {
		t.Fatalf("side effects = %d, want 0", n)
	}

	base = newRecordingBase()
	r = NewRouter(drawing.NewPolicy(drawing.PlatformDesktop, drawing.ModeNone), base)
	r.ProxyContactStay("left", p1)
	r.ProxyContactStart("left", p1)
	r.ProxyContactStay("left", p2)
	r.ProxyContactEnd("left")
	if len(base.draws) != 2 || base.ends != 1 || len(base.cues) != 3 {
		t.Fatalf("draws=%d ends=%d cues=%d", len(base.draws), base.ends, len(base.cues))
	}
	if base.drawSrcs[0] != Proxy("left") {
		t.Fatalf("drew for %s", base.drawSrcs[0])
	}
}

func TestRouterWithPenCommitsStroke(t *testing.T) {
	s := scene.New()
	board := scene.NewDrawer(scene.NewNode("board", nil), "host")
	board.SetAuthority(true)
	s.Add(board)

	var cues int
	pen := NewPen(s, FeedbackFunc(func(Source, Cue) { cues++ }))
	r := NewRouter(spatialPolicy(), pen)

	r.TouchStart(KindTouch, p1, PointerState{})
	r.TouchStay(KindTouch, p2, PointerState{})
	if got := r.Buffer(Spatial); len(got) != 2 {
		t.Fatalf("buffer = %v, want 2 points", got)
	}
	r.TouchEnd()

	strokes := board.Strokes()
	if len(strokes) != 1 || len(strokes[0].Points) != 2 {
		t.Fatalf("strokes = %+v", strokes)
	}
	if cues != 3 {
		t.Fatalf("cues = %d, want 3", cues)
	}
	if len(r.Buffer(Spatial)) != 0 || r.Status(Spatial) != StatusIdle {
		t.Fatal("router not reset")
	}
}

func TestRouterWithoutTargetDrawsNothing(t *testing.T) {
	s := scene.New()
	s.Add(scene.NewDrawer(scene.NewNode("remote", nil), "peer"))
	pen := NewPen(s, nil)
	r := NewRouter(spatialPolicy(), pen)

	r.TouchStart(KindTouch, p1, PointerState{})
	r.TouchStay(KindTouch, p2, PointerState{})
	if got := r.Buffer(Spatial); len(got) != 0 {
		t.Fatalf("buffer = %v, want empty", got)
	}
	r.TouchEnd()
	if r.Status(Spatial) != StatusIdle {
		t.Fatal("expected idle")
	}
}

func TestReleaseProxyCommitsOpenLine(t *testing.T) {
	s := scene.New()
	hand := scene.NewDrawer(scene.NewNode("pen", scene.NewProxyNode("hand", nil, "mouse")), "host")
	s.Add(hand)
	pen := NewPen(s, nil)
	r := NewRouter(drawing.NewPolicy(drawing.PlatformDesktop, drawing.DefaultMode), pen)

	r.ProxyContactStart("mouse", p1)
	r.ProxyContactStay("mouse", p2)
	r.ReleaseProxy("mouse")

	if len(hand.Strokes()) != 1 {
		t.Fatal("release should commit the open line")
	}
	if r.Status(Proxy("mouse")) != StatusIdle {
		t.Fatal("released proxy should be idle")
	}
}
