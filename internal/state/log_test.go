package state

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"SpatialBoard/internal/scene"
)

func stroke(id, owner string) scene.Stroke {
	return scene.Stroke{
		ID:      id,
		OwnerID: owner,
		Points:  []mgl64.Vec3{{0, 0, 0}, {1, 1, 0}},
		Color:   "black",
		Width:   3,
	}
}

func TestAddLocalOrdersByLamport(t *testing.T) {
	l := NewStrokeLog()
	changes := 0
	l.OnChange = func() { changes++ }

	a := l.AddLocal(stroke("a", "host"))
	b := l.AddLocal(stroke("b", "host"))
	if a.Lamport >= b.Lamport {
		t.Fatalf("lamport not increasing: %d, %d", a.Lamport, b.Lamport)
	}
	if a.Site != l.SiteID() {
		t.Fatalf("site = %q, want %q", a.Site, l.SiteID())
	}
	got := l.Strokes()
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("Strokes() = %v", got)
	}
	if changes != 2 {
		t.Fatalf("changes = %d, want 2", changes)
	}
}

func TestAddLocalAssignsID(t *testing.T) {
	l := NewStrokeLog()
	e := l.AddLocal(stroke("", "host"))
	if e.Stroke.ID == "" {
		t.Fatal("expected generated id")
	}
}

func TestAddRemoteDeduplicatesAndAdvancesClock(t *testing.T) {
	l := NewStrokeLog()
	e := Entry{Stroke: stroke("r1", "peer"), Lamport: 41, Site: "peer-site"}
	if !l.AddRemote(e) {
		t.Fatal("first AddRemote = false")
	}
	if l.AddRemote(e) {
		t.Fatal("duplicate AddRemote = true")
	}
	if next := l.AddLocal(stroke("l1", "host")); next.Lamport != 42 {
		t.Fatalf("local lamport = %d, want 42", next.Lamport)
	}
}

func TestClearOwnerAndRemove(t *testing.T) {
	l := NewStrokeLog()
	l.AddLocal(stroke("a", "host"))
	l.AddLocal(stroke("b", "peer"))
	l.AddLocal(stroke("c", "peer"))

	if n := l.ClearOwner("peer"); n != 2 {
		t.Fatalf("ClearOwner(peer) = %d, want 2", n)
	}
	if !l.Remove("a") || l.Remove("a") {
		t.Fatal("Remove(a) should succeed once")
	}
	l.AddLocal(stroke("d", "host"))
	if n := l.ClearOwner("all"); n != 1 || l.Len() != 0 {
		t.Fatalf("ClearOwner(all) = %d, len %d", n, l.Len())
	}
}

func TestSaveLoad(t *testing.T) {
	src := NewStrokeLog()
	src.AddLocal(stroke("a", "host"))
	src.AddLocal(stroke("b", "host"))

	var buf bytes.Buffer
	n, err := src.Save(&buf)
	if err != nil || n != 2 {
		t.Fatalf("Save = %d, %v", n, err)
	}

	dst := NewStrokeLog()
	dst.AddLocal(stroke("a", "host"))
	added, err := dst.Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if added != 1 || dst.Len() != 2 {
		t.Fatalf("added = %d, len = %d", added, dst.Len())
	}

	if _, err := dst.Load(strings.NewReader("{not json")); err == nil {
		t.Fatal("expected decode error")
	}
}
