package touch

import (
	"strings"

	"SpatialBoard/internal/scene"
)

// Source identifies where a stroke comes from: either one proxy toucher or
// the single implicit spatial source. The zero value is Spatial.
type Source struct {
	proxy scene.ProxyID
}

// Spatial is the handle-less source for direct hand touches delivered by
// the spatial-pointer stream.
var Spatial = Source{}

// Proxy returns the source for an identified proxy toucher. An empty id
// yields Spatial.
func Proxy(id scene.ProxyID) Source {
	return Source{proxy: id}
}

func (s Source) IsSpatial() bool { return s.proxy == "" }

func (s Source) ProxyID() scene.ProxyID { return s.proxy }

func (s Source) String() string {
	if s.IsSpatial() {
		return "spatial"
	}
	return "proxy:" + string(s.proxy)
}

// Kind discriminates spatial-pointer interactions. Only KindTouch draws.
type Kind uint8

const (
	KindTouch Kind = iota
	KindDirectPinch
	KindIndirectPinch
	KindPointer
	KindStylus
)

var kindNames = []string{"touch", "direct_pinch", "indirect_pinch", "pointer", "stylus"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind maps a wire name to a Kind.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range kindNames {
		if name == s {
			return Kind(i), true
		}
	}
	return KindTouch, false
}

// Status is the drawing state of one source.
type Status uint8

const (
	StatusIdle Status = iota
	StatusDrawing
)

func (s Status) String() string {
	if s == StatusDrawing {
		return "drawing"
	}
	return "idle"
}
