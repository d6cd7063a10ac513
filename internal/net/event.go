package net

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"SpatialBoard/internal/scene"
	"SpatialBoard/internal/touch"
)

// ErrUnknownEvent is returned for messages whose type is not recognised.
var ErrUnknownEvent = errors.New("unknown event type")

const (
	EventTouchStart   = "touch_start"
	EventTouchStay    = "touch_stay"
	EventTouchEnd     = "touch_end"
	EventProxyStart   = "proxy_start"
	EventProxyStay    = "proxy_stay"
	EventProxyEnd     = "proxy_end"
	EventProxyRelease = "proxy_release"
)

// Event is one input message as sent by a headset or another input device.
type Event struct {
	Type     string             `json:"type"`
	Kind     string             `json:"kind,omitempty"`
	Proxy    string             `json:"proxy,omitempty"`
	Position mgl64.Vec3         `json:"position"`
	State    touch.PointerState `json:"state"`
}

// Handler receives decoded input. *touch.Router implements it.
type Handler interface {
	TouchStart(kind touch.Kind, pos mgl64.Vec3, st touch.PointerState)
	TouchStay(kind touch.Kind, pos mgl64.Vec3, st touch.PointerState)
	TouchEnd()
	ProxyContactStart(id scene.ProxyID, pos mgl64.Vec3)
	ProxyContactStay(id scene.ProxyID, pos mgl64.Vec3)
	ProxyContactEnd(id scene.ProxyID)
	ReleaseProxy(id scene.ProxyID)
}

var _ Handler = (*touch.Router)(nil)

// Dispatch hands ev to h. Spatial events with an unknown kind are rejected
// rather than guessed.
func Dispatch(ev Event, h Handler) error {
	switch ev.Type {
	case EventTouchStart, EventTouchStay:
		kind, ok := touch.ParseKind(ev.Kind)
		if !ok {
			return fmt.Errorf("%s: unknown interaction kind %q", ev.Type, ev.Kind)
		}
		if ev.Type == EventTouchStart {
			h.TouchStart(kind, ev.Position, ev.State)
		} else {
			h.TouchStay(kind, ev.Position, ev.State)
		}
	case EventTouchEnd:
		h.TouchEnd()
	case EventProxyStart, EventProxyStay, EventProxyEnd, EventProxyRelease:
		if ev.Proxy == "" {
			return fmt.Errorf("%s: missing proxy id", ev.Type)
		}
		id := scene.ProxyID(ev.Proxy)
		switch ev.Type {
		case EventProxyStart:
			h.ProxyContactStart(id, ev.Position)
		case EventProxyStay:
			h.ProxyContactStay(id, ev.Position)
		case EventProxyEnd:
			h.ProxyContactEnd(id)
		default:
			h.ReleaseProxy(id)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}
	return nil
}
