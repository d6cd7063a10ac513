package net

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"SpatialBoard/internal/scene"
)

// EventsPath is where input devices open their websocket.
const EventsPath = "/events"

// Peer is one connected input device.
type Peer struct {
	Conn *websocket.Conn

	// proxies announced over this connection, released on disconnect
	proxies map[scene.ProxyID]struct{}
}

// Ingress accepts input devices over websocket and feeds their events to
// a Handler.
type Ingress struct {
	handler  Handler
	upgrader websocket.Upgrader
	peers    map[string]*Peer
	mu       sync.RWMutex
}

func NewIngress(h Handler) *Ingress {
	return &Ingress{
		handler: h,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// headsets connect from the local network without an Origin
			CheckOrigin: func(*http.Request) bool { return true },
		},
		peers: make(map[string]*Peer),
	}
}

// Peers returns how many devices are connected.
func (in *Ingress) Peers() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.peers)
}

func (in *Ingress) add(addr string, p *Peer) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.peers[addr] = p
	log.Info().Str("peer", addr).Msg("input device connected")
}

func (in *Ingress) remove(addr string) {
	in.mu.Lock()
	defer in.mu.Unlock()
	delete(in.peers, addr)
	log.Info().Str("peer", addr).Msg("input device disconnected")
}

// Handler returns the HTTP handler serving EventsPath.
func (in *Ingress) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(EventsPath, in.serveEvents)
	return mux
}

func (in *Ingress) serveEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := in.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("peer", r.RemoteAddr).Msg("websocket upgrade failed")
		return
	}
	addr := conn.RemoteAddr().String()
	peer := &Peer{Conn: conn, proxies: make(map[scene.ProxyID]struct{})}
	in.add(addr, peer)
	defer func() {
		for id := range peer.proxies {
			in.handler.ReleaseProxy(id)
		}
		in.remove(addr)
		conn.Close()
	}()

	for {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Str("peer", addr).Msg("read failed")
			}
			return
		}
		if err := Dispatch(ev, in.handler); err != nil {
			log.Warn().Err(err).Str("peer", addr).Msg("dropped event")
			continue
		}
		switch ev.Type {
		case EventProxyStart:
			peer.proxies[scene.ProxyID(ev.Proxy)] = struct{}{}
		case EventProxyRelease:
			delete(peer.proxies, scene.ProxyID(ev.Proxy))
		}
	}
}

// ListenAndServe serves the ingress on addr until ctx is cancelled.
func (in *Ingress) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           in.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Str("path", EventsPath).Msg("input ingress listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		in.closePeers()
		return srv.Shutdown(shutdownCtx)
	}
}

func (in *Ingress) closePeers() {
	in.mu.RLock()
	defer in.mu.RUnlock()
	for _, p := range in.peers {
		p.Conn.Close()
	}
}
