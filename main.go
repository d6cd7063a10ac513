package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"SpatialBoard/internal/config"
	"SpatialBoard/internal/drawing"
	"SpatialBoard/internal/export"
	boardnet "SpatialBoard/internal/net"
	"SpatialBoard/internal/observability"
	"SpatialBoard/internal/scene"
	"SpatialBoard/internal/state"
	"SpatialBoard/internal/touch"
	"SpatialBoard/internal/ui"
)

const defaultConfigPath = "spatialboard.toml"

// board bundles the pieces shared by the desktop and headless modes.
type board struct {
	cfg     config.Config
	scene   *scene.Scene
	strokes *state.StrokeLog
	router  *touch.Router
}

func main() {
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "discover" {
		observability.InitLogger("spatialboard", "info")
		runDiscover()
		return
	}

	path := defaultConfigPath
	if len(args) > 0 {
		path = args[0]
	}
	cfg, err := loadConfig(path)
	observability.InitLogger("spatialboard", cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	log.Info().
		Str("platform", cfg.Platform.String()).
		Str("mode", cfg.DrawingMode.String()).
		Bool("headless", cfg.Headless).
		Msg("starting board")

	if cfg.Headless {
		runHeadless(cfg)
	} else {
		runDesktop(cfg)
	}
}

func loadConfig(path string) (config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && path == defaultConfigPath {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Default(), err
	}
	return cfg, nil
}

// newBoard builds the scene: one shared board surface owned by this
// participant, plus a hand with a pen for every configured proxy toucher.
func newBoard(cfg config.Config, fb touch.Feedback) *board {
	s := scene.New()
	strokes := state.NewStrokeLog()
	commit := func(st scene.Stroke) { strokes.AddLocal(st) }

	room := scene.NewNode("room", nil)
	surface := scene.NewDrawer(scene.NewNode("board", room), cfg.OwnerID)
	surface.OnCommit = commit
	surface.SetAuthority(true)
	s.Add(surface)

	for _, id := range cfg.Proxies {
		addHand(s, room, scene.ProxyID(id), cfg.OwnerID, commit)
	}
	for _, d := range s.Drawers() {
		d.SetStyle(cfg.Stroke.Color, cfg.Stroke.Width)
	}

	pen := touch.NewPen(s, fb)
	policy := drawing.NewPolicy(cfg.Platform, cfg.DrawingMode)
	return &board{
		cfg:     cfg,
		scene:   s,
		strokes: strokes,
		router:  touch.NewRouter(policy, pen),
	}
}

func addHand(s *scene.Scene, parent *scene.Node, id scene.ProxyID, owner string, commit func(scene.Stroke)) {
	hand := scene.NewProxyNode("hand-"+string(id), parent, id)
	d := scene.NewDrawer(scene.NewNode("pen", hand), owner)
	d.OnCommit = commit
	d.SetAuthority(true)
	s.Add(d)
}

func runDesktop(cfg config.Config) {
	var view *ui.BoardWidget
	refresh := touch.FeedbackFunc(func(touch.Source, touch.Cue) {
		if view != nil {
			view.RefreshAsync()
		}
	})
	b := newBoard(cfg, touch.MultiFeedback{touch.LogFeedback{}, refresh})
	addHand(b.scene, nil, ui.MouseProxy, cfg.OwnerID, func(st scene.Stroke) { b.strokes.AddLocal(st) })

	view = ui.NewBoardWidget(b.router, b.scene, b.strokes)
	b.strokes.OnChange = view.RefreshAsync

	ctx, cancel := context.WithCancel(context.Background())
	shutdown := startIngress(ctx, b)

	shareLink, err := boardnet.ShareURL(cfg.ListenAddr)
	if err != nil {
		log.Warn().Err(err).Msg("no share link")
	}
	ui.RunApp(ui.AppConfig{
		ShareLink:  shareLink,
		OwnerID:    cfg.OwnerID,
		ExportPath: cfg.ExportPath,
		Color:      cfg.Stroke.Color,
		Width:      cfg.Stroke.Width,
	}, view)

	cancel()
	shutdown()
}

func runHeadless(cfg config.Config) {
	b := newBoard(cfg, touch.LogFeedback{})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	shutdown := startIngress(ctx, b)
	<-ctx.Done()
	shutdown()

	log.Info().Int("strokes", b.strokes.Len()).Msg("board stopped")
	if err := export.PDF(cfg.ExportPath, b.strokes.Strokes()); err != nil {
		if !errors.Is(err, export.ErrNoStrokes) {
			log.Error().Err(err).Str("path", cfg.ExportPath).Msg("pdf export failed")
		}
		return
	}
	log.Info().Str("path", cfg.ExportPath).Msg("board exported")
}

// startIngress serves input devices and advertises them over mDNS. The
// returned func waits for the server to stop once ctx is done.
func startIngress(ctx context.Context, b *board) func() {
	ingress := boardnet.NewIngress(b.router)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := ingress.ListenAndServe(ctx, b.cfg.ListenAddr); err != nil {
			log.Error().Err(err).Msg("input ingress stopped")
		}
	}()

	var stopAdvertise func() error
	if b.cfg.Advertise {
		port, err := boardnet.Port(b.cfg.ListenAddr)
		if err == nil {
			srv, aerr := boardnet.Advertise(b.cfg.Instance, port)
			err = aerr
			if srv != nil {
				stopAdvertise = srv.Shutdown
			}
		}
		if err != nil {
			log.Warn().Err(err).Msg("mdns advertisement disabled")
		}
	}

	return func() {
		if stopAdvertise != nil {
			if err := stopAdvertise(); err != nil {
				log.Warn().Err(err).Msg("mdns shutdown")
			}
		}
		select {
		case <-done:
		case <-time.After(3 * time.Second):
			log.Warn().Msg("ingress did not stop in time")
		}
	}
}

func runDiscover() {
	count := 0
	err := boardnet.Browse(2*time.Second, func(url string) {
		count++
		fmt.Println(url)
	})
	if err != nil {
		log.Fatal().Err(err).Msg("discovery failed")
	}
	if count == 0 {
		log.Info().Msg("no boards found")
	}
}
