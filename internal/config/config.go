package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"SpatialBoard/internal/drawing"
)

var (
	ErrUnknownMode     = errors.New("unknown drawing mode")
	ErrUnknownPlatform = errors.New("unknown platform")
)

type StrokeConfig struct {
	Color string  `toml:"color"`
	Width float32 `toml:"width"`
}

// Config is the runtime configuration of a board instance. DrawingMode is
// set at startup and never changes while the board runs.
type Config struct {
	Platform    drawing.Platform
	DrawingMode drawing.Mode
	ListenAddr  string
	Advertise   bool
	Instance    string
	OwnerID     string
	LogLevel    string
	ExportPath  string
	Headless    bool
	Proxies     []string
	Stroke      StrokeConfig
}

type fileConfig struct {
	Platform    string       `toml:"platform"`
	DrawingMode []string     `toml:"drawing_mode"`
	ListenAddr  string       `toml:"listen_addr"`
	Advertise   bool         `toml:"advertise"`
	Instance    string       `toml:"instance"`
	OwnerID     string       `toml:"owner_id"`
	LogLevel    string       `toml:"log_level"`
	ExportPath  string       `toml:"export_path"`
	Headless    bool         `toml:"headless"`
	Proxies     []string     `toml:"proxies"`
	Stroke      StrokeConfig `toml:"stroke"`
}

func Default() Config {
	return Config{
		Platform:    drawing.PlatformDesktop,
		DrawingMode: drawing.DefaultMode,
		ListenAddr:  ":8888",
		Advertise:   true,
		Instance:    "spatialboard",
		OwnerID:     "host",
		LogLevel:    "info",
		ExportPath:  "board.pdf",
		Proxies:     []string{"left-index", "right-index"},
		Stroke:      StrokeConfig{Color: "black", Width: 3},
	}
}

// Load reads a TOML file on top of Default.
func Load(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	return apply(Default(), raw, meta)
}

// Parse decodes TOML text on top of Default.
func Parse(text string) (Config, error) {
	var raw fileConfig
	meta, err := toml.Decode(text, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config parse failed: %w", err)
	}
	return apply(Default(), raw, meta)
}

func apply(cfg Config, raw fileConfig, meta toml.MetaData) (Config, error) {
	if meta.IsDefined("platform") {
		p, ok := drawing.ParsePlatform(raw.Platform)
		if !ok {
			return Config{}, fmt.Errorf("%w: %q", ErrUnknownPlatform, raw.Platform)
		}
		cfg.Platform = p
	}
	if meta.IsDefined("drawing_mode") {
		mode, err := ParseModes(raw.DrawingMode)
		if err != nil {
			return Config{}, err
		}
		cfg.DrawingMode = mode
	}
	if meta.IsDefined("listen_addr") {
		cfg.ListenAddr = strings.TrimSpace(raw.ListenAddr)
	}
	if meta.IsDefined("advertise") {
		cfg.Advertise = raw.Advertise
	}
	if v := strings.TrimSpace(raw.Instance); v != "" {
		cfg.Instance = v
	}
	if v := strings.TrimSpace(raw.OwnerID); v != "" {
		cfg.OwnerID = v
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.ExportPath); v != "" {
		cfg.ExportPath = v
	}
	if meta.IsDefined("headless") {
		cfg.Headless = raw.Headless
	}
	if meta.IsDefined("proxies") {
		cfg.Proxies = nil
		for _, p := range raw.Proxies {
			if p = strings.TrimSpace(p); p != "" {
				cfg.Proxies = append(cfg.Proxies, p)
			}
		}
	}
	if meta.IsDefined("stroke", "color") {
		cfg.Stroke.Color = raw.Stroke.Color
	}
	if meta.IsDefined("stroke", "width") {
		cfg.Stroke.Width = raw.Stroke.Width
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseModes ORs a list of mode tokens together.
func ParseModes(tokens []string) (drawing.Mode, error) {
	mode := drawing.ModeNone
	for _, tok := range tokens {
		m, ok := drawing.ParseMode(tok)
		if !ok {
			return drawing.ModeNone, fmt.Errorf("%w: %q", ErrUnknownMode, tok)
		}
		mode |= m
	}
	return mode, nil
}

func Validate(cfg Config) error {
	if cfg.Headless && cfg.ListenAddr == "" {
		return errors.New("headless board needs listen_addr")
	}
	if cfg.Stroke.Width <= 0 || cfg.Stroke.Width > 50 {
		return fmt.Errorf("stroke width %.1f out of range (0, 50]", cfg.Stroke.Width)
	}
	switch cfg.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}
	return nil
}
