package drawing

import "strings"

// Mode selects which input modalities may draw on the spatial platform.
type Mode uint8

const (
	ModeNone         Mode = 0
	ModeSpatialTouch Mode = 1 << 0
	ModeProxyToucher Mode = 1 << 1
	ModeBoth              = ModeSpatialTouch | ModeProxyToucher
)

// DefaultMode is used when no drawing mode is configured.
const DefaultMode = ModeSpatialTouch

// Has reports whether any flag of other is set in m.
func (m Mode) Has(other Mode) bool {
	return m&other != 0
}

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeSpatialTouch:
		return "spatial_touch"
	case ModeProxyToucher:
		return "proxy_toucher"
	case ModeBoth:
		return "both"
	}
	return "invalid"
}

// ParseMode converts a single configuration token into a Mode.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return ModeNone, true
	case "spatial_touch", "spatial":
		return ModeSpatialTouch, true
	case "proxy_toucher", "proxy", "index_toucher":
		return ModeProxyToucher, true
	case "both":
		return ModeBoth, true
	}
	return ModeNone, false
}

// Platform identifies the host the board runs on.
type Platform uint8

const (
	PlatformDesktop Platform = iota
	PlatformVisionOS
	PlatformAndroid
	PlatformIOS
	PlatformWeb
)

var platformNames = map[Platform]string{
	PlatformDesktop:  "desktop",
	PlatformVisionOS: "visionos",
	PlatformAndroid:  "android",
	PlatformIOS:      "ios",
	PlatformWeb:      "web",
}

func (p Platform) String() string {
	if name, ok := platformNames[p]; ok {
		return name
	}
	return "unknown"
}

// ParsePlatform converts a configuration token into a Platform.
func ParsePlatform(s string) (Platform, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for p, name := range platformNames {
		if name == s {
			return p, true
		}
	}
	return PlatformDesktop, false
}

// SpatialCapable reports whether the platform delivers a spatial-pointer stream.
func (p Platform) SpatialCapable() bool {
	return p == PlatformVisionOS
}

// Policy answers which input modalities are currently allowed to draw.
// It is a plain value and safe to copy.
type Policy struct {
	Platform Platform
	Mode     Mode
}

func NewPolicy(platform Platform, mode Mode) Policy {
	return Policy{Platform: platform, Mode: mode}
}

// SpatialTouchEnabled is true only on the spatial platform with the
// spatial-touch flag set.
func (p Policy) SpatialTouchEnabled() bool {
	return p.Platform.SpatialCapable() && p.Mode.Has(ModeSpatialTouch)
}

// ProxyTouchEnabled is always true off the spatial platform; on it, the
// proxy-toucher flag decides.
func (p Policy) ProxyTouchEnabled() bool {
	return !p.Platform.SpatialCapable() || p.Mode.Has(ModeProxyToucher)
}
