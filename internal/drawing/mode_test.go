package drawing

import "testing"

var allModes = []Mode{ModeNone, ModeSpatialTouch, ModeProxyToucher, ModeBoth}

func TestPolicyOffSpatialPlatform(t *testing.T) {
	platforms := []Platform{PlatformDesktop, PlatformAndroid, PlatformIOS, PlatformWeb}
	for _, p := range platforms {
		for _, m := range allModes {
			pol := NewPolicy(p, m)
			if !pol.ProxyTouchEnabled() {
				t.Errorf("%s/%s: ProxyTouchEnabled = false, want true", p, m)
			}
			if pol.SpatialTouchEnabled() {
				t.Errorf("%s/%s: SpatialTouchEnabled = true, want false", p, m)
			}
		}
	}
}

func TestPolicyOnSpatialPlatform(t *testing.T) {
	tests := []struct {
		mode        Mode
		wantSpatial bool
		wantProxy   bool
	}{
		{ModeNone, false, false},
		{ModeSpatialTouch, true, false},
		{ModeProxyToucher, false, true},
		{ModeBoth, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			pol := NewPolicy(PlatformVisionOS, tt.mode)
			if got := pol.SpatialTouchEnabled(); got != tt.wantSpatial {
				t.Errorf("SpatialTouchEnabled = %v, want %v", got, tt.wantSpatial)
			}
			if got := pol.ProxyTouchEnabled(); got != tt.wantProxy {
				t.Errorf("ProxyTouchEnabled = %v, want %v", got, tt.wantProxy)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"spatial_touch", ModeSpatialTouch, true},
		{" Proxy_Toucher ", ModeProxyToucher, true},
		{"both", ModeBoth, true},
		{"none", ModeNone, true},
		{"pinch", ModeNone, false},
	}
	for _, tt := range tests {
		got, ok := ParseMode(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseMode(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParsePlatform(t *testing.T) {
	p, ok := ParsePlatform("VisionOS")
	if !ok || p != PlatformVisionOS {
		t.Fatalf("ParsePlatform(VisionOS) = %v, %v", p, ok)
	}
	if _, ok := ParsePlatform("amiga"); ok {
		t.Fatal("expected unknown platform to fail")
	}
}
