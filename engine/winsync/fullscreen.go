package winsync

import (
	"github.com/hubastard/casement/engine/geom"
	"github.com/hubastard/casement/engine/platform"
	"github.com/hubastard/casement/engine/window"
)

// fullscreenFor maps a window mode to the backend request. ok is false when
// a fullscreen mode was asked for but no monitor is available.
func fullscreenFor(mode window.Mode, res window.Resolution, d displays) (fs platform.Fullscreen, ok bool) {
	if mode == window.Windowed {
		return platform.Fullscreen{Kind: platform.NotFullscreen}, true
	}
	m, found := d.target()
	if !found {
		return fs, false
	}
	switch mode {
	case window.BorderlessFullscreen:
		return platform.Fullscreen{Kind: platform.BorderlessFullscreen, Monitor: m}, true
	case window.SizedFullscreen:
		vm := geom.FittingVideoMode(m, int(res.Width()), int(res.Height()))
		return platform.Fullscreen{Kind: platform.ExclusiveFullscreen, Monitor: m, Mode: vm}, true
	default:
		return platform.Fullscreen{Kind: platform.ExclusiveFullscreen, Monitor: m, Mode: geom.BestVideoMode(m)}, true
	}
}
