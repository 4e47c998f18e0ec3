package winsync

import (
	"github.com/hubastard/casement/engine/geom"
	"github.com/hubastard/casement/engine/platform"
)

// displays is one snapshot of the monitor layout.
type displays struct {
	all     []geom.Monitor
	primary *geom.Monitor
	current *geom.Monitor
}

// snapshotDisplays queries the backend. current is resolved for id when
// hasID is set; a window that does not exist yet has no current monitor.
func snapshotDisplays(b platform.Backend, id platform.WindowID, hasID bool) displays {
	var d displays
	d.all, _ = b.Monitors()
	if m, ok := b.PrimaryMonitor(); ok {
		d.primary = &m
	}
	if hasID {
		if m, ok := b.CurrentMonitor(id); ok {
			d.current = &m
		}
	}
	return d
}

// target is the monitor fullscreen modes apply to: the current one, else
// the primary, else the first enumerated.
func (d displays) target() (geom.Monitor, bool) {
	switch {
	case d.current != nil:
		return *d.current, true
	case d.primary != nil:
		return *d.primary, true
	case len(d.all) > 0:
		return d.all[0], true
	}
	return geom.Monitor{}, false
}
