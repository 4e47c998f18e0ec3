// Package winsync keeps window records and native backend windows in
// agreement. The Manager creates and destroys native windows, the
// Translator folds backend events into records and domain events, and the
// Syncer pushes record changes back out. All three share one handle table
// and must run on the event loop thread.
package winsync

import (
	"image"
	"log/slog"

	"github.com/hubastard/casement/engine/event"
	"github.com/hubastard/casement/engine/platform"
	"github.com/hubastard/casement/engine/world"
)

// Config is shared by the three components.
type Config struct {
	Logger *slog.Logger
	// LoadIcon decodes a window icon file. Icons are skipped when nil.
	LoadIcon func(path string) ([]image.Image, error)
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// Sync bundles the components around one handle table.
type Sync struct {
	Handles    *Handles
	Manager    *Manager
	Translator *Translator
	Syncer     *Syncer
}

func New(w *world.World, bus *event.Bus, backend platform.Backend, cfg Config) *Sync {
	h := NewHandles()
	return &Sync{
		Handles:    h,
		Manager:    NewManager(w, bus, backend, h, cfg),
		Translator: NewTranslator(w, bus, backend, h, cfg),
		Syncer:     NewSyncer(w, backend, h, cfg),
	}
}
