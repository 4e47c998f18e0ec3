// Package config loads the sandbox/engine settings from a YAML file and
// converts them into a window descriptor and a core.Config.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hubastard/casement/engine/colors"
	"github.com/hubastard/casement/engine/core"
	"github.com/hubastard/casement/engine/geom"
	"github.com/hubastard/casement/engine/window"
)

// Position selects where a new window is placed.
type Position struct {
	Mode    string `yaml:"mode"`    // automatic, centered, at
	Monitor string `yaml:"monitor"` // current, primary or a monitor index
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
}

type Cursor struct {
	Icon    string `yaml:"icon"`
	Visible bool   `yaml:"visible"`
	Locked  bool   `yaml:"locked"`
}

// ResizeConstraints are logical pixels; a zero maximum means unbounded.
type ResizeConstraints struct {
	MinWidth  float64 `yaml:"min_width"`
	MinHeight float64 `yaml:"min_height"`
	MaxWidth  float64 `yaml:"max_width"`
	MaxHeight float64 `yaml:"max_height"`
}

type UpdateMode struct {
	Mode    string `yaml:"mode"`     // continuous, reactive, reactive_low_power
	MaxWait string `yaml:"max_wait"` // Go duration or "forever"
}

type UpdateModes struct {
	Focused   UpdateMode `yaml:"focused"`
	Unfocused UpdateMode `yaml:"unfocused"`
}

// Config is the on-disk configuration.
type Config struct {
	Title               string            `yaml:"title"`
	Width               float64           `yaml:"width"`
	Height              float64           `yaml:"height"`
	ScaleFactorOverride float64           `yaml:"scale_factor_override"` // 0 = follow the monitor
	Position            Position          `yaml:"position"`
	Mode                string            `yaml:"mode"`
	Decorations         bool              `yaml:"decorations"`
	Resizable           bool              `yaml:"resizable"`
	Transparent         bool              `yaml:"transparent"`
	Cursor              Cursor            `yaml:"cursor"`
	ResizeConstraints   ResizeConstraints `yaml:"resize_constraints"`
	State               string            `yaml:"state"`
	Icon                string            `yaml:"icon"`

	UpdateMode         UpdateModes  `yaml:"update_mode"`
	ExitCondition      string       `yaml:"exit_condition"`
	CloseWhenRequested bool         `yaml:"close_when_requested"`
	AddPrimaryWindow   bool         `yaml:"add_primary_window"`
	PresentMode        string       `yaml:"present_mode"`
	ClearColor         colors.Color `yaml:"clear_color"`
	LogLevel           string       `yaml:"log_level"`
}

// ValidationError points at the offending key.
type ValidationError struct {
	Path   string
	Source string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s: %s: %v", e.Source, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Default mirrors core.DefaultConfig with game-style update modes.
func Default() *Config {
	rc := window.DefaultResizeConstraints()
	return &Config{
		Title:       string(window.DefaultTitle),
		Width:       1280,
		Height:      720,
		Position:    Position{Mode: "automatic", Monitor: "current"},
		Mode:        "windowed",
		Decorations: true,
		Resizable:   true,
		Cursor:      Cursor{Icon: "default", Visible: true},
		ResizeConstraints: ResizeConstraints{
			MinWidth:  rc.MinWidth,
			MinHeight: rc.MinHeight,
		},
		State: "normal",
		UpdateMode: UpdateModes{
			Focused:   UpdateMode{Mode: "continuous"},
			Unfocused: UpdateMode{Mode: "continuous"},
		},
		ExitCondition:      "on_all_closed",
		CloseWhenRequested: true,
		AddPrimaryWindow:   true,
		PresentMode:        "auto_vsync",
		ClearColor:         colors.Color{0.1, 0.1, 0.12, 1},
		LogLevel:           "info",
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	cfg, err := Parse(f)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			verr.Source = path
			return nil, verr
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML from r over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return &ValidationError{Path: "width", Err: fmt.Errorf("width and height must be > 0")}
	}
	if c.ScaleFactorOverride < 0 {
		return &ValidationError{Path: "scale_factor_override", Err: fmt.Errorf("scale_factor_override must be >= 0")}
	}
	if _, err := c.position(); err != nil {
		return &ValidationError{Path: "position", Err: err}
	}
	if _, ok := modes[c.Mode]; !ok {
		return &ValidationError{Path: "mode", Err: fmt.Errorf("mode must be one of: windowed, borderless_fullscreen, sized_fullscreen, fullscreen")}
	}
	if _, ok := cursorIcons[c.Cursor.Icon]; !ok {
		return &ValidationError{Path: "cursor.icon", Err: fmt.Errorf("unknown cursor icon %q", c.Cursor.Icon)}
	}
	rc := c.ResizeConstraints
	if rc.MinWidth < 0 || rc.MinHeight < 0 || rc.MaxWidth < 0 || rc.MaxHeight < 0 {
		return &ValidationError{Path: "resize_constraints", Err: fmt.Errorf("resize_constraints values must be >= 0")}
	}
	if _, ok := states[c.State]; !ok {
		return &ValidationError{Path: "state", Err: fmt.Errorf("state must be one of: normal, minimized, maximized")}
	}
	if _, err := updateMode(c.UpdateMode.Focused); err != nil {
		return &ValidationError{Path: "update_mode.focused", Err: err}
	}
	if _, err := updateMode(c.UpdateMode.Unfocused); err != nil {
		return &ValidationError{Path: "update_mode.unfocused", Err: err}
	}
	if _, ok := exitConditions[c.ExitCondition]; !ok {
		return &ValidationError{Path: "exit_condition", Err: fmt.Errorf("exit_condition must be one of: on_primary_closed, on_all_closed, dont_exit")}
	}
	if _, ok := presentModes[c.PresentMode]; !ok {
		return &ValidationError{Path: "present_mode", Err: fmt.Errorf("present_mode must be one of: auto_vsync, auto_no_vsync")}
	}
	if _, ok := logLevels[c.LogLevel]; !ok {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	return nil
}

var modes = map[string]window.Mode{
	"windowed":              window.Windowed,
	"borderless_fullscreen": window.BorderlessFullscreen,
	"sized_fullscreen":      window.SizedFullscreen,
	"fullscreen":            window.Fullscreen,
}

var states = map[string]window.State{
	"normal":    window.Normal,
	"minimized": window.Minimized,
	"maximized": window.Maximized,
}

var presentModes = map[string]window.PresentMode{
	"auto_vsync":    window.AutoVsync,
	"auto_no_vsync": window.AutoNoVsync,
}

var cursorIcons = map[string]window.CursorIcon{
	"default":     window.CursorDefault,
	"crosshair":   window.CursorCrosshair,
	"hand":        window.CursorHand,
	"text":        window.CursorText,
	"move":        window.CursorMove,
	"wait":        window.CursorWait,
	"help":        window.CursorHelp,
	"not_allowed": window.CursorNotAllowed,
	"ew_resize":   window.CursorEwResize,
	"ns_resize":   window.CursorNsResize,
}

var exitConditions = map[string]window.ExitCondition{
	"on_primary_closed": window.OnPrimaryClosed,
	"on_all_closed":     window.OnAllClosed,
	"dont_exit":         window.DontExit,
}

var logLevels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

func (c *Config) position() (geom.Position, error) {
	var sel geom.MonitorSelection
	switch m := c.Position.Monitor; m {
	case "", "current":
		sel = geom.CurrentMonitor()
	case "primary":
		sel = geom.PrimaryMonitor()
	default:
		n, err := strconv.Atoi(m)
		if err != nil || n < 0 {
			return geom.Position{}, fmt.Errorf("monitor must be current, primary or an index, got %q", m)
		}
		sel = geom.MonitorAt(n)
	}
	switch c.Position.Mode {
	case "", "automatic":
		return geom.Automatic(), nil
	case "centered":
		return geom.CenteredOn(sel), nil
	case "at":
		return geom.At(c.Position.X, c.Position.Y), nil
	}
	return geom.Position{}, fmt.Errorf("mode must be one of: automatic, centered, at")
}

func updateMode(m UpdateMode) (core.UpdateMode, error) {
	wait := core.Forever
	if w := strings.TrimSpace(m.MaxWait); w != "" && w != "forever" {
		d, err := time.ParseDuration(w)
		if err != nil {
			return core.UpdateMode{}, fmt.Errorf("max_wait: %w", err)
		}
		if d <= 0 {
			return core.UpdateMode{}, fmt.Errorf("max_wait must be > 0")
		}
		wait = d
	}
	switch m.Mode {
	case "continuous":
		return core.ContinuousMode(), nil
	case "reactive":
		return core.ReactiveMode(wait), nil
	case "reactive_low_power":
		return core.ReactiveLowPowerMode(wait), nil
	}
	return core.UpdateMode{}, fmt.Errorf("mode must be one of: continuous, reactive, reactive_low_power")
}

// Descriptor builds the primary window's initial fields. c must be valid.
func (c *Config) Descriptor() window.Descriptor {
	d := window.DefaultDescriptor()
	d.Title = window.Title(c.Title)
	if c.ScaleFactorOverride > 0 {
		d.Resolution = window.NewResolutionWithOverride(c.Width, c.Height, c.ScaleFactorOverride)
	} else {
		d.Resolution = window.NewResolution(c.Width, c.Height)
	}
	d.Position, _ = c.position()
	d.Mode = modes[c.Mode]
	if !c.Decorations {
		d.Decorations = window.Undecorated
	}
	if !c.Resizable {
		d.Resizing = window.Unresizable
	}
	if c.Transparent {
		d.Transparency = window.Transparent
	}
	d.PresentMode = presentModes[c.PresentMode]
	d.Cursor = window.Cursor{Icon: cursorIcons[c.Cursor.Icon], Visible: c.Cursor.Visible, Locked: c.Cursor.Locked}
	rc := c.ResizeConstraints
	d.ResizeConstraints.MinWidth = rc.MinWidth
	d.ResizeConstraints.MinHeight = rc.MinHeight
	if rc.MaxWidth > 0 {
		d.ResizeConstraints.MaxWidth = rc.MaxWidth
	}
	if rc.MaxHeight > 0 {
		d.ResizeConstraints.MaxHeight = rc.MaxHeight
	}
	d.State = states[c.State]
	d.Icon = window.Icon{Path: c.Icon}
	return d
}

// Engine converts c into a core.Config. Renderer, Logger and LoadIcon are
// left for the caller. c must be valid.
func (c *Config) Engine() core.Config {
	cfg := core.DefaultConfig()
	cfg.Settings.Focused, _ = updateMode(c.UpdateMode.Focused)
	cfg.Settings.Unfocused, _ = updateMode(c.UpdateMode.Unfocused)
	cfg.ExitCondition = exitConditions[c.ExitCondition]
	cfg.CloseWhenRequested = c.CloseWhenRequested
	cfg.PrimaryWindow = nil
	if c.AddPrimaryWindow {
		d := c.Descriptor()
		cfg.PrimaryWindow = &d
	}
	cfg.ClearColor = c.ClearColor
	return cfg
}

func (c *Config) Level() slog.Level { return logLevels[c.LogLevel] }
