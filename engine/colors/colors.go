// Package colors holds RGBA colours and their "#rrggbb[aa]" notation.
package colors

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Color [4]float32

var (
	White    = Color{1, 1, 1, 1}
	Red      = Color{1, 0, 0, 1}
	Green    = Color{0, 1, 0, 1}
	Blue     = Color{0, 0, 1, 1}
	Black    = Color{0, 0, 0, 1}
	Magenta  = Color{1, 0, 1, 1}
	Cyan     = Color{0, 1, 1, 1}
	Yellow   = Color{1, 1, 0, 1}
	Gray     = Color{0.5, 0.5, 0.5, 1}
	DarkGray = Color{0.08, 0.10, 0.12, 1}
)

var named = map[string]Color{
	"white":     White,
	"red":       Red,
	"green":     Green,
	"blue":      Blue,
	"black":     Black,
	"magenta":   Magenta,
	"cyan":      Cyan,
	"yellow":    Yellow,
	"gray":      Gray,
	"dark_gray": DarkGray,
}

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Parse accepts "#rrggbb", "#rrggbbaa" or a palette name.
func Parse(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := named[strings.ToLower(s)]; ok {
		return c, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return Color{}, fmt.Errorf("color %q: want #rrggbb, #rrggbbaa or a name", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	var c Color
	for i := range c {
		c[i] = float32((v>>(24-8*i))&0xff) / 255
	}
	return c, nil
}

// String formats c as "#rrggbbaa".
func (c Color) String() string {
	var b strings.Builder
	b.WriteByte('#')
	for _, ch := range c {
		fmt.Fprintf(&b, "%02x", int(ch*255+0.5))
	}
	return b.String()
}

func (c *Color) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (c Color) MarshalYAML() (any, error) { return c.String(), nil }
