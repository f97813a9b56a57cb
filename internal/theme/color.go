// Package theme provides the Color value shared by screens and services.
package theme

import (
	"encoding/hex"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color is an immutable RGBA value.
type Color struct {
	R, G, B, A uint8
}

// Named palette.
var (
	Black  = Color{0x00, 0x00, 0x00, 0xff}
	White  = Color{0xff, 0xff, 0xff, 0xff}
	Red    = Color{0xff, 0x3b, 0x30, 0xff}
	Orange = Color{0xff, 0x95, 0x00, 0xff}
	Yellow = Color{0xff, 0xcc, 0x00, 0xff}
	Green  = Color{0x34, 0xc7, 0x59, 0xff}
	Blue   = Color{0x00, 0x7a, 0xff, 0xff}
	Purple = Color{0xaf, 0x52, 0xde, 0xff}
	Gray   = Color{0x8e, 0x8e, 0x93, 0xff}
)

var palette = map[string]Color{
	"black":  Black,
	"white":  White,
	"red":    Red,
	"orange": Orange,
	"yellow": Yellow,
	"green":  Green,
	"blue":   Blue,
	"purple": Purple,
	"gray":   Gray,
}

// ParseColor accepts a palette name ("red"), "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := palette[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("unknown color %q", s)
	}
	b, err := hex.DecodeString(s[1:])
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	switch len(b) {
	case 3:
		return Color{b[0], b[1], b[2], 0xff}, nil
	case 4:
		return Color{b[0], b[1], b[2], b[3]}, nil
	default:
		return Color{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
}

// Name returns the palette name of c, if it has one.
func (c Color) Name() (string, bool) {
	for name, pc := range palette {
		if pc == c {
			return name, true
		}
	}
	return "", false
}

// String renders c as "#rrggbb", or "#rrggbbaa" when not opaque.
func (c Color) String() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func (c Color) MarshalYAML() (any, error) {
	if name, ok := c.Name(); ok {
		return name, nil
	}
	return c.String(), nil
}

func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
