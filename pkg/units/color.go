package units

import (
	"fmt"
	"strings"
)

// Color is an RGB triple. Its wire form is an uppercase hex string without a
// leading '#', which is what the hub expects in actuator payloads.
type Color struct {
	R uint8
	G uint8
	B uint8
}

var (
	White = Color{R: 0xFF, G: 0xFF, B: 0xFF}
	Black = Color{}
)

// RGB builds a Color from its components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ParseColor parses a hex color string such as "FF8800" or "#ff8800".
func ParseColor(s string) (Color, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(raw) != 6 {
		return Color{}, fmt.Errorf("invalid color %q: want 6 hex digits", s)
	}

	var c Color
	if _, err := fmt.Sscanf(strings.ToUpper(raw), "%02X%02X%02X", &c.R, &c.G, &c.B); err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}

// Hex returns the uppercase hex form, e.g. "FF8800".
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// String is the wire form used for actuator writes.
func (c Color) String() string {
	return c.Hex()
}
