package graphics

import (
	"image/color"
)

// Color represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1]. Alpha is straight (not
// premultiplied); the painter premultiplies at composite time.
type Color struct {
	R, G, B, A float64
}

// Common colors.
var (
	Transparent = Color{0, 0, 0, 0}
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
)

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// ARGBEncoded creates a Color from a 0xAARRGGBB encoded value, the encoding
// used by the runtime's color type.
func ARGBEncoded(argb uint32) Color {
	return Color{
		A: float64(argb>>24&0xff) / 255,
		R: float64(argb>>16&0xff) / 255,
		G: float64(argb>>8&0xff) / 255,
		B: float64(argb&0xff) / 255,
	}
}

// ARGB returns the color as a 0xAARRGGBB encoded value.
func (c Color) ARGB() uint32 {
	return uint32(clamp255(c.A*255))<<24 |
		uint32(clamp255(c.R*255))<<16 |
		uint32(clamp255(c.G*255))<<8 |
		uint32(clamp255(c.B*255))
}

// IsTransparent reports whether the color has zero alpha.
func (c Color) IsTransparent() bool {
	return c.A <= 0
}

// WithAlpha returns the color with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	return Color{R: c.R, G: c.G, B: c.B, A: a}
}

// Scaled returns the color with its alpha multiplied by opacity.
func (c Color) Scaled(opacity float64) Color {
	return Color{R: c.R, G: c.G, B: c.B, A: c.A * opacity}
}

// Lerp performs linear interpolation between two colors.
func (c Color) Lerp(other Color, t float64) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// NRGBA converts the color to the standard library representation.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// FromColor converts a standard color.Color to a Color.
func FromColor(c color.Color) Color {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Transparent
	}
	// RGBA returns premultiplied components; undo that.
	fa := float64(a) / 65535
	return Color{
		R: float64(r) / 65535 / fa,
		G: float64(g) / 65535 / fa,
		B: float64(b) / 65535 / fa,
		A: fa,
	}
}

// Luminance returns the HSV value component, used to classify a host
// palette as dark or light.
func (c Color) Luminance() float64 {
	v := c.R
	if c.G > v {
		v = c.G
	}
	if c.B > v {
		v = c.B
	}
	return v
}

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
