package graphics

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// Pixmap represents a rectangular pixel buffer in RGBA order, 4 bytes per
// pixel, straight alpha. It is both the software painter's render target
// and the value stored by the render cache.
type Pixmap struct {
	width  int
	height int
	data   []uint8
}

// NewPixmap creates a new transparent pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int { return p.width }

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int { return p.height }

// Data returns the raw pixel data (RGBA format).
func (p *Pixmap) Data() []uint8 { return p.data }

// IsEmpty reports whether the pixmap has no pixels.
func (p *Pixmap) IsEmpty() bool { return p == nil || p.width == 0 || p.height == 0 }

// SetPixel sets the color of a single pixel.
func (p *Pixmap) SetPixel(x, y int, c Color) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = uint8(clamp255(c.R * 255))
	p.data[i+1] = uint8(clamp255(c.G * 255))
	p.data[i+2] = uint8(clamp255(c.B * 255))
	p.data[i+3] = uint8(clamp255(c.A * 255))
}

// GetPixel returns the color of a single pixel.
func (p *Pixmap) GetPixel(x, y int) Color {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := (y*p.width + x) * 4
	return Color{
		R: float64(p.data[i+0]) / 255,
		G: float64(p.data[i+1]) / 255,
		B: float64(p.data[i+2]) / 255,
		A: float64(p.data[i+3]) / 255,
	}
}

// BlendPixel composites c over the existing pixel using source-over with
// the given coverage in [0, 1].
func (p *Pixmap) BlendPixel(x, y int, c Color, coverage float64) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	a := c.A * coverage
	if a <= 0 {
		return
	}
	i := (y*p.width + x) * 4
	if a >= 1 {
		p.data[i+0] = uint8(clamp255(c.R * 255))
		p.data[i+1] = uint8(clamp255(c.G * 255))
		p.data[i+2] = uint8(clamp255(c.B * 255))
		p.data[i+3] = 255
		return
	}
	dr := float64(p.data[i+0]) / 255
	dg := float64(p.data[i+1]) / 255
	db := float64(p.data[i+2]) / 255
	da := float64(p.data[i+3]) / 255

	outA := a + da*(1-a)
	if outA <= 0 {
		p.data[i+0], p.data[i+1], p.data[i+2], p.data[i+3] = 0, 0, 0, 0
		return
	}
	p.data[i+0] = uint8(clamp255((c.R*a + dr*da*(1-a)) / outA * 255))
	p.data[i+1] = uint8(clamp255((c.G*a + dg*da*(1-a)) / outA * 255))
	p.data[i+2] = uint8(clamp255((c.B*a + db*da*(1-a)) / outA * 255))
	p.data[i+3] = uint8(clamp255(outA * 255))
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c Color) {
	r := uint8(clamp255(c.R * 255))
	g := uint8(clamp255(c.G * 255))
	b := uint8(clamp255(c.B * 255))
	a := uint8(clamp255(c.A * 255))
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
	}
}

// ToImage converts the pixmap to an image.NRGBA sharing no storage.
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// FromImage creates a pixmap from an image.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	pm := NewPixmap(bounds.Dx(), bounds.Dy())
	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Stride == pm.width*4 {
		copy(pm.data, nrgba.Pix)
		return pm
	}
	for y := 0; y < pm.height; y++ {
		for x := 0; x < pm.width; x++ {
			pm.SetPixel(x, y, FromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y)))
		}
	}
	return pm
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, p.ToImage())
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.GetPixel(x, y).NRGBA()
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
