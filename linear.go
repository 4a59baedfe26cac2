package radiance

import (
	"image"
	"math"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/hdrcolor"
)

// LinearColor is a linear-light RGB triplet.
type LinearColor = hdrcolor.RGB

// Linear converts an RGBE record to linear light: mantissa * 2^(exponent-136).
// A zero exponent is black.
func (p Pixel) Linear() LinearColor {
	if p.E == 0 {
		return LinearColor{}
	}
	f := math.Ldexp(1, int(p.E)-(128+8))
	return LinearColor{R: float64(p.R) * f, G: float64(p.G) * f, B: float64(p.B) * f}
}

// NewPixel encodes a linear-light color as an RGBE record.
// Negative components are clamped to zero.
func NewPixel(r, g, b float64) Pixel {
	r, g, b = math.Max(r, 0), math.Max(g, 0), math.Max(b, 0)
	v := max3(r, g, b)
	if v < 1e-32 {
		return Pixel{}
	}
	frac, exp := math.Frexp(v)
	if exp+128 > 255 {
		return Pixel{R: 255, G: 255, B: 254, E: 255}
	}
	scale := frac * 256 / v
	return Pixel{
		R: uint8(math.Min(r*scale, 255)),
		G: uint8(math.Min(g*scale, 255)),
		B: uint8(math.Min(b*scale, 255)),
		E: uint8(exp + 128),
	}
}

// LinearOptions controls linear conversion.
type LinearOptions struct {
	// ApplyExposure divides the values by Header.Exposure to undo EXPOSURE adjustments.
	ApplyExposure bool
	// Scale multiplies every component, 0 means 1.
	Scale float64
}

// ToLinear converts the image to a linear-light hdr.RGB in display orientation.
func (m *Image) ToLinear(opts ...func(o *LinearOptions)) (*hdr.RGB, error) {
	if m.Format != FormatRGBE {
		return nil, UnsupportedError(m.Format.String() + " pixel format")
	}
	if len(m.Pix) != m.Width*m.Height {
		return nil, FormatError("pixel buffer does not match dimensions")
	}

	opt := LinearOptions{}
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}
	scale := opt.Scale
	if scale == 0 {
		scale = 1
	}
	if opt.ApplyExposure {
		scale /= m.Header.Exposure()
	}

	dst := hdr.NewRGB(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			c := m.Pixel(x, y).Linear()
			if scale != 1 {
				c.R, c.G, c.B = c.R*scale, c.G*scale, c.B*scale
			}
			dst.SetRGB(x, y, c)
		}
	}
	return dst, nil
}
