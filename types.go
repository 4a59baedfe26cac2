package radiance

import (
	"fmt"
	"strconv"
	"strings"
)

// PixelFormat identifies how the 4-byte pixel records are interpreted.
type PixelFormat int

const (
	FormatRGBE PixelFormat = iota
	FormatXYZE
)

func (f PixelFormat) String() string {
	switch f {
	case FormatRGBE:
		return "RGBE"
	case FormatXYZE:
		return "XYZE"
	default:
		return "PixelFormat(" + strconv.Itoa(int(f)) + ")"
	}
}

func (f PixelFormat) token() string {
	if f == FormatXYZE {
		return formatTokenXYZE
	}
	return formatTokenRGBE
}

// Compression identifies the payload scheme that was found in (or written to) a file.
// It is never declared by the header, the decoder infers it from the stream.
type Compression int

const (
	Uncompressed Compression = iota
	LegacyRLE
	AdaptiveRLE
)

func (c Compression) String() string {
	switch c {
	case Uncompressed:
		return "uncompressed"
	case LegacyRLE:
		return "legacy-rle"
	case AdaptiveRLE:
		return "adaptive-rle"
	default:
		return "Compression(" + strconv.Itoa(int(c)) + ")"
	}
}

// ParseCompression parses the names returned by Compression.String.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "uncompressed", "flat", "none":
		return Uncompressed, nil
	case "legacy-rle", "legacy":
		return LegacyRLE, nil
	case "adaptive-rle", "adaptive", "rle":
		return AdaptiveRLE, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", s)
	}
}

// Pixel is a raw RGBE (or XYZE) record: three mantissas and a shared exponent.
type Pixel struct {
	R, G, B, E uint8
}

func (p Pixel) isRunMarker() bool {
	return p.R == legacyRunMarker && p.G == legacyRunMarker && p.B == legacyRunMarker
}

func (p Pixel) isAdaptiveMarker() bool {
	return p.R == 2 && p.G == 2 && p.B&0x80 == 0
}

// Variable is a KEY=value header line kept verbatim.
type Variable struct {
	Key   string
	Value string
}

// Header holds the textual metadata block of a Radiance file.
type Header struct {
	Format PixelFormat
	// Variables lists KEY=value lines other than FORMAT, in file order.
	Variables []Variable
	// Comments lists the remaining non-empty lines (comments, generating commands).
	Comments []string
}

// Lookup returns the values of every variable named key, in file order.
func (h *Header) Lookup(key string) []string {
	var res []string
	for _, v := range h.Variables {
		if v.Key == key {
			res = append(res, v.Value)
		}
	}
	return res
}

// Exposure returns the product of all EXPOSURE values, or 1 when there are none.
// Malformed values are ignored.
func (h *Header) Exposure() float64 {
	e := 1.0
	for _, s := range h.Lookup("EXPOSURE") {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || f <= 0 {
			continue
		}
		e *= f
	}
	return e
}

// Orientation describes the scanline layout declared by the resolution line.
//
// The zero value is the standard "-Y h +X w" layout: scanlines are rows stored
// top to bottom, pixels left to right.
type Orientation struct {
	// ColumnMajor is set when the resolution line starts with the X axis,
	// so scanlines are columns.
	ColumnMajor bool
	// FlipX is set for -X (pixels stored right to left).
	FlipX bool
	// FlipY is set for +Y (stored bottom to top).
	FlipY bool
}

// IsStandard reports whether o is the "-Y +X" layout.
func (o Orientation) IsStandard() bool {
	return o == Orientation{}
}

func (o Orientation) xToken() string {
	if o.FlipX {
		return "-X"
	}
	return "+X"
}

func (o Orientation) yToken() string {
	if o.FlipY {
		return "+Y"
	}
	return "-Y"
}

// resolutionLine formats the resolution line for display dimensions width x height.
func (o Orientation) resolutionLine(width, height int) string {
	if o.ColumnMajor {
		return fmt.Sprintf("%s %d %s %d", o.xToken(), width, o.yToken(), height)
	}
	return fmt.Sprintf("%s %d %s %d", o.yToken(), height, o.xToken(), width)
}

func (o Orientation) String() string {
	if o.ColumnMajor {
		return o.xToken() + " " + o.yToken()
	}
	return o.yToken() + " " + o.xToken()
}

// index maps display coordinates to the position in stream order.
func (o Orientation) index(x, y, width, height int) int {
	if o.FlipX {
		x = width - 1 - x
	}
	if o.FlipY {
		y = height - 1 - y
	}
	if o.ColumnMajor {
		return x*height + y
	}
	return y*width + x
}

// Config describes an image without its pixels.
type Config struct {
	Width       int
	Height      int
	Format      PixelFormat
	Orientation Orientation
	Header      Header
}

// Image is a decoded Radiance picture.
//
// Pix holds Width*Height raw records in stream order: scanline after scanline as laid out
// by Orientation. Use Pixel for display-space access.
type Image struct {
	Width       int
	Height      int
	Format      PixelFormat
	Compression Compression
	Orientation Orientation
	Header      Header
	Pix         []Pixel
}

// NewImage allocates a standard-orientation RGBE image.
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Format: FormatRGBE,
		Header: Header{Format: FormatRGBE},
		Pix:    make([]Pixel, width*height),
	}
}

// ScanlineLength returns the number of pixels in one stored scanline.
func (m *Image) ScanlineLength() int {
	return scanlineLength(m.Width, m.Height, m.Orientation)
}

// Scanlines returns the number of stored scanlines.
func (m *Image) Scanlines() int {
	if m.Orientation.ColumnMajor {
		return m.Width
	}
	return m.Height
}

// Pixel returns the record at display position (x, y), (0, 0) being the top-left corner.
func (m *Image) Pixel(x, y int) Pixel {
	return m.Pix[m.Orientation.index(x, y, m.Width, m.Height)]
}

// SetPixel stores p at display position (x, y).
func (m *Image) SetPixel(x, y int, p Pixel) {
	m.Pix[m.Orientation.index(x, y, m.Width, m.Height)] = p
}

func scanlineLength(width, height int, o Orientation) int {
	if o.ColumnMajor {
		return height
	}
	return width
}
