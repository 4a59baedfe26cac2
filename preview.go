package radiance

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/webp"
	"github.com/mdouchement/hdr/tmo"
	"github.com/nfnt/resize"
)

// Interpolation selects the resampling filter for previews.
type Interpolation int

const (
	InterpolationNearest Interpolation = iota
	InterpolationBilinear
	InterpolationBicubic
	InterpolationMitchellNetravali
	InterpolationLanczos2
	InterpolationLanczos3
)

func (i Interpolation) resizeFunc() resize.InterpolationFunction {
	switch i {
	case InterpolationBilinear:
		return resize.Bilinear
	case InterpolationBicubic:
		return resize.Bicubic
	case InterpolationMitchellNetravali:
		return resize.MitchellNetravali
	case InterpolationLanczos2:
		return resize.Lanczos2
	case InterpolationLanczos3:
		return resize.Lanczos3
	default:
		return resize.NearestNeighbor
	}
}

// ParseInterpolation parses an interpolation name such as "lanczos3".
func ParseInterpolation(s string) (Interpolation, error) {
	switch strings.ToLower(s) {
	case "nearest", "":
		return InterpolationNearest, nil
	case "bilinear":
		return InterpolationBilinear, nil
	case "bicubic":
		return InterpolationBicubic, nil
	case "mitchell":
		return InterpolationMitchellNetravali, nil
	case "lanczos2":
		return InterpolationLanczos2, nil
	case "lanczos3":
		return InterpolationLanczos3, nil
	default:
		return 0, fmt.Errorf("unknown interpolation %q", s)
	}
}

// ToneMapper selects how linear values are mapped to SDR.
type ToneMapper int

const (
	// ToneMapClip clamps to [0, 1] and applies the sRGB curve.
	ToneMapClip ToneMapper = iota
	// ToneMapLinear rescales the full range linearly.
	ToneMapLinear
	// ToneMapReinhard applies the Reinhard '05 global operator.
	ToneMapReinhard
)

// ParseToneMapper parses "clip", "linear" or "reinhard".
func ParseToneMapper(s string) (ToneMapper, error) {
	switch strings.ToLower(s) {
	case "clip", "":
		return ToneMapClip, nil
	case "linear":
		return ToneMapLinear, nil
	case "reinhard":
		return ToneMapReinhard, nil
	default:
		return 0, fmt.Errorf("unknown tone mapper %q", s)
	}
}

// PreviewOptions controls SDR preview rendering.
type PreviewOptions struct {
	// Width and Height of the result, 0 keeps the aspect ratio, both 0 keep the size.
	Width         uint
	Height        uint
	Interpolation Interpolation
	ToneMapper    ToneMapper
	ApplyExposure bool
	// Stops shifts the exposure before ToneMapClip, in powers of two.
	Stops float64
}

// Preview renders an SDR image of m.
func Preview(m *Image, opts ...func(o *PreviewOptions)) (image.Image, error) {
	opt := PreviewOptions{Interpolation: InterpolationLanczos2}
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}

	var sdr image.Image
	switch opt.ToneMapper {
	case ToneMapClip:
		clipped, err := clipPreview(m, opt)
		if err != nil {
			return nil, err
		}
		sdr = clipped
	case ToneMapLinear, ToneMapReinhard:
		lin, err := m.ToLinear(func(o *LinearOptions) {
			o.ApplyExposure = opt.ApplyExposure
		})
		if err != nil {
			return nil, err
		}
		if opt.ToneMapper == ToneMapReinhard {
			sdr = tmo.NewDefaultReinhard05(lin).Perform()
		} else {
			sdr = tmo.NewLinear(lin).Perform()
		}
	default:
		return nil, fmt.Errorf("unknown tone mapper %d", opt.ToneMapper)
	}

	if opt.Width == 0 && opt.Height == 0 {
		return sdr, nil
	}
	return resize.Resize(opt.Width, opt.Height, sdr, opt.Interpolation.resizeFunc()), nil
}

func clipPreview(m *Image, opt PreviewOptions) (*image.NRGBA, error) {
	if m.Format != FormatRGBE {
		return nil, UnsupportedError(m.Format.String() + " pixel format")
	}
	scale := 1.0
	if opt.Stops != 0 {
		scale = math.Exp2(opt.Stops)
	}
	if opt.ApplyExposure {
		scale /= m.Header.Exposure()
	}

	dst := image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			c := m.Pixel(x, y).Linear()
			dst.SetNRGBA(x, y, color.NRGBA{
				R: toByte(srgbOetf(clampUnit(c.R * scale))),
				G: toByte(srgbOetf(clampUnit(c.G * scale))),
				B: toByte(srgbOetf(clampUnit(c.B * scale))),
				A: 0xff,
			})
		}
	}
	return dst, nil
}

func toByte(v float64) uint8 {
	return uint8(clampUnit(v)*255 + 0.5)
}

// PreviewFormat returns the preview encoding implied by a file name.
func PreviewFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png", nil
	case ".jpg", ".jpeg":
		return "jpeg", nil
	case ".webp":
		return "webp", nil
	default:
		return "", fmt.Errorf("unsupported preview extension %q (supported: png, jpeg, webp)", filepath.Ext(path))
	}
}

// EncodePreview writes an SDR image as png, jpeg or webp.
func EncodePreview(w io.Writer, img image.Image, format string, quality int) error {
	if quality <= 0 {
		quality = 85
	}
	switch format {
	case "png":
		return png.Encode(w, img)
	case "jpeg", "jpg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case "webp":
		return webp.Encode(w, img, webp.Options{Quality: quality})
	default:
		return fmt.Errorf("unsupported preview format: %q (supported: png, jpeg, webp)", format)
	}
}

// PreviewFile decodes inPath and writes its preview to outPath, the output
// format follows the outPath extension.
func PreviewFile(inPath, outPath string, quality int, opts ...func(o *PreviewOptions)) error {
	format, err := PreviewFormat(outPath)
	if err != nil {
		return err
	}
	m, err := DecodeFile(inPath)
	if err != nil {
		return err
	}
	sdr, err := Preview(m, opts...)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}

	f, err := os.Create(filepath.Clean(outPath))
	if err != nil {
		return err
	}
	if err := EncodePreview(f, sdr, format, quality); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return f.Close()
}
