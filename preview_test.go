package radiance

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/gen2brain/webp"
	"github.com/stretchr/testify/require"
)

func previewSource() *Image {
	m := NewImage(8, 4)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			p := Pixel{R: 128, G: 128, B: 128, E: 129} // 1.0
			if x < 4 {
				p = Pixel{}
			}
			m.SetPixel(x, y, p)
		}
	}
	return m
}

func TestPreview_clip(t *testing.T) {
	sdr, err := Preview(previewSource())
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 8, 4), sdr.Bounds())

	nrgba := sdr.(*image.NRGBA)
	require.Equal(t, color.NRGBA{A: 255}, nrgba.NRGBAAt(0, 0))
	require.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, nrgba.NRGBAAt(7, 3))

	sdr, err = Preview(previewSource(), func(o *PreviewOptions) { o.Stops = -1 })
	require.NoError(t, err)
	half := sdr.(*image.NRGBA).NRGBAAt(7, 0)
	require.InDelta(t, 188, int(half.R), 1) // sRGB(0.5)
}

func TestPreview_resize(t *testing.T) {
	for _, tm := range []ToneMapper{ToneMapClip, ToneMapLinear, ToneMapReinhard} {
		sdr, err := Preview(previewSource(), func(o *PreviewOptions) {
			o.ToneMapper = tm
			o.Width = 4
			o.Interpolation = InterpolationBilinear
		})
		require.NoError(t, err)
		require.Equal(t, 4, sdr.Bounds().Dx())
		require.Equal(t, 2, sdr.Bounds().Dy())
	}
}

func TestPreview_unsupported(t *testing.T) {
	m := previewSource()
	m.Format = FormatXYZE
	_, err := Preview(m)
	var ue UnsupportedError
	require.ErrorAs(t, err, &ue)
}

func TestEncodePreview(t *testing.T) {
	sdr, err := Preview(previewSource())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodePreview(&buf, sdr, "png", 0))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, sdr.Bounds(), decoded.Bounds())

	buf.Reset()
	require.NoError(t, EncodePreview(&buf, sdr, "jpeg", 90))
	require.NotZero(t, buf.Len())

	buf.Reset()
	require.NoError(t, EncodePreview(&buf, sdr, "webp", 80))
	data := buf.Bytes()
	require.Greater(t, len(data), 12)
	require.Equal(t, "RIFF", string(data[:4]))
	require.Equal(t, "WEBP", string(data[8:12]))
	decoded, err = webp.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, sdr.Bounds(), decoded.Bounds())

	require.Error(t, EncodePreview(&buf, sdr, "gif", 0))
}

func TestParseOptions(t *testing.T) {
	f, err := PreviewFormat("a/b.JPG")
	require.NoError(t, err)
	require.Equal(t, "jpeg", f)
	_, err = PreviewFormat("a.tiff")
	require.Error(t, err)

	i, err := ParseInterpolation("lanczos3")
	require.NoError(t, err)
	require.Equal(t, InterpolationLanczos3, i)
	_, err = ParseInterpolation("sinc")
	require.Error(t, err)

	tm, err := ParseToneMapper("reinhard")
	require.NoError(t, err)
	require.Equal(t, ToneMapReinhard, tm)
	_, err = ParseToneMapper("aces")
	require.Error(t, err)
}
