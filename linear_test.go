package radiance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPixel_Linear(t *testing.T) {
	c := Pixel{R: 128, G: 64, B: 0, E: 129}.Linear()
	require.Equal(t, LinearColor{R: 1, G: 0.5, B: 0}, c)

	require.Equal(t, LinearColor{}, Pixel{R: 200, G: 100, B: 50, E: 0}.Linear())

	c = Pixel{R: 1, G: 1, B: 1, E: 255}.Linear()
	require.Equal(t, math.Ldexp(1, 119), c.R)
}

func TestNewPixel(t *testing.T) {
	require.Equal(t, Pixel{R: 128, G: 64, B: 0, E: 129}, NewPixel(1, 0.5, 0))
	require.Equal(t, Pixel{}, NewPixel(0, 0, 0))
	require.Equal(t, Pixel{}, NewPixel(-1, -2, 1e-40))

	for _, v := range []float64{0.001, 0.37, 1, 3.5, 1234.5, 1e6} {
		c := NewPixel(v, v/2, v/3).Linear()
		require.InEpsilon(t, v, c.R, 0.01, "%v", v)
		require.InEpsilon(t, v/2, c.G, 0.03, "%v", v)
		require.InEpsilon(t, v/3, c.B, 0.03, "%v", v)
	}
}

func TestImage_ToLinear(t *testing.T) {
	m := NewImage(2, 2)
	m.Orientation = Orientation{FlipX: true}
	m.Header.Variables = []Variable{{Key: "EXPOSURE", Value: "2"}}
	m.SetPixel(0, 0, Pixel{R: 128, G: 128, B: 128, E: 129})
	m.SetPixel(1, 1, Pixel{R: 128, G: 0, B: 0, E: 130})

	lin, err := m.ToLinear()
	require.NoError(t, err)
	require.Equal(t, 2, lin.Bounds().Dx())
	require.Equal(t, 2, lin.Bounds().Dy())

	r, g, b, _ := lin.HDRAt(0, 0).HDRRGBA()
	require.Equal(t, []float64{1, 1, 1}, []float64{r, g, b})
	r, g, b, _ = lin.HDRAt(1, 1).HDRRGBA()
	require.Equal(t, []float64{2, 0, 0}, []float64{r, g, b})
	r, _, _, _ = lin.HDRAt(1, 0).HDRRGBA()
	require.Zero(t, r)

	lin, err = m.ToLinear(func(o *LinearOptions) { o.ApplyExposure = true })
	require.NoError(t, err)
	r, _, _, _ = lin.HDRAt(1, 1).HDRRGBA()
	require.Equal(t, 1.0, r)

	m.Format = FormatXYZE
	_, err = m.ToLinear()
	var ue UnsupportedError
	require.ErrorAs(t, err, &ue)
}
