package radiance_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vearutop/radiance"
)

func ExampleDecode() {
	payload := []byte{1, 2, 3, 128, 4, 5, 6, 129, 7, 8, 9, 130, 10, 11, 12, 131}
	data := append([]byte("#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n-Y 2 +X 2\n"), payload...)

	m, err := radiance.Decode(bytes.NewReader(data))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(m.Width, m.Height, m.Format, m.Compression, m.Pixel(1, 1))
	// Output: 2 2 RGBE uncompressed {10 11 12 131}
}

func ExampleDecode_unsupported() {
	data := []byte("#?RADIANCE\nFORMAT=32-bit_rle_xyze\n\n-Y 1 +X 1\n\x01\x02\x03\x80")

	_, err := radiance.Decode(bytes.NewReader(data))
	var unsupported radiance.UnsupportedError
	fmt.Println(errors.As(err, &unsupported))
	// Output: true
}

func ExamplePreviewFile() {
	_ = radiance.PreviewFile(filepath.FromSlash("testdata/memorial.hdr"), filepath.Join(os.TempDir(), "memorial.webp"), 85,
		func(o *radiance.PreviewOptions) {
			o.Width = 800
			o.ToneMapper = radiance.ToneMapReinhard
			o.Interpolation = radiance.InterpolationLanczos3
		})
}
