package radiance

import (
	"bufio"
	"errors"
	"image"
	"io"
	"strings"

	"github.com/mdouchement/hdr/hdrcolor"
)

func init() {
	image.RegisterFormat("hdr", magic, decodeImage, decodeImageConfig)
}

// IsRadiance reports whether r starts with the Radiance magic line.
// Only the first line is read.
func IsRadiance(r io.Reader) (bool, error) {
	br := bufio.NewReaderSize(r, len(magic)+16)
	line, err := br.ReadSlice('\n')
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return false, err
	}
	return strings.TrimSpace(string(line)) == magic, nil
}

// decodeImage backs image.Decode, it returns a linear *hdr.RGB.
func decodeImage(r io.Reader) (image.Image, error) {
	m, err := Decode(r)
	if err != nil {
		return nil, err
	}
	lin, err := m.ToLinear()
	if err != nil {
		return nil, err
	}
	return lin, nil
}

func decodeImageConfig(r io.Reader) (image.Config, error) {
	cfg, err := DecodeConfig(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: hdrcolor.RGBModel,
		Width:      cfg.Width,
		Height:     cfg.Height,
	}, nil
}
