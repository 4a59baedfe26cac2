package radiance

import (
	"bufio"
	"errors"
	"io"
)

// Decode reads a Radiance HDR picture from r.
//
// The returned image holds the raw records with any run-length encoding expanded.
// On error no image is returned. Decode does not close r.
func Decode(r io.Reader) (*Image, error) {
	d := newDecoder(r)
	cfg, err := d.readConfig()
	if err != nil {
		return nil, err
	}

	m := &Image{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Format:      cfg.Format,
		Orientation: cfg.Orientation,
		Header:      cfg.Header,
	}
	if err := d.readPixels(m, cfg.Width*cfg.Height); err != nil {
		return nil, err
	}
	return m, nil
}

// DecodeConfig reads the header and resolution line only.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg, err := newDecoder(r).readConfig()
	if err != nil {
		return Config{}, err
	}
	return *cfg, nil
}

// DecodeHeader reads the metadata block only. Unlike Decode and DecodeConfig,
// it does not reject XYZE files, so callers can inspect them.
func DecodeHeader(r io.Reader) (*Header, error) {
	return readHeader(bufio.NewReader(r))
}

type decoder struct {
	br   *bufio.Reader
	want int
	rec  [4]byte
}

func newDecoder(r io.Reader) *decoder {
	br, ok := r.(*bufio.Reader)
	if !ok || br.Size() < readBufSize {
		br = bufio.NewReaderSize(r, readBufSize)
	}
	return &decoder{br: br}
}

func (d *decoder) readConfig() (*Config, error) {
	h, err := readHeader(d.br)
	if err != nil {
		return nil, err
	}
	if h.Format == FormatXYZE {
		return nil, UnsupportedError("XYZE pixel format")
	}

	line, err := readLine(d.br)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, FormatError("malformed resolution line")
		}
		return nil, err
	}
	o, w, h2, err := parseResolution(line)
	if err != nil {
		return nil, err
	}
	return &Config{
		Width:       w,
		Height:      h2,
		Format:      h.Format,
		Orientation: o,
		Header:      *h,
	}, nil
}

// readPixels fills m.Pix with want pixels, picking the payload scheme from the
// scanline length and the first record.
func (d *decoder) readPixels(m *Image, want int) (err error) {
	d.want = want
	length := m.ScanlineLength()
	if length < minAdaptiveLength || length > maxAdaptiveLength {
		m.Compression = Uncompressed
		m.Pix, err = d.readFlat()
		return err
	}

	first, err := d.readRecord(0)
	if err != nil {
		return err
	}
	if first.isAdaptiveMarker() {
		m.Compression = AdaptiveRLE
		m.Pix, err = d.readAdaptive(length, first)
		return err
	}

	var runs bool
	if m.Pix, runs, err = d.readLegacy(first); err != nil {
		return err
	}
	m.Compression = Uncompressed
	if runs {
		m.Compression = LegacyRLE
	}
	return nil
}

// newPix returns an empty pixel buffer, it grows with the payload so a short
// stream never costs the full resolution.
func (d *decoder) newPix() []Pixel {
	return make([]Pixel, 0, min(d.want, readBufSize))
}

// readRecord reads one 4-byte record, have is the number of pixels produced so far.
func (d *decoder) readRecord(have int) (Pixel, error) {
	if _, err := io.ReadFull(d.br, d.rec[:]); err != nil {
		return Pixel{}, d.streamErr(err, have)
	}
	return Pixel{R: d.rec[0], G: d.rec[1], B: d.rec[2], E: d.rec[3]}, nil
}

func (d *decoder) streamErr(err error, have int) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return d.truncated(have)
	}
	return &IOError{Op: "read pixels", Err: err}
}

func (d *decoder) truncated(have int) error {
	return &TruncatedError{Have: have, Want: d.want}
}

// readFlat maps every record to exactly one pixel.
func (d *decoder) readFlat() ([]Pixel, error) {
	pix := d.newPix()
	buf := make([]byte, min(4*d.want, readBufSize))
	for len(pix) < d.want {
		chunk := buf[:min(len(buf), 4*(d.want-len(pix)))]
		n, err := io.ReadFull(d.br, chunk)
		for i := 0; i+4 <= n; i += 4 {
			pix = append(pix, Pixel{R: chunk[i], G: chunk[i+1], B: chunk[i+2], E: chunk[i+3]})
		}
		if err != nil {
			return nil, d.streamErr(err, len(pix))
		}
	}
	return pix, nil
}

// readLegacy decodes literal records and (255, 255, 255, n) markers that repeat
// the previous pixel n more times. It reports whether any marker was found.
func (d *decoder) readLegacy(rec Pixel) (pix []Pixel, runs bool, err error) {
	pix = d.newPix()
	var last Pixel
	for {
		if rec.isRunMarker() {
			if len(pix) == 0 {
				return nil, false, FormatError("run marker before first pixel")
			}
			count := int(rec.E)
			if len(pix)+count > d.want {
				return nil, false, d.truncated(len(pix))
			}
			for i := 0; i < count; i++ {
				pix = append(pix, last)
			}
			runs = true
		} else {
			if len(pix) >= d.want {
				return nil, false, d.truncated(len(pix))
			}
			pix = append(pix, rec)
			// Markers repeat the last literal pixel, never the marker record.
			last = rec
		}

		if len(pix) == d.want {
			return pix, runs, nil
		}
		if rec, err = d.readRecord(len(pix)); err != nil {
			return nil, false, err
		}
	}
}
