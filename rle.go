package radiance

import (
	"errors"
	"io"
)

var errPlaneOverrun = errors.New("run overruns scanline")

// readAdaptive decodes scanlines that each start with a (2, 2, hi, lo) marker
// followed by the R, G, B and E planes, every plane run-length encoded on its own.
func (d *decoder) readAdaptive(length int, first Pixel) ([]Pixel, error) {
	pix := d.newPix()
	planes := make([]byte, 4*length)
	rec := first
	for start := 0; start < d.want; start += length {
		if start > 0 {
			var err error
			if rec, err = d.readRecord(start); err != nil {
				return nil, err
			}
		}
		if !rec.isAdaptiveMarker() {
			return nil, FormatError("bad scanline marker")
		}
		if int(rec.B)<<8|int(rec.E) != length {
			return nil, FormatError("scanline length mismatch")
		}

		for c := 0; c < 4; c++ {
			err := d.readPlane(planes[c*length : (c+1)*length])
			var fe FormatError
			switch {
			case err == nil:
			case errors.Is(err, errPlaneOverrun):
				return nil, d.truncated(start)
			case errors.As(err, &fe):
				return nil, err
			default:
				return nil, d.streamErr(err, start)
			}
		}

		r, g, b, e := planes[:length], planes[length:2*length], planes[2*length:3*length], planes[3*length:]
		for i := 0; i < length; i++ {
			pix = append(pix, Pixel{R: r[i], G: g[i], B: b[i], E: e[i]})
		}
	}
	return pix, nil
}

// readPlane fills plane from byte runs: a count above 128 repeats the next byte
// count-128 times, any other non-zero count copies that many bytes.
func (d *decoder) readPlane(plane []byte) error {
	for i := 0; i < len(plane); {
		count, err := d.br.ReadByte()
		if err != nil {
			return err
		}
		if count > adaptiveRunFlag {
			n := int(count) - adaptiveRunFlag
			if i+n > len(plane) {
				return errPlaneOverrun
			}
			v, err := d.br.ReadByte()
			if err != nil {
				return err
			}
			for end := i + n; i < end; i++ {
				plane[i] = v
			}
			continue
		}
		if count == 0 {
			return FormatError("zero-length run")
		}
		n := int(count)
		if i+n > len(plane) {
			return errPlaneOverrun
		}
		if _, err := io.ReadFull(d.br, plane[i:i+n]); err != nil {
			return err
		}
		i += n
	}
	return nil
}

// appendPlane run-length encodes one channel plane.
func appendPlane(dst, plane []byte) []byte {
	for i := 0; i < len(plane); {
		run := 1
		for i+run < len(plane) && run < maxAdaptiveRun && plane[i+run] == plane[i] {
			run++
		}
		if run >= minAdaptiveRunLen {
			dst = append(dst, byte(adaptiveRunFlag+run), plane[i])
			i += run
			continue
		}

		start := i
		for i < len(plane) && i-start < maxAdaptiveDump && runAt(plane, i) < minAdaptiveRunLen {
			i++
		}
		dst = append(dst, byte(i-start))
		dst = append(dst, plane[start:i]...)
	}
	return dst
}

// runAt counts equal bytes starting at i, up to minAdaptiveRunLen.
func runAt(plane []byte, i int) int {
	n := 1
	for i+n < len(plane) && n < minAdaptiveRunLen && plane[i+n] == plane[i] {
		n++
	}
	return n
}
