package radiance

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// EncodeOptions controls Radiance encoding.
type EncodeOptions struct {
	Compression Compression
	// Software is written as a SOFTWARE= variable when not empty.
	Software string
	// SkipHeaderMetadata drops the variables and comments carried in Image.Header.
	SkipHeaderMetadata bool
}

// Encode writes m to w using the requested compression (adaptive RLE when opt is nil).
//
// Uncompressed and legacy payloads with scanlines of 8 to 32767 pixels cannot contain
// records that a decoder would take for run or scanline markers, such images are rejected.
func Encode(w io.Writer, m *Image, opt *EncodeOptions) error {
	if opt == nil {
		opt = &EncodeOptions{Compression: AdaptiveRLE}
	}
	if m.Width <= 0 || m.Height <= 0 || len(m.Pix) != m.Width*m.Height {
		return errors.New("invalid image dimensions")
	}
	if m.Format != FormatRGBE && m.Format != FormatXYZE {
		return fmt.Errorf("unknown pixel format %v", m.Format)
	}

	length := m.ScanlineLength()
	adaptiveRange := length >= minAdaptiveLength && length <= maxAdaptiveLength
	switch opt.Compression {
	case AdaptiveRLE, LegacyRLE:
		if !adaptiveRange {
			return fmt.Errorf("%v requires scanlines of %d to %d pixels, got %d",
				opt.Compression, minAdaptiveLength, maxAdaptiveLength, length)
		}
	case Uncompressed:
	default:
		return fmt.Errorf("unknown compression %v", opt.Compression)
	}
	if opt.Compression != AdaptiveRLE && adaptiveRange {
		if err := checkLiteralRecords(m.Pix); err != nil {
			return err
		}
	}

	bw := bufio.NewWriterSize(w, readBufSize)
	writeHeader(bw, m, opt)

	switch opt.Compression {
	case AdaptiveRLE:
		writeAdaptive(bw, m.Pix, length)
	case LegacyRLE:
		writeLegacy(bw, m.Pix)
	default:
		writeFlat(bw, m.Pix)
	}

	if err := bw.Flush(); err != nil {
		return &IOError{Op: "write", Err: err}
	}
	return nil
}

func checkLiteralRecords(pix []Pixel) error {
	if len(pix) > 0 && pix[0].isAdaptiveMarker() {
		return errors.New("first pixel collides with the adaptive scanline marker")
	}
	for i, p := range pix {
		if p.isRunMarker() {
			return fmt.Errorf("pixel %d collides with the run marker", i)
		}
	}
	return nil
}

func writeHeader(bw *bufio.Writer, m *Image, opt *EncodeOptions) {
	bw.WriteString(magic + "\n")
	if !opt.SkipHeaderMetadata {
		for _, c := range m.Header.Comments {
			bw.WriteString(c + "\n")
		}
		for _, v := range m.Header.Variables {
			if v.Key == "SOFTWARE" && opt.Software != "" {
				continue
			}
			bw.WriteString(v.Key + "=" + strings.TrimRight(v.Value, "\r\n") + "\n")
		}
	}
	if opt.Software != "" {
		bw.WriteString("SOFTWARE=" + opt.Software + "\n")
	}
	bw.WriteString("FORMAT=" + m.Format.token() + "\n\n")
	bw.WriteString(m.Orientation.resolutionLine(m.Width, m.Height) + "\n")
}

func writeFlat(bw *bufio.Writer, pix []Pixel) {
	for _, p := range pix {
		bw.Write([]byte{p.R, p.G, p.B, p.E})
	}
}

func writeLegacy(bw *bufio.Writer, pix []Pixel) {
	for i := 0; i < len(pix); {
		p := pix[i]
		bw.Write([]byte{p.R, p.G, p.B, p.E})
		i++

		rep := 0
		for i+rep < len(pix) && pix[i+rep] == p {
			rep++
		}
		i += rep
		for rep > 0 {
			n := min(rep, maxLegacyRun)
			bw.Write([]byte{legacyRunMarker, legacyRunMarker, legacyRunMarker, byte(n)})
			rep -= n
		}
	}
}

func writeAdaptive(bw *bufio.Writer, pix []Pixel, length int) {
	planes := make([]byte, 4*length)
	var out []byte
	for start := 0; start < len(pix); start += length {
		for i, p := range pix[start : start+length] {
			planes[i] = p.R
			planes[length+i] = p.G
			planes[2*length+i] = p.B
			planes[3*length+i] = p.E
		}
		out = append(out[:0], 2, 2, byte(length>>8), byte(length))
		for c := 0; c < 4; c++ {
			out = appendPlane(out, planes[c*length:(c+1)*length])
		}
		bw.Write(out)
	}
}
