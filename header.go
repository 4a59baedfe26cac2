package radiance

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// readLine returns the next line without its terminator. A final line without
// a newline is returned with a nil error, io.EOF is only returned when nothing was read.
func readLine(br *bufio.Reader) (string, error) {
	var buf []byte
	for {
		chunk, err := br.ReadSlice('\n')
		buf = append(buf, chunk...)
		if len(buf) > maxHeaderLine {
			return "", FormatError("header line too long")
		}
		if err == nil {
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if errors.Is(err, io.EOF) {
			if len(buf) == 0 {
				return "", io.EOF
			}
			break
		}
		return "", &IOError{Op: "read header", Err: err}
	}
	return strings.TrimRight(string(buf), "\r\n"), nil
}

// readHeader consumes the magic line and the metadata block up to the blank line.
// Reaching the end of the stream also ends the block.
func readHeader(br *bufio.Reader) (*Header, error) {
	line, err := readLine(br)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, FormatError("not a Radiance HDR file")
		}
		return nil, err
	}
	if strings.TrimSpace(line) != magic {
		return nil, FormatError("not a Radiance HDR file")
	}

	h := &Header{Format: FormatRGBE}
	for {
		line, err := readLine(br)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return h, nil
			}
			return nil, err
		}
		if strings.TrimSpace(line) == "" {
			return h, nil
		}
		if strings.HasPrefix(line, "#") {
			h.Comments = append(h.Comments, line)
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			h.Comments = append(h.Comments, line)
			continue
		}
		key = strings.TrimSpace(key)
		if key != "FORMAT" {
			h.Variables = append(h.Variables, Variable{Key: key, Value: value})
			continue
		}
		switch strings.TrimSpace(value) {
		case formatTokenRGBE:
			h.Format = FormatRGBE
		case formatTokenXYZE:
			h.Format = FormatXYZE
		default:
			return nil, FormatError("unknown pixel format")
		}
	}
}
