package radiance

import (
	"strconv"
	"strings"
)

// parseResolution parses "<axis> <n> <axis> <m>" into display dimensions.
// The first axis is the slow one, the second runs along each scanline.
func parseResolution(line string) (o Orientation, width, height int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return o, 0, 0, FormatError("malformed resolution line")
	}

	major, majorFlip, ok := parseAxis(fields[0])
	if !ok {
		return o, 0, 0, FormatError("malformed resolution line")
	}
	minor, minorFlip, ok := parseAxis(fields[2])
	if !ok || minor == major {
		return o, 0, 0, FormatError("malformed resolution line")
	}
	n1, err1 := strconv.Atoi(fields[1])
	n2, err2 := strconv.Atoi(fields[3])
	if err1 != nil || err2 != nil || n1 <= 0 || n2 <= 0 {
		return o, 0, 0, FormatError("malformed resolution line")
	}
	if n1 > MaxPixels/n2 {
		return o, 0, 0, FormatError("image too large")
	}

	if major == 'Y' {
		o.FlipY = majorFlip
		o.FlipX = minorFlip
		return o, n2, n1, nil
	}
	o.ColumnMajor = true
	o.FlipX = majorFlip
	o.FlipY = minorFlip
	return o, n1, n2, nil
}

// parseAxis parses a signed axis token. Flip is set for the non-standard
// direction, which is "+Y" and "-X".
func parseAxis(tok string) (axis byte, flip bool, ok bool) {
	if len(tok) != 2 {
		return 0, false, false
	}
	sign, axis := tok[0], tok[1]
	if sign != '+' && sign != '-' {
		return 0, false, false
	}
	switch axis {
	case 'Y':
		return axis, sign == '+', true
	case 'X':
		return axis, sign == '-', true
	default:
		return 0, false, false
	}
}
