package radiance

import (
	"errors"
	"strconv"
)

// ErrTruncated matches every TruncatedError with errors.Is.
var ErrTruncated = errors.New("radiance: truncated pixel stream")

// A FormatError reports that the input is not a valid Radiance file.
type FormatError string

func (e FormatError) Error() string {
	return "radiance: invalid format: " + string(e)
}

// An UnsupportedError reports a valid file variant that this package cannot decode.
type UnsupportedError string

func (e UnsupportedError) Error() string {
	return "radiance: unsupported variant: " + string(e)
}

// A TruncatedError reports that the pixel payload ended, or a run pointed, before
// or past the Want pixels of the image. Have is the number of pixels produced.
type TruncatedError struct {
	Have int
	Want int
}

func (e *TruncatedError) Error() string {
	return "radiance: truncated pixel stream: " + strconv.Itoa(e.Have) + " of " + strconv.Itoa(e.Want) + " pixels"
}

// Is makes errors.Is(err, ErrTruncated) hold.
func (e *TruncatedError) Is(target error) bool {
	return target == ErrTruncated
}

// An IOError wraps a transport failure of the underlying reader or writer.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return "radiance: " + e.Op + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}
