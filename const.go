package radiance

const magic = "#?RADIANCE"

const (
	formatTokenRGBE = "32-bit_rle_rgbe"
	formatTokenXYZE = "32-bit_rle_xyze"
)

const (
	// Adaptive RLE is only defined for scanlines within this range.
	minAdaptiveLength = 8
	maxAdaptiveLength = 0x7fff

	// Adaptive run count bytes above this value encode a repeated byte.
	adaptiveRunFlag   = 128
	maxAdaptiveRun    = 255 - adaptiveRunFlag
	maxAdaptiveDump   = 128
	minAdaptiveRunLen = 4

	legacyRunMarker = 255
	maxLegacyRun    = 255
)

const (
	maxHeaderLine = 64 << 10
	readBufSize   = 64 << 10
)

// MaxPixels limits the pixel count accepted from a resolution line.
var MaxPixels = 1 << 28
