// Package radiance provides a pure-Go decoder and encoder for the Radiance RGBE (.hdr) format.
//
// Decode produces the raw 4-byte RGBE records exactly as stored in the file, with the three
// payload compression schemes (flat, legacy run markers and adaptive per-channel RLE) expanded.
// Conversion to linear light and SDR previews are separate, explicit steps built on
// github.com/mdouchement/hdr.
package radiance
