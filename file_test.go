package radiance

import (
	"bytes"
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/mdouchement/hdr"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
)

func sampleImage() *Image {
	m := NewImage(16, 3)
	for i := range m.Pix {
		m.Pix[i] = Pixel{R: byte(i / 4), G: 90, B: byte(i / 2), E: 127}
	}
	return m
}

func TestEncodeFile_DecodeFile(t *testing.T) {
	dir := t.TempDir()
	m := sampleImage()

	for _, name := range []string{"plain.hdr", "packed.hdr.gz", "packed.hdr.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, EncodeFile(path, m, nil))

			got, err := DecodeFile(path)
			require.NoError(t, err)
			require.Equal(t, AdaptiveRLE, got.Compression)
			require.Equal(t, m.Pix, got.Pix)
		})
	}
}

func TestDecodeFile_lz4(t *testing.T) {
	var raw bytes.Buffer
	require.NoError(t, Encode(&raw, sampleImage(), &EncodeOptions{Compression: LegacyRLE}))

	var packed bytes.Buffer
	zw := lz4.NewWriter(&packed)
	_, err := zw.Write(raw.Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "img.hdr.lz4")
	require.NoError(t, os.WriteFile(path, packed.Bytes(), 0o600))

	got, err := DecodeFile(path)
	require.NoError(t, err)
	require.Equal(t, LegacyRLE, got.Compression)
	require.Equal(t, sampleImage().Pix, got.Pix)
}

func TestDecodeFile_errors(t *testing.T) {
	dir := t.TempDir()

	_, err := DecodeFile(filepath.Join(dir, "missing.hdr"))
	var ioe *IOError
	require.ErrorAs(t, err, &ioe)
	require.ErrorIs(t, err, os.ErrNotExist)

	notGzip := filepath.Join(dir, "bad.hdr.gz")
	require.NoError(t, os.WriteFile(notGzip, []byte("#?RADIANCE\n"), 0o600))
	_, err = DecodeFile(notGzip)
	require.ErrorAs(t, err, &ioe)

	short := filepath.Join(dir, "short.hdr")
	require.NoError(t, os.WriteFile(short, stream("-Y 2 +X 2", records(gradient(2)...)), 0o600))
	_, err = DecodeFile(short)
	require.ErrorIs(t, err, ErrTruncated)
	require.Contains(t, err.Error(), "short.hdr")
}

func TestDecodeFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.hdr")
	require.NoError(t, EncodeFile(good, sampleImage(), nil))
	xyze := filepath.Join(dir, "xyze.hdr")
	require.NoError(t, os.WriteFile(xyze, []byte("#?RADIANCE\nFORMAT=32-bit_rle_xyze\n\n-Y 1 +X 1\n\x01\x02\x03\x80"), 0o600))
	corrupt := filepath.Join(dir, "corrupt.hdr")
	require.NoError(t, os.WriteFile(corrupt, []byte("not an image"), 0o600))

	paths := []string{good, xyze, corrupt, good}
	res, err := DecodeFiles(paths, 2)
	require.NoError(t, err)
	require.Len(t, res, len(paths))

	for i, r := range res {
		require.Equal(t, paths[i], r.Path)
	}
	require.NoError(t, res[0].Err)
	require.NoError(t, res[3].Err)
	require.Equal(t, res[0].Image.Pix, res[3].Image.Pix)

	var ue UnsupportedError
	require.ErrorAs(t, res[1].Err, &ue)
	var fe FormatError
	require.ErrorAs(t, res[2].Err, &fe)
	require.False(t, errors.As(res[2].Err, &ue))

	_, err = DecodeFiles(nil, 0)
	require.Error(t, err)
}

func TestImageDecodeRegistration(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleImage(), nil))
	data := buf.Bytes()

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "hdr", format)
	require.Equal(t, 16, cfg.Width)
	require.Equal(t, 3, cfg.Height)

	img, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "hdr", format)
	require.IsType(t, &hdr.RGB{}, img)
}
