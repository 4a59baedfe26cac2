package radiance

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// DecodeFile opens path and decodes it. Files ending in .gz, .zst or .lz4 are
// decompressed on the fly. Every opened stream is closed before returning.
func DecodeFile(path string) (*Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, &IOError{Op: "open", Err: err}
	}
	defer f.Close()

	r, closeFn, err := openPayload(f, path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	m, err := Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return m, nil
}

// EncodeFile writes m to path, compressing the result when the name ends
// in .gz or .zst.
func EncodeFile(path string, m *Image, opt *EncodeOptions) (err error) {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return &IOError{Op: "create", Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &IOError{Op: "close", Err: cerr}
		}
	}()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zw := gzip.NewWriter(f)
		if err := Encode(zw, m, opt); err != nil {
			return err
		}
		return zw.Close()
	case ".zst", ".zstd":
		zw, err := zstd.NewWriter(f, zstd.WithEncoderConcurrency(1))
		if err != nil {
			return err
		}
		if err := Encode(zw, m, opt); err != nil {
			_ = zw.Close()
			return err
		}
		return zw.Close()
	default:
		return Encode(f, m, opt)
	}
}

func openPayload(r io.Reader, name string) (io.Reader, func(), error) {
	noop := func() {}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, noop, &IOError{Op: "open gzip", Err: err}
		}
		return zr, func() { _ = zr.Close() }, nil
	case ".zst", ".zstd":
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, noop, &IOError{Op: "open zstd", Err: err}
		}
		return zr, zr.Close, nil
	case ".lz4":
		return lz4.NewReader(r), noop, nil
	default:
		return r, noop, nil
	}
}

// FileResult is the outcome of decoding one file in a batch.
type FileResult struct {
	Path  string
	Image *Image
	Err   error
}

// DecodeFiles decodes independent files concurrently with at most workers
// goroutines (GOMAXPROCS when workers <= 0). Results keep the order of paths.
func DecodeFiles(paths []string, workers int) ([]FileResult, error) {
	if len(paths) == 0 {
		return nil, errors.New("no files to decode")
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, len(paths))

	res := make([]FileResult, len(paths))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				m, err := DecodeFile(paths[i])
				res[i] = FileResult{Path: paths[i], Image: m, Err: err}
			}
		}()
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return res, nil
}
