package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vearutop/radiance"
	"github.com/vearutop/radiance/internal/logging"
)

const software = "hdrtool"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "info":
		err = runInfo(os.Args[2:])
	case "detect":
		err = runDetect(os.Args[2:])
	case "preview":
		err = runPreview(os.Args[2:])
	case "convert":
		err = runConvert(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fail(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: hdrtool <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  info    [-workers 4] file.hdr [more.hdr ...]")
	fmt.Fprintln(os.Stderr, "  detect  -in file.hdr")
	fmt.Fprintln(os.Stderr, "  preview -in file.hdr -out preview.png|.jpg|.webp [-w 800] [-h 0] [-q 85] [-tmo clip|linear|reinhard] [-interp lanczos2] [-stops 0] [-exposure]")
	fmt.Fprintln(os.Stderr, "  convert -in file.hdr -out out.hdr[.gz|.zst] [-rle adaptive|legacy|uncompressed]")
	fmt.Fprintln(os.Stderr, "All commands accept -log-level (debug, info, warn, error), default from HDRTOOL_LOG_LEVEL.")
}

func newFlagSet(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	level := fs.String("log-level", os.Getenv("HDRTOOL_LOG_LEVEL"), "log level (debug, info, warn, error)")
	return fs, level
}

type fileInfo struct {
	Path        string  `json:"path"`
	Width       int     `json:"width,omitempty"`
	Height      int     `json:"height,omitempty"`
	Format      string  `json:"format,omitempty"`
	Compression string  `json:"compression,omitempty"`
	Orientation string  `json:"orientation,omitempty"`
	Exposure    float64 `json:"exposure,omitempty"`
	Error       string  `json:"error,omitempty"`
}

func runInfo(args []string) error {
	fs, level := newFlagSet("info")
	workers := fs.Int("workers", 0, "parallel decoders (default GOMAXPROCS)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	log := logging.Default()
	log.SetLevelFromString(*level)

	results, err := radiance.DecodeFiles(fs.Args(), *workers)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	failed := 0
	for _, res := range results {
		info := fileInfo{Path: res.Path}
		var unsupported radiance.UnsupportedError
		switch {
		case res.Err == nil:
			m := res.Image
			info.Width, info.Height = m.Width, m.Height
			info.Format = m.Format.String()
			info.Compression = m.Compression.String()
			info.Orientation = m.Orientation.String()
			info.Exposure = m.Header.Exposure()
			log.WithFile(res.Path).Debugf("decoded %dx%d %s", m.Width, m.Height, m.Compression)
		case errors.As(res.Err, &unsupported):
			info.Error = res.Err.Error()
			log.WithFile(res.Path).Warnf("skipped: %v", res.Err)
		default:
			info.Error = res.Err.Error()
			failed++
			log.WithFile(res.Path).Errorf("decode failed: %v", res.Err)
		}
		if err := enc.Encode(info); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

func runDetect(args []string) error {
	fs, level := newFlagSet("detect")
	inPath := fs.String("in", "", "input file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	logging.Default().SetLevelFromString(*level)
	if *inPath == "" {
		return errors.New("missing required arguments")
	}
	f, err := os.Open(filepath.Clean(*inPath))
	if err != nil {
		return err
	}
	defer f.Close()
	ok, err := radiance.IsRadiance(f)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintln(os.Stdout, "radiance")
		return nil
	}
	fmt.Fprintln(os.Stdout, "not radiance")
	return nil
}

func runPreview(args []string) error {
	fs, level := newFlagSet("preview")
	inPath := fs.String("in", "", "input Radiance HDR")
	outPath := fs.String("out", "", "output png, jpeg or webp")
	width := fs.Uint("w", 0, "target width (0 keeps aspect ratio)")
	height := fs.Uint("h", 0, "target height (0 keeps aspect ratio)")
	q := fs.Int("q", 85, "jpeg/webp quality")
	tmoName := fs.String("tmo", "clip", "tone mapper: clip, linear, reinhard")
	interpName := fs.String("interp", "lanczos2", "interpolation: nearest, bilinear, bicubic, mitchell, lanczos2, lanczos3")
	stops := fs.Float64("stops", 0, "exposure shift in stops for clip tone mapping")
	exposure := fs.Bool("exposure", false, "undo EXPOSURE header adjustments")
	if err := fs.Parse(args); err != nil {
		return err
	}
	log := logging.Default()
	log.SetLevelFromString(*level)
	if *inPath == "" || *outPath == "" {
		return errors.New("missing required arguments")
	}
	tm, err := radiance.ParseToneMapper(*tmoName)
	if err != nil {
		return err
	}
	interp, err := radiance.ParseInterpolation(*interpName)
	if err != nil {
		return err
	}

	log.Debugf("rendering %s to %s", *inPath, *outPath)
	return radiance.PreviewFile(*inPath, *outPath, *q, func(o *radiance.PreviewOptions) {
		o.Width = *width
		o.Height = *height
		o.ToneMapper = tm
		o.Interpolation = interp
		o.Stops = *stops
		o.ApplyExposure = *exposure
	})
}

func runConvert(args []string) error {
	fs, level := newFlagSet("convert")
	inPath := fs.String("in", "", "input Radiance HDR")
	outPath := fs.String("out", "", "output Radiance HDR (.gz/.zst compressed by extension)")
	rle := fs.String("rle", "adaptive", "payload compression: adaptive, legacy, uncompressed")
	if err := fs.Parse(args); err != nil {
		return err
	}
	log := logging.Default()
	log.SetLevelFromString(*level)
	if *inPath == "" || *outPath == "" {
		return errors.New("missing required arguments")
	}
	c, err := radiance.ParseCompression(*rle)
	if err != nil {
		return err
	}
	m, err := radiance.DecodeFile(*inPath)
	if err != nil {
		return err
	}
	log.Infof("%s: %dx%d %s -> %s", *inPath, m.Width, m.Height, m.Compression, c)
	return radiance.EncodeFile(*outPath, m, &radiance.EncodeOptions{Compression: c, Software: software})
}

func fail(err error) {
	logging.Default().Errorf("%v", err)
	os.Exit(1)
}
