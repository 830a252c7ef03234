// Package output writes rendered frames: PNG stills, PNG sequences, movies
// encoded by ffmpeg and truecolor terminal previews.
package output

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/litescript/ls-skysim/internal/logging"
	"github.com/litescript/ls-skysim/internal/render"
)

// ErrExists is returned when the output file exists and overwriting is off.
var ErrExists = errors.New("output file exists")

// Sink consumes rendered frames in index order. A run ends with exactly one
// of Close, which finishes the output, or Abort, which discards everything
// written so far.
type Sink interface {
	WriteFrame(ctx context.Context, f render.Frame) error
	Close() error
	Abort() error
}

// Options selects and configures a file sink.
type Options struct {
	Filename  string
	FPS       float64
	Overwrite bool
	FFmpeg    string // ffmpeg executable
	Frames    int    // number of frames the run will produce
	Logger    *logging.Logger
}

var movieExts = map[string]bool{
	".mp4":  true,
	".m4v":  true,
	".mov":  true,
	".mkv":  true,
	".webm": true,
	".avi":  true,
	".gif":  true,
}

// IsMovie reports whether name has a video container extension.
func IsMovie(name string) bool {
	return movieExts[strings.ToLower(filepath.Ext(name))]
}

// Open returns the sink for opts.Filename: a movie for video extensions,
// otherwise PNG output (a still for one frame, a numbered sequence for more).
func Open(ctx context.Context, opts Options) (Sink, error) {
	if opts.Filename == "" {
		return nil, errors.New("output: no filename")
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if IsMovie(opts.Filename) {
		if err := checkOverwrite(opts.Filename, opts.Overwrite); err != nil {
			return nil, err
		}
		return NewMovie(ctx, opts)
	}
	p := NewPNG(opts.Filename, opts.Frames)
	if err := checkOverwrite(p.Path(0), opts.Overwrite); err != nil {
		return nil, err
	}
	p.logger = opts.Logger
	return p, nil
}

func checkOverwrite(path string, overwrite bool) error {
	if overwrite {
		return nil
	}
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s (use -overwrite)", ErrExists, path)
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("check output: %w", err)
	}
}

// Tee fans every frame out to all sinks. Close and Abort reach all of them
// and return the joined errors.
func Tee(sinks ...Sink) Sink {
	return tee(sinks)
}

type tee []Sink

func (t tee) WriteFrame(ctx context.Context, f render.Frame) error {
	for _, s := range t {
		if err := s.WriteFrame(ctx, f); err != nil {
			return err
		}
	}
	return nil
}

func (t tee) Close() error {
	var errs []error
	for _, s := range t {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}

func (t tee) Abort() error {
	var errs []error
	for _, s := range t {
		errs = append(errs, s.Abort())
	}
	return errors.Join(errs...)
}
