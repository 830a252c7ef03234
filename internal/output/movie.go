package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/litescript/ls-skysim/internal/logging"
	"github.com/litescript/ls-skysim/internal/render"
)

const framePattern = "%06d.png"

// Movie stages frames as PNGs in a temporary directory next to the output
// and encodes them with ffmpeg on Close. The directory is always removed.
type Movie struct {
	ctx    context.Context
	opts   Options
	dir    string
	width  int
	height int
	count  int
	logger *logging.Logger
}

// NewMovie creates the staging directory for a movie sink.
func NewMovie(ctx context.Context, opts Options) (*Movie, error) {
	if !(opts.FPS > 0) {
		return nil, fmt.Errorf("output: fps must be positive, got %g", opts.FPS)
	}
	if opts.FFmpeg == "" {
		opts.FFmpeg = "ffmpeg"
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	dir, err := os.MkdirTemp(filepath.Dir(opts.Filename), ".skysim-frames-*")
	if err != nil {
		return nil, fmt.Errorf("create frame directory: %w", err)
	}
	return &Movie{ctx: ctx, opts: opts, dir: dir, logger: logger}, nil
}

// Dir returns the staging directory.
func (m *Movie) Dir() string { return m.dir }

// WriteFrame implements Sink.
func (m *Movie) WriteFrame(ctx context.Context, f render.Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.count == 0 {
		m.width, m.height = f.Image.Width, f.Image.Height
	} else if f.Image.Width != m.width || f.Image.Height != m.height {
		return fmt.Errorf("frame %d is %dx%d, movie is %dx%d",
			f.Index, f.Image.Width, f.Image.Height, m.width, m.height)
	}
	path := filepath.Join(m.dir, fmt.Sprintf(framePattern, m.count))
	if err := writePNGFile(path, f.Image); err != nil {
		return err
	}
	m.count++
	m.logger.Debug("%s saved", path)
	return nil
}

// Close encodes the staged frames and removes the staging directory.
func (m *Movie) Close() error {
	defer m.removeStaging()
	if m.count == 0 {
		return errors.New("output: no frames to encode")
	}

	args := FFmpegArgs(m.dir, m.opts.FPS, m.width, m.height, m.opts.Filename)
	m.logger.Debug("running %s %s", m.opts.FFmpeg, strings.Join(args, " "))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(m.ctx, m.opts.FFmpeg, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return fmt.Errorf("ffmpeg: %w", err)
		}
		return fmt.Errorf("ffmpeg: %w: %s", err, msg)
	}
	m.logger.Info("%s saved (%d frames)", m.opts.Filename, m.count)
	return nil
}

// Abort removes the staged frames without encoding. No movie is written.
func (m *Movie) Abort() error {
	if err := os.RemoveAll(m.dir); err != nil {
		return fmt.Errorf("remove %s: %w", m.dir, err)
	}
	m.logger.Debug("discarded %d staged frames", m.count)
	m.count = 0
	return nil
}

func (m *Movie) removeStaging() {
	if err := os.RemoveAll(m.dir); err != nil {
		m.logger.Warn("remove %s: %v", m.dir, err)
	}
}

// FFmpegArgs builds the ffmpeg arguments that encode dir's numbered PNGs
// into out. The output is padded to even dimensions, which yuv420p needs.
func FFmpegArgs(dir string, fps float64, width, height int, out string) []string {
	w, h := even(width), even(height)
	filter := fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2", w, h, w, h)
	rate := strconv.FormatFloat(fps, 'f', -1, 64)
	return []string{
		"-loglevel", "warning", "-hide_banner",
		"-framerate", rate,
		"-i", filepath.Join(dir, framePattern),
		"-y",
		"-r", rate,
		"-codec:v", "libx264",
		"-filter_complex", filter,
		"-pix_fmt", "yuv420p",
		out,
	}
}

func even(n int) int {
	return n + n%2
}
