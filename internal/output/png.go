package output

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/litescript/ls-skysim/internal/frame"
	"github.com/litescript/ls-skysim/internal/logging"
	"github.com/litescript/ls-skysim/internal/render"
)

// PNG writes a still for single-frame runs and name-00000.png, name-00001.png
// and so on for longer runs.
type PNG struct {
	name    string
	frames  int
	written []string
	logger  *logging.Logger
}

// NewPNG returns a PNG sink for a run of frames frames.
func NewPNG(name string, frames int) *PNG {
	return &PNG{name: name, frames: frames, logger: logging.Discard()}
}

// Path returns the file frame index is written to.
func (p *PNG) Path(index int) string {
	if p.frames <= 1 {
		return p.name
	}
	ext := filepath.Ext(p.name)
	if ext == "" {
		ext = ".png"
	}
	return fmt.Sprintf("%s-%05d%s", strings.TrimSuffix(p.name, filepath.Ext(p.name)), index, ext)
}

// WriteFrame implements Sink.
func (p *PNG) WriteFrame(ctx context.Context, f render.Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := p.Path(f.Index)
	if err := writePNGFile(path, f.Image); err != nil {
		return err
	}
	p.written = append(p.written, path)
	p.logger.Info("%s saved", path)
	return nil
}

// Close implements Sink.
func (p *PNG) Close() error { return nil }

// Abort deletes every file this sink wrote.
func (p *PNG) Abort() error {
	var errs []error
	for _, path := range p.written {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	if len(p.written) > 0 {
		p.logger.Info("removed %d partial frame file(s)", len(p.written))
	}
	p.written = nil
	return errors.Join(errs...)
}

func writePNGFile(path string, img *frame.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := EncodePNG(out, img); err != nil {
		out.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// EncodePNG writes img as an 8-bit RGB PNG.
func EncodePNG(w io.Writer, img *frame.Image) error {
	return png.Encode(w, ToRGBA(img))
}

// ToRGBA converts img to an opaque 8-bit image.
func ToRGBA(img *frame.Image) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			out.Set(x, y, img.RGBAt(x, y))
		}
	}
	return out
}
