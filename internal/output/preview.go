package output

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-skysim/internal/frame"
	"github.com/litescript/ls-skysim/internal/render"
)

const upperHalf = "▀"

// Preview renders img cols characters wide using upper half blocks: each
// cell shows two pixels, the top one as foreground and the bottom one as
// background.
func Preview(img *frame.Image, cols int) string {
	if img == nil || img.Width == 0 || img.Height == 0 || cols <= 0 {
		return ""
	}
	cols = min(cols, img.Width)
	pixRows := max(1, (img.Height*cols+img.Width/2)/img.Width)
	rows := (pixRows + 1) / 2

	var b strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x := c * img.Width / cols
			top := img.RGBAt(x, sampleRow(2*r, pixRows, img.Height))
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(top.Hex()))
			if 2*r+1 < pixRows {
				bottom := img.RGBAt(x, sampleRow(2*r+1, pixRows, img.Height))
				style = style.Background(lipgloss.Color(bottom.Hex()))
			}
			b.WriteString(style.Render(upperHalf))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func sampleRow(row, rows, height int) int {
	return min(height-1, row*height/rows)
}

// Terminal is a sink that prints a preview and a caption for every frame.
type Terminal struct {
	w    io.Writer
	cols int
}

// NewTerminal returns a preview sink writing to w.
func NewTerminal(w io.Writer, cols int) *Terminal {
	return &Terminal{w: w, cols: cols}
}

// WriteFrame implements Sink.
func (t *Terminal) WriteFrame(ctx context.Context, f render.Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := io.WriteString(t.w, Preview(f.Image, t.cols)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(t.w, Caption(f))
	return err
}

// Close implements Sink.
func (t *Terminal) Close() error { return nil }

// Abort implements Sink. Printed previews cannot be taken back.
func (t *Terminal) Abort() error { return nil }

// Caption describes a frame in one line.
func Caption(f render.Frame) string {
	s := fmt.Sprintf("#%d  %s", f.Index, f.Time.Local().Format("2006-01-02 15:04:05 MST"))
	if f.Phase != "" {
		s += "  " + f.Phase
	}
	return s + fmt.Sprintf("  mag ≤ %.1f  %d objects", f.MagnitudeLimit, f.Stats.Objects)
}
