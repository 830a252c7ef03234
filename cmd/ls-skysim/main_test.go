package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-skysim/internal/astro"
	"github.com/litescript/ls-skysim/internal/catalog"
	"github.com/litescript/ls-skysim/internal/colour"
	"github.com/litescript/ls-skysim/internal/config"
	"github.com/litescript/ls-skysim/internal/frame"
	"github.com/litescript/ls-skysim/internal/logging"
	"github.com/litescript/ls-skysim/internal/render"
	"github.com/litescript/ls-skysim/internal/sky"
)

// fakeEncoder writes a shell script that stands in for ffmpeg: it records how
// many frames were staged into the output file.
func fakeEncoder(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "ffmpeg")
	script := `#!/bin/sh
while [ "$#" -gt 0 ]; do
	case "$1" in
	-i) shift; dir=$(dirname "$1") ;;
	esac
	out="$1"
	shift
done
ls "$dir" | wc -l > "$out"
`
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

// failingAt returns a provider with one visible object that errors on frame n.
func failingAt(times []sky.FrameTime, n int) catalog.Provider {
	static := catalog.StaticProvider{Table: catalog.Table{
		{ID: "beacon", X: 4, Y: 4, Projected: true, Magnitude: 0, Colour: colour.Named("white")},
	}}
	return catalog.ProviderFunc(func(ctx context.Context, ft sky.FrameTime) (catalog.Table, error) {
		if n >= 0 && ft.Instant.Equal(times[n].Instant) {
			return nil, fmt.Errorf("catalog unavailable at frame %d", n)
		}
		return static.Objects(ctx, ft)
	})
}

func writeSetup(t *testing.T, filename string, workers int) (*render.Sequencer, []sky.FrameTime, *config.Config) {
	t.Helper()
	cfg := config.Default()
	cfg.Output.Filename = filename
	cfg.Output.FPS = 10
	cfg.Output.FFmpeg = fakeEncoder(t)

	seq, err := render.New(frame.DefaultRenderConfig(8, 8), sky.DefaultPalette(), render.WithWorkers(workers))
	require.NoError(t, err)

	start := time.Date(2024, 12, 21, 22, 0, 0, 0, time.UTC)
	times := render.Timeline(start, time.Minute, 6*time.Minute, nil, astro.Observer{LatDeg: 51.5})
	return seq, times, cfg
}

func stagingDirs(t *testing.T, dir string) []string {
	t.Helper()
	found, err := filepath.Glob(filepath.Join(dir, ".skysim-frames-*"))
	require.NoError(t, err)
	return found
}

func TestWriteMovie(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "sky.mp4")
	seq, times, cfg := writeSetup(t, out, 1)

	require.NoError(t, write(t.Context(), seq, failingAt(times, -1), times, cfg, logging.Discard()))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "6", strings.TrimSpace(string(data)))
	assert.Empty(t, stagingDirs(t, dir))
}

func TestWriteFailedFrameLeavesNoOutput(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		workers  int
	}{
		{"movie, lazy", "sky.mp4", 1},
		{"movie, parallel", "sky.mp4", 3},
		{"png sequence, lazy", "sky.png", 1},
		{"png sequence, parallel", "sky.png", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			out := filepath.Join(dir, tt.filename)
			seq, times, cfg := writeSetup(t, out, tt.workers)

			err := write(t.Context(), seq, failingAt(times, 3), times, cfg, logging.Discard())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "catalog unavailable at frame 3")

			assert.NoFileExists(t, out)
			left, err := filepath.Glob(filepath.Join(dir, "sky*"))
			require.NoError(t, err)
			assert.Empty(t, left, "partial frames must be removed")
			assert.Empty(t, stagingDirs(t, dir))
		})
	}
}
