package render

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-skysim/internal/astro"
	"github.com/litescript/ls-skysim/internal/catalog"
	"github.com/litescript/ls-skysim/internal/colour"
	"github.com/litescript/ls-skysim/internal/frame"
	"github.com/litescript/ls-skysim/internal/metrics"
	"github.com/litescript/ls-skysim/internal/sky"
)

var start = time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)

func testConfig() frame.RenderConfig {
	cfg := frame.DefaultRenderConfig(24, 16)
	cfg.AiryDiskRadius = 1
	cfg.MaxSpreadRadius = 3
	return cfg
}

func dayNight(t *testing.T) *sky.Palette {
	t.Helper()
	p, err := sky.NewPalette(
		sky.Entry{Name: "night", Seconds: 0, Colour: colour.RGB{B: 0.1}, MagnitudeLimit: 6},
		sky.Entry{Name: "day", Seconds: sky.Hours(12), Colour: colour.RGB{R: 0.5, G: 0.7, B: 0.9}, MagnitudeLimit: -4},
	)
	require.NoError(t, err)
	return p
}

func testTable() catalog.Table {
	return catalog.Table{
		{ID: "vega", X: 5, Y: 5, Projected: true, Magnitude: 0.03, Colour: colour.Spectral("A0V")},
		{ID: "dim", X: 12, Y: 8, Projected: true, Magnitude: 4.5, Colour: colour.Spectral("K")},
		{ID: "gone", X: 50, Y: 8, Projected: true, Magnitude: 1, Colour: colour.Spectral("G")},
	}
}

func hourly(n int) []sky.FrameTime {
	return Timeline(start, time.Hour, time.Duration(n)*time.Hour, nil, astro.Observer{})
}

type countingProvider struct {
	calls  atomic.Int32
	table  catalog.Table
	failOn time.Time
}

func (p *countingProvider) Objects(ctx context.Context, ft sky.FrameTime) (catalog.Table, error) {
	p.calls.Add(1)
	if ft.Instant.Equal(p.failOn) {
		return nil, errors.New("catalog unavailable")
	}
	return catalog.StaticProvider{Table: p.table}.Objects(ctx, ft)
}

func TestNewValidates(t *testing.T) {
	cfg := testConfig()
	cfg.Width = 0
	_, err := New(cfg, dayNight(t))
	var ce *frame.ConfigError
	assert.ErrorAs(t, err, &ce)

	_, err = New(testConfig(), nil)
	assert.ErrorIs(t, err, ErrNoModel)

	s, err := New(testConfig(), dayNight(t), WithWorkers(0))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, s.Workers(), 1)
}

func TestRenderFrame(t *testing.T) {
	s, err := New(testConfig(), dayNight(t))
	require.NoError(t, err)

	ft := sky.FrameTime{Instant: start.Add(6 * time.Hour)} // midnight
	f, err := s.RenderFrame(context.Background(), catalog.StaticProvider{Table: testTable()}, ft)
	require.NoError(t, err)

	assert.Equal(t, 6.0, f.MagnitudeLimit)
	assert.Equal(t, "night", f.Phase)
	assert.Equal(t, 2, f.Stats.Objects)
	assert.Equal(t, colour.RGB{B: 0.1}, f.Image.Background)
	assert.NotEqual(t, f.Image.Background, f.Image.RGBAt(5, 5))
	for _, p := range f.Image.Pix {
		assert.True(t, p.Valid())
	}
}

func TestRenderFrameDaylightHidesFaintObjects(t *testing.T) {
	s, err := New(testConfig(), dayNight(t))
	require.NoError(t, err)

	noon := sky.FrameTime{Instant: time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)}
	f, err := s.RenderFrame(context.Background(), catalog.StaticProvider{Table: testTable()}, noon)
	require.NoError(t, err)
	assert.Zero(t, f.Stats.Objects)
	for _, p := range f.Image.Pix {
		assert.Equal(t, f.Image.Background, p)
	}
}

func TestRenderFrameUniformWithoutObjects(t *testing.T) {
	dusk := colour.RGB{R: 0.3, G: 0.2, B: 0.45}
	p, err := sky.NewPalette(sky.Entry{Name: "dusk", Seconds: sky.Hours(19), Colour: dusk, MagnitudeLimit: 3})
	require.NoError(t, err)
	s, err := New(testConfig(), p)
	require.NoError(t, err)

	for _, ft := range hourly(4) {
		f, err := s.RenderFrame(context.Background(), catalog.StaticProvider{}, ft)
		require.NoError(t, err)
		assert.Zero(t, f.Stats.Objects)
		assert.Equal(t, 3.0, f.MagnitudeLimit)
		require.Len(t, f.Image.Pix, 24*16)
		for i, px := range f.Image.Pix {
			if px != dusk {
				t.Fatalf("pixel %d = %v, want %v", i, px, dusk)
			}
		}
	}
}

func TestRenderMatchesFrames(t *testing.T) {
	times := hourly(8)
	rec := metrics.New()
	s, err := New(testConfig(), dayNight(t), WithWorkers(3), WithMetrics(rec))
	require.NoError(t, err)
	p := catalog.StaticProvider{Table: testTable()}

	parallel, err := s.Render(context.Background(), p, times)
	require.NoError(t, err)
	require.Len(t, parallel, len(times))

	i := 0
	for f, err := range s.Frames(context.Background(), p, times) {
		require.NoError(t, err)
		assert.Equal(t, i, f.Index)
		assert.Equal(t, i, parallel[i].Index)
		assert.True(t, parallel[i].Time.Instant.Equal(times[i].Instant))
		assert.Equal(t, f.Image.Pix, parallel[i].Image.Pix, "frame %d", i)
		i++
	}
	assert.Equal(t, len(times), i)

	families, err := rec.Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestRenderAbortsOnError(t *testing.T) {
	times := hourly(6)
	p := &countingProvider{table: testTable(), failOn: times[2].Instant}
	s, err := New(testConfig(), dayNight(t), WithWorkers(2))
	require.NoError(t, err)

	frames, err := s.Render(context.Background(), p, times)
	require.Error(t, err)
	assert.Nil(t, frames)
	assert.Contains(t, err.Error(), "frame 2")
	assert.Contains(t, err.Error(), "catalog unavailable")
}

func TestFramesStopsAtFirstError(t *testing.T) {
	times := hourly(6)
	p := &countingProvider{table: testTable(), failOn: times[2].Instant}
	s, err := New(testConfig(), dayNight(t))
	require.NoError(t, err)

	var ok, failed int
	for _, err := range s.Frames(context.Background(), p, times) {
		if err != nil {
			failed++
			continue
		}
		ok++
	}
	assert.Equal(t, 2, ok)
	assert.Equal(t, 1, failed)
	assert.Equal(t, int32(3), p.calls.Load())
}

func TestFramesIsLazy(t *testing.T) {
	p := &countingProvider{table: testTable()}
	s, err := New(testConfig(), dayNight(t))
	require.NoError(t, err)

	seq := s.Frames(context.Background(), p, hourly(10))
	assert.Equal(t, int32(0), p.calls.Load(), "nothing renders before iteration")

	for f, err := range seq {
		require.NoError(t, err)
		if f.Index == 1 {
			break
		}
	}
	assert.Equal(t, int32(2), p.calls.Load())

	// Restartable.
	n := 0
	for range seq {
		n++
	}
	assert.Equal(t, 10, n)
}

func TestRenderCancelled(t *testing.T) {
	s, err := New(testConfig(), dayNight(t))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	frames, err := s.Render(ctx, catalog.StaticProvider{Table: testTable()}, hourly(4))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, frames)

	for _, err := range s.Frames(ctx, catalog.StaticProvider{}, hourly(4)) {
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestRenderEmpty(t *testing.T) {
	s, err := New(testConfig(), dayNight(t))
	require.NoError(t, err)
	frames, err := s.Render(context.Background(), catalog.StaticProvider{}, nil)
	require.NoError(t, err)
	assert.Empty(t, frames)
}

func TestStateHook(t *testing.T) {
	var mu sync.Mutex
	seen := map[int][]State{}
	hook := func(index int, _ sky.FrameTime, st State) {
		mu.Lock()
		defer mu.Unlock()
		seen[index] = append(seen[index], st)
	}
	s, err := New(testConfig(), dayNight(t), WithStateHook(hook), WithWorkers(4))
	require.NoError(t, err)

	_, err = s.Render(context.Background(), catalog.StaticProvider{Table: testTable()}, hourly(3))
	require.NoError(t, err)

	want := []State{StateIdle, StatePreparing, StateComposing, StateDone}
	for i := 0; i < 3; i++ {
		assert.Equal(t, want, seen[i], "frame %d", i)
	}
	assert.Equal(t, "composing", StateComposing.String())
}

func TestInvalidColourFailsFrame(t *testing.T) {
	s, err := New(testConfig(), dayNight(t))
	require.NoError(t, err)
	table := catalog.Table{{ID: "bad", X: 3, Y: 3, Projected: true, Magnitude: 1, Colour: colour.Named("nope")}}

	_, err = s.RenderFrame(context.Background(), catalog.StaticProvider{Table: table}, sky.FrameTime{Instant: start})
	var ice *colour.InvalidColourError
	assert.ErrorAs(t, err, &ice)
}

func TestEmptyPaletteFailsFrame(t *testing.T) {
	empty, err := sky.NewPalette()
	require.NoError(t, err)
	s, err := New(testConfig(), empty)
	require.NoError(t, err)

	_, err = s.RenderFrame(context.Background(), catalog.StaticProvider{}, sky.FrameTime{Instant: start})
	assert.ErrorIs(t, err, sky.ErrEmptyPalette)
}

func TestTimeline(t *testing.T) {
	loc := time.FixedZone("X", 3600)
	obs := astro.Observer{LatDeg: 10}

	tests := []struct {
		name     string
		interval time.Duration
		duration time.Duration
		want     int
	}{
		{"still", 0, 0, 1},
		{"no interval", 0, time.Hour, 1},
		{"no duration", time.Minute, 0, 1},
		{"exact", 10 * time.Minute, time.Hour, 6},
		{"floor", 25 * time.Minute, time.Hour, 2},
		{"shorter than interval", time.Hour, time.Minute, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Timeline(start, tt.interval, tt.duration, loc, obs)
			require.Len(t, got, tt.want)
			for i, ft := range got {
				assert.True(t, ft.Instant.Equal(start.Add(time.Duration(i)*tt.interval)))
				assert.Equal(t, loc, ft.Location)
				assert.Equal(t, obs, ft.Observer)
			}
		})
	}
}
