// Package render turns a list of observation times into a sequence of
// composited frames.
package render

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/litescript/ls-skysim/internal/astro"
	"github.com/litescript/ls-skysim/internal/catalog"
	"github.com/litescript/ls-skysim/internal/frame"
	"github.com/litescript/ls-skysim/internal/logging"
	"github.com/litescript/ls-skysim/internal/metrics"
	"github.com/litescript/ls-skysim/internal/sky"
)

// ErrNoModel is returned by New when no sky model is supplied.
var ErrNoModel = errors.New("render: sky model is required")

// Frame is one rendered image and what went into it.
type Frame struct {
	Index          int
	Time           sky.FrameTime
	Image          *frame.Image
	MagnitudeLimit float64
	Stats          frame.Stats
	Phase          string // sky state name, when the model provides one
	Duration       time.Duration
}

// Sequencer renders frames with a fixed configuration and sky model.
// It holds no per-frame state and is safe for concurrent use.
type Sequencer struct {
	cfg     frame.RenderConfig
	model   sky.Model
	workers int
	logger  *logging.Logger
	metrics *metrics.Recorder
	hook    StateHook
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithWorkers sets how many frames Render composites at once.
// Values below 1 select runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(s *Sequencer) {
		s.workers = n
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Sequencer) {
		s.logger = l
	}
}

// WithMetrics records frame statistics into r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(s *Sequencer) {
		s.metrics = r
	}
}

// WithStateHook sets a hook called on every frame state transition.
func WithStateHook(h StateHook) Option {
	return func(s *Sequencer) {
		s.hook = h
	}
}

// New creates a Sequencer. cfg is validated once here.
func New(cfg frame.RenderConfig, model sky.Model, opts ...Option) (*Sequencer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if model == nil {
		return nil, ErrNoModel
	}
	s := &Sequencer{
		cfg:    cfg,
		model:  model,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers < 1 {
		s.workers = runtime.NumCPU()
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	return s, nil
}

// Workers returns the size of the Render worker pool.
func (s *Sequencer) Workers() int {
	return s.workers
}

// Config returns the render configuration.
func (s *Sequencer) Config() frame.RenderConfig {
	return s.cfg
}

// RenderFrame renders a single frame for ft.
func (s *Sequencer) RenderFrame(ctx context.Context, p catalog.Provider, ft sky.FrameTime) (Frame, error) {
	return s.renderFrame(ctx, p, 0, ft)
}

// Frames renders times one at a time as the sequence is consumed. Iteration
// stops after the first error, which is yielded with a zero Frame.
// The sequence may be ranged over more than once.
func (s *Sequencer) Frames(ctx context.Context, p catalog.Provider, times []sky.FrameTime) iter.Seq2[Frame, error] {
	return func(yield func(Frame, error) bool) {
		for i, ft := range times {
			if err := ctx.Err(); err != nil {
				yield(Frame{}, err)
				return
			}
			f, err := s.renderFrame(ctx, p, i, ft)
			if err != nil {
				yield(Frame{}, err)
				return
			}
			if !yield(f, nil) {
				return
			}
		}
	}
}

// Render renders every time in parallel and returns the frames in the order
// of times. The first error cancels the remaining work and no frames are
// returned.
func (s *Sequencer) Render(ctx context.Context, p catalog.Provider, times []sky.FrameTime) ([]Frame, error) {
	frames := make([]Frame, len(times))
	if len(times) == 0 {
		return frames, nil
	}

	workers := min(s.workers, len(times))
	s.metrics.SetWorkers(workers)
	s.logger.Debug("rendering %d frames with %d workers", len(times), workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, ft := range times {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := s.renderFrame(gctx, p, i, ft)
			if err != nil {
				return err
			}
			frames[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return frames, nil
}

func (s *Sequencer) renderFrame(ctx context.Context, p catalog.Provider, index int, ft sky.FrameTime) (Frame, error) {
	start := time.Now()
	log := s.logger.With("frame", index)
	s.transition(index, ft, StateIdle)

	f, err := s.compose(ctx, p, index, ft, log)
	if err != nil {
		s.metrics.FrameFailed()
		return Frame{}, fmt.Errorf("frame %d (%s): %w", index, ft.Local().Format(time.RFC3339), err)
	}
	f.Duration = time.Since(start)

	s.metrics.FrameDone(f.Duration, f.Stats.Objects, f.filteredOut, len(f.Stats.Fallbacks))

	s.transition(index, ft, StateDone)
	log.Debug("done in %s: %d objects, limit %.2f, phase %q", f.Duration, f.Stats.Objects, f.MagnitudeLimit, f.Phase)
	return f.Frame, nil
}

// composed carries counts that are recorded but not part of Frame.
type composed struct {
	Frame
	filteredOut int
}

func (s *Sequencer) compose(ctx context.Context, p catalog.Provider, index int, ft sky.FrameTime, log *logging.Logger) (composed, error) {
	s.transition(index, ft, StatePreparing)

	bg, err := s.model.Background(ft)
	if err != nil {
		return composed{}, fmt.Errorf("background: %w", err)
	}
	limit, err := s.model.MagnitudeLimit(ft)
	if err != nil {
		return composed{}, fmt.Errorf("magnitude limit: %w", err)
	}
	raw, err := p.Objects(ctx, ft)
	if err != nil {
		return composed{}, fmt.Errorf("objects: %w", err)
	}
	table := frame.PrepareTable(raw, s.cfg, limit)

	if err := ctx.Err(); err != nil {
		return composed{}, err
	}
	s.transition(index, ft, StateComposing)

	img := frame.NewImage(s.cfg.Width, s.cfg.Height, bg)
	stats, err := frame.FillObjects(img, table, s.cfg, limit)
	if err != nil {
		return composed{}, err
	}
	for _, id := range stats.Fallbacks {
		log.Debug("object %q: unknown spectral type, using fallback colour", id)
	}

	var phase string
	if ph, ok := s.model.(sky.Phaser); ok {
		phase = ph.Phase(ft)
	}
	return composed{
		Frame: Frame{
			Index:          index,
			Time:           ft,
			Image:          img,
			MagnitudeLimit: limit,
			Stats:          stats,
			Phase:          phase,
		},
		filteredOut: len(raw) - len(table),
	}, nil
}

func (s *Sequencer) transition(index int, ft sky.FrameTime, st State) {
	if s.hook != nil {
		s.hook(index, ft, st)
	}
}

// Timeline returns the frame times start, start+interval, ... covering
// duration: floor(duration/interval) frames, and never fewer than one. A zero
// interval or duration gives a single frame at start.
func Timeline(start time.Time, interval, duration time.Duration, loc *time.Location, obs astro.Observer) []sky.FrameTime {
	n := 1
	if interval > 0 && duration > 0 {
		n = max(1, int(duration/interval))
	}
	times := make([]sky.FrameTime, n)
	for i := range times {
		times[i] = sky.FrameTime{
			Instant:  start.Add(time.Duration(i) * interval),
			Location: loc,
			Observer: obs,
		}
	}
	return times
}
