// Command ls-skysim renders the sky above an observing site as a still image
// or a movie.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-skysim/internal/astro"
	"github.com/litescript/ls-skysim/internal/catalog"
	"github.com/litescript/ls-skysim/internal/config"
	"github.com/litescript/ls-skysim/internal/logging"
	"github.com/litescript/ls-skysim/internal/metrics"
	"github.com/litescript/ls-skysim/internal/output"
	"github.com/litescript/ls-skysim/internal/render"
	"github.com/litescript/ls-skysim/internal/sky"
	"github.com/litescript/ls-skysim/internal/state"
	"github.com/litescript/ls-skysim/internal/ui"
	"github.com/litescript/ls-skysim/internal/version"
)

const (
	progressInterval = 2 * time.Second
	sunSearchStep    = 5 * time.Minute
)

// CLI flags
var (
	overwrite   bool
	workers     int
	playMode    bool
	previewCols int
	metricsFile string
	showVersion bool
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [config.toml]\n\n", os.Args[0])
	fmt.Fprintf(flag.CommandLine.Output(), "Settings not in the file come from the defaults and %s* environment variables.\n\nFlags:\n", config.EnvPrefix)
	flag.PrintDefaults()
}

func main() {
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&overwrite, "overwrite", false, "Replace an existing output file")
	flag.IntVar(&workers, "workers", -1, "Frames rendered in parallel (0 = one per CPU, -1 = from config)")
	flag.BoolVar(&playMode, "play", false, "Open the interactive frame player instead of writing a file")
	flag.IntVar(&previewCols, "preview", 0, "Also print each frame to the terminal this many columns wide")
	flag.StringVar(&metricsFile, "metrics-file", "", "Write render metrics in Prometheus text format to this file")
	flag.BoolVar(&showVersion, "version", false, "Print the version and exit")
	flag.Usage = usage
	flag.Parse()

	if showVersion {
		fmt.Printf("ls-skysim %s\n", version.Version)
		return
	}
	if flag.NArg() > 1 {
		usage()
		os.Exit(2)
	}

	logger := logging.New(logging.ParseLevel(*logLevel))

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Warn("Interrupted, stopping")
		cancel()
	}()

	if err := run(ctx, flag.Arg(0), logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg := config.Default()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, path string, logger *logging.Logger) error {
	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}
	if overwrite {
		cfg.Output.Overwrite = true
	}
	if workers >= 0 {
		cfg.Output.Workers = workers
	}
	if metricsFile != "" {
		cfg.Output.MetricsFile = metricsFile
	}

	rc, err := cfg.RenderConfig()
	if err != nil {
		return err
	}
	model, err := cfg.SkyModel()
	if err != nil {
		return err
	}
	provider, err := cfg.Provider()
	if err != nil {
		return err
	}
	times, err := cfg.Times()
	if err != nil {
		return err
	}

	rec := metrics.New()
	progress := state.NewManager(state.Config{Total: len(times), MaxEvents: 50})
	seq, err := render.New(rc, model,
		render.WithWorkers(cfg.Output.Workers),
		render.WithLogger(logger),
		render.WithMetrics(rec),
		render.WithStateHook(progress.Observe),
	)
	if err != nil {
		return err
	}

	logger.Info("Rendering %d frame(s) of %dx%d from %s with %d worker(s)",
		len(times), rc.Width, rc.Height, siteName(cfg), seq.Workers())
	if cfg.Sky.Mode == config.SkyModeSolar {
		logSunEvents(times, logger)
	}
	start := time.Now()

	loopCtx, stopLoop := context.WithCancel(ctx)
	go runProgressLoop(loopCtx, progress, logger)

	if playMode {
		err = play(ctx, seq, provider, times, cfg.Output.FPS)
	} else {
		err = write(ctx, seq, provider, times, cfg, logger)
	}
	stopLoop()
	if err != nil {
		return err
	}
	logger.Info("Done in %v", time.Since(start).Round(time.Millisecond))

	if cfg.Output.MetricsFile != "" {
		if err := rec.WriteTextfile(cfg.Output.MetricsFile); err != nil {
			return err
		}
		logger.Debug("Metrics written to %s", cfg.Output.MetricsFile)
	}
	return nil
}

// write streams frames into the output file. With one worker frames are
// rendered lazily as they are written; otherwise the run is rendered in
// parallel first. If any frame fails the partial output is removed.
func write(ctx context.Context, seq *render.Sequencer, p catalog.Provider, times []sky.FrameTime, cfg *config.Config, logger *logging.Logger) error {
	sink, err := output.Open(ctx, output.Options{
		Filename:  cfg.Output.Filename,
		FPS:       cfg.Output.FPS,
		Overwrite: cfg.Output.Overwrite,
		FFmpeg:    cfg.Output.FFmpeg,
		Frames:    len(times),
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	if previewCols > 0 {
		sink = output.Tee(output.NewTerminal(os.Stdout, previewCols), sink)
	}

	if err := emit(ctx, seq, p, times, sink); err != nil {
		// A sequence with a missing frame is not written at all.
		return errors.Join(err, sink.Abort())
	}
	return sink.Close()
}

func emit(ctx context.Context, seq *render.Sequencer, p catalog.Provider, times []sky.FrameTime, sink output.Sink) error {
	if seq.Workers() == 1 {
		for f, err := range seq.Frames(ctx, p, times) {
			if err != nil {
				return err
			}
			if err := sink.WriteFrame(ctx, f); err != nil {
				return err
			}
		}
		return nil
	}

	frames, err := seq.Render(ctx, p, times)
	if err != nil {
		return err
	}
	for _, f := range frames {
		if err := sink.WriteFrame(ctx, f); err != nil {
			return err
		}
	}
	return nil
}

func play(ctx context.Context, seq *render.Sequencer, p catalog.Provider, times []sky.FrameTime, fps float64) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("-play needs a terminal")
	}
	frames, err := seq.Render(ctx, p, times)
	if err != nil {
		return err
	}

	prog := tea.NewProgram(ui.New(frames, fps), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := prog.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run player: %w", err)
	}
	return nil
}

// runProgressLoop logs run progress until ctx is cancelled.
func runProgressLoop(ctx context.Context, progress *state.Manager, logger *logging.Logger) {
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := progress.Snapshot()
			if snap.Done == 0 || progress.Finished() {
				continue
			}
			logger.Info("Rendered %d/%d frames (%.0f%%), about %v left",
				snap.Done, snap.Total, 100*snap.Fraction(), snap.Remaining.Round(time.Second))
		}
	}
}

// logSunEvents reports sunrise, sunset and twilight boundaries that fall
// inside the run.
func logSunEvents(times []sky.FrameTime, logger *logging.Logger) {
	if len(times) < 2 {
		return
	}
	first, last := times[0], times[len(times)-1]
	thresholds := []struct {
		deg             float64
		rising, setting string
	}{
		{sky.SunriseElevation, "Sunrise", "Sunset"},
		{sky.CivilTwilight, "Civil dawn", "Civil dusk"},
		{sky.NauticalTwilight, "Nautical dawn", "Nautical dusk"},
		{sky.AstronomicalTwilight, "Astronomical dawn", "Astronomical dusk"},
	}
	for _, th := range thresholds {
		crossings, err := astro.SunCrossings(first.Observer, first.Instant, last.Instant, sunSearchStep, th.deg)
		if err != nil {
			logger.Debug("Sun search at %g°: %v", th.deg, err)
			continue
		}
		for _, c := range crossings {
			name := th.setting
			if c.Rising {
				name = th.rising
			}
			local := sky.FrameTime{Instant: c.Time, Location: first.Location}.Local()
			logger.Info("%s at %s", name, local.Format("15:04 MST"))
		}
	}
}

func siteName(cfg *config.Config) string {
	if cfg.Observation.Location != "" {
		return cfg.Observation.Location
	}
	return fmt.Sprintf("%.4f, %.4f", cfg.Observation.Latitude, cfg.Observation.Longitude)
}
