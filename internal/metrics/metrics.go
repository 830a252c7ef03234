// Package metrics records render statistics in a per-run Prometheus registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the collectors for one render run. A nil *Recorder is valid
// and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	framesTotal     *prometheus.CounterVec
	objectsDrawn    prometheus.Counter
	objectsFiltered prometheus.Counter
	fallbacksTotal  prometheus.Counter
	frameDuration   prometheus.Histogram
	workers         prometheus.Gauge
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		framesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skysim_frames_total",
				Help: "Frames processed, by result.",
			},
			[]string{"result"},
		),
		objectsDrawn: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "skysim_objects_drawn_total",
			Help: "Objects composited into frames.",
		}),
		objectsFiltered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "skysim_objects_filtered_total",
			Help: "Objects dropped by the field of view or brightness filters.",
		}),
		fallbacksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "skysim_colour_fallbacks_total",
			Help: "Objects drawn with the fallback colour for an unknown spectral type.",
		}),
		frameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "skysim_frame_duration_seconds",
			Help:    "Time to prepare and composite one frame.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		}),
		workers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "skysim_render_workers",
			Help: "Frames rendered concurrently.",
		}),
	}
	r.registry.MustRegister(
		r.framesTotal,
		r.objectsDrawn,
		r.objectsFiltered,
		r.fallbacksTotal,
		r.frameDuration,
		r.workers,
	)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// FrameDone records a successfully rendered frame.
func (r *Recorder) FrameDone(d time.Duration, drawn, filtered, fallbacks int) {
	if r == nil {
		return
	}
	r.framesTotal.WithLabelValues("ok").Inc()
	r.objectsDrawn.Add(float64(drawn))
	r.objectsFiltered.Add(float64(filtered))
	r.fallbacksTotal.Add(float64(fallbacks))
	r.frameDuration.Observe(d.Seconds())
}

// FrameFailed records a frame that returned an error.
func (r *Recorder) FrameFailed() {
	if r == nil {
		return
	}
	r.framesTotal.WithLabelValues("error").Inc()
}

// SetWorkers records the size of the worker pool.
func (r *Recorder) SetWorkers(n int) {
	if r == nil {
		return
	}
	r.workers.Set(float64(n))
}

// WriteTextfile writes the current values in the text exposition format,
// for the node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
