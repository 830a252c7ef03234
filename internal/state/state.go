// Package state tracks the progress of a render run with thread-safe access.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-skysim/internal/render"
	"github.com/litescript/ls-skysim/internal/sky"
)

// EventType represents the type of progress event.
type EventType string

const (
	EventFrameStarted EventType = "FRAME_STARTED"
	EventFrameDone    EventType = "FRAME_DONE"
)

// Event is one frame transition worth reporting.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Frame     int       `json:"frame"`
	Instant   time.Time `json:"instant"` // observation time of the frame
}

// Manager records frame state transitions from a render.Sequencer.
type Manager struct {
	mu sync.RWMutex

	total   int
	started time.Time
	now     func() time.Time

	stages map[int]render.State // frames not yet done
	done   int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int
}

// Config holds configuration for the state manager.
type Config struct {
	Total     int // frames in the run
	MaxEvents int
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEvents: 50, // Last 50 events
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		total:     cfg.Total,
		now:       time.Now,
		stages:    make(map[int]render.State),
		maxEvents: maxEvents,
		events:    make([]Event, 0, maxEvents),
	}
}

// Observe records a transition. It has the render.StateHook signature and
// may be called from several goroutines.
func (m *Manager) Observe(index int, ft sky.FrameTime, s render.State) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if m.started.IsZero() {
		m.started = now
	}

	switch s {
	case render.StatePreparing:
		m.stages[index] = s
		m.addEvent(Event{Type: EventFrameStarted, Timestamp: now, Frame: index, Instant: ft.Instant})
	case render.StateDone:
		delete(m.stages, index)
		m.done++
		m.addEvent(Event{Type: EventFrameDone, Timestamp: now, Frame: index, Instant: ft.Instant})
	default:
		m.stages[index] = s
	}
}

func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
	}
	m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
}

// Snapshot represents a point-in-time copy of run progress.
type Snapshot struct {
	Total     int
	Done      int
	InFlight  map[render.State]int // frames per unfinished state
	Elapsed   time.Duration
	Remaining time.Duration // estimate; zero until a frame is done
	Events    []Event       // oldest first
}

// Fraction returns the finished share of the run in [0, 1].
func (s Snapshot) Fraction() float64 {
	if s.Total <= 0 {
		return 0
	}
	return min(1, float64(s.Done)/float64(s.Total))
}

// Snapshot returns a copy of the current progress.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := Snapshot{
		Total:    m.total,
		Done:     m.done,
		InFlight: make(map[render.State]int),
		Events:   m.getEventsOrdered(),
	}
	for _, s := range m.stages {
		snap.InFlight[s]++
	}
	if !m.started.IsZero() {
		snap.Elapsed = m.now().Sub(m.started)
	}
	if m.done > 0 && m.total > m.done {
		per := snap.Elapsed / time.Duration(m.done)
		snap.Remaining = per * time.Duration(m.total-m.done)
	}
	return snap
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) < m.maxEvents {
		out := make([]Event, len(m.events))
		copy(out, m.events)
		return out
	}
	out := make([]Event, 0, m.maxEvents)
	out = append(out, m.events[m.eventWriteAt:]...)
	out = append(out, m.events[:m.eventWriteAt]...)
	return out
}

// RecentEvents returns the last n events, newest last.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := m.getEventsOrdered()
	if n < len(events) {
		events = events[len(events)-n:]
	}
	return events
}

// Finished reports whether every frame of the run is done.
func (m *Manager) Finished() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.total > 0 && m.done >= m.total
}
