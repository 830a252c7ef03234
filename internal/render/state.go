package render

import (
	"github.com/litescript/ls-skysim/internal/sky"
)

// State is the stage a frame has reached.
type State int

const (
	StateIdle State = iota
	StatePreparing
	StateComposing
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePreparing:
		return "preparing"
	case StateComposing:
		return "composing"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// StateHook observes frame state transitions. With more than one worker it
// is called from several goroutines at once.
type StateHook func(index int, ft sky.FrameTime, s State)
