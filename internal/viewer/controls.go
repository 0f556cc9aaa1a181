package viewer

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/midgard-vrm/internal/config"
)

// Action is a viewer command triggered by a key.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionReset
	ActionStep
)

// State is the user-toggled part of the viewer.
type State struct {
	Paused      bool
	FirstPerson bool
	Gizmos      config.GizmoConfig
}

// HandleKey applies a key press to s and returns the command it triggers.
//
//	Esc    quit
//	Space  pause / resume
//	.      advance one frame while paused
//	R      reset springs to the current pose
//	C      toggle first-person camera
//	1 2 3  toggle skeleton, collider and tail overlays
func (s *State) HandleKey(key sdl.Scancode) Action {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		return ActionQuit
	case sdl.SCANCODE_SPACE:
		s.Paused = !s.Paused
	case sdl.SCANCODE_PERIOD:
		if s.Paused {
			return ActionStep
		}
	case sdl.SCANCODE_R:
		return ActionReset
	case sdl.SCANCODE_C:
		s.FirstPerson = !s.FirstPerson
	case sdl.SCANCODE_1:
		s.Gizmos.Skeleton = !s.Gizmos.Skeleton
	case sdl.SCANCODE_2:
		s.Gizmos.Colliders = !s.Gizmos.Colliders
	case sdl.SCANCODE_3:
		s.Gizmos.Tails = !s.Gizmos.Tails
	}
	return ActionNone
}

// StepMs is the frame time used when stepping a paused simulation.
const StepMs = 1000.0 / 60

// FrameDelta converts wall-clock frame time to simulation milliseconds.
func FrameDelta(elapsed time.Duration, timeScale float32) float32 {
	return float32(elapsed.Seconds()*1000) * timeScale
}
