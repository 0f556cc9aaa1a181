package viewer

import (
	"testing"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/midgard-vrm/internal/config"
)

func TestHandleKey(t *testing.T) {
	s := State{Gizmos: config.Default().Gizmos}

	if a := s.HandleKey(sdl.SCANCODE_PERIOD); a != ActionNone {
		t.Errorf("step while running = %v, want no action", a)
	}
	s.HandleKey(sdl.SCANCODE_SPACE)
	if !s.Paused {
		t.Fatal("expected space to pause")
	}
	if a := s.HandleKey(sdl.SCANCODE_PERIOD); a != ActionStep {
		t.Errorf("step while paused = %v, want ActionStep", a)
	}

	s.HandleKey(sdl.SCANCODE_2)
	if s.Gizmos.Colliders {
		t.Error("expected 2 to hide colliders")
	}
	s.HandleKey(sdl.SCANCODE_C)
	if !s.FirstPerson {
		t.Error("expected C to switch to first person")
	}

	if a := s.HandleKey(sdl.SCANCODE_R); a != ActionReset {
		t.Errorf("R = %v, want ActionReset", a)
	}
	if a := s.HandleKey(sdl.SCANCODE_ESCAPE); a != ActionQuit {
		t.Errorf("Esc = %v, want ActionQuit", a)
	}
}

func TestFrameDelta(t *testing.T) {
	if got := FrameDelta(20*time.Millisecond, 1); got < 19.999 || got > 20.001 {
		t.Errorf("FrameDelta(20ms, 1) = %v, want 20", got)
	}
	if got := FrameDelta(20*time.Millisecond, 0.5); got < 9.999 || got > 10.001 {
		t.Errorf("FrameDelta(20ms, 0.5) = %v, want 10", got)
	}
	if got := FrameDelta(time.Second, 0); got != 0 {
		t.Errorf("FrameDelta(1s, 0) = %v, want 0", got)
	}
}
