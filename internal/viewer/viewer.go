// Package viewer implements the interactive spring-bone viewer loop.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-vrm/internal/config"
	"github.com/Faultbox/midgard-vrm/internal/engine/camera"
	"github.com/Faultbox/midgard-vrm/internal/engine/debug"
	"github.com/Faultbox/midgard-vrm/internal/engine/input"
	"github.com/Faultbox/midgard-vrm/internal/engine/picking"
	"github.com/Faultbox/midgard-vrm/internal/engine/renderer"
	"github.com/Faultbox/midgard-vrm/internal/engine/window"
	"github.com/Faultbox/midgard-vrm/internal/logger"
	"github.com/Faultbox/midgard-vrm/pkg/avatar"
	gmath "github.com/Faultbox/midgard-vrm/pkg/math"
	"github.com/Faultbox/midgard-vrm/pkg/springbone"
)

// Viewer shows one avatar with its spring bones running.
type Viewer struct {
	config  *config.Config
	title   string
	log     *zap.Logger
	running bool
	state   State

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	orbit       *camera.OrbitCamera
	firstPerson *camera.FirstPersonCamera

	avatar   *avatar.Manager
	lines    debug.Lines
	selected *springbone.SpringBone

	width, height int
}

// New opens a window for m. The caller keeps ownership of m.
func New(cfg *config.Config, title string, m *avatar.Manager) (*Viewer, error) {
	v := &Viewer{
		config: cfg,
		title:  title,
		log:    logger.Named("viewer"),
		avatar: m,
		state: State{
			Paused: cfg.Simulation.Paused,
			Gizmos: cfg.Gizmos,
		},
	}

	v.log.Info("initializing viewer",
		zap.String("title", title),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height))

	var err error
	v.window, err = window.New(window.FromGraphics(title, cfg.Graphics))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	v.width, v.height = v.window.Size()

	// Renderer needs the GL context created by the window.
	v.renderer, err = renderer.New(renderer.Config{
		Width:  v.width,
		Height: v.height,
		FovY:   0.8,
		Near:   0.01,
		Far:    100,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.input = input.New()

	v.orbit = camera.NewOrbitCamera()
	if lo, hi, ok := debug.Bounds(m.Scene()); ok {
		v.orbit.FitToBounds(lo, hi)
	}
	v.firstPerson = camera.NewFirstPersonCamera(v.orbit.Target)

	return v, nil
}

// Run blocks until the window is closed or Esc is pressed.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()
	var frameLimit time.Duration
	if v.config.Graphics.FPSLimit > 0 {
		frameLimit = time.Second / time.Duration(v.config.Graphics.FPSLimit)
	}

	v.log.Info("starting viewer loop")

	for v.running {
		frameStart := time.Now()
		elapsed := frameStart.Sub(lastTime)
		lastTime = frameStart

		if v.input.Update() {
			v.running = false
			break
		}
		step := v.handleEvents()

		if err := v.update(elapsed, step); err != nil {
			return fmt.Errorf("update error: %w", err)
		}

		v.render()
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount), zap.Duration("dt", elapsed))
			v.window.SetTitle(fmt.Sprintf("%s - %d fps", v.title, frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameLimit > 0 {
			if rest := frameLimit - time.Since(frameStart); rest > 0 {
				time.Sleep(rest)
			}
		}
	}

	return nil
}

// handleEvents applies this frame's input and reports whether a single
// step was requested.
func (v *Viewer) handleEvents() (step bool) {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.renderer.Resize(event.Width, event.Height)
			v.width, v.height = event.Width, event.Height

		case input.EventMouseDown:
			if event.Button == sdl.BUTTON_RIGHT {
				v.pick(event.MouseX, event.MouseY)
			}

		case input.EventKeyDown:
			switch v.state.HandleKey(event.Key) {
			case ActionQuit:
				v.running = false
			case ActionReset:
				v.avatar.SpringBones().Reset()
				v.log.Debug("springs reset")
			case ActionStep:
				step = true
			}

		case input.EventMouseMove:
			if !v.input.IsButtonDown(sdl.BUTTON_LEFT) {
				continue
			}
			dx, dy := float32(event.DeltaX), float32(event.DeltaY)
			if v.state.FirstPerson {
				v.firstPerson.HandleDrag(dx, dy)
			} else {
				v.orbit.HandleDrag(dx, dy)
			}

		case input.EventMouseWheel:
			v.orbit.HandleZoom(float32(event.DeltaY))
		}
	}
	return step
}

// pick selects the joint under the cursor, or clears the selection.
func (v *Viewer) pick(x, y int) {
	invViewProj := v.renderer.Projection().Mul(v.viewMatrix()).Inverse()
	ray := picking.ScreenToRay(float32(x), float32(y), float32(v.width), float32(v.height), invViewProj)

	hit, ok := picking.PickJoint(ray, v.avatar.SpringBones())
	if !ok {
		v.selected = nil
		return
	}
	v.selected = hit.Joint
	p := hit.Joint.Params()
	name := ""
	if n := avatar.Node(hit.Joint.Bone()); n != nil {
		name = n.Name
	}
	v.log.Info("joint selected",
		zap.String("bone", name),
		zap.String("chain", hit.Chain.Comment),
		zap.Float32("length", hit.Joint.BoneLength()),
		zap.Float32("stiffness", p.Stiffness),
		zap.Float32("gravityPower", p.GravityPower),
		zap.Float32("dragForce", p.DragForce),
		zap.Float32("hitRadius", p.HitRadius))
}

func (v *Viewer) update(elapsed time.Duration, step bool) error {
	if !v.state.FirstPerson {
		var forward, right, up float32
		if v.input.IsKeyPressed(sdl.SCANCODE_W) {
			forward++
		}
		if v.input.IsKeyPressed(sdl.SCANCODE_S) {
			forward--
		}
		if v.input.IsKeyPressed(sdl.SCANCODE_D) {
			right++
		}
		if v.input.IsKeyPressed(sdl.SCANCODE_A) {
			right--
		}
		if v.input.IsKeyPressed(sdl.SCANCODE_E) {
			up++
		}
		if v.input.IsKeyPressed(sdl.SCANCODE_Q) {
			up--
		}
		if forward != 0 || right != 0 || up != 0 {
			v.orbit.HandleMovement(forward, right, up)
		}
	}

	switch {
	case step:
		return v.avatar.Update(StepMs)
	case v.state.Paused:
		return nil
	default:
		return v.avatar.Update(FrameDelta(elapsed, v.config.Simulation.TimeScale))
	}
}

func (v *Viewer) render() {
	v.renderer.Begin()
	defer v.renderer.End()

	BuildOverlay(&v.lines, v.avatar, v.state.Gizmos, v.selected)
	v.renderer.DrawLines(&v.lines, v.viewMatrix())
}

// activeCamera returns the camera selected by the user. The first-person
// camera follows the avatar's first-person anchor.
func (v *Viewer) activeCamera() camera.Camera {
	if !v.state.FirstPerson {
		return v.orbit
	}
	if eye, ok := v.avatar.FirstPersonCameraPosition(); ok {
		v.firstPerson.Eye = eye
	}
	return v.firstPerson
}

func (v *Viewer) viewMatrix() gmath.Mat4 {
	return v.activeCamera().ViewMatrix()
}

// Close releases the window and GL resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
