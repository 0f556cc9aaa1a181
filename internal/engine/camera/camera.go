// Package camera provides camera implementations for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/Faultbox/midgard-vrm/pkg/math"
)

// Camera is anything the viewer can render from.
type Camera interface {
	ViewMatrix() math.Mat4
	Position() math.Vec3
}

// OrbitCamera orbits around a target point. Distances are in meters.
type OrbitCamera struct {
	// Point to orbit around
	Target math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from target
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates an orbit camera framing a standing avatar from the
// front (+Z).
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Target:          math.Vec3{Y: 1},
		Distance:        2.5,
		RotationX:       0.15,
		RotationY:       0.0,
		MinDistance:     0.2,
		MaxDistance:     20.0,
		MinPitch:        -1.4,
		MaxPitch:        1.4,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))

	return c.Target.Add(math.Vec3{X: x, Y: y, Z: z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Target, math.Vec3{Y: 1})
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity

	// Clamp pitch
	if c.RotationX < c.MinPitch {
		c.RotationX = c.MinPitch
	}
	if c.RotationX > c.MaxPitch {
		c.RotationX = c.MaxPitch
	}
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// HandleMovement pans the target point based on keyboard input.
func (c *OrbitCamera) HandleMovement(forward, right, up float32) {
	// Speed scales with distance for consistent feel
	speed := c.Distance * 0.01

	dirX := float32(gomath.Sin(float64(c.RotationY)))
	dirZ := float32(gomath.Cos(float64(c.RotationY)))
	rightX := float32(gomath.Cos(float64(c.RotationY)))
	rightZ := float32(-gomath.Sin(float64(c.RotationY)))

	// Negate forward so W moves "into" the scene
	c.Target.X += (-dirX*forward + rightX*right) * speed
	c.Target.Z += (-dirZ*forward + rightZ*right) * speed
	c.Target.Y += up * speed
}

// FitToBounds centers the camera on a bounding box and backs off far enough
// to see all of it.
func (c *OrbitCamera) FitToBounds(min, max math.Vec3) {
	c.Target = min.Add(max).Scale(0.5)

	size := max.Sub(min).Length()
	c.Distance = size * 1.5
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}

	c.RotationX = 0.15
	c.RotationY = 0.0
}

// FirstPersonCamera looks out from a fixed eye position, typically the
// avatar's first-person anchor.
type FirstPersonCamera struct {
	Eye   math.Vec3
	Yaw   float32 // 0 looks along +Z
	Pitch float32

	YawSensitivity float32
}

// NewFirstPersonCamera creates a camera at eye looking along +Z.
func NewFirstPersonCamera(eye math.Vec3) *FirstPersonCamera {
	return &FirstPersonCamera{Eye: eye, YawSensitivity: 0.005}
}

// Position returns the eye position.
func (c *FirstPersonCamera) Position() math.Vec3 {
	return c.Eye
}

// Forward returns the unit view direction.
func (c *FirstPersonCamera) Forward() math.Vec3 {
	cp := float32(gomath.Cos(float64(c.Pitch)))
	return math.Vec3{
		X: cp * float32(gomath.Sin(float64(c.Yaw))),
		Y: float32(gomath.Sin(float64(c.Pitch))),
		Z: cp * float32(gomath.Cos(float64(c.Yaw))),
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *FirstPersonCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Eye, c.Eye.Add(c.Forward()), math.Vec3{Y: 1})
}

// HandleDrag turns the view based on mouse drag delta.
func (c *FirstPersonCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.YawSensitivity
	c.Pitch -= deltaY * c.YawSensitivity
	if c.Pitch < -1.5 {
		c.Pitch = -1.5
	}
	if c.Pitch > 1.5 {
		c.Pitch = 1.5
	}
}
