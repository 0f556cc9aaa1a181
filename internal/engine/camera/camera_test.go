package camera

import (
	"testing"

	"github.com/Faultbox/midgard-vrm/pkg/math"
)

func TestOrbitCameraPosition(t *testing.T) {
	c := NewOrbitCamera()
	c.Target = math.Vec3{Y: 1}
	c.Distance = 2
	c.RotationX = 0
	c.RotationY = 0

	// Zero yaw looks at the avatar's face from +Z
	if got := c.Position(); got.Distance(math.Vec3{Y: 1, Z: 2}) > 1e-5 {
		t.Errorf("Position() = %v, want (0,1,2)", got)
	}

	// The view matrix maps the target onto the -Z axis at the orbit distance
	target := c.ViewMatrix().TransformVec3(c.Target)
	if target.Distance(math.Vec3{Z: -2}) > 1e-4 {
		t.Errorf("target in view space = %v, want (0,0,-2)", target)
	}
}

func TestOrbitCameraClamps(t *testing.T) {
	c := NewOrbitCamera()

	c.HandleDrag(0, 1e6)
	if c.RotationX != c.MaxPitch {
		t.Errorf("RotationX = %v, want max pitch %v", c.RotationX, c.MaxPitch)
	}
	c.HandleDrag(0, -1e6)
	if c.RotationX != c.MinPitch {
		t.Errorf("RotationX = %v, want min pitch %v", c.RotationX, c.MinPitch)
	}

	for i := 0; i < 100; i++ {
		c.HandleZoom(1)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("Distance = %v, want min distance %v", c.Distance, c.MinDistance)
	}
	for i := 0; i < 100; i++ {
		c.HandleZoom(-1)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("Distance = %v, want max distance %v", c.Distance, c.MaxDistance)
	}
}

func TestOrbitCameraFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds(math.Vec3{X: -0.5, Y: 0, Z: -0.2}, math.Vec3{X: 0.5, Y: 1.6, Z: 0.2})

	if c.Target.Distance(math.Vec3{Y: 0.8}) > 1e-5 {
		t.Errorf("Target = %v, want (0,0.8,0)", c.Target)
	}
	if c.Distance < 1.6 {
		t.Errorf("Distance = %v, expected the whole avatar in view", c.Distance)
	}
}

func TestFirstPersonCamera(t *testing.T) {
	c := NewFirstPersonCamera(math.Vec3{Y: 1.5})

	if f := c.Forward(); f.Distance(math.Vec3{Z: 1}) > 1e-5 {
		t.Errorf("Forward() = %v, want +Z", f)
	}

	// A point straight ahead ends up on the view's -Z axis
	p := c.ViewMatrix().TransformVec3(math.Vec3{Y: 1.5, Z: 3})
	if p.Distance(math.Vec3{Z: -3}) > 1e-4 {
		t.Errorf("point ahead in view space = %v, want (0,0,-3)", p)
	}

	c.HandleDrag(0, 1e6)
	if c.Pitch != -1.5 {
		t.Errorf("Pitch = %v, want -1.5", c.Pitch)
	}
}

var (
	_ Camera = (*OrbitCamera)(nil)
	_ Camera = (*FirstPersonCamera)(nil)
)
