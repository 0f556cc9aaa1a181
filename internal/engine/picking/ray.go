// Package picking provides ray casting against debug gizmos.
package picking

import (
	gomath "math"

	"github.com/Faultbox/midgard-vrm/pkg/math"
	"github.com/Faultbox/midgard-vrm/pkg/springbone"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	// Unproject near and far points; TransformVec3 does the perspective divide
	near := invViewProj.TransformVec3(math.Vec3{X: ndcX, Y: ndcY, Z: -1})
	far := invViewProj.TransformVec3(math.Vec3{X: ndcX, Y: ndcY, Z: 1})

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// IntersectSphere tests ray intersection with a sphere.
// Returns the distance to the nearest intersection in front of the origin.
// If the ray starts inside the sphere, returns the exit distance.
func (r Ray) IntersectSphere(center math.Vec3, radius float32) (t float32, hit bool) {
	// |O + tD - C|^2 = r^2 with |D| = 1
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}

	sq := float32(gomath.Sqrt(float64(disc)))
	t = -b - sq
	if t < 0 {
		t = -b + sq // Inside the sphere
	}
	if t < 0 {
		return 0, false // Sphere behind ray origin
	}
	return t, true
}

// MinJointRadius is the pick radius for joints with a smaller hit radius.
const MinJointRadius = 0.02

// Hit is a joint picked by PickJoint.
type Hit struct {
	Chain *springbone.Chain
	Joint *springbone.SpringBone
	T     float32
}

// PickJoint returns the joint whose tail is hit first by r. Each tail is
// tested as a sphere of the joint's hit radius, at least MinJointRadius.
func PickJoint(r Ray, ctrl *springbone.Controller) (Hit, bool) {
	var best Hit
	found := false
	for _, c := range ctrl.Chains() {
		for _, j := range c.Joints() {
			radius := j.Params().HitRadius
			if radius < MinJointRadius {
				radius = MinJointRadius
			}
			t, ok := r.IntersectSphere(j.CurrentTail(), radius)
			if !ok || (found && t >= best.T) {
				continue
			}
			best = Hit{Chain: c, Joint: j, T: t}
			found = true
		}
	}
	return best, found
}
