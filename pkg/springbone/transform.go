// Package springbone simulates VRM secondary animation: chains of bones that
// swing under inertia, gravity and a restoring stiffness, and that are pushed
// out of spherical colliders.
package springbone

import "github.com/Faultbox/midgard-vrm/pkg/math"

// Transform is what the solver needs from a host scene node. Implementations
// must be comparable, and two values for the same node must compare equal.
type Transform interface {
	WorldMatrix() math.Mat4
	ParentWorldRotation() math.Quat
	LocalPosition() math.Vec3
	LocalRotation() math.Quat
	SetLocalRotation(q math.Quat)
	Children() []Transform
}

// Lookup resolves a glTF node index to a transform. It returns a nil
// interface when the index does not resolve.
type Lookup func(nodeIndex int) Transform
