package vrm

import "github.com/Faultbox/midgard-vrm/pkg/math"

// ToHostHanded converts a vector from the VRM convention (right-handed,
// Y-up, -Z forward) to the host convention (left-handed, Y-up, +Z forward).
// Applying it twice returns the original vector.
func ToHostHanded(v math.Vec3) math.Vec3 {
	return math.Vec3{X: -v.X, Y: v.Y, Z: -v.Z}
}

// Vec3 returns the vector unchanged, as a math.Vec3.
func (v Vector3) Vec3() math.Vec3 {
	return math.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// Host returns the vector converted to the host convention.
func (v Vector3) Host() math.Vec3 {
	return ToHostHanded(v.Vec3())
}
