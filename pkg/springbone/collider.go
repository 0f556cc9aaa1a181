package springbone

import "github.com/Faultbox/midgard-vrm/pkg/math"

// Collider is a sphere local to its group's bone, in host convention.
type Collider struct {
	Offset math.Vec3
	Radius float32
}

// Sphere is a collider resolved to world space.
type Sphere struct {
	Center math.Vec3
	Radius float32
}

// ColliderGroup is a bone and the colliders attached to it. Colliders keep
// their declaration order.
type ColliderGroup struct {
	bone      Transform
	colliders []Collider
}

// NewColliderGroup creates an empty group on bone.
func NewColliderGroup(bone Transform) *ColliderGroup {
	return &ColliderGroup{bone: bone}
}

// AddCollider appends a sphere. Negative radii are treated as zero.
func (g *ColliderGroup) AddCollider(offset math.Vec3, radius float32) {
	if radius < 0 {
		radius = 0
	}
	g.colliders = append(g.colliders, Collider{Offset: offset, Radius: radius})
}

// Bone returns the bone the group is attached to.
func (g *ColliderGroup) Bone() Transform {
	return g.bone
}

// Colliders returns the group's colliders in declaration order.
func (g *ColliderGroup) Colliders() []Collider {
	return g.colliders
}

// Spheres returns the colliders at the bone's current pose.
func (g *ColliderGroup) Spheres() []Sphere {
	return g.AppendSpheres(make([]Sphere, 0, len(g.colliders)))
}

// AppendSpheres appends the colliders at the bone's current pose to dst.
// Radii follow the bone's largest world scale axis.
func (g *ColliderGroup) AppendSpheres(dst []Sphere) []Sphere {
	if len(g.colliders) == 0 {
		return dst
	}
	world := g.bone.WorldMatrix()
	scale := world.MaxScale()
	for _, c := range g.colliders {
		dst = append(dst, Sphere{
			Center: world.TransformVec3(c.Offset),
			Radius: c.Radius * scale,
		})
	}
	return dst
}
