package springbone

import "github.com/Faultbox/midgard-vrm/pkg/math"

// tipLength is the length of the virtual bone given to a joint without children.
const tipLength = 0.07

// minLength guards normalizations against zero-length vectors.
const minLength = 1e-6

// Params are the physical parameters shared by every joint of a bone group.
type Params struct {
	// Stiffness is the rate at which the tail is pulled back to its rest direction.
	Stiffness float32
	// GravityPower scales GravityDir, in units per second.
	GravityPower float32
	// GravityDir is a unit vector in host convention.
	GravityDir math.Vec3
	// DragForce in [0, 1]: 0 keeps all velocity, 1 removes it.
	DragForce float32
	// HitRadius is the joint's own radius when tested against colliders.
	HitRadius float32
}

// SpringBone is one simulated joint. Its tail positions are kept in world
// space, or in the center node's space when the joint has a center.
type SpringBone struct {
	bone   Transform
	center Transform
	params Params
	groups []*ColliderGroup

	initialLocalRotation math.Quat
	localChild           math.Vec3
	boneAxis             math.Vec3
	boneLength           float32

	currentTail math.Vec3
	prevTail    math.Vec3

	spheres []Sphere
}

// NewSpringBone captures the rest pose of bone. localChild is the position of
// the bone's tail in the bone's local space. center may be nil.
func NewSpringBone(bone Transform, localChild math.Vec3, params Params, center Transform, groups []*ColliderGroup) *SpringBone {
	b := &SpringBone{
		bone:                 bone,
		center:               center,
		params:               params,
		groups:               groups,
		initialLocalRotation: bone.LocalRotation(),
		localChild:           localChild,
		boneAxis:             localChild.Normalize(),
	}
	b.Reset()
	return b
}

// Reset puts the bone back to its rest rotation and re-seeds the tail from
// the current pose, discarding all velocity.
func (b *SpringBone) Reset() {
	b.bone.SetLocalRotation(b.initialLocalRotation)
	world := b.bone.WorldMatrix()
	tail := world.TransformVec3(b.localChild)
	b.boneLength = tail.Distance(world.Translation())
	b.currentTail = b.toCenter(tail, b.centerMatrix())
	b.prevTail = b.currentTail
}

// Update advances the joint by dt seconds.
func (b *SpringBone) Update(dt float32) {
	// Rotation is recomputed from the rest pose every step.
	b.bone.SetLocalRotation(b.initialLocalRotation)

	origin := b.bone.WorldMatrix().Translation()
	if origin.IsNaN() {
		return
	}
	centerM := b.centerMatrix()
	current := b.fromCenter(b.currentTail, centerM)
	prev := b.fromCenter(b.prevTail, centerM)

	parentRotation := b.bone.ParentWorldRotation()
	restRotation := parentRotation.Mul(b.initialLocalRotation)
	restAxis := restRotation.Rotate(b.boneAxis)

	next := current.
		Add(current.Sub(prev).Scale(1 - b.params.DragForce)).
		Add(restAxis.Scale(b.params.Stiffness * dt)).
		Add(b.params.GravityDir.Scale(b.params.GravityPower * dt))
	next = b.constrainLength(origin, next, restAxis)
	next = b.collide(origin, next, restAxis)

	b.prevTail = b.currentTail
	b.currentTail = b.toCenter(next, centerM)

	worldRotation := math.QuatFromTo(restAxis, next.Sub(origin)).Mul(restRotation)
	b.bone.SetLocalRotation(parentRotation.Inverse().Mul(worldRotation).Normalize())
}

// constrainLength places p at boneLength from origin, keeping its direction.
func (b *SpringBone) constrainLength(origin, p, fallback math.Vec3) math.Vec3 {
	dir := p.Sub(origin)
	if dir.LengthSquared() < minLength*minLength {
		dir = fallback
	}
	return origin.Add(dir.Normalize().Scale(b.boneLength))
}

// collide resolves penetrations one collider at a time, in declaration order.
func (b *SpringBone) collide(origin, next, restAxis math.Vec3) math.Vec3 {
	b.spheres = b.spheres[:0]
	for _, g := range b.groups {
		b.spheres = g.AppendSpheres(b.spheres)
	}

	for _, s := range b.spheres {
		r := s.Radius + b.params.HitRadius
		d := next.Sub(s.Center)
		if d.LengthSquared() >= r*r {
			continue
		}
		if d.LengthSquared() < minLength*minLength {
			d = next.Sub(origin)
			if d.LengthSquared() < minLength*minLength {
				d = restAxis
			}
		}
		pushed := s.Center.Add(d.Normalize().Scale(r))
		if s.Center.Distance(origin)+b.boneLength <= r {
			// No tail position at boneLength clears this sphere: the collider wins.
			next = pushed
			continue
		}
		next = b.constrainLength(origin, pushed, restAxis)
	}
	return next
}

func (b *SpringBone) centerMatrix() *math.Mat4 {
	if b.center == nil {
		return nil
	}
	m := b.center.WorldMatrix()
	return &m
}

func (b *SpringBone) fromCenter(p math.Vec3, centerM *math.Mat4) math.Vec3 {
	if centerM == nil {
		return p
	}
	return centerM.TransformVec3(p)
}

func (b *SpringBone) toCenter(p math.Vec3, centerM *math.Mat4) math.Vec3 {
	if centerM == nil {
		return p
	}
	return centerM.Inverse().TransformVec3(p)
}

// Bone returns the animated transform.
func (b *SpringBone) Bone() Transform {
	return b.bone
}

// Params returns the joint's physical parameters.
func (b *SpringBone) Params() Params {
	return b.params
}

// BoneAxis returns the rest direction of the tail in the bone's local space.
func (b *SpringBone) BoneAxis() math.Vec3 {
	return b.boneAxis
}

// BoneLength returns the fixed distance between the bone origin and its tail.
func (b *SpringBone) BoneLength() float32 {
	return b.boneLength
}

// CurrentTail returns the simulated tail in world space.
func (b *SpringBone) CurrentTail() math.Vec3 {
	return b.fromCenter(b.currentTail, b.centerMatrix())
}

// PrevTail returns the previous step's tail in world space.
func (b *SpringBone) PrevTail() math.Vec3 {
	return b.fromCenter(b.prevTail, b.centerMatrix())
}

// ColliderGroups returns the groups the joint is tested against.
func (b *SpringBone) ColliderGroups() []*ColliderGroup {
	return b.groups
}
