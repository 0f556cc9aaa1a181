package springbone

import "github.com/Faultbox/midgard-vrm/pkg/math"

// Chain is one declared root bone expanded into joints for it and all of its
// descendants, ordered parents first.
type Chain struct {
	Comment string

	root   Transform
	center Transform
	groups []*ColliderGroup
	joints []*SpringBone
}

// NewChain builds the joints under root. Descendants for which claimed
// returns true are left out together with their subtrees; claimed may be nil.
func NewChain(comment string, root Transform, params Params, center Transform, groups []*ColliderGroup, claimed func(Transform) bool) *Chain {
	c := &Chain{Comment: comment, root: root, center: center, groups: groups}
	c.setup(root, params, groups, claimed)
	return c
}

func (c *Chain) setup(bone Transform, params Params, groups []*ColliderGroup, claimed func(Transform) bool) {
	if claimed != nil && claimed(bone) {
		return
	}
	children := bone.Children()
	c.joints = append(c.joints, NewSpringBone(bone, childPosition(bone, children), params, c.center, groups))
	for _, child := range children {
		c.setup(child, params, groups, claimed)
	}
}

// childPosition returns the tail of bone in its local space: the first
// child's position, or a short virtual extension along the bone's own offset
// from its parent when it has no children.
func childPosition(bone Transform, children []Transform) math.Vec3 {
	if len(children) > 0 {
		return children[0].LocalPosition()
	}
	dir := bone.LocalPosition()
	if dir.LengthSquared() < minLength*minLength {
		dir = math.Vec3{Y: 1}
	}
	// LocalPosition is in the parent's frame; the tail is in the bone's.
	local := bone.LocalRotation().Conjugate().Rotate(dir.Normalize())
	return local.Scale(tipLength)
}

// Update advances every joint by dt seconds, root to tip.
func (c *Chain) Update(dt float32) {
	for _, j := range c.joints {
		j.Update(dt)
	}
}

// Reset re-seeds every joint from the current pose.
func (c *Chain) Reset() {
	for _, j := range c.joints {
		j.Reset()
	}
}

// Root returns the declared root bone.
func (c *Chain) Root() Transform {
	return c.root
}

// Center returns the chain's reference frame, or nil for world space.
func (c *Chain) Center() Transform {
	return c.center
}

// ColliderGroups returns the groups every joint of the chain is tested against.
func (c *Chain) ColliderGroups() []*ColliderGroup {
	return c.groups
}

// reads returns the nodes outside its joints whose world matrices the chain
// reads while updating.
func (c *Chain) reads() []Transform {
	var nodes []Transform
	if c.center != nil {
		nodes = append(nodes, c.center)
	}
	for _, g := range c.groups {
		nodes = append(nodes, g.Bone())
	}
	return nodes
}

// Joints returns the chain's joints, parents before children.
func (c *Chain) Joints() []*SpringBone {
	return c.joints
}
