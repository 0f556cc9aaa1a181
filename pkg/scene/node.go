// Package scene is a minimal transform hierarchy: nodes with local
// translation/rotation/scale whose world transforms are derived on demand.
package scene

import "github.com/Faultbox/midgard-vrm/pkg/math"

// Node is a transform in the scene graph.
//
// World transforms are never cached: every query walks the parent chain, so
// concurrent readers never write shared state.
type Node struct {
	Name string
	// Index is the originating glTF node index, or -1 for synthetic nodes.
	Index int
	// Mesh is the glTF mesh index drawn by this node, or -1.
	Mesh int

	Position math.Vec3
	Rotation math.Quat
	Scaling  math.Vec3

	parent   *Node
	children []*Node
}

// NewNode creates a node with an identity transform.
func NewNode(name string, index int) *Node {
	return &Node{
		Name:     name,
		Index:    index,
		Mesh:     -1,
		Rotation: math.QuatIdentity(),
		Scaling:  math.Vec3{X: 1, Y: 1, Z: 1},
	}
}

// AddChild attaches child to n, detaching it from any previous parent.
func (n *Node) AddChild(child *Node) {
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

func (n *Node) removeChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the direct children in insertion order.
func (n *Node) Children() []*Node {
	return n.children
}

// LocalMatrix returns T * R * S.
func (n *Node) LocalMatrix() math.Mat4 {
	return math.FromTRS(n.Position, n.Rotation, n.Scaling)
}

// WorldMatrix returns the node's transform relative to the scene root.
func (n *Node) WorldMatrix() math.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul(m)
	}
	return m
}

// WorldRotation returns the accumulated rotation of n and its ancestors.
// Non-uniform scale is ignored.
func (n *Node) WorldRotation() math.Quat {
	q := n.Rotation
	for p := n.parent; p != nil; p = p.parent {
		q = p.Rotation.Mul(q)
	}
	return q.Normalize()
}

// ParentWorldRotation returns the world rotation of the parent, or identity.
func (n *Node) ParentWorldRotation() math.Quat {
	if n.parent == nil {
		return math.QuatIdentity()
	}
	return n.parent.WorldRotation()
}

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() math.Vec3 {
	return n.WorldMatrix().Translation()
}

// SetLocalRotation replaces the local rotation.
func (n *Node) SetLocalRotation(q math.Quat) {
	n.Rotation = q
}

// Walk visits n and its descendants depth-first, parents before children.
// Returning false from fn skips the node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}
