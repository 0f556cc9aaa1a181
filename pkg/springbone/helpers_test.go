package springbone

import "github.com/Faultbox/midgard-vrm/pkg/math"

// testNode is a minimal scene node implementing Transform.
type testNode struct {
	name     string
	pos      math.Vec3
	rot      math.Quat
	scale    math.Vec3
	parent   *testNode
	children []*testNode
}

func newTestNode(name string, pos math.Vec3) *testNode {
	return &testNode{
		name:  name,
		pos:   pos,
		rot:   math.QuatIdentity(),
		scale: math.Vec3{X: 1, Y: 1, Z: 1},
	}
}

func (n *testNode) add(child *testNode) *testNode {
	child.parent = n
	n.children = append(n.children, child)
	return child
}

func (n *testNode) WorldMatrix() math.Mat4 {
	m := math.FromTRS(n.pos, n.rot, n.scale)
	for p := n.parent; p != nil; p = p.parent {
		m = math.FromTRS(p.pos, p.rot, p.scale).Mul(m)
	}
	return m
}

func (n *testNode) ParentWorldRotation() math.Quat {
	q := math.QuatIdentity()
	for p := n.parent; p != nil; p = p.parent {
		q = p.rot.Mul(q)
	}
	return q
}

func (n *testNode) LocalPosition() math.Vec3     { return n.pos }
func (n *testNode) LocalRotation() math.Quat     { return n.rot }
func (n *testNode) SetLocalRotation(q math.Quat) { n.rot = q }
func (n *testNode) worldPosition() math.Vec3     { return n.WorldMatrix().Translation() }

func (n *testNode) Children() []Transform {
	out := make([]Transform, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// lookupOf resolves indices into nodes.
func lookupOf(nodes ...*testNode) Lookup {
	return func(i int) Transform {
		if i < 0 || i >= len(nodes) {
			return nil
		}
		return nodes[i]
	}
}

// strand builds a straight chain of n segments of length seg hanging from
// root along dir.
func strand(root *testNode, n int, dir math.Vec3, seg float32) []*testNode {
	nodes := []*testNode{root}
	cur := root
	for i := 0; i < n; i++ {
		cur = cur.add(newTestNode("seg", dir.Scale(seg)))
		nodes = append(nodes, cur)
	}
	return nodes
}

func near(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func vecNear(a, b math.Vec3, eps float32) bool {
	return near(a.X, b.X, eps) && near(a.Y, b.Y, eps) && near(a.Z, b.Z, eps)
}
