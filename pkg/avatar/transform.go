package avatar

import (
	"github.com/Faultbox/midgard-vrm/pkg/math"
	"github.com/Faultbox/midgard-vrm/pkg/scene"
	"github.com/Faultbox/midgard-vrm/pkg/springbone"
)

// nodeTransform adapts a scene node to the spring-bone solver.
type nodeTransform struct {
	node *scene.Node
}

func (t nodeTransform) WorldMatrix() math.Mat4         { return t.node.WorldMatrix() }
func (t nodeTransform) ParentWorldRotation() math.Quat { return t.node.ParentWorldRotation() }
func (t nodeTransform) LocalPosition() math.Vec3       { return t.node.Position }
func (t nodeTransform) LocalRotation() math.Quat       { return t.node.Rotation }
func (t nodeTransform) SetLocalRotation(q math.Quat)   { t.node.SetLocalRotation(q) }

func (t nodeTransform) Children() []springbone.Transform {
	children := t.node.Children()
	out := make([]springbone.Transform, len(children))
	for i, c := range children {
		out[i] = nodeTransform{node: c}
	}
	return out
}

// Lookup resolves glTF node indices against s. Unknown indices yield a nil
// interface, never a wrapped nil node.
func Lookup(s *scene.Scene) springbone.Lookup {
	return func(index int) springbone.Transform {
		n := s.FindNode(index)
		if n == nil {
			return nil
		}
		return nodeTransform{node: n}
	}
}

// Node returns the scene node behind a solver transform created by this
// package, or nil.
func Node(t springbone.Transform) *scene.Node {
	if nt, ok := t.(nodeTransform); ok {
		return nt.node
	}
	return nil
}
