package scene

import (
	gomath "math"
	"sort"

	"github.com/Faultbox/midgard-vrm/pkg/math"
)

// RootName is the name of the synthetic node every loaded model hangs from.
const RootName = "__root__"

// Scene is a node hierarchy plus a lookup table from glTF node index to node.
type Scene struct {
	Root   *Node
	Morphs *MorphTargets

	nodes map[int]*Node
}

// New creates an empty scene with a synthetic root node.
//
// The root is turned half a turn around Y so that models authored facing -Z
// face +Z in the host convention.
func New() *Scene {
	root := NewNode(RootName, -1)
	root.Rotation = math.QuatFromAxisAngle(math.Vec3{Y: 1}, gomath.Pi)
	return &Scene{
		Root:   root,
		Morphs: NewMorphTargets(),
		nodes:  make(map[int]*Node),
	}
}

// Reindex rebuilds the index table by scanning the hierarchy for nodes
// tagged with an originating index. The first node found for an index wins.
func (s *Scene) Reindex() {
	s.nodes = make(map[int]*Node)
	s.Root.Walk(func(n *Node) bool {
		if n.Index >= 0 {
			if _, ok := s.nodes[n.Index]; !ok {
				s.nodes[n.Index] = n
			}
		}
		return true
	})
}

// FindNode returns the node created from glTF node index, or nil.
func (s *Scene) FindNode(index int) *Node {
	return s.nodes[index]
}

// Nodes returns all indexed nodes ordered by index.
func (s *Scene) Nodes() []*Node {
	out := make([]*Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Len returns the number of indexed nodes.
func (s *Scene) Len() int {
	return len(s.nodes)
}
