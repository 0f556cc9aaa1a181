package scene

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/midgard-vrm/pkg/math"
)

func near(a, b math.Vec3) bool {
	return a.Distance(b) < 0.0001
}

func TestWorldMatrixChain(t *testing.T) {
	root := NewNode("root", 0)
	root.Position = math.Vec3{X: 1}
	root.Rotation = math.QuatFromAxisAngle(math.Vec3{Z: 1}, gomath.Pi/2)

	child := NewNode("child", 1)
	child.Position = math.Vec3{X: 2}
	root.AddChild(child)

	// child origin: rotate (2,0,0) by 90deg around Z -> (0,2,0), plus (1,0,0)
	got := child.WorldPosition()
	want := math.Vec3{X: 1, Y: 2}
	if !near(got, want) {
		t.Errorf("WorldPosition: got %v, want %v", got, want)
	}

	if child.Parent() != root {
		t.Error("parent not set")
	}
	if len(root.Children()) != 1 {
		t.Errorf("expected 1 child, got %d", len(root.Children()))
	}
}

func TestWorldRotation(t *testing.T) {
	a := NewNode("a", 0)
	a.Rotation = math.QuatFromAxisAngle(math.Vec3{Y: 1}, 0.5)
	b := NewNode("b", 1)
	b.Rotation = math.QuatFromAxisAngle(math.Vec3{Y: 1}, 0.25)
	a.AddChild(b)

	want := math.QuatFromAxisAngle(math.Vec3{Y: 1}, 0.75)
	got := b.WorldRotation()
	if gomath.Abs(float64(got.Dot(want))) < 0.9999 {
		t.Errorf("WorldRotation: got %v, want %v", got, want)
	}

	pr := b.ParentWorldRotation()
	if gomath.Abs(float64(pr.Dot(a.Rotation))) < 0.9999 {
		t.Errorf("ParentWorldRotation: got %v, want %v", pr, a.Rotation)
	}
	if a.ParentWorldRotation() != math.QuatIdentity() {
		t.Error("root parent rotation should be identity")
	}
}

func TestAddChildReparents(t *testing.T) {
	a := NewNode("a", 0)
	b := NewNode("b", 1)
	c := NewNode("c", 2)
	a.AddChild(c)
	b.AddChild(c)

	if len(a.Children()) != 0 {
		t.Errorf("old parent still has %d children", len(a.Children()))
	}
	if c.Parent() != b {
		t.Error("child not moved to new parent")
	}
}

func TestSceneReindex(t *testing.T) {
	s := New()
	hips := NewNode("hips", 3)
	hair := NewNode("hair", 7)
	helper := NewNode("helper", -1)
	s.Root.AddChild(hips)
	hips.AddChild(helper)
	helper.AddChild(hair)
	s.Reindex()

	if s.FindNode(3) != hips || s.FindNode(7) != hair {
		t.Error("indexed nodes not found")
	}
	if s.FindNode(-1) != nil || s.FindNode(42) != nil {
		t.Error("unexpected node for missing index")
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 indexed nodes, got %d", s.Len())
	}
	nodes := s.Nodes()
	if nodes[0] != hips || nodes[1] != hair {
		t.Error("Nodes should be ordered by index")
	}
}

func TestSceneRootFacesPlusZ(t *testing.T) {
	s := New()
	n := NewNode("front", 0)
	n.Position = math.Vec3{Z: -1}
	s.Root.AddChild(n)

	if got := n.WorldPosition(); !near(got, math.Vec3{Z: 1}) {
		t.Errorf("model -Z should map to +Z, got %v", got)
	}
}

func TestWalkSkipsSubtree(t *testing.T) {
	a := NewNode("a", 0)
	b := NewNode("b", 1)
	c := NewNode("c", 2)
	a.AddChild(b)
	b.AddChild(c)

	var visited []string
	a.Walk(func(n *Node) bool {
		visited = append(visited, n.Name)
		return n != b
	})
	if len(visited) != 2 {
		t.Errorf("expected a, b visited, got %v", visited)
	}
}

func TestMorphTargets(t *testing.T) {
	m := NewMorphTargets()
	m.Declare(2, 3)

	if !m.Set(2, 1, 0.5) {
		t.Fatal("Set on declared target failed")
	}
	if got := m.Influence(2, 1); got != 0.5 {
		t.Errorf("Influence: got %v, want 0.5", got)
	}
	if m.Set(2, 3, 1) || m.Set(5, 0, 1) {
		t.Error("Set on undeclared target should fail")
	}
	if m.Influence(5, 0) != 0 {
		t.Error("undeclared influence should be 0")
	}
}
