package viewer

import (
	"testing"

	"github.com/Faultbox/midgard-vrm/internal/config"
	"github.com/Faultbox/midgard-vrm/internal/engine/debug"
	"github.com/Faultbox/midgard-vrm/pkg/avatar"
	"github.com/Faultbox/midgard-vrm/pkg/math"
	"github.com/Faultbox/midgard-vrm/pkg/scene"
	"github.com/Faultbox/midgard-vrm/pkg/vrm"
)

const overlayJSON = `{
  "secondaryAnimation": {
    "boneGroups": [{"stiffiness": 1, "gravityDir": {"x": 0, "y": -1, "z": 0}, "bones": [1], "colliderGroups": [0]}],
    "colliderGroups": [{"node": 0, "colliders": [{"offset": {"x": 0, "y": 0, "z": 0}, "radius": 0.1}]}]
  }
}`

func overlayManager(t *testing.T) *avatar.Manager {
	t.Helper()
	ext, err := vrm.Decode([]byte(overlayJSON))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	s := scene.New()
	body := scene.NewNode("body", 0)
	body.Position = math.Vec3{Y: 1}
	hair := scene.NewNode("hair", 1)
	hair.Position = math.Vec3{Y: 0.2}
	s.Root.AddChild(body)
	body.AddChild(hair)
	s.Reindex()
	return avatar.NewManager(ext, s)
}

func TestBuildOverlay(t *testing.T) {
	m := overlayManager(t)

	var grid debug.Lines
	grid.Grid(gridHalfSize, gridCells, debug.ColorGround)
	gridVerts := grid.VertexCount()

	var lines debug.Lines
	BuildOverlay(&lines, m, config.GizmoConfig{}, nil)
	if got := lines.VertexCount(); got != gridVerts {
		t.Errorf("grid only: %d vertices, want %d", got, gridVerts)
	}

	counts := make(map[string]int)
	for name, g := range map[string]config.GizmoConfig{
		"skeleton":  {Skeleton: true},
		"colliders": {Colliders: true},
		"tails":     {Tails: true},
	} {
		BuildOverlay(&lines, m, g, nil)
		counts[name] = lines.VertexCount() - gridVerts
		if counts[name] <= 0 {
			t.Errorf("%s: no vertices added", name)
		}
	}

	BuildOverlay(&lines, m, config.Default().Gizmos, nil)
	want := gridVerts + counts["skeleton"] + counts["colliders"] + counts["tails"]
	if got := lines.VertexCount(); got != want {
		t.Errorf("all gizmos: %d vertices, want %d", got, want)
	}
}

func TestBuildOverlaySelected(t *testing.T) {
	m := overlayManager(t)
	joint := m.SpringBones().Chains()[0].Joints()[0]

	var plain, selected debug.Lines
	BuildOverlay(&plain, m, config.GizmoConfig{}, nil)
	BuildOverlay(&selected, m, config.GizmoConfig{}, joint)

	// One bone line plus a sphere of three great circles.
	want := plain.VertexCount() + 2 + 3*debug.SphereSegments*2
	if got := selected.VertexCount(); got != want {
		t.Errorf("selected overlay: %d vertices, want %d", got, want)
	}
}
