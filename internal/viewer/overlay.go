package viewer

import (
	"github.com/Faultbox/midgard-vrm/internal/config"
	"github.com/Faultbox/midgard-vrm/internal/engine/debug"
	"github.com/Faultbox/midgard-vrm/internal/engine/picking"
	"github.com/Faultbox/midgard-vrm/pkg/avatar"
	"github.com/Faultbox/midgard-vrm/pkg/springbone"
)

// Ground grid size in meters.
const (
	gridHalfSize = 2
	gridCells    = 8
)

// BuildOverlay refills lines with the ground grid and the enabled gizmos.
// selected, if not nil, is highlighted regardless of g.
func BuildOverlay(lines *debug.Lines, m *avatar.Manager, g config.GizmoConfig, selected *springbone.SpringBone) {
	lines.Reset()
	lines.Grid(gridHalfSize, gridCells, debug.ColorGround)
	if g.Skeleton {
		lines.Skeleton(m.Scene(), debug.ColorSkeleton)
		if lo, hi, ok := debug.Bounds(m.Scene()); ok {
			lines.Box(lo, hi, debug.ColorGround)
		}
	}
	if g.Colliders {
		lines.Colliders(m.SpringBones())
	}
	if g.Tails {
		lines.Tails(m.SpringBones())
	}
	if selected != nil {
		tail := selected.CurrentTail()
		lines.Line(selected.Bone().WorldMatrix().Translation(), tail, debug.ColorSelected)
		lines.Sphere(tail, selectedRadius(selected), debug.ColorSelected)
	}
}

func selectedRadius(j *springbone.SpringBone) float32 {
	if r := j.Params().HitRadius; r > picking.MinJointRadius {
		return r
	}
	return picking.MinJointRadius
}
