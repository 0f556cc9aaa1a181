// Package debug builds line geometry for debug overlays: skeletons, collider
// spheres and spring tails.
package debug

import (
	gomath "math"

	"github.com/Faultbox/midgard-vrm/pkg/math"
	"github.com/Faultbox/midgard-vrm/pkg/scene"
	"github.com/Faultbox/midgard-vrm/pkg/springbone"
)

// FloatsPerVertex is the vertex layout of Lines: x, y, z, r, g, b.
const FloatsPerVertex = 6

// SphereSegments is the number of segments per great circle.
const SphereSegments = 24

// Color is an RGB color in [0, 1].
type Color [3]float32

// Overlay colors.
var (
	ColorSkeleton = Color{0.75, 0.75, 0.8}
	ColorCollider = Color{0.2, 0.8, 1.0}
	ColorTail     = Color{1.0, 0.55, 0.1}
	ColorCenter   = Color{0.9, 0.2, 0.6}
	ColorGround   = Color{0.3, 0.3, 0.35}
	ColorSelected = Color{1.0, 1.0, 0.2}
)

// Lines accumulates line-list vertices. The zero value is ready to use.
type Lines struct {
	data []float32
}

// Reset empties the buffer, keeping its capacity.
func (l *Lines) Reset() {
	l.data = l.data[:0]
}

// Data returns the interleaved vertex data.
func (l *Lines) Data() []float32 {
	return l.data
}

// VertexCount returns the number of vertices (two per line).
func (l *Lines) VertexCount() int {
	return len(l.data) / FloatsPerVertex
}

// Line adds a segment from a to b.
func (l *Lines) Line(a, b math.Vec3, c Color) {
	l.data = append(l.data,
		a.X, a.Y, a.Z, c[0], c[1], c[2],
		b.X, b.Y, b.Z, c[0], c[1], c[2],
	)
}

// Cross adds three axis-aligned segments of the given size centered on p.
func (l *Lines) Cross(p math.Vec3, size float32, c Color) {
	h := size / 2
	l.Line(p.Sub(math.Vec3{X: h}), p.Add(math.Vec3{X: h}), c)
	l.Line(p.Sub(math.Vec3{Y: h}), p.Add(math.Vec3{Y: h}), c)
	l.Line(p.Sub(math.Vec3{Z: h}), p.Add(math.Vec3{Z: h}), c)
}

// Sphere adds three great circles (XY, XZ and YZ planes).
func (l *Lines) Sphere(center math.Vec3, radius float32, c Color) {
	point := func(plane, i int) math.Vec3 {
		a := 2 * gomath.Pi * float64(i) / SphereSegments
		s, co := float32(gomath.Sin(a))*radius, float32(gomath.Cos(a))*radius
		switch plane {
		case 0:
			return center.Add(math.Vec3{X: co, Y: s})
		case 1:
			return center.Add(math.Vec3{X: co, Z: s})
		default:
			return center.Add(math.Vec3{Y: co, Z: s})
		}
	}
	for plane := 0; plane < 3; plane++ {
		for i := 0; i < SphereSegments; i++ {
			l.Line(point(plane, i), point(plane, i+1), c)
		}
	}
}

// Box adds the 12 edges of an axis-aligned box.
func (l *Lines) Box(min, max math.Vec3, c Color) {
	corner := func(x, y, z bool) math.Vec3 {
		p := min
		if x {
			p.X = max.X
		}
		if y {
			p.Y = max.Y
		}
		if z {
			p.Z = max.Z
		}
		return p
	}
	for _, y := range []bool{false, true} {
		l.Line(corner(false, y, false), corner(true, y, false), c)
		l.Line(corner(true, y, false), corner(true, y, true), c)
		l.Line(corner(true, y, true), corner(false, y, true), c)
		l.Line(corner(false, y, true), corner(false, y, false), c)
	}
	for _, x := range []bool{false, true} {
		for _, z := range []bool{false, true} {
			l.Line(corner(x, false, z), corner(x, true, z), c)
		}
	}
}

// Grid adds a square grid on the XZ plane centered on the origin.
func (l *Lines) Grid(halfSize float32, cells int, c Color) {
	if cells <= 0 {
		return
	}
	step := 2 * halfSize / float32(cells)
	for i := 0; i <= cells; i++ {
		d := -halfSize + float32(i)*step
		l.Line(math.Vec3{X: d, Z: -halfSize}, math.Vec3{X: d, Z: halfSize}, c)
		l.Line(math.Vec3{X: -halfSize, Z: d}, math.Vec3{X: halfSize, Z: d}, c)
	}
}

// Skeleton adds a segment from every indexed node to its indexed parent.
// Synthetic nodes (such as the scene root) are not drawn.
func (l *Lines) Skeleton(s *scene.Scene, c Color) {
	for _, n := range s.Nodes() {
		p := n.Parent()
		if p == nil || p.Index < 0 {
			continue
		}
		l.Line(p.WorldPosition(), n.WorldPosition(), c)
	}
}

// Colliders adds every collider sphere of ctrl at its current pose.
func (l *Lines) Colliders(ctrl *springbone.Controller) {
	var spheres []springbone.Sphere
	for _, g := range ctrl.ColliderGroups() {
		spheres = g.AppendSpheres(spheres[:0])
		for _, s := range spheres {
			l.Sphere(s.Center, s.Radius, ColorCollider)
		}
	}
}

// Tails adds a segment from every joint to its simulated tail, a cross at
// the tail and a cross on every chain's center node.
func (l *Lines) Tails(ctrl *springbone.Controller) {
	for _, chain := range ctrl.Chains() {
		if center := chain.Center(); center != nil {
			l.Cross(center.WorldMatrix().Translation(), 0.05, ColorCenter)
		}
		for _, j := range chain.Joints() {
			origin := j.Bone().WorldMatrix().Translation()
			tail := j.CurrentTail()
			l.Line(origin, tail, ColorTail)
			l.Cross(tail, 0.01+j.Params().HitRadius, ColorTail)
		}
	}
}

// Bounds returns the axis-aligned box around every indexed node's world
// position. ok is false for an empty scene.
func Bounds(s *scene.Scene) (min, max math.Vec3, ok bool) {
	for i, n := range s.Nodes() {
		p := n.WorldPosition()
		if i == 0 {
			min, max = p, p
			continue
		}
		min = math.Vec3{X: min32(min.X, p.X), Y: min32(min.Y, p.Y), Z: min32(min.Z, p.Z)}
		max = math.Vec3{X: max32(max.X, p.X), Y: max32(max.Y, p.Y), Z: max32(max.Z, p.Z)}
	}
	return min, max, s.Len() > 0
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
