package springbone

import (
	"testing"

	"github.com/Faultbox/midgard-vrm/pkg/math"
)

var down = math.Vec3{Y: -1}

func TestSpringBoneRestState(t *testing.T) {
	root := newTestNode("root", math.Vec3{Y: 1})
	root.add(newTestNode("child", math.Vec3{Y: 0.5}))

	b := NewSpringBone(root, math.Vec3{Y: 0.5}, Params{}, nil, nil)

	if !near(b.BoneLength(), 0.5, 1e-5) {
		t.Errorf("BoneLength = %v, want 0.5", b.BoneLength())
	}
	if !vecNear(b.BoneAxis(), math.Vec3{Y: 1}, 1e-5) {
		t.Errorf("BoneAxis = %v, want +Y", b.BoneAxis())
	}
	if !vecNear(b.CurrentTail(), math.Vec3{Y: 1.5}, 1e-5) {
		t.Errorf("CurrentTail = %v, want (0,1.5,0)", b.CurrentTail())
	}
	if b.CurrentTail() != b.PrevTail() {
		t.Error("a new bone should start at rest")
	}
}

func TestSpringBoneGravityPullsStraightDown(t *testing.T) {
	root := newTestNode("root", math.Vec3{})
	b := NewSpringBone(root, down, Params{
		GravityPower: 1,
		GravityDir:   down,
	}, nil, nil)

	b.Update(1)

	tail := b.CurrentTail()
	if !vecNear(tail, down, 1e-5) {
		t.Errorf("tail = %v, want (0,-1,0)", tail)
	}
	if !near(tail.Length(), 1, 1e-5) {
		t.Errorf("tail distance = %v, want 1", tail.Length())
	}
}

func TestSpringBoneGravitySwingsHorizontalBone(t *testing.T) {
	root := newTestNode("root", math.Vec3{})
	b := NewSpringBone(root, math.Vec3{X: 1}, Params{
		GravityPower: 1,
		GravityDir:   down,
	}, nil, nil)

	b.Update(1)

	// (1,0,0) + (0,-1,0) projected back onto the unit sphere.
	want := math.Vec3{X: 1, Y: -1}.Normalize()
	if !vecNear(b.CurrentTail(), want, 1e-5) {
		t.Errorf("tail = %v, want %v", b.CurrentTail(), want)
	}
	if !vecNear(b.PrevTail(), math.Vec3{X: 1}, 1e-5) {
		t.Errorf("prev tail = %v, want (1,0,0)", b.PrevTail())
	}

	// The bone is rotated to point at its new tail.
	dir := root.rot.Rotate(math.Vec3{X: 1})
	if !vecNear(dir, want, 1e-4) {
		t.Errorf("bone direction = %v, want %v", dir, want)
	}
}

func TestSpringBoneFixedPointWithoutInput(t *testing.T) {
	root := newTestNode("root", math.Vec3{Y: 1})
	b := NewSpringBone(root, math.Vec3{X: 0.3, Y: 0.4}, Params{DragForce: 1}, nil, nil)

	start := b.CurrentTail()
	for i := 0; i < 100; i++ {
		b.Update(0.016)
		if !vecNear(b.CurrentTail(), start, 1e-5) {
			t.Fatalf("frame %d: tail moved from %v to %v", i, start, b.CurrentTail())
		}
	}
	if !near(root.rot.Dot(math.QuatIdentity()), 1, 1e-5) {
		t.Errorf("rotation drifted to %v", root.rot)
	}
}

func TestSpringBoneStiffnessRestoresRestPose(t *testing.T) {
	root := newTestNode("root", math.Vec3{})
	b := NewSpringBone(root, math.Vec3{Y: 1}, Params{Stiffness: 4, DragForce: 0.4}, nil, nil)

	// Knock the tail sideways.
	b.currentTail = math.Vec3{X: 1}
	b.prevTail = b.currentTail

	for i := 0; i < 600; i++ {
		b.Update(0.016)
	}
	if !vecNear(b.CurrentTail(), math.Vec3{Y: 1}, 0.01) {
		t.Errorf("tail = %v, want close to rest (0,1,0)", b.CurrentTail())
	}
}

func TestSpringBoneKeepsLength(t *testing.T) {
	root := newTestNode("root", math.Vec3{Y: 1})
	nodes := strand(root, 4, down, 0.25)

	group := NewColliderGroup(root)
	group.AddCollider(math.Vec3{X: 0.1, Y: -0.6}, 0.2)
	group.AddCollider(math.Vec3{X: -0.1, Y: -0.95, Z: 0.05}, 0.15)

	for _, collide := range []bool{false, true} {
		var groups []*ColliderGroup
		if collide {
			groups = []*ColliderGroup{group}
		}
		chain := NewChain("strand", nodes[1], Params{
			Stiffness:    1,
			GravityPower: 2,
			GravityDir:   math.Vec3{X: 0.6, Y: -0.8},
			DragForce:    0.3,
			HitRadius:    0.02,
		}, nil, groups, nil)

		for frame := 0; frame < 120; frame++ {
			// Sway the parent so the chain keeps moving.
			root.rot = math.QuatFromAxisAngle(math.Vec3{Z: 1}, 0.4*float32(frame%30)/30)
			chain.Update(0.016)

			for i, j := range chain.Joints() {
				origin := j.Bone().WorldMatrix().Translation()
				d := j.CurrentTail().Distance(origin)
				if !near(d, j.BoneLength(), 1e-4) {
					t.Fatalf("collide=%v frame %d joint %d: |tail-origin| = %v, want %v", collide, frame, i, d, j.BoneLength())
				}
			}
		}
		root.rot = math.QuatIdentity()
		chain.Reset()
	}
}

func TestSpringBoneResolvesPenetration(t *testing.T) {
	root := newTestNode("root", math.Vec3{})
	b := NewSpringBone(root, down, Params{DragForce: 1}, nil, nil)

	// Sphere whose surface passes through (1,0,0) and which contains the
	// resting tail (0,-1,0).
	const depth = 0.1
	dir := math.Vec3{X: 1, Y: 1}.Normalize()
	center := down.Sub(dir.Scale(depth))
	radius := depth + math.Vec3{X: 1, Y: 1}.Length()

	group := NewColliderGroup(root)
	group.AddCollider(center, radius)
	b.groups = []*ColliderGroup{group}

	if d := down.Distance(center); d >= radius {
		t.Fatalf("tail starts outside the collider: %v >= %v", d, radius)
	}

	b.Update(0.016)

	tail := b.CurrentTail()
	if !near(tail.Distance(center), radius, 1e-4) {
		t.Errorf("|tail-center| = %v, want %v", tail.Distance(center), radius)
	}
	if !near(tail.Length(), 1, 1e-4) {
		t.Errorf("|tail-origin| = %v, want 1", tail.Length())
	}
	if !vecNear(tail, math.Vec3{X: 1}, 1e-4) {
		t.Errorf("tail = %v, want (1,0,0)", tail)
	}
}

func TestSpringBoneHitRadiusWidensColliders(t *testing.T) {
	for _, tt := range []struct {
		hitRadius float32
		moved     bool
	}{
		{hitRadius: 0, moved: false},
		{hitRadius: 0.6, moved: true},
	} {
		root := newTestNode("root", math.Vec3{})
		group := NewColliderGroup(root)
		group.AddCollider(math.Vec3{X: 1, Y: -1}, 0.5)

		b := NewSpringBone(root, down, Params{DragForce: 1, HitRadius: tt.hitRadius}, nil, []*ColliderGroup{group})
		b.Update(0.016)

		tail := b.CurrentTail()
		if moved := !vecNear(tail, down, 1e-5); moved != tt.moved {
			t.Errorf("hitRadius %v: tail = %v, moved = %v, want %v", tt.hitRadius, tail, moved, tt.moved)
		}
		if tt.moved && tail.X >= 0 {
			t.Errorf("hitRadius %v: tail = %v, want it pushed away from the collider", tt.hitRadius, tail)
		}
	}
}

func TestSpringBoneEnclosingCollider(t *testing.T) {
	root := newTestNode("root", math.Vec3{})
	group := NewColliderGroup(root)
	group.AddCollider(math.Vec3{}, 2)

	b := NewSpringBone(root, down, Params{
		GravityPower: 1,
		GravityDir:   down,
	}, nil, []*ColliderGroup{group})

	for i := 0; i < 5; i++ {
		b.Update(1)
		if d := b.CurrentTail().Length(); !near(d, 2, 1e-4) {
			t.Fatalf("update %d: |tail-center| = %v, want 2", i, d)
		}
	}
}

func TestSpringBoneCenterSpace(t *testing.T) {
	for _, withCenter := range []bool{true, false} {
		body := newTestNode("body", math.Vec3{})
		root := body.add(newTestNode("hair", math.Vec3{Y: 1}))

		var center Transform
		if withCenter {
			center = body
		}
		b := NewSpringBone(root, down, Params{DragForce: 1}, center, nil)

		// Teleport the whole body.
		body.pos = math.Vec3{X: 5}
		b.Update(0.016)

		tail := b.CurrentTail()
		if withCenter {
			if !vecNear(tail, math.Vec3{X: 5}, 1e-4) {
				t.Errorf("center: tail = %v, want to follow the body to (5,0,0)", tail)
			}
			continue
		}
		// In world space the tail lags behind and is dragged onto the bone's sphere.
		if vecNear(tail, math.Vec3{X: 5}, 1e-2) {
			t.Errorf("world: tail = %v, want it to lag behind the body", tail)
		}
		if !near(tail.Distance(root.worldPosition()), 1, 1e-4) {
			t.Errorf("world: |tail-origin| = %v, want 1", tail.Distance(root.worldPosition()))
		}
	}
}

func TestSpringBoneUnderScaledParent(t *testing.T) {
	body := newTestNode("body", math.Vec3{})
	body.scale = math.Vec3{X: 2, Y: 2, Z: 2}
	root := body.add(newTestNode("hair", math.Vec3{Y: 1}))

	b := NewSpringBone(root, down, Params{}, nil, nil)
	if !near(b.BoneLength(), 2, 1e-5) {
		t.Errorf("BoneLength = %v, want 2 (world units)", b.BoneLength())
	}
}

func TestSpringBoneReset(t *testing.T) {
	root := newTestNode("root", math.Vec3{})
	b := NewSpringBone(root, math.Vec3{X: 1}, Params{GravityPower: 1, GravityDir: down}, nil, nil)

	for i := 0; i < 10; i++ {
		b.Update(0.016)
	}
	if vecNear(b.CurrentTail(), math.Vec3{X: 1}, 1e-3) {
		t.Fatal("gravity should have moved the tail")
	}

	b.Reset()
	if !vecNear(b.CurrentTail(), math.Vec3{X: 1}, 1e-5) || b.CurrentTail() != b.PrevTail() {
		t.Errorf("after Reset tail = %v prev = %v, want rest (1,0,0)", b.CurrentTail(), b.PrevTail())
	}
	if !near(root.rot.Dot(math.QuatIdentity()), 1, 1e-6) {
		t.Errorf("after Reset rotation = %v, want identity", root.rot)
	}
}
