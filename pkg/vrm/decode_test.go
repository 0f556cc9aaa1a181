package vrm

import (
	"testing"

	"github.com/Faultbox/midgard-vrm/pkg/math"
)

const secondaryJSON = `{
  "meta": {"title": "Alicia", "author": "DWANGO", "version": "1.0"},
  "humanoid": {"humanBones": [{"bone": "hips", "node": 1}, {"bone": "head", "node": 2}]},
  "firstPerson": {"firstPersonBone": 2, "firstPersonBoneOffset": {"x": 0, "y": 0.06, "z": 0}},
  "secondaryAnimation": {
    "boneGroups": [
      {
        "comment": "hair",
        "stiffiness": 0.75,
        "gravityPower": 0.2,
        "gravityDir": {"x": 0, "y": -1, "z": 0},
        "dragForce": 0.4,
        "center": 1,
        "hitRadius": 0.02,
        "bones": [3, 4],
        "colliderGroups": [0]
      },
      {
        "stiffiness": 1,
        "gravityPower": 0,
        "dragForce": 0.5,
        "hitRadius": 0.01,
        "bones": [5]
      }
    ],
    "colliderGroups": [
      {"node": 2, "colliders": [{"offset": {"x": 0.1, "y": 0.2, "z": 0.3}, "radius": 0.08}]}
    ]
  }
}`

func TestDecodeSecondaryAnimation(t *testing.T) {
	v, err := Decode([]byte(secondaryJSON))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if v.Meta.Title != "Alicia" || v.Meta.Author != "DWANGO" {
		t.Errorf("meta not decoded: %+v", v.Meta)
	}
	if len(v.Humanoid.HumanBones) != 2 {
		t.Errorf("expected 2 human bones, got %d", len(v.Humanoid.HumanBones))
	}

	sa := v.SecondaryAnimation
	if len(sa.BoneGroups) != 2 {
		t.Fatalf("expected 2 bone groups, got %d", len(sa.BoneGroups))
	}
	hair := sa.BoneGroups[0]
	if hair.Stiffness != 0.75 {
		t.Errorf("stiffiness key not decoded, got %v", hair.Stiffness)
	}
	if hair.Center != 1 || hair.Comment != "hair" {
		t.Errorf("unexpected hair group %+v", hair)
	}
	if len(hair.Bones) != 2 || hair.Bones[1] != 4 {
		t.Errorf("bones: got %v", hair.Bones)
	}

	plain := sa.BoneGroups[1]
	if plain.Center != -1 {
		t.Errorf("absent center should default to -1, got %d", plain.Center)
	}
	if plain.GravityDir != (Vector3{Y: -1}) {
		t.Errorf("absent gravityDir should default to down, got %+v", plain.GravityDir)
	}
	if plain.ColliderGroups == nil || len(plain.ColliderGroups) != 0 {
		t.Errorf("absent colliderGroups should be an empty list, got %v", plain.ColliderGroups)
	}

	if len(sa.ColliderGroups) != 1 || sa.ColliderGroups[0].Colliders[0].Radius != 0.08 {
		t.Errorf("collider groups not decoded: %+v", sa.ColliderGroups)
	}

	if v.FirstPerson.FirstPersonBone != 2 {
		t.Errorf("firstPersonBone: got %d", v.FirstPerson.FirstPersonBone)
	}
}

func TestDecodeEmpty(t *testing.T) {
	v, err := Decode([]byte(`{}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if v.SecondaryAnimation.BoneGroups == nil || v.SecondaryAnimation.ColliderGroups == nil {
		t.Error("absent secondaryAnimation lists should be empty, not nil")
	}
	if v.FirstPerson.FirstPersonBone != -1 {
		t.Errorf("absent firstPerson should default to -1, got %d", v.FirstPerson.FirstPersonBone)
	}
	if v.BlendShapeMaster.BlendShapeGroups == nil || v.MaterialProperties == nil {
		t.Error("absent lists should be empty")
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, err := Decode([]byte(`{"secondaryAnimation": {"boneGroups": 3}}`)); err == nil {
		t.Error("expected error for malformed boneGroups")
	}
}

func TestToHostHandedRoundTrip(t *testing.T) {
	v := math.Vec3{X: 1.5, Y: -2, Z: 3.25}
	h := ToHostHanded(v)
	if h != (math.Vec3{X: -1.5, Y: -2, Z: -3.25}) {
		t.Errorf("ToHostHanded: got %v", h)
	}
	if back := ToHostHanded(h); back != v {
		t.Errorf("double conversion should return the original, got %v", back)
	}
	if got := (Vector3{X: 1, Y: 2, Z: 3}).Host(); got != (math.Vec3{X: -1, Y: 2, Z: -3}) {
		t.Errorf("Vector3.Host: got %v", got)
	}
}
