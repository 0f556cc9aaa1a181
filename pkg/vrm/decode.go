package vrm

import (
	"encoding/json"
	"fmt"
)

// Decode parses the raw JSON of the VRM extension. Absent lists decode as
// empty slices and absent node references as -1.
func Decode(data []byte) (*VRM, error) {
	v := &VRM{FirstPerson: FirstPerson{FirstPersonBone: -1}}
	if err := json.Unmarshal(data, v); err != nil {
		return nil, fmt.Errorf("decode %s extension: %w", ExtensionName, err)
	}
	v.normalize()
	return v, nil
}

func (v *VRM) normalize() {
	if v.Humanoid.HumanBones == nil {
		v.Humanoid.HumanBones = []HumanBone{}
	}
	if v.BlendShapeMaster.BlendShapeGroups == nil {
		v.BlendShapeMaster.BlendShapeGroups = []BlendShapeGroup{}
	}
	for i := range v.BlendShapeMaster.BlendShapeGroups {
		g := &v.BlendShapeMaster.BlendShapeGroups[i]
		if g.Binds == nil {
			g.Binds = []BlendShapeBind{}
		}
	}
	if v.MaterialProperties == nil {
		v.MaterialProperties = []MaterialProperty{}
	}
	v.SecondaryAnimation.normalize()
}

func (s *SecondaryAnimation) normalize() {
	if s.BoneGroups == nil {
		s.BoneGroups = []BoneGroup{}
	}
	if s.ColliderGroups == nil {
		s.ColliderGroups = []ColliderGroup{}
	}
	for i := range s.BoneGroups {
		g := &s.BoneGroups[i]
		if g.Bones == nil {
			g.Bones = []int{}
		}
		if g.ColliderGroups == nil {
			g.ColliderGroups = []int{}
		}
	}
	for i := range s.ColliderGroups {
		if s.ColliderGroups[i].Colliders == nil {
			s.ColliderGroups[i].Colliders = []Collider{}
		}
	}
}

// UnmarshalJSON applies the defaults for fields a bone group may omit.
func (g *BoneGroup) UnmarshalJSON(data []byte) error {
	type alias BoneGroup
	a := alias{
		Center:     -1,
		GravityDir: Vector3{Y: -1},
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*g = BoneGroup(a)
	return nil
}

// UnmarshalJSON defaults a missing first-person bone to -1.
func (f *FirstPerson) UnmarshalJSON(data []byte) error {
	type alias FirstPerson
	a := alias{FirstPersonBone: -1}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*f = FirstPerson(a)
	return nil
}
