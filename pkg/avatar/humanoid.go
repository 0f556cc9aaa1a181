package avatar

import (
	"fmt"

	"github.com/Faultbox/midgard-vrm/pkg/scene"
)

// HumanBone is a Unity humanoid bone name as used by VRM.
type HumanBone string

// Humanoid bones. The first block is required on every humanoid.
const (
	Hips          HumanBone = "hips"
	LeftUpperLeg  HumanBone = "leftUpperLeg"
	RightUpperLeg HumanBone = "rightUpperLeg"
	LeftLowerLeg  HumanBone = "leftLowerLeg"
	RightLowerLeg HumanBone = "rightLowerLeg"
	LeftFoot      HumanBone = "leftFoot"
	RightFoot     HumanBone = "rightFoot"
	Spine         HumanBone = "spine"
	Chest         HumanBone = "chest"
	Neck          HumanBone = "neck"
	Head          HumanBone = "head"
	LeftShoulder  HumanBone = "leftShoulder"
	RightShoulder HumanBone = "rightShoulder"
	LeftUpperArm  HumanBone = "leftUpperArm"
	RightUpperArm HumanBone = "rightUpperArm"
	LeftLowerArm  HumanBone = "leftLowerArm"
	RightLowerArm HumanBone = "rightLowerArm"
	LeftHand      HumanBone = "leftHand"
	RightHand     HumanBone = "rightHand"

	LeftToes   HumanBone = "leftToes"
	RightToes  HumanBone = "rightToes"
	LeftEye    HumanBone = "leftEye"
	RightEye   HumanBone = "rightEye"
	Jaw        HumanBone = "jaw"
	UpperChest HumanBone = "upperChest"

	LeftThumbProximal       HumanBone = "leftThumbProximal"
	LeftThumbIntermediate   HumanBone = "leftThumbIntermediate"
	LeftThumbDistal         HumanBone = "leftThumbDistal"
	LeftIndexProximal       HumanBone = "leftIndexProximal"
	LeftIndexIntermediate   HumanBone = "leftIndexIntermediate"
	LeftIndexDistal         HumanBone = "leftIndexDistal"
	LeftMiddleProximal      HumanBone = "leftMiddleProximal"
	LeftMiddleIntermediate  HumanBone = "leftMiddleIntermediate"
	LeftMiddleDistal        HumanBone = "leftMiddleDistal"
	LeftRingProximal        HumanBone = "leftRingProximal"
	LeftRingIntermediate    HumanBone = "leftRingIntermediate"
	LeftRingDistal          HumanBone = "leftRingDistal"
	LeftLittleProximal      HumanBone = "leftLittleProximal"
	LeftLittleIntermediate  HumanBone = "leftLittleIntermediate"
	LeftLittleDistal        HumanBone = "leftLittleDistal"
	RightThumbProximal      HumanBone = "rightThumbProximal"
	RightThumbIntermediate  HumanBone = "rightThumbIntermediate"
	RightThumbDistal        HumanBone = "rightThumbDistal"
	RightIndexProximal      HumanBone = "rightIndexProximal"
	RightIndexIntermediate  HumanBone = "rightIndexIntermediate"
	RightIndexDistal        HumanBone = "rightIndexDistal"
	RightMiddleProximal     HumanBone = "rightMiddleProximal"
	RightMiddleIntermediate HumanBone = "rightMiddleIntermediate"
	RightMiddleDistal       HumanBone = "rightMiddleDistal"
	RightRingProximal       HumanBone = "rightRingProximal"
	RightRingIntermediate   HumanBone = "rightRingIntermediate"
	RightRingDistal         HumanBone = "rightRingDistal"
	RightLittleProximal     HumanBone = "rightLittleProximal"
	RightLittleIntermediate HumanBone = "rightLittleIntermediate"
	RightLittleDistal       HumanBone = "rightLittleDistal"
)

// RequiredBones are the bones Humanoid.Bone reports as errors when missing.
var RequiredBones = []HumanBone{
	Hips, LeftUpperLeg, RightUpperLeg, LeftLowerLeg, RightLowerLeg, LeftFoot, RightFoot,
	Spine, Chest, Neck, Head, LeftShoulder, RightShoulder,
	LeftUpperArm, RightUpperArm, LeftLowerArm, RightLowerArm, LeftHand, RightHand,
}

// Required reports whether b is in RequiredBones.
func (b HumanBone) Required() bool {
	for _, r := range RequiredBones {
		if r == b {
			return true
		}
	}
	return false
}

// BoneNotFoundError is returned when a required humanoid bone is missing.
type BoneNotFoundError struct {
	Bone HumanBone
}

func (e *BoneNotFoundError) Error() string {
	return fmt.Sprintf("Bone:%s NotFound", e.Bone)
}

// Humanoid maps humanoid bone names to scene nodes.
type Humanoid struct {
	nodes map[HumanBone]*scene.Node
}

func newHumanoid(nodes map[HumanBone]*scene.Node) *Humanoid {
	return &Humanoid{nodes: nodes}
}

// Bone returns the node for b. A missing required bone is a
// *BoneNotFoundError; a missing optional bone is (nil, nil).
func (h *Humanoid) Bone(b HumanBone) (*scene.Node, error) {
	if n, ok := h.nodes[b]; ok {
		return n, nil
	}
	if b.Required() {
		return nil, &BoneNotFoundError{Bone: b}
	}
	return nil, nil
}

// Has reports whether b is mapped.
func (h *Humanoid) Has(b HumanBone) bool {
	_, ok := h.nodes[b]
	return ok
}

// Len returns the number of mapped bones.
func (h *Humanoid) Len() int {
	return len(h.nodes)
}

// Missing returns the required bones that are not mapped.
func (h *Humanoid) Missing() []HumanBone {
	var missing []HumanBone
	for _, b := range RequiredBones {
		if !h.Has(b) {
			missing = append(missing, b)
		}
	}
	return missing
}

func (h *Humanoid) dispose() {
	h.nodes = nil
}
