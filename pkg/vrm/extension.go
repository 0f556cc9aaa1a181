// Package vrm models the VRM 0.x glTF extension and loads .vrm files into a
// scene graph.
//
// Reference: https://github.com/vrm-c/vrm-specification/tree/master/specification/0.0
package vrm

// ExtensionName is the key of the VRM extension in a glTF document.
const ExtensionName = "VRM"

// VRM is the decoded `extensions.VRM` object.
type VRM struct {
	ExporterVersion    string             `json:"exporterVersion,omitempty"`
	SpecVersion        string             `json:"specVersion,omitempty"`
	Meta               Meta               `json:"meta"`
	Humanoid           Humanoid           `json:"humanoid"`
	FirstPerson        FirstPerson        `json:"firstPerson"`
	BlendShapeMaster   BlendShapeMaster   `json:"blendShapeMaster"`
	SecondaryAnimation SecondaryAnimation `json:"secondaryAnimation"`
	MaterialProperties []MaterialProperty `json:"materialProperties"`
}

// Vector3 is a JSON {x, y, z} object in the source (VRM) convention.
type Vector3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Meta holds avatar information and license terms.
type Meta struct {
	Title                string `json:"title,omitempty"`
	Version              string `json:"version,omitempty"`
	Author               string `json:"author,omitempty"`
	ContactInformation   string `json:"contactInformation,omitempty"`
	Reference            string `json:"reference,omitempty"`
	AllowedUserName      string `json:"allowedUserName,omitempty"`
	ViolentUssageName    string `json:"violentUssageName,omitempty"`
	SexualUssageName     string `json:"sexualUssageName,omitempty"`
	CommercialUssageName string `json:"commercialUssageName,omitempty"`
	OtherPermissionURL   string `json:"otherPermissionUrl,omitempty"`
	LicenseName          string `json:"licenseName,omitempty"`
	OtherLicenseURL      string `json:"otherLicenseUrl,omitempty"`
}

// Humanoid maps humanoid bone names to glTF nodes.
type Humanoid struct {
	HumanBones []HumanBone `json:"humanBones"`
}

// HumanBone binds one humanoid bone name to a node index.
type HumanBone struct {
	Bone             string `json:"bone"`
	Node             int    `json:"node"`
	UseDefaultValues bool   `json:"useDefaultValues,omitempty"`
}

// FirstPerson configures the first-person camera anchor.
type FirstPerson struct {
	// FirstPersonBone is a node index, -1 when absent.
	FirstPersonBone       int     `json:"firstPersonBone"`
	FirstPersonBoneOffset Vector3 `json:"firstPersonBoneOffset"`
	LookAtTypeName        string  `json:"lookAtTypeName,omitempty"`
}

// BlendShapeMaster lists the avatar's expression groups.
type BlendShapeMaster struct {
	BlendShapeGroups []BlendShapeGroup `json:"blendShapeGroups"`
}

// BlendShapeGroup is one named expression.
type BlendShapeGroup struct {
	Name           string              `json:"name"`
	PresetName     string              `json:"presetName,omitempty"`
	Binds          []BlendShapeBind    `json:"binds"`
	MaterialValues []MaterialValueBind `json:"materialValues,omitempty"`
	IsBinary       bool                `json:"isBinary,omitempty"`
}

// BlendShapeBind drives one morph target. Weight is in [0, 100].
type BlendShapeBind struct {
	Mesh   int     `json:"mesh"`
	Index  int     `json:"index"`
	Weight float32 `json:"weight"`
}

// MaterialValueBind animates a material property alongside an expression.
type MaterialValueBind struct {
	MaterialName string    `json:"materialName"`
	PropertyName string    `json:"propertyName"`
	TargetValue  []float32 `json:"targetValue"`
}

// SecondaryAnimation is the spring-bone configuration.
type SecondaryAnimation struct {
	BoneGroups     []BoneGroup     `json:"boneGroups"`
	ColliderGroups []ColliderGroup `json:"colliderGroups"`
}

// BoneGroup declares spring chains sharing one set of physical parameters.
type BoneGroup struct {
	Comment string `json:"comment,omitempty"`
	// Stiffness is serialized under the upstream format's misspelled key.
	Stiffness    float32 `json:"stiffiness"`
	GravityPower float32 `json:"gravityPower"`
	GravityDir   Vector3 `json:"gravityDir"`
	DragForce    float32 `json:"dragForce"`
	// Center is a node index used as the simulation frame, -1 when absent.
	Center         int     `json:"center"`
	HitRadius      float32 `json:"hitRadius"`
	Bones          []int   `json:"bones"`
	ColliderGroups []int   `json:"colliderGroups"`
}

// ColliderGroup is a set of spheres attached to one node.
type ColliderGroup struct {
	Node      int        `json:"node"`
	Colliders []Collider `json:"colliders"`
}

// Collider is a sphere with an offset local to its group's node.
type Collider struct {
	Offset Vector3 `json:"offset"`
	Radius float32 `json:"radius"`
}

// MaterialProperty carries the Unity-side material parameters (MToon and others).
type MaterialProperty struct {
	Name              string               `json:"name"`
	Shader            string               `json:"shader"`
	RenderQueue       int                  `json:"renderQueue"`
	FloatProperties   map[string]float32   `json:"floatProperties"`
	VectorProperties  map[string][]float32 `json:"vectorProperties"`
	TextureProperties map[string]int       `json:"textureProperties"`
	KeywordMap        map[string]bool      `json:"keywordMap"`
	TagMap            map[string]string    `json:"tagMap"`
}
