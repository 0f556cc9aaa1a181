package vrm

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"

	"github.com/Faultbox/midgard-vrm/pkg/math"
	"github.com/Faultbox/midgard-vrm/pkg/scene"
)

// Errors returned by Load.
var (
	ErrNoExtension     = errors.New("vrm: document has no VRM extension")
	ErrUnsupportedFile = errors.New("vrm: unsupported file extension")
)

// FileExtensions lists the file extensions Load accepts.
var FileExtensions = []string{".vrm", ".vci", ".glb", ".gltf"}

func init() {
	gltf.RegisterExtension(ExtensionName, func(data []byte) (any, error) {
		return Decode(data)
	})
}

// Model is a loaded avatar: the glTF document, its VRM extension and the
// scene graph built from the document's node table.
type Model struct {
	Path      string
	Document  *gltf.Document
	Extension *VRM
	Scene     *scene.Scene
}

// Load reads a .vrm (or .vci / glTF) file.
func Load(path string) (*Model, error) {
	if !supported(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Ext(path))
	}
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	m, err := FromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	m.Path = path
	return m, nil
}

// FromDocument extracts the VRM extension from an already decoded document
// and builds its scene.
func FromDocument(doc *gltf.Document) (*Model, error) {
	ext, err := extension(doc)
	if err != nil {
		return nil, err
	}
	return &Model{
		Document:  doc,
		Extension: ext,
		Scene:     BuildScene(doc),
	}, nil
}

func extension(doc *gltf.Document) (*VRM, error) {
	raw, ok := doc.Extensions[ExtensionName]
	if !ok {
		return nil, ErrNoExtension
	}
	switch v := raw.(type) {
	case *VRM:
		return v, nil
	case VRM:
		return &v, nil
	case json.RawMessage:
		return Decode(v)
	case []byte:
		return Decode(v)
	default:
		return nil, fmt.Errorf("vrm: unexpected extension payload %T", raw)
	}
}

func supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range FileExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// BuildScene converts the document's node table into a scene graph. Every
// created node is tagged with its glTF node index, so Scene.FindNode resolves
// the indices used throughout the VRM extension.
func BuildScene(doc *gltf.Document) *scene.Scene {
	s := scene.New()

	nodes := make([]*scene.Node, len(doc.Nodes))
	for i, n := range doc.Nodes {
		sn := scene.NewNode(n.Name, i)
		if n.Mesh != nil {
			sn.Mesh = int(*n.Mesh)
		}
		applyTransform(sn, n)
		nodes[i] = sn
	}

	attached := make([]bool, len(nodes))
	for i, n := range doc.Nodes {
		for _, c := range n.Children {
			ci := int(c)
			if ci < 0 || ci >= len(nodes) || attached[ci] || isAncestor(nodes[ci], nodes[i]) {
				continue
			}
			nodes[i].AddChild(nodes[ci])
			attached[ci] = true
		}
	}

	for _, root := range sceneRoots(doc, attached) {
		s.Root.AddChild(nodes[root])
	}

	for mi, mesh := range doc.Meshes {
		count := 0
		for _, p := range mesh.Primitives {
			if len(p.Targets) > count {
				count = len(p.Targets)
			}
		}
		if count == 0 {
			continue
		}
		s.Morphs.Declare(mi, count)
		for ti, w := range mesh.Weights {
			s.Morphs.Set(mi, ti, float32(w))
		}
	}

	s.Reindex()
	return s
}

// sceneRoots returns the root nodes of the default scene, or every unattached
// node when the document declares no scene.
func sceneRoots(doc *gltf.Document, attached []bool) []int {
	if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
		var roots []int
		for _, r := range doc.Scenes[int(*doc.Scene)].Nodes {
			if ri := int(r); ri >= 0 && ri < len(attached) && !attached[ri] {
				roots = append(roots, ri)
			}
		}
		return roots
	}
	var roots []int
	for i, a := range attached {
		if !a {
			roots = append(roots, i)
		}
	}
	return roots
}

// isAncestor reports whether a is n or one of n's ancestors.
func isAncestor(a, n *scene.Node) bool {
	for p := n; p != nil; p = p.Parent() {
		if p == a {
			return true
		}
	}
	return false
}

func applyTransform(sn *scene.Node, n *gltf.Node) {
	var m math.Mat4
	for i := range m {
		m[i] = float32(n.Matrix[i])
	}
	if m != (math.Mat4{}) && m != math.Identity() {
		sn.Position = m.Translation()
		sn.Rotation = math.QuatFromMat4(m)
		sn.Scaling = math.Vec3{
			X: math.Vec3{X: m[0], Y: m[1], Z: m[2]}.Length(),
			Y: math.Vec3{X: m[4], Y: m[5], Z: m[6]}.Length(),
			Z: math.Vec3{X: m[8], Y: m[9], Z: m[10]}.Length(),
		}
		return
	}

	sn.Position = math.Vec3{
		X: float32(n.Translation[0]),
		Y: float32(n.Translation[1]),
		Z: float32(n.Translation[2]),
	}
	sn.Rotation = math.Quat{
		X: float32(n.Rotation[0]),
		Y: float32(n.Rotation[1]),
		Z: float32(n.Rotation[2]),
		W: float32(n.Rotation[3]),
	}.Normalize()
	scale := math.Vec3{
		X: float32(n.Scale[0]),
		Y: float32(n.Scale[1]),
		Z: float32(n.Scale[2]),
	}
	if scale != (math.Vec3{}) {
		sn.Scaling = scale
	}
}
