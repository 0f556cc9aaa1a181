package avatar

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-vrm/pkg/vrm"
)

// morphBind is one resolved blend-shape bind.
type morphBind struct {
	mesh   int
	index  int
	weight float32
}

type morphGroup struct {
	binary bool
	binds  []morphBind
}

// morphTable indexes blend-shape groups by name and by preset.
type morphTable struct {
	names   []string
	byName  map[string]*morphGroup
	presets map[string]*morphGroup
}

func (m *Manager) buildMorphs(groups []vrm.BlendShapeGroup) {
	m.morphs = morphTable{
		byName:  make(map[string]*morphGroup),
		presets: make(map[string]*morphGroup),
	}
	for _, g := range groups {
		var binds []morphBind
		for _, b := range g.Binds {
			if !m.scene.Morphs.Has(b.Mesh, b.Index) {
				m.log.Debug("blend shape bind has no morph target",
					zap.String("group", g.Name),
					zap.Int("mesh", b.Mesh),
					zap.Int("index", b.Index))
				continue
			}
			binds = append(binds, morphBind{mesh: b.Mesh, index: b.Index, weight: b.Weight})
		}
		if len(binds) == 0 {
			continue
		}

		if _, ok := m.morphs.byName[g.Name]; !ok {
			m.morphs.names = append(m.morphs.names, g.Name)
			m.morphs.byName[g.Name] = &morphGroup{binary: g.IsBinary}
		}
		named := m.morphs.byName[g.Name]
		named.binds = append(named.binds, binds...)

		if g.PresetName == "" || g.PresetName == "unknown" {
			continue
		}
		preset, ok := m.morphs.presets[g.PresetName]
		if !ok {
			preset = &morphGroup{binary: g.IsBinary}
			m.morphs.presets[g.PresetName] = preset
		}
		preset.binds = append(preset.binds, binds...)
	}
}

// morphValue clamps v to [0, 1]; binary groups snap to 0 or 1.
func morphValue(v float32, binary bool) float32 {
	if !(v > 0) {
		v = 0
	} else if v > 1 {
		v = 1
	}
	if binary {
		if v > 0.5 {
			return 1
		}
		return 0
	}
	return v
}

func (m *Manager) apply(g *morphGroup, value float32) {
	v := morphValue(value, g.binary)
	for _, b := range g.binds {
		m.scene.Morphs.Set(b.mesh, b.index, v*b.weight/100)
	}
}

// Morphing sets the blend-shape group named label to value in [0, 1].
// Unknown labels are ignored.
func (m *Manager) Morphing(label string, value float32) {
	if g, ok := m.morphs.byName[label]; ok {
		m.apply(g, value)
	}
}

// MorphingPreset sets every group with the given preset name (such as
// "joy" or "blink") to value in [0, 1]. Unknown presets are ignored.
func (m *Manager) MorphingPreset(preset string, value float32) {
	if g, ok := m.morphs.presets[preset]; ok {
		m.apply(g, value)
	}
}

// MorphingList returns, in declaration order, the names of the blend-shape
// groups that drive at least one morph target.
func (m *Manager) MorphingList() []string {
	return append([]string(nil), m.morphs.names...)
}

// HasPreset reports whether any group declares preset.
func (m *Manager) HasPreset(preset string) bool {
	_, ok := m.morphs.presets[preset]
	return ok
}
