package scene

// MorphTargets holds the current influence of every morph target, keyed by
// glTF mesh index and target index.
type MorphTargets struct {
	influences map[int][]float32
}

// NewMorphTargets creates an empty table.
func NewMorphTargets() *MorphTargets {
	return &MorphTargets{influences: make(map[int][]float32)}
}

// Declare registers count morph targets on mesh, all at zero influence.
func (m *MorphTargets) Declare(mesh, count int) {
	m.influences[mesh] = make([]float32, count)
}

// Has reports whether mesh declares morph target index.
func (m *MorphTargets) Has(mesh, index int) bool {
	targets, ok := m.influences[mesh]
	return ok && index >= 0 && index < len(targets)
}

// Set assigns an influence. It returns false if the target is not declared.
func (m *MorphTargets) Set(mesh, index int, influence float32) bool {
	if !m.Has(mesh, index) {
		return false
	}
	m.influences[mesh][index] = influence
	return true
}

// Influence returns the current influence, or 0 for undeclared targets.
func (m *MorphTargets) Influence(mesh, index int) float32 {
	if !m.Has(mesh, index) {
		return 0
	}
	return m.influences[mesh][index]
}
