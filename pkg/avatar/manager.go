// Package avatar ties a loaded VRM model to its runtime state: the spring-bone
// controller, humanoid bone lookup, blend-shape morphing and the first-person
// camera anchor.
package avatar

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-vrm/pkg/math"
	"github.com/Faultbox/midgard-vrm/pkg/scene"
	"github.com/Faultbox/midgard-vrm/pkg/springbone"
	"github.com/Faultbox/midgard-vrm/pkg/vrm"
)

// Option configures a Manager.
type Option func(*options)

type options struct {
	log        *zap.Logger
	sequential bool
}

// WithLogger sets the logger used for setup warnings. The default discards
// everything.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithSequential disables parallel spring-bone updates.
func WithSequential() Option {
	return func(o *options) {
		o.sequential = true
	}
}

// Manager owns the runtime state of one avatar. The host calls Update once
// per frame.
type Manager struct {
	ext   *vrm.VRM
	scene *scene.Scene
	log   *zap.Logger

	springs  *springbone.Controller
	humanoid *Humanoid
	morphs   morphTable
}

// New builds a manager for a model loaded with vrm.Load.
func New(model *vrm.Model, opts ...Option) *Manager {
	return NewManager(model.Extension, model.Scene, opts...)
}

// NewManager builds a manager for ext over s. Bone references that do not
// resolve in s are skipped and logged at warn level.
func NewManager(ext *vrm.VRM, s *scene.Scene, opts ...Option) *Manager {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	m := &Manager{
		ext:   ext,
		scene: s,
		log:   o.log,
	}

	var springOpts []springbone.Option
	if o.sequential {
		springOpts = append(springOpts, springbone.WithSequential())
	}
	m.springs = springbone.NewController(&ext.SecondaryAnimation, Lookup(s), springOpts...)
	for _, err := range multierr.Errors(m.springs.Warnings()) {
		m.log.Warn("spring bone setup", zap.Error(err))
	}

	m.buildMorphs(ext.BlendShapeMaster.BlendShapeGroups)
	m.humanoid = m.buildHumanoid()

	m.log.Debug("avatar ready",
		zap.String("title", ext.Meta.Title),
		zap.Int("chains", len(m.springs.Chains())),
		zap.Int("colliderGroups", len(m.springs.ColliderGroups())),
		zap.Int("humanBones", m.humanoid.Len()),
		zap.Int("blendShapes", len(m.morphs.names)))
	return m
}

func (m *Manager) buildHumanoid() *Humanoid {
	nodes := make(map[HumanBone]*scene.Node)
	for _, b := range m.ext.Humanoid.HumanBones {
		n := m.scene.FindNode(b.Node)
		if n == nil {
			m.log.Warn("humanoid bone not found", zap.String("bone", b.Bone), zap.Int("node", b.Node))
			continue
		}
		nodes[HumanBone(b.Bone)] = n
	}
	return newHumanoid(nodes)
}

// Update advances the secondary animation by deltaMs milliseconds.
func (m *Manager) Update(deltaMs float32) error {
	return m.springs.Update(deltaMs)
}

// Dispose releases the controller and lookup tables. Later updates fail with
// springbone.ErrDisposed.
func (m *Manager) Dispose() {
	m.springs.Dispose()
	m.humanoid.dispose()
	m.morphs = morphTable{}
}

// Extension returns the decoded VRM extension.
func (m *Manager) Extension() *vrm.VRM {
	return m.ext
}

// Scene returns the scene the manager animates.
func (m *Manager) Scene() *scene.Scene {
	return m.scene
}

// SpringBones returns the spring-bone controller.
func (m *Manager) SpringBones() *springbone.Controller {
	return m.springs
}

// Humanoid returns the humanoid bone table.
func (m *Manager) Humanoid() *Humanoid {
	return m.humanoid
}

// FindNode returns the scene node created from glTF node index, or nil.
func (m *Manager) FindNode(index int) *scene.Node {
	return m.scene.FindNode(index)
}

// FirstPersonBone returns the node the first-person camera is attached to,
// or nil.
func (m *Manager) FirstPersonBone() *scene.Node {
	return m.scene.FindNode(m.ext.FirstPerson.FirstPersonBone)
}

// FirstPersonCameraPosition returns the world position of the first-person
// camera: the bone's origin plus the declared offset, added without
// handedness conversion. ok is false when the model has no first-person bone.
func (m *Manager) FirstPersonCameraPosition() (pos math.Vec3, ok bool) {
	bone := m.FirstPersonBone()
	if bone == nil {
		return math.Vec3{}, false
	}
	return bone.WorldPosition().Add(m.ext.FirstPerson.FirstPersonBoneOffset.Vec3()), true
}
