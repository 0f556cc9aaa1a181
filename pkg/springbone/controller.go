package springbone

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/multierr"

	"github.com/Faultbox/midgard-vrm/pkg/vrm"
)

// MaxDeltaTimeMs is the largest frame time, in milliseconds, a single update
// integrates. Longer frames (pauses, re-posing) are clamped to it.
const MaxDeltaTimeMs = 16.666

// ErrDisposed is returned by Update after Dispose.
var ErrDisposed = errors.New("springbone: controller disposed")

// Option configures a Controller.
type Option func(*Controller)

// WithSequential updates chains one after another on the caller's goroutine.
func WithSequential() Option {
	return func(c *Controller) {
		c.sequential = true
	}
}

// Controller owns the chains and collider groups of one model.
//
// Chains that do not share bones are updated concurrently. Chains nested in
// another chain's hierarchy are grouped with it and run parents first.
type Controller struct {
	chains         []*Chain
	colliderGroups []*ColliderGroup
	jobs           [][]*Chain

	sequential bool
	disposed   bool
	warnings   error
}

// NewController builds the collider groups and chains described by ext.
// Entries referring to nodes that lookup cannot resolve are skipped and
// reported by Warnings; construction itself never fails.
func NewController(ext *vrm.SecondaryAnimation, lookup Lookup, opts ...Option) *Controller {
	c := &Controller{}
	for _, opt := range opts {
		opt(c)
	}
	if ext == nil {
		return c
	}
	groups := c.buildColliderGroups(ext.ColliderGroups, lookup)
	c.buildChains(ext.BoneGroups, groups, lookup)
	return c
}

// buildColliderGroups returns one slot per declared group so that bone
// groups can index it directly. Skipped groups leave a nil slot.
func (c *Controller) buildColliderGroups(decls []vrm.ColliderGroup, lookup Lookup) []*ColliderGroup {
	slots := make([]*ColliderGroup, len(decls))
	for i, decl := range decls {
		bone := lookup(decl.Node)
		if bone == nil {
			c.warn(fmt.Errorf("collider group %d: node %d not found", i, decl.Node))
			continue
		}
		g := NewColliderGroup(bone)
		for _, col := range decl.Colliders {
			g.AddCollider(col.Offset.Host(), col.Radius)
		}
		slots[i] = g
		c.colliderGroups = append(c.colliderGroups, g)
	}
	return slots
}

func (c *Controller) buildChains(decls []vrm.BoneGroup, slots []*ColliderGroup, lookup Lookup) {
	owner := make(map[Transform]*Chain)
	jobOf := make(map[*Chain]int)

	for gi, decl := range decls {
		params := Params{
			Stiffness:    decl.Stiffness,
			GravityPower: decl.GravityPower,
			GravityDir:   decl.GravityDir.Host().Normalize(),
			DragForce:    decl.DragForce,
			HitRadius:    decl.HitRadius,
		}

		var center Transform
		if decl.Center >= 0 {
			if center = lookup(decl.Center); center == nil {
				c.warn(fmt.Errorf("bone group %d: center node %d not found, simulating in world space", gi, decl.Center))
			}
		}

		groups := make([]*ColliderGroup, 0, len(decl.ColliderGroups))
		for _, idx := range decl.ColliderGroups {
			if idx < 0 || idx >= len(slots) {
				c.warn(fmt.Errorf("bone group %d: collider group index %d out of range", gi, idx))
				continue
			}
			if slots[idx] == nil {
				continue
			}
			groups = append(groups, slots[idx])
		}

		for _, idx := range decl.Bones {
			root := lookup(idx)
			if root == nil {
				c.warn(fmt.Errorf("bone group %d: root node %d not found", gi, idx))
				continue
			}
			if _, ok := owner[root]; ok {
				c.warn(fmt.Errorf("bone group %d: node %d already belongs to another chain", gi, idx))
				continue
			}

			var nested []*Chain
			chain := NewChain(decl.Comment, root, params, center, groups, func(t Transform) bool {
				if other, ok := owner[t]; ok {
					nested = append(nested, other)
					return true
				}
				return false
			})
			for _, j := range chain.Joints() {
				owner[j.Bone()] = chain
			}
			c.chains = append(c.chains, chain)
			c.addJob(chain, nested, jobOf)
		}
	}

	c.joinReaders(jobOf)

	jobs := c.jobs[:0]
	for _, job := range c.jobs {
		if job != nil {
			jobs = append(jobs, job)
		}
	}
	c.jobs = jobs
}

// addJob schedules chain ahead of every job holding one of the chains nested
// under it, merging them into a single sequential job.
func (c *Controller) addJob(chain *Chain, nested []*Chain, jobOf map[*Chain]int) {
	job := []*Chain{chain}
	merged := make(map[int]bool)
	for _, n := range nested {
		id := jobOf[n]
		if merged[id] {
			continue
		}
		merged[id] = true
		job = append(job, c.jobs[id]...)
		c.jobs[id] = nil
	}
	id := len(c.jobs)
	c.jobs = append(c.jobs, job)
	for _, ch := range job {
		jobOf[ch] = id
	}
}

// joinReaders moves every chain that reads a node moved by another job,
// through a collider group bone or its center, into that job after the
// writer.
func (c *Controller) joinReaders(jobOf map[*Chain]int) {
	writer := make(map[Transform]*Chain)
	for _, chain := range c.chains {
		walk(chain.root, func(t Transform) {
			if _, ok := writer[t]; !ok {
				writer[t] = chain
			}
		})
	}

	for _, chain := range c.chains {
		for _, t := range chain.reads() {
			w, ok := writer[t]
			if !ok || jobOf[w] == jobOf[chain] {
				continue
			}
			c.mergeJobs(jobOf[w], jobOf[chain], jobOf)
		}
	}
}

// mergeJobs appends job from to job into.
func (c *Controller) mergeJobs(into, from int, jobOf map[*Chain]int) {
	for _, ch := range c.jobs[from] {
		jobOf[ch] = into
	}
	c.jobs[into] = append(c.jobs[into], c.jobs[from]...)
	c.jobs[from] = nil
}

func walk(t Transform, fn func(Transform)) {
	fn(t)
	for _, child := range t.Children() {
		walk(child, fn)
	}
}

func (c *Controller) warn(err error) {
	c.warnings = multierr.Append(c.warnings, err)
}

// ClampDeltaTime clamps a frame time in milliseconds to [0, MaxDeltaTimeMs]
// and returns it in seconds.
func ClampDeltaTime(deltaMs float32) float32 {
	if !(deltaMs > 0) {
		return 0
	}
	if deltaMs > MaxDeltaTimeMs {
		deltaMs = MaxDeltaTimeMs
	}
	return deltaMs / 1000
}

// Update advances every chain by deltaMs milliseconds and returns once all
// of them are done.
func (c *Controller) Update(deltaMs float32) error {
	if c.disposed {
		return ErrDisposed
	}
	dt := ClampDeltaTime(deltaMs)

	if c.sequential || len(c.jobs) < 2 {
		for _, job := range c.jobs {
			runJob(job, dt)
		}
		return nil
	}

	workers := min(runtime.GOMAXPROCS(0), len(c.jobs))
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			for i := w; i < len(c.jobs); i += workers {
				runJob(c.jobs[i], dt)
			}
		}(w)
	}
	wg.Wait()
	return nil
}

func runJob(job []*Chain, dt float32) {
	for _, chain := range job {
		chain.Update(dt)
	}
}

// Reset re-seeds every chain from the current pose.
func (c *Controller) Reset() {
	for _, chain := range c.chains {
		chain.Reset()
	}
}

// Dispose releases all chains and collider groups. Later updates fail with
// ErrDisposed.
func (c *Controller) Dispose() {
	c.chains = nil
	c.colliderGroups = nil
	c.jobs = nil
	c.disposed = true
}

// Chains returns the constructed chains in declaration order.
func (c *Controller) Chains() []*Chain {
	return c.chains
}

// ColliderGroups returns the constructed collider groups in declaration order.
func (c *Controller) ColliderGroups() []*ColliderGroup {
	return c.colliderGroups
}

// Warnings returns the entries skipped during construction, combined with
// multierr, or nil.
func (c *Controller) Warnings() error {
	return c.warnings
}
