// Package report prints human-readable summaries of a loaded avatar for
// vrmtool.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/multierr"

	"github.com/Faultbox/midgard-vrm/pkg/avatar"
	"github.com/Faultbox/midgard-vrm/pkg/math"
	"github.com/Faultbox/midgard-vrm/pkg/springbone"
	"github.com/Faultbox/midgard-vrm/pkg/vrm"
)

// Source prints where a model came from.
func Source(w io.Writer, model *vrm.Model) {
	doc := model.Document
	fmt.Fprintf(w, "File:     %s\n", model.Path)
	if doc == nil {
		return
	}
	fmt.Fprintf(w, "glTF:     %s (%s)\n", orNone(doc.Asset.Version), orNone(doc.Asset.Generator))
	fmt.Fprintf(w, "Meshes:   %d  Materials: %d  Textures: %d\n", len(doc.Meshes), len(doc.Materials), len(doc.Textures))
}

// Info writes the avatar's metadata, humanoid mapping, expressions and
// material properties.
func Info(w io.Writer, m *avatar.Manager) {
	ext := m.Extension()
	meta := ext.Meta

	fmt.Fprintf(w, "Title:    %s\n", orNone(meta.Title))
	fmt.Fprintf(w, "Version:  %s\n", orNone(meta.Version))
	fmt.Fprintf(w, "Author:   %s\n", orNone(meta.Author))
	fmt.Fprintf(w, "License:  %s\n", orNone(meta.LicenseName))
	if ext.SpecVersion != "" || ext.ExporterVersion != "" {
		fmt.Fprintf(w, "Exporter: %s (spec %s)\n", orNone(ext.ExporterVersion), orNone(ext.SpecVersion))
	}
	fmt.Fprintf(w, "Nodes:    %d\n", m.Scene().Len())
	fmt.Fprintln(w)

	h := m.Humanoid()
	fmt.Fprintf(w, "Humanoid: %d bones\n", h.Len())
	if missing := h.Missing(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, b := range missing {
			names[i] = string(b)
		}
		fmt.Fprintf(w, "  missing required: %s\n", strings.Join(names, ", "))
	}
	if bone := m.FirstPersonBone(); bone != nil {
		pos, _ := m.FirstPersonCameraPosition()
		fmt.Fprintf(w, "  first person: %s at %s\n", bone.Name, vec(pos))
	}
	fmt.Fprintln(w)

	groups := ext.BlendShapeMaster.BlendShapeGroups
	fmt.Fprintf(w, "Blend shapes: %d\n", len(groups))
	for _, g := range groups {
		flags := ""
		if g.IsBinary {
			flags = " binary"
		}
		fmt.Fprintf(w, "  %-20s preset=%-10s binds=%d%s\n", g.Name, orNone(g.PresetName), len(g.Binds), flags)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Materials: %d\n", len(ext.MaterialProperties))
	for _, p := range ext.MaterialProperties {
		fmt.Fprintf(w, "  %-20s %-24s queue=%d\n", p.Name, p.Shader, p.RenderQueue)
		if len(p.KeywordMap) > 0 {
			fmt.Fprintf(w, "    keywords: %s\n", strings.Join(enabledKeywords(p.KeywordMap), " "))
		}
	}
}

// Springs writes the declared bone groups, the chains built from them and
// any entries skipped during construction.
func Springs(w io.Writer, m *avatar.Manager) {
	sa := m.Extension().SecondaryAnimation
	ctrl := m.SpringBones()

	fmt.Fprintf(w, "Collider groups: %d declared, %d built\n", len(sa.ColliderGroups), len(ctrl.ColliderGroups()))
	for _, g := range ctrl.ColliderGroups() {
		fmt.Fprintf(w, "  %s\n", nodeName(g.Bone()))
		for _, c := range g.Colliders() {
			fmt.Fprintf(w, "    offset=%s radius=%.3f\n", vec(c.Offset), c.Radius)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Bone groups: %d\n", len(sa.BoneGroups))
	for i, g := range sa.BoneGroups {
		fmt.Fprintf(w, "  [%d] %-16s stiffness=%.2f gravity=%.2f drag=%.2f hitRadius=%.3f roots=%d colliders=%d\n",
			i, orNone(g.Comment), g.Stiffness, g.GravityPower, g.DragForce, g.HitRadius, len(g.Bones), len(g.ColliderGroups))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Chains: %d\n", len(ctrl.Chains()))
	for _, c := range ctrl.Chains() {
		center := "world"
		if c.Center() != nil {
			center = nodeName(c.Center())
		}
		fmt.Fprintf(w, "  %s (%s) joints=%d center=%s\n", nodeName(c.Root()), orNone(c.Comment), len(c.Joints()), center)
		for _, j := range c.Joints() {
			fmt.Fprintf(w, "    %-24s length=%.4f axis=%s\n", nodeName(j.Bone()), j.BoneLength(), vec(j.BoneAxis()))
		}
	}

	if warnings := multierr.Errors(ctrl.Warnings()); len(warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Warnings: %d\n", len(warnings))
		for _, err := range warnings {
			fmt.Fprintf(w, "  %v\n", err)
		}
	}
}

// SimulateOptions controls Simulate.
type SimulateOptions struct {
	Frames  int
	DeltaMs float32
	// Every > 0 also writes the tails after each Every-th frame.
	Every int
}

// Validate rejects negative frame counts and intervals.
func (o SimulateOptions) Validate() error {
	if o.Frames < 0 {
		return fmt.Errorf("frame count %d is negative", o.Frames)
	}
	if o.Every < 0 {
		return fmt.Errorf("print interval %d is negative", o.Every)
	}
	return nil
}

// Simulate advances the avatar o.Frames times by o.DeltaMs and writes every
// joint's tail.
func Simulate(w io.Writer, m *avatar.Manager, o SimulateOptions) error {
	if err := o.Validate(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Simulating %d frames at %.3f ms (clamped step %.4f s)\n",
		o.Frames, o.DeltaMs, springbone.ClampDeltaTime(o.DeltaMs))
	for f := 1; f <= o.Frames; f++ {
		if err := m.Update(o.DeltaMs); err != nil {
			return fmt.Errorf("frame %d: %w", f, err)
		}
		if o.Every > 0 && f%o.Every == 0 && f != o.Frames {
			writeTails(w, f, m.SpringBones())
		}
	}
	writeTails(w, o.Frames, m.SpringBones())
	return nil
}

func writeTails(w io.Writer, frame int, ctrl *springbone.Controller) {
	fmt.Fprintf(w, "frame %d\n", frame)
	for _, c := range ctrl.Chains() {
		for _, j := range c.Joints() {
			fmt.Fprintf(w, "  %-24s %s\n", nodeName(j.Bone()), vec(j.CurrentTail()))
		}
	}
}

func nodeName(t springbone.Transform) string {
	n := avatar.Node(t)
	if n == nil {
		return "?"
	}
	if n.Name == "" {
		return fmt.Sprintf("node%d", n.Index)
	}
	return n.Name
}

func vec(v math.Vec3) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", unsigned(v.X), unsigned(v.Y), unsigned(v.Z))
}

// unsigned maps negative zero, common after handedness flips, to zero.
func unsigned(f float32) float32 {
	if f == 0 {
		return 0
	}
	return f
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func enabledKeywords(m map[string]bool) []string {
	var out []string
	for k, on := range m {
		if on {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
