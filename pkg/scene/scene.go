// Package scene holds the graph of objects the canvas draws.
package scene

import (
	"github.com/taigrr/vitrine/pkg/math3d"
	"github.com/taigrr/vitrine/pkg/render"
)

// Scene is a root node plus the image-based lighting applied to it.
type Scene struct {
	Root        *Node
	Environment *render.Environment
}

// NewScene creates an empty scene lit by a neutral white environment.
func NewScene() *Scene {
	return &Scene{
		Root:        NewNode("root"),
		Environment: render.UniformEnvironment(math3d.V3(1, 1, 1)),
	}
}

// Add attaches node under the root.
func (s *Scene) Add(node *Node) {
	s.Root.AddChild(node)
}

// Clear detaches every child of the root.
func (s *Scene) Clear() {
	for len(s.Root.Children) > 0 {
		s.Root.RemoveChild(s.Root.Children[len(s.Root.Children)-1])
	}
}

// Replace clears the scene and attaches node as its only child.
func (s *Scene) Replace(node *Node) {
	s.Clear()
	s.Add(node)
}

// Children returns the direct children of the root.
func (s *Scene) Children() []*Node {
	return s.Root.Children
}

// SetEnvironment sets the lighting; nil restores the neutral default.
func (s *Scene) SetEnvironment(env *render.Environment) {
	if env == nil {
		env = render.UniformEnvironment(math3d.V3(1, 1, 1))
	}
	s.Environment = env
}

// Draw renders every visible model in the graph. The caller clears and
// resolves the renderer around it.
func (s *Scene) Draw(r *render.Renderer) {
	r.SetEnvironment(s.Environment)
	s.draw(r, s.Root, math3d.Identity())
}

func (s *Scene) draw(r *render.Renderer, n *Node, parent math3d.Mat4) {
	if !n.Visible {
		return
	}
	world := parent.Mul(n.Local)
	if n.Model != nil {
		for _, p := range n.Model.Parts {
			r.SetDoubleSided(p.DoubleSided)
			r.DrawMesh(p.Mesh, world, p.Material)
		}
		r.SetDoubleSided(false)
	}
	for _, child := range n.Children {
		s.draw(r, child, world)
	}
}
