package scene

import (
	"github.com/taigrr/vitrine/pkg/math3d"
	"github.com/taigrr/vitrine/pkg/models"
)

// Node is an object in the scene graph. A node draws its Model (if any)
// with its world matrix, then its children.
type Node struct {
	Name     string
	Local    math3d.Mat4
	Model    *models.Model
	Visible  bool
	Parent   *Node
	Children []*Node
}

// NewNode creates a visible node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:    name,
		Local:   math3d.Identity(),
		Visible: true,
	}
}

// NewModelNode wraps a decoded model in a node named after it.
func NewModelNode(m *models.Model) *Node {
	n := NewNode(m.Name)
	n.Model = m
	return n
}

// AddChild attaches child, detaching it from any previous parent.
func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// RemoveChild detaches child if it is a direct child of n.
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// WorldMatrix composes the local transforms from the root down to n.
func (n *Node) WorldMatrix() math3d.Mat4 {
	if n.Parent == nil {
		return n.Local
	}
	return n.Parent.WorldMatrix().Mul(n.Local)
}

// Traverse visits n and its descendants depth first.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, child := range n.Children {
		child.Traverse(fn)
	}
}

// Find returns the first node named name in the subtree, or nil.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}
