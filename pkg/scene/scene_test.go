package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/vitrine/pkg/math3d"
	"github.com/taigrr/vitrine/pkg/models"
	"github.com/taigrr/vitrine/pkg/render"
)

func TestReplaceKeepsSingleChild(t *testing.T) {
	s := NewScene()
	for _, name := range []string{"1", "2", "3", "2"} {
		s.Replace(NewNode(name))
		require.Len(t, s.Children(), 1)
		assert.Equal(t, name, s.Children()[0].Name)
	}
}

func TestReplaceDetachesOldRoot(t *testing.T) {
	s := NewScene()
	old := NewNode("old")
	s.Add(old)
	s.Add(NewNode("stray"))

	s.Replace(NewNode("new"))
	assert.Nil(t, old.Parent)
	assert.Len(t, s.Children(), 1)
}

func TestClear(t *testing.T) {
	s := NewScene()
	s.Add(NewNode("a"))
	s.Add(NewNode("b"))
	s.Clear()
	assert.Empty(t, s.Children())
}

func TestAddChildReparents(t *testing.T) {
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	a.AddChild(c)
	b.AddChild(c)

	assert.Empty(t, a.Children)
	assert.Equal(t, b, c.Parent)
	assert.Equal(t, c, b.Find("c"))
	assert.Nil(t, a.Find("c"))
}

func TestWorldMatrixComposes(t *testing.T) {
	parent := NewNode("p")
	parent.Local = math3d.Translate(math3d.V3(1, 0, 0))
	child := NewNode("c")
	child.Local = math3d.Translate(math3d.V3(0, 2, 0))
	parent.AddChild(child)

	got := child.WorldMatrix().MulVec3(math3d.Zero3())
	assert.Equal(t, math3d.V3(1, 2, 0), got)
}

func TestTraverseVisitsAll(t *testing.T) {
	root := NewNode("r")
	root.AddChild(NewNode("a"))
	root.Children[0].AddChild(NewNode("b"))

	var names []string
	root.Traverse(func(n *Node) { names = append(names, n.Name) })
	assert.Equal(t, []string{"r", "a", "b"}, names)
}

func triangleModel() *models.Model {
	mesh := models.NewMesh("tri")
	mesh.Vertices = []models.MeshVertex{
		{Position: math3d.V3(-0.5, -0.5, 0), Normal: math3d.V3(0, 0, 1)},
		{Position: math3d.V3(0, 0.5, 0), Normal: math3d.V3(0, 0, 1)},
		{Position: math3d.V3(0.5, -0.5, 0), Normal: math3d.V3(0, 0, 1)},
	}
	mesh.Faces = []models.Face{{V: [3]int{0, 1, 2}}}
	mesh.CalculateBounds()

	m := &models.Model{Name: "tri", Parts: []models.Part{{Mesh: mesh, Material: render.DefaultMaterial()}}}
	m.CalculateBounds()
	return m
}

func TestDrawSkipsHiddenNodes(t *testing.T) {
	cam := render.NewOrthographicCamera()
	r := render.NewRenderer(cam)
	r.SetSize(20, 20)

	s := NewScene()
	node := NewModelNode(triangleModel())
	s.Add(node)

	r.Clear()
	s.Draw(r)
	assert.NotEqual(t, render.ColorWhite, r.Resolve().GetPixel(10, 10))

	node.Visible = false
	r.Clear()
	s.Draw(r)
	assert.Equal(t, render.ColorWhite, r.Resolve().GetPixel(10, 10))
}
