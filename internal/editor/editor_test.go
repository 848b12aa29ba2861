package editor_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"process-maps-backend/internal/diagram"
	"process-maps-backend/internal/editor"
	"process-maps-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	view      *diagram.BoardView
	generated string
	err       error

	saved *diagram.Graph
}

func (f *fakeAPI) GetBoard(ctx context.Context, boardID string) (*diagram.BoardView, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.view, nil
}

func (f *fakeAPI) SaveBoard(ctx context.Context, boardID string, graph diagram.Graph) error {
	if f.err != nil {
		return f.err
	}
	f.saved = &graph
	return nil
}

func (f *fakeAPI) Generate(ctx context.Context, prompt string) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.generated), nil
}

func node(id string) diagram.Node {
	return diagram.Node{ID: id, Type: models.ShapeRectangle, Data: diagram.NodeData{Label: id}}
}

func TestAddNodeAndUpdateLabel(t *testing.T) {
	ed := editor.New(&fakeAPI{}, "b1")

	rect := ed.AddNode(models.ShapeRectangle)
	sticky := ed.AddNode(models.ShapeSticky)

	assert.NotEmpty(t, rect.ID)
	assert.NotEqual(t, rect.ID, sticky.ID)
	assert.Equal(t, editor.DefaultPosition, rect.Position)
	assert.Equal(t, editor.DefaultLabel, rect.Data.Label)
	assert.Equal(t, editor.DefaultStickyLabel, sticky.Data.Label)

	assert.True(t, ed.UpdateLabel(sticky.ID, "Remember"))
	assert.False(t, ed.UpdateLabel("missing", "x"))
	assert.Equal(t, "Remember", ed.Nodes()[1].Data.Label)
	assert.Equal(t, editor.DefaultLabel, ed.Nodes()[0].Data.Label)
}

func TestApplyNodeChanges(t *testing.T) {
	ed := editor.New(&fakeAPI{view: &diagram.BoardView{
		Nodes: []diagram.Node{node("a"), node("b"), node("c")},
		Edges: []diagram.Edge{
			{ID: "ab", Source: "a", Target: "b"},
			{ID: "bc", Source: "b", Target: "c"},
			{ID: "ca", Source: "c", Target: "a"},
		},
	}}, "b1")
	require.NoError(t, ed.Load(context.Background()))

	ed.ApplyNodeChanges([]editor.NodeChange{
		{ID: "a", Type: editor.ChangePosition, Position: &diagram.Position{X: 5, Y: 7}},
		{ID: "b", Type: editor.ChangeRemove},
		{ID: "c", Type: editor.ChangeSelect},
		{ID: "zzz", Type: editor.ChangeRemove},
	})

	nodes := ed.Nodes()
	require.Len(t, nodes, 2)
	assert.Equal(t, diagram.Position{X: 5, Y: 7}, nodes[0].Position)
	assert.Equal(t, "c", nodes[1].ID)

	edges := ed.Edges()
	require.Len(t, edges, 1)
	assert.Equal(t, "ca", edges[0].ID)

	ed.ApplyEdgeChanges([]editor.EdgeChange{{ID: "ca", Type: editor.ChangeRemove}})
	assert.Empty(t, ed.Edges())
}

func TestConnect(t *testing.T) {
	ed := editor.New(&fakeAPI{}, "b1")
	a := ed.AddNode(models.ShapeCircle)
	b := ed.AddNode(models.ShapeDiamond)

	edge, ok := ed.Connect(a.ID, b.ID)
	require.True(t, ok)
	assert.Equal(t, a.ID, edge.Source)
	assert.Equal(t, b.ID, edge.Target)
	assert.Equal(t, editor.DefaultEdgeType, edge.Type)
	assert.Equal(t, editor.DefaultEdgeStroke, edge.Style["stroke"])
	require.NotNil(t, edge.MarkerEnd)
	assert.Equal(t, editor.DefaultEdgeMarker, edge.MarkerEnd.Ref)

	_, ok = ed.Connect(a.ID, "missing")
	assert.False(t, ok)
	assert.Len(t, ed.Edges(), 1)
}

func TestMerge(t *testing.T) {
	ed := editor.New(&fakeAPI{}, "b1")
	existing := ed.AddNode(models.ShapeRectangle)

	ed.Merge(diagram.Graph{
		Nodes: []diagram.Node{
			{ID: existing.ID, Type: models.ShapeRectangle, Data: diagram.NodeData{Label: "clash"}},
			{ID: "2", Type: "hexagon", Data: diagram.NodeData{Label: "odd"}},
			{Type: models.ShapeCircle},
			{ID: "2", Type: models.ShapeCircle},
		},
		Edges: []diagram.Edge{
			{ID: "e1", Source: existing.ID, Target: "2"},
			{ID: "e2", Source: "2", Target: "ghost"},
		},
	})

	nodes := ed.Nodes()
	require.Len(t, nodes, 3)
	clash := nodes[1]
	assert.NotEqual(t, existing.ID, clash.ID)
	assert.Equal(t, "clash", clash.Data.Label)
	assert.Equal(t, models.ShapeRectangle, nodes[2].Type)
	assert.True(t, nodes[2].Draggable)

	edges := ed.Edges()
	require.Len(t, edges, 1)
	assert.Equal(t, clash.ID, edges[0].Source)
	assert.Equal(t, "2", edges[0].Target)
	assert.Equal(t, editor.DefaultEdgeType, edges[0].Type)

	// merged output always passes save validation
	assert.NoError(t, ed.Graph().Validate())
}

func TestLoadSaveGenerate(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{
		view:      &diagram.BoardView{ID: "b1", Name: "Flow A", Nodes: []diagram.Node{node("n1")}},
		generated: `{"nodes":[{"id":"g1","type":"diamond","position":{"x":0,"y":0},"data":{"label":"Approve?"}}],"edges":[{"id":"x","source":"n1","target":"g1"}]}`,
	}
	ed := editor.New(api, "b1")

	require.NoError(t, ed.Load(ctx))
	assert.Equal(t, "Flow A", ed.Name())
	assert.False(t, ed.Loading())

	require.NoError(t, ed.Generate(ctx, "approval"))
	require.Len(t, ed.Nodes(), 2)
	// generated edges may only reference generated nodes
	assert.Empty(t, ed.Edges())

	require.NoError(t, ed.Save(ctx))
	require.NotNil(t, api.saved)
	assert.Len(t, api.saved.Nodes, 2)
	assert.Empty(t, ed.Error())
}

func TestGenerateKeepsReadableEntries(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{generated: `{
		"nodes": [
			{"id": 1, "type": "rectangle", "position": {"x": 10, "y": "20"}, "data": {"label": 42}},
			{"id": "g2", "type": "circle", "position": {"x": 0, "y": 0}, "data": {"label": "Done"}},
			"garbage",
			{"type": "rectangle"}
		],
		"edges": [
			{"id": "e1", "source": 1, "target": "g2", "label": 7},
			{"id": "e2", "source": "g2"},
			12
		]
	}`}
	ed := editor.New(api, "b1")

	require.NoError(t, ed.Generate(ctx, "flow"))
	assert.Empty(t, ed.Error())

	nodes := ed.Nodes()
	require.Len(t, nodes, 2)
	assert.Equal(t, "1", nodes[0].ID)
	assert.Equal(t, "42", nodes[0].Data.Label)
	assert.Equal(t, diagram.Position{X: 10, Y: 20}, nodes[0].Position)
	assert.Equal(t, "g2", nodes[1].ID)

	edges := ed.Edges()
	require.Len(t, edges, 1)
	assert.Equal(t, "1", edges[0].Source)
	assert.Equal(t, "g2", edges[0].Target)
	assert.Equal(t, "7", edges[0].Label)
}

func TestErrorsAreFlat(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{err: errors.New("connection refused")}
	ed := editor.New(api, "b1")

	assert.Error(t, ed.Load(ctx))
	assert.Equal(t, editor.ErrLoadFailed, ed.Error())

	assert.Error(t, ed.Save(ctx))
	assert.Equal(t, editor.ErrSaveFailed, ed.Error())

	assert.Error(t, ed.Generate(ctx, "x"))
	assert.Equal(t, editor.ErrGenerateFailed, ed.Error())

	api.err = nil
	api.generated = `"not an object"`
	assert.Error(t, ed.Generate(ctx, "x"))
	assert.Equal(t, editor.ErrGenerateFailed, ed.Error())
}
