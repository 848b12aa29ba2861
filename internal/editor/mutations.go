package editor

import (
	"process-maps-backend/internal/diagram"
	"process-maps-backend/internal/models"

	"github.com/google/uuid"
)

const (
	DefaultLabel       = "New Shape"
	DefaultStickyLabel = "Type your note here..."

	DefaultEdgeType   = "custom"
	DefaultEdgeStroke = "#6366f1"
	DefaultEdgeWidth  = 2
	DefaultEdgeMarker = "url(#edge-arrow)"
)

// DefaultPosition is where new nodes are placed.
var DefaultPosition = diagram.Position{X: 100, Y: 100}

type ChangeType string

const (
	ChangePosition ChangeType = "position"
	ChangeRemove   ChangeType = "remove"
	ChangeSelect   ChangeType = "select"
)

// NodeChange is one entry of the change-set the canvas widget reports.
type NodeChange struct {
	ID       string            `json:"id"`
	Type     ChangeType        `json:"type"`
	Position *diagram.Position `json:"position,omitempty"`
}

type EdgeChange struct {
	ID   string     `json:"id"`
	Type ChangeType `json:"type"`
}

// AddNode appends a node of the given type at the default position and returns it.
func (e *Editor) AddNode(shapeType models.ShapeType) diagram.Node {
	if !shapeType.Valid() {
		shapeType = models.ShapeRectangle
	}
	label := DefaultLabel
	if shapeType == models.ShapeSticky {
		label = DefaultStickyLabel
	}

	node := diagram.Node{
		ID:        uuid.NewString(),
		Type:      shapeType,
		Position:  DefaultPosition,
		Data:      diagram.NodeData{Label: label},
		Draggable: true,
	}
	e.nodes = append(e.nodes, node)
	return node
}

// UpdateLabel sets the label of the node with the given id. It reports whether the node exists.
func (e *Editor) UpdateLabel(id, label string) bool {
	i := e.nodeIndex(id)
	if i < 0 {
		return false
	}
	e.nodes[i].Data.Label = label
	return true
}

// ApplyNodeChanges applies position and remove changes. Removing a node also removes the
// edges attached to it. Other change kinds are ignored.
func (e *Editor) ApplyNodeChanges(changes []NodeChange) {
	removed := make(map[string]bool)
	for _, change := range changes {
		i := e.nodeIndex(change.ID)
		if i < 0 {
			continue
		}
		switch change.Type {
		case ChangePosition:
			if change.Position != nil {
				e.nodes[i].Position = *change.Position
			}
		case ChangeRemove:
			e.nodes = append(e.nodes[:i], e.nodes[i+1:]...)
			removed[change.ID] = true
		}
	}
	if len(removed) == 0 {
		return
	}

	edges := e.edges[:0]
	for _, edge := range e.edges {
		if removed[edge.Source] || removed[edge.Target] {
			continue
		}
		edges = append(edges, edge)
	}
	e.edges = edges
}

func (e *Editor) ApplyEdgeChanges(changes []EdgeChange) {
	for _, change := range changes {
		if change.Type != ChangeRemove {
			continue
		}
		for i := range e.edges {
			if e.edges[i].ID == change.ID {
				e.edges = append(e.edges[:i], e.edges[i+1:]...)
				break
			}
		}
	}
}

// Connect links two existing nodes with a default-styled edge. It returns false when either
// end is unknown.
func (e *Editor) Connect(source, target string) (diagram.Edge, bool) {
	if e.nodeIndex(source) < 0 || e.nodeIndex(target) < 0 {
		return diagram.Edge{}, false
	}
	edge := diagram.Edge{
		ID:     uuid.NewString(),
		Source: source,
		Target: target,
	}
	applyEdgeDefaults(&edge.EdgeMetadata)
	e.edges = append(e.edges, edge)
	return edge, true
}

// Merge appends a generated diagram to the current state. Generated output is not trusted:
// nodes without an id are dropped, unknown types become rectangles, ids that collide with
// existing nodes are renamed (and edges follow), and edges whose ends are unknown are dropped.
func (e *Editor) Merge(graph diagram.Graph) {
	taken := make(map[string]bool, len(e.nodes))
	for _, node := range e.nodes {
		taken[node.ID] = true
	}

	renamed := make(map[string]string, len(graph.Nodes))
	for _, node := range graph.Nodes {
		if node.ID == "" {
			continue
		}
		if _, dup := renamed[node.ID]; dup {
			continue
		}
		id := node.ID
		if taken[id] {
			id = uuid.NewString()
		}
		renamed[node.ID] = id
		taken[id] = true

		node.ID = id
		if !node.Type.Valid() {
			node.Type = models.ShapeRectangle
		}
		node.Draggable = true
		e.nodes = append(e.nodes, node)
	}

	edgeIDs := make(map[string]bool, len(e.edges))
	for _, edge := range e.edges {
		edgeIDs[edge.ID] = true
	}
	for _, edge := range graph.Edges {
		source, okSource := renamed[edge.Source]
		target, okTarget := renamed[edge.Target]
		if !okSource || !okTarget {
			continue
		}
		edge.Source = source
		edge.Target = target
		if edge.ID == "" || edgeIDs[edge.ID] {
			edge.ID = uuid.NewString()
		}
		edgeIDs[edge.ID] = true
		applyEdgeDefaults(&edge.EdgeMetadata)
		e.edges = append(e.edges, edge)
	}
}

func (e *Editor) nodeIndex(id string) int {
	for i := range e.nodes {
		if e.nodes[i].ID == id {
			return i
		}
	}
	return -1
}

// applyEdgeDefaults fills what the canvas' default edge options would otherwise supply.
func applyEdgeDefaults(meta *models.EdgeMetadata) {
	if meta.Type == "" {
		meta.Type = DefaultEdgeType
	}
	if meta.Style == nil {
		meta.Style = map[string]any{
			"stroke":      DefaultEdgeStroke,
			"strokeWidth": DefaultEdgeWidth,
		}
	}
	if meta.MarkerEnd == nil {
		meta.MarkerEnd = &models.EdgeMarker{Ref: DefaultEdgeMarker}
	}
}
