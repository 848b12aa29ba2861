package diagram

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"process-maps-backend/internal/models"
)

// NodeFromShape maps a stored shape to its canvas node.
func NodeFromShape(s models.Shape) Node {
	return Node{
		ID:        s.ID,
		Type:      s.Type,
		Position:  Position{X: s.X, Y: s.Y},
		Data:      NodeData{Label: s.Text},
		Draggable: true,
	}
}

// EdgeFromConnection maps a stored connection to its canvas edge.
func EdgeFromConnection(c models.Connection) Edge {
	return Edge{
		ID:           c.ID,
		Source:       c.FromShapeID,
		Target:       c.ToShapeID,
		EdgeMetadata: c.Metadata.Data(),
	}
}

// ShapeFromNode builds the row stored for a node. Width and height always follow the shape type.
func ShapeFromNode(boardID uuid.UUID, n Node) models.Shape {
	width, height := n.Type.Size()
	return models.Shape{
		ID:      n.ID,
		BoardID: boardID,
		Type:    n.Type,
		X:       n.Position.X,
		Y:       n.Position.Y,
		Width:   width,
		Height:  height,
		Text:    n.Data.Label,
	}
}

// ConnectionFromEdge builds the row stored for an edge, generating an id when the edge has none.
func ConnectionFromEdge(boardID uuid.UUID, e Edge) models.Connection {
	id := e.ID
	if id == "" {
		id = uuid.NewString()
	}
	return models.Connection{
		ID:          id,
		BoardID:     boardID,
		FromShapeID: e.Source,
		ToShapeID:   e.Target,
		Metadata:    datatypes.NewJSONType(e.EdgeMetadata),
	}
}

// NewBoardView renders a board with preloaded shapes and connections.
func NewBoardView(board models.Board) BoardView {
	view := BoardView{
		ID:    board.ID.String(),
		Name:  board.Name,
		Nodes: make([]Node, 0, len(board.Shapes)),
		Edges: make([]Edge, 0, len(board.Connections)),
	}
	for _, s := range board.Shapes {
		view.Nodes = append(view.Nodes, NodeFromShape(s))
	}
	for _, c := range board.Connections {
		view.Edges = append(view.Edges, EdgeFromConnection(c))
	}
	return view
}

// Rows converts a graph into the rows that replace a board's content.
func (g Graph) Rows(boardID uuid.UUID) ([]models.Shape, []models.Connection) {
	shapes := make([]models.Shape, 0, len(g.Nodes))
	for i, n := range g.Nodes {
		shape := ShapeFromNode(boardID, n)
		shape.Seq = i
		shapes = append(shapes, shape)
	}
	connections := make([]models.Connection, 0, len(g.Edges))
	for i, e := range g.Edges {
		connection := ConnectionFromEdge(boardID, e)
		connection.Seq = i
		connections = append(connections, connection)
	}
	return shapes, connections
}
