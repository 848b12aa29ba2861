// Package diagram holds the node/edge view of a board exchanged with the editor and the
// mapping between that view and the stored shapes and connections.
package diagram

import (
	"encoding/json"

	"process-maps-backend/internal/models"
)

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type NodeData struct {
	Label string `json:"label"`
}

// Node is a shape as the canvas widget sees it.
type Node struct {
	ID        string           `json:"id"`
	Type      models.ShapeType `json:"type"`
	Position  Position         `json:"position"`
	Data      NodeData         `json:"data"`
	Draggable bool             `json:"draggable,omitempty"`
}

// Edge is a connection as the canvas widget sees it: the presentation metadata flattened
// next to id, source and target.
type Edge struct {
	ID     string
	Source string
	Target string
	models.EdgeMetadata
}

// MarshalJSON writes the metadata fields first and id/source/target last, so the connection's
// own columns always win over anything carried in the metadata.
func (e Edge) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(e.EdgeMetadata)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, err
	}

	for key, value := range map[string]string{"id": e.ID, "source": e.Source, "target": e.Target} {
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		fields[key] = raw
	}
	return json.Marshal(fields)
}

func (e *Edge) UnmarshalJSON(b []byte) error {
	var ids struct {
		ID     string `json:"id"`
		Source string `json:"source"`
		Target string `json:"target"`
	}
	if err := json.Unmarshal(b, &ids); err != nil {
		return err
	}
	var meta models.EdgeMetadata
	if err := json.Unmarshal(b, &meta); err != nil {
		return err
	}

	*e = Edge{ID: ids.ID, Source: ids.Source, Target: ids.Target, EdgeMetadata: meta}
	return nil
}

// Graph is the body of a full-replace save and the shape of AI generated diagrams.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// BoardView is the read model of a board's content.
type BoardView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}
