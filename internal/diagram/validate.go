package diagram

import (
	"errors"
	"fmt"
)

var ErrInvalidGraph = errors.New("invalid graph")

// Validate checks that a graph can be stored as-is: node ids are present and unique, node types
// are known shapes, and every edge connects two nodes of the same graph.
func (g Graph) Validate() error {
	nodes := make(map[string]struct{}, len(g.Nodes))
	for i, n := range g.Nodes {
		if n.ID == "" {
			return fmt.Errorf("%w: node %d has no id", ErrInvalidGraph, i)
		}
		if _, dup := nodes[n.ID]; dup {
			return fmt.Errorf("%w: duplicate node id %q", ErrInvalidGraph, n.ID)
		}
		if !n.Type.Valid() {
			return fmt.Errorf("%w: node %q has unknown type %q", ErrInvalidGraph, n.ID, n.Type)
		}
		nodes[n.ID] = struct{}{}
	}

	edges := make(map[string]struct{}, len(g.Edges))
	for i, e := range g.Edges {
		if e.ID != "" {
			if _, dup := edges[e.ID]; dup {
				return fmt.Errorf("%w: duplicate edge id %q", ErrInvalidGraph, e.ID)
			}
			edges[e.ID] = struct{}{}
		}
		if _, ok := nodes[e.Source]; !ok {
			return fmt.Errorf("%w: edge %d has unknown source %q", ErrInvalidGraph, i, e.Source)
		}
		if _, ok := nodes[e.Target]; !ok {
			return fmt.Errorf("%w: edge %d has unknown target %q", ErrInvalidGraph, i, e.Target)
		}
	}
	return nil
}
