package editor

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"

	"process-maps-backend/internal/diagram"
	"process-maps-backend/internal/models"

	log "github.com/sirupsen/logrus"
)

var errGeneratedNotObject = errors.New("generated diagram is not a JSON object")

// decodeGenerated reads a model-written diagram entry by entry. Numbers are accepted where
// strings are expected, and entries that cannot be read are skipped instead of failing the
// whole diagram.
func decodeGenerated(raw json.RawMessage) (diagram.Graph, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil || top == nil {
		return diagram.Graph{}, errGeneratedNotObject
	}

	var graph diagram.Graph
	for i, entry := range rawList(top["nodes"]) {
		node, ok := decodeGeneratedNode(entry)
		if !ok {
			log.WithField("index", i).Debug("skipping unreadable generated node")
			continue
		}
		graph.Nodes = append(graph.Nodes, node)
	}
	for i, entry := range rawList(top["edges"]) {
		edge, ok := decodeGeneratedEdge(entry)
		if !ok {
			log.WithField("index", i).Debug("skipping unreadable generated edge")
			continue
		}
		graph.Edges = append(graph.Edges, edge)
	}
	return graph, nil
}

func decodeGeneratedNode(raw json.RawMessage) (diagram.Node, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return diagram.Node{}, false
	}
	id, ok := looseString(fields["id"])
	if !ok || id == "" {
		return diagram.Node{}, false
	}

	node := diagram.Node{ID: id}
	if kind, ok := looseString(fields["type"]); ok {
		node.Type = models.ShapeType(kind)
	}

	var position map[string]json.RawMessage
	if json.Unmarshal(fields["position"], &position) == nil {
		node.Position.X = looseFloat(position["x"])
		node.Position.Y = looseFloat(position["y"])
	}

	var data map[string]json.RawMessage
	if json.Unmarshal(fields["data"], &data) == nil {
		node.Data.Label, _ = looseString(data["label"])
	}
	return node, true
}

func decodeGeneratedEdge(raw json.RawMessage) (diagram.Edge, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return diagram.Edge{}, false
	}
	source, okSource := looseString(fields["source"])
	target, okTarget := looseString(fields["target"])
	if !okSource || !okTarget {
		return diagram.Edge{}, false
	}
	id, _ := looseString(fields["id"])

	var meta models.EdgeMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		meta = models.EdgeMetadata{}
		meta.Label, _ = looseString(fields["label"])
	}
	return diagram.Edge{ID: id, Source: source, Target: target, EdgeMetadata: meta}, true
}

func rawList(raw json.RawMessage) []json.RawMessage {
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	return list
}

// looseString accepts a JSON string or number.
func looseString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", false
	}
	switch v := v.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	default:
		return "", false
	}
}

func looseFloat(raw json.RawMessage) float64 {
	s, ok := looseString(raw)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
