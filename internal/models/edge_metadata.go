package models

import "encoding/json"

// EdgeMarker is a react-flow marker. The editor sends either a reference such as
// "url(#edge-arrow)" or a marker object.
type EdgeMarker struct {
	Ref         string  `json:"-"`
	Type        string  `json:"type,omitempty"`
	Color       string  `json:"color,omitempty"`
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	Orient      string  `json:"orient,omitempty"`
}

func (m EdgeMarker) MarshalJSON() ([]byte, error) {
	if m.Ref != "" {
		return json.Marshal(m.Ref)
	}
	type marker EdgeMarker
	return json.Marshal(marker(m))
}

func (m *EdgeMarker) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var ref string
	if err := json.Unmarshal(b, &ref); err == nil {
		*m = EdgeMarker{Ref: ref}
		return nil
	}
	type marker EdgeMarker
	var v marker
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*m = EdgeMarker(v)
	return nil
}

// EdgeMetadata is the presentation state of an edge, stored next to the connection row.
// Keys it does not model are kept in Extra so blobs written by older editors survive a
// load/save cycle. id, source and target are owned by the connection and never stored here.
type EdgeMetadata struct {
	Type          string         `json:"type,omitempty"`
	Label         string         `json:"label,omitempty"`
	Animated      bool           `json:"animated,omitempty"`
	Style         map[string]any `json:"style,omitempty"`
	MarkerStart   *EdgeMarker    `json:"markerStart,omitempty"`
	MarkerEnd     *EdgeMarker    `json:"markerEnd,omitempty"`
	HasStartArrow bool           `json:"hasStartArrow,omitempty"`
	HasEndArrow   bool           `json:"hasEndArrow,omitempty"`
	SourceHandle  string         `json:"sourceHandle,omitempty"`
	TargetHandle  string         `json:"targetHandle,omitempty"`
	Data          map[string]any `json:"data,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var edgeMetadataKeys = map[string]struct{}{
	"type":          {},
	"label":         {},
	"animated":      {},
	"style":         {},
	"markerStart":   {},
	"markerEnd":     {},
	"hasStartArrow": {},
	"hasEndArrow":   {},
	"sourceHandle":  {},
	"targetHandle":  {},
	"data":          {},
}

// IsReservedEdgeKey reports whether key belongs to the connection row rather than its metadata.
func IsReservedEdgeKey(key string) bool {
	switch key {
	case "id", "source", "target":
		return true
	}
	return false
}

func (m EdgeMetadata) MarshalJSON() ([]byte, error) {
	type plain EdgeMetadata
	b, err := json.Marshal(plain(m))
	if err != nil || len(m.Extra) == 0 {
		return b, err
	}

	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, err
	}
	for k, v := range m.Extra {
		if _, taken := fields[k]; taken || IsReservedEdgeKey(k) {
			continue
		}
		fields[k] = v
	}
	return json.Marshal(fields)
}

func (m *EdgeMetadata) UnmarshalJSON(b []byte) error {
	type plain EdgeMetadata
	var v plain
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	for k, raw := range fields {
		if _, known := edgeMetadataKeys[k]; known || IsReservedEdgeKey(k) {
			continue
		}
		if v.Extra == nil {
			v.Extra = make(map[string]json.RawMessage)
		}
		v.Extra[k] = raw
	}

	*m = EdgeMetadata(v)
	return nil
}
