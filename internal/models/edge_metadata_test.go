package models_test

import (
	"encoding/json"
	"testing"

	"process-maps-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdgeMarker(t *testing.T) {
	t.Run("Reference String", func(t *testing.T) {
		var m models.EdgeMarker
		require.NoError(t, json.Unmarshal([]byte(`"url(#edge-arrow)"`), &m))
		assert.Equal(t, "url(#edge-arrow)", m.Ref)

		out, err := json.Marshal(m)
		require.NoError(t, err)
		assert.JSONEq(t, `"url(#edge-arrow)"`, string(out))
	})

	t.Run("Marker Object", func(t *testing.T) {
		var m models.EdgeMarker
		require.NoError(t, json.Unmarshal([]byte(`{"type":"arrowclosed","color":"#6366f1","width":20}`), &m))
		assert.Empty(t, m.Ref)
		assert.Equal(t, "arrowclosed", m.Type)
		assert.Equal(t, 20.0, m.Width)

		out, err := json.Marshal(m)
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"arrowclosed","color":"#6366f1","width":20}`, string(out))
	})
}

func TestEdgeMetadataKeepsUnknownKeys(t *testing.T) {
	in := `{
		"type": "custom",
		"label": "yes",
		"animated": true,
		"style": {"stroke": "#6366f1", "strokeWidth": 2},
		"markerEnd": "url(#edge-arrow)",
		"hasEndArrow": true,
		"zIndex": 4,
		"selected": false
	}`

	var meta models.EdgeMetadata
	require.NoError(t, json.Unmarshal([]byte(in), &meta))
	assert.Equal(t, "custom", meta.Type)
	assert.Equal(t, "yes", meta.Label)
	assert.True(t, meta.Animated)
	assert.True(t, meta.HasEndArrow)
	require.NotNil(t, meta.MarkerEnd)
	assert.Equal(t, "url(#edge-arrow)", meta.MarkerEnd.Ref)
	assert.Len(t, meta.Extra, 2)

	out, err := json.Marshal(meta)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestEdgeMetadataDropsReservedKeys(t *testing.T) {
	var meta models.EdgeMetadata
	require.NoError(t, json.Unmarshal([]byte(`{"id":"e9","source":"x","target":"y","label":"l"}`), &meta))
	assert.Empty(t, meta.Extra)

	meta.Extra = map[string]json.RawMessage{
		"source": json.RawMessage(`"x"`),
		"label":  json.RawMessage(`"shadowed"`),
	}
	out, err := json.Marshal(meta)
	require.NoError(t, err)
	assert.JSONEq(t, `{"label":"l"}`, string(out))
}

func TestShapeTypeSize(t *testing.T) {
	tests := []struct {
		shape  models.ShapeType
		width  float64
		height float64
	}{
		{models.ShapeRectangle, 150, 50},
		{models.ShapeDiamond, 150, 50},
		{models.ShapeCircle, 150, 50},
		{models.ShapeSticky, 150, 100},
	}

	for _, tc := range tests {
		t.Run(string(tc.shape), func(t *testing.T) {
			assert.True(t, tc.shape.Valid())
			w, h := tc.shape.Size()
			assert.Equal(t, tc.width, w)
			assert.Equal(t, tc.height, h)
		})
	}

	assert.False(t, models.ShapeType("hexagon").Valid())
}
