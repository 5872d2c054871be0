package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eatlocal.org/eatlocal-web/internal/restaurants"
)

var testSettings = MapSettings{Center: [2]float64{35.05687, -89.692315}, Zoom: 12}

func TestBuildHomeDataEncodesMapPayload(t *testing.T) {
	records := []restaurants.Record{
		{ID: "1", Title: "A", Category: restaurants.Local, Location: "1, 2", Website: "https://a.example"},
		{ID: "2", Title: "B", Category: restaurants.Local},
	}
	view := restaurants.Derive(records, restaurants.NewSelection())
	data := BuildHomeData(Site{Title: "Eat Local", URL: "https://eats.example"}, testSettings, Analytics{}, view)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(data.MapJSON), &decoded))
	assert.Equal(t, []any{35.05687, -89.692315}, decoded["center"])
	assert.Equal(t, float64(12), decoded["zoom"])
	markers := decoded["markers"].([]any)
	require.Len(t, markers, 1)
	marker := markers[0].(map[string]any)
	assert.Equal(t, "1", marker["id"])
	assert.Equal(t, []any{"1", "2"}, marker["position"])

	assert.Equal(t, "https://eats.example/", data.SEO.Canonical)
	assert.Len(t, data.SEO.JSONLD, 1)
	assert.Equal(t, restaurants.All, data.Selected())
}

func TestBuildHomeDataEmptyMarkersEncodeAsArray(t *testing.T) {
	view := restaurants.Derive(nil, restaurants.NewSelection())
	data := BuildHomeData(Site{}, testSettings, Analytics{}, view)
	assert.Contains(t, data.MapJSON, `"markers":[]`)
	assert.Empty(t, data.SEO.JSONLD)
	assert.Empty(t, data.SEO.Canonical)
}

func TestCanonicalURLIncludesCategory(t *testing.T) {
	assert.Equal(t, "https://x.test/?category=Regional+Chain", canonicalURL("https://x.test", restaurants.RegionalChain))
}
