package seo

import (
	"encoding/json"
	"strconv"
	"strings"

	"eatlocal.org/eatlocal-web/internal/restaurants"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Restaurant returns a schema.org Restaurant payload for a record.
func Restaurant(rec restaurants.Record) map[string]any {
	m := map[string]any{
		"@type": "Restaurant",
		"name":  rec.Title,
	}
	if rec.Website != "" {
		m["url"] = rec.Website
	}
	if rec.Phone != "" {
		m["telephone"] = rec.Phone
	}
	if rec.Tags != "" {
		m["servesCuisine"] = rec.Tags
	}
	if rec.Excerpt != "" {
		m["description"] = rec.Excerpt
	}
	if pos, ok := restaurants.ParseLocation(rec.Location); ok {
		lat, _ := strconv.ParseFloat(pos.Lat, 64)
		lng, _ := strconv.ParseFloat(pos.Lng, 64)
		m["geo"] = map[string]any{
			"@type":     "GeoCoordinates",
			"latitude":  lat,
			"longitude": lng,
		}
	}
	return m
}

// ItemList wraps records in a schema.org ItemList.
func ItemList(name string, records []restaurants.Record) map[string]any {
	el := make([]map[string]any, 0, len(records))
	for i, rec := range records {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"item":     Restaurant(rec),
		})
	}
	m := map[string]any{
		"@context":        "https://schema.org",
		"@type":           "ItemList",
		"itemListElement": el,
	}
	if name = strings.TrimSpace(name); name != "" {
		m["name"] = name
	}
	return m
}
