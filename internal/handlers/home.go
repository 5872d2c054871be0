// Package handlers builds the view models rendered by the page templates.
package handlers

import (
	"encoding/json"
	"net/url"

	"eatlocal.org/eatlocal-web/internal/restaurants"
	"eatlocal.org/eatlocal-web/internal/seo"
)

// Site carries site-level metadata.
type Site struct {
	Title       string
	Description string
	URL         string
}

// MapSettings is the initial viewport and tile source for the map widget.
type MapSettings struct {
	Center      [2]float64
	Zoom        int
	TileURL     string
	Attribution string
}

// MapData is the payload handed to the map widget: a center, a zoom level
// and the markers to place.
type MapData struct {
	Center      [2]float64   `json:"center"`
	Zoom        int          `json:"zoom"`
	TileURL     string       `json:"tileUrl,omitempty"`
	Attribution string       `json:"attribution,omitempty"`
	Markers     []MarkerData `json:"markers"`
}

// MarkerData is the wire form of restaurants.Marker.
type MarkerData struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Services string    `json:"services,omitempty"`
	Tags     string    `json:"tags,omitempty"`
	Website  string    `json:"website,omitempty"`
	Position [2]string `json:"position"`
}

// HomeData is the view model for the home page.
type HomeData struct {
	Title     string
	Lang      string
	Heading   string
	SEO       seo.Meta
	Analytics Analytics
	Path      string

	View restaurants.View
	Map  MapData
	// MapJSON is Map encoded for the widget's data attribute.
	MapJSON string
}

// Selected returns the active category label.
func (d HomeData) Selected() restaurants.Category {
	return d.View.Selection.Category()
}

// BuildMapData converts derived markers into the map widget payload.
func BuildMapData(settings MapSettings, markers []restaurants.Marker) MapData {
	out := MapData{
		Center:      settings.Center,
		Zoom:        settings.Zoom,
		TileURL:     settings.TileURL,
		Attribution: settings.Attribution,
		Markers:     make([]MarkerData, 0, len(markers)),
	}
	for _, m := range markers {
		out.Markers = append(out.Markers, MarkerData{
			ID:       m.ID,
			Title:    m.Title,
			Services: m.Services,
			Tags:     m.Tags,
			Website:  m.Website,
			Position: [2]string{m.Position.Lat, m.Position.Lng},
		})
	}
	return out
}

// BuildHomeData constructs the view model for one render pass.
func BuildHomeData(site Site, settings MapSettings, analytics Analytics, view restaurants.View) HomeData {
	mapData := BuildMapData(settings, view.Markers)
	raw, err := json.Marshal(mapData)
	if err != nil {
		raw = []byte(`{"markers":[]}`)
	}

	meta := seo.Meta{
		Title:       site.Title,
		Description: site.Description,
		Canonical:   canonicalURL(site.URL, view.Selection.Category()),
		OG: seo.OpenGraph{
			Title:       site.Title,
			Description: site.Description,
			Type:        "website",
		},
		Twitter: seo.Twitter{Card: "summary"},
	}
	meta.OG.URL = meta.Canonical
	if len(view.Grid) > 0 {
		meta.JSONLD = append(meta.JSONLD, seo.ItemList(site.Title, view.Grid))
	}

	return HomeData{
		Title:     site.Title,
		Lang:      "en",
		Heading:   "Restaurants:",
		SEO:       meta,
		Analytics: analytics,
		View:      view,
		Map:       mapData,
		MapJSON:   string(raw),
	}
}

func canonicalURL(base string, category restaurants.Category) string {
	if base == "" {
		return ""
	}
	if category == restaurants.All {
		return base + "/"
	}
	q := url.Values{}
	q.Set("category", string(category))
	return base + "/?" + q.Encode()
}
