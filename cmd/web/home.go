package main

import (
	"encoding/json"
	"net/http"

	"eatlocal.org/eatlocal-web/internal/handlers"
	mw "eatlocal.org/eatlocal-web/internal/middleware"
	"eatlocal.org/eatlocal-web/internal/restaurants"
)

// selectionFromRequest replays the button click carried in the query string
// against the initial selection. Labels outside the four buttons, including
// wrong-case ones like "local", leave it at All.
func selectionFromRequest(r *http.Request) restaurants.Selection {
	label := restaurants.ParseCategory(r.URL.Query().Get("category"))
	return restaurants.Transition(restaurants.NewSelection(), restaurants.Select(label))
}

func (s *server) derive(r *http.Request) (restaurants.View, error) {
	records, err := s.records.Records(r.Context())
	if err != nil {
		return restaurants.View{}, err
	}
	return restaurants.Derive(records, selectionFromRequest(r)), nil
}

func (s *server) site() handlers.Site {
	return handlers.Site{
		Title:       s.cfg.Site.Title,
		Description: s.cfg.Site.Description,
		URL:         s.cfg.Site.URL,
	}
}

func (s *server) mapSettings() handlers.MapSettings {
	return handlers.MapSettings{
		Center:      s.cfg.Map.Center,
		Zoom:        s.cfg.Map.Zoom,
		TileURL:     s.cfg.Map.TileURL,
		Attribution: s.cfg.Map.Attribution,
	}
}

// handleHome renders the full page, or only the restaurants fragment for htmx
// button clicks.
func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	view, err := s.derive(r)
	if err != nil {
		s.fail(w, r, "restaurants unavailable", err)
		return
	}
	analytics := handlers.Analytics{GA4MeasurementID: s.cfg.Analytics.GA4MeasurementID}
	vm := handlers.BuildHomeData(s.site(), s.mapSettings(), analytics, view)
	vm.Path = r.URL.Path

	if mw.IsHTMX(r.Context()) {
		s.render(w, r, "restaurants", vm)
		return
	}
	s.render(w, r, "base", vm)
}

// handleMarkers serves the map widget payload for the requested category.
func (s *server) handleMarkers(w http.ResponseWriter, r *http.Request) {
	view, err := s.derive(r)
	if err != nil {
		s.fail(w, r, "restaurants unavailable", err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(handlers.BuildMapData(s.mapSettings(), view.Markers))
}
