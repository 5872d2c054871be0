package restaurants

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Position is a map coordinate pair kept in its source text form.
type Position struct {
	Lat string
	Lng string
}

// Marker describes one map pin.
type Marker struct {
	ID       string
	Title    string
	Services string
	Tags     string
	Website  string
	Position Position
}

// HasLocation reports whether the record carries any location text.
func HasLocation(r Record) bool {
	return strings.TrimSpace(r.Location) != ""
}

// ParseLocation splits "lat, lng" text into its two trimmed components.
// Segments past the second are ignored. It fails when fewer than two
// segments exist or either component is not a finite number.
func ParseLocation(text string) (Position, bool) {
	parts := strings.Split(text, ",")
	if len(parts) < 2 {
		return Position{}, false
	}
	pos := Position{
		Lat: strings.TrimSpace(parts[0]),
		Lng: strings.TrimSpace(parts[1]),
	}
	if !isCoordinate(pos.Lat) || !isCoordinate(pos.Lng) {
		return Position{}, false
	}
	return pos, true
}

// decimalPattern matches plain decimal numbers only. Hex floats are rejected
// because the browser's parseFloat reads them as 0.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

func isCoordinate(s string) bool {
	if !decimalPattern.MatchString(s) {
		return false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Project builds the marker for a record. A malformed location is treated
// the same as a missing one.
func Project(r Record) (Marker, bool) {
	pos, ok := ParseLocation(r.Location)
	if !ok {
		return Marker{}, false
	}
	return Marker{
		ID:       r.ID,
		Title:    r.Title,
		Services: r.Services,
		Tags:     r.Tags,
		Website:  r.Website,
		Position: pos,
	}, true
}

// Markers projects every record with a usable location, in input order.
func Markers(records []Record) []Marker {
	out := make([]Marker, 0, len(records))
	for _, rec := range records {
		if !HasLocation(rec) {
			continue
		}
		m, ok := Project(rec)
		if !ok {
			continue
		}
		out = append(out, m)
	}
	return out
}
