package restaurants

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		in     string
		want   Position
		wantOK bool
	}{
		{in: "35.0569, -89.6923", want: Position{Lat: "35.0569", Lng: "-89.6923"}, wantOK: true},
		{in: "  1 ,2  ", want: Position{Lat: "1", Lng: "2"}, wantOK: true},
		{in: "1,2,3", want: Position{Lat: "1", Lng: "2"}, wantOK: true},
		{in: "35.0569", wantOK: false},
		{in: "35.0569,", wantOK: false},
		{in: ",-89.6923", wantOK: false},
		{in: "north, west", wantOK: false},
		{in: "NaN, 1", wantOK: false},
		{in: "1, Inf", wantOK: false},
		{in: "", wantOK: false},
		{in: "0x1p4, 1", wantOK: false},
		{in: "1, 0X10", wantOK: false},
		{in: "1_0, 2", wantOK: false},
		{in: "+Inf, 2", wantOK: false},
		{in: "1e400, 2", wantOK: false},
		{in: ".5, -7.", want: Position{Lat: ".5", Lng: "-7."}, wantOK: true},
		{in: "3.5e1, +89", want: Position{Lat: "3.5e1", Lng: "+89"}, wantOK: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLocation(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProjectCopiesDisplayFields(t *testing.T) {
	rec := Record{
		ID:       "id-1",
		Title:    "Mesquite Chop House",
		Category: Local,
		Location: "35.0569, -89.6923",
		Tags:     "steak",
		Services: "dine-in, takeout",
		Website:  "https://example.com",
		Phone:    "901-555-0100",
	}
	m, ok := Project(rec)
	require.True(t, ok)
	assert.Equal(t, Marker{
		ID:       "id-1",
		Title:    "Mesquite Chop House",
		Services: "dine-in, takeout",
		Tags:     "steak",
		Website:  "https://example.com",
		Position: Position{Lat: "35.0569", Lng: "-89.6923"},
	}, m)
}

func TestMarkersSkipsMissingAndMalformedLocations(t *testing.T) {
	records := []Record{
		{ID: "1", Title: "A", Location: "1,2"},
		{ID: "2", Title: "B", Location: ""},
		{ID: "3", Title: "C", Location: "   "},
		{ID: "4", Title: "D", Location: "5"},
		{ID: "5", Title: "E", Location: "7, 8"},
	}
	got := Markers(records)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "5", got[1].ID)
	assert.Equal(t, Position{Lat: "7", Lng: "8"}, got[1].Position)
}

func TestHasLocation(t *testing.T) {
	assert.True(t, HasLocation(Record{Location: "1,2"}))
	assert.False(t, HasLocation(Record{}))
	assert.False(t, HasLocation(Record{Location: " \t"}))
}
