// Package restaurants holds the filtering and projection rules that turn the
// loaded restaurant records into the map and grid views.
package restaurants

// Category is a restaurant category label. The empty value and All both mean
// "no category restriction".
type Category string

// Fixed category labels rendered as filter buttons.
const (
	All           Category = "All"
	Local         Category = "Local"
	RegionalChain Category = "Regional Chain"
	NationalChain Category = "National Chain"
)

// Categories lists the filter buttons in display order.
var Categories = []Category{All, Local, RegionalChain, NationalChain}

// Record is one restaurant entry sourced from a content file.
type Record struct {
	ID       string
	Title    string
	Category Category
	Location string
	Tags     string
	Services string
	Website  string
	Phone    string

	// Body is the sanitized HTML rendered from the markdown body.
	Body string
	// Excerpt is a short plain-text summary of Body for cards.
	Excerpt string
	// Source is the content file path relative to the content directory.
	Source string
}

// Valid reports whether the record may appear in any view.
func (r Record) Valid() bool {
	return r.Title != ""
}

func isUnrestricted(c Category) bool {
	return c == "" || c == All
}
