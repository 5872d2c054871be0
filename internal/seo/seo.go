package seo

// OpenGraph holds og:* tags.
type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
}

type Twitter struct {
	Card  string
	Site  string
	Image string
}

// Meta is everything rendered into the page head.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	OG          OpenGraph
	Twitter     Twitter
	// JSONLD holds schema.org payloads; each renders as its own script tag.
	JSONLD []map[string]any
}
