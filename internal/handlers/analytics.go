package handlers

// Analytics holds client instrumentation configuration surfaced to templates.
type Analytics struct {
	GA4MeasurementID string // e.g. G-XXXXXXXXXX
}

// Enabled reports whether any analytics snippet should be rendered.
func (a Analytics) Enabled() bool {
	return a.GA4MeasurementID != ""
}
