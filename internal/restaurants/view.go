package restaurants

import "strings"

// Selection is the current category filter. The zero value selects All.
type Selection struct {
	category Category
}

// NewSelection returns the initial selection.
func NewSelection() Selection {
	return Selection{category: All}
}

// Category returns the selected label.
func (s Selection) Category() Category {
	if s.category == "" {
		return All
	}
	return s.category
}

// Action is an input to Transition.
type Action struct {
	Label Category
}

// Select is the action emitted by clicking the button labelled c.
func Select(c Category) Action {
	return Action{Label: c}
}

// Transition applies action to s. Only the fixed button labels are valid
// states; any other label leaves the selection unchanged.
func Transition(s Selection, action Action) Selection {
	label := action.Label
	if label == "" {
		return NewSelection()
	}
	for _, c := range Categories {
		if c == label {
			return Selection{category: c}
		}
	}
	return s
}

// ParseCategory normalizes a raw request value into a Category.
func ParseCategory(raw string) Category {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return All
	}
	return Category(raw)
}

// Button is a rendered category filter control.
type Button struct {
	Label  Category
	Active bool
}

// Buttons renders the fixed filter controls with the active flag for s.
func Buttons(s Selection) []Button {
	current := s.Category()
	out := make([]Button, 0, len(Categories))
	for _, c := range Categories {
		out = append(out, Button{Label: c, Active: c == current})
	}
	return out
}

// View is the result of one render pass.
type View struct {
	Selection Selection
	Grid      []Record
	Markers   []Marker
	Buttons   []Button
}

// Derive computes the grid, map markers and buttons for s. Nothing is cached
// between calls.
func Derive(records []Record, s Selection) View {
	grid := Filter(records, s.Category())
	return View{
		Selection: s,
		Grid:      grid,
		Markers:   Markers(grid),
		Buttons:   Buttons(s),
	}
}
