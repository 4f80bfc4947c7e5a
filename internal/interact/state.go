// Package interact holds the page's interaction state: which category filter is
// active, which layout is shown and whether a card's detail view is open.
//
// Every transition is a pure function returning a new State. Binding to real
// input (links, keys, clicks) happens at the web boundary.
package interact

import "github.com/arcanaland/deckview/internal/catalog"

// Filter is either FilterAll or a category tag
type Filter string

const FilterAll Filter = "all"

// FilterFor returns the filter that selects one category
func FilterFor(c catalog.Category) Filter {
	return Filter(c)
}

// Valid reports whether f names "all" or a known category
func (f Filter) Valid() bool {
	return f == FilterAll || catalog.Category(f).Valid()
}

// Filters lists every filter control in display order
func Filters() []Filter {
	out := []Filter{FilterAll}
	for _, c := range catalog.Categories {
		out = append(out, FilterFor(c))
	}
	return out
}

// View is the layout of the tile container
type View string

const (
	Grid View = "grid"
	List View = "list"
)

// Views lists the view controls in display order
var Views = []View{Grid, List}

func (v View) Valid() bool {
	return v == Grid || v == List
}

// Event is an input that may dismiss the detail view
type Event string

const (
	CloseControl Event = "close"
	OutsideClick Event = "outside"
	EscapeKey    Event = "escape"
)

// Modal is the detail view state. Card indexes the render set.
type Modal struct {
	Open bool
	Card int
}

type State struct {
	Filter Filter
	View   View
	Modal  Modal
}

// Initial is the state a freshly loaded page starts in
func Initial() State {
	return State{Filter: FilterAll, View: Grid}
}

// SelectFilter activates a filter control. Unknown filters are ignored.
func (s State) SelectFilter(f Filter) State {
	if f.Valid() {
		s.Filter = f
	}
	return s
}

// SelectView activates a view control. Unknown views are ignored.
func (s State) SelectView(v View) State {
	if v.Valid() {
		s.View = v
	}
	return s
}

// OpenCard shows the detail view for the card at index i
func (s State) OpenCard(i int) State {
	if i < 0 {
		return s
	}
	s.Modal = Modal{Open: true, Card: i}
	return s
}

// Dismiss closes the detail view on close-control, outside-click or escape
func (s State) Dismiss(e Event) State {
	switch e {
	case CloseControl, OutsideClick, EscapeKey:
		s.Modal = Modal{}
	}
	return s
}

// Visible reports whether a tile of the given category is shown under the current filter
func (s State) Visible(c catalog.Category) bool {
	return s.Filter == FilterAll || s.Filter == FilterFor(c)
}

func (s State) FilterActive(f Filter) bool {
	return s.Filter == f
}

func (s State) ViewActive(v View) bool {
	return s.View == v
}
