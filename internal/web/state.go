package web

import (
	"net/url"
	"strconv"

	"github.com/arcanaland/deckview/internal/interact"
)

const (
	paramFilter = "filter"
	paramView   = "view"
	paramCard   = "card"
	paramEvent  = "event"
)

// Decode rebuilds the interaction state from a request query and applies the
// event it carries. Cards outside [0, n) never open the modal.
func Decode(q url.Values, n int) interact.State {
	s := interact.Initial()

	if f := q.Get(paramFilter); f != "" {
		s = s.SelectFilter(interact.Filter(f))
	}
	if v := q.Get(paramView); v != "" {
		s = s.SelectView(interact.View(v))
	}
	if raw := q.Get(paramCard); raw != "" {
		if i, err := strconv.Atoi(raw); err == nil && i < n {
			s = s.OpenCard(i)
		}
	}
	if e := q.Get(paramEvent); e != "" {
		s = s.Dismiss(interact.Event(e))
	}

	return s
}

// Encode writes the state as query parameters, leaving defaults out
func Encode(s interact.State) url.Values {
	q := url.Values{}
	if s.Filter != interact.FilterAll {
		q.Set(paramFilter, string(s.Filter))
	}
	if s.View != interact.Grid {
		q.Set(paramView, string(s.View))
	}
	if s.Modal.Open {
		q.Set(paramCard, strconv.Itoa(s.Modal.Card))
	}
	return q
}

// Linker renders transitions from a state as relative links
type Linker struct {
	State interact.State
	Base  string
}

func (l Linker) Filter(f interact.Filter) string {
	return l.link(l.State.SelectFilter(f), "")
}

func (l Linker) View(v interact.View) string {
	return l.link(l.State.SelectView(v), "")
}

func (l Linker) Open(i int) string {
	return l.link(l.State.OpenCard(i), "")
}

// Dismiss links to the current state with the event attached, so the
// transition is applied by the next request
func (l Linker) Dismiss(e interact.Event) string {
	return l.link(l.State, e)
}

func (l Linker) link(s interact.State, e interact.Event) string {
	q := Encode(s)
	if e != "" {
		q.Set(paramEvent, string(e))
	}
	base := l.Base
	if base == "" {
		base = "/"
	}
	if len(q) == 0 {
		return base
	}
	return base + "?" + q.Encode()
}

// Snapshot links every control to the page itself. Exported files use it,
// since a file opened from disk has no server to apply a transition.
type Snapshot struct{}

func (Snapshot) Filter(interact.Filter) string { return "#" }
func (Snapshot) View(interact.View) string     { return "#" }
func (Snapshot) Open(int) string               { return "#" }
func (Snapshot) Dismiss(interact.Event) string { return "#" }
