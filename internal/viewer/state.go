package viewer

import (
	"strings"

	"boardview/internal/boards"
)

// AllCategories is the filter value that selects every card
const AllCategories = "all"

// State is the in-memory projection rendered for one browsing context.
//
// Slices are replaced wholesale on commit and never modified in place, so a
// copied State stays valid after later navigations.
type State struct {
	Route   Route
	Loading bool

	// Home view
	Boards []boards.Board
	Query  string

	// Board view. Board is nil while loading and when NotFound is set.
	Board      *boards.Board
	NotFound   bool
	Categories []boards.Category
	Cards      []boards.Card
	Filter     string
}

func newState(r Route) State {
	return State{Route: r, Loading: true, Filter: AllCategories}
}

// FilteredCards returns the cards selected by the current category filter.
// A filter naming an unknown category selects nothing.
func (s State) FilteredCards() []boards.Card {
	if s.Filter == AllCategories || s.Filter == "" {
		return s.Cards
	}
	var out []boards.Card
	for _, c := range s.Cards {
		if c.CategoryID == s.Filter {
			out = append(out, c)
		}
	}
	return out
}

// FilteredBoards returns the home boards matching the search query
func (s State) FilteredBoards() []boards.Board {
	q := strings.ToLower(strings.TrimSpace(s.Query))
	if q == "" {
		return s.Boards
	}
	var out []boards.Board
	for _, b := range s.Boards {
		if strings.Contains(strings.ToLower(b.Title+" "+b.Slug), q) {
			out = append(out, b)
		}
	}
	return out
}

// FilterTitle is the title of the selected category, or "" for all / unknown
func (s State) FilterTitle() string {
	for _, c := range s.Categories {
		if c.ID == s.Filter {
			return c.Title
		}
	}
	return ""
}

// State is the committed view for this result, with local filters reset
func (r Result) State() State {
	return State{
		Route:      r.Route,
		Boards:     r.Boards,
		Board:      r.Board,
		NotFound:   r.Route.Page == PageBoard && r.Board == nil,
		Categories: r.Categories,
		Cards:      r.Cards,
		Filter:     AllCategories,
	}
}
