package models

import "time"

// BoardView represents a board in the home list
type BoardView struct {
	Slug      string
	Title     string
	UpdatedAt time.Time
}

// CategoryView represents a category filter button
type CategoryView struct {
	ID       string
	Title    string
	Selected bool
}

// CardView represents a card for template rendering.
// DescriptionHTML is already rendered and sanitised markdown.
type CardView struct {
	ID              string
	Title           string
	DescriptionHTML string
	ImageURL        string
	LinkURL         string
}

// HomeView is the home page: the searchable list of published boards
type HomeView struct {
	Loading bool
	Query   string
	Boards  []BoardView
}

// BoardPageView is a single board with its category filter
type BoardPageView struct {
	Slug        string
	Loading     bool
	NotFound    bool
	Title       string
	AllSelected bool
	Categories  []CategoryView
	Cards       []CardView
	Background  string
}
