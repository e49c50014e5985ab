package viewer

import "strings"

// Page identifies which view a Route selects
type Page int

const (
	PageHome Page = iota
	PageBoard
)

func (p Page) String() string {
	switch p {
	case PageBoard:
		return "board"
	default:
		return "home"
	}
}

// Route is the typed form of a location fragment.
// Slug is only set when Page is PageBoard.
type Route struct {
	Page Page
	Slug string
}

func HomeRoute() Route {
	return Route{Page: PageHome}
}

func BoardRoute(slug string) Route {
	return Route{Page: PageBoard, Slug: slug}
}

// Resolve maps a location fragment such as "#/b/demo" to a Route.
// Anything that is not a board fragment resolves to the home view.
func Resolve(fragment string) Route {
	path := strings.TrimPrefix(fragment, "#")

	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}

	if len(parts) >= 2 && parts[0] == "b" {
		return BoardRoute(parts[1])
	}
	return HomeRoute()
}

// Fragment is the canonical location fragment for the route
func (r Route) Fragment() string {
	if r.Page == PageBoard {
		return "#/b/" + r.Slug
	}
	return "#/"
}

func (r Route) String() string {
	return r.Fragment()
}
