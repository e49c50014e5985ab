package web

import (
	"boardview/internal/boards"
	"boardview/internal/viewer"
	"boardview/views/models"
)

// --- View model converters ---

func boardViews(list []boards.Board) []models.BoardView {
	views := make([]models.BoardView, len(list))
	for i, b := range list {
		views[i] = models.BoardView{
			Slug:      b.Slug,
			Title:     b.Title,
			UpdatedAt: b.UpdatedAt,
		}
	}
	return views
}

func homeView(fr viewer.Frame) models.HomeView {
	return models.HomeView{
		Loading: fr.Loading,
		Query:   fr.Query,
		Boards:  boardViews(fr.FilteredBoards()),
	}
}

func (h *Handler) boardPageView(fr viewer.Frame) models.BoardPageView {
	v := models.BoardPageView{
		Slug:        fr.Route.Slug,
		Loading:     fr.Loading,
		NotFound:    fr.NotFound,
		AllSelected: fr.Filter == viewer.AllCategories,
		Background:  fr.Background,
	}
	if fr.Board != nil {
		v.Title = fr.Board.Title
	}

	v.Categories = make([]models.CategoryView, len(fr.Categories))
	for i, c := range fr.Categories {
		v.Categories[i] = models.CategoryView{
			ID:       c.ID,
			Title:    c.Title,
			Selected: c.ID == fr.Filter,
		}
	}

	cards := fr.FilteredCards()
	v.Cards = make([]models.CardView, len(cards))
	for i, c := range cards {
		v.Cards[i] = models.CardView{
			ID:              c.ID,
			Title:           c.Title,
			DescriptionHTML: h.md.Render(c.Description),
			ImageURL:        c.ImageURL,
			LinkURL:         c.LinkURL,
		}
	}
	return v
}
