package viewer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"boardview/internal/boards"
)

// Result is the data fetched for one route
type Result struct {
	Route      Route
	Boards     []boards.Board
	Board      *boards.Board
	Categories []boards.Category
	Cards      []boards.Card
}

// Loader runs the query sequence for a route. Failed queries are logged and
// yield empty results; Load never fails.
type Loader struct {
	src Source
	log *slog.Logger
}

func NewLoader(src Source, log *slog.Logger) *Loader {
	return &Loader{src: src, log: log}
}

// Load fetches everything the view for r needs
func (l *Loader) Load(ctx context.Context, r Route) Result {
	if r.Page == PageBoard {
		return l.loadBoard(ctx, r)
	}
	return l.loadHome(ctx, r)
}

func (l *Loader) loadHome(ctx context.Context, r Route) Result {
	list, err := l.src.ListBoards(ctx)
	if err != nil {
		l.log.Error("failed to list boards", "error", err)
		return Result{Route: r}
	}

	// Sources may hand out a shared slice
	list = append([]boards.Board(nil), list...)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].UpdatedAt.After(list[j].UpdatedAt)
	})
	return Result{Route: r, Boards: list}
}

func (l *Loader) loadBoard(ctx context.Context, r Route) Result {
	board, err := l.src.BoardBySlug(ctx, r.Slug)
	if err != nil && !errors.Is(err, boards.ErrBoardNotFound) {
		// Rendered the same as a missing board
		l.log.Error("failed to find board", "slug", r.Slug, "error", err)
	}
	if err != nil || board == nil {
		return Result{Route: r}
	}

	// No shared cancellation: a failed query leaves only its own half empty
	var (
		categories []boards.Category
		cards      []boards.Card
		g          errgroup.Group
	)
	g.Go(func() error {
		list, err := l.src.Categories(ctx, board.ID)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		categories = ownedCategories(list, board.ID)
		return nil
	})
	g.Go(func() error {
		list, err := l.src.Cards(ctx, board.ID)
		if err != nil {
			return fmt.Errorf("list cards: %w", err)
		}
		cards = ownedCards(list, board.ID)
		return nil
	})
	if err := g.Wait(); err != nil {
		l.log.Error("failed to load board contents", "slug", r.Slug, "error", err)
	}

	return Result{Route: r, Board: board, Categories: categories, Cards: cards}
}

func ownedCategories(list []boards.Category, boardID string) []boards.Category {
	out := make([]boards.Category, 0, len(list))
	for _, c := range list {
		if c.BoardID == boardID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderIndex < out[j].OrderIndex
	})
	return out
}

func ownedCards(list []boards.Card, boardID string) []boards.Card {
	out := make([]boards.Card, 0, len(list))
	for _, c := range list {
		if c.BoardID == boardID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderIndex < out[j].OrderIndex
	})
	return out
}
