package viewer

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"boardview/internal/boards"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// gate holds a BoardBySlug call until released
type gate struct {
	entered chan struct{}
	release chan struct{}
}

func newGate() *gate {
	return &gate{entered: make(chan struct{}), release: make(chan struct{})}
}

// fakeSource is an in-memory Source with per-query failure switches
type fakeSource struct {
	mu         sync.Mutex
	boards     []boards.Board
	categories map[string][]boards.Category
	cards      map[string][]boards.Card
	gates      map[string]*gate
	calls      []string

	errBoards     error
	errBySlug     error
	errCategories error
	errCards      error
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		categories: map[string][]boards.Category{},
		cards:      map[string][]boards.Card{},
		gates:      map[string]*gate{},
	}
}

func (f *fakeSource) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeSource) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeSource) ListBoards(ctx context.Context) ([]boards.Board, error) {
	f.record("boards")
	if f.errBoards != nil {
		return nil, f.errBoards
	}
	return f.boards, nil
}

func (f *fakeSource) BoardBySlug(ctx context.Context, slug string) (*boards.Board, error) {
	f.record("board:" + slug)
	f.mu.Lock()
	g := f.gates[slug]
	f.mu.Unlock()
	if g != nil {
		close(g.entered)
		<-g.release
	}

	if f.errBySlug != nil {
		return nil, f.errBySlug
	}
	for _, b := range f.boards {
		if b.Slug == slug {
			b := b
			return &b, nil
		}
	}
	return nil, boards.ErrBoardNotFound
}

func (f *fakeSource) Categories(ctx context.Context, boardID string) ([]boards.Category, error) {
	f.record("categories:" + boardID)
	if f.errCategories != nil {
		return nil, f.errCategories
	}
	return f.categories[boardID], nil
}

func (f *fakeSource) Cards(ctx context.Context, boardID string) ([]boards.Card, error) {
	f.record("cards:" + boardID)
	if f.errCards != nil {
		return nil, f.errCards
	}
	return f.cards[boardID], nil
}

// demoSource holds the "demo" board with two categories and three cards
func demoSource() *fakeSource {
	f := newFakeSource()
	f.boards = []boards.Board{
		{ID: "b-demo", Title: "Demo", Slug: "demo", BackgroundURL: "img.png"},
		{ID: "b-plain", Title: "Plain", Slug: "plain"},
	}
	f.categories["b-demo"] = []boards.Category{
		{ID: "1", BoardID: "b-demo", Title: "A", OrderIndex: 0},
		{ID: "2", BoardID: "b-demo", Title: "B", OrderIndex: 1},
	}
	f.cards["b-demo"] = []boards.Card{
		{ID: "10", BoardID: "b-demo", CategoryID: "1", Title: "ten", OrderIndex: 0},
		{ID: "11", BoardID: "b-demo", CategoryID: "2", Title: "eleven", OrderIndex: 1},
		{ID: "12", BoardID: "b-demo", Title: "twelve", OrderIndex: 2},
	}
	return f
}

func cardIDs(cards []boards.Card) []string {
	ids := make([]string, 0, len(cards))
	for _, c := range cards {
		ids = append(ids, c.ID)
	}
	return ids
}
