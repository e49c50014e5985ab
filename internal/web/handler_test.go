package web

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardview/internal/boards"
	"boardview/internal/viewer"
)

// memSource is a fixed in-memory viewer.Source
type memSource struct {
	boards     []boards.Board
	categories []boards.Category
	cards      []boards.Card
}

func (m *memSource) ListBoards(ctx context.Context) ([]boards.Board, error) {
	return m.boards, nil
}

func (m *memSource) BoardBySlug(ctx context.Context, slug string) (*boards.Board, error) {
	for _, b := range m.boards {
		if b.Slug == slug {
			b := b
			return &b, nil
		}
	}
	return nil, boards.ErrBoardNotFound
}

func (m *memSource) Categories(ctx context.Context, boardID string) ([]boards.Category, error) {
	return m.categories, nil
}

func (m *memSource) Cards(ctx context.Context, boardID string) ([]boards.Card, error) {
	return m.cards, nil
}

func testSource() *memSource {
	t1 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	return &memSource{
		boards: []boards.Board{
			{ID: "bx", Title: "Board X", Slug: "x", UpdatedAt: t1},
			{ID: "demo", Title: "Demo", Slug: "demo", BackgroundURL: "img.png", UpdatedAt: t1.Add(time.Hour)},
		},
		categories: []boards.Category{
			{ID: "1", BoardID: "demo", Title: "A", OrderIndex: 0},
			{ID: "2", BoardID: "demo", Title: "B", OrderIndex: 1},
		},
		cards: []boards.Card{
			{ID: "10", BoardID: "demo", CategoryID: "1", Title: "Ten", Description: "**bold**", LinkURL: "https://example.com", OrderIndex: 0},
			{ID: "11", BoardID: "demo", CategoryID: "2", Title: "Eleven", OrderIndex: 1},
			{ID: "12", BoardID: "demo", Title: "Twelve", OrderIndex: 2},
		},
	}
}

func newTestMux() *http.ServeMux {
	mux, _ := newTestServer()
	return mux
}

func newTestServer() (*http.ServeMux, *Sessions) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	src := testSource()
	sessions := NewSessions(src, log, time.Hour)
	h := NewHandler(sessions, viewer.NewLoader(src, log), boards.NewMarkdown(), log)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/boards", h.ListBoards)
	mux.HandleFunc("GET /api/boards/{slug}", h.GetBoard)
	mux.HandleFunc("GET /fragments/view", h.ViewFragment)
	mux.HandleFunc("GET /fragments/filter", h.FilterFragment)
	mux.HandleFunc("GET /fragments/boards", h.BoardsFragment)
	mux.HandleFunc("GET /", h.Page)
	return mux, sessions
}

// browser replays the session cookie like a browsing context would, and the
// tab header when it has one
type browser struct {
	t      *testing.T
	mux    *http.ServeMux
	cookie *http.Cookie
	tab    string
}

func (b *browser) get(target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	if b.tab != "" {
		req.Header.Set(TabHeader, b.tab)
	}
	rec := httptest.NewRecorder()
	b.mux.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			b.cookie = c
		}
	}
	return rec
}

func TestAPI_ListBoards(t *testing.T) {
	mux := newTestMux()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/boards", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []boards.Board
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 2)
	assert.Equal(t, "demo", got[0].Slug, "newest first")

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/boards?q=nothing", nil))
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestAPI_GetBoard(t *testing.T) {
	mux := newTestMux()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/boards/demo?category=1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got boardResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "1", got.Filter)
	assert.Len(t, got.Categories, 2)
	require.Len(t, got.Cards, 1)
	assert.Equal(t, "10", got.Cards[0].ID)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/boards/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"board not found"}`, rec.Body.String())
}

func TestPage_Shell(t *testing.T) {
	b := &browser{t: t, mux: newTestMux()}

	rec := b.get("/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<div id="app">`)
	assert.NotNil(t, b.cookie, "page sets the session cookie")

	rec = b.get("/elsewhere")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFragments_NavigateFilterAndSearch(t *testing.T) {
	b := &browser{t: t, mux: newTestMux()}

	rec := b.get("/fragments/view?route=" + "%23%2F")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="#/b/demo"`)
	assert.Contains(t, rec.Body.String(), `href="#/b/x"`)

	rec = b.get("/fragments/boards?route=%23%2F&q=demo")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="#/b/demo"`)
	assert.NotContains(t, rec.Body.String(), `href="#/b/x"`)

	rec = b.get("/fragments/view?route=" + "%23%2Fb%2Fdemo")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Demo")
	assert.Contains(t, body, "Ten")
	assert.Contains(t, body, "Twelve")
	assert.Contains(t, body, "<strong>bold</strong>")
	assert.Contains(t, body, `data-background="img.png"`)

	rec = b.get("/fragments/filter?route=%23%2Fb%2Fdemo&category=2")
	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.Body.String()
	assert.Contains(t, body, "Eleven")
	assert.NotContains(t, body, "Ten")
	assert.Contains(t, body, `<button class="btn active" data-filter="2">B</button>`)

	rec = b.get("/fragments/boards?route=%23%2Fb%2Fdemo&q=demo")
	assert.Equal(t, http.StatusNoContent, rec.Code, "search is a home-only interaction")

	rec = b.get("/fragments/view?route=" + "%23%2Fb%2Fnope")
	assert.Contains(t, rec.Body.String(), "Board not found (or not published).")
	assert.Contains(t, rec.Body.String(), `data-background=""`)
}

func TestFragments_SessionsAreIndependent(t *testing.T) {
	mux := newTestMux()
	alice := &browser{t: t, mux: mux}
	bob := &browser{t: t, mux: mux}

	alice.get("/fragments/view?route=%23%2Fb%2Fdemo")
	bob.get("/fragments/view?route=%23%2F")

	rec := alice.get("/fragments/filter?route=%23%2Fb%2Fdemo&category=1")
	assert.Contains(t, rec.Body.String(), "Ten")
	assert.NotContains(t, rec.Body.String(), "Eleven")

	require.NotNil(t, alice.cookie)
	require.NotNil(t, bob.cookie)
	assert.NotEqual(t, alice.cookie.Value, bob.cookie.Value)
}

func TestFragments_FilterAppliesToCallerRoute(t *testing.T) {
	mux := newTestMux()
	boardTab := &browser{t: t, mux: mux}
	boardTab.get("/fragments/view?route=%23%2Fb%2Fdemo")
	require.NotNil(t, boardTab.cookie)

	// A second tab without a tab id shares the cookie and goes home
	homeTab := &browser{t: t, mux: mux, cookie: boardTab.cookie}
	homeTab.get("/fragments/view?route=%23%2F")

	rec := boardTab.get("/fragments/filter?route=%23%2Fb%2Fdemo&category=1")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Ten")
	assert.NotContains(t, body, "Eleven")
	assert.NotContains(t, body, "data-search", "home view never lands in the board tab")
}

func TestFragments_UnknownSessionRecoversCallerRoute(t *testing.T) {
	mux := newTestMux()
	b := &browser{t: t, mux: mux, cookie: &http.Cookie{Name: sessionCookie, Value: "evicted"}}

	rec := b.get("/fragments/filter?route=%23%2Fb%2Fdemo&category=1")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Ten")
	assert.NotContains(t, body, "Eleven")
	assert.NotContains(t, body, "Loading…")

	fresh := &browser{t: t, mux: mux}
	rec = fresh.get("/fragments/boards?route=%23%2F&q=demo")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="#/b/demo"`)
	assert.NotContains(t, rec.Body.String(), "Loading…")
}

func TestFragments_TabHeaderSeparatesTabs(t *testing.T) {
	mux, sessions := newTestServer()
	first := &browser{t: t, mux: mux}
	first.get("/")
	require.NotNil(t, first.cookie)

	a := &browser{t: t, mux: mux, cookie: first.cookie, tab: "6f1c1a52-3c7e-4d53-9a43-0d1f7f0b2b11"}
	b := &browser{t: t, mux: mux, cookie: first.cookie, tab: "0c5d7f2e-8a4b-4f3e-b1d2-6a9e0f3c4b22"}
	a.get("/fragments/view?route=%23%2Fb%2Fdemo")
	b.get("/fragments/view?route=%23%2F")
	assert.Equal(t, 3, sessions.Len(), "cookie session plus one per tab")

	rec := a.get("/fragments/filter?route=%23%2Fb%2Fdemo&category=2")
	assert.Contains(t, rec.Body.String(), `<button class="btn active" data-filter="2">B</button>`)

	rec = b.get("/fragments/boards?route=%23%2F&q=x")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="#/b/x"`)
	assert.NotContains(t, rec.Body.String(), `href="#/b/demo"`)
	assert.Equal(t, 3, sessions.Len())
}
