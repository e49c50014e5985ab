package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"boardview/internal/boards"
	"boardview/internal/viewer"
	"boardview/views/components"
	"boardview/views/pages"
)

type Handler struct {
	sessions *Sessions
	loader   *viewer.Loader
	md       *boards.Markdown
	log      *slog.Logger
}

func NewHandler(sessions *Sessions, loader *viewer.Loader, md *boards.Markdown, log *slog.Logger) *Handler {
	return &Handler{sessions: sessions, loader: loader, md: md, log: log}
}

// --- REST API Handlers ---

type boardResponse struct {
	Board      *boards.Board     `json:"board"`
	Filter     string            `json:"filter"`
	Categories []boards.Category `json:"categories"`
	Cards      []boards.Card     `json:"cards"`
}

// ListBoards handles GET /api/boards
func (h *Handler) ListBoards(w http.ResponseWriter, r *http.Request) {
	st := h.loader.Load(r.Context(), viewer.HomeRoute()).State()
	st.Query = r.URL.Query().Get("q")

	h.jsonResponse(w, orEmpty(st.FilteredBoards()), http.StatusOK)
}

// GetBoard handles GET /api/boards/{slug}
func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		h.jsonError(w, "board slug required", http.StatusBadRequest)
		return
	}

	st := h.loader.Load(r.Context(), viewer.BoardRoute(slug)).State()
	if st.NotFound {
		h.jsonError(w, "board not found", http.StatusNotFound)
		return
	}
	if cat := r.URL.Query().Get("category"); cat != "" {
		st.Filter = cat
	}

	h.jsonResponse(w, boardResponse{
		Board:      st.Board,
		Filter:     st.Filter,
		Categories: orEmpty(st.Categories),
		Cards:      orEmpty(st.FilteredCards()),
	}, http.StatusOK)
}

// --- Web UI Handlers ---

// Page handles GET /
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	h.sessions.Get(w, r)
	h.html(w, r, pages.Shell())
}

// ViewFragment handles GET /fragments/view: the fragment changed
func (h *Handler) ViewFragment(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)

	fr, current := sess.Navigate(r.Context(), r.URL.Query().Get("route"))
	if !current {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.html(w, r, h.view(fr))
}

// FilterFragment handles GET /fragments/filter. The route parameter names
// the view the filter was clicked on.
func (h *Handler) FilterFragment(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.synced(w, r)
	if !ok {
		return
	}
	h.html(w, r, h.view(sess.SetFilter(r.URL.Query().Get("category"))))
}

// BoardsFragment handles GET /fragments/boards: the home search changed
func (h *Handler) BoardsFragment(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.synced(w, r)
	if !ok {
		return
	}
	fr := sess.SetQuery(r.URL.Query().Get("q"))
	if fr.Route.Page != viewer.PageHome || fr.Loading {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.html(w, r, components.BoardList(boardViews(fr.FilteredBoards())))
}

// --- Helper methods ---

// synced returns the caller's session once it shows the route the request
// was made from. It answers 204 itself when a newer navigation won.
func (h *Handler) synced(w http.ResponseWriter, r *http.Request) (*viewer.Session, bool) {
	sess := h.sessions.Get(w, r)
	if _, current := sess.Sync(r.Context(), r.URL.Query().Get("route")); !current {
		w.WriteHeader(http.StatusNoContent)
		return nil, false
	}
	return sess, true
}

func (h *Handler) view(fr viewer.Frame) templ.Component {
	if fr.Route.Page == viewer.PageBoard {
		return pages.BoardPage(h.boardPageView(fr))
	}
	return pages.HomePage(homeView(fr))
}

func (h *Handler) html(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := c.Render(r.Context(), w); err != nil {
		h.log.Error("failed to render view", "path", r.URL.Path, "error", err)
	}
}

func (h *Handler) jsonResponse(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
