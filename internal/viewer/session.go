package viewer

import (
	"context"
	"log/slog"
	"sync"
)

// Session is the viewer state machine of one browsing context
type Session struct {
	ctl      *Controller
	backdrop *Backdrop

	mu      sync.Mutex
	release func()
	closed  bool
}

func NewSession(src Source, log *slog.Logger) *Session {
	s := &Session{backdrop: NewBackdrop("")}
	s.ctl = NewController(NewLoader(src, log), log, Hooks{
		Leave:   s.leave,
		Commit:  s.mount,
		Ambient: s.backdrop.Current,
	})
	return s
}

// Navigate resolves fragment and loads its view. The bool is false when a
// newer navigation superseded this one before its load finished.
func (s *Session) Navigate(ctx context.Context, fragment string) (Frame, bool) {
	return s.ctl.Navigate(ctx, Resolve(fragment))
}

// Sync makes sure the session shows fragment, navigating only when it is on
// another route, has never loaded, or is still loading. Requests that act on
// the view call it first so they never apply to a view the caller is not on.
func (s *Session) Sync(ctx context.Context, fragment string) (Frame, bool) {
	if fr, ok := s.ctl.Showing(Resolve(fragment)); ok {
		return fr, true
	}
	return s.Navigate(ctx, fragment)
}

func (s *Session) SetFilter(categoryID string) Frame {
	return s.ctl.SetFilter(categoryID)
}

func (s *Session) SetQuery(q string) Frame {
	return s.ctl.SetQuery(q)
}

func (s *Session) Frame() Frame {
	return s.ctl.Frame()
}

// Generation is the token of the session's latest navigation
func (s *Session) Generation() uint64 {
	return s.ctl.Generation()
}

// Close tears the session down, restoring the ambient background
func (s *Session) Close() {
	s.unmount()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// leave tears down a board view as soon as navigation heads elsewhere.
// Board-to-board keeps the old background until the new board commits.
func (s *Session) leave(_, to Route) {
	if to.Page != PageBoard {
		s.unmount()
	}
}

// mount swaps the background for the committed view
func (s *Session) mount(st State) {
	s.unmount()
	if st.Board == nil || st.Board.BackgroundURL == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.release = s.backdrop.Apply(st.Board.BackgroundURL)
}

func (s *Session) unmount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.release != nil {
		s.release()
		s.release = nil
	}
}
