package web

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"boardview/internal/viewer"
)

const (
	sessionCookie = "boardview_session"
	// TabHeader carries a per-tab id so tabs sharing a cookie get their own view
	TabHeader = "X-Boardview-Tab"
)

type sessionEntry struct {
	sess *viewer.Session
	seen time.Time
}

// Sessions keeps one viewer.Session per browsing context, keyed by the tab
// header when the script sends one and by cookie otherwise
type Sessions struct {
	src viewer.Source
	log *slog.Logger
	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	items map[string]*sessionEntry
}

func NewSessions(src viewer.Source, log *slog.Logger, ttl time.Duration) *Sessions {
	return &Sessions{
		src:   src,
		log:   log,
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]*sessionEntry),
	}
}

// Get returns the caller's session. A tab id the store does not know yet
// starts a session under that id; a missing or expired cookie starts one
// under a fresh id and sets the cookie.
func (s *Sessions) Get(w http.ResponseWriter, r *http.Request) *viewer.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tab := r.Header.Get(TabHeader); tab != "" {
		if _, err := uuid.Parse(tab); err == nil {
			return s.lookup("tab:" + tab)
		}
	}

	if c, err := r.Cookie(sessionCookie); err == nil {
		if e, ok := s.items[c.Value]; ok {
			e.seen = s.now()
			return e.sess
		}
	}

	id := uuid.NewString()
	sess := s.lookup(id)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

// lookup returns the session under id, creating it if needed. s.mu must be held.
func (s *Sessions) lookup(id string) *viewer.Session {
	if e, ok := s.items[id]; ok {
		e.seen = s.now()
		return e.sess
	}
	e := &sessionEntry{sess: viewer.NewSession(s.src, s.log.With("session", id)), seen: s.now()}
	s.items[id] = e
	return e.sess
}

// Len is the number of live sessions
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Sweep closes and forgets sessions idle for longer than the TTL
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	var idle []*viewer.Session
	cutoff := s.now().Add(-s.ttl)
	for id, e := range s.items {
		if e.seen.Before(cutoff) {
			idle = append(idle, e.sess)
			delete(s.items, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range idle {
		sess.Close()
	}
	return len(idle)
}

// Run sweeps every interval until ctx is done, then closes all sessions
func (s *Sessions) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.closeAll()
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.log.Debug("evicted idle sessions", "count", n)
			}
		}
	}
}

func (s *Sessions) closeAll() {
	s.mu.Lock()
	items := s.items
	s.items = make(map[string]*sessionEntry)
	s.mu.Unlock()

	for _, e := range items {
		e.sess.Close()
	}
}
