package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions_GetReusesCookie(t *testing.T) {
	s := NewSessions(testSource(), slog.New(slog.NewTextHandler(io.Discard, nil)), time.Minute)

	rec := httptest.NewRecorder()
	first := s.Get(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookie, cookies[0].Name)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	again := s.Get(rec, req)

	assert.Same(t, first, again)
	assert.Empty(t, rec.Result().Cookies(), "known session sets no new cookie")
	assert.Equal(t, 1, s.Len())
}

func TestSessions_UnknownCookieStartsNewSession(t *testing.T) {
	s := NewSessions(testSource(), slog.New(slog.NewTextHandler(io.Discard, nil)), time.Minute)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "stale"})
	rec := httptest.NewRecorder()
	s.Get(rec, req)

	require.Len(t, rec.Result().Cookies(), 1)
	assert.NotEqual(t, "stale", rec.Result().Cookies()[0].Value)
}

func TestSessions_SweepClosesIdle(t *testing.T) {
	s := NewSessions(testSource(), slog.New(slog.NewTextHandler(io.Discard, nil)), time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	sess := s.Get(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	fr, _ := sess.Navigate(context.Background(), "#/b/demo")
	require.Equal(t, "img.png", fr.Background)

	assert.Equal(t, 0, s.Sweep())

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, "", sess.Frame().Background, "evicted session released its background")
}

func TestSessions_RunClosesAllOnShutdown(t *testing.T) {
	s := NewSessions(testSource(), slog.New(slog.NewTextHandler(io.Discard, nil)), time.Minute)
	s.Get(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, time.Hour)
		close(done)
	}()
	cancel()
	<-done

	assert.Equal(t, 0, s.Len())
}

func TestSessions_TabHeader(t *testing.T) {
	s := NewSessions(testSource(), slog.New(slog.NewTextHandler(io.Discard, nil)), time.Minute)
	tab := "6f1c1a52-3c7e-4d53-9a43-0d1f7f0b2b11"

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TabHeader, tab)
	rec := httptest.NewRecorder()
	first := s.Get(rec, req)
	assert.Empty(t, rec.Result().Cookies(), "tab sessions need no cookie")

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TabHeader, tab)
	assert.Same(t, first, s.Get(httptest.NewRecorder(), req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TabHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	other := s.Get(rec, req)
	assert.NotSame(t, first, other)
	assert.Len(t, rec.Result().Cookies(), 1, "malformed tab id falls back to the cookie")
	assert.Equal(t, 2, s.Len())
}
