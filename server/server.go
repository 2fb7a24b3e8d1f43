// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package server hosts penpad exercises in a browser.
//
// The page renders nothing itself: it forwards pointer events over a
// websocket to a Pad owned by the connection, and shows the PNG frames the
// pad sends back. The exercise catalog and recommendations are served as
// JSON.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/text/language"

	"github.com/gogpu/penpad"
	"github.com/gogpu/penpad/catalog"
)

//go:embed static
var staticFiles embed.FS

// Server serves the exercise page, the catalog API and pad sessions.
type Server struct {
	catalog  *catalog.Catalog
	padOpts  []penpad.Option
	lang     language.Tag
	now      func() time.Time
	upgrader websocket.Upgrader
}

// Option configures a Server.
type Option func(*Server)

// WithPadOptions sets options applied to every pad the server creates.
// The downloader is always replaced by the websocket session.
func WithPadOptions(opts ...penpad.Option) Option {
	return func(s *Server) {
		s.padOpts = append(s.padOpts, opts...)
	}
}

// WithLanguage sets the label language used when a client does not ask for
// one.
func WithLanguage(tag language.Tag) Option {
	return func(s *Server) {
		s.lang = tag
	}
}

// WithClock sets the time source for the tip of the day.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a server for the catalog.
func New(c *catalog.Catalog, opts ...Option) *Server {
	s := &Server{
		catalog: c,
		lang:    language.Russian,
		now:     time.Now,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	static, _ := fs.Sub(staticFiles, "static")

	mux := http.NewServeMux()
	mux.Handle("GET /{$}", http.FileServerFS(static))
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))
	mux.HandleFunc("GET /api/catalog", s.handleCatalog)
	mux.HandleFunc("GET /api/recommendations", s.handleRecommendations)
	mux.HandleFunc("POST /api/exercises/{id}/toggle", s.handleToggle)
	mux.HandleFunc("GET /ws", s.handleSession)
	return withSecurityHeaders(mux)
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	penpad.Logger().Info("server: listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; img-src 'self' blob:; base-uri 'none'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}

// exerciseView is an exercise with its localized difficulty badge.
type exerciseView struct {
	catalog.Exercise
	DifficultyLabel string `json:"difficultyLabel"`
	Badge           string `json:"badge"`
}

type groupView struct {
	Category  string         `json:"category"`
	Exercises []exerciseView `json:"exercises"`
}

type catalogView struct {
	Groups   []groupView      `json:"groups"`
	Pending  []exerciseView   `json:"pending"`
	Progress catalog.Progress `json:"progress"`
	Done     bool             `json:"done"`
}

// requestLanguage picks the label language from the lang query parameter,
// then Accept-Language, then the server default.
func (s *Server) requestLanguage(r *http.Request) language.Tag {
	prefs := []string{r.URL.Query().Get("lang"), r.Header.Get("Accept-Language")}
	for _, p := range prefs {
		if p == "" {
			continue
		}
		return penpad.MatchLanguage(p)
	}
	return s.lang
}

func viewOf(ex catalog.Exercise, tag language.Tag) exerciseView {
	return exerciseView{
		Exercise:        ex,
		DifficultyLabel: ex.Difficulty.Label(tag),
		Badge:           ex.Difficulty.Badge(),
	}
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	tag := s.requestLanguage(r)
	v := catalogView{Progress: s.catalog.Progress()}
	v.Done = v.Progress.Done()
	for _, g := range s.catalog.ByCategory() {
		gv := groupView{Category: g.Category, Exercises: make([]exerciseView, 0, len(g.Exercises))}
		for _, ex := range g.Exercises {
			gv.Exercises = append(gv.Exercises, viewOf(ex, tag))
		}
		v.Groups = append(v.Groups, gv)
	}
	v.Pending = []exerciseView{}
	for _, ex := range s.catalog.Pending(2) {
		v.Pending = append(v.Pending, viewOf(ex, tag))
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Recommendations []catalog.Recommendation `json:"recommendations"`
		Tip             string                   `json:"tip"`
	}{s.catalog.Recommendations(), s.catalog.Tip(s.now())})
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	done, err := s.catalog.Toggle(id)
	if errors.Is(err, catalog.ErrUnknownExercise) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		ID        string           `json:"id"`
		Completed bool             `json:"completed"`
		Progress  catalog.Progress `json:"progress"`
	}{id, done, s.catalog.Progress()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		penpad.Logger().Warn("server: write response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, struct {
		Error string `json:"error"`
	}{err.Error()})
}
