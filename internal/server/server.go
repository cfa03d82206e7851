// Package server implements the read-only document preview server behind
// `canvas serve`. It exposes the parsed document as JSON, a rendered SVG,
// and a minimal HTML page embedding the SVG, so a document can be eyeballed
// in a browser without a desktop app.
package server

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/careless-canvas/canvasnml/pkg/cache"
	"github.com/careless-canvas/canvasnml/pkg/canvas"
	"github.com/careless-canvas/canvasnml/pkg/nml"
	"github.com/careless-canvas/canvasnml/pkg/render"
)

// Server serves a single canvas document read-only.
type Server struct {
	store  *canvas.Store
	title  string
	cache  cache.Cache
	logger *log.Logger
}

// New creates a preview server for the given store. The cache may be a
// NullCache; title is shown on the HTML page.
func New(store *canvas.Store, title string, c cache.Cache, logger *log.Logger) *Server {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Server{store: store, title: title, cache: c, logger: logger}
}

// Handler builds the HTTP routing table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/document", s.handleDocument)
	r.Get("/render.svg", s.handleSVG)
	r.Get("/pages/{pageID}", s.handlePage)
	r.Get("/health", s.handleHealth)
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDocument returns the full document as JSON.
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	doc := nml.FromSnapshot(s.store.Snapshot(), time.Now())
	s.respondJSON(w, http.StatusOK, documentPayload(doc))
}

// handlePage returns a single page as JSON.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "pageID")
	p, ok := s.store.Page(id)
	if !ok {
		s.respondError(w, http.StatusNotFound, fmt.Sprintf("no page with id %q", id))
		return
	}
	s.respondJSON(w, http.StatusOK, pagePayload(&p))
}

// handleSVG renders the document and returns the SVG, caching by content.
func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	snap := s.store.Snapshot()

	dot := render.ToDOT(snap, render.Options{Detailed: r.URL.Query().Get("detailed") == "true"})
	key := cache.RenderKey(cache.Hash([]byte(dot)), "svg")

	if data, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		s.writeSVG(w, data)
		return
	}

	svg, err := render.SVG(ctx, dot)
	if err != nil {
		s.logger.Error("render failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "render failed")
		return
	}
	if err := s.cache.Set(ctx, key, svg, cache.DefaultTTL); err != nil {
		s.logger.Warn("cache write failed", "error", err)
	}
	s.writeSVG(w, svg)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	title := html.EscapeString(s.title)
	fmt.Fprintf(w, indexHTML, title, title, len(snap.Pages), len(snap.Connections))
}

// =============================================================================
// Payloads and helpers
// =============================================================================

type pageJSON struct {
	ID      string    `json:"id"`
	X       float64   `json:"x"`
	Y       float64   `json:"y"`
	Width   float64   `json:"width"`
	Height  float64   `json:"height"`
	Color   string    `json:"color"`
	Title   string    `json:"title,omitempty"`
	Content string    `json:"content"`
	Tags    []string  `json:"tags"`
	Created time.Time `json:"created"`
}

type linkJSON struct {
	ID    string `json:"id"`
	From  string `json:"from"`
	To    string `json:"to"`
	Type  string `json:"type"`
	Label string `json:"label,omitempty"`
}

type documentJSON struct {
	Version string         `json:"version"`
	Title   string         `json:"title"`
	Author  string         `json:"author,omitempty"`
	Tags    []string       `json:"tags"`
	Created time.Time      `json:"created"`
	View    canvas.View    `json:"view"`
	Pages   []pageJSON     `json:"pages"`
	Links   []linkJSON     `json:"links"`
}

func documentPayload(doc nml.Document) documentJSON {
	out := documentJSON{
		Version: doc.Version,
		Title:   doc.Meta.Title,
		Author:  doc.Meta.Author,
		Tags:    doc.Meta.Tags,
		Created: doc.Meta.Created,
		View:    doc.Canvas,
		Pages:   make([]pageJSON, 0, len(doc.Pages)),
		Links:   make([]linkJSON, 0, len(doc.Links)),
	}
	for i := range doc.Pages {
		out.Pages = append(out.Pages, pagePayload(&doc.Pages[i]))
	}
	for _, l := range doc.Links {
		out.Links = append(out.Links, linkJSON{
			ID: l.ID, From: l.From, To: l.To, Type: string(l.Type), Label: l.Label,
		})
	}
	return out
}

func pagePayload(p *canvas.Page) pageJSON {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return pageJSON{
		ID: p.ID, X: p.X, Y: p.Y, Width: p.Width, Height: p.Height,
		Color: string(p.Color), Title: p.Title, Content: p.Content,
		Tags: tags, Created: p.Created,
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) writeSVG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>%s</title>
  <style>
    body { font-family: sans-serif; margin: 2rem; color: #1f2937; }
    img { max-width: 100%%; border: 1px solid #e5e7eb; border-radius: 8px; }
    .stats { color: #6b7280; margin-bottom: 1rem; }
  </style>
</head>
<body>
  <h1>%s</h1>
  <p class="stats">%d pages, %d links</p>
  <img src="/render.svg" alt="canvas">
</body>
</html>
`
