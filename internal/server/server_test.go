package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/careless-canvas/canvasnml/pkg/cache"
	"github.com/careless-canvas/canvasnml/pkg/canvas"
)

func testServer(t *testing.T) (*Server, *canvas.Store) {
	t.Helper()
	store := canvas.NewStore()
	p1 := store.AddPage(10, 20, "Core claim")
	p2 := store.AddPage(400, 20, "Counterpoint")
	store.AddConnection(p2.ID, p1.ID, canvas.ConnContradicts, "")

	logger := log.New(io.Discard)
	return New(store, "Research & Notes", cache.NewNullCache(), logger), store
}

func TestHealth(t *testing.T) {
	s, _ := testServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestDocumentJSON(t *testing.T) {
	s, store := testServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/document", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var doc documentJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Version != "2.0" {
		t.Errorf("version = %q, want 2.0", doc.Version)
	}
	if len(doc.Pages) != store.PageCount() {
		t.Errorf("pages = %d, want %d", len(doc.Pages), store.PageCount())
	}
	if len(doc.Links) != 1 {
		t.Fatalf("links = %d, want 1", len(doc.Links))
	}
	if doc.Links[0].Type != "contradicts" {
		t.Errorf("link type = %q", doc.Links[0].Type)
	}
}

func TestPageEndpoint(t *testing.T) {
	s, store := testServer(t)
	pages := store.Pages()

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pages/"+pages[0].ID, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var p pageJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.ID != pages[0].ID {
		t.Errorf("id = %q, want %q", p.ID, pages[0].ID)
	}
	if p.Content != "Core claim" {
		t.Errorf("content = %q", p.Content)
	}
	if p.Tags == nil {
		t.Error("tags should encode as [] not null")
	}
}

func TestPageNotFound(t *testing.T) {
	s, _ := testServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pages/page-999", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "page-999") {
		t.Errorf("error body should name the id: %s", rec.Body.String())
	}
}

func TestIndexPage(t *testing.T) {
	s, _ := testServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Research &amp; Notes") {
		t.Errorf("title not escaped: %s", body)
	}
	if !strings.Contains(body, "2 pages, 1 links") {
		t.Errorf("stats missing: %s", body)
	}
	if !strings.Contains(body, "/render.svg") {
		t.Errorf("svg embed missing: %s", body)
	}
}

func TestRenderSVG(t *testing.T) {
	s, _ := testServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/render.svg", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "<svg") {
		t.Error("body is not SVG")
	}
}
