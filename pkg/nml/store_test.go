package nml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/careless-canvas/canvasnml/pkg/canvas"
)

func TestSaveLoadStore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.nml")

	src := canvas.NewStore()
	src.SetMeta(canvas.Meta{Name: "Trip Planning", Author: "ada", Tags: []string{"travel"}})
	a := src.AddPage(10, 20, "pack the **tent**")
	b := src.AddPage(400, 20, "")
	src.UpdatePage(b.ID, func(p *canvas.Page) {
		p.Title = "Budget"
		p.Tags = []string{"money"}
	})
	src.AddConnection(a.ID, b.ID, canvas.ConnLeadsTo, "then")
	src.SetZoom(1.25)
	src.SetTheme(canvas.ThemeDark)

	if err := SaveStore(src, path); err != nil {
		t.Fatalf("SaveStore: %v", err)
	}

	dst := canvas.NewStore()
	doc, err := LoadStore(dst, path)
	if err != nil {
		t.Fatalf("LoadStore: %v", err)
	}

	if doc.Meta.Title != "Trip Planning" {
		t.Errorf("title = %q", doc.Meta.Title)
	}
	if dst.PageCount() != 2 {
		t.Fatalf("pages = %d, want 2", dst.PageCount())
	}
	got, ok := dst.Page(a.ID)
	if !ok || got.Content != "pack the **tent**" {
		t.Errorf("page %s = %+v", a.ID, got)
	}
	conns := dst.Connections()
	if len(conns) != 1 || conns[0].From != a.ID || conns[0].To != b.ID || conns[0].Label != "then" {
		t.Errorf("connections = %+v", conns)
	}
	if v := dst.View(); v.Zoom != 1.25 || v.Theme != canvas.ThemeDark {
		t.Errorf("view = %+v", v)
	}
	if m := dst.Meta(); m.Author != "ada" || len(m.Tags) != 1 {
		t.Errorf("meta = %+v", m)
	}

	// Numbering resumes above the imported maximum.
	if p := dst.AddPage(0, 0, ""); p.ID != "page-3" {
		t.Errorf("next id = %s, want page-3", p.ID)
	}
}

func TestLoadStoreLeavesStoreOnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.nml")
	if err := os.WriteFile(path, []byte(`<nml version="2.0"><pages>`), 0644); err != nil {
		t.Fatal(err)
	}

	s := canvas.NewStore()
	s.AddPage(1, 2, "precious")

	if _, err := LoadStore(s, path); err == nil {
		t.Fatal("expected parse error")
	}

	// Failed load must leave existing state untouched.
	if s.PageCount() != 1 {
		t.Errorf("pages = %d, want 1", s.PageCount())
	}
	if p, _ := s.Page("page-1"); p.Content != "precious" {
		t.Errorf("page content = %q", p.Content)
	}
}

func TestLoadStoreMissingFile(t *testing.T) {
	s := canvas.NewStore()
	s.AddPage(0, 0, "keep")

	if _, err := LoadStore(s, filepath.Join(t.TempDir(), "absent.nml")); err == nil {
		t.Fatal("expected error")
	}
	if s.PageCount() != 1 {
		t.Error("store should be untouched after failed load")
	}
}
