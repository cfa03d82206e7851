package nml

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/careless-canvas/canvasnml/pkg/canvas"
)

var t0 = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

var entityRe = regexp.MustCompile(`&(amp|lt|gt|quot|#39);`)

func TestMarshalSinglePage(t *testing.T) {
	doc := Document{
		Version: Version,
		Meta:    Meta{Title: "Test Board", Created: t0},
		Canvas:  canvas.DefaultView(),
		Pages: []canvas.Page{{
			ID: "page-1", X: 10, Y: 20, Width: 300, Height: 200,
			Color: canvas.ColorBlue, Content: "hello **world**",
			Tags: []string{"a", "b"}, Created: t0,
		}},
	}

	out := string(Marshal(doc))

	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<nml version="2.0">`,
		`<page id="page-1" x="10" y="20" width="300" height="200" color="blue" created="2025-06-01T10:00:00Z">`,
		`<content><![CDATA[hello **world**]]></content>`,
		`<tags>a,b</tags>`,
		`</nml>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}

	back, err := Unmarshal([]byte(out))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(back.Pages) != 1 {
		t.Fatalf("pages = %d, want 1", len(back.Pages))
	}
	got := back.Pages[0]
	orig := doc.Pages[0]
	if got.ID != orig.ID || got.X != orig.X || got.Y != orig.Y ||
		got.Width != orig.Width || got.Height != orig.Height ||
		got.Color != orig.Color || got.Content != orig.Content ||
		!got.Created.Equal(orig.Created) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, orig)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "a" || got.Tags[1] != "b" {
		t.Errorf("tags = %v, want [a b]", got.Tags)
	}
	if len(back.Links) != 0 {
		t.Errorf("links = %d, want 0", len(back.Links))
	}
}

func TestMarshalEscaping(t *testing.T) {
	title := `A & B <C> "D" 'E'`
	doc := Document{
		Meta:   Meta{Title: title, Created: t0},
		Canvas: canvas.DefaultView(),
	}

	out := string(Marshal(doc))

	if !strings.Contains(out, `title="A &amp; B &lt;C&gt; &quot;D&quot; &#39;E&#39;"`) {
		t.Errorf("title not escaped:\n%s", out)
	}

	// No XML-significant character may survive unescaped inside the
	// attribute value.
	start := strings.Index(out, `title="`) + len(`title="`)
	end := strings.Index(out[start:], `"`)
	attr := out[start : start+end]
	stripped := entityRe.ReplaceAllString(attr, "")
	if strings.ContainsAny(stripped, `&<>"'`) {
		t.Errorf("attribute contains unescaped characters outside entity references: %s", attr)
	}

	back, err := Unmarshal([]byte(out))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.Meta.Title != title {
		t.Errorf("title = %q, want %q", back.Meta.Title, title)
	}
}

func TestMarshalOmitsAbsentFields(t *testing.T) {
	doc := Document{
		Meta:   Meta{Title: "Minimal", Created: t0},
		Canvas: canvas.View{Zoom: 1, Grid: true}, // no theme
		Pages: []canvas.Page{{
			ID: "page-1", Width: 300, Height: 200,
			Color: canvas.ColorGray, Created: t0,
		}},
		Links: []canvas.Connection{{From: "page-1", To: "page-2", Type: canvas.ConnRelates}},
	}

	out := string(Marshal(doc))

	for _, absent := range []string{"author=", "tags=", "theme=", "label=", "<title>", "<tags>"} {
		if strings.Contains(out, absent) {
			t.Errorf("output should omit %q entirely:\n%s", absent, out)
		}
	}
}

func TestMarshalOptionalFieldsPresent(t *testing.T) {
	doc := Document{
		Meta:   Meta{Title: "Full", Created: t0, Author: "ada", Tags: []string{"x", "y"}},
		Canvas: canvas.View{Zoom: 2, CenterX: -5.5, CenterY: 3, Grid: false, Theme: canvas.ThemeDark},
		Pages: []canvas.Page{{
			ID: "page-1", Title: "Titled", Content: "c",
			Width: 300, Height: 200, Color: canvas.ColorRed, Created: t0,
		}},
		Links: []canvas.Connection{{From: "a", To: "b", Type: canvas.ConnSupports, Label: "evidence"}},
	}

	out := string(Marshal(doc))

	for _, want := range []string{
		`author="ada"`,
		`tags="x,y"`,
		`zoom="2" center-x="-5.5" center-y="3" grid="false" theme="dark"`,
		`<title>Titled</title>`,
		`<link from="a" to="b" type="supports" label="evidence" />`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMarshalCDATAGuard(t *testing.T) {
	doc := Document{
		Meta:   Meta{Title: "Guard", Created: t0},
		Canvas: canvas.DefaultView(),
		Pages: []canvas.Page{{
			ID: "page-1", Content: "before ]]> after",
			Width: 300, Height: 200, Color: canvas.ColorGray, Created: t0,
		}},
	}

	out := string(Marshal(doc))

	// The literal terminator must be split across CDATA sections so the
	// document stays well-formed.
	if strings.Contains(out, "before ]]> after") {
		t.Error("raw CDATA terminator leaked into output")
	}
	if !strings.Contains(out, "]]]]><![CDATA[>") {
		t.Errorf("terminator not split:\n%s", out)
	}

	back, err := Unmarshal([]byte(out))
	if err != nil {
		t.Fatalf("document with guarded CDATA failed to parse: %v", err)
	}
	if got := back.Pages[0].Content; got != "before ]]> after" {
		t.Errorf("content = %q, want original", got)
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Canvas Document", "canvas-document.nml"},
		{"  My   Big Idea ", "my-big-idea.nml"},
		{"", "canvas-document.nml"},
		{"single", "single.nml"},
	}

	for _, tt := range tests {
		if got := Filename(tt.title); got != tt.want {
			t.Errorf("Filename(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
