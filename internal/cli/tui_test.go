package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/careless-canvas/canvasnml/pkg/canvas"
)

func tuiSnapshot() canvas.Snapshot {
	return canvas.Snapshot{
		Pages: []canvas.Page{
			{ID: "page-1", Title: "First", Content: "alpha", Color: canvas.ColorBlue},
			{ID: "page-2", Title: "Second", Content: "beta", Color: canvas.ColorGreen, Tags: []string{"t"}},
			{ID: "page-3", Content: "gamma", Color: canvas.ColorGray},
		},
		Connections: []canvas.Connection{
			{ID: "c1", From: "page-1", To: "page-2", Type: canvas.ConnSupports, Label: "because"},
		},
	}
}

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{}
}

func TestPageListNavigation(t *testing.T) {
	m := NewPageListModel("Doc", tuiSnapshot())

	if m.Cursor != 0 {
		t.Fatalf("initial cursor = %d", m.Cursor)
	}

	next, _ := m.Update(keyMsg("down"))
	m = next.(PageListModel)
	if m.Cursor != 1 {
		t.Errorf("cursor after down = %d, want 1", m.Cursor)
	}

	next, _ = m.Update(keyMsg("j"))
	m = next.(PageListModel)
	if m.Cursor != 2 {
		t.Errorf("cursor after j = %d, want 2", m.Cursor)
	}

	// Cursor stops at the last page.
	next, _ = m.Update(keyMsg("down"))
	m = next.(PageListModel)
	if m.Cursor != 2 {
		t.Errorf("cursor past end = %d, want 2", m.Cursor)
	}

	next, _ = m.Update(keyMsg("up"))
	m = next.(PageListModel)
	if m.Cursor != 1 {
		t.Errorf("cursor after up = %d, want 1", m.Cursor)
	}
}

func TestPageListDetailToggle(t *testing.T) {
	m := NewPageListModel("Doc", tuiSnapshot())

	next, _ := m.Update(keyMsg("enter"))
	m = next.(PageListModel)
	if !m.Detail {
		t.Fatal("enter should open the detail view")
	}

	view := m.View()
	if !strings.Contains(view, "alpha") {
		t.Errorf("detail view missing content:\n%s", view)
	}
	if !strings.Contains(view, "because") {
		t.Errorf("detail view missing link label:\n%s", view)
	}

	next, _ = m.Update(keyMsg("esc"))
	m = next.(PageListModel)
	if m.Detail {
		t.Error("esc should close the detail view")
	}
}

func TestPageListQuit(t *testing.T) {
	m := NewPageListModel("Doc", tuiSnapshot())

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
}

func TestPageListView(t *testing.T) {
	m := NewPageListModel("My Notes", tuiSnapshot())
	view := m.View()

	if !strings.Contains(view, "My Notes") {
		t.Errorf("view missing title:\n%s", view)
	}
	if !strings.Contains(view, "page-1") {
		t.Errorf("view missing page ids:\n%s", view)
	}
	// Untitled pages show their id in the title column.
	if !strings.Contains(view, "page-3") {
		t.Errorf("view missing untitled page:\n%s", view)
	}
	if !strings.Contains(view, "[1/3]") {
		t.Errorf("view missing position indicator:\n%s", view)
	}
}

func TestPageListEmptyView(t *testing.T) {
	m := NewPageListModel("Empty", canvas.Snapshot{})
	view := m.View()

	if !strings.Contains(view, "no pages") {
		t.Errorf("empty view should say so:\n%s", view)
	}

	// Enter on an empty list must not panic or open a detail view.
	next, _ := m.Update(keyMsg("enter"))
	m = next.(PageListModel)
	if m.Detail {
		t.Error("detail view opened with no pages")
	}
}
