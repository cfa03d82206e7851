package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/careless-canvas/canvasnml/pkg/canvas"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PageListModel - Interactive page browsing
// =============================================================================

// PageListModel is the bubbletea model for browsing a document's pages.
// The left pane lists pages; enter toggles a detail view of the selected
// page with its content and links.
type PageListModel struct {
	Title    string
	Pages    []canvas.Page
	Links    []canvas.Connection
	Cursor   int
	Height   int
	Offset   int
	Detail   bool
	linksFor map[string][]canvas.Connection
}

// NewPageListModel creates a page list model for the given snapshot.
func NewPageListModel(title string, snap canvas.Snapshot) PageListModel {
	linksFor := make(map[string][]canvas.Connection)
	for _, l := range snap.Connections {
		linksFor[l.From] = append(linksFor[l.From], l)
		if l.To != l.From {
			linksFor[l.To] = append(linksFor[l.To], l)
		}
	}
	return PageListModel{
		Title:    title,
		Pages:    snap.Pages,
		Links:    snap.Connections,
		Height:   15,
		linksFor: linksFor,
	}
}

func (m PageListModel) Init() tea.Cmd {
	return nil
}

func (m PageListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.Detail {
				m.Detail = false
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if !m.Detail && m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if !m.Detail && m.Cursor < len(m.Pages)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Pages) > 0 {
				m.Detail = !m.Detail
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PageListModel) View() string {
	if m.Detail {
		return m.detailView()
	}
	return m.listView()
}

func (m PageListModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  q quit"))
	b.WriteString("\n\n")

	if len(m.Pages) == 0 {
		b.WriteString(listDimStyle.Render("  no pages"))
		return b.String()
	}

	end := m.Offset + m.Height
	if end > len(m.Pages) {
		end = len(m.Pages)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.Pages[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{
			cursor,
			p.ID,
			truncate(p.DisplayTitle(), 32),
			string(p.Color),
			fmt.Sprintf("%d", len(m.linksFor[p.ID])),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Title", "Color", "Links").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.Offset + row
			if actualIdx == m.Cursor {
				return listSelectedStyle
			}
			if col == 3 && actualIdx < len(m.Pages) {
				if style, ok := pageColorStyles[string(m.Pages[actualIdx].Color)]; ok {
					return style
				}
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Pages))))

	return b.String()
}

func (m PageListModel) detailView() string {
	p := m.Pages[m.Cursor]
	var b strings.Builder

	b.WriteString(StyleTitle.Render(p.DisplayTitle()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	meta := fmt.Sprintf("%s · %s · %g,%g", p.ID, renderPageColor(string(p.Color)), p.X, p.Y)
	if len(p.Tags) > 0 {
		meta += " · #" + strings.Join(p.Tags, " #")
	}
	b.WriteString(listDimStyle.Render(meta))
	b.WriteString("\n\n")

	content := p.Content
	if content == "" {
		content = listDimStyle.Render("(empty)")
	}
	b.WriteString(content)
	b.WriteString("\n")

	if links := m.linksFor[p.ID]; len(links) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleDim.Render(strings.Repeat("-", 40)))
		b.WriteString("\n")
		for _, l := range links {
			line := fmt.Sprintf("  %s %s %s (%s)", l.From, iconArrow, l.To, l.Type)
			if l.Label != "" {
				line += " " + listDimStyle.Render(l.Label)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	return b.String()
}
