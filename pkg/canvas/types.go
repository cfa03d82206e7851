package canvas

import "time"

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Default page geometry applied when a page is created or when a document
// omits size attributes.
const (
	DefaultPageWidth  = 300
	DefaultPageHeight = 200
)

// PageColor is the display color of a page.
type PageColor string

// Page colors.
const (
	ColorRed    PageColor = "red"
	ColorBlue   PageColor = "blue"
	ColorGreen  PageColor = "green"
	ColorYellow PageColor = "yellow"
	ColorPurple PageColor = "purple"
	ColorGray   PageColor = "gray"
)

// ParsePageColor converts free text to a PageColor.
// Unrecognized or empty input yields ColorGray rather than an error so that
// hand-edited documents always load.
func ParsePageColor(s string) PageColor {
	switch PageColor(s) {
	case ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorPurple, ColorGray:
		return PageColor(s)
	default:
		return ColorGray
	}
}

// ConnectionType classifies the relationship a connection expresses.
type ConnectionType string

// Connection types.
const (
	ConnExplores    ConnectionType = "explores"
	ConnLeadsTo     ConnectionType = "leads-to"
	ConnRelates     ConnectionType = "relates"
	ConnContradicts ConnectionType = "contradicts"
	ConnSupports    ConnectionType = "supports"
	ConnQuestions   ConnectionType = "questions"
)

// ParseConnectionType converts free text to a ConnectionType.
// Unrecognized or empty input yields ConnRelates rather than an error.
func ParseConnectionType(s string) ConnectionType {
	switch ConnectionType(s) {
	case ConnExplores, ConnLeadsTo, ConnRelates, ConnContradicts, ConnSupports, ConnQuestions:
		return ConnectionType(s)
	default:
		return ConnRelates
	}
}

// Theme is the canvas display theme.
type Theme string

// Themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme converts free text to a Theme, defaulting to ThemeLight.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// =============================================================================
// Page - Positioned Markdown Note
// =============================================================================

// Page is a positioned, sized, colored markdown note - the primary content
// unit of a canvas document.
//
// Title is optional; the empty string means "no title" and is never
// persisted as an empty attribute. Created is set once when the page is
// added to a store and is never mutated afterwards.
type Page struct {
	ID      string
	X, Y    float64
	Width   float64
	Height  float64
	Color   PageColor
	Title   string // optional; empty means absent
	Content string // markdown text, may be empty
	Tags    []string
	Created time.Time
}

// HasTitle reports whether the page carries a title.
func (p *Page) HasTitle() bool { return p.Title != "" }

// DisplayTitle returns the title if set, otherwise the page ID.
func (p *Page) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}
	return p.ID
}

// =============================================================================
// Connection - Typed Directed Edge
// =============================================================================

// Connection is a directed, typed, optionally labeled edge between two pages.
// From and To should reference existing page ids, but the model does not
// enforce referential integrity: dangling references survive load and save.
type Connection struct {
	ID    string
	From  string
	To    string
	Type  ConnectionType
	Label string // optional; empty means absent
}

// References reports whether the connection touches the given page id.
func (c *Connection) References(pageID string) bool {
	return c.From == pageID || c.To == pageID
}

// =============================================================================
// View and Meta - Document-level State
// =============================================================================

// View is the persisted viewport state: zoom, pan center, grid visibility
// and theme. It is a UI preference carried in the document without semantic
// validation.
type View struct {
	Zoom    float64
	CenterX float64
	CenterY float64
	Grid    bool
	Theme   Theme
}

// DefaultView returns the view state of a fresh document.
func DefaultView() View {
	return View{Zoom: 1, Grid: true, Theme: ThemeLight}
}

// Meta is the project metadata describing the document as a whole.
type Meta struct {
	Name   string
	Author string
	Tags   []string
}
