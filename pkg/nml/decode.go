package nml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/careless-canvas/canvasnml/pkg/canvas"
	"github.com/careless-canvas/canvasnml/pkg/errors"
)

// =============================================================================
// Decoding API
// =============================================================================

// Unmarshal parses NML text into a document.
//
// Two failures are hard errors: markup that is not well-formed XML
// (ErrCodeParse) and well-formed markup whose root element is not <nml>
// (ErrCodeNotNML). Everything else is lenient per the package rules; see
// the package documentation. The returned document never aliases data:
// the caller may hand it to [canvas.Store.Restore] directly.
func Unmarshal(data []byte) (Document, error) {
	return decode(xml.NewDecoder(bytes.NewReader(data)))
}

// Read parses an NML document from r.
func Read(r io.Reader) (Document, error) {
	return decode(xml.NewDecoder(r))
}

// ReadFile parses the NML document at path.
func ReadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "no such document: %s", path)
		}
		return Document{}, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()
	return Read(f)
}

// =============================================================================
// Wire Form
// =============================================================================

// The wire structs keep every attribute as a string so field-level
// conversion stays lenient: unparsable numbers fall back to defaults
// instead of failing the whole document.

type xmlText struct {
	Text string `xml:",chardata"`
}

type xmlDocument struct {
	Version string     `xml:"version,attr"`
	Meta    *xmlMeta   `xml:"meta"`
	Canvas  *xmlCanvas `xml:"canvas"`
	Pages   []xmlPage  `xml:"pages>page"`
	Links   []xmlLink  `xml:"links>link"`
}

type xmlMeta struct {
	Title   string `xml:"title,attr"`
	Created string `xml:"created,attr"`
	Author  string `xml:"author,attr"`
	Tags    string `xml:"tags,attr"`
}

type xmlCanvas struct {
	Zoom    string `xml:"zoom,attr"`
	CenterX string `xml:"center-x,attr"`
	CenterY string `xml:"center-y,attr"`
	Grid    string `xml:"grid,attr"`
	Theme   string `xml:"theme,attr"`
}

type xmlPage struct {
	ID      string   `xml:"id,attr"`
	X       string   `xml:"x,attr"`
	Y       string   `xml:"y,attr"`
	Width   string   `xml:"width,attr"`
	Height  string   `xml:"height,attr"`
	Color   string   `xml:"color,attr"`
	Created string   `xml:"created,attr"`
	Title   *xmlText `xml:"title"`
	Content *xmlText `xml:"content"`
	Tags    *xmlText `xml:"tags"`
}

type xmlLink struct {
	From  string `xml:"from,attr"`
	To    string `xml:"to,attr"`
	Type  string `xml:"type,attr"`
	Label string `xml:"label,attr"`
}

// =============================================================================
// Internal Decoder
// =============================================================================

func decode(dec *xml.Decoder) (Document, error) {
	// Scan for the root element ourselves so "malformed markup" and
	// "well-formed but not NML" surface as distinct errors.
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return Document{}, errors.New(errors.ErrCodeNotNML, "not an NML document: missing <nml> root element")
		}
		if err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeParse, err, "invalid XML")
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "nml" {
			return Document{}, errors.New(errors.ErrCodeNotNML, "not an NML document: root element is <%s>", start.Name.Local)
		}

		var wire xmlDocument
		if err := dec.DecodeElement(&wire, &start); err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeParse, err, "invalid XML")
		}
		return fromWire(wire), nil
	}
}

func fromWire(wire xmlDocument) Document {
	d := Document{
		Version: wire.Version,
		Canvas:  canvas.DefaultView(),
	}
	if d.Version == "" {
		d.Version = Version
	}

	d.Meta = metaFromWire(wire.Meta)
	if wire.Canvas != nil {
		d.Canvas = canvasFromWire(*wire.Canvas)
	}

	d.Pages = make([]canvas.Page, 0, len(wire.Pages))
	for _, wp := range wire.Pages {
		if p, ok := pageFromWire(wp); ok {
			d.Pages = append(d.Pages, p)
		}
	}

	d.Links = make([]canvas.Connection, 0, len(wire.Links))
	for _, wl := range wire.Links {
		if l, ok := linkFromWire(wl, len(d.Links)+1); ok {
			d.Links = append(d.Links, l)
		}
	}
	return d
}

func metaFromWire(wm *xmlMeta) Meta {
	m := Meta{Title: DefaultImportTitle, Created: time.Now().UTC()}
	if wm == nil {
		return m
	}
	if wm.Title != "" {
		m.Title = wm.Title
	}
	m.Created = parseTime(wm.Created, m.Created)
	m.Author = wm.Author
	if wm.Tags != "" {
		m.Tags = splitTags(wm.Tags)
	}
	return m
}

func canvasFromWire(wc xmlCanvas) canvas.View {
	def := canvas.DefaultView()
	v := canvas.View{
		Zoom:    parseFloat(wc.Zoom, def.Zoom),
		CenterX: parseFloat(wc.CenterX, 0),
		CenterY: parseFloat(wc.CenterY, 0),
		Grid:    parseBool(wc.Grid, def.Grid),
		Theme:   canvas.ParseTheme(wc.Theme),
	}
	if v.Zoom <= 0 {
		v.Zoom = def.Zoom
	}
	return v
}

// pageFromWire converts one <page> element. A page missing its id or its
// <content> block is skipped, not an error: defined leniency, matching the
// format's tolerance for partially-authored files.
func pageFromWire(wp xmlPage) (canvas.Page, bool) {
	if wp.ID == "" || wp.Content == nil {
		return canvas.Page{}, false
	}

	p := canvas.Page{
		ID:      wp.ID,
		X:       parseFloat(wp.X, 0),
		Y:       parseFloat(wp.Y, 0),
		Width:   parseFloat(wp.Width, canvas.DefaultPageWidth),
		Height:  parseFloat(wp.Height, canvas.DefaultPageHeight),
		Color:   canvas.ParsePageColor(wp.Color),
		Content: wp.Content.Text,
		Tags:    []string{},
		Created: parseTime(wp.Created, time.Now().UTC()),
	}
	if wp.Title != nil {
		p.Title = wp.Title.Text
	}
	if wp.Tags != nil {
		p.Tags = splitTags(wp.Tags.Text)
	}
	return p, true
}

// linkFromWire converts one <link> element. Links missing either endpoint
// are skipped. Ids are synthesized sequentially since the format does not
// persist them; n is 1-based over the accepted links in document order.
// Endpoints are not validated against the page set.
func linkFromWire(wl xmlLink, n int) (canvas.Connection, bool) {
	if wl.From == "" || wl.To == "" {
		return canvas.Connection{}, false
	}
	return canvas.Connection{
		ID:    fmt.Sprintf("connection-%d", n),
		From:  wl.From,
		To:    wl.To,
		Type:  canvas.ParseConnectionType(wl.Type),
		Label: wl.Label,
	}, true
}

// =============================================================================
// Lenient Field Parsing
// =============================================================================

func parseFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return f
}

func parseBool(s string, def bool) bool {
	if s == "" {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return b
}

func parseTime(s string, def time.Time) time.Time {
	if s == "" {
		return def
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return t.UTC()
}
