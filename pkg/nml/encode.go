package nml

import (
	"bytes"
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
// Encoding API
// =============================================================================

// Marshal serializes a document to NML text.
// Pages and links are written in their slice order; optional fields (page
// title, page tags, link label, meta author and tags) are omitted entirely
// when absent so the deserializer can use attribute absence as the signal
// to apply a default.
func Marshal(d Document) []byte {
	var buf bytes.Buffer
	writeDocument(&buf, d)
	return buf.Bytes()
}

// Write serializes a document to w.
func Write(d Document, w io.Writer) error {
	_, err := w.Write(Marshal(d))
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write document")
	}
	return nil
}

// WriteFile serializes a document to a file at path.
// The file is created with 0644 permissions.
func WriteFile(d Document, path string) error {
	if err := os.WriteFile(path, Marshal(d), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}

// =============================================================================
// Internal Writer
// =============================================================================

func writeDocument(buf *bytes.Buffer, d Document) {
	version := d.Version
	if version == "" {
		version = Version
	}

	buf.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(buf, "<nml version=\"%s\">\n", escapeAttr(version))

	writeMeta(buf, d.Meta)
	writeCanvas(buf, d.Canvas)

	buf.WriteString("  <pages>\n")
	for _, p := range d.Pages {
		writePage(buf, p)
	}
	buf.WriteString("  </pages>\n")

	buf.WriteString("  <links>\n")
	for _, l := range d.Links {
		writeLink(buf, l)
	}
	buf.WriteString("  </links>\n")

	buf.WriteString("</nml>\n")
}

func writeMeta(buf *bytes.Buffer, m Meta) {
	title := m.Title
	if title == "" {
		title = DefaultTitle
	}
	fmt.Fprintf(buf, `  <meta title="%s" created="%s"`, escapeAttr(title), fmtTime(m.Created))
	if m.Author != "" {
		fmt.Fprintf(buf, ` author="%s"`, escapeAttr(m.Author))
	}
	if len(m.Tags) > 0 {
		fmt.Fprintf(buf, ` tags="%s"`, escapeAttr(joinTags(m.Tags)))
	}
	buf.WriteString(" />\n")
}

func writeCanvas(buf *bytes.Buffer, v canvas.View) {
	fmt.Fprintf(buf, `  <canvas zoom="%s" center-x="%s" center-y="%s" grid="%s"`,
		fmtFloat(v.Zoom), fmtFloat(v.CenterX), fmtFloat(v.CenterY), strconv.FormatBool(v.Grid))
	if v.Theme != "" {
		fmt.Fprintf(buf, ` theme="%s"`, escapeAttr(string(v.Theme)))
	}
	buf.WriteString(" />\n")
}

func writePage(buf *bytes.Buffer, p canvas.Page) {
	fmt.Fprintf(buf, "    <page id=\"%s\" x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\" color=\"%s\" created=\"%s\">\n",
		escapeAttr(p.ID),
		fmtFloat(p.X), fmtFloat(p.Y),
		fmtFloat(p.Width), fmtFloat(p.Height),
		escapeAttr(string(p.Color)),
		fmtTime(p.Created))

	if p.Title != "" {
		fmt.Fprintf(buf, "      <title>%s</title>\n", escapeAttr(p.Title))
	}

	// Content is CDATA-wrapped with no added whitespace so markdown
	// round-trips byte-for-byte.
	fmt.Fprintf(buf, "      <content><![CDATA[%s]]></content>\n", escapeCDATA(p.Content))

	if len(p.Tags) > 0 {
		fmt.Fprintf(buf, "      <tags>%s</tags>\n", escapeAttr(joinTags(p.Tags)))
	}

	buf.WriteString("    </page>\n")
}

func writeLink(buf *bytes.Buffer, l canvas.Connection) {
	typ := l.Type
	if typ == "" {
		typ = canvas.ConnRelates
	}
	fmt.Fprintf(buf, `    <link from="%s" to="%s" type="%s"`,
		escapeAttr(l.From), escapeAttr(l.To), escapeAttr(string(typ)))
	if l.Label != "" {
		fmt.Fprintf(buf, ` label="%s"`, escapeAttr(l.Label))
	}
	buf.WriteString(" />\n")
}

// =============================================================================
// Formatting Helpers
// =============================================================================

// escapeAttr escapes the five XML-significant characters with their named
// entities. Ampersand is replaced first so entities introduced by the other
// substitutions are never double-escaped.
func escapeAttr(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "'", "&#39;")
	return s
}

// escapeCDATA guards against the literal CDATA terminator inside content.
// The sequence "]]>" is split across two adjacent CDATA sections; XML
// parsers concatenate adjacent sections, so the original text survives a
// round trip.
func escapeCDATA(s string) string {
	return strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>")
}

// fmtFloat formats a float in the shortest representation that re-parses
// exactly ("10", not "10.000000").
func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// fmtTime formats a timestamp as sortable RFC 3339 UTC.
func fmtTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339)
}
