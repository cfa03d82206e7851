package nml

import (
	"strings"
	"time"

	"github.com/careless-canvas/canvasnml/pkg/canvas"
)

// Version is the schema version written by Marshal. Unmarshal accepts any
// version attribute and parses best-effort; callers can inspect
// [Document.Version] to warn about documents written by a newer tool.
const Version = "2.0"

// Default titles applied when metadata is absent.
const (
	// DefaultTitle names a document exported without a project name.
	DefaultTitle = "Canvas Document"

	// DefaultImportTitle substitutes for a missing <meta> title on import.
	DefaultImportTitle = "Imported Document"
)

// Meta is the document-level metadata carried by the <meta> element.
type Meta struct {
	Title   string
	Created time.Time
	Author  string   // optional
	Tags    []string // optional; comma-joined in the document form
}

// Document is the transient exchange form between canvas state and NML
// text. It is constructed fresh on every export and import and never
// outlives the call that built it; the [canvas.Store] remains the only
// long-lived owner of entities.
type Document struct {
	Version string
	Meta    Meta
	Canvas  canvas.View
	Pages   []canvas.Page
	Links   []canvas.Connection
}

// FromSnapshot builds a document from a store snapshot.
// The document title comes from the project name, falling back to
// [DefaultTitle]; created is stamped with now.
func FromSnapshot(snap canvas.Snapshot, now time.Time) Document {
	title := snap.Meta.Name
	if title == "" {
		title = DefaultTitle
	}
	return Document{
		Version: Version,
		Meta: Meta{
			Title:   title,
			Created: now.UTC(),
			Author:  snap.Meta.Author,
			Tags:    snap.Meta.Tags,
		},
		Canvas: snap.View,
		Pages:  snap.Pages,
		Links:  snap.Connections,
	}
}

// Snapshot converts the document back into a store snapshot for
// [canvas.Store.Restore].
func (d Document) Snapshot() canvas.Snapshot {
	return canvas.Snapshot{
		Pages:       d.Pages,
		Connections: d.Links,
		View:        d.Canvas,
		Meta: canvas.Meta{
			Name:   d.Meta.Title,
			Author: d.Meta.Author,
			Tags:   d.Meta.Tags,
		},
	}
}

// Filename derives a download-style filename from a document title:
// lowercased, whitespace runs collapsed to dashes, with the .nml extension.
func Filename(title string) string {
	if title == "" {
		title = DefaultTitle
	}
	name := strings.Join(strings.Fields(strings.ToLower(title)), "-")
	return name + ".nml"
}

// joinTags flattens a tag sequence to the document's comma-joined form.
// The join character is a bare comma; import trims per-item whitespace.
func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

// splitTags parses a comma-joined tag string into a trimmed sequence with
// blank entries dropped. An empty input yields an empty sequence.
func splitTags(s string) []string {
	out := []string{}
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
