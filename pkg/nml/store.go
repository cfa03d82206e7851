package nml

import (
	"time"

	"github.com/careless-canvas/canvasnml/pkg/canvas"
)

// SaveStore serializes the store's current state to the file at path.
// The store is read through a single snapshot, so a save never observes a
// half-applied mutation.
func SaveStore(s *canvas.Store, path string) error {
	doc := FromSnapshot(s.Snapshot(), time.Now())
	return WriteFile(doc, path)
}

// LoadStore parses the document at path and replaces the store's state
// with it. Parsing completes before the store is touched: on any error the
// store is left exactly as it was. Returns the parsed document so callers
// can report its title and version.
func LoadStore(s *canvas.Store, path string) (Document, error) {
	doc, err := ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	s.Restore(doc.Snapshot())
	return doc, nil
}
