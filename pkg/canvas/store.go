package canvas

import (
	"fmt"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/careless-canvas/canvasnml/pkg/errors"
)

// pageIDPattern matches counter-derived page ids ("page-12") so the counter
// can resume above the highest imported id.
var pageIDPattern = regexp.MustCompile(`^page-(\d+)$`)

// Store is the single long-lived owner of canvas state: pages, connections,
// view state and project metadata. All mutation goes through its methods.
//
// A Store is safe for concurrent use. The original data model assumes
// exclusive single-threaded access; the mutex preserves that contract when
// the preview server reads while the CLI owns the store.
type Store struct {
	mu          sync.RWMutex
	pages       map[string]*Page
	order       []string // page insertion order, for readable exports
	connections []Connection
	view        View
	meta        Meta
	nextPageID  int
}

// NewStore creates an empty store with default view state.
func NewStore() *Store {
	return &Store{
		pages:      make(map[string]*Page),
		view:       DefaultView(),
		nextPageID: 1,
	}
}

// =============================================================================
// Page Operations
// =============================================================================

// AddPage creates a page at the given position and returns a copy of it.
// The id is derived from the store's monotonic counter ("page-<n>").
// Non-empty content picks the page color via [SmartColor]; empty content
// yields a gray page.
func (s *Store) AddPage(x, y float64, content string) Page {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := fmt.Sprintf("page-%d", s.nextPageID)
	s.nextPageID++

	color := ColorGray
	if content != "" {
		color = SmartColor(content)
	}

	p := &Page{
		ID:      id,
		X:       x,
		Y:       y,
		Width:   DefaultPageWidth,
		Height:  DefaultPageHeight,
		Color:   color,
		Content: content,
		Tags:    []string{},
		Created: time.Now().UTC(),
	}
	s.pages[id] = p
	s.order = append(s.order, id)
	return *p
}

// Page returns a copy of the page with the given id.
func (s *Store) Page(id string) (Page, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pages[id]
	if !ok {
		return Page{}, false
	}
	return copyPage(p), true
}

// Pages returns copies of all pages in insertion order.
func (s *Store) Pages() []Page {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Page, 0, len(s.order))
	for _, id := range s.order {
		if p, ok := s.pages[id]; ok {
			out = append(out, copyPage(p))
		}
	}
	return out
}

// PageCount returns the number of pages.
func (s *Store) PageCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pages)
}

// UpdatePage applies fn to the page with the given id.
// The page's ID and Created timestamp cannot be changed; values fn assigns
// to them are discarded.
func (s *Store) UpdatePage(id string, fn func(*Page)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pages[id]
	if !ok {
		return errors.New(errors.ErrCodePageNotFound, "no page with id %q", id)
	}

	updated := copyPage(p)
	fn(&updated)
	updated.ID = p.ID
	updated.Created = p.Created
	*p = updated
	return nil
}

// DeletePage removes a page and every connection referencing it.
func (s *Store) DeletePage(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pages[id]; !ok {
		return errors.New(errors.ErrCodePageNotFound, "no page with id %q", id)
	}
	delete(s.pages, id)

	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	kept := s.connections[:0]
	for _, c := range s.connections {
		if !c.References(id) {
			kept = append(kept, c)
		}
	}
	s.connections = kept
	return nil
}

// =============================================================================
// Connection Operations
// =============================================================================

// AddConnection creates a directed connection between two page ids and
// returns it. From and To are not validated against the page set: the model
// tolerates dangling references, matching the document format.
func (s *Store) AddConnection(from, to string, typ ConnectionType, label string) Connection {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := Connection{
		ID:    newConnectionID(),
		From:  from,
		To:    to,
		Type:  typ,
		Label: label,
	}
	s.connections = append(s.connections, c)
	return c
}

// Connection returns the connection with the given id.
func (s *Store) Connection(id string) (Connection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.connections {
		if c.ID == id {
			return c, true
		}
	}
	return Connection{}, false
}

// Connections returns a copy of all connections in insertion order.
func (s *Store) Connections() []Connection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Connection, len(s.connections))
	copy(out, s.connections)
	return out
}

// ConnectionsFor returns every connection whose endpoint matches pageID.
func (s *Store) ConnectionsFor(pageID string) []Connection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Connection
	for _, c := range s.connections {
		if c.References(pageID) {
			out = append(out, c)
		}
	}
	return out
}

// UpdateConnection applies fn to the connection with the given id.
// The connection's ID cannot be changed.
func (s *Store) UpdateConnection(id string, fn func(*Connection)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.connections {
		if s.connections[i].ID == id {
			updated := s.connections[i]
			fn(&updated)
			updated.ID = id
			s.connections[i] = updated
			return nil
		}
	}
	return errors.New(errors.ErrCodeConnectionNotFound, "no connection with id %q", id)
}

// DeleteConnection removes the connection with the given id.
func (s *Store) DeleteConnection(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.connections {
		if c.ID == id {
			s.connections = append(s.connections[:i], s.connections[i+1:]...)
			return nil
		}
	}
	return errors.New(errors.ErrCodeConnectionNotFound, "no connection with id %q", id)
}

// =============================================================================
// View and Meta Operations
// =============================================================================

// View returns the current view state.
func (s *Store) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// SetZoom sets the zoom factor. Non-positive values are ignored.
func (s *Store) SetZoom(zoom float64) {
	if zoom <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Zoom = zoom
}

// SetCenter sets the pan center.
func (s *Store) SetCenter(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.CenterX = x
	s.view.CenterY = y
}

// ToggleGrid flips grid visibility and returns the new value.
func (s *Store) ToggleGrid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Grid = !s.view.Grid
	return s.view.Grid
}

// SetTheme sets the display theme.
func (s *Store) SetTheme(t Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Theme = t
}

// Meta returns the project metadata.
func (s *Store) Meta() Meta {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyMeta(s.meta)
}

// SetMeta replaces the project metadata.
func (s *Store) SetMeta(m Meta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta = copyMeta(m)
}

// =============================================================================
// Snapshot and Restore
// =============================================================================

// Snapshot is a point-in-time copy of the store's full state, used as the
// exchange form between the store and the document codec.
type Snapshot struct {
	Pages       []Page // insertion order
	Connections []Connection
	View        View
	Meta        Meta
}

// Snapshot returns a copy of the complete store state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Pages:       make([]Page, 0, len(s.order)),
		Connections: make([]Connection, len(s.connections)),
		View:        s.view,
		Meta:        copyMeta(s.meta),
	}
	for _, id := range s.order {
		if p, ok := s.pages[id]; ok {
			snap.Pages = append(snap.Pages, copyPage(p))
		}
	}
	copy(snap.Connections, s.connections)
	return snap
}

// Restore replaces the store's entire state with the snapshot.
// The page-id counter resumes above the highest "page-<n>" suffix found so
// later AddPage calls never collide with restored ids.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pages = make(map[string]*Page, len(snap.Pages))
	s.order = s.order[:0]
	maxID := 0
	for i := range snap.Pages {
		p := copyPage(&snap.Pages[i])
		s.pages[p.ID] = &p
		s.order = append(s.order, p.ID)
		if m := pageIDPattern.FindStringSubmatch(p.ID); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > maxID {
				maxID = n
			}
		}
	}
	s.nextPageID = maxID + 1

	s.connections = make([]Connection, len(snap.Connections))
	copy(s.connections, snap.Connections)
	s.view = snap.View
	s.meta = copyMeta(snap.Meta)
}

// Reset returns the store to its initial empty state.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pages = make(map[string]*Page)
	s.order = nil
	s.connections = nil
	s.view = DefaultView()
	s.meta = Meta{}
	s.nextPageID = 1
}

// =============================================================================
// Internal Helpers
// =============================================================================

// newConnectionID returns a short random alphanumeric connection id.
// Connection ids are not persisted in the document format, so uniqueness
// only matters within a single session.
func newConnectionID() string {
	return uuid.NewString()[:8]
}

func copyPage(p *Page) Page {
	out := *p
	if p.Tags != nil {
		out.Tags = make([]string, len(p.Tags))
		copy(out.Tags, p.Tags)
	}
	return out
}

func copyMeta(m Meta) Meta {
	out := m
	if m.Tags != nil {
		out.Tags = make([]string, len(m.Tags))
		copy(out.Tags, m.Tags)
	}
	return out
}
