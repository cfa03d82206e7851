// Package canvas defines the entity model and state store for canvas
// documents: freeform markdown pages arranged on an infinite canvas and
// joined by typed, directed connections.
//
// # Entities
//
//   - [Page]: a positioned, sized, colored markdown note
//   - [Connection]: a typed, optionally labeled edge between two pages
//   - [View]: the persisted viewport state (zoom, pan, grid, theme)
//   - [Meta]: project-level metadata (name, author, tags)
//
// # Store
//
// [Store] is the single owner of live state. The UI layers (CLI commands,
// the TUI browser, the preview server) mutate it exclusively through its
// CRUD methods; the document codec in pkg/nml reads and writes it through
// [Store.Snapshot] and [Store.Restore], which are whole-document, atomic
// exchanges.
//
// Deleting a page cascades to every connection referencing it. Connections
// are otherwise never validated against the page set: dangling references
// are part of the document format's leniency and survive a round trip.
//
// # Identifiers
//
// Page ids are counter-derived ("page-1", "page-2", ...) and the counter is
// reseeded above the highest imported suffix on [Store.Restore]. Connection
// ids are random, session-scoped and not persisted.
package canvas
