package cli

import (
	"context"

	"github.com/careless-canvas/canvasnml/pkg/canvas"
	"github.com/careless-canvas/canvasnml/pkg/errors"
	"github.com/careless-canvas/canvasnml/pkg/nml"
	"github.com/careless-canvas/canvasnml/pkg/workspace"
)

// openDocument loads the document at path into a fresh store and records
// the open in the recent-documents registry. Registry failures are logged
// but never fail the command.
func openDocument(ctx context.Context, path string) (*canvas.Store, nml.Document, error) {
	logger := loggerFromContext(ctx)

	if err := errors.ValidateDocumentPath(path); err != nil {
		return nil, nml.Document{}, err
	}

	store := canvas.NewStore()
	doc, err := nml.LoadStore(store, path)
	if err != nil {
		return nil, nml.Document{}, err
	}
	logger.Debug("loaded document", "path", path, "version", doc.Version,
		"pages", len(doc.Pages), "links", len(doc.Links))

	if doc.Version != nml.Version {
		printWarning("Document version %s differs from %s; parsed best-effort", doc.Version, nml.Version)
	}

	touchRecent(ctx, path, doc.Meta.Title)
	return store, doc, nil
}

// saveDocument writes the store back to path.
func saveDocument(ctx context.Context, store *canvas.Store, path string) error {
	logger := loggerFromContext(ctx)
	if err := nml.SaveStore(store, path); err != nil {
		return err
	}
	logger.Debug("saved document", "path", path, "pages", store.PageCount())
	return nil
}

// touchRecent records an open in the registry, best-effort.
func touchRecent(ctx context.Context, path, title string) {
	logger := loggerFromContext(ctx)
	reg, err := workspace.NewRegistry("")
	if err != nil {
		logger.Debug("recent registry unavailable", "error", err)
		return
	}
	if err := reg.Touch(path, title); err != nil {
		logger.Debug("recent registry update failed", "error", err)
	}
}
