package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/careless-canvas/canvasnml/pkg/cache"
	"github.com/careless-canvas/canvasnml/pkg/canvas"
	"github.com/careless-canvas/canvasnml/pkg/render"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	output   string // output file path; derived from the input when empty
	format   string // "dot", "svg" or "png"
	detailed bool   // include tags and content previews in page labels
	theme    string // override the document theme
	noCache  bool   // bypass the render cache
}

// validExportFormats is the set of supported export formats.
var validExportFormats = map[string]bool{"dot": true, "svg": true, "png": true}

// newExportCmd creates the export command for rendering documents.
func newExportCmd() *cobra.Command {
	opts := exportOpts{format: "svg"}

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Render a document to DOT, SVG or PNG",
		Long: `Render the document's pages and links as a directed graph.

SVG and PNG renders are cached keyed by document content, so repeated
exports of an unchanged document are instant. Use --no-cache to force
a fresh render.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !validExportFormats[opts.format] {
				return fmt.Errorf("invalid format: %s (must be 'dot', 'svg', or 'png')", opts.format)
			}
			return runExport(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (defaults to the input name with the format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), png, dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include tags and content previews in page labels")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "override the document theme: light, dark")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the render cache")

	return cmd
}

func runExport(ctx context.Context, path string, opts *exportOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	store, _, err := openDocument(ctx, path)
	if err != nil {
		return err
	}
	snap := store.Snapshot()

	renderOpts := render.Options{Detailed: opts.detailed}
	if opts.theme != "" {
		renderOpts.Theme = canvas.ParseTheme(opts.theme)
	}
	dot := render.ToDOT(snap, renderOpts)

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + "." + opts.format
	}

	var data []byte
	cached := false
	switch opts.format {
	case "dot":
		data = []byte(dot)
	default:
		sp := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.format))
		sp.Start()
		data, cached, err = renderCached(ctx, dot, opts)
		sp.Stop()
		if err != nil {
			return err
		}
	}

	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	prog.done(fmt.Sprintf("Exported %d pages", len(snap.Pages)))
	printSuccess("Exported %s", opts.format)
	printFile(out)
	printStats(len(snap.Pages), len(snap.Connections), cached)
	return nil
}

// renderCached renders DOT to the requested format through the cache.
// The bool result reports whether the artifact came from the cache.
func renderCached(ctx context.Context, dot string, opts *exportOpts) ([]byte, bool, error) {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return nil, false, err
	}
	c, err := openCache(ctx, cfg, opts.noCache)
	if err != nil {
		// A broken cache backend should not block an export.
		logger.Warn("cache unavailable, rendering fresh", "error", err)
		c = cache.NewNullCache()
	}
	defer c.Close()

	key := cache.RenderKey(cache.Hash([]byte(dot)), opts.format)
	if data, ok, err := c.Get(ctx, key); err == nil && ok {
		logger.Debug("render cache hit", "key", key)
		return data, true, nil
	}

	var data []byte
	switch opts.format {
	case "svg":
		data, err = render.SVG(ctx, dot)
	case "png":
		data, err = render.PNG(ctx, dot)
	}
	if err != nil {
		return nil, false, err
	}

	if err := c.Set(ctx, key, data, cacheTTL(cfg)); err != nil {
		logger.Warn("cache write failed", "error", err)
	}
	return data, false, nil
}
