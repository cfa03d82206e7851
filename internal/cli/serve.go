package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/careless-canvas/canvasnml/internal/server"
)

// newServeCmd creates the "serve" command for browser preview.
func newServeCmd() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve the document over HTTP for browser preview",
		Long: `Serve a read-only preview of the document.

Endpoints:
  /            HTML page embedding the rendered canvas
  /render.svg  rendered SVG
  /document    full document as JSON
  /pages/{id}  a single page as JSON`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			store, doc, err := openDocument(ctx, args[0])
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			c, err := openCache(ctx, cfg, noCache)
			if err != nil {
				return err
			}
			defer c.Close()

			srv := &http.Server{
				Addr:              addr,
				Handler:           server.New(store, doc.Meta.Title, c, logger).Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			printInfo("Serving %s", doc.Meta.Title)
			printDetail("http://%s", addr)
			printNextStep("Stop", "ctrl+c")

			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "localhost:8639", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the render cache")

	return cmd
}
