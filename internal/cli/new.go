package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/careless-canvas/canvasnml/pkg/canvas"
	"github.com/careless-canvas/canvasnml/pkg/errors"
	"github.com/careless-canvas/canvasnml/pkg/nml"
)

// newNewCmd creates the "new" command for creating empty documents.
func newNewCmd() *cobra.Command {
	var (
		title  string
		author string
		tags   []string
		theme  string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "new [file]",
		Short: "Create an empty canvas document",
		Long: `Create an empty canvas document at the given path.

When no file is given, the filename is derived from the title
("My Project" becomes my-project.nml in the working directory).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if author == "" {
				author = cfg.Author
			}
			if theme == "" {
				theme = cfg.Theme
			}

			path := nml.Filename(title)
			if len(args) == 1 {
				path = args[0]
			}
			if err := errors.ValidateDocumentPath(path); err != nil {
				return err
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}

			store := canvas.NewStore()
			store.SetMeta(canvas.Meta{Name: title, Author: author, Tags: tags})
			store.SetTheme(canvas.ParseTheme(theme))

			if err := saveDocument(cmd.Context(), store, path); err != nil {
				return err
			}

			touchRecent(cmd.Context(), path, title)
			printSuccess("Created %s", path)
			printNextStep("Add a page", fmt.Sprintf("canvas page add %s \"First note\"", path))
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "document title")
	cmd.Flags().StringVar(&author, "author", "", "document author (defaults to config)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "document tag (repeatable)")
	cmd.Flags().StringVar(&theme, "theme", "", "canvas theme: light (default), dark")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return cmd
}
