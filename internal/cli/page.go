package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/careless-canvas/canvasnml/pkg/canvas"
	"github.com/careless-canvas/canvasnml/pkg/errors"
)

// newPageCmd creates the page management command group.
func newPageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Manage pages in a document",
	}

	cmd.AddCommand(newPageAddCmd())
	cmd.AddCommand(newPageListCmd())
	cmd.AddCommand(newPageShowCmd())
	cmd.AddCommand(newPageEditCmd())
	cmd.AddCommand(newPageRmCmd())

	return cmd
}

// pageAddOpts holds the command-line flags for "page add".
type pageAddOpts struct {
	title  string
	x, y   float64
	width  float64
	height float64
	color  string
	tags   []string
}

func newPageAddCmd() *cobra.Command {
	var opts pageAddOpts

	cmd := &cobra.Command{
		Use:   "add [file] [content]",
		Short: "Add a page to a document",
		Long: `Add a page with the given markdown content.

Without --color the page color is picked from content keywords
(e.g. "urgent" turns the page red, "idea" yellow). Position defaults
to the origin; size defaults to 300x200.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			p := store.AddPage(opts.x, opts.y, args[1])
			err = store.UpdatePage(p.ID, func(pg *canvas.Page) {
				if opts.title != "" {
					pg.Title = opts.title
				}
				if opts.width > 0 {
					pg.Width = opts.width
				}
				if opts.height > 0 {
					pg.Height = opts.height
				}
				if opts.color != "" {
					pg.Color = canvas.ParsePageColor(opts.color)
				}
				if len(opts.tags) > 0 {
					pg.Tags = opts.tags
				}
			})
			if err != nil {
				return err
			}

			if err := saveDocument(cmd.Context(), store, args[0]); err != nil {
				return err
			}

			p, _ = store.Page(p.ID)
			printSuccess("Added %s", StyleHighlight.Render(p.ID))
			printDetail("color: %s  position: %g,%g", p.Color, p.X, p.Y)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "page title")
	cmd.Flags().Float64VarP(&opts.x, "x", "x", 0, "horizontal position")
	cmd.Flags().Float64VarP(&opts.y, "y", "y", 0, "vertical position")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "page width")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "page height")
	cmd.Flags().StringVarP(&opts.color, "color", "c", "", "page color: red, blue, green, yellow, purple, gray")
	cmd.Flags().StringSliceVar(&opts.tags, "tag", nil, "page tag (repeatable)")

	return cmd
}

func newPageListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [file]",
		Short: "List the pages of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, doc, err := openDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			pages := store.Pages()
			if len(pages) == 0 {
				printInfo("%s has no pages", doc.Meta.Title)
				return nil
			}

			rows := make([][]string, 0, len(pages))
			for i := range pages {
				p := &pages[i]
				rows = append(rows, []string{
					p.ID,
					truncate(p.DisplayTitle(), 32),
					renderPageColor(string(p.Color)),
					fmt.Sprintf("%g,%g", p.X, p.Y),
					strings.Join(p.Tags, ", "),
				})
			}

			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("ID", "Title", "Color", "Position", "Tags").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return headerStyle
					}
					return lipgloss.NewStyle()
				})

			fmt.Println(StyleTitle.Render(doc.Meta.Title))
			fmt.Println(t.Render())
			printStats(len(pages), len(store.Connections()), false)
			return nil
		},
	}
}

func newPageShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [file] [page-id]",
		Short: "Show a single page in full",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidatePageID(args[1]); err != nil {
				return err
			}
			store, _, err := openDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			p, ok := store.Page(args[1])
			if !ok {
				return errors.New(errors.ErrCodePageNotFound, "no page with id %q", args[1])
			}

			fmt.Println(StyleTitle.Render(p.DisplayTitle()))
			printKeyValue("id", p.ID)
			printKeyValue("color", renderPageColor(string(p.Color)))
			printKeyValue("position", fmt.Sprintf("%g,%g", p.X, p.Y))
			printKeyValue("size", fmt.Sprintf("%gx%g", p.Width, p.Height))
			if len(p.Tags) > 0 {
				printKeyValue("tags", strings.Join(p.Tags, ", "))
			}
			printKeyValue("created", p.Created.Format("2006-01-02 15:04"))
			printNewline()
			fmt.Println(p.Content)

			if links := store.ConnectionsFor(p.ID); len(links) > 0 {
				printNewline()
				for _, l := range links {
					printDetail("%s %s %s (%s)", l.From, iconArrow, l.To, l.Type)
				}
			}
			return nil
		},
	}
}

// pageEditOpts holds the command-line flags for "page edit".
// Pointer-valued fields distinguish "not given" from explicit zero values so
// a page can be moved to the origin or have its title cleared.
type pageEditOpts struct {
	content *string
	title   *string
	x, y    *float64
	width   *float64
	height  *float64
	color   *string
	tags    *[]string
}

func newPageEditCmd() *cobra.Command {
	var opts pageEditOpts

	cmd := &cobra.Command{
		Use:   "edit [file] [page-id]",
		Short: "Edit fields of a page",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidatePageID(args[1]); err != nil {
				return err
			}
			store, _, err := openDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			flagValue := func(name string) bool { return cmd.Flags().Changed(name) }
			err = store.UpdatePage(args[1], func(p *canvas.Page) {
				if flagValue("content") {
					p.Content = *opts.content
				}
				if flagValue("title") {
					p.Title = *opts.title
				}
				if flagValue("x") {
					p.X = *opts.x
				}
				if flagValue("y") {
					p.Y = *opts.y
				}
				if flagValue("width") {
					p.Width = *opts.width
				}
				if flagValue("height") {
					p.Height = *opts.height
				}
				if flagValue("color") {
					p.Color = canvas.ParsePageColor(*opts.color)
				}
				if flagValue("tag") {
					p.Tags = *opts.tags
				}
			})
			if err != nil {
				return err
			}

			if err := saveDocument(cmd.Context(), store, args[0]); err != nil {
				return err
			}
			printSuccess("Updated %s", StyleHighlight.Render(args[1]))
			return nil
		},
	}

	opts.content = cmd.Flags().String("content", "", "replace the markdown content")
	opts.title = cmd.Flags().StringP("title", "t", "", "replace the title (empty clears it)")
	opts.x = cmd.Flags().Float64P("x", "x", 0, "horizontal position")
	opts.y = cmd.Flags().Float64P("y", "y", 0, "vertical position")
	opts.width = cmd.Flags().Float64("width", 0, "page width")
	opts.height = cmd.Flags().Float64("height", 0, "page height")
	opts.color = cmd.Flags().StringP("color", "c", "", "page color")
	opts.tags = cmd.Flags().StringSlice("tag", nil, "replace page tags (repeatable)")

	return cmd
}

func newPageRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [file] [page-id]",
		Short: "Remove a page and its links",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidatePageID(args[1]); err != nil {
				return err
			}
			store, _, err := openDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			dropped := len(store.ConnectionsFor(args[1]))
			if err := store.DeletePage(args[1]); err != nil {
				return err
			}
			if err := saveDocument(cmd.Context(), store, args[0]); err != nil {
				return err
			}

			printSuccess("Removed %s", StyleHighlight.Render(args[1]))
			if dropped > 0 {
				printDetail("dropped %d link(s)", dropped)
			}
			return nil
		},
	}
}

// truncate shortens s to at most n runes, appending an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
