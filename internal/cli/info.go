package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/careless-canvas/canvasnml/pkg/canvas"
)

// newInfoCmd creates the "info" command for document statistics.
func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info [file]",
		Short: "Print document statistics and integrity warnings",
		Long: `Print document metadata, page and link counts, and integrity
warnings. Dangling links (links naming a page id that does not exist)
are preserved by the format but reported here so they can be cleaned up.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, doc, err := openDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render(doc.Meta.Title))
			printKeyValue("version", doc.Version)
			if doc.Meta.Author != "" {
				printKeyValue("author", doc.Meta.Author)
			}
			if len(doc.Meta.Tags) > 0 {
				printKeyValue("tags", strings.Join(doc.Meta.Tags, ", "))
			}
			printKeyValue("created", doc.Meta.Created.Format("2006-01-02 15:04"))

			view := store.View()
			printKeyValue("zoom", fmt.Sprintf("%g", view.Zoom))
			printKeyValue("theme", string(view.Theme))

			printNewline()
			printKeyValue("pages", fmt.Sprintf("%d", store.PageCount()))
			printKeyValue("links", fmt.Sprintf("%d", len(store.Connections())))

			byColor := countByColor(store.Pages())
			if len(byColor) > 0 {
				var parts []string
				for _, c := range []canvas.PageColor{
					canvas.ColorRed, canvas.ColorYellow, canvas.ColorGreen,
					canvas.ColorBlue, canvas.ColorPurple, canvas.ColorGray,
				} {
					if n := byColor[c]; n > 0 {
						parts = append(parts, fmt.Sprintf("%d %s", n, renderPageColor(string(c))))
					}
				}
				printKeyValue("colors", strings.Join(parts, ", "))
			}

			if dangling := danglingLinks(store); len(dangling) > 0 {
				printNewline()
				printWarning("%d dangling link(s)", len(dangling))
				for _, l := range dangling {
					printDetail("%s: %s %s %s", l.ID, l.From, iconArrow, l.To)
				}
			}
			return nil
		},
	}
}

func countByColor(pages []canvas.Page) map[canvas.PageColor]int {
	out := make(map[canvas.PageColor]int)
	for i := range pages {
		out[pages[i].Color]++
	}
	return out
}

// danglingLinks returns links whose endpoints name no existing page.
func danglingLinks(store *canvas.Store) []canvas.Connection {
	var out []canvas.Connection
	for _, l := range store.Connections() {
		_, fromOK := store.Page(l.From)
		_, toOK := store.Page(l.To)
		if !fromOK || !toOK {
			out = append(out, l)
		}
	}
	return out
}
