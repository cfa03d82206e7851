package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/careless-canvas/canvasnml/pkg/canvas"
	"github.com/careless-canvas/canvasnml/pkg/errors"
)

// newLinkCmd creates the link management command group.
func newLinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Manage links between pages",
	}

	cmd.AddCommand(newLinkAddCmd())
	cmd.AddCommand(newLinkListCmd())
	cmd.AddCommand(newLinkRmCmd())

	return cmd
}

func newLinkAddCmd() *cobra.Command {
	var (
		typ   string
		label string
	)

	cmd := &cobra.Command{
		Use:   "add [file] [from-id] [to-id]",
		Short: "Link two pages",
		Long: `Add a directed link between two pages.

The link type defaults to "relates". Linking a page id that does not
exist is allowed but flagged with a warning, matching the document
format's tolerance for dangling references.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			from, to := args[1], args[2]
			c := store.AddConnection(from, to, canvas.ParseConnectionType(typ), label)

			if err := saveDocument(cmd.Context(), store, args[0]); err != nil {
				return err
			}

			printSuccess("Linked %s %s %s (%s)",
				StyleHighlight.Render(from), iconArrow, StyleHighlight.Render(to), c.Type)
			for _, id := range []string{from, to} {
				if _, ok := store.Page(id); !ok {
					printWarning("page %q does not exist; link is dangling", id)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", "", "link type: explores, leads-to, relates, contradicts, supports, questions")
	cmd.Flags().StringVarP(&label, "label", "l", "", "free-text label shown on the link")

	return cmd
}

func newLinkListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [file]",
		Short: "List the links of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, doc, err := openDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			links := store.Connections()
			if len(links) == 0 {
				printInfo("%s has no links", doc.Meta.Title)
				return nil
			}

			rows := make([][]string, 0, len(links))
			for _, l := range links {
				rows = append(rows, []string{l.ID, l.From, l.To, string(l.Type), l.Label})
			}

			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("ID", "From", "To", "Type", "Label").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return headerStyle
					}
					return lipgloss.NewStyle()
				})

			fmt.Println(StyleTitle.Render(doc.Meta.Title))
			fmt.Println(t.Render())
			return nil
		},
	}
}

func newLinkRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [file] [link-id]",
		Short: "Remove a link",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if _, ok := store.Connection(args[1]); !ok {
				return errors.New(errors.ErrCodeConnectionNotFound, "no link with id %q", args[1])
			}
			if err := store.DeleteConnection(args[1]); err != nil {
				return err
			}
			if err := saveDocument(cmd.Context(), store, args[0]); err != nil {
				return err
			}

			printSuccess("Removed link %s", StyleHighlight.Render(args[1]))
			return nil
		},
	}
}
