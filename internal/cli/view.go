package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// newViewCmd creates the "view" command for interactive page browsing.
func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [file]",
		Short: "Browse pages in an interactive terminal UI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, doc, err := openDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			model := NewPageListModel(doc.Meta.Title, store.Snapshot())
			p := tea.NewProgram(model, tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
}
