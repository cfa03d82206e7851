package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/careless-canvas/canvasnml/pkg/workspace"
)

// newRecentCmd creates the "recent" command listing recently opened documents.
func newRecentCmd() *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently opened documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := workspace.NewRegistry("")
			if err != nil {
				return err
			}

			if clear {
				if err := reg.Clear(); err != nil {
					return err
				}
				printSuccess("Cleared recent documents")
				return nil
			}

			entries, err := reg.List()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				printInfo("No recent documents")
				return nil
			}

			for _, e := range entries {
				title := e.Title
				if title == "" {
					title = e.Path
				}
				fmt.Println(StyleValue.Render(title))
				printDetail("%s · %s", e.Path, formatRelativeTime(e.OpenedAt))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "forget all recent documents")

	return cmd
}

// formatRelativeTime renders a timestamp as a coarse relative age.
func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
