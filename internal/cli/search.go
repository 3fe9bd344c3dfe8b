package cli

import (
	"github.com/spf13/cobra"

	"tipdesk/internal/store"
)

func newSearchCmd(app *App) *cobra.Command {
	var segment string

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Suggest stock symbols or sectors matching a query",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seg, err := store.ParseSearchSegment(segment)
			if err != nil {
				return writeErr(cmd, err)
			}
			ds, err := app.loadDataset(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return writeOut(cmd, app, map[string]any{
				"segment":     seg,
				"query":       query,
				"suggestions": store.NewCatalog(ds).Suggestions(seg, query),
			})
		},
	}

	cmd.Flags().StringVar(&segment, "segment", "stock", "Search segment: stock or sector")
	return cmd
}
