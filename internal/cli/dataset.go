package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tipdesk/internal/store"
)

func newDatasetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Inspect and export the dataset",
	}
	cmd.AddCommand(newDatasetExportCmd(app))
	cmd.AddCommand(newDatasetCheckCmd(app))
	return cmd
}

func newDatasetExportCmd(app *App) *cobra.Command {
	var sqlitePath, yamlPath, jsonPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the loaded dataset to SQLite, YAML or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			type target struct {
				format, path string
			}
			var targets []target
			for _, t := range []target{{"sqlite", sqlitePath}, {"yaml", yamlPath}, {"json", jsonPath}} {
				if p := strings.TrimSpace(t.path); p != "" {
					targets = append(targets, target{t.format, p})
				}
			}
			if len(targets) == 0 {
				return writeErr(cmd, errors.New("missing --sqlite, --yaml or --json"))
			}
			ds, err := app.loadDataset(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			written := make([]map[string]string, 0, len(targets))
			for _, t := range targets {
				switch t.format {
				case "sqlite":
					err = store.ExportSQLite(cmd.Context(), t.path, ds)
				case "yaml":
					err = ds.WriteYAML(t.path)
				case "json":
					err = ds.WriteJSON(t.path)
				}
				if err != nil {
					return writeErr(cmd, err)
				}
				app.log.Info().Str("format", t.format).Str("path", t.path).Msg("dataset exported")
				written = append(written, map[string]string{"format": t.format, "path": t.path})
			}
			return writeOut(cmd, app, written)
		},
	}

	cmd.Flags().StringVar(&sqlitePath, "sqlite", "", "SQLite database path")
	cmd.Flags().StringVar(&yamlPath, "yaml", "", "YAML file path")
	cmd.Flags().StringVar(&jsonPath, "json", "", "JSON file path")
	return cmd
}

type datasetCounts struct {
	Tips        int `json:"tips"`
	Posts       int `json:"posts"`
	Authors     int `json:"authors"`
	Holdings    int `json:"holdings"`
	Quotes      int `json:"quotes"`
	Positions   int `json:"positions"`
	Assessments int `json:"assessments"`
	TipNotes    int `json:"tipNotes"`
	StockNotes  int `json:"stockNotes"`
	Trades      int `json:"trades"`
}

func newDatasetCheckCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the dataset and print what it contains",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := app.loadDataset(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			c := datasetCounts{
				Tips:        len(ds.Tips),
				Posts:       len(ds.Posts),
				Authors:     len(ds.Authors),
				Holdings:    len(ds.Holdings),
				Quotes:      len(ds.Quotes),
				Positions:   len(ds.Positions),
				Assessments: len(ds.Assessments),
			}
			for _, ns := range ds.TipNotes {
				c.TipNotes += len(ns)
			}
			for _, ns := range ds.StockNotes {
				c.StockNotes += len(ns)
			}
			for _, ts := range ds.Trades {
				c.Trades += len(ts)
			}
			return writeOut(cmd, app, map[string]any{"ok": true, "counts": c})
		},
	}
	return cmd
}
