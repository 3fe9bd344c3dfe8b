package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"tipdesk/internal/journal"
	"tipdesk/internal/model"
	"tipdesk/internal/store"
)

func newTipsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tips",
		Short: "Tip commands",
	}
	cmd.AddCommand(newTipsListCmd(app))
	cmd.AddCommand(newTipsShowCmd(app))
	return cmd
}

func parseKind(s string) (model.SourceKind, error) {
	switch k := model.SourceKind(strings.ToLower(strings.TrimSpace(s))); k {
	case "", model.SourceVideo, model.SourceArticle:
		return k, nil
	}
	return "", errInvalidFlag("kind", s, "video|article")
}

func newTipsListCmd(app *App) *cobra.Command {
	var stock, author, kind string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tips in timeline order",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := parseKind(kind)
			if err != nil {
				return writeErr(cmd, err)
			}
			if k != "" && strings.TrimSpace(author) == "" {
				return writeErr(cmd, errInvalidFlag("kind", kind, "--author as well"))
			}
			ds, err := app.loadDataset(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			tips := ds.TipStore()
			var out []model.Tip
			switch {
			case strings.TrimSpace(author) != "":
				out = tips.FilterByAuthor(author, k)
				if s := strings.TrimSpace(stock); s != "" {
					out = keepSymbol(out, s)
				}
			case strings.TrimSpace(stock) != "":
				out = tips.FilterByStock(stock)
			default:
				out = tips.All()
			}
			if out == nil {
				out = []model.Tip{}
			}
			return writeOut(cmd, app, out)
		},
	}

	cmd.Flags().StringVar(&stock, "stock", "", "Only tips for this symbol (exact match)")
	cmd.Flags().StringVar(&author, "author", "", "Only tips by this author")
	cmd.Flags().StringVar(&kind, "kind", "", "With --author: video|article")
	return cmd
}

func keepSymbol(tips []model.Tip, symbol string) []model.Tip {
	var out []model.Tip
	for _, t := range tips {
		if t.Symbol == symbol {
			out = append(out, t)
		}
	}
	return out
}

type tipView struct {
	Tip        model.Tip        `json:"tip"`
	PostID     string           `json:"postId"`
	Assessment model.Assessment `json:"assessment,omitempty"`
	Conviction model.Conviction `json:"conviction"`
	Notes      []model.Note     `json:"notes"`
}

func newTipsShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <tip-id>",
		Short: "Show a tip with its assessment, conviction and notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := app.loadDataset(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			t, ok := ds.TipStore().ByID(id)
			if !ok {
				return writeErr(cmd, errNotFound("tip", id))
			}
			j := journal.FromDataset(ds)
			scope := journal.TipScope(t.ID)
			notes := j.Notes.List(scope)
			if notes == nil {
				notes = []model.Note{}
			}
			return writeOut(cmd, app, tipView{
				Tip:        t,
				PostID:     store.PostIDOf(t),
				Assessment: j.Assessments.Get(t.ID),
				Conviction: j.Convictions.GetOrDefault(scope, t.Sentiment),
				Notes:      notes,
			})
		},
	}
	return cmd
}
