package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"tipdesk/internal/journal"
	"tipdesk/internal/model"
	"tipdesk/internal/store"
)

type stockView struct {
	*store.StockData
	Conviction model.Conviction `json:"conviction"`
	Notes      []model.Note     `json:"notes"`
	Trades     []model.Trade    `json:"trades"`
}

func newStockCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stock <symbol>",
		Short: "Show a stock: quote, position, tips, notes and trades",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := app.loadDataset(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			sym := strings.TrimSpace(args[0])
			sd, ok := store.NewCatalog(ds).StockData(sym)
			if !ok {
				return writeErr(cmd, errNotFound("stock", sym))
			}
			if len(sd.Tips) == 0 && sd.StockName == "" && sd.Position == nil && sd.Quote.Price == 0 {
				return writeErr(cmd, errNotFound("stock", sym))
			}
			j := journal.FromDataset(ds)
			scope := journal.StockScope(sd.Symbol)
			fallback := model.SentimentBullish
			if len(sd.Tips) > 0 {
				fallback = sd.Tips[0].Sentiment
			}
			out := stockView{
				StockData:  sd,
				Conviction: j.Convictions.GetOrDefault(scope, fallback),
				Notes:      j.Notes.List(scope),
				Trades:     j.Trades.List(sd.Symbol),
			}
			if out.Notes == nil {
				out.Notes = []model.Note{}
			}
			if out.Trades == nil {
				out.Trades = []model.Trade{}
			}
			return writeOut(cmd, app, out)
		},
	}
	return cmd
}

func newPostCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post <post-id>",
		Short: "Show a post and the tips it produced",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := app.loadDataset(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			pd, ok := store.NewCatalog(ds).PostData(id)
			if !ok {
				return writeErr(cmd, errNotFound("post", id))
			}
			if pd.Tips == nil {
				pd.Tips = []model.Tip{}
			}
			return writeOut(cmd, app, pd)
		},
	}
	return cmd
}

func newAuthorCmd(app *App) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "author <name>",
		Short: "Show an author with their posts and tips",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := parseKind(kind)
			if err != nil {
				return writeErr(cmd, err)
			}
			ds, err := app.loadDataset(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			name := strings.TrimSpace(args[0])
			ad, ok := store.NewCatalog(ds).AuthorData(name)
			if !ok {
				return writeErr(cmd, errNotFound("author", name))
			}
			if k != "" {
				ad.Tips = ds.TipStore().FilterByAuthor(name, k)
				var posts []model.Post
				for _, p := range ad.Posts {
					if p.Kind == k {
						posts = append(posts, p)
					}
				}
				ad.Posts = posts
			}
			if ad.Posts == nil {
				ad.Posts = []model.Post{}
			}
			if ad.Tips == nil {
				ad.Tips = []model.Tip{}
			}
			return writeOut(cmd, app, ad)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Only video or article posts and tips")
	return cmd
}

func newPortfolioCmd(app *App) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Show the portfolio summary and holdings",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, ok := store.ParsePortfolioFilter(filter)
			if !ok {
				return writeErr(cmd, errInvalidFlag("filter", filter, "all|gainers|losers"))
			}
			ds, err := app.loadDataset(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			pd := store.NewCatalog(ds).Portfolio(f)
			if pd.Holdings == nil {
				pd.Holdings = []model.Holding{}
			}
			return writeOut(cmd, app, pd)
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "all", "all|gainers|losers")
	return cmd
}
