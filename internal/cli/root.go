package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tipdesk/internal/config"
	"tipdesk/internal/format"
	"tipdesk/internal/journal"
	"tipdesk/internal/logging"
	"tipdesk/internal/nav"
	"tipdesk/internal/store"
	"tipdesk/internal/tui"
)

type App struct {
	ConfigPath string
	Data       string
	Format     string
	Pretty     bool
	Verbose    bool

	cfg       *config.Config
	log       zerolog.Logger
	logCloser io.Closer
	newLogger func(logging.Options) (zerolog.Logger, io.Closer)
}

// Execute runs the command line in args (without the program name).
func Execute(ctx context.Context, args []string) error {
	app := &App{}
	cmd := newRootCmd(app)
	cmd.SetArgs(args)
	return run(ctx, app, cmd)
}

// run closes the log file however the command ends. Cobra skips post-run
// hooks when RunE fails, so this cannot live in PersistentPostRunE.
func run(ctx context.Context, app *App, cmd *cobra.Command) error {
	defer app.closeLog()
	return cmd.ExecuteContext(ctx)
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "tipdesk",
		Short:        "Browse investment tips, keep notes and a trade journal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  tipdesk

  # Scriptable lookups
  tipdesk tips list --stock MSFT
  tipdesk stock MSFT --format yaml

  # Stock shortcut (same as: tipdesk stock MSFT)
  tipdesk '$MSFT'

  # Snapshot the dataset into SQLite and browse it from there
  tipdesk dataset export --sqlite tips.db
  tipdesk --data tips.db
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := app.loadConfig(cmd); err != nil {
			return writeErr(cmd, err)
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("TIPDESK_CONFIG", ""), "Config file (default: <user config dir>/tipdesk/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.Data, "data", "", "Dataset file (.yaml, .json or .db); default is the built-in seed")
	cmd.PersistentFlags().StringVar(&app.Format, "format", "", "Output format (json|edn|yaml); default from config, else json")
	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print output")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(newTipsCmd(app))
	cmd.AddCommand(newStockCmd(app))
	cmd.AddCommand(newPostCmd(app))
	cmd.AddCommand(newAuthorCmd(app))
	cmd.AddCommand(newPortfolioCmd(app))
	cmd.AddCommand(newDatasetCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newSearchCmd(app))

	return cmd
}

// loadConfig resolves config file and env, then applies flags that were set
// explicitly on top.
func (app *App) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.Data = app.Data
	}
	if flags.Changed("format") {
		cfg.Output.Format = strings.ToLower(strings.TrimSpace(app.Format))
	}
	if flags.Changed("pretty") {
		cfg.Output.Pretty = app.Pretty
	}
	if app.Verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	app.cfg = cfg

	// Scripted commands only log to stderr when asked; the TUI owns the
	// terminal and logs to the rotating file instead.
	opts := logging.Options{Level: cfg.Log.Level, Console: app.Verbose, Stderr: cmd.ErrOrStderr()}
	if cmd == cmd.Root() {
		opts = logging.FromConfig(cfg.Log)
	}
	newLogger := app.newLogger
	if newLogger == nil {
		newLogger = logging.New
	}
	app.closeLog()
	app.log, app.logCloser = newLogger(opts)
	return nil
}

func (app *App) closeLog() {
	if app.logCloser == nil {
		return
	}
	if err := app.logCloser.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "closing log:", err)
	}
	app.logCloser = nil
}

func (app *App) config() *config.Config {
	if app.cfg == nil {
		app.cfg = config.Default()
	}
	return app.cfg
}

func (app *App) loadDataset(ctx context.Context) (*store.Dataset, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	path := app.config().Data
	ds, err := store.LoadDataset(ctx, path)
	if err != nil {
		return nil, err
	}
	app.log.Debug().Str("path", path).Int("tips", len(ds.Tips)).Msg("dataset loaded")
	return ds, nil
}

func runTUI(ctx context.Context, app *App) error {
	ds, err := app.loadDataset(ctx)
	if err != nil {
		return err
	}
	cfg := app.config()
	ctl := nav.NewController(store.NewCatalog(ds), journal.FromDataset(ds), nav.Options{Logger: app.log})
	app.log.Info().Int("tips", len(ds.Tips)).Msg("tui start")
	return tui.Run(tui.Options{
		Controller:       ctl,
		Logger:           app.log,
		MobileBreakpoint: cfg.UI.MobileBreakpoint,
		MarkdownStyle:    cfg.UI.MarkdownStyle,
		Theme:            cfg.UI.Theme,
		Glyphs:           cfg.UI.Glyphs,
	})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// writeOut wraps v in the {"data": ...} envelope every command prints.
func writeOut(cmd *cobra.Command, app *App, v any) error {
	cfg := app.config()
	return format.Write(cmd.OutOrStdout(), map[string]any{"data": v}, cfg.Output.Format, cfg.Output.Pretty)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
