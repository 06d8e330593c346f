package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"stickynote/internal/config"
	"stickynote/internal/format"
	"stickynote/internal/logging"
	"stickynote/internal/model"
	"stickynote/internal/mutate"
	"stickynote/internal/session"
	"stickynote/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

type App struct {
	ConfigFile string
	PrettyJSON bool
	Format     string

	v   *viper.Viper
	cfg *config.Config
	log *logging.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{v: config.NewViper()}

	cmd := &cobra.Command{
		Use:          "stickynote",
		Short:        "A sticky-note to-do list for the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open the note (mouse drag-and-drop, keyboard shortcuts)
  stickynote

  # Scriptable commands
  stickynote add buy milk
  stickynote ls --format text
  stickynote done 3f2a
  stickynote move 3f2a --before 9c1e
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd)
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		app.log.Close()
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.ConfigFile, "config", envOr("STICKYNOTE_CONFIG", ""), "Config file (default: config.{toml,yaml,json} in the config dir)")
	pf.String("data-dir", "", "Directory holding todos.json and history.sqlite")
	pf.String("log-level", "", "Log level (debug|info|warn|error)")
	pf.BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	pf.StringVar(&app.Format, "format", envOr("STICKYNOTE_FORMAT", "json"), "Output format (json|text|markdown)")
	_ = app.v.BindPFlag(config.KeyDataDir, pf.Lookup("data-dir"))
	_ = app.v.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newRmCmd(app))
	cmd.AddCommand(newMoveCmd(app))
	cmd.AddCommand(newHistoryCmd(app))
	cmd.AddCommand(newPathCmd(app))

	return cmd
}

func (app *App) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(app.v, app.ConfigFile)
	if err != nil {
		return writeErr(cmd, err)
	}
	log, err := logging.New(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return writeErr(cmd, err)
	}
	app.cfg = cfg
	app.log = log.WithFields("cmd", cmd.Name())
	app.log.Debugw("config loaded", "dataDir", cfg.DataDir, "configFile", cfg.ConfigFile)
	return nil
}

func (app *App) store() store.Store {
	return store.Store{Dir: app.cfg.DataDir, Log: app.log.WithComponent("store")}
}

func (app *App) newSaver(st store.Store) *store.Saver {
	var h store.EventAppender
	if app.cfg.History.Enabled {
		h = st.History()
	}
	return store.NewSaver(st, h, app.log)
}

// loadItems reads the collection for one-shot commands. Unlike the TUI, a
// corrupt file is an error here so a script never overwrites it.
func (app *App) loadItems(ctx context.Context) ([]model.Item, error) {
	items, err := app.store().LoadItems(ctx)
	if err != nil {
		return nil, err
	}
	return mutate.Normalize(items), nil
}

// withSession runs fn against a session backed by the data dir and waits for
// every change fn made to be written before printing its result.
func withSession(cmd *cobra.Command, app *App, fn func(sess *session.Session) (any, error)) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	items, err := app.loadItems(ctx)
	if err != nil {
		return writeErr(cmd, err)
	}
	st := app.store()
	saver := app.newSaver(st)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return saver.Run(gctx) })

	sess := session.New(items, session.Options{Persister: saver, Log: app.log})
	out, fnErr := fn(sess)
	flushErr := saver.Flush(ctx)
	cancel()
	_ = g.Wait()

	if fnErr != nil {
		return writeErr(cmd, fnErr)
	}
	if flushErr != nil {
		return writeErr(cmd, flushErr)
	}
	return writeOut(cmd, app, out)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// writeOut prints v. JSON output is wrapped as {"data": v}; text and markdown
// render v directly.
func writeOut(cmd *cobra.Command, app *App, v any) error {
	switch strings.ToLower(strings.TrimSpace(app.Format)) {
	case "", "json":
		return format.Write(cmd.OutOrStdout(), map[string]any{"data": v}, app.Format, app.PrettyJSON)
	}
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
