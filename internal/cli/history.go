package cli

import (
	"errors"
	"os"

	"stickynote/internal/model"

	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent changes (oldest first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.store()
			if _, err := os.Stat(st.HistoryPath()); errors.Is(err, os.ErrNotExist) {
				return writeOut(cmd, app, []model.Event{})
			}
			evs, err := st.History().ReadEvents(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			if evs == nil {
				evs = []model.Event{}
			}
			return writeOut(cmd, app, evs)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Max events to show (0 = all)")
	return cmd
}

func newPathCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the data, history, log and config file locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.store()
			return writeOut(cmd, app, map[string]any{
				"dataDir": st.Dir,
				"todos":   st.Path(),
				"history": st.HistoryPath(),
				"log":     app.cfg.Log.File,
				"config":  app.cfg.ConfigFile,
			})
		},
	}
}
