package cli

import (
	"stickynote/internal/session"
	"stickynote/internal/tui"

	"github.com/spf13/cobra"
)

func runTUI(cmd *cobra.Command, app *App) error {
	st := app.store()
	items := session.Restore(cmd.Context(), st, app.log)
	saver := app.newSaver(st)
	sess := session.New(items, session.Options{Persister: saver, Log: app.log})

	app.log.Infow("tui start", "items", len(items), "dataDir", st.Dir)
	err := tui.Run(cmd.Context(), sess, saver, tui.Options{
		Title:     app.cfg.TUI.Title,
		Mouse:     app.cfg.TUI.Mouse,
		AltScreen: app.cfg.TUI.AltScreen,
		Log:       app.log,
	})
	if err != nil {
		return writeErr(cmd, err)
	}
	return nil
}
