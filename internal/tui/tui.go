package tui

import (
	"context"
	"errors"

	"stickynote/internal/logging"
	"stickynote/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	Title     string
	Mouse     bool
	AltScreen bool
	Log       *logging.Logger
}

// SaveLoop is the background persistence loop (store.Saver).
type SaveLoop interface {
	Run(ctx context.Context) error
}

// Run shows the interactive note until the user quits or ctx is cancelled.
// The save loop runs alongside the program and writes any pending state
// before Run returns.
func Run(ctx context.Context, sess *session.Session, saver SaveLoop, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return saver.Run(gctx)
	})
	g.Go(func() error {
		// The saver stops (and drains) once the program is gone.
		defer cancel()

		popts := []tea.ProgramOption{tea.WithContext(gctx), tea.WithReportFocus()}
		if opts.AltScreen {
			popts = append(popts, tea.WithAltScreen())
		}
		if opts.Mouse {
			popts = append(popts, tea.WithMouseCellMotion())
		}
		_, err := tea.NewProgram(newAppModel(sess, opts), popts...).Run()
		if errors.Is(err, tea.ErrProgramKilled) && gctx.Err() != nil {
			return nil
		}
		return err
	})
	return g.Wait()
}
