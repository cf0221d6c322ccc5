package bootstrap

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/peakfindr/peakfindr/internal/config"
	"github.com/peakfindr/peakfindr/internal/platform"
	"github.com/peakfindr/peakfindr/internal/tui"
)

// RunTUI starts the terminal app and blocks until the user quits or ctx is
// done. Logs go to a file since the terminal belongs to the app.
func RunTUI(ctx context.Context, opts Options) error {
	path, cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	logger, err := NewFileLogger(cfg, path)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("Starting terminal front-end", zap.String("config", path))

	client, err := NewClient(cfg, logger)
	if err != nil {
		return err
	}
	session := NewSession(cfg, client, NewSaver(cfg, client), logger)
	defer session.Close()

	model := tui.New(session, tui.Options{
		Logger:  logger,
		OpenURL: platform.OpenURL,
	})
	defer model.Close()

	watchCtx, cancel := context.WithCancel(ctx)
	done := watch(watchCtx, path, logger, func(next *config.Config) {
		ApplyConfig(session, next, logger)
	})
	defer func() {
		cancel()
		<-done
	}()

	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
