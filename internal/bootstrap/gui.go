package bootstrap

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/peakfindr/peakfindr/internal/config"
	"github.com/peakfindr/peakfindr/internal/ui"
)

const (
	AppID   = "com.peakfindr.app"
	AppName = "Peakfindr"

	WindowWidth  = 420
	WindowHeight = 760
)

// RunGUI starts the desktop app and blocks until its window is closed
func RunGUI(opts Options, version string) error {
	path, cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	a := app.NewWithID(AppID)
	a.Settings().SetTheme(ui.NewTheme())

	// Per-device preferences win over the file.
	settings := config.NewSettings(a)
	settings.Apply(cfg)

	logger, err := NewLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("Starting", zap.String("version", version), zap.String("config", path))

	client, err := NewClient(cfg, logger)
	if err != nil {
		return err
	}
	session := NewSession(cfg, client, NewSaver(cfg, client), logger)
	defer session.Close()

	w := a.NewWindow(AppName)
	w.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	if icon, err := ui.LoadLogoResource(); err == nil {
		w.SetIcon(icon)
	}

	screen := ui.NewDiscoveryScreen(w, a, session, cfg, logger)
	screen.Reload()

	ctx, cancel := context.WithCancel(context.Background())
	done := watch(ctx, path, logger, func(next *config.Config) {
		settings.Apply(next)
		fyne.Do(func() { screen.ApplyConfig(next) })
	})
	defer func() {
		cancel()
		<-done
	}()

	w.ShowAndRun()
	return nil
}

// watch follows the config file in the background until ctx is done. The
// returned channel closes when the watcher has stopped.
func watch(ctx context.Context, path string, logger *zap.Logger, onChange func(*config.Config)) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := config.Watch(ctx, path, logger, onChange); err != nil {
			logger.Warn("Config reload disabled", zap.String("path", path), zap.Error(err))
		}
	}()
	return done
}
