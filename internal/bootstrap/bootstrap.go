package bootstrap

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/peakfindr/peakfindr/internal/api"
	"github.com/peakfindr/peakfindr/internal/config"
	"github.com/peakfindr/peakfindr/internal/discovery"
	"github.com/peakfindr/peakfindr/internal/dispatch"
	"github.com/peakfindr/peakfindr/internal/logging"
	"github.com/peakfindr/peakfindr/internal/platform"
)

// LogFileName is where the terminal front-end logs, next to the config file
const LogFileName = "peakfindr.log"

// Options are the command-line inputs shared by every front-end
type Options struct {
	// ConfigPath is the yaml file; empty means platform.DefaultConfigPath
	ConfigPath string
	// Verbose forces debug logging regardless of the file
	Verbose bool
}

// ResolveConfigPath returns the configuration path for opts
func ResolveConfigPath(opts Options) (string, error) {
	if opts.ConfigPath != "" {
		return opts.ConfigPath, nil
	}
	return platform.DefaultConfigPath()
}

// LoadConfig reads the configuration file for opts. A missing file yields
// the defaults.
func LoadConfig(opts Options) (string, *config.Config, error) {
	path, err := ResolveConfigPath(opts)
	if err != nil {
		return "", nil, err
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return "", nil, err
	}
	if opts.Verbose {
		cfg.Log.Level = "debug"
	}
	return path, cfg, nil
}

// NewLogger builds the stderr logger described by cfg
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.Log.Level, cfg.Log.Development)
}

// NewFileLogger builds a logger writing next to the config file at path
func NewFileLogger(cfg *config.Config, path string) (*zap.Logger, error) {
	if err := platform.EnsureConfigDir(path); err != nil {
		return nil, err
	}
	return logging.NewFile(cfg.Log.Level, cfg.Log.Development, filepath.Join(filepath.Dir(path), LogFileName))
}

// NewClient creates the backend client for cfg
func NewClient(cfg *config.Config, logger *zap.Logger) (*api.Client, error) {
	client, err := api.NewClient(api.Options{
		BaseURL:   cfg.API.BaseURL,
		Token:     cfg.API.Token,
		UserID:    cfg.API.UserID,
		Timeout:   cfg.API.Timeout,
		FeedLimit: cfg.API.Limit,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating api client: %w", err)
	}
	return client, nil
}

// NewSaver returns the recorder right swipes go through, honouring
// dispatch.save_action
func NewSaver(cfg *config.Config, client *api.Client) *api.Saver {
	return client.Saver(cfg.SaveAction())
}

// NewSession builds a discovery session over loader. Saves go to saves;
// skips are only logged since the backend keeps no skip history. Tapped
// items are delivered through Session.OnOpenDetail.
func NewSession(cfg *config.Config, loader discovery.Loader, saves dispatch.SaveRecorder, logger *zap.Logger) *discovery.Session {
	return discovery.NewSession(loader, discovery.Options{
		User:     cfg.API.UserID,
		Category: cfg.Category(),
		Swipe:    cfg.SwipeConfig(),
		Stack:    cfg.StackConfig(),
		Dispatch: cfg.DispatchConfig(),
		Collaborators: dispatch.Collaborators{
			Skips: dispatch.LogSkips(logger),
			Saves: saves,
		},
		Logger: logger,
	})
}

// ApplyConfig pushes the live-tunable parts of cfg into session. Backend
// address and user changes take effect on the next start.
func ApplyConfig(session *discovery.Session, cfg *config.Config, logger *zap.Logger) {
	if err := session.Reconfigure(cfg.SwipeConfig(), cfg.StackConfig(), cfg.Category()); err != nil {
		logger.Warn("Rejected configuration", zap.Error(err))
	}
}
