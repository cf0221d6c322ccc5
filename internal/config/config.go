package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/peakfindr/peakfindr/internal/api"
	"github.com/peakfindr/peakfindr/internal/dispatch"
	"github.com/peakfindr/peakfindr/internal/model"
	"github.com/peakfindr/peakfindr/internal/stack"
	"github.com/peakfindr/peakfindr/internal/swipe"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Default values
const (
	MaxFeedLimit    = 100
	DefaultLogLevel = "info"
)

// Config is the file-backed application configuration
type Config struct {
	API struct {
		BaseURL string        `yaml:"base_url"` // backend root, no trailing slash
		Token   string        `yaml:"token"`    // bearer token, optional
		UserID  string        `yaml:"user_id"`  // user the discovery feed is built for
		Timeout time.Duration `yaml:"timeout"`  // per-request timeout
		Limit   int           `yaml:"limit"`    // items per discovery fetch
	} `yaml:"api"`
	Swipe struct {
		Threshold  float64 `yaml:"threshold"`   // horizontal distance for skip/save
		TapEpsilon float64 `yaml:"tap_epsilon"` // movement still treated as a tap
	} `yaml:"swipe"`
	Stack struct {
		Visible         int     `yaml:"visible"`
		OffsetStep      float64 `yaml:"offset_step"`
		ScaleStep       float64 `yaml:"scale_step"`
		ScaleCap        float64 `yaml:"scale_cap"`
		RotationDivisor float64 `yaml:"rotation_divisor"`
	} `yaml:"stack"`
	Dispatch struct {
		RollbackOnSaveFailure bool   `yaml:"rollback_on_save_failure"`
		SaveAction            string `yaml:"save_action"` // save, like or both
	} `yaml:"dispatch"`
	Discovery struct {
		Category string `yaml:"category"` // all, food, sights or hiking
	} `yaml:"discovery"`
	Log struct {
		Level       string `yaml:"level"`       // debug, info, warn, error
		Development bool   `yaml:"development"` // console encoder, stack traces on warn
	} `yaml:"log"`
}

// Default returns the built-in configuration
func Default() *Config {
	cfg := &Config{}
	cfg.API.BaseURL = api.DefaultBaseURL
	cfg.API.Timeout = api.DefaultTimeout
	cfg.API.Limit = api.DefaultFeedLimit

	sw := swipe.DefaultConfig()
	cfg.Swipe.Threshold = sw.Threshold
	cfg.Swipe.TapEpsilon = sw.TapEpsilon

	st := stack.DefaultConfig()
	cfg.Stack.Visible = st.Visible
	cfg.Stack.OffsetStep = st.OffsetStep
	cfg.Stack.ScaleStep = st.ScaleStep
	cfg.Stack.ScaleCap = st.ScaleCap
	cfg.Stack.RotationDivisor = st.RotationDivisor

	cfg.Dispatch.SaveAction = string(api.SaveActionSave)
	cfg.Discovery.Category = string(model.CategoryAll)
	cfg.Log.Level = DefaultLogLevel
	return cfg
}

// LoadFile reads path and merges it over the defaults. A missing file yields
// the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Decoding into the populated defaults keeps every key the file omits.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating the parent directory
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

// Encode writes cfg to w as YAML
func (c *Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return enc.Close()
}

// Validate checks every section
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url is empty", ErrInvalidConfig)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("%w: api.timeout must be positive", ErrInvalidConfig)
	}
	if c.API.Limit < 1 || c.API.Limit > MaxFeedLimit {
		return fmt.Errorf("%w: api.limit must be within 1..%d, got %d", ErrInvalidConfig, MaxFeedLimit, c.API.Limit)
	}
	if err := c.SwipeConfig().Validate(); err != nil {
		return fmt.Errorf("%w: swipe: %v", ErrInvalidConfig, err)
	}
	if err := c.StackConfig().Validate(); err != nil {
		return fmt.Errorf("%w: stack: %v", ErrInvalidConfig, err)
	}
	if _, err := api.ParseSaveAction(c.Dispatch.SaveAction); err != nil {
		return fmt.Errorf("%w: dispatch: %v", ErrInvalidConfig, err)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalidConfig, c.Log.Level)
	}
	return nil
}

// SwipeConfig returns the gesture thresholds
func (c *Config) SwipeConfig() swipe.Config {
	return swipe.Config{
		Threshold:  c.Swipe.Threshold,
		TapEpsilon: c.Swipe.TapEpsilon,
	}
}

// StackConfig returns the stack layout
func (c *Config) StackConfig() stack.Config {
	return stack.Config{
		Visible:         c.Stack.Visible,
		OffsetStep:      c.Stack.OffsetStep,
		ScaleStep:       c.Stack.ScaleStep,
		ScaleCap:        c.Stack.ScaleCap,
		RotationDivisor: c.Stack.RotationDivisor,
	}
}

// DispatchConfig returns the dispatcher options
func (c *Config) DispatchConfig() dispatch.Config {
	return dispatch.Config{
		RollbackOnSaveFailure: c.Dispatch.RollbackOnSaveFailure,
		CallTimeout:           c.API.Timeout,
	}
}

// SaveAction returns which interaction endpoints a right swipe reaches
func (c *Config) SaveAction() api.SaveAction {
	action, err := api.ParseSaveAction(c.Dispatch.SaveAction)
	if err != nil {
		return api.SaveActionSave
	}
	return action
}

// Category returns the configured discovery filter
func (c *Config) Category() model.Category {
	return model.ParseCategory(c.Discovery.Category)
}
