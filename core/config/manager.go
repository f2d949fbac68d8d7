package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"github.com/adalundhe/spawnjoin/core/concurrency"
	"github.com/adalundhe/spawnjoin/core/storage"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidWorkers   = errors.New("runner.workers must not be negative")
	ErrInvalidLogLevel  = errors.New("unknown log level")
	ErrInvalidLogFormat = errors.New("unknown log format")
)

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

type Manager struct {
	config atomic.Pointer[Config]
	dirs   *storage.Dirs
	root   string
}

type Config struct {
	Runner RunnerConfig `yaml:"runner"`
	Log    LogConfig    `yaml:"log"`
}

type RunnerConfig struct {
	Workers int `yaml:"workers"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// NewManager creates a manager holding the default config. projectRoot is
// where the project-local .spawnjoin directory is looked up.
func NewManager(dirs *storage.Dirs, projectRoot string) *Manager {
	m := &Manager{
		dirs: dirs,
		root: projectRoot,
	}
	m.config.Store(DefaultConfig())
	return m
}

func DefaultConfig() *Config {
	return &Config{
		Runner: RunnerConfig{
			Workers: concurrency.DefaultWorkers,
		},
		Log: LogConfig{
			Level:  "info",
			Format: LogFormatText,
		},
	}
}

func (m *Manager) Get() *Config {
	return m.config.Load()
}

// Load builds the effective config from defaults, the user config, the
// project config and the environment.
func (m *Manager) Load() error {
	return m.LoadWithFile("")
}

// LoadWithFile is Load with an additional explicit config file applied after
// the project config. Unlike the implicit files, an explicit file must exist.
func (m *Manager) LoadWithFile(path string) error {
	cfg := DefaultConfig()

	if err := m.loadUserConfig(cfg); err != nil {
		return fmt.Errorf("user config: %w", err)
	}

	if err := m.loadProjectConfig(cfg); err != nil {
		return fmt.Errorf("project config: %w", err)
	}

	if path != "" {
		if err := loadRequiredYAMLFile(path, cfg); err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}
	}

	applyEnvironment(cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}

	m.config.Store(cfg)
	return nil
}

func (m *Manager) loadUserConfig(cfg *Config) error {
	if m.dirs == nil {
		return nil
	}
	return loadYAMLFile(m.dirs.ConfigDir("config.yaml"), cfg)
}

func (m *Manager) loadProjectConfig(cfg *Config) error {
	if m.root == "" {
		return nil
	}
	return loadYAMLFile(storage.ResolveProjectDirs(m.root).Config, cfg)
}

func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

func loadRequiredYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func applyEnvironment(cfg *Config) {
	if v := os.Getenv("SPAWNJOIN_WORKERS"); v != "" {
		if n, err := parseInt(v); err == nil {
			cfg.Runner.Workers = n
		}
	}
	if v := os.Getenv("SPAWNJOIN_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("SPAWNJOIN_LOG_FORMAT"); v != "" {
		cfg.Log.Format = strings.ToLower(v)
	}
}

func (c *Config) Validate() error {
	if c.Runner.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Runner.Workers)
	}
	return c.Log.Validate()
}

func (c LogConfig) Validate() error {
	if _, ok := logLevels[strings.ToLower(c.Level)]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Level)
	}
	switch strings.ToLower(c.Format) {
	case LogFormatText, LogFormatJSON:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Format)
	}
}

// SlogLevel maps the configured level name, defaulting to info.
func (c LogConfig) SlogLevel() slog.Level {
	if lvl, ok := logLevels[strings.ToLower(c.Level)]; ok {
		return lvl
	}
	return slog.LevelInfo
}

func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

func parseInt(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	return n, err
}
