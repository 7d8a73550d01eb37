package config

import (
	"os"

	"go.uber.org/config"

	"github.com/finwatch/asset/cbr"
	"github.com/finwatch/asset/logger"
	"github.com/finwatch/asset/server"
	"github.com/finwatch/asset/store"
)

// AppConfig holds all application configuration.
type AppConfig struct {
	Logger logger.Config `yaml:"logger"`
	Server server.Config `yaml:"server"`
	CBR    cbr.Config    `yaml:"cbr"`
	Store  store.Config  `yaml:"store"`
}

// Load reads configuration from the specified YAML files.
// Files are merged in order, with later files overriding earlier ones.
// Missing files are silently ignored.
func Load(files ...string) (*AppConfig, error) {
	opts := make([]config.YAMLOption, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			opts = append(opts, config.File(f))
		}
	}

	if len(opts) == 0 {
		return nil, os.ErrNotExist
	}

	provider, err := config.NewYAML(opts...)
	if err != nil {
		return nil, err
	}

	var cfg AppConfig
	if err := provider.Get(config.Root).Populate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadWithDefaults loads configuration with sensible defaults.
func LoadWithDefaults(files ...string) (*AppConfig, error) {
	cfg, err := Load(files...)
	if err != nil {
		return nil, err
	}

	// Apply defaults
	if cfg.Logger.Name == "" {
		cfg.Logger.Name = logger.DefaultName
	}
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "debug"
	}
	if len(cfg.Logger.Handlers) == 0 {
		cfg.Logger.Handlers = DefaultHandlers()
	}
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8080"
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "data/asset.db"
	}
	cfg.CBR.Defaults()

	return cfg, nil
}

// DefaultHandlers is the canonical handler set: debug and above to
// asset_log.debug, warnings and above to asset_log.warn, info and above to
// stderr.
func DefaultHandlers() []logger.Handler {
	return []logger.Handler{
		{
			Name:     "debug_file_handler",
			Kind:     logger.KindFile,
			Level:    "debug",
			Filename: "asset_log.debug",
		},
		{
			Name:     "warn_file_handler",
			Kind:     logger.KindFile,
			Level:    "warning",
			Filename: "asset_log.warn",
		},
		{
			Name:   "info_stream_handler",
			Kind:   logger.KindStream,
			Level:  "info",
			Stream: logger.StreamStderr,
		},
	}
}
