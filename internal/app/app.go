package app

import (
	"fmt"
	"log/slog"

	"github.com/heartmarshall/kty/internal/config"
)

// Setup loads configuration from path (see config.Load), applies override
// (command-line flags) when given, initializes the logger and logs startup
// information.
func Setup(path string, override func(*config.Config)) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	if override != nil {
		override(cfg)
		if err := cfg.Validate(); err != nil {
			return nil, nil, fmt.Errorf("config: validate flags: %w", err)
		}
	}

	logger := NewLogger(cfg.Log)

	logger.Debug("starting kty",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("root_dir", cfg.Build.RootDir),
	)

	return cfg, logger, nil
}
