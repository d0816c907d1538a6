package app

import (
	"context"
	"fmt"
	"time"

	"github.com/uplog-tools/uplogview/internal/config"
	"github.com/uplog-tools/uplogview/internal/gateway"
	"github.com/uplog-tools/uplogview/internal/ui"
)

// Options configure the uplogview application. Zero values defer to the
// config file, which in turn defers to built-in defaults.
type Options struct {
	ConfigPath  string
	Endpoint    string // overrides config endpoint
	Session     string // open this session directly, skipping the list
	PageLength  int    // records per fetch
	FollowEvery int    // follow-mode cadence in seconds
}

// Run boots the uplogview TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.Endpoint != "" {
		cfg.Endpoint = opts.Endpoint
	}
	if opts.PageLength > 0 {
		cfg.PageLength = opts.PageLength
	}
	if opts.FollowEvery > 0 {
		cfg.FollowSeconds = opts.FollowEvery
	}

	logger, closeLog, err := newLogger(cfg.DebugLog)
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	defer closeLog()

	client, err := gateway.NewClient(gateway.Options{
		Endpoint: cfg.Endpoint,
		Headers:  cfg.Headers,
	})
	if err != nil {
		return fmt.Errorf("init gateway client: %w", err)
	}

	logger.Info().
		Str("endpoint", cfg.Endpoint).
		Int("page_length", cfg.PageLength).
		Msg("starting")

	uiOpts := ui.Options{
		Context:     ctx,
		Client:      client,
		Config:      cfg,
		Logger:      logger,
		Session:     opts.Session,
		FollowEvery: time.Duration(cfg.FollowSeconds) * time.Second,
	}
	return ui.Run(uiOpts)
}
