package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/uplog-tools/uplogview/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	endpoint := flag.String("endpoint", "", "GraphQL endpoint URL (optional, overrides config)")
	session := flag.String("session", "", "open this session directly (optional)")
	pageLength := flag.Int("page", 0, "records per fetch (optional)")
	followSeconds := flag.Int("follow", 0, "follow-mode refresh interval in seconds (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		Endpoint:   *endpoint,
		Session:    *session,
	}
	if page := *pageLength; page > 0 {
		opts.PageLength = page
	}
	if follow := *followSeconds; follow > 0 {
		opts.FollowEvery = follow
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "uplogview: %v\n", err)
		return 1
	}
	return 0
}
