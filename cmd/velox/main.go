// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 Jared Redh. All rights reserved.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/jredh-dev/velox/cmd/velox/internal/app"
	"github.com/jredh-dev/velox/internal/catalog"
	"github.com/jredh-dev/velox/internal/config"
	"github.com/jredh-dev/velox/internal/insight"
)

var version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	envFile := flag.String("env-file", ".env", "Optional dotenv file")
	flag.Parse()

	if *showVersion {
		fmt.Printf("velox %s\n", version)
		os.Exit(0)
	}

	if err := config.LoadDotEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "velox: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Load()

	// The terminal belongs to the UI; logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if cfg.Storefront.LogFile != "" {
		f, err := os.OpenFile(cfg.Storefront.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "velox: open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)

	store, err := catalog.NewSeededStore(time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "velox: %v\n", err)
		os.Exit(1)
	}
	provider := insight.FromConfig(context.Background(), cfg.Insight, logger)

	m := app.New(catalog.NewSession(store), provider, cfg.Storefront.BidderName,
		app.WithLocation(cfg.Location()),
		app.WithCadence(cfg.Countdown.Coarse, cfg.Countdown.Fine),
	)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "velox: %v\n", err)
		os.Exit(1)
	}
}
