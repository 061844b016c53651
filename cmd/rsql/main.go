// cmd/rsql/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/rsql-tui/rsql/internal/app"
	"github.com/rsql-tui/rsql/internal/config"
	"github.com/rsql-tui/rsql/internal/logger"
	"github.com/rsql-tui/rsql/internal/session"
	"github.com/rsql-tui/rsql/internal/theme"
	"github.com/rsql-tui/rsql/internal/tui"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// --- Argument & Flag Parsing ---
	flags := config.NewFlags(config.AppName)
	if _, err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, config.Version)
		return 0
	}

	cfg, err := config.Load(*flags.ConfigFilePath, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		return 1
	}

	// --- Logger Initialization ---
	logCloser, err := logger.Init(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		return 1
	}
	defer logCloser.Close()
	logger.Infof("Starting %s %s", config.AppName, config.Version)

	// --- Session ---
	dbCfg, err := session.FromConfig(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connection failed: %v\n", err)
		return 1
	}
	ctx, cancel := context.WithTimeout(context.Background(), session.DialTimeout)
	sess, err := session.Connect(ctx, dbCfg)
	cancel()
	if err != nil {
		logger.Errorf("Connection failed: %v", err)
		fmt.Fprintf(os.Stderr, "connection failed: %v\n", err)
		return 1
	}

	// --- Create and Run App ---
	th, err := theme.FromConfig(cfg.Theme)
	if err != nil {
		logger.Warnf("Invalid theme config, using %s: %v", theme.Plain.Name, err)
		th = &theme.Plain
	}
	t, err := tui.New(th)
	if err != nil {
		sess.Close()
		logger.Errorf("Error initializing terminal: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		return 1
	}

	if err := app.New(cfg, t, app.WithSession(sess)).Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		return 1
	}

	logger.Infof("%s finished.", config.AppName)
	return 0
}
