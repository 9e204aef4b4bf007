package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zeusync/roomscan/internal/core/observability/log"
	"github.com/zeusync/roomscan/internal/core/scenario"
	"github.com/zeusync/roomscan/internal/injector"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML scenario; defaults to the built-in run")
	serve := flag.Bool("serve", false, "serve the scan feed instead of running the scenario steps")
	logLevel := flag.String("log-level", "", "override the scenario log level")
	flag.Parse()

	if err := run(*configPath, *serve, *logLevel); err != nil {
		fmt.Fprintln(os.Stderr, "roomscan:", err)
		os.Exit(1)
	}
}

func run(configPath string, serve bool, logLevel string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		if cfg.Log.Level, err = log.ParseLevel(logLevel); err != nil {
			return err
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app, err := injector.InitializeApp(ctx, cfg)
	if err != nil {
		return err
	}

	if serve {
		return serveFeed(ctx, app)
	}

	enc := json.NewEncoder(os.Stdout)
	return scenario.Run(ctx, app.Robot, app.Scene, cfg.Steps, func(result scenario.Result) error {
		return enc.Encode(result)
	})
}

func loadConfig(path string) (*scenario.Config, error) {
	if path == "" {
		cfg := scenario.Default()
		return &cfg, nil
	}
	return scenario.LoadFile(path)
}

func serveFeed(ctx context.Context, app *injector.App) error {
	if err := app.Server.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()

	if err := app.Server.Stop(context.Background()); err != nil {
		app.Logger.Error("Error stopping server", log.Error(err))
		return err
	}
	return nil
}
