package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/unittesting-sample/internal/analytics"
	"github.com/kjstillabower/unittesting-sample/internal/app"
	"github.com/kjstillabower/unittesting-sample/internal/config"
	"github.com/kjstillabower/unittesting-sample/internal/lifecycle"
	"github.com/kjstillabower/unittesting-sample/internal/observability"
	"github.com/kjstillabower/unittesting-sample/internal/signup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := observability.NewLogger(cfg.AppName, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	undo := zap.ReplaceGlobals(logger)
	defer undo()

	var metricsOut io.Writer
	if cfg.MetricsDump {
		metricsOut = os.Stdout
	}
	if code := run(cfg, logger, metricsOut); code != 0 {
		_ = logger.Sync()
		os.Exit(code)
	}
}

// run launches the host and exercises the sample objects. Returns the process exit code.
func run(cfg *config.Config, logger *zap.Logger, metricsOut io.Writer) int {
	lifecycle.SetLogger(logger)
	tracker := analytics.Shared()

	host := app.NewHost(app.SelectDelegate(cfg.TestingMode, logger, tracker), logger)
	if !host.Launch(launchOptions(cfg.LaunchOptions)) {
		logger.Error("launch hook returned false; not continuing startup")
		return 1
	}

	for i := 0; i < cfg.DemoInstances; i++ {
		lifecycle.Scope(func(lc *lifecycle.LifeCycle) {
			lc.MethodOne()
			lc.MethodTwo()
		})
	}

	flow := signup.NewFlow(tracker)
	for _, ev := range cfg.DemoEvents {
		if ev == signup.EventCompleted {
			flow.Complete()
			continue
		}
		tracker.Track(ev)
	}

	host.SetShuttingDown(true)
	logger.Info("sample finished", zap.Int64("lifecycle_instances", lifecycle.Count()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := observability.FlushTelemetry(ctx, logger, metricsOut); err != nil {
		logger.Error("telemetry flush", zap.Error(err))
	}
	return 0
}

func launchOptions(opts map[string]string) app.LaunchOptions {
	out := make(app.LaunchOptions, len(opts))
	for k, v := range opts {
		out[k] = v
	}
	return out
}
