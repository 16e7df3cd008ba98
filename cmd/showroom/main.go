// Package main is the entry point for the showroom renderer.
package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/config"
	"github.com/Faultbox/showroom/internal/engine/shader"
	"github.com/Faultbox/showroom/internal/logger"
	"github.com/Faultbox/showroom/internal/showroom"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	os.Exit(run(cfg))
}

func run(cfg *config.Config) int {
	defer logger.Sync()

	logger.Info("=== Showroom ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	app, err := showroom.New(cfg)
	if err != nil {
		var stageErr *shader.StageError
		if errors.As(err, &stageErr) {
			logger.Error("shader program failed",
				zap.String("program", stageErr.Program),
				zap.String("stage", stageErr.Stage),
				zap.String("log", stageErr.Log))
		}
		logger.Error("failed to start showroom", zap.Error(err))
		return 1
	}
	defer app.Close()

	if err := app.Run(); err != nil {
		logger.Error("frame loop error", zap.Error(err))
		return 1
	}

	logger.Info("showroom closed normally")
	return 0
}
