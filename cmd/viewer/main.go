// Package main is the entry point for the midgard-vrm spring-bone viewer.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-vrm/internal/config"
	"github.com/Faultbox/midgard-vrm/internal/logger"
	"github.com/Faultbox/midgard-vrm/internal/viewer"
	"github.com/Faultbox/midgard-vrm/pkg/avatar"
	"github.com/Faultbox/midgard-vrm/pkg/vrm"
)

func main() {
	// Parse CLI flags first
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
	defer logger.Sync()

	logger.Info("=== midgard-vrm viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		path := config.SavePath()
		if err := cfg.SaveTo(path); err != nil {
			logger.Error("failed to save config", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("config saved", zap.String("path", path))
	}

	if cfg.Model.Path == "" {
		fmt.Fprintln(os.Stderr, "Usage: viewer [flags] <model.vrm>")
		os.Exit(2)
	}

	model, err := vrm.Load(cfg.Model.Path)
	if err != nil {
		logger.Error("failed to load model", zap.Error(err))
		os.Exit(1)
	}

	opts := []avatar.Option{avatar.WithLogger(logger.Named("avatar"))}
	if cfg.Simulation.Sequential {
		opts = append(opts, avatar.WithSequential())
	}
	m := avatar.New(model, opts...)
	defer m.Dispose()

	title := model.Extension.Meta.Title
	if title == "" {
		title = filepath.Base(cfg.Model.Path)
	}

	v, err := viewer.New(cfg, title, m)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
