// Package main provides the entry point for the callhub-mcp server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/johncallhub/CallHub-MCP/internal/auth"
	"github.com/johncallhub/CallHub-MCP/internal/config"
	"github.com/johncallhub/CallHub-MCP/internal/jobs"
	"github.com/johncallhub/CallHub-MCP/internal/progress"
	"github.com/johncallhub/CallHub-MCP/internal/server"
	"github.com/johncallhub/CallHub-MCP/internal/state"
	"github.com/johncallhub/CallHub-MCP/internal/tools"
)

const version = "0.1.0"

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logger (dual output: stderr text + file JSON)
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()

	// Log startup info
	logger.Info("callhub-mcp starting",
		"version", version,
		"base_url", cfg.BaseURL,
		"credentials", cfg.CredentialsPath,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Shared services
	accounts := auth.NewStore(cfg.CredentialsPath, logger)
	checkpoints := state.NewStore("", logger)
	manager := jobs.NewManager(logger)

	// Progress broadcasting is opt-in via CALLHUB_PROGRESS_ADDR
	var broadcaster *progress.Broadcaster
	if cfg.ProgressAddr != "" {
		broadcaster = progress.NewBroadcaster(logger)
		if err := broadcaster.Start(cfg.ProgressAddr); err != nil {
			logger.Error("failed to start progress broadcaster", "addr", cfg.ProgressAddr, "error", err)
			os.Exit(1)
		}
		defer broadcaster.Close()
		logger.Info("progress broadcaster listening", "addr", cfg.ProgressAddr)
	}

	// Create and setup server
	srv := server.New(version, logger)
	srv.Setup()

	// Register tools
	deps := &tools.Dependencies{
		Accounts:    accounts,
		Jobs:        manager,
		State:       checkpoints,
		Broadcaster: broadcaster,
		Config:      &cfg,
		Logger:      logger,
	}
	tools.RegisterAll(srv.MCPServer(), deps)
	logger.Info("tools registered")

	// Log ready state
	logger.Info("server ready, awaiting connections")

	// Run server (blocks until disconnect or context cancelled)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}
