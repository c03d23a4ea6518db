package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/repbook/internal/config"
	"github.com/meltforce/repbook/internal/mcp"
	"github.com/meltforce/repbook/internal/stats"
	"github.com/meltforce/repbook/internal/storage"
	"github.com/meltforce/repbook/internal/store"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// stdout carries the MCP transport; logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("repbook MCP server starting", "version", Version)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := storage.Open(cfg.Storage.Path, cfg.Storage.StateKey)
	if err != nil {
		log.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	st := store.New(context.Background(), db, stats.SimulatedDuration{}, log)
	srv := mcp.New(st, Version, log)

	if err := mcpserver.ServeStdio(srv); err != nil {
		log.Error("mcp server error", "error", err)
		st.Flush()
		os.Exit(1)
	}

	// Let the last scheduled state write land before closing the database.
	st.Flush()
	log.Info("mcp server stopped")
}
