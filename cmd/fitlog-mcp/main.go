package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/fitlog/internal/config"
	fitlogmcp "github.com/claude/fitlog/internal/mcp"
	"github.com/claude/fitlog/internal/storage"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (local mode)")
	remoteURL := flag.String("url", "", "Fitlog server base URL (remote mode)")
	token := flag.String("token", "", "session token for remote mode")
	userID := flag.Int("user", 1, "user ID to scope queries to (local mode)")
	flag.Parse()

	// Logs go to stderr; stdout is the MCP transport.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds fitlogmcp.DataSource

	if *remoteURL != "" {
		if *token == "" {
			fmt.Fprintf(os.Stderr, "Usage: fitlog-mcp -url https://fitlog.example -token <session-token>\n")
			flag.PrintDefaults()
			os.Exit(1)
		}
		ds = fitlogmcp.NewHTTPClient(*remoteURL, *token)
		log.Info("mcp server starting", "mode", "remote", "url", *remoteURL)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}

		db, err := storage.New(context.Background(), cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		ds = db
		log.Info("mcp server starting", "mode", "local", "user", *userID)
	}

	s := fitlogmcp.New(ds, Version, log)

	err := server.ServeStdio(s, server.WithStdioContextFunc(func(ctx context.Context) context.Context {
		return fitlogmcp.WithUserID(ctx, *userID)
	}))
	if err != nil {
		log.Error("mcp server stopped", "error", err)
		os.Exit(1)
	}
}
