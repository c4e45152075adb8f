// Command mcp-wishbook provides an MCP server for scheduled-wish
// management.
//
// The server exposes tools for creating, listing and deleting wishes,
// projecting them into calendar windows, and generating greeting text.
//
// Usage:
//
//	./mcp-wishbook          # Start MCP server (stdio)
//	./mcp-wishbook --help   # Show help
//
// Environment:
//
//	WISHBOOK_CONFIG   Path to config file (default: ~/.wishbook/config.yaml)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/calendar"
	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/config"
	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/greeting"
	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/store"
	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/wishmcp"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h":
			printHelp()
			return
		}
	}

	configPath := os.Getenv("WISHBOOK_CONFIG")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.DBPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create data directory: %v\n", err)
		os.Exit(1)
	}

	st, err := store.Open(cfg.Storage.DBPath, cfg.Storage.MediaDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	view := calendar.New(st, cfg.Calendar.MaxProjectionSteps)

	// Greeting generation is optional here: without a usable provider the
	// other tools still work.
	var gen greeting.Provider
	if err := cfg.Validate(); err == nil {
		gen, err = greeting.NewProvider(cfg.GetProviderConfig())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: greeting provider unavailable: %v\n", err)
		}
	} else {
		fmt.Fprintf(os.Stderr, "Warning: greeting provider unavailable: %v\n", err)
	}
	if gen != nil {
		defer gen.Close()
	}

	s := wishmcp.NewServer(st, view, gen)

	if err := server.ServeStdio(s.MCPServer()); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`MCP Wishbook Server - Scheduled wish management via MCP protocol

USAGE:
    mcp-wishbook          Start MCP server (communicates via stdio)
    mcp-wishbook --help   Show this help

ENVIRONMENT:
    WISHBOOK_CONFIG   Path to config file
                      Default: ~/.wishbook/config.yaml

TOOLS:
    create_wish        Create a scheduled wish (wall-clock time, recurrence)
    list_wishes        List stored wishes (base records only)
    get_wish           Get a single wish by ID
    delete_wish        Delete a wish permanently
    set_wish_status    Set lifecycle status (scheduled, sent, failed)
    calendar_window    Project all wishes into a date window
    generate_greeting  Generate greeting text for an occasion`)
}
