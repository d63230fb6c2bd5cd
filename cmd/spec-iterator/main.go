// Spec Iterator: Requirement Clarification MCP Server
//
// An MCP server that turns vague requirements into structured
// specification documents through iterative clarification rounds.
// It connects to any MCP-capable AI tool over stdio.
//
// Usage:
//
//	spec-iterator serve   # Start MCP server (stdio transport)
//	spec-iterator scan    # Scan outputs/ and update project stages
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/HendryAvila/spec-iterator/internal/config"
	specserver "github.com/HendryAvila/spec-iterator/internal/server"
	"github.com/HendryAvila/spec-iterator/internal/stagescan"
)

func main() {
	// Logs go to stderr; stdout belongs to the MCP stdio transport.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "scan":
		if err := runScan(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("spec-iterator v%s\n", specserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runServe() error {
	cfg := config.Load()

	s, err := specserver.New(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	if cfg.Anthropic.APIKey == "" {
		fmt.Fprintln(os.Stderr, "Warning: ANTHROPIC_API_KEY not set; question generation will fail until it is configured")
	}

	return server.ServeStdio(s)
}

// runScan scans the outputs directory once and persists the inferred
// project stages.
func runScan() error {
	cfg := config.Load()

	projects, err := stagescan.Scan(cfg.Scan.OutputsDir)
	if err != nil {
		return err
	}

	store, err := stagescan.NewStore(cfg.Scan.DataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, p := range projects {
		if err := store.Upsert(p); err != nil {
			return err
		}
	}

	sum, err := store.Summarize()
	if err != nil {
		return err
	}

	fmt.Printf("Scanned %d project(s), %d tracked total\n", len(projects), sum.TotalProjects)
	for _, phase := range stagescan.Phases {
		if n := sum.ByPhase[phase]; n > 0 {
			fmt.Printf("  %-7s %d\n", phase, n)
		}
	}
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Spec Iterator v%s — Requirement Clarification MCP Server

Usage:
  spec-iterator serve    Start the MCP server (stdio transport)
  spec-iterator scan     Scan outputs/ and update project stages

Configuration:
  ANTHROPIC_API_KEY            API key for question generation (required for serve)
  ANTHROPIC_BASE_URL           Override the API endpoint
  SPEC_ITERATOR_MODEL          Override the default model
  SPEC_ITERATOR_OUTPUTS_DIR    Directory scanned by "scan" (default: outputs)
  SPEC_ITERATOR_DATA_DIR       Scan database location (default: ~/.spec-iterator)

  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "spec-iterator": {
        "command": "spec-iterator",
        "args": ["serve"],
        "env": { "ANTHROPIC_API_KEY": "sk-..." }
      }
    }
  }
`, specserver.Version)
}
