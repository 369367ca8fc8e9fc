// Terminal text adventure driven by declarative YAML world data. Player
// input goes through a chain of parser backends (generative first when
// configured, deterministic rules always last) and the resulting
// commands run against the flag-gated world model.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"fable/cmd/game/ui"
	"fable/internal/config"
	"fable/internal/debug"
	"fable/internal/engine"
	"fable/internal/loader"
	"fable/internal/logging"
	"fable/internal/observability"
	"fable/internal/parser"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "review", "--review":
			runReviewMode()
			return
		case "rate":
			runRatingMode()
			return
		}
	}

	gameDir := flag.String("game-dir", "./games/demo", "directory containing game.yaml and the world data")
	parserMode := flag.String("parser", "rule", "parser backend: rule, local, or api")
	debugMode := flag.Bool("debug", false, "write parser and engine details to debug.log")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	dbg := debug.NewLogger(*debugMode)
	ctx := context.Background()

	tp, err := observability.InitTracing(ctx, observability.Config{
		ServiceName:    "fable",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Environment,
		Enabled:        cfg.TraceEnabled,
		Endpoint:       cfg.TraceEndpoint,
		PublicKey:      cfg.TracePublicKey,
		SecretKey:      cfg.TraceSecretKey,
	})
	if err != nil {
		fmt.Printf("Failed to initialize tracing: %v\n", err)
		os.Exit(1)
	}
	defer tp.Shutdown(ctx)

	world, err := loader.Load(*gameDir, dbg)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	backends, cleanup := buildBackends(ctx, *parserMode, cfg, dbg)
	defer cleanup()
	chain := parser.NewChain(dbg, backends...)

	transcript, err := logging.NewTranscriptLogger(cfg.TranscriptDB)
	if err != nil {
		fmt.Printf("Failed to open transcript database: %v\n", err)
		os.Exit(1)
	}
	defer transcript.Close()

	sink := ui.NewSink()
	eng := engine.New(world, chain, sink, dbg)
	eng.AttachTranscript(transcript)

	p := tea.NewProgram(ui.NewModel(eng, sink, *debugMode), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// buildBackends assembles the generative tiers for the requested mode.
// A mode whose prerequisites are missing degrades to the rule tier with
// a one-time warning rather than failing.
func buildBackends(ctx context.Context, mode string, cfg config.Config, dbg *debug.Logger) ([]parser.Backend, func()) {
	cleanup := func() {}
	switch mode {
	case "rule":
		return nil, cleanup
	case "local":
		backend := parser.NewLocalBackend(cfg.LocalBaseURL, cfg.LocalAPIKey, cfg.LocalModel, dbg)
		return []parser.Backend{backend}, cleanup
	case "api":
		if cfg.GeminiAPIKey == "" {
			fmt.Println("Warning: GEMINI_API_KEY is not set; falling back to the rule-based parser.")
			return nil, cleanup
		}
		backend, err := parser.NewAPIBackend(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, dbg)
		if err != nil {
			fmt.Printf("Warning: api parser unavailable (%v); falling back to the rule-based parser.\n", err)
			return nil, cleanup
		}
		return []parser.Backend{backend}, backend.Close
	default:
		fmt.Printf("Unknown parser mode %q; using the rule-based parser.\n", mode)
		return nil, cleanup
	}
}

func runReviewMode() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	transcript, err := logging.NewTranscriptLogger(cfg.TranscriptDB)
	if err != nil {
		fmt.Printf("Failed to open transcript database: %v\n", err)
		return
	}
	defer transcript.Close()

	turns, err := transcript.GetRecentTurns(10)
	if err != nil {
		fmt.Printf("Failed to get turns: %v\n", err)
		return
	}
	if len(turns) == 0 {
		fmt.Println("No turns found. Play the game first to generate data!")
		return
	}

	fmt.Printf("Recent turns (%d):\n\n", len(turns))
	for _, turn := range turns {
		fmt.Printf("[%d] %s | %s | %dms | %s\n",
			turn.ID,
			turn.Timestamp.Format("15:04:05"),
			turn.Backend,
			turn.LatencyMS,
			turn.Input)
		fmt.Printf("Command: %s\n", turn.Command)
		fmt.Printf("Output: %s\n", turn.Output)
		if turn.Rating != nil {
			fmt.Printf("Rating: %d/5", *turn.Rating)
			if turn.Notes != "" {
				fmt.Printf(" - %s", turn.Notes)
			}
			fmt.Println()
		} else {
			fmt.Println("Rating: not rated")
		}
		fmt.Println(strings.Repeat("-", 50))
	}
	fmt.Println("\nTo rate a turn: game rate <id> <rating> [notes]")
}

func runRatingMode() {
	if len(os.Args) < 4 {
		fmt.Println("Usage: game rate <id> <rating> [notes]")
		return
	}
	id, err := strconv.Atoi(os.Args[2])
	if err != nil {
		fmt.Printf("Invalid ID: %v\n", err)
		return
	}
	rating, err := strconv.Atoi(os.Args[3])
	if err != nil {
		fmt.Printf("Invalid rating: %v\n", err)
		return
	}
	if rating < 1 || rating > 5 {
		fmt.Println("Rating must be between 1 and 5")
		return
	}
	var notes string
	if len(os.Args) > 4 {
		notes = strings.Join(os.Args[4:], " ")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	transcript, err := logging.NewTranscriptLogger(cfg.TranscriptDB)
	if err != nil {
		fmt.Printf("Failed to open transcript database: %v\n", err)
		return
	}
	defer transcript.Close()

	if err := transcript.RateTurn(id, rating, notes); err != nil {
		fmt.Printf("Failed to rate turn: %v\n", err)
		return
	}
	fmt.Printf("Rated turn %d as %d/5", id, rating)
	if notes != "" {
		fmt.Printf(" with notes: %s", notes)
	}
	fmt.Println()
}
