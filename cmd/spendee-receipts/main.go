package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/chrisdevelops/receipt-to-spendee-to-csv/internal/batch"
	"github.com/chrisdevelops/receipt-to-spendee-to-csv/internal/extraction"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	fs := ff.NewFlagSet("spendee-receipts")
	var (
		port          = fs.IntLong("port", 8080, "HTTP server port")
		dbPath        = fs.StringLong("db", "", "BoltDB file path for a persistent batch (empty keeps the batch in memory for the session)")
		extractorType = fs.StringLong("extractor", "openai", "Extraction provider: 'openai' or 'gemini'")
		openaiKey     = fs.StringLong("openai-key", "", "OpenAI API key (or set OPENAI_API_KEY env var)")
		openaiModel   = fs.StringLong("openai-model", "gpt-4o-mini", "OpenAI model name")
		openaiURL     = fs.StringLong("openai-url", "", "OpenAI API base URL override")
		geminiKey     = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel   = fs.StringLong("gemini-model", "gemini-2.5-flash", "Google Gemini model name")
		showVersion   = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("SPENDEE"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Initialize the batch store
	var store batch.Store
	if *dbPath != "" {
		slog.Info("Initializing persistent batch store...", "path", *dbPath)
		boltStore, err := batch.NewBoltStore(*dbPath)
		if err != nil {
			slog.Error("Failed to initialize batch store", "error", err)
			os.Exit(1)
		}
		store = boltStore
	} else {
		slog.Info("Using in-memory batch store")
		store = batch.NewMemoryStore()
	}
	defer store.Close()

	// Initialize the extractor. A missing API key is not fatal here; the
	// extraction endpoint reports it as a configuration error per request.
	var (
		extractor extraction.Extractor
		err       error
	)
	switch *extractorType {
	case "openai":
		apiKey := *openaiKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			slog.Warn("OPENAI_API_KEY is not set; extraction requests will fail until it is configured")
		}
		slog.Info("Initializing OpenAI extractor...", "model", *openaiModel)
		extractor, err = extraction.NewOpenAI(apiKey, *openaiModel, *openaiURL)
		if err != nil {
			slog.Error("Failed to initialize OpenAI extractor", "error", err)
			os.Exit(1)
		}
	case "gemini":
		apiKey := *geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			slog.Warn("GEMINI_API_KEY is not set; extraction requests will fail until it is configured")
		}
		slog.Info("Initializing Gemini extractor...", "model", *geminiModel)
		extractor, err = extraction.NewGemini(apiKey, *geminiModel)
		if err != nil {
			slog.Error("Failed to initialize Gemini extractor", "error", err)
			os.Exit(1)
		}
	default:
		slog.Error("Invalid extractor type", "type", *extractorType, "valid", "openai or gemini")
		os.Exit(1)
	}
	defer extractor.Close()

	// Initialize service and server
	service := batch.NewService(store)
	server := batch.NewServer(service, extractor)

	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr))

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}
