package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"

	"github.com/shigekazukoya/abbr"
	"github.com/shigekazukoya/abbr/gemini"
	abbrgin "github.com/shigekazukoya/abbr/gin"
	"github.com/shigekazukoya/abbr/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Addr  string `default:":8787" help:"Listen address"`
	Seed  string `required:"" help:"Path to the YAML dictionary seed file"`
	Model string `default:"gemini-2.5-flash" help:"Gemini model used for explanations"`
	Debug bool   `help:"Enable debug logging"`
}

// Main represents the program.
type Main struct {
	// Generator overrides the Gemini-backed explanation generator. Set
	// before calling Run() for testing.
	Generator abbr.ExplanationGenerator
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run parses flags, loads the seed dictionary and serves until ctx is
// canceled.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("abbrd"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) > 0 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	record, err := yaml.LoadSource(cli.Seed)
	if err != nil {
		return fmt.Errorf("failed to load seed file %q: %w", cli.Seed, err)
	}

	generator := m.Generator
	if generator == nil {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		generator = gemini.NewGenerator(client, cli.Model)
	}

	server := &http.Server{
		Addr:    cli.Addr,
		Handler: abbrgin.NewServer(record, generator, logger).Handler(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("serving",
			slog.String("addr", cli.Addr),
			slog.Int64("dictionary_version", record.Version),
			slog.Int("abbreviations", len(record.Abbreviations)))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
