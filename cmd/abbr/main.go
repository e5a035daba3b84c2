package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/shigekazukoya/abbr/cache"
	abbrhttp "github.com/shigekazukoya/abbr/http"
	abbrslog "github.com/shigekazukoya/abbr/slog"
	"github.com/shigekazukoya/abbr/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path and server base URL. Set before calling Run().
	DBPath    string
	ServerURL string

	// SQLite database backing the local dictionary cache.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:    defaultDBPath(),
		ServerURL: defaultServerURL(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("abbr"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) > 0 {
		cmd := args[0]
		if cmd == "help" || cmd == "--help" || cmd == "-h" {
			_, _ = parser.Parse([]string{"--help"})
			return nil
		}
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set ABBR_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	client := abbrhttp.NewClient(m.ServerURL, abbrhttp.WithLogger(logger))
	store := sqlite.NewDictionaryStore(m.DB)

	deps.DB = m.DB
	deps.Logger = logger
	deps.Manager = cache.NewManager(store, abbrslog.NewLoggingSyncClient(client, logger), logger)
	deps.Streamer = abbrslog.NewLoggingStreamer(client, logger)

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("ABBR_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "abbr.db"
	}
	dir := filepath.Join(home, ".abbr")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "abbr.db")
}

func defaultServerURL() string {
	if url := os.Getenv("ABBR_SERVER"); url != "" {
		return url
	}
	return "https://abbreviation-search.shigekazukoya.workers.dev"
}
