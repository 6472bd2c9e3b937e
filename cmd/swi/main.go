package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/swi"
	"github.com/fwojciec/swi/goquery"
	"github.com/fwojciec/swi/induct"
	swislog "github.com/fwojciec/swi/slog"
	"github.com/fwojciec/swi/sqlite"
	"github.com/fwojciec/swi/trafilatura"
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
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	WrapperSetService swi.WrapperSetService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
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
		kong.Name("swi"),
		kong.Description("Learn extraction wrappers from labeled pages and apply them to new pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'swi --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SWI_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	var logger *slog.Logger
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	m.WrapperSetService = sqlite.NewWrapperSetService(m.DB)
	if logger != nil {
		m.WrapperSetService = swislog.NewLoggingWrapperSetService(m.WrapperSetService, logger)
	}
	deps.DB = m.DB
	deps.Sets = m.WrapperSetService

	var metadata swi.MetadataExtractor = goquery.NewMetadataExtractor()
	if cli.PageMetadata {
		metadata = trafilatura.NewMetadataExtractor(metadata)
	}
	deps.NewInducer = func(table swi.WrapperTable) swi.Inducer {
		engine := induct.NewEngine(goquery.NewParser(), metadata)
		if table != nil {
			engine.SetWrappers(table)
		}
		if logger != nil {
			return swislog.NewLoggingInducer(engine, logger)
		}
		return engine
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("SWI_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "swi.db"
	}
	dir := filepath.Join(home, ".swi")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "swi.db")
}
