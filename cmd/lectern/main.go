// Command lectern resolves spoken or typed scripture references into
// structured passages. It provides one-shot resolution, a stdin watch mode
// for live transcript streams, and the resolve API server.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/Lectern/core/books"
	"github.com/FocuswithJustin/Lectern/core/passage"
	"github.com/FocuswithJustin/Lectern/core/resolve"
	"github.com/FocuswithJustin/Lectern/internal/api"
	"github.com/FocuswithJustin/Lectern/internal/history"
	"github.com/FocuswithJustin/Lectern/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface for lectern.
var CLI struct {
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)" default:"info"`
	LogFormat string `name:"log-format" help:"Log format (json, text)" default:"text"`

	Resolve ResolveCmd `cmd:"" help:"Resolve one reference from the command line"`
	Watch   WatchCmd   `cmd:"" help:"Resolve a transcript stream from stdin, line by line"`
	Serve   ServeCmd   `cmd:"" help:"Start the resolve API server"`
	Books   BooksCmd   `cmd:"" help:"List the book catalog"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// ResolveCmd resolves a single utterance.
type ResolveCmd struct {
	Text []string `arg:"" help:"Utterance text to resolve"`
	JSON bool     `help:"Emit JSON instead of plain references"`
}

func (c *ResolveCmd) Run() error {
	session := resolve.NewSession()
	passages := session.Resolve(strings.Join(c.Text, " "))
	return emit(passages, c.JSON)
}

// WatchCmd consumes a live transcript stream on stdin. Each line is one
// utterance; conversational context carries across lines so "verse 17"
// resolves against the previous passage.
type WatchCmd struct {
	JSON    bool   `help:"Emit JSON instead of plain references"`
	History string `help:"Record resolutions to this SQLite database" type:"path"`
}

func (c *WatchCmd) Run() error {
	var store *history.Store
	if c.History != "" {
		var err error
		store, err = history.Open(c.History)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer store.Close()
	}

	session := resolve.NewSession()
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		passages := session.Resolve(line)
		if len(passages) == 0 {
			continue
		}
		if store != nil {
			if err := store.Record(context.Background(), "watch", line, passages[0]); err != nil {
				logging.Error("history record failed", "error", err)
			}
		}
		if err := emit(passages, c.JSON); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	return nil
}

// ServeCmd starts the resolve API server.
type ServeCmd struct {
	Port              int      `help:"HTTP server port" default:"8470"`
	History           string   `help:"SQLite history database path" type:"path"`
	APIKey            string   `name:"api-key" help:"Require this API key (X-API-Key header)" env:"LECTERN_API_KEY"`
	RateLimitRequests int      `help:"Requests per minute per client (0 = disabled)" default:"0"`
	RateLimitBurst    int      `help:"Rate limit burst size" default:"10"`
	AllowedOrigins    []string `help:"CORS allowed origins (empty = allow all)"`
}

func (c *ServeCmd) Run() error {
	cfg := api.Config{
		Port:              c.Port,
		HistoryPath:       c.History,
		RateLimitRequests: c.RateLimitRequests,
		RateLimitBurst:    c.RateLimitBurst,
		AllowedOrigins:    c.AllowedOrigins,
		Auth: api.AuthConfig{
			Enabled: c.APIKey != "",
			APIKey:  c.APIKey,
		},
	}
	server, err := api.NewServer(cfg)
	if err != nil {
		return err
	}
	defer server.Close()
	return server.Start()
}

// BooksCmd lists the catalog.
type BooksCmd struct {
	JSON bool `help:"Emit JSON instead of a plain listing"`
}

func (c *BooksCmd) Run() error {
	all := books.All()
	if c.JSON {
		return json.NewEncoder(os.Stdout).Encode(all)
	}
	for _, b := range all {
		fmt.Printf("%-3d %-20s %3d chapters\n", b.Order, b.Name, b.Chapters)
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("lectern version %s\n", version)
	return nil
}

// emit prints resolved passages, or "no match" to stderr when empty.
func emit(passages []passage.Passage, asJSON bool) error {
	if len(passages) == 0 {
		fmt.Fprintln(os.Stderr, "no match")
		return nil
	}
	if asJSON {
		return json.NewEncoder(os.Stdout).Encode(passages)
	}
	for _, p := range passages {
		fmt.Println(p.Reference())
	}
	return nil
}

// initLogging applies the global log flags.
func initLogging() {
	level := logging.LevelInfo
	switch strings.ToLower(CLI.LogLevel) {
	case "debug":
		level = logging.LevelDebug
	case "warn":
		level = logging.LevelWarn
	case "error":
		level = logging.LevelError
	}
	format := logging.FormatText
	if strings.EqualFold(CLI.LogFormat, "json") {
		format = logging.FormatJSON
	}
	logging.InitLogger(level, format)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("lectern"),
		kong.Description("Lectern - live scripture reference resolution"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	initLogging()
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
