// Command anvil builds the targets declared in a project's .anvil file
// and ships the bundled algorithm visualizer demos in headless form.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	mrand "math/rand/v2"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/deixis/anvil"
	"github.com/deixis/anvil/internal/config"
	anvilmcp "github.com/deixis/anvil/internal/mcp"
	"github.com/deixis/anvil/internal/pipeline"
	"github.com/deixis/anvil/internal/report"
	"github.com/deixis/anvil/maze"
	"github.com/deixis/anvil/sortviz"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("anvil: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "build":
		err = buildMain(args)
	case "status":
		err = statusMain(args)
	case "maze":
		err = mazeMain(args)
	case "sort":
		err = sortMain(args)
	case "mcp":
		err = mcpMain(args)
	case "version":
		fmt.Println(anvil.Version)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "anvil: unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: anvil <command> [flags] [targets]

Commands:
  build       Build stale targets from the .anvil file
  status      Report target freshness without building
  maze        Run a maze search algorithm headless and print stats
  sort        Run a sorting algorithm headless and print stats
  mcp         Start the MCP server
  version     Print the version
  help        Show this help

Use "anvil <command> -h" for command-specific flags.`)
}

// --- build ---

func buildMain(args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	always := fs.Bool("always", false, "rebuild targets even when fresh")
	jsonFlag := fs.Bool("json", false, "output results as JSON")
	verbose := fs.Bool("v", false, "debug logging")
	_ = fs.Parse(args)

	pipe, closeLog, err := newPipeline(*verbose)
	if err != nil {
		return err
	}
	defer closeLog()

	results, buildErr := pipe.Build(fs.Args(), *always)

	if *jsonFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			fmt.Printf("  %-15s %s\n", r.Target, r.Status)
		}
	}

	if buildErr != nil {
		return fmt.Errorf("build: %w", buildErr)
	}
	return nil
}

// --- status ---

func statusMain(args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	jsonFlag := fs.Bool("json", false, "output results as JSON")
	_ = fs.Parse(args)

	pipe, closeLog, err := newPipeline(false)
	if err != nil {
		return err
	}
	defer closeLog()

	statuses, err := pipe.Status()
	if err != nil {
		return fmt.Errorf("status: %w", err)
	}

	if *jsonFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(statuses)
	}

	for _, s := range statuses {
		state := "stale"
		if s.Fresh {
			state = "fresh"
		}
		fmt.Printf("  %-15s %s\n", s.Name, state)
	}
	return nil
}

// --- maze ---

func mazeMain(args []string) error {
	fs := flag.NewFlagSet("maze", flag.ExitOnError)
	algo := fs.String("algo", "bfs", fmt.Sprintf("search algorithm %v", maze.Names()))
	size := fs.Int("n", 31, "maze size (odd)")
	seed := fs.Uint64("seed", 0, "maze seed (0 uses the current time)")
	_ = fs.Parse(args)

	a, err := maze.ByName(*algo)
	if err != nil {
		return err
	}
	if *size < 3 || *size%2 == 0 {
		return fmt.Errorf("maze size must be odd and at least 3, got %d", *size)
	}

	sd := *seed
	if sd == 0 {
		sd = uint64(time.Now().UnixNano())
	}

	grid := maze.Generate(*size, sd)
	rng := mrand.New(mrand.NewPCG(sd, sd))
	start, goal := grid.RandomEndpoints(rng)

	search := maze.NewSearch(grid, start, goal)
	began := time.Now()
	found := maze.Solve(a, search)
	elapsed := time.Since(began)

	fmt.Printf("algo:    %s\n", a.Name())
	fmt.Printf("size:    %dx%d (seed %d)\n", *size, *size, sd)
	fmt.Printf("route:   (%d,%d) -> (%d,%d)\n", start.X, start.Y, goal.X, goal.Y)
	if found {
		fmt.Printf("path:    %d cells\n", len(search.Path()))
	} else {
		fmt.Printf("path:    not found\n")
	}
	fmt.Printf("steps:   %d\n", search.Steps())
	fmt.Printf("visited: %d\n", search.VisitedCount())
	fmt.Printf("time:    %s\n", elapsed)
	return nil
}

// --- sort ---

func sortMain(args []string) error {
	fs := flag.NewFlagSet("sort", flag.ExitOnError)
	algo := fs.String("algo", "bubble", fmt.Sprintf("sort algorithm %v", sortviz.Names()))
	count := fs.Int("n", 120, "number of values")
	seed := fs.Uint64("seed", 0, "input seed (0 uses the current time)")
	_ = fs.Parse(args)

	a, err := sortviz.ByName(*algo)
	if err != nil {
		return err
	}
	if *count < 0 {
		return fmt.Errorf("count must be non-negative, got %d", *count)
	}

	sd := *seed
	if sd == 0 {
		sd = uint64(time.Now().UnixNano())
	}

	state := sortviz.NewState(*count, sd)
	steps := sortviz.Run(a, state)

	fmt.Printf("algo:        %s\n", a.Name())
	fmt.Printf("values:      %d (seed %d)\n", *count, sd)
	fmt.Printf("steps:       %d\n", steps)
	fmt.Printf("comparisons: %d\n", state.Comparisons)
	fmt.Printf("swaps:       %d\n", state.Swaps)
	fmt.Printf("sorted:      %v\n", state.Sorted())
	fmt.Printf("time:        %s\n", state.Elapsed)
	return nil
}

// --- mcp ---

func mcpMain(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	instructions := fs.Bool("instructions", false, "print model instructions and exit")
	httpAddr := fs.String("http", "", "start HTTP server on address (e.g. :9090)")
	_ = fs.Parse(args)

	if *instructions {
		fmt.Print(anvilmcp.Instructions)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pipe, closeLog, err := newPipeline(false)
	if err != nil {
		return err
	}
	defer closeLog()

	server := anvilmcp.NewServer(pipe, pipe.Store)

	if *httpAddr != "" {
		return serveHTTP(ctx, server, *httpAddr)
	}
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}

func serveHTTP(ctx context.Context, server *mcpsdk.Server, addr string) error {
	handler := mcpsdk.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcpsdk.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		_ = httpServer.Close()
	}()

	log.Printf("listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// --- shared ---

// newPipeline loads the workspace config and assembles the logger,
// engine, store, and pipeline. The returned func closes the optional
// log file sink.
func newPipeline(verbose bool) (*pipeline.Pipeline, func(), error) {
	workspace, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("determining workspace: %w", err)
	}

	loaded, err := config.Load(workspace)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	cfg := loaded.Config

	level := cfg.Level()
	if verbose {
		level = anvil.LevelDebug
	}
	logger := anvil.NewLogger(anvil.LoggerOptions{
		Level:      level,
		Color:      cfg.Log.Color,
		Timestamps: cfg.Log.Timestamps,
		File:       cfg.Log.File,
	})

	engine := anvil.NewEngine(logger)
	if cfg.Compiler != "" {
		engine.Compiler = cfg.Compiler
	}

	store := report.NewLRUStore(16, report.NewDiskStore(""))

	pipe := pipeline.New(engine, cfg, store, loaded.Root)
	return pipe, func() { _ = logger.Close() }, nil
}
