// Package main is the pdfsearch CLI entry point.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hokkyo/pdfsearch/internal/cli"
	"github.com/hokkyo/pdfsearch/internal/config"
	"github.com/hokkyo/pdfsearch/internal/extract"
	"github.com/hokkyo/pdfsearch/internal/index"
	"github.com/hokkyo/pdfsearch/internal/models"
	"github.com/hokkyo/pdfsearch/internal/scan"
	"github.com/hokkyo/pdfsearch/internal/search"
	"github.com/hokkyo/pdfsearch/internal/server"
	"github.com/hokkyo/pdfsearch/internal/snapshot"
	"github.com/hokkyo/pdfsearch/internal/watcher"
	"github.com/hokkyo/pdfsearch/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "config.yaml"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	switch os.Args[1] {
	case "serve":
		runServe(os.Args[2:])
	case "reindex":
		runReindex(os.Args[2:])
	case "status":
		runStatus(os.Args[2:])
	case "version", "--version", "-v":
		fmt.Printf("pdfsearch version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		// Positional invocation: pdfsearch [flags] <filetype> <directory> <query>
		runSearch(os.Args[1:])
	}
}

func printUsage() {
	fmt.Printf(`pdfsearch — term-frequency document search

Usage:
  pdfsearch [flags] <filetype> <directory> <query>   search a directory
  pdfsearch reindex [flags] <filetype> <directory>   force a full rebuild
  pdfsearch status [flags] <directory>               inspect the index snapshot
  pdfsearch serve [flags]                            run the HTTP API
  pdfsearch version                                  print version

The first run indexes every <filetype> file in <directory> and persists the
index as a snapshot inside that directory. Later runs reuse the snapshot
until it is a week old, then reindex from scratch.

Examples:
  pdfsearch pdf ./books compiler
  pdfsearch -output json txt ./notes meeting
  pdfsearch reindex pdf ./books
  pdfsearch serve -dir ./books -type pdf -watch
`)
}

// fatalf prints a diagnostic and terminates. Configuration and I/O failures
// are unrecoverable; no partial work is attempted.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// argsReorder moves flags (and their values) that appear after positional
// arguments to the front so flag.Parse sees them; the flag package stops
// parsing at the first non-flag argument.
func argsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

// newStore builds the snapshot store for dir from config.
func newStore(dir string, cfg *config.Config, logger *zap.Logger) *snapshot.Store {
	return snapshot.NewStore(dir,
		snapshot.WithFilename(cfg.Snapshot.Filename),
		snapshot.WithTTL(cfg.Snapshot.TTL()),
		snapshot.WithLogger(logger),
	)
}

func setup(configPath string, debugFlag bool) (*config.Config, *zap.Logger) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		fatalf("Failed to load config: %v", err)
	}
	logger, err := utils.NewLogger(cfg.Debug || debugFlag)
	if err != nil {
		fatalf("Failed to create logger: %v", err)
	}
	return cfg, logger
}

func runSearch(args []string) {
	args = argsReorder(args)
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	outputFormat := fs.String("output", "text", "output format: text or json")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(args)

	if fs.NArg() < 3 {
		fatalf("ERROR: enter a filetype, a directory, and a query")
	}
	filetype, directory, query := fs.Arg(0), fs.Arg(1), fs.Arg(2)

	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fatalf("%v", err)
	}

	cfg, logger := setup(*configPath, *debug)
	defer logger.Sync()

	paths, err := scan.Directory(directory, filetype)
	if err != nil {
		fatalf("Failed to scan directory: %v", err)
	}
	builder := index.NewBuilder(extract.NewExtractor(), index.WithLogger(logger))
	store := newStore(directory, cfg, logger)
	docs, err := store.LoadOrBuild(paths, builder.Build)
	if err != nil {
		fatalf("Failed to load index: %v", err)
	}

	start := time.Now()
	results := search.Search(docs, query)
	response := &models.SearchResponse{
		Query:     query,
		Results:   results,
		Total:     len(results),
		QueryTime: time.Since(start).Milliseconds(),
	}
	if err := cli.WriteResults(os.Stdout, response, format); err != nil {
		fatalf("Output failed: %v", err)
	}
}

func runReindex(args []string) {
	args = argsReorder(args)
	fs := flag.NewFlagSet("reindex", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(args)

	if fs.NArg() < 2 {
		fatalf("ERROR: enter a filetype and a directory")
	}
	filetype, directory := fs.Arg(0), fs.Arg(1)

	cfg, logger := setup(*configPath, *debug)
	defer logger.Sync()

	paths, err := scan.Directory(directory, filetype)
	if err != nil {
		fatalf("Failed to scan directory: %v", err)
	}
	builder := index.NewBuilder(extract.NewExtractor(), index.WithLogger(logger))
	store := newStore(directory, cfg, logger)
	docs, err := store.Rebuild(paths, builder.Build)
	if err != nil {
		fatalf("Reindex failed: %v", err)
	}
	fmt.Printf("Indexed %d documents into %s\n", len(docs), store.Path())
}

func runStatus(args []string) {
	args = argsReorder(args)
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		fatalf("ERROR: enter a directory")
	}
	directory := fs.Arg(0)

	cfg, logger := setup(*configPath, false)
	defer logger.Sync()

	store := newStore(directory, cfg, logger)
	info, err := store.Stat()
	if err != nil {
		fatalf("Status failed: %v", err)
	}
	if !info.Exists {
		fmt.Printf("No snapshot at %s\n", info.Path)
		return
	}
	fmt.Printf("Snapshot: %s\n", info.Path)
	fmt.Printf("Documents: %d\n", info.Documents)
	fmt.Printf("Size: %d bytes\n", info.SizeBytes)
	fmt.Printf("Age: %s\n", (time.Duration(info.AgeSeconds) * time.Second).String())
	if info.Stale {
		fmt.Println("State: stale (next search reindexes)")
	} else {
		fmt.Println("State: fresh")
	}
}

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	directory := fs.String("dir", ".", "directory to index and serve")
	filetype := fs.String("type", "", "filetype to index (default from config)")
	watch := fs.Bool("watch", false, "rebuild the index when the directory changes")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(args)

	cfg, logger := setup(*configPath, *debug)
	defer logger.Sync()

	ext := *filetype
	if ext == "" {
		ext = cfg.Scan.Extension
	}

	builder := index.NewBuilder(extract.NewExtractor(), index.WithLogger(logger))
	store := newStore(*directory, cfg, logger)
	rebuild := func() ([]models.Document, error) {
		paths, err := scan.Directory(*directory, ext)
		if err != nil {
			return nil, err
		}
		return store.Rebuild(paths, builder.Build)
	}

	paths, err := scan.Directory(*directory, ext)
	if err != nil {
		logger.Fatal("failed to scan directory", zap.Error(err))
	}
	docs, err := store.LoadOrBuild(paths, builder.Build)
	if err != nil {
		logger.Fatal("failed to load index", zap.Error(err))
	}

	srv := server.NewServer(docs, rebuild, store, &cfg.Server, logger)

	if *watch {
		w := watcher.NewWatcher(*directory, ext, cfg.Snapshot.Filename,
			func() {
				if _, err := srv.Reindex(); err != nil {
					logger.Warn("watch rebuild failed", zap.Error(err))
				}
			},
			watcher.WithDebounce(cfg.Watch.Debounce()),
			watcher.WithLogger(logger),
		)
		watchCtx, watchCancel := context.WithCancel(context.Background())
		defer watchCancel()
		if err := w.Start(watchCtx); err != nil {
			logger.Fatal("failed to start watcher", zap.Error(err))
		}
		defer w.Stop()
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}
