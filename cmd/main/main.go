package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CTAG07/Cookery/pkg/corpus"
	"github.com/CTAG07/Cookery/pkg/markov"
	"github.com/google/uuid"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// cliOptions holds the command-line flags.
type cliOptions struct {
	configPath string
	seed       uint64
	count      int
}

func main() {
	var opts cliOptions
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.StringVar(&opts.configPath, "config", "./config.json", "path to the JSON config file")
	flag.Uint64Var(&opts.seed, "seed", 0, "random seed, overrides the config when non-zero")
	flag.IntVar(&opts.count, "count", 1, "number of recipes to print")
	flag.Parse()

	if *showVersion {
		fmt.Printf("cookery %s (%s, built %s)\n", Version, Commit, BuildDate)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout, os.Stderr); err != nil {
		baseLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
		baseLogger.Error("Cookery failed", "error", err)
		os.Exit(1)
	}
}

// run loads the config and corpora, builds the chains and writes
// opts.count recipes to out. Logs go to logOut.
func run(ctx context.Context, opts cliOptions, out, logOut io.Writer) error {
	if opts.count < 0 {
		return errors.New("count must not be negative")
	}

	config, err := LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: parseLogLevel(config.LogLevel)})).
		With(slog.String("run_id", uuid.NewString()))

	seed := config.Generator.Seed
	if opts.seed != 0 {
		seed = opts.seed
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger.Info("Starting generation", "seed", seed, "count", opts.count, "manifest", config.ManifestPath)

	manifest, err := corpus.LoadManifest(config.ManifestPath)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	models, err := corpus.BuildChains(ctx, manifest, logger, markov.WithTokenizer(config.NewTokenizer()))
	if err != nil {
		return fmt.Errorf("failed to build chains: %w", err)
	}

	cookbook, err := NewCookbook(models, config.Generator)
	if err != nil {
		return err
	}

	rng := markov.NewRand(seed)
	for i := range opts.count {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i > 0 {
			if _, err := io.WriteString(out, "\n"); err != nil {
				return err
			}
		}
		if err := cookbook.WriteRecipe(ctx, rng, out); err != nil {
			return fmt.Errorf("recipe %d: %w", i+1, err)
		}
	}

	logger.Info("Generation finished", "recipes", opts.count)
	return nil
}
