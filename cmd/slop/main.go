// Package main provides the slop binary entry point.
// Slop publishes short knowledge notes into a versioned repository and a
// public knowledge graph in one coordinated operation.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/slop-at/slop/config"
	"github.com/slop-at/slop/extract"
	"github.com/slop-at/slop/graph"
	"github.com/slop-at/slop/publish"
	"github.com/slop-at/slop/repo"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "slop"
)

var (
	success = color.New(color.FgGreen).SprintFunc()
	warning = color.New(color.FgYellow).SprintFunc()
	faint   = color.New(color.Faint).SprintFunc()
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "slop",
		Short: "Publish knowledge notes to git and the graph",
		Long: `Slop turns a short note into three coordinated artifacts:

- a uniquely identified markdown document in your slop repository
- a commit pushed to the repository's remote
- RDF statements about the note and its entities in the public graph

A publish that fails partway leaves a named, resumable state; 'slop resume'
completes the remaining side effects without redoing the finished ones.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Optional .env for local overrides; absence is fine.
			_ = godotenv.Load()
			setupLogging(logLevel)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		publishCmd(&configPath),
		resumeCmd(&configPath),
		statusCmd(&configPath),
		listCmd(&configPath),
		queryCmd(&configPath),
		initCmd(&configPath),
		versionCmd(),
	)

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	}
}

func setupLogging(level string) {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelWarn
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
}

// loadConfig loads the layered configuration, honoring an explicit path.
func loadConfig(configPath string) (*config.Config, error) {
	loader := config.NewLoader(slog.Default())
	if configPath != "" {
		cfg := config.DefaultConfig()
		fileCfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", configPath, err)
		}
		cfg.Merge(fileCfg)
		return cfg, nil
	}
	return loader.Load()
}

// buildCoordinator wires a coordinator from configuration.
func buildCoordinator(cfg *config.Config) (*publish.Coordinator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var extractor extract.Extractor = extract.None{}
	if cfg.Extractor.Endpoint != "" {
		extractor = extract.NewClient(cfg.Extractor.Endpoint, cfg.Extractor.Threshold, cfg.Extractor.Timeout)
	}

	store := repo.NewStore(cfg.Repo.Path, cfg.Repo.Branch, slog.Default())
	client := graph.NewClient(cfg.Graph.Endpoint, cfg.Graph.Timeout, slog.Default())
	return publish.NewCoordinator(*cfg, extractor, store, client, slog.Default()), nil
}
