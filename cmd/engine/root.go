package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"jobsearch-engine/internal/config"
	"jobsearch-engine/internal/logger"
	"jobsearch-engine/internal/search"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const app = "engine"

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "engine aggregates job postings from boards and company career pages and ranks them",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute executes the root command.
// Interrupts cancel the command's context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	return err
}

func init() {
	if err := viper.BindEnv("data-dir", "JOBSEARCH_DATA_DIR"); err != nil {
		log.Fatalf("binding JOBSEARCH_DATA_DIR environment variable: %v", err)
	}
	if err := viper.BindEnv("boards-endpoint", "JOBSEARCH_BOARDS_ENDPOINT"); err != nil {
		log.Fatalf("binding JOBSEARCH_BOARDS_ENDPOINT environment variable: %v", err)
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default: built-in defaults, or <data-dir>/config.yml)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory holding config.yml; created with defaults if missing")
	rootCmd.PersistentFlags().String("sources-file", "", "YAML file whose sources list replaces the configured one")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("data-dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	viper.BindPFlag("sources-file", rootCmd.PersistentFlags().Lookup("sources-file"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

// env is what every subcommand needs.
type env struct {
	log     *zap.Logger
	cfg     config.Config
	cfgPath string
}

func setup() (*env, error) {
	lg, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}

	path := cfgFile
	if path == "" {
		if dir := viper.GetString("data-dir"); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
			if path, err = config.EnsureUserConfig(dir); err != nil {
				return nil, fmt.Errorf("config bootstrap: %w", err)
			}
		}
	}

	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, fmt.Errorf("config load (%s): %w", path, err)
	}
	if sf := viper.GetString("sources-file"); sf != "" {
		if err := config.OverlaySources(&cfg, sf); err != nil {
			return nil, fmt.Errorf("sources file (%s): %w", sf, err)
		}
	}
	if ep := viper.GetString("boards-endpoint"); ep != "" {
		cfg.Boards.Endpoint = ep
	}

	cfg, vr := config.NormalizeAndValidate(cfg)
	for _, w := range vr.Warnings {
		lg.Warn("config", zap.String("warning", w))
	}
	if err := vr.Err(); err != nil {
		return nil, err
	}

	lg.Debug("config loaded",
		zap.String("path", path),
		zap.Int("sources", len(cfg.Sources)),
		zap.String("boards", cfg.Boards.Endpoint))
	return &env{log: lg, cfg: cfg, cfgPath: path}, nil
}

func (e *env) service() *search.Service {
	return search.NewFromConfig(e.cfg, e.log)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
