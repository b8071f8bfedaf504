// Package main provides the spdxstore binary entry point.
// Spdxstore loads SPDX 2.x RDF documents, resolves logical identifiers
// against their graphs, and converts between serialization formats.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/spdxstore/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "spdxstore"
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

type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

func rootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "SPDX RDF document store",
		Long: `Spdxstore reads SPDX 2.x documents serialized as RDF (Turtle or
N-Triples), maintains logical-identifier indexes over their graphs, and
converts, inspects, and validates them against the SPDX ontology.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newConvertCmd(a))
	cmd.AddCommand(newInspectCmd(a))
	cmd.AddCommand(newValidateCmd(a))
	cmd.AddCommand(newSnapshotCmd(a))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

// setup loads configuration and installs the default logger. Runs before
// every subcommand.
func (a *app) setup() error {
	var cfg *config.Config
	var err error
	if a.configPath != "" {
		cfg, err = config.LoadFromFile(a.configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	} else {
		cfg, err = config.NewLoader(nil).Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	// Flag overrides config.
	if a.logLevel != "" {
		cfg.Logging.Level = strings.ToLower(a.logLevel)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
	}

	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	a.cfg = cfg
	a.logger = logger
	return nil
}
