package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/routefleet/fleetd/internal/storage"
	"github.com/routefleet/fleetd/pkg/admin"
	"github.com/routefleet/fleetd/pkg/config"
	"github.com/routefleet/fleetd/pkg/httpclient"
	"github.com/routefleet/fleetd/pkg/logging"
)

var (
	serveConfigFile string
	serveAddr       string
	serveLogLevel   string
	serveLogFormat  string
	serveLogFile    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the endpoint configuration service",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveConfigFile, "config", "c", "", "Configuration file (JSON or YAML)")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Admin API bind address (overrides config)")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	serveCmd.Flags().StringVar(&serveLogFormat, "log-format", "", "Log format: text, json (overrides config)")
	serveCmd.Flags().StringVar(&serveLogFile, "log-file", "", "Duplicate logs to the given file")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if serveConfigFile != "" {
		loaded, err := config.LoadFromFile(serveConfigFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if serveLogLevel != "" {
		cfg.Log.Level = serveLogLevel
	}
	if serveLogFormat != "" {
		cfg.Log.Format = serveLogFormat
	}
	if serveLogFile != "" {
		cfg.Log.File = serveLogFile
	}

	log, closeLog, err := buildLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	reg := storage.NewRegistry()
	if err := seed(reg, cfg); err != nil {
		return fmt.Errorf("failed to seed registry: %w", err)
	}

	active := httpclient.NewActive(cfg.Client)

	addr := cfg.Admin.Addr()
	if serveAddr != "" {
		addr = serveAddr
	}

	api := admin.New(addr, reg, active,
		admin.WithLogger(log),
		admin.WithVersion(Version),
	)
	if err := api.Start(); err != nil {
		return err
	}

	fmt.Printf("fleetd admin API listening on %s\n", addr)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	fmt.Println("\nShutting down...")

	return api.Stop()
}

// seed loads the configured environments and system endpoints into a fresh
// registry.
func seed(reg *storage.Registry, cfg *config.Config) error {
	for _, env := range cfg.Environments {
		if _, err := reg.SaveEnvironment(env); err != nil {
			return err
		}
	}
	for _, def := range cfg.SystemEndpoints {
		if _, err := reg.SaveEndpoint(def); err != nil {
			return err
		}
	}
	return nil
}

// buildLogger constructs the service logger from the log configuration,
// fanning out to a log file when one is configured. The returned func closes
// the file.
func buildLogger(cfg config.LogConfig) (*slog.Logger, func(), error) {
	level := logging.ParseLevel(cfg.Level)
	format := logging.ParseFormat(cfg.Format)

	log := logging.New(logging.Config{Level: level, Format: format})
	if cfg.File == "" {
		return log, func() {}, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	stderrHandler := log.Handler()
	fileHandler := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})
	multi := logging.NewMultiHandler(stderrHandler, fileHandler)
	return slog.New(multi), func() { _ = f.Close() }, nil
}
