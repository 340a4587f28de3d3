package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/plugboard/plugboard/pkg/config"
	"github.com/plugboard/plugboard/pkg/engine"
	"github.com/plugboard/plugboard/pkg/logging"
)

var (
	// Persistent flags available to all subcommands
	configPath string
	logLevel   string
	logFormat  string
	logFile    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "plugboard",
	Short: "plugboard is a pluggable connector and helper engine",
	Long: `plugboard discovers, registers, and selects pluggable protocol
connectors, authenticators, and content converters.

Descriptor resources under plugin directories name the helpers to load;
built-in defaults are always appended. Configuration can be provided via
flags or a configuration file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write logs to this file")
}

// loadConfig resolves the effective configuration from the --config flag
// and flag overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}
	if logFile != "" {
		cfg.Logging.File = logFile
	}
	return cfg, nil
}

// buildEngine constructs an engine from the effective configuration.
func buildEngine() (*engine.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	providers, err := cfg.ExpandPluginDirs()
	if err != nil {
		return nil, err
	}

	log, err := buildLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}

	return engine.NewWithOptions(engine.Options{
		Logger:    log,
		Discover:  cfg.DiscoverEnabled(),
		Providers: providers,
	}), nil
}

// buildLogger constructs the logger for the effective logging
// configuration. When a log file is configured, output fans out to both
// stderr and the file.
func buildLogger(cfg config.LoggingConfig) (*slog.Logger, error) {
	base := logging.Config{
		Level:  logging.ParseLevel(cfg.Level),
		Format: logging.ParseFormat(cfg.Format),
	}
	if cfg.File == "" {
		return logging.New(base), nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	fileCfg := base
	fileCfg.Output = f
	return slog.New(logging.NewMultiHandler(
		logging.NewHandler(base),
		logging.NewHandler(fileCfg),
	)), nil
}
