package main

import (
	"fmt"
	"log/slog"
	"os"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"bus-arrival-server/config"
	"bus-arrival-server/logging"
)

var rootCmd = &cobra.Command{
	Use:          "bus-arrival-server",
	Short:        "Real-time bus arrival board",
	SilenceUsage: true,
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the YAML config file (default $"+config.CONFIG_PATH_ENV+" or "+config.DEFAULT_CONFIG_FILE+")")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(arrivalsCmd)
}

// loadConfig resolves and loads the config, then builds the logger it asks for.
func loadConfig() (config.AppConfig, *slog.Logger, error) {
	cfg, err := config.Load(config.ResolvePath(configPath), configPath != "")
	if err != nil {
		return config.AppConfig{}, nil, err
	}
	logger := logging.NewStructuredLogger(os.Stderr, logging.ParseLevel(cfg.Logging.Level))
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
