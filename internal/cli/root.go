package cli

import (
	"fmt"

	"github.com/rovshanmuradov/swap-widget/internal/config"
	"github.com/spf13/cobra"
)

var (
	configPath string
	debugFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "swap",
	Short: "Terminal token swap widget with live price conversion",
	Long: `swap is a terminal widget that converts an amount of one token into
another using live unit prices from a public pricing API.

Examples:
  swap
  swap --config configs/config.json
  swap price ethereum bitcoin
  swap tokens`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "Enable debug logging")
}

// loadConfig reads the config and applies the --debug flag.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if debugFlag {
		cfg.DebugLogging = true
	}
	return cfg, nil
}
