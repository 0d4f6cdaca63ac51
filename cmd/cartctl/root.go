package main

import (
	"github.com/spf13/cobra"

	"github.com/ridloal/sorav-storefront/internal/platform/config"
	"github.com/ridloal/sorav-storefront/internal/platform/logger"
)

var (
	configPath  string
	catalogPath string
	logLevel    string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:          "cartctl",
	Short:        "Operate on the SoRav storefront cart",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if catalogPath != "" {
			loaded.Catalog.SeedHTML = catalogPath
		}
		if logLevel != "" {
			loaded.Log.Level = logLevel
		}
		cfg = loaded
		// stdout carries command output
		return logger.Init(cfg.Log.Level, "stderr")
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.GetEnv("CONFIG_FILE", ""), "YAML config file")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "storefront HTML page to seed the catalog from")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level, overrides LOG_LEVEL")

	rootCmd.AddCommand(scanCmd, invoiceCmd, clearCmd)
}
