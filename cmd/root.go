package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/courtline/matchdata/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "matchdata",
	Short: "Sports match data acquisition pipeline",
	Long:  "Scrapes match results from live score pages, pulls league game logs from the stats API, and persists everything to CSV or Postgres over an SSH tunnel.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
