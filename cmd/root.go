package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tennolab/farmscout/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "farmscout",
	Short: "Warframe relic and mod farming analyzer",
	Long:  "Fetches the official drop tables, finds the relics rewarding an item, flags vaulted ones, and ranks the missions worth running for them.",
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
