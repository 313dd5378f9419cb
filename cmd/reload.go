package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tennolab/farmscout/internal/corpus"
)

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Refetch the drop tables, bypassing the cache TTL",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		snap, err := env.provider.Load(ctx, true)
		if err != nil {
			return err
		}

		printSnapshot(snap)
		return nil
	},
}

func printSnapshot(snap *corpus.Snapshot) {
	fmt.Printf("Drop tables loaded: %d characters of text, fetched %s",
		len(snap.Text), snap.FetchedAt.Format("2006-01-02 15:04:05 MST"))
	if snap.ETag != "" {
		fmt.Printf(" (etag %s)", snap.ETag)
	}
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(reloadCmd)
}
