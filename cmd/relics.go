package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tennolab/farmscout/internal/analyzer"
	"github.com/tennolab/farmscout/internal/model"
)

var relicsCmd = &cobra.Command{
	Use:   "relics <item name>",
	Short: "Show which relics reward an item and whether they are vaulted",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.load(ctx, false); err != nil {
			return err
		}

		item := normalizeName(args)
		statuses, err := env.analyzer.LocateRelics(item)
		if err != nil {
			return err
		}
		env.logQuery(ctx, model.QueryItem, item, len(statuses))

		if len(statuses) == 0 {
			fmt.Fprintf(os.Stderr, "No relic rewards %q.\n", item)
			return nil
		}

		active, vaulted := analyzer.SplitByVault(statuses)

		fmt.Printf("Relics rewarding %s:\n\n", item)
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "RELIC\tSTATUS")
		for _, name := range active {
			fmt.Fprintf(w, "%s\tactive\n", name)
		}
		for _, name := range vaulted {
			fmt.Fprintf(w, "%s\tvaulted\n", name)
		}
		w.Flush()

		if len(active) == 0 {
			fmt.Println("\nEvery relic for this item is vaulted — check Baro, Varzia, or trade chat.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(relicsCmd)
}
