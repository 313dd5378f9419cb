package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tennolab/farmscout/internal/analyzer"
	"github.com/tennolab/farmscout/internal/model"
)

var (
	relicExclude []string
	relicPreset  string
)

var relicCmd = &cobra.Command{
	Use:   "relic <relic name>",
	Short: "List the missions dropping a relic, best chance first",
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

		name := normalizeName(args)
		records, err := env.analyzer.FindFarmLocations(name)
		if err != nil {
			return err
		}
		env.logQuery(ctx, model.QueryRelic, name, len(records))

		if len(records) == 0 {
			fmt.Fprintf(os.Stderr, "No mission drops %s.\n", name)
			return nil
		}

		exclude, err := resolveExcludes(relicExclude, relicPreset)
		if err != nil {
			return err
		}
		kept := analyzer.FilterMissions(records, exclude)
		if len(kept) == 0 {
			fmt.Fprintf(os.Stderr, "Every mission dropping %s was excluded by your filters.\n", name)
			return nil
		}

		sorted := make([]model.FarmRecord, len(kept))
		copy(sorted, kept)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Chance > sorted[j].Chance
		})

		fmt.Printf("Missions dropping %s:\n\n", name)
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "MISSION\tPLANET\tTYPE\tROTATION\tRARITY\tCHANCE")
		for _, r := range sorted {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.2f%%\n",
				r.Mission, r.Planet, r.Type, r.Rotation, r.Rarity, r.Chance)
		}
		w.Flush()
		return nil
	},
}

func init() {
	relicCmd.Flags().StringSliceVar(&relicExclude, "exclude", nil, "mission terms to exclude (repeatable)")
	relicCmd.Flags().StringVar(&relicPreset, "preset", "", "named exclusion preset")
	rootCmd.AddCommand(relicCmd)
}
