package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tennolab/farmscout/internal/analyzer"
	"github.com/tennolab/farmscout/internal/model"
)

var (
	modExclude []string
	modPreset  string
	modTop     int
)

var modCmd = &cobra.Command{
	Use:   "mod <mod name>",
	Short: "Find the best missions to farm a mod",
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

		exclude, err := resolveExcludes(modExclude, modPreset)
		if err != nil {
			return err
		}

		name := normalizeName(args)
		report, err := env.analyzer.AnalyzeMod(name, exclude)
		switch {
		case errors.Is(err, analyzer.ErrNotFound):
			env.logQuery(ctx, model.QueryMod, name, 0)
			fmt.Fprintf(os.Stderr, "No mission drops the mod %q.\n", name)
			return nil
		case errors.Is(err, analyzer.ErrAllFiltered):
			fmt.Fprintf(os.Stderr, "Every mission dropping %q was excluded by your filters.\n", name)
			return nil
		case err != nil:
			return err
		}
		env.logQuery(ctx, model.QueryMod, name, len(report.Farms))

		farms := report.Farms
		if modTop > 0 && len(farms) > modTop {
			farms = farms[:modTop]
		}

		fmt.Printf("Missions dropping %s:\n\n", report.Mod)
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "MISSION\tPLANET\tTYPE\tROTATION\tRARITY\tCHANCE")
		for _, r := range farms {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.2f%%\n",
				r.Mission, r.Planet, r.Type, r.Rotation, r.Rarity, r.Chance)
		}
		w.Flush()
		return nil
	},
}

func init() {
	modCmd.Flags().StringSliceVar(&modExclude, "exclude", nil, "mission terms to exclude (repeatable)")
	modCmd.Flags().StringVar(&modPreset, "preset", "", "named exclusion preset")
	modCmd.Flags().IntVar(&modTop, "top", 10, "show at most N missions (0 = all)")
	rootCmd.AddCommand(modCmd)
}
