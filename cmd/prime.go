package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tennolab/farmscout/internal/analyzer"
	"github.com/tennolab/farmscout/internal/model"
)

var (
	primeType    string
	primeExclude []string
	primePreset  string
	primeTop     int
	primeJSON    bool
)

var primeCmd = &cobra.Command{
	Use:   "prime <equipment name>",
	Short: "Plan the full farm for a prime warframe or weapon",
	Long:  "Detects the equipment's components, finds the relics and missions for each, and highlights missions that progress several components in one visit.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		equipType, ok := model.ParseEquipmentType(primeType)
		if !ok {
			return fmt.Errorf("unknown equipment type %q (want warframe, primary, secondary, or melee)", primeType)
		}

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.load(ctx, false); err != nil {
			return err
		}

		exclude, err := resolveExcludes(primeExclude, primePreset)
		if err != nil {
			return err
		}

		name := normalizeName(args)

		// A full component name gets a single-item analysis instead of
		// component detection.
		if model.IsComponentName(name) {
			return runSingleItem(cmd, env, name, exclude)
		}

		report, err := env.analyzer.AnalyzeEquipment(name, equipType, exclude)
		switch {
		case errors.Is(err, analyzer.ErrNotFound):
			env.logQuery(ctx, model.QueryEquipment, name, 0)
			fmt.Fprintf(os.Stderr, "No relic rewards any component of %q. Check the spelling, or the set may predate relics.\n", name)
			return nil
		case err != nil:
			return err
		}
		env.logQuery(ctx, model.QueryEquipment, name, len(report.Components))

		if primeJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		printEquipmentReport(report)
		return nil
	},
}

func runSingleItem(cmd *cobra.Command, env *appEnv, name string, exclude []string) error {
	ctx := cmd.Context()

	report, err := env.analyzer.AnalyzeItem(name, exclude)
	switch {
	case errors.Is(err, analyzer.ErrNotFound):
		env.logQuery(ctx, model.QueryItem, name, 0)
		fmt.Fprintf(os.Stderr, "No relic rewards %q.\n", name)
		return nil
	case errors.Is(err, analyzer.ErrAllFiltered):
		fmt.Fprintf(os.Stderr, "Every mission for %q was excluded by your filters.\n", name)
		return nil
	case err != nil:
		return err
	}
	env.logQuery(ctx, model.QueryItem, name, len(report.Farms))

	if primeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Printf("Farms for %s\n", report.Item)
	if len(report.Vaulted) > 0 {
		fmt.Printf("  vaulted relics: %v\n", report.Vaulted)
	}
	fmt.Printf("  active relics:  %v\n", report.Active)
	if len(report.Farms) == 0 {
		fmt.Println("\nNo active relic for this item drops anywhere right now.")
		return nil
	}

	farms := report.Farms
	if primeTop > 0 && len(farms) > primeTop {
		farms = farms[:primeTop]
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  MISSION\tROTATION\tSOURCE\tCHANCE")
	for _, f := range farms {
		fmt.Fprintf(w, "  %s (%s) %s\t%s\t%s\t%.2f%%\n",
			f.Mission, f.Planet, f.Type, f.Rotation, f.Source, f.Chance)
	}
	w.Flush()
	return nil
}

func printEquipmentReport(report *analyzer.EquipmentReport) {
	fmt.Printf("Farm plan for %s\n", report.Item)

	for _, comp := range report.Components {
		fmt.Printf("\n%s\n", comp.Component)
		if len(comp.Vaulted) > 0 {
			fmt.Printf("  vaulted relics: %v\n", comp.Vaulted)
		}
		fmt.Printf("  active relics:  %v\n", comp.Active)

		farms := comp.Farms
		if primeTop > 0 && len(farms) > primeTop {
			farms = farms[:primeTop]
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "  MISSION\tROTATION\tRELIC\tRARITY\tCHANCE")
		for _, r := range farms {
			fmt.Fprintf(w, "  %s (%s) %s\t%s\t%s\t%s\t%.2f%%\n",
				r.Mission, r.Planet, r.Type, r.Rotation, r.Source, r.Rarity, r.Chance)
		}
		w.Flush()
	}

	if len(report.MultiSource) > 0 {
		fmt.Println("\nMissions progressing several components at once:")
		for _, ms := range report.MultiSource {
			fmt.Printf("\n  %s\n", ms.Key.String())
			for _, c := range ms.Contributions {
				fmt.Printf("    %s via %s (%s, %.2f%%)\n", c.Component, c.Source, c.Rarity, c.Chance)
			}
		}
	}

	fmt.Println("\nBest mission per component:")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  COMPONENT\tMISSION\tROTATION\tCHANCE")
	for _, comp := range report.Components {
		best, ok := report.Best[comp.Component]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "  %s\t%s (%s)\t%s\t%.2f%%\n",
			comp.Component, best.Mission, best.Planet, best.Rotation, best.Chance)
	}
	w.Flush()
}

func init() {
	primeCmd.Flags().StringVar(&primeType, "type", "warframe", "equipment type: warframe, primary, secondary, melee")
	primeCmd.Flags().StringSliceVar(&primeExclude, "exclude", nil, "mission terms to exclude (repeatable)")
	primeCmd.Flags().StringVar(&primePreset, "preset", "", "named exclusion preset")
	primeCmd.Flags().IntVar(&primeTop, "top", 5, "show at most N missions per component (0 = all)")
	primeCmd.Flags().BoolVar(&primeJSON, "json", false, "emit the full report as JSON")
	rootCmd.AddCommand(primeCmd)
}
