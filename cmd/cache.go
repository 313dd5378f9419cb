package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and maintain the local document cache",
}

var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the cached drop-table copy and recent queries",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		cached, err := env.store.GetCorpus(ctx, cfg.DropTables.URL)
		if err != nil {
			return err
		}
		if cached == nil {
			fmt.Println("No cached drop tables. Run any query, or `farmscout reload`.")
		} else {
			fmt.Printf("Cached drop tables: %d bytes\n", len(cached.Body))
			fmt.Printf("  fetched: %s\n", cached.FetchedAt.Format(time.RFC1123))
			fmt.Printf("  expires: %s\n", cached.ExpiresAt.Format(time.RFC1123))
			if cached.ETag != "" {
				fmt.Printf("  etag:    %s\n", cached.ETag)
			}
			if !cached.Fresh(time.Now()) {
				fmt.Println("  (stale — the next query will refetch)")
			}
		}

		queries, err := env.store.RecentQueries(ctx, 10)
		if err != nil {
			return err
		}
		if len(queries) == 0 {
			return nil
		}

		fmt.Println("\nRecent queries:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "  WHEN\tKIND\tTERM\tHITS")
		for _, q := range queries {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%d\n",
				q.RanAt.Format("2006-01-02 15:04"), q.Kind, q.Term, q.Hits)
		}
		w.Flush()
		return nil
	},
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete expired cached documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		n, err := env.store.DeleteExpiredCorpora(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d expired cached document(s).\n", n)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}
