package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fiveonefour/moosedocs/internal/search"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Query the search index",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireConfig(); err != nil {
			return err
		}
		idx, err := search.Load(cfg.IndexPathOrDefault())
		if err != nil {
			return fmt.Errorf("load index (run 'moosedocs index' first): %w", err)
		}
		query := strings.Join(args, " ")
		results := idx.Query(query, searchLimit, cfg.SearchMinScore)
		if len(results) == 0 {
			fmt.Println("(no results)")
			return nil
		}
		for _, r := range results {
			fmt.Printf("%.3f  %s  (%s)\n", r.Score, r.Title, r.Slug)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "maximum number of results")
	rootCmd.AddCommand(searchCmd)
}
