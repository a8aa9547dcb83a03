package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fiveonefour/moosedocs/internal/search"
)

var indexForce bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build or refresh the search index",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireConfig(); err != nil {
			return err
		}
		p := newPipeline()

		path := cfg.IndexPathOrDefault()
		prev, err := search.Load(path)
		if err != nil {
			prev = nil // best effort
		}

		opts := buildOptions()
		opts.Force = indexForce
		idx, err := search.Build(cmd.Context(), p.loader, p.exporter, prev, opts, logger)
		if err != nil {
			return err
		}
		if err := idx.Save(path); err != nil {
			return err
		}
		fmt.Printf("✓ Indexed %d chunks across %d documents → %s\n", len(idx.Records), len(idx.DocHashes), path)
		return nil
	},
}

func init() {
	indexCmd.Flags().BoolVar(&indexForce, "force", false, "rebuild every document even if unchanged")
	rootCmd.AddCommand(indexCmd)
}
