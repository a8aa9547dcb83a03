package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fiveonefour/moosedocs/internal/include"
	"github.com/fiveonefour/moosedocs/internal/langfilter"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Lint the content tree",
	Long:  `Check walks every document and reports broken or circular includes, include chains deeper than the configured limit, and unrecognized language-variant values.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireConfig(); err != nil {
			return err
		}
		p := newPipeline()
		contentFS := os.DirFS(cfg.ContentRoot)
		resolver := include.NewResolver(contentFS, include.PolicyWarn, cfg.IncludeMaxDepth, logger)

		slugs, err := p.loader.Walk(cmd.Context())
		if err != nil {
			return err
		}

		problems := 0
		for _, slug := range slugs {
			doc, err := p.loader.Load(cmd.Context(), slug)
			if err != nil {
				fmt.Printf("✗ %s: %v\n", slug, err)
				problems++
				continue
			}
			for _, issue := range resolver.Check(doc.Body, doc.FilePath) {
				fmt.Printf("✗ %s: include %s: %s\n", issue.Doc, issue.Target, issue.Reason)
				problems++
			}
			for _, v := range langfilter.UnknownValues(doc.Body, cfg.DefaultLanguage, cfg.AltLanguage) {
				fmt.Printf("✗ %s: unknown language value %q\n", doc.FilePath, v)
				problems++
			}
		}

		if problems > 0 {
			return fmt.Errorf("%d problem(s) found across %d documents", problems, len(slugs))
		}
		fmt.Printf("✓ %d documents, no problems\n", len(slugs))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
