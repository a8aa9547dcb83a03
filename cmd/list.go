package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every document in the content tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireConfig(); err != nil {
			return err
		}
		p := newPipeline()
		slugs, err := p.loader.Walk(cmd.Context())
		if err != nil {
			return err
		}
		if len(slugs) == 0 {
			fmt.Println("(no documents)")
			return nil
		}
		for _, slug := range slugs {
			doc, err := p.loader.Load(cmd.Context(), slug)
			if err != nil {
				fmt.Printf("- %s: (unreadable: %v)\n", slug, err)
				continue
			}
			display := slug
			if display == "" {
				display = "/"
			}
			fmt.Printf("- %s: %s", display, doc.Title())
			if desc := doc.FrontMatter.Description; desc != "" {
				fmt.Printf(" (%s)", desc)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
