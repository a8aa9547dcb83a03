package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fiveonefour/moosedocs/internal/langfilter"
	"github.com/fiveonefour/moosedocs/internal/utils"
)

var (
	exportLang string
	exportOut  string
	exportSlug string
	exportTOC  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export content as LLM-ready markdown",
	Long:  `Export writes the full corpus dump by default. Use --slug for a single document or --toc for the table of contents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireConfig(); err != nil {
			return err
		}
		if exportSlug != "" && exportTOC {
			return fmt.Errorf("specify at most one of --slug or --toc")
		}

		p := newPipeline()
		if exportLang == "" {
			exportLang = cfg.DefaultLanguage
		}
		lang := langfilter.Normalize(exportLang)

		var out string
		var err error
		switch {
		case exportTOC:
			out, err = p.exporter.TableOfContents(cmd.Context())
		case exportSlug != "":
			out, err = p.exporter.Document(cmd.Context(), exportSlug, lang)
		default:
			out, err = p.exporter.Corpus(cmd.Context(), lang)
		}
		if err != nil {
			return err
		}

		if exportOut == "" {
			fmt.Fprint(os.Stdout, out)
			return nil
		}
		if err := utils.EnsureDir(filepath.Dir(exportOut)); err != nil {
			return err
		}
		if err := utils.SafeWriteFile(exportOut, []byte(out)); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %s\n", exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportLang, "lang", "", "target language (typescript or python)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().StringVar(&exportSlug, "slug", "", "export a single document by slug")
	exportCmd.Flags().BoolVar(&exportTOC, "toc", false, "export the table of contents")
	rootCmd.AddCommand(exportCmd)
}
