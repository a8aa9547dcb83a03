package cmd

import (
	"os"

	"github.com/fiveonefour/moosedocs/internal/content"
	"github.com/fiveonefour/moosedocs/internal/export"
	"github.com/fiveonefour/moosedocs/internal/include"
)

// pipeline bundles the content-processing collaborators shared by the
// serve, export, index and check commands.
type pipeline struct {
	loader   *content.Loader
	exporter *export.Generator
}

// newPipeline builds the loader and exporter from the loaded config. The
// export resolver's failure policy comes from config (default elide);
// readers of HTML pages get a warning resolver instead, built by serve.
func newPipeline() *pipeline {
	contentFS := os.DirFS(cfg.ContentRoot)
	loader := content.NewLoader(contentFS)
	resolver := include.NewResolver(contentFS, include.ParsePolicy(cfg.IncludePolicy), cfg.IncludeMaxDepth, logger)
	return &pipeline{
		loader:   loader,
		exporter: export.NewGenerator(loader, resolver, logger),
	}
}
