// Package export aggregates cleaned content for machine consumption:
// per-document markdown, a table of contents, and a full corpus dump.
package export

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/fiveonefour/moosedocs/internal/cleaner"
	"github.com/fiveonefour/moosedocs/internal/content"
	"github.com/fiveonefour/moosedocs/internal/include"
	"github.com/fiveonefour/moosedocs/internal/langfilter"
)

// Generator produces the export surfaces. The include resolver it holds is
// normally configured with the elide policy: export consumers have no use
// for inline warning blocks.
type Generator struct {
	loader   *content.Loader
	resolver *include.Resolver
	logger   *zap.Logger

	// SiteTitle heads the table of contents and corpus dump.
	SiteTitle string
	// BaseURL prefixes per-document links in the table of contents.
	BaseURL string
}

// NewGenerator wires an export generator.
func NewGenerator(loader *content.Loader, resolver *include.Resolver, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		loader:    loader,
		resolver:  resolver,
		logger:    logger.Named("export"),
		SiteTitle: "MooseStack Docs",
	}
}

// Document exports a single document as cleaned plain markdown for the
// given language. Returns content.ErrNotFound when the slug has no backing
// file.
func (g *Generator) Document(ctx context.Context, slug, lang string) (string, error) {
	doc, err := g.loader.Load(ctx, slug)
	if err != nil {
		return "", err
	}
	return g.renderDoc(doc, lang), nil
}

// renderDoc runs a loaded document through the include/filter/clean
// pipeline and frames it with its title and description.
func (g *Generator) renderDoc(doc *content.Document, lang string) string {
	body := g.resolver.Resolve(doc.Body, doc.FilePath)
	body = langfilter.Filter(body, lang)
	body = cleaner.Clean(body)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", doc.Title())
	if desc := doc.FrontMatter.Description; desc != "" {
		fmt.Fprintf(&b, "> %s\n\n", desc)
	}
	b.WriteString(body)
	b.WriteString("\n")
	return b.String()
}

// TableOfContents lists every document with a link to its markdown export.
func (g *Generator) TableOfContents(ctx context.Context) (string, error) {
	slugs, err := g.loader.Walk(ctx)
	if err != nil {
		return "", fmt.Errorf("export: walk content: %w", err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", g.SiteTitle)
	for _, slug := range slugs {
		doc, err := g.loader.Load(ctx, slug)
		if err != nil {
			// Partial-load tolerance: a broken document drops out of the
			// listing instead of failing the whole export.
			g.logger.Warn("skipping document in toc", zap.String("slug", slug), zap.Error(err))
			continue
		}
		link := g.BaseURL + "/md/" + slug
		if slug == "" {
			link = g.BaseURL + "/md/index"
		}
		fmt.Fprintf(&b, "- [%s](%s)", doc.Title(), link)
		if desc := doc.FrontMatter.Description; desc != "" {
			fmt.Fprintf(&b, ": %s", desc)
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

// Corpus exports the entire content tree as one document for the given
// language, a generated table of contents followed by each page.
func (g *Generator) Corpus(ctx context.Context, lang string) (string, error) {
	slugs, err := g.loader.Walk(ctx)
	if err != nil {
		return "", fmt.Errorf("export: walk content: %w", err)
	}
	lang = langfilter.Normalize(lang)

	var toc, body strings.Builder
	fmt.Fprintf(&toc, "# %s (%s)\n\n## Table of Contents\n\n", g.SiteTitle, lang)
	for _, slug := range slugs {
		doc, err := g.loader.Load(ctx, slug)
		if err != nil {
			g.logger.Warn("skipping document in corpus", zap.String("slug", slug), zap.Error(err))
			continue
		}
		anchor := content.SlugifyAnchor(doc.Title())
		fmt.Fprintf(&toc, "- [%s](#%s)\n", doc.Title(), anchor)
		body.WriteString("\n---\n\n")
		body.WriteString(g.renderDoc(doc, lang))
	}
	return toc.String() + body.String(), nil
}
