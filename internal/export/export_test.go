package export_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/fiveonefour/moosedocs/internal/content"
	"github.com/fiveonefour/moosedocs/internal/export"
	"github.com/fiveonefour/moosedocs/internal/include"
)

func exportFS() fstest.MapFS {
	return fstest.MapFS{
		"index.mdx": &fstest.MapFile{Data: []byte("---\ntitle: Home\ndescription: Start here\n---\n# Welcome\n\nIntro text.\n")},
		"install.mdx": &fstest.MapFile{Data: []byte(`---
title: Install
---
:::include /snippets/install-steps.mdx

<Language value="typescript">
Use npm.
</Language>
<Language value="python">
Use pip.
</Language>
`)},
		"snippets/install-steps.mdx": &fstest.MapFile{Data: []byte("---\ntitle: Steps\n---\nDownload the binary.\n")},
		"broken.mdx":                 &fstest.MapFile{Data: []byte("---\ntitle: [oops\n---\nbody\n")},
	}
}

func newGenerator(fsys fstest.MapFS) *export.Generator {
	loader := content.NewLoader(fsys)
	resolver := include.NewResolver(fsys, include.PolicyElide, 3, nil)
	return export.NewGenerator(loader, resolver, nil)
}

func TestDocumentExport(t *testing.T) {
	g := newGenerator(exportFS())
	out, err := g.Document(context.Background(), "install", "python")
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if !strings.HasPrefix(out, "# Install") {
		t.Fatalf("missing title frame: %q", out)
	}
	if !strings.Contains(out, "Download the binary.") {
		t.Fatalf("include not resolved: %q", out)
	}
	if !strings.Contains(out, "Use pip.") || strings.Contains(out, "Use npm.") {
		t.Fatalf("language filter not applied: %q", out)
	}
	if strings.Contains(out, "<Language") {
		t.Fatalf("wrapper tag leaked: %q", out)
	}
}

func TestTableOfContentsSkipsBrokenDocs(t *testing.T) {
	g := newGenerator(exportFS())
	toc, err := g.TableOfContents(context.Background())
	if err != nil {
		t.Fatalf("toc: %v", err)
	}
	if !strings.Contains(toc, "[Home](/md/index)") {
		t.Fatalf("root doc missing or mislinked: %q", toc)
	}
	if !strings.Contains(toc, "[Install](/md/install)") {
		t.Fatalf("install doc missing: %q", toc)
	}
	if !strings.Contains(toc, "Start here") {
		t.Fatalf("description missing: %q", toc)
	}
	if strings.Contains(toc, "broken") {
		t.Fatalf("broken doc should be omitted: %q", toc)
	}
}

func TestCorpusIsPartialFailureTolerant(t *testing.T) {
	g := newGenerator(exportFS())
	corpus, err := g.Corpus(context.Background(), "typescript")
	if err != nil {
		t.Fatalf("corpus: %v", err)
	}
	if !strings.Contains(corpus, "## Table of Contents") {
		t.Fatalf("toc heading missing: %q", corpus)
	}
	if !strings.Contains(corpus, "Use npm.") {
		t.Fatalf("typescript content missing: %q", corpus)
	}
	if strings.Contains(corpus, "oops") {
		t.Fatalf("broken doc leaked into corpus: %q", corpus)
	}
	if !strings.Contains(corpus, "[Install](#install)") {
		t.Fatalf("anchor link missing: %q", corpus)
	}
}
