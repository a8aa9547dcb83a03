package content_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/fiveonefour/moosedocs/internal/content"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"index.mdx": &fstest.MapFile{Data: []byte("---\ntitle: Home\n---\n# Welcome\n")},
		"getting-started.mdx": &fstest.MapFile{Data: []byte(`---
title: Getting Started
description: First steps with Moose
helpfulLinks:
  - /reference
---
import Callout from '@/components/callout'

# Getting Started

<Callout kind="info">Install the CLI first.</Callout>

## Install

Run the installer.

## Install

Again, for the second platform.
`)},
		"getting-started.md": &fstest.MapFile{Data: []byte("# Shadowed\n")},
		"reference/index.md": &fstest.MapFile{Data: []byte("---\ntitle: Reference\n---\n# Reference\n")},
		"reference/cli.md":   &fstest.MapFile{Data: []byte("# CLI\n")},
	}
}

func TestLoadResolutionOrder(t *testing.T) {
	l := content.NewLoader(testFS())
	doc, err := l.Load(context.Background(), "/getting-started")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// .mdx wins over .md
	if doc.FilePath != "getting-started.mdx" {
		t.Fatalf("expected mdx variant, got %s", doc.FilePath)
	}
	if doc.FrontMatter.Title != "Getting Started" {
		t.Fatalf("title = %q", doc.FrontMatter.Title)
	}
	if len(doc.FrontMatter.HelpfulLinks) != 1 {
		t.Fatalf("helpfulLinks = %v", doc.FrontMatter.HelpfulLinks)
	}
	if !doc.IsMDX {
		t.Fatalf("expected MDX detection for component syntax")
	}
}

func TestLoadIndexFallback(t *testing.T) {
	l := content.NewLoader(testFS())
	doc, err := l.Load(context.Background(), "reference")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.FilePath != "reference/index.md" {
		t.Fatalf("expected index fallback, got %s", doc.FilePath)
	}
	if doc.IsMDX {
		t.Fatalf("plain markdown misdetected as MDX")
	}
}

func TestLoadNotFound(t *testing.T) {
	l := content.NewLoader(testFS())
	_, err := l.Load(context.Background(), "missing/page")
	if !errors.Is(err, content.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHeadingsWithStableIDs(t *testing.T) {
	l := content.NewLoader(testFS())
	doc, err := l.Load(context.Background(), "getting-started")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []content.Heading{
		{Level: 1, Text: "Getting Started", ID: "getting-started"},
		{Level: 2, Text: "Install", ID: "install"},
		{Level: 2, Text: "Install", ID: "install-1"},
	}
	if len(doc.Headings) != len(want) {
		t.Fatalf("headings = %+v", doc.Headings)
	}
	for i, h := range want {
		if doc.Headings[i] != h {
			t.Errorf("heading %d: got %+v want %+v", i, doc.Headings[i], h)
		}
	}
}

func TestSlugifyAnchor(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Getting Started", "getting-started"},
		{"Überblick", "berblick"},
		{"snake_case_name", "snake-case-name"},
		{"What's New?", "whats-new"},
		{"Setup - macOS", "setup---macos"},
		{"日本語", "heading"},
	}
	for _, c := range cases {
		if got := content.SlugifyAnchor(c.in); got != c.want {
			t.Errorf("SlugifyAnchor(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestHeadingsSkipCodeFences(t *testing.T) {
	hs := content.ExtractHeadings("# Real\n\n```bash\n# not a heading\n```\n")
	if len(hs) != 1 || hs[0].Text != "Real" {
		t.Fatalf("headings = %+v", hs)
	}
}

func TestWalk(t *testing.T) {
	l := content.NewLoader(testFS())
	slugs, err := l.Walk(context.Background())
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	want := []string{"", "getting-started", "reference", "reference/cli"}
	if len(slugs) != len(want) {
		t.Fatalf("slugs = %v", slugs)
	}
	for i := range want {
		if slugs[i] != want[i] {
			t.Fatalf("slugs = %v, want %v", slugs, want)
		}
	}
}

func TestHumanizeSegment(t *testing.T) {
	if got := content.HumanizeSegment("getting-started"); got != "Getting Started" {
		t.Fatalf("got %q", got)
	}
}

func TestDocumentTitleFallback(t *testing.T) {
	d := &content.Document{Slug: "guides/quick-start"}
	if got := d.Title(); got != "Quick Start" {
		t.Fatalf("got %q", got)
	}
}
