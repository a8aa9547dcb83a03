package render_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fiveonefour/moosedocs/internal/content"
	"github.com/fiveonefour/moosedocs/internal/render"
)

func TestHTMLHeadingAnchors(t *testing.T) {
	r := render.New()
	out, err := r.HTML("# Getting Started\n\nSome **bold** text.\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `id="getting-started"`) {
		t.Fatalf("auto heading id missing: %q", out)
	}
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Fatalf("markdown not rendered: %q", out)
	}
}

func TestHeadingIDsMatchOutlineAnchors(t *testing.T) {
	// The outline aside links to ids derived by SlugifyAnchor; the
	// renderer must emit the same ids, non-ASCII headings included.
	r := render.New()
	for _, heading := range []string{"Getting Started", "Überblick", "snake_case_name", "What's New?"} {
		out, err := r.HTML("# " + heading + "\n")
		if err != nil {
			t.Fatalf("render %q: %v", heading, err)
		}
		want := fmt.Sprintf("id=%q", content.SlugifyAnchor(heading))
		if !strings.Contains(out, want) {
			t.Fatalf("%q: rendered heading id does not match %s: %q", heading, want, out)
		}
	}
}

func TestHTMLGFMTable(t *testing.T) {
	r := render.New()
	out, err := r.HTML("| a | b |\n|---|---|\n| 1 | 2 |\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<table>") {
		t.Fatalf("gfm table not rendered: %q", out)
	}
}
