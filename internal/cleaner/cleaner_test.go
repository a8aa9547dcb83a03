package cleaner_test

import (
	"strings"
	"testing"

	"github.com/fiveonefour/moosedocs/internal/cleaner"
)

func TestCleanFrontMatterAndImports(t *testing.T) {
	in := `---
title: Getting Started
---
import Callout from '@/components/callout'

# Title

Body text with import mentioned mid-sentence.
`
	out := cleaner.Clean(in)
	if strings.Contains(out, "title: Getting Started") {
		t.Fatalf("front-matter survived: %q", out)
	}
	if strings.Contains(out, "import Callout") {
		t.Fatalf("import statement survived: %q", out)
	}
	if !strings.HasPrefix(out, "# Title") {
		t.Fatalf("heading lost: %q", out)
	}
	if !strings.Contains(out, "import mentioned mid-sentence") {
		t.Fatalf("prose mentioning import was corrupted: %q", out)
	}
}

func TestCleanImportsAfterFirstHeadingKept(t *testing.T) {
	in := "# Title\n\nimport something from 'pkg'\n"
	out := cleaner.Clean(in)
	if !strings.Contains(out, "import something") {
		t.Fatalf("import after first heading should be kept: %q", out)
	}
}

func TestCleanComponentTags(t *testing.T) {
	in := "# T\n\n<Callout kind=\"info\">Read this.</Callout>\n\n<Spacer />\n\nEnd."
	out := cleaner.Clean(in)
	if strings.Contains(out, "<Callout") || strings.Contains(out, "</Callout>") || strings.Contains(out, "<Spacer") {
		t.Fatalf("component tags survived: %q", out)
	}
	if !strings.Contains(out, "Read this.") {
		t.Fatalf("inner content lost: %q", out)
	}
}

func TestCleanLowercaseTagsConservative(t *testing.T) {
	in := "# T\n\nSome <br> text and code like `a<b` plus Vec<string> stays.\n"
	out := cleaner.Clean(in)
	if strings.Contains(out, "<br>") {
		t.Fatalf("whitespace-flanked html tag survived: %q", out)
	}
	if !strings.Contains(out, "a<b") || !strings.Contains(out, "Vec<string>") {
		t.Fatalf("inline angle brackets corrupted: %q", out)
	}
}

func TestCleanAdjacentLowercaseTags(t *testing.T) {
	// Adjacent tags share their flanking whitespace, so a single
	// replacement pass only catches the first of the pair.
	in := "# T\n\ntext <em> <strong> more\n"
	out := cleaner.Clean(in)
	if strings.Contains(out, "<em>") || strings.Contains(out, "<strong>") {
		t.Fatalf("adjacent tags survived: %q", out)
	}
	if out != cleaner.Clean(out) {
		t.Fatalf("cleaning cleaned text changed it: %q", out)
	}
}

func TestCleanNestedComments(t *testing.T) {
	// The outer comment's markers only line up after the inner comment is
	// removed, so a single pass is not enough.
	in := "# T\n\n<!<!-- inner -->-- hidden -->\n\nkeep"
	out := cleaner.Clean(in)
	if strings.Contains(out, "<!--") || strings.Contains(out, "-->") {
		t.Fatalf("comment markers survived: %q", out)
	}
	if !strings.Contains(out, "keep") {
		t.Fatalf("content after comment lost: %q", out)
	}
}

func TestCleanCollapsesBlankRuns(t *testing.T) {
	in := "# T\n\n\n\n\nnext"
	out := cleaner.Clean(in)
	if strings.Contains(out, "\n\n\n") {
		t.Fatalf("blank run survived: %q", out)
	}
	if !strings.Contains(out, "# T\n\nnext") {
		t.Fatalf("expected single blank line: %q", out)
	}
}

func TestCleanIdempotent(t *testing.T) {
	in := `---
title: X
---
import A from 'a'
export const b = 1

# Doc

<Tabs>
<Tab label="one">first</Tab>
</Tabs>

<!-- note -->

Text.
`
	once := cleaner.Clean(in)
	twice := cleaner.Clean(once)
	if once != twice {
		t.Fatalf("cleaner not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}
