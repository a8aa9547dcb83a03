// Package cleaner turns authoring-format text into plain prose suitable
// for LLM or plain-text consumption. The stripping is best-effort textual
// cleanup, not markup parsing; headings and inline code survive.
package cleaner

import (
	"regexp"
	"strings"
)

var (
	frontMatterRE = regexp.MustCompile(`(?s)\A---\n.*?\n---\n?`)

	// Import/export statements, stripped only before the first heading so
	// code blocks containing those words stay intact.
	importExportRE = regexp.MustCompile(`(?m)^(import|export)\s[^\n]*\n?`)

	// Custom components start with an uppercase letter.
	selfClosingComponentRE = regexp.MustCompile(`<[A-Z][A-Za-z0-9]*(\s[^>]*)?/>`)
	componentTagRE         = regexp.MustCompile(`</?[A-Z][A-Za-z0-9]*(\s[^>]*)?>`)

	// Lowercase HTML tags are stripped only when flanked by whitespace, so
	// inline code like `a < b` or `Vec<string>` is not corrupted.
	htmlTagRE = regexp.MustCompile(`(\s)</?[a-z][a-zA-Z0-9-]*(\s[^>]*)?/?>(\s)`)

	htmlCommentRE = regexp.MustCompile(`(?s)<!--.*?-->`)

	blankRunRE = regexp.MustCompile(`\n{3,}`)

	firstHeadingRE = regexp.MustCompile(`(?m)^#{1,6}\s`)
)

// Clean strips front-matter, import/export statements, component tags and
// HTML comments, then normalizes whitespace. Idempotent: cleaning cleaned
// text is a no-op.
func Clean(text string) string {
	text = frontMatterRE.ReplaceAllString(text, "")
	text = stripImportsBeforeFirstHeading(text)
	text = selfClosingComponentRE.ReplaceAllString(text, "")
	text = componentTagRE.ReplaceAllString(text, "")
	text = stripHTMLComments(text)
	text = stripHTMLTags(text)
	text = blankRunRE.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

func stripImportsBeforeFirstHeading(text string) string {
	loc := firstHeadingRE.FindStringIndex(text)
	if loc == nil {
		return importExportRE.ReplaceAllString(text, "")
	}
	head := importExportRE.ReplaceAllString(text[:loc[0]], "")
	return head + text[loc[0]:]
}

// stripHTMLTags runs to a fixed point because the pattern consumes the
// flanking whitespace: of two adjacent tags only the first matches per
// pass, the second needs another.
func stripHTMLTags(text string) string {
	for {
		next := htmlTagRE.ReplaceAllString(text, "$1$3")
		if next == text {
			return next
		}
		text = next
	}
}

// stripHTMLComments runs to a fixed point so markers exposed by removing
// an outer comment are removed too.
func stripHTMLComments(text string) string {
	for {
		next := htmlCommentRE.ReplaceAllString(text, "")
		if next == text {
			return next
		}
		text = next
	}
}
