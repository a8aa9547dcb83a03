// Package langfilter selects language-variant content blocks.
//
// Authors wrap language-specific spans in <Language value="..."> tags.
// Filtering keeps exactly the block matching the reader's language,
// unwrapped, and deletes every other variant.
package langfilter

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// TypeScript is the canonical default language.
	TypeScript = "typescript"
	// Python is the recognized alternate.
	Python = "python"
)

// Normalize maps arbitrary caller input to a recognized language value.
// Anything other than the recognized alternate becomes the default.
func Normalize(lang string) string {
	if strings.EqualFold(strings.TrimSpace(lang), Python) {
		return Python
	}
	return TypeScript
}

// NormalizeValues applies Normalize to a multi-valued query parameter,
// using the first element.
func NormalizeValues(values []string) string {
	if len(values) == 0 {
		return TypeScript
	}
	return Normalize(values[0])
}

func blockRE(lang string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`(?s)<Language\s+value=["']%s["']\s*>(.*?)</Language>`, lang))
}

var (
	tsBlockRE = blockRE(TypeScript)
	pyBlockRE = blockRE(Python)
)

var valueAttrRE = regexp.MustCompile(`<Language\s+value=["']([^"']*)["']`)

// UnknownValues reports variant-block values outside the recognized set,
// in authoring order. Used by content lint. With no known values given it
// checks against the built-in pair.
func UnknownValues(text string, known ...string) []string {
	if len(known) == 0 {
		known = []string{TypeScript, Python}
	}
	recognized := make(map[string]bool, len(known))
	for _, k := range known {
		recognized[strings.ToLower(strings.TrimSpace(k))] = true
	}
	var out []string
	for _, m := range valueAttrRE.FindAllStringSubmatch(text, -1) {
		if !recognized[strings.ToLower(strings.TrimSpace(m[1]))] {
			out = append(out, m[1])
		}
	}
	return out
}

// Filter removes variant blocks not matching lang and unwraps the ones
// that do. Excluded blocks are deleted before matching blocks are
// unwrapped, so a variant nested inside an excluded block never leaks.
// Both rewrites run to a fixed point: the non-greedy pattern pairs an
// outer open tag with the nearest close tag, so a block nested inside a
// same-valued block needs a second pass.
func Filter(text, lang string) string {
	keep, drop := tsBlockRE, pyBlockRE
	if Normalize(lang) == Python {
		keep, drop = pyBlockRE, tsBlockRE
	}
	text = rewriteBlocks(drop, text, "")
	return rewriteBlocks(keep, text, "$1")
}

func rewriteBlocks(re *regexp.Regexp, text, repl string) string {
	for {
		next := re.ReplaceAllString(text, repl)
		if next == text {
			return next
		}
		text = next
	}
}
