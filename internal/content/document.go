package content

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/adrg/frontmatter"
)

// FrontMatter holds the metadata block prefixing a content document.
type FrontMatter struct {
	Title        string         `yaml:"title"`
	Description  string         `yaml:"description"`
	HelpfulLinks []string       `yaml:"helpfulLinks"`
	Custom       map[string]any `yaml:",inline"`
}

// Heading is one entry of a document's heading outline.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id"`
}

// Document is a content file addressed by its logical slug.
// Immutable once loaded; safe to share across goroutines.
type Document struct {
	Slug        string
	FilePath    string
	FrontMatter FrontMatter
	Body        string
	IsMDX       bool
	Headings    []Heading
}

// Title returns the front-matter title, falling back to a humanized
// form of the last slug segment.
func (d *Document) Title() string {
	if d.FrontMatter.Title != "" {
		return d.FrontMatter.Title
	}
	return HumanizeSegment(lastSegment(d.Slug))
}

// ParseFrontMatter extracts metadata and body content from raw source bytes.
// Returns the structured front-matter and the body without delimiters.
func ParseFrontMatter(source []byte) (FrontMatter, string, error) {
	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, "", fmt.Errorf("parse frontmatter: %w", err)
	}
	if meta.Custom == nil {
		meta.Custom = map[string]any{}
	}
	return meta, normalizeNewlines(string(body)), nil
}

// componentTagRE matches JSX-style component usage: a tag whose name starts
// with an uppercase letter, or a JSX expression opener on its own.
var componentTagRE = regexp.MustCompile(`</?[A-Z][A-Za-z0-9]*(\s[^>]*)?/?>`)

// importExportRE matches an import or export statement at line start.
var importExportRE = regexp.MustCompile(`(?m)^(import|export)\s`)

// DetectMDX reports whether the body carries MDX component syntax rather
// than plain markdown/HTML.
func DetectMDX(body string) bool {
	return componentTagRE.MatchString(body) || importExportRE.MatchString(body)
}

var headingLineRE = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+?)\s*$`)

// ExtractHeadings scans markdown text for heading markers and derives
// stable anchor ids. Duplicate texts get a numeric suffix, matching the
// renderer's auto heading id behavior.
func ExtractHeadings(body string) []Heading {
	var out []Heading
	seen := map[string]int{}
	inFence := false
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		m := headingLineRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		text := stripInlineMarkup(m[2])
		id := SlugifyAnchor(text)
		if n, ok := seen[id]; ok {
			seen[id] = n + 1
			id = fmt.Sprintf("%s-%d", id, n)
		} else {
			seen[id] = 1
		}
		out = append(out, Heading{Level: len(m[1]), Text: text, ID: id})
	}
	return out
}

// SlugifyAnchor derives an anchor id with the same algorithm the HTML
// renderer's auto heading ids use: ASCII alphanumerics lowercased, spaces,
// hyphens and underscores mapped to a hyphen, every other rune dropped.
// Outline links stay valid against the rendered page.
func SlugifyAnchor(text string) string {
	text = strings.TrimSpace(text)
	var b strings.Builder
	for i := 0; i < len(text); {
		c := text[i]
		if c >= utf8.RuneSelf {
			_, size := utf8.DecodeRuneInString(text[i:])
			i += size
			continue
		}
		i++
		switch {
		case 'a' <= c && c <= 'z' || '0' <= c && c <= '9':
			b.WriteByte(c)
		case 'A' <= c && c <= 'Z':
			b.WriteByte(c + 'a' - 'A')
		case c == ' ' || c == '\t' || c == '-' || c == '_':
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "heading"
	}
	return b.String()
}

var inlineMarkupRE = regexp.MustCompile("[`*_]|\\[([^\\]]*)\\]\\([^)]*\\)")

func stripInlineMarkup(s string) string {
	return inlineMarkupRE.ReplaceAllString(s, "$1")
}

// HumanizeSegment turns a path segment like "getting-started" into
// "Getting Started".
func HumanizeSegment(seg string) string {
	words := strings.FieldsFunc(seg, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func lastSegment(slug string) string {
	parts := strings.Split(strings.Trim(slug, "/"), "/")
	if len(parts) == 0 {
		return slug
	}
	return parts[len(parts)-1]
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
