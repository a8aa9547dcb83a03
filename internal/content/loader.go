package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// ErrNotFound signals that a slug has no backing content file.
var ErrNotFound = errors.New("content: document not found")

// Loader resolves slugs to documents within a content root.
type Loader struct {
	fs fs.FS
}

// NewLoader constructs a Loader over the provided filesystem, whose root is
// the content root.
func NewLoader(filesystem fs.FS) *Loader {
	return &Loader{fs: filesystem}
}

// candidatePaths lists the file paths tried for a slug, in resolution order.
func candidatePaths(slug string) []string {
	slug = CleanSlug(slug)
	if slug == "" {
		return []string{"index.mdx", "index.md"}
	}
	return []string{
		slug + ".mdx",
		slug + ".md",
		path.Join(slug, "index.mdx"),
		path.Join(slug, "index.md"),
	}
}

// CleanSlug normalizes a slug to a slash-separated relative path with no
// leading or trailing slashes. A leading slash means root-relative, never
// filesystem-root-relative.
func CleanSlug(slug string) string {
	slug = strings.Trim(strings.TrimSpace(slug), "/")
	if slug == "" || slug == "." {
		return ""
	}
	return path.Clean(slug)
}

// Resolve returns the backing file path for a slug, or ErrNotFound.
func (l *Loader) Resolve(slug string) (string, error) {
	for _, p := range candidatePaths(slug) {
		info, err := fs.Stat(l.fs, p)
		if err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, slug)
}

// Load reads, parses and outlines the document identified by slug.
func (l *Loader) Load(ctx context.Context, slug string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	filePath, err := l.Resolve(slug)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(l.fs, filePath)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", filePath, err)
	}
	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("content: %s: %w", filePath, err)
	}
	return &Document{
		Slug:        CleanSlug(slug),
		FilePath:    filePath,
		FrontMatter: meta,
		Body:        body,
		IsMDX:       strings.HasSuffix(filePath, ".mdx") && DetectMDX(body),
		Headings:    ExtractHeadings(body),
	}, nil
}

// Walk enumerates every document slug under the content root in slug order.
// Index files resolve to their directory slug; a directory index never
// shadows a same-named sibling file because candidatePaths prefers the file.
func (l *Loader) Walk(ctx context.Context) ([]string, error) {
	seen := map[string]struct{}{}
	err := fs.WalkDir(l.fs, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && p != "." {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(p, ".md") && !strings.HasSuffix(p, ".mdx") {
			return nil
		}
		seen[slugForPath(p)] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slugs := make([]string, 0, len(seen))
	for s := range seen {
		slugs = append(slugs, s)
	}
	sort.Strings(slugs)
	return slugs, nil
}

func slugForPath(p string) string {
	p = strings.TrimSuffix(strings.TrimSuffix(p, ".mdx"), ".md")
	if path.Base(p) == "index" {
		p = path.Dir(p)
	}
	if p == "." {
		return ""
	}
	return p
}
