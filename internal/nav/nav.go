// Package nav models the site's declared navigation tree and derives
// breadcrumb trails from it.
package nav

import (
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fiveonefour/moosedocs/internal/content"
)

// Entry is one node of the navigation tree.
type Entry struct {
	Title    string  `yaml:"title" json:"title"`
	Slug     string  `yaml:"slug" json:"slug"`
	Children []Entry `yaml:"children,omitempty" json:"children,omitempty"`
}

// Tree is the declared navigation config for the site.
type Tree struct {
	Entries []Entry `yaml:"nav"`
}

// Crumb is one element of a breadcrumb trail.
type Crumb struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// Load reads nav.yaml from the content root. A missing file yields an
// empty tree, not an error; breadcrumbs then fall back to path segments.
func Load(filesystem fs.FS) (*Tree, error) {
	data, err := fs.ReadFile(filesystem, "nav.yaml")
	if err != nil {
		return &Tree{}, nil
	}
	var t Tree
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse nav.yaml: %w", err)
	}
	return &t, nil
}

// Breadcrumbs returns the ancestor chain for slug, ending at the slug's
// own entry. When the tree has no matching entry the trail is derived
// from the slug's path segments with humanized titles.
func (t *Tree) Breadcrumbs(slug string) []Crumb {
	slug = content.CleanSlug(slug)
	if trail := findTrail(t.Entries, slug, nil); trail != nil {
		return trail
	}
	return segmentCrumbs(slug)
}

func findTrail(entries []Entry, slug string, ancestors []Crumb) []Crumb {
	for _, e := range entries {
		trail := append(append([]Crumb(nil), ancestors...), Crumb{Title: e.Title, Slug: e.Slug})
		if content.CleanSlug(e.Slug) == slug {
			return trail
		}
		if found := findTrail(e.Children, slug, trail); found != nil {
			return found
		}
	}
	return nil
}

func segmentCrumbs(slug string) []Crumb {
	if slug == "" {
		return nil
	}
	segments := strings.Split(slug, "/")
	crumbs := make([]Crumb, 0, len(segments))
	for i, seg := range segments {
		crumbs = append(crumbs, Crumb{
			Title: content.HumanizeSegment(seg),
			Slug:  strings.Join(segments[:i+1], "/"),
		})
	}
	return crumbs
}
