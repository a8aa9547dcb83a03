package nav_test

import (
	"testing"
	"testing/fstest"

	"github.com/fiveonefour/moosedocs/internal/nav"
)

func navFS() fstest.MapFS {
	return fstest.MapFS{
		"nav.yaml": &fstest.MapFile{Data: []byte(`nav:
  - title: Getting Started
    slug: getting-started
    children:
      - title: Installation
        slug: getting-started/install
  - title: Reference
    slug: reference
`)},
	}
}

func TestBreadcrumbsFromTree(t *testing.T) {
	tree, err := nav.Load(navFS())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	crumbs := tree.Breadcrumbs("getting-started/install")
	if len(crumbs) != 2 {
		t.Fatalf("crumbs = %+v", crumbs)
	}
	if crumbs[0].Title != "Getting Started" || crumbs[1].Title != "Installation" {
		t.Fatalf("crumbs = %+v", crumbs)
	}
}

func TestBreadcrumbsFallbackToSegments(t *testing.T) {
	tree, err := nav.Load(navFS())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	crumbs := tree.Breadcrumbs("moose/data-models/advanced")
	want := []nav.Crumb{
		{Title: "Moose", Slug: "moose"},
		{Title: "Data Models", Slug: "moose/data-models"},
		{Title: "Advanced", Slug: "moose/data-models/advanced"},
	}
	if len(crumbs) != len(want) {
		t.Fatalf("crumbs = %+v", crumbs)
	}
	for i := range want {
		if crumbs[i] != want[i] {
			t.Fatalf("crumb %d = %+v, want %+v", i, crumbs[i], want[i])
		}
	}
}

func TestLoadMissingNavIsEmpty(t *testing.T) {
	tree, err := nav.Load(fstest.MapFS{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if crumbs := tree.Breadcrumbs("a/b"); len(crumbs) != 2 {
		t.Fatalf("fallback crumbs = %+v", crumbs)
	}
}
