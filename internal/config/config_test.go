package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fiveonefour/moosedocs/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	// Point at a nonexistent config file path's directory to avoid picking
	// up a developer's real ~/.moosedocs/config.yaml.
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgFile, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := config.Load(cfgFile)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.DefaultLanguage != "typescript" || c.AltLanguage != "python" {
		t.Fatalf("language defaults wrong: %+v", c)
	}
	if c.IncludeMaxDepth != 3 {
		t.Fatalf("include depth default = %d", c.IncludeMaxDepth)
	}
	if c.IncludePolicy != "elide" {
		t.Fatalf("include policy default = %q", c.IncludePolicy)
	}
	if c.StarsTTLSec != 3600 {
		t.Fatalf("stars ttl default = %d", c.StarsTTLSec)
	}
}

func TestLoadFileOverrides(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	data := "content_root: /srv/docs\ninclude_policy: warn\nsearch_top_k: 5\n"
	if err := os.WriteFile(cfgFile, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := config.Load(cfgFile)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.ContentRoot != "/srv/docs" || c.IncludePolicy != "warn" || c.SearchTopK != 5 {
		t.Fatalf("overrides not applied: %+v", c)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	c := &config.Global{ContentRoot: "content", DefaultLanguage: "typescript"}
	if err := config.Save(c, cfgFile); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := config.Load(cfgFile)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.ContentRoot != "content" {
		t.Fatalf("round trip lost content_root: %+v", loaded)
	}
}

func TestIndexPathOrDefault(t *testing.T) {
	c := &config.Global{ContentRoot: "content"}
	if got := c.IndexPathOrDefault(); got != filepath.Join("content", ".moosedocs-index.json") {
		t.Fatalf("got %q", got)
	}
	c.IndexPath = "/tmp/idx.json"
	if got := c.IndexPathOrDefault(); got != "/tmp/idx.json" {
		t.Fatalf("got %q", got)
	}
}
