package guides

import (
	"fmt"
	"io/fs"
	"net/url"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest declares the parameterized steps of a dynamic guide.
type Manifest struct {
	Title string         `yaml:"title"`
	Steps []ManifestStep `yaml:"steps"`
}

// ManifestStep is one declared step. When declares parameter values the
// step requires; a step with no When entries is always present. Titles may
// interpolate caller parameters with {param} placeholders.
type ManifestStep struct {
	Number int               `yaml:"number"`
	Title  string            `yaml:"title"`
	File   string            `yaml:"file"`
	When   map[string]string `yaml:"when"`
}

func loadManifest(filesystem fs.FS, manifestPath string) (*Manifest, error) {
	data, err := fs.ReadFile(filesystem, manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", manifestPath, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", manifestPath, err)
	}
	return &m, nil
}

// computeSteps selects the declared steps whose When constraints are
// satisfied by params and interpolates titles. Declared step numbers are
// kept stable so a step keeps its number across parameter combinations.
func (m *Manifest) computeSteps(slug string, params url.Values) []Step {
	var steps []Step
	for _, ms := range m.Steps {
		if !matches(ms.When, params) {
			continue
		}
		title := interpolate(ms.Title, params)
		file := path.Join(slug, ms.File)
		steps = append(steps, Step{
			Number: ms.Number,
			Title:  title,
			Slug:   strings.TrimSuffix(strings.TrimSuffix(file, ".mdx"), ".md"),
			File:   file,
		})
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i].Number < steps[j].Number })
	return steps
}

func matches(when map[string]string, params url.Values) bool {
	for k, want := range when {
		if params.Get(k) != want {
			return false
		}
	}
	return true
}

func interpolate(title string, params url.Values) string {
	for k, vs := range params {
		if len(vs) == 0 {
			continue
		}
		title = strings.ReplaceAll(title, "{"+k+"}", vs[0])
	}
	return title
}
