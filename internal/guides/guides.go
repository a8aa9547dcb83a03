// Package guides resolves the ordered step set of a guide. A guide is
// either static, with sibling step files discovered by naming convention,
// or dynamic, with a manifest declaring parameterized steps.
package guides

import (
	"context"
	"fmt"
	"io/fs"
	"net/url"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/fiveonefour/moosedocs/internal/content"
)

// ManifestFileName is the marker that makes a guide dynamic.
const ManifestFileName = "manifest.yaml"

// Step is one page of a guide.
type Step struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Slug   string `json:"slug"`
	File   string `json:"-"`
}

// Guide is a resolved guide with its ordered steps.
type Guide struct {
	Slug    string `json:"slug"`
	Dynamic bool   `json:"dynamic"`
	Steps   []Step `json:"steps"`
}

// Service resolves guides against the content root. Dynamic step sets are
// cached per distinct parameter combination for the process lifetime; the
// cache tolerates racing recomputation because results are deterministic.
type Service struct {
	fs     fs.FS
	logger *zap.Logger

	mu    sync.Mutex
	cache map[string][]Step
}

// NewService builds a guide resolver over the content-root filesystem.
func NewService(filesystem fs.FS, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fs:     filesystem,
		logger: logger.Named("guides"),
		cache:  map[string][]Step{},
	}
}

// Resolve returns the guide for slug. Params only influence dynamic guides.
func (s *Service) Resolve(ctx context.Context, slug string, params url.Values) (*Guide, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	slug = content.CleanSlug(slug)
	if _, err := fs.Stat(s.fs, path.Join(slug, ManifestFileName)); err == nil {
		steps, err := s.dynamicSteps(slug, params)
		if err != nil {
			return nil, err
		}
		return &Guide{Slug: slug, Dynamic: true, Steps: steps}, nil
	}
	steps, err := s.staticSteps(slug)
	if err != nil {
		return nil, err
	}
	return &Guide{Slug: slug, Steps: steps}, nil
}

// InvalidateCache drops all cached dynamic step sets. Called when content
// changes on disk.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	s.cache = map[string][]Step{}
	s.mu.Unlock()
}

var stepFileRE = regexp.MustCompile(`^step-(\d+)(?:-([\w-]+))?\.(mdx?|md)$`)

// staticSteps enumerates step files under the guide directory. A step file
// that fails to parse is skipped, not fatal; the guide renders with the
// remaining steps.
func (s *Service) staticSteps(slug string) ([]Step, error) {
	dir := slug
	if dir == "" {
		dir = "."
	}
	entries, err := fs.ReadDir(s.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", content.ErrNotFound, slug)
	}
	var steps []Step
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := stepFileRE.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		number, _ := strconv.Atoi(m[1])
		filePath := path.Join(slug, e.Name())
		title, err := s.stepTitle(filePath, m[2])
		if err != nil {
			s.logger.Warn("skipping unparseable step", zap.String("file", filePath), zap.Error(err))
			continue
		}
		steps = append(steps, Step{
			Number: number,
			Title:  title,
			Slug:   strings.TrimSuffix(strings.TrimSuffix(filePath, ".mdx"), ".md"),
			File:   filePath,
		})
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: %s has no steps", content.ErrNotFound, slug)
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i].Number < steps[j].Number })
	return steps, nil
}

// stepTitle prefers the step file's front-matter title, falling back to the
// humanized name segment from the filename.
func (s *Service) stepTitle(filePath, nameSegment string) (string, error) {
	data, err := fs.ReadFile(s.fs, filePath)
	if err != nil {
		return "", err
	}
	meta, _, err := content.ParseFrontMatter(data)
	if err != nil {
		return "", err
	}
	if meta.Title != "" {
		return meta.Title, nil
	}
	return content.HumanizeSegment(nameSegment), nil
}

func (s *Service) dynamicSteps(slug string, params url.Values) ([]Step, error) {
	key := cacheKey(slug, params)
	s.mu.Lock()
	cached, ok := s.cache[key]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	manifest, err := loadManifest(s.fs, path.Join(slug, ManifestFileName))
	if err != nil {
		return nil, err
	}
	steps := manifest.computeSteps(slug, params)

	s.mu.Lock()
	s.cache[key] = steps
	s.mu.Unlock()
	return steps, nil
}

// cacheKey canonicalizes params so equivalent combinations share an entry.
func cacheKey(slug string, params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(slug)
	for _, k := range keys {
		b.WriteString("|")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(params.Get(k))
	}
	return b.String()
}
