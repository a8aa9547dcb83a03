// Package include expands :::include directives inside content documents.
package include

import (
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/fiveonefour/moosedocs/internal/content"
)

// Policy controls what a failed or circular include leaves behind.
type Policy int

const (
	// PolicyWarn replaces the directive with a visible warning block.
	PolicyWarn Policy = iota
	// PolicyElide removes the directive silently.
	PolicyElide
)

// ParsePolicy maps a configuration string to a Policy. Unrecognized values
// fall back to PolicyWarn.
func ParsePolicy(s string) Policy {
	if strings.EqualFold(strings.TrimSpace(s), "elide") {
		return PolicyElide
	}
	return PolicyWarn
}

// DefaultMaxDepth bounds include nesting on malformed content.
const DefaultMaxDepth = 3

var directiveRE = regexp.MustCompile(`(?m)^[ \t]*:::include[ \t]+(\S+)[ \t]*$`)

// Resolver expands include directives against a content root.
type Resolver struct {
	fs       fs.FS
	policy   Policy
	maxDepth int
	logger   *zap.Logger
}

// NewResolver builds a Resolver over the content-root filesystem.
func NewResolver(filesystem fs.FS, policy Policy, maxDepth int, logger *zap.Logger) *Resolver {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{fs: filesystem, policy: policy, maxDepth: maxDepth, logger: logger.Named("include")}
}

// Resolve expands every include directive in text. basePath is the
// content-root-relative path of the document owning the text, used to
// resolve non-rooted include targets.
func (r *Resolver) Resolve(text, basePath string) string {
	return r.resolve(text, basePath, 0, map[string]bool{})
}

func (r *Resolver) resolve(text, basePath string, depth int, open map[string]bool) string {
	return directiveRE.ReplaceAllStringFunc(text, func(line string) string {
		target := directiveRE.FindStringSubmatch(line)[1]
		resolved := r.resolvePath(target, basePath)

		if depth >= r.maxDepth {
			r.logger.Warn("max include depth exceeded, leaving directive unexpanded",
				zap.String("target", target), zap.Int("depth", depth))
			return line
		}
		if open[resolved] {
			r.logger.Warn("circular include", zap.String("target", target))
			return r.failure(target, "circular dependency")
		}

		data, err := fs.ReadFile(r.fs, resolved)
		if err != nil {
			r.logger.Warn("include target unreadable", zap.String("target", target), zap.Error(err))
			return r.failure(target, "file not found")
		}
		_, body, err := content.ParseFrontMatter(data)
		if err != nil {
			r.logger.Warn("include target malformed", zap.String("target", target), zap.Error(err))
			return r.failure(target, "unparseable front-matter")
		}

		open[resolved] = true
		expanded := r.resolve(strings.TrimSpace(body), resolved, depth+1, open)
		delete(open, resolved)
		return expanded
	})
}

// resolvePath maps an include target to a content-root-relative path.
// A leading slash is root-relative; anything else is relative to the
// including document's directory.
func (r *Resolver) resolvePath(target, basePath string) string {
	if strings.HasPrefix(target, "/") {
		return path.Clean(strings.TrimPrefix(target, "/"))
	}
	return path.Clean(path.Join(path.Dir(basePath), target))
}

func (r *Resolver) failure(target, reason string) string {
	if r.policy == PolicyElide {
		return ""
	}
	return fmt.Sprintf("> **Warning:** could not include `%s`: %s", target, reason)
}
