package include

import (
	"io/fs"

	"github.com/fiveonefour/moosedocs/internal/content"
)

// Issue is one problem found while walking a document's include graph.
type Issue struct {
	Doc    string `json:"doc"`
	Target string `json:"target"`
	Reason string `json:"reason"`
}

// Check walks the include graph of text without rewriting it and reports
// unresolvable targets, cycles and depth overflows.
func (r *Resolver) Check(text, basePath string) []Issue {
	var issues []Issue
	r.check(text, basePath, 0, map[string]bool{}, &issues)
	return issues
}

func (r *Resolver) check(text, basePath string, depth int, open map[string]bool, issues *[]Issue) {
	for _, m := range directiveRE.FindAllStringSubmatch(text, -1) {
		target := m[1]
		resolved := r.resolvePath(target, basePath)

		if depth >= r.maxDepth {
			*issues = append(*issues, Issue{Doc: basePath, Target: target, Reason: "max depth exceeded"})
			continue
		}
		if open[resolved] {
			*issues = append(*issues, Issue{Doc: basePath, Target: target, Reason: "circular dependency"})
			continue
		}
		data, err := fs.ReadFile(r.fs, resolved)
		if err != nil {
			*issues = append(*issues, Issue{Doc: basePath, Target: target, Reason: "file not found"})
			continue
		}
		_, body, err := content.ParseFrontMatter(data)
		if err != nil {
			*issues = append(*issues, Issue{Doc: basePath, Target: target, Reason: "unparseable front-matter"})
			continue
		}
		open[resolved] = true
		r.check(body, resolved, depth+1, open, issues)
		delete(open, resolved)
	}
}
