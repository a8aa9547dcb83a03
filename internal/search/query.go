package search

import (
	"regexp"
	"sort"
	"strings"

	"github.com/fiveonefour/moosedocs/internal/utils"
)

// Result is one ranked search hit, the best-scoring chunk of a document.
type Result struct {
	Slug    string  `json:"slug"`
	Title   string  `json:"title"`
	Score   float64 `json:"score"`
	Snippet string  `json:"snippet"`
}

var tokenRE = regexp.MustCompile(`[a-z0-9]+`)

// Tokenize lowercases text and splits it into alphanumeric terms.
func Tokenize(text string) []string {
	return tokenRE.FindAllString(strings.ToLower(text), -1)
}

// TermVector builds a term-frequency vector for text.
func TermVector(text string) map[string]float64 {
	terms := map[string]float64{}
	for _, tok := range Tokenize(text) {
		terms[tok]++
	}
	return terms
}

const snippetTokens = 40

// Query ranks documents against q by the cosine score of their best chunk.
// Results below minScore are dropped; at most topK are returned.
func (idx *Index) Query(q string, topK int, minScore float64) []Result {
	if topK <= 0 {
		topK = 10
	}
	qv := TermVector(q)
	if len(qv) == 0 {
		return nil
	}

	best := map[string]Result{}
	for _, r := range idx.Records {
		score := Cosine(qv, r.Terms)
		if score <= minScore {
			continue
		}
		if prev, ok := best[r.Slug]; ok && prev.Score >= score {
			continue
		}
		best[r.Slug] = Result{
			Slug:    r.Slug,
			Title:   r.Title,
			Score:   score,
			Snippet: utils.TruncateToTokenLimit(r.Text, snippetTokens),
		}
	}

	out := make([]Result, 0, len(best))
	for _, r := range best {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Slug < out[j].Slug
	})
	if len(out) > topK {
		out = out[:topK]
	}
	return out
}
