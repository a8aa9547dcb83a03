// Package search maintains a full-text index over the cleaned content
// tree. Chunks carry term-frequency vectors; queries are ranked by cosine
// similarity. The index persists as JSON with per-document content hashes
// so unchanged documents are not re-chunked on rebuild.
package search

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fiveonefour/moosedocs/internal/content"
	"github.com/fiveonefour/moosedocs/internal/utils"
)

// Record is one indexed chunk of a document.
type Record struct {
	DocID   string             `json:"doc_id"`
	Slug    string             `json:"slug"`
	Title   string             `json:"title"`
	ChunkID int                `json:"chunk_id"`
	Text    string             `json:"text"`
	Terms   map[string]float64 `json:"terms"`
}

// Index is the persisted search index.
type Index struct {
	// Map document slug to content hash for invalidation
	DocHashes map[string]string `json:"doc_hashes"`
	Records   []Record          `json:"records"`
	Meta      IndexMeta         `json:"meta"`
}

type IndexMeta struct {
	IndexVersion   int       `json:"index_version"`
	Language       string    `json:"language"`
	ChunkMaxTokens int       `json:"chunk_max_tokens"`
	ChunkOverlap   int       `json:"chunk_overlap"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Save writes the index atomically.
func (idx *Index) Save(path string) error {
	if idx == nil {
		return fmt.Errorf("nil index")
	}
	if idx.DocHashes == nil {
		idx.DocHashes = map[string]string{}
	}
	b, err := utils.PrettyJSON(idx)
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("ensure index dir: %w", err)
	}
	return utils.SafeWriteFile(path, b)
}

// Load reads a previously saved index.
func Load(path string) (*Index, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var idx Index
	if err := json.Unmarshal(b, &idx); err != nil {
		return nil, err
	}
	if idx.DocHashes == nil {
		idx.DocHashes = map[string]string{}
	}
	// Backfill meta defaults for older indexes
	if idx.Meta.IndexVersion == 0 {
		idx.Meta.IndexVersion = 1
	}
	return &idx, nil
}

// metaCompatible checks if previous index records can be reused under
// current options.
func metaCompatible(prev, cur IndexMeta) bool {
	if prev.IndexVersion != cur.IndexVersion {
		return false
	}
	if prev.Language != cur.Language {
		return false
	}
	if prev.ChunkMaxTokens != 0 && cur.ChunkMaxTokens != 0 && prev.ChunkMaxTokens != cur.ChunkMaxTokens {
		return false
	}
	if prev.ChunkOverlap != 0 && cur.ChunkOverlap != 0 && prev.ChunkOverlap != cur.ChunkOverlap {
		return false
	}
	return true
}

// DocumentSource supplies the cleaned text of one document for indexing.
type DocumentSource interface {
	Document(ctx context.Context, slug, lang string) (string, error)
}

// BuildOptions tune an index build.
type BuildOptions struct {
	Force          bool
	Language       string
	ChunkMaxTokens int
	ChunkOverlap   int
}

// Build creates or refreshes the index for the whole content tree. prev may
// be nil; when its metadata is compatible, records of documents whose
// content hash is unchanged are carried over instead of re-chunked. A
// document that fails to export is logged and skipped.
func Build(ctx context.Context, loader *content.Loader, source DocumentSource, prev *Index, opts BuildOptions, logger *zap.Logger) (*Index, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("search")

	if opts.ChunkMaxTokens <= 0 {
		opts.ChunkMaxTokens = 400
	}
	if opts.ChunkOverlap < 0 {
		opts.ChunkOverlap = 0
	}
	idx := &Index{
		DocHashes: map[string]string{},
		Meta: IndexMeta{
			IndexVersion:   1,
			Language:       opts.Language,
			ChunkMaxTokens: opts.ChunkMaxTokens,
			ChunkOverlap:   opts.ChunkOverlap,
			CreatedAt:      time.Now(),
			UpdatedAt:      time.Now(),
		},
	}
	if prev != nil && !opts.Force && metaCompatible(prev.Meta, idx.Meta) {
		idx.Meta.CreatedAt = prev.Meta.CreatedAt
	} else {
		prev = nil
	}

	// Previous records grouped by slug for reuse
	bySlug := map[string][]Record{}
	if prev != nil {
		for _, r := range prev.Records {
			bySlug[r.Slug] = append(bySlug[r.Slug], r)
		}
	}

	slugs, err := loader.Walk(ctx)
	if err != nil {
		return nil, fmt.Errorf("search: walk content: %w", err)
	}
	for _, slug := range slugs {
		text, err := source.Document(ctx, slug, opts.Language)
		if err != nil {
			logger.Warn("skipping document", zap.String("slug", slug), zap.Error(err))
			continue
		}
		sum := sha1.Sum([]byte(text))
		hash := fmt.Sprintf("%x", sum[:])
		idx.DocHashes[slug] = hash

		if prev != nil && prev.DocHashes[slug] == hash {
			idx.Records = append(idx.Records, bySlug[slug]...)
			continue
		}

		title := titleOf(text, slug)
		docID := uuid.NewString()
		for i, chunk := range ChunkByTokens(text, opts.ChunkMaxTokens, opts.ChunkOverlap) {
			idx.Records = append(idx.Records, Record{
				DocID:   docID,
				Slug:    slug,
				Title:   title,
				ChunkID: i,
				Text:    chunk,
				Terms:   TermVector(chunk),
			})
		}
	}
	return idx, nil
}

// titleOf reads the leading H1 of exported text, falling back to the slug.
func titleOf(text, slug string) string {
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
		if strings.TrimSpace(line) != "" {
			break
		}
	}
	if slug == "" {
		return "Home"
	}
	return content.HumanizeSegment(slug)
}

// Cosine similarity between two term vectors. Returns 0 for empty input.
func Cosine(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var dot, na, nb float64
	for t, wa := range a {
		na += wa * wa
		if wb, ok := b[t]; ok {
			dot += wa * wb
		}
	}
	for _, wb := range b {
		nb += wb * wb
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
