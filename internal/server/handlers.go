package server

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/fiveonefour/moosedocs/internal/cleaner"
	"github.com/fiveonefour/moosedocs/internal/content"
	"github.com/fiveonefour/moosedocs/internal/langfilter"
	"github.com/fiveonefour/moosedocs/internal/search"
)

func (s *Server) handleTOC(w http.ResponseWriter, r *http.Request) {
	toc, err := s.exporter.TableOfContents(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeMarkdown(w, toc)
}

func (s *Server) handleCorpus(w http.ResponseWriter, r *http.Request) {
	lang := langfilter.NormalizeValues(r.URL.Query()["lang"])
	corpus, err := s.exporter.Corpus(r.Context(), lang)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeMarkdown(w, corpus)
}

func (s *Server) handleMarkdown(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	lang := langfilter.NormalizeValues(r.URL.Query()["lang"])
	doc, err := s.exporter.Document(r.Context(), slug, lang)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.internalError(w, r, err)
		return
	}
	writeMarkdown(w, doc)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	lang := langfilter.NormalizeValues(r.URL.Query()["lang"])

	// Star count is independent of the document; fetch it while loading.
	starsCh := make(chan int, 1)
	go func() {
		if s.stars == nil {
			starsCh <- 0
			return
		}
		starsCh <- s.stars.Stars(r.Context())
	}()

	doc, err := s.loader.Load(r.Context(), slug)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.internalError(w, r, err)
		return
	}

	body := s.resolver.Resolve(doc.Body, doc.FilePath)
	body = langfilter.Filter(body, lang)
	if doc.IsMDX {
		// Component syntax does not survive to HTML; strip it like the
		// export path does.
		body = cleaner.Clean(body)
	}
	html, err := s.renderer.HTML(body)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	page := pageData{
		Title:       doc.Title(),
		Description: doc.FrontMatter.Description,
		Breadcrumbs: s.nav.Breadcrumbs(doc.Slug),
		Headings:    doc.Headings,
		Body:        template.HTML(html),
		Stars:       <-starsCh,
	}
	writePage(w, page)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		http.Error(w, "missing q parameter", http.StatusBadRequest)
		return
	}
	idx := s.CurrentIndex()
	if idx == nil {
		// Index still building; an empty result set beats an error page.
		writeJSON(w, searchResponse{Query: q, Results: []search.Result{}})
		return
	}
	results := idx.Query(q, s.searchTopK, s.searchMinScore)
	if results == nil {
		results = []search.Result{}
	}
	writeJSON(w, searchResponse{Query: q, Results: results})
}

type searchResponse struct {
	Query   string          `json:"query"`
	Results []search.Result `json:"results"`
}

func (s *Server) handleGuide(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	guide, err := s.guides.Resolve(r.Context(), slug, r.URL.Query())
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, guide)
}

func (s *Server) handleStars(w http.ResponseWriter, r *http.Request) {
	count := 0
	if s.stars != nil {
		count = s.stars.Stars(r.Context())
	}
	writeJSON(w, map[string]int{"stars": count})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeMarkdown(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write([]byte(body))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
