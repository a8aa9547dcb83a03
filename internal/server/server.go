// Package server exposes the content pipeline over HTTP: rendered pages,
// per-document markdown, LLM exports, search and guide APIs.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/fiveonefour/moosedocs/internal/content"
	"github.com/fiveonefour/moosedocs/internal/export"
	"github.com/fiveonefour/moosedocs/internal/github"
	"github.com/fiveonefour/moosedocs/internal/guides"
	"github.com/fiveonefour/moosedocs/internal/include"
	"github.com/fiveonefour/moosedocs/internal/nav"
	"github.com/fiveonefour/moosedocs/internal/render"
)

// Server routes documentation requests. All state it holds is either
// immutable per process or swapped atomically (the search index).
type Server struct {
	loader   *content.Loader
	resolver *include.Resolver // warn policy: readers should see broken includes
	renderer *render.Renderer
	exporter *export.Generator
	guides   *guides.Service
	nav      *nav.Tree
	stars    *github.Client
	logger   *zap.Logger

	index atomic.Pointer[searchIndex]

	searchTopK     int
	searchMinScore float64
}

// Options wires the server's collaborators.
type Options struct {
	Loader         *content.Loader
	Resolver       *include.Resolver
	Renderer       *render.Renderer
	Exporter       *export.Generator
	Guides         *guides.Service
	Nav            *nav.Tree
	Stars          *github.Client
	Logger         *zap.Logger
	SearchTopK     int
	SearchMinScore float64
}

// New constructs a Server. The search index starts empty; call SwapIndex
// once a build completes.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		loader:         opts.Loader,
		resolver:       opts.Resolver,
		renderer:       opts.Renderer,
		exporter:       opts.Exporter,
		guides:         opts.Guides,
		nav:            opts.Nav,
		stars:          opts.Stars,
		logger:         logger.Named("server"),
		searchTopK:     opts.SearchTopK,
		searchMinScore: opts.SearchMinScore,
	}
	return s
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /llms.txt", s.handleTOC)
	mux.HandleFunc("GET /llms-full.txt", s.handleCorpus)
	mux.HandleFunc("GET /md/{slug...}", s.handleMarkdown)
	mux.HandleFunc("GET /docs/{slug...}", s.handlePage)
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/guides/{slug...}", s.handleGuide)
	mux.HandleFunc("GET /api/stars", s.handleStars)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return s.requestLog(mux)
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("listening", zap.String("addr", addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
