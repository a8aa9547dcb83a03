package server

import (
	"github.com/fiveonefour/moosedocs/internal/search"
)

// searchIndex wraps the immutable index snapshot the handlers read.
type searchIndex struct {
	idx *search.Index
}

// SwapIndex atomically publishes a freshly built search index. Handlers
// already serving a request keep the snapshot they started with.
func (s *Server) SwapIndex(idx *search.Index) {
	s.index.Store(&searchIndex{idx: idx})
}

// CurrentIndex returns the index snapshot handlers are serving from, or
// nil before the first build completes.
func (s *Server) CurrentIndex() *search.Index {
	if snap := s.index.Load(); snap != nil {
		return snap.idx
	}
	return nil
}

// InvalidateGuides drops the guide service's cached dynamic step sets.
func (s *Server) InvalidateGuides() {
	s.guides.InvalidateCache()
}
