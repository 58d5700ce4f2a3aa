package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/iliyamo/movienight/internal/tmdb"
)

// MovieSource is the external catalogue.  *tmdb.Client implements it.
type MovieSource interface {
	SearchMovies(ctx context.Context, query string, page int) (tmdb.Page, error)
	PopularMovies(ctx context.Context, page int) (tmdb.Page, error)
}

// LookupService searches the external catalogue.  Queries pass through
// Rewriter before they are sent.
type LookupService struct {
	Source   MovieSource
	Rewriter tmdb.QueryRewriter
}

func NewLookupService(src MovieSource, rw tmdb.QueryRewriter) *LookupService {
	if rw == nil {
		rw = tmdb.Identity{}
	}
	return &LookupService{Source: src, Rewriter: rw}
}

func (s *LookupService) Search(ctx context.Context, query string, page int) (tmdb.Page, error) {
	if strings.TrimSpace(query) == "" {
		return tmdb.Page{}, invalidf("query is required")
	}
	res, err := s.Source.SearchMovies(ctx, s.Rewriter.Rewrite(query), max(page, 1))
	if err != nil {
		return tmdb.Page{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return res, nil
}

func (s *LookupService) Popular(ctx context.Context, page int) (tmdb.Page, error) {
	res, err := s.Source.PopularMovies(ctx, max(page, 1))
	if err != nil {
		return tmdb.Page{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return res, nil
}
