package http

import (
	"context"
	"sync/atomic"

	"spendsmart/internal/core"
	"spendsmart/internal/session"
)

func sessionID(ctx context.Context) string {
	id, _ := session.IDFromContext(ctx)
	return id
}

// summary returns the dashboard summary for r, served from the browser's
// page cache when fresh.
func (s *Server) summary(ctx context.Context, r core.DateRange) (core.DashboardSummary, error) {
	id := sessionID(ctx)
	if sum, ok := s.pages.Summary(id, r); ok {
		atomic.AddInt64(&s.metrics.cacheHits, 1)
		return sum, nil
	}
	atomic.AddInt64(&s.metrics.cacheMisses, 1)

	sum, err := s.api.DashboardSummary(ctx, r)
	if err != nil {
		return core.DashboardSummary{}, err
	}
	s.pages.PutSummary(id, r, sum)
	return sum, nil
}

// categories returns the browser's categories of type t; "" lists all.
func (s *Server) categories(ctx context.Context, t core.TransactionType) ([]core.Category, error) {
	id := sessionID(ctx)
	if cats, ok := s.pages.Categories(id, t); ok {
		atomic.AddInt64(&s.metrics.cacheHits, 1)
		return cats, nil
	}
	atomic.AddInt64(&s.metrics.cacheMisses, 1)

	cats, err := s.api.ListCategories(ctx, t)
	if err != nil {
		return nil, err
	}
	s.pages.PutCategories(id, t, cats)
	return cats, nil
}

// transactionsChanged drops cached data derived from transactions.
func (s *Server) transactionsChanged(ctx context.Context) {
	s.pages.InvalidateSummaries(sessionID(ctx))
}

// categoriesChanged drops cached category lists and the summaries whose
// breakdown names them.
func (s *Server) categoriesChanged(ctx context.Context) {
	id := sessionID(ctx)
	s.pages.InvalidateCategories(id)
	s.pages.InvalidateSummaries(id)
}
