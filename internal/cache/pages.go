package cache

import (
	"time"

	"spendsmart/internal/core"
)

// PageCache holds backend data per browser identity so that repeated page
// views do not refetch summaries and category lists.
type PageCache struct {
	summaries  *LRUCache[core.DashboardSummary]
	categories *LRUCache[[]core.Category]
}

func NewPageCache(maxSize int, ttl time.Duration) *PageCache {
	return &PageCache{
		summaries:  NewLRUCache[core.DashboardSummary](maxSize, ttl),
		categories: NewLRUCache[[]core.Category](maxSize, ttl),
	}
}

// Register hands both caches to m for periodic expiry.
func (p *PageCache) Register(m *Manager) {
	m.Register(p.summaries, p.categories)
}

func scopePrefix(id string) string {
	return id + "|"
}

func summaryKey(id string, r core.DateRange) string {
	return scopePrefix(id) + r.Key()
}

func categoriesKey(id string, t core.TransactionType) string {
	return scopePrefix(id) + t.String()
}

func (p *PageCache) Summary(id string, r core.DateRange) (core.DashboardSummary, bool) {
	return p.summaries.Get(summaryKey(id, r))
}

func (p *PageCache) PutSummary(id string, r core.DateRange, s core.DashboardSummary) {
	p.summaries.Set(summaryKey(id, r), s)
}

func (p *PageCache) Categories(id string, t core.TransactionType) ([]core.Category, bool) {
	return p.categories.Get(categoriesKey(id, t))
}

func (p *PageCache) PutCategories(id string, t core.TransactionType, cats []core.Category) {
	p.categories.Set(categoriesKey(id, t), cats)
}

// InvalidateSummaries drops every summary of the browser; transactions changed.
func (p *PageCache) InvalidateSummaries(id string) {
	p.summaries.DeletePrefix(scopePrefix(id))
}

// InvalidateCategories drops the browser's category lists.
func (p *PageCache) InvalidateCategories(id string) {
	p.categories.DeletePrefix(scopePrefix(id))
}

// Forget drops everything cached for the browser.
func (p *PageCache) Forget(id string) {
	p.InvalidateSummaries(id)
	p.InvalidateCategories(id)
}

// Size reports the number of cached summaries and category lists.
func (p *PageCache) Size() (summaries, categories int) {
	return p.summaries.Size(), p.categories.Size()
}
