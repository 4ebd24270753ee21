package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/finance"
	"github.com/vocal-hub/vocal-studio-hub/pkg/timeutil"
)

// SummaryCache implements finance.SummaryCache on top of Redis.
type SummaryCache struct {
	cache *Cache
}

// NewSummaryCache creates a SummaryCache over the shared cache client.
func NewSummaryCache(cache *Cache) *SummaryCache {
	return &SummaryCache{cache: cache}
}

// key builds "summary:<user>:<YYYY-MM>".
func (s *SummaryCache) key(userID int64, year int, month time.Month) string {
	return fmt.Sprintf("%s%d:%s", PrefixSummary, userID, timeutil.MonthKey(year, month))
}

// Get returns the cached monthly summary. Misses come back as
// ErrCacheMiss.
func (s *SummaryCache) Get(ctx context.Context, userID int64, year int, month time.Month) (*finance.Summary, error) {
	var summary finance.Summary
	if err := s.cache.Get(ctx, s.key(userID, year, month), &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Set stores the monthly summary with a TTL.
func (s *SummaryCache) Set(ctx context.Context, userID int64, summary *finance.Summary, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = TTLSummary
	}
	return s.cache.Set(ctx, s.key(userID, summary.Year, summary.Month), summary, ttl)
}

// Invalidate drops the cached summary after a ledger write.
func (s *SummaryCache) Invalidate(ctx context.Context, userID int64, year int, month time.Month) error {
	return s.cache.Delete(ctx, s.key(userID, year, month))
}
