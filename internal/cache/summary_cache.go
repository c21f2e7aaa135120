package cache

import (
	"strconv"
	"time"

	commentdomain "github.com/productify/productify/internal/comment/domain"
)

const defaultSummaryTTL = 15 * time.Second

// SummaryCache memoizes comment summaries on the hot read path. Entries are
// short-lived; staleness of a few seconds is acceptable for enrichment data.
type SummaryCache interface {
	GetSummary(productID int64) (*commentdomain.Summary, bool)
	SetSummary(productID int64, summary *commentdomain.Summary)
	Invalidate(productID int64)
}

type summaryCache struct {
	summaries Cache[string, *commentdomain.Summary]
	ttl       time.Duration
}

// NewSummaryCache returns an in-memory cache tuned for product reads.
func NewSummaryCache() SummaryCache {
	return &summaryCache{
		summaries: NewTTLCache[string, *commentdomain.Summary](),
		ttl:       defaultSummaryTTL,
	}
}

func (c *summaryCache) GetSummary(productID int64) (*commentdomain.Summary, bool) {
	return c.summaries.Get(summaryKey(productID))
}

func (c *summaryCache) SetSummary(productID int64, summary *commentdomain.Summary) {
	if summary == nil {
		return
	}
	c.summaries.Set(summaryKey(productID), summary, c.ttl)
}

func (c *summaryCache) Invalidate(productID int64) {
	c.summaries.Delete(summaryKey(productID))
}

func summaryKey(productID int64) string {
	return strconv.FormatInt(productID, 10)
}
