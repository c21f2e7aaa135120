package domain

import "context"

// Aggregator exposes the read-only comment view attached to products.
// It is enrichment-only: callers must tolerate its failure.
type Aggregator interface {
	Summarize(ctx context.Context, productID int64) (*Summary, error)
}
