package service

import (
	"context"

	"github.com/productify/productify/internal/cache"
	"github.com/productify/productify/internal/comment/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// previewLimit bounds the comment preview merged into product reads.
const previewLimit = 3

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Repo  domain.Repository
	Cache cache.SummaryCache
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  domain.Repository
	cache cache.SummaryCache
}

func New(p Params) domain.Aggregator {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("comment.aggregator"),
		repo:  p.Repo,
		cache: p.Cache,
	}
}

// Summarize returns the comment count and a bounded preview for a product.
// Results are memoized briefly since summaries ride on every product read.
func (s *Service) Summarize(ctx context.Context, productID int64) (*domain.Summary, error) {
	if cached, ok := s.cache.GetSummary(productID); ok {
		return cached, nil
	}

	count, err := s.repo.CountByProduct(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}

	summary := &domain.Summary{
		Count:   count,
		Preview: []domain.Comment{},
	}
	if count > 0 {
		preview, err := s.repo.FindNewestByProduct(ctx, s.db, productID, previewLimit)
		if err != nil {
			return nil, err
		}
		summary.Preview = preview
	}

	s.cache.SetSummary(productID, summary)
	return summary, nil
}
