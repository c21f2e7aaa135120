package repository

import (
	"context"

	"github.com/productify/productify/internal/comment/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) CountByProduct(ctx context.Context, db *gorm.DB, productID int64) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM comments WHERE product_id = ?`,
		productID,
	).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) FindNewestByProduct(ctx context.Context, db *gorm.DB, productID int64, limit int) ([]domain.Comment, error) {
	var items []domain.Comment
	err := db.WithContext(ctx).Raw(
		`SELECT id, product_id, user_id, content, created_at
		 FROM comments WHERE product_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		productID,
		limit,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
