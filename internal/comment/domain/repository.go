package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	CountByProduct(ctx context.Context, db *gorm.DB, productID int64) (int64, error)
	FindNewestByProduct(ctx context.Context, db *gorm.DB, productID int64, limit int) ([]Comment, error)
}
