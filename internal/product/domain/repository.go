package domain

import (
	"context"

	"gorm.io/gorm"
)

// Repository is the durable storage boundary for products. Lookups on an
// absent id return (nil, nil) so callers can tell "not found" apart from a
// storage fault; Delete reports affected rows for the same reason.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Product, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Product, error)
	FindByOwner(ctx context.Context, db *gorm.DB, ownerID string) ([]Product, error)
	Update(ctx context.Context, db *gorm.DB, product *Product) error
	Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error)
}
