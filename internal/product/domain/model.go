package domain

import "time"

// Product is the persisted record. OwnerID is assigned at creation from the
// authenticated caller and never changes afterwards.
type Product struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	OwnerID     string    `json:"ownerId" gorm:"column:owner_id;type:text;not null;index:ix_products_owner"`
	Title       string    `json:"title" gorm:"type:text;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	ImageURL    string    `json:"imageUrl" gorm:"column:image_url;type:text;not null"`
	CreatedAt   time.Time `json:"createdAt" gorm:"not null"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"not null"`
}

func (Product) TableName() string { return "products" }
