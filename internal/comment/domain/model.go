package domain

import "time"

// Comment mirrors the externally-owned comments table. This service reads it
// for aggregation only and never mutates it.
type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	ProductID int64     `json:"productId" gorm:"column:product_id;not null;index:ix_comments_product"`
	UserID    string    `json:"userId" gorm:"column:user_id;type:text;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null"`
}

func (Comment) TableName() string { return "comments" }

// Summary is the aggregate view merged into product reads.
type Summary struct {
	Count   int64     `json:"count"`
	Preview []Comment `json:"preview"`
}
