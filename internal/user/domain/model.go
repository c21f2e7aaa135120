package domain

import "time"

// User mirrors the externally-owned users table. This service only reads it
// for owner enrichment; account lifecycle belongs to the auth provider sync.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text"`
	Name      string    `json:"name" gorm:"type:text"`
	Email     string    `json:"email" gorm:"type:text"`
	ImageURL  string    `json:"imageUrl" gorm:"column:image_url;type:text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// Profile is the public owner shape merged into product reads.
type Profile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
}
