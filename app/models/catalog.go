package models

import "time"

type Category struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Label     string    `gorm:"size:100" json:"label"`
	Gender    string    `gorm:"size:20" json:"gender"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Brand struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Label     string    `gorm:"size:100" json:"label"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SizeOption and RatingOption back the storefront filter widgets. They are
// fixed metadata, not stored entities.
type SizeOption struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

type RatingOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}
