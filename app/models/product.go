package models

import "time"

// Product genders are free-form in storage; "all" and "search" are filter
// sentinels and never stored.
type Product struct {
	ID              int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string    `gorm:"size:255;not null" json:"name"`
	Description     string    `gorm:"type:text" json:"description"`
	Price           int       `gorm:"not null" json:"price"`
	DiscountedPrice *int      `json:"discountedPrice"`
	CategoryID      int       `gorm:"index" json:"categoryId"`
	BrandID         int       `gorm:"index" json:"brandId"`
	Gender          string    `gorm:"size:20" json:"gender"`
	ImageURLs       []string  `gorm:"serializer:json" json:"imageUrls"`
	Featured        bool      `json:"featured"`
	IsNew           bool      `json:"isNew"`
	AverageRating   *float64  `json:"averageRating,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type Inventory struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int       `gorm:"index;not null" json:"productId"`
	Size      string    `gorm:"size:20;not null" json:"size"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Review struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int       `gorm:"index;not null" json:"productId"`
	UserID    int       `gorm:"index;not null" json:"userId"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
