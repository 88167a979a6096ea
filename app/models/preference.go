package models

import "time"

type UserPreferences struct {
	ID                 int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID             int       `gorm:"uniqueIndex;not null" json:"userId"`
	FavoriteCategories []string  `gorm:"serializer:json" json:"favoriteCategories"`
	FavoriteColors     []string  `gorm:"serializer:json" json:"favoriteColors"`
	FavoriteOccasions  []string  `gorm:"serializer:json" json:"favoriteOccasions"`
	PriceRangeMin      *int      `json:"priceRangeMin"`
	PriceRangeMax      *int      `json:"priceRangeMax"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
