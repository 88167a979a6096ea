package models

import "time"

type Wishlist struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int       `gorm:"index;not null" json:"userId"`
	ProductID int       `gorm:"not null" json:"productId"`
	AddedAt   time.Time `json:"addedAt"`
}

type RecentlyViewed struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int       `gorm:"index;not null" json:"userId"`
	ProductID int       `gorm:"not null" json:"productId"`
	ViewedAt  time.Time `json:"viewedAt"`
}
