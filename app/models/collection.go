package models

import "time"

type Collection struct {
	ID          int        `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Active      bool       `gorm:"default:true" json:"active"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type ProductCollection struct {
	ID           int       `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID    int       `gorm:"index;not null" json:"productId"`
	CollectionID int       `gorm:"index;not null" json:"collectionId"`
	CreatedAt    time.Time `json:"createdAt"`
}
