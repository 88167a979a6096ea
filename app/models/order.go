package models

import "time"

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

type Order struct {
	ID         int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     *int      `gorm:"index" json:"userId"`
	Email      string    `gorm:"size:100;not null" json:"email"`
	FullName   string    `gorm:"size:255;not null" json:"fullName"`
	Address    string    `gorm:"size:255;not null" json:"address"`
	City       string    `gorm:"size:100;not null" json:"city"`
	State      string    `gorm:"size:100;not null" json:"state"`
	PostalCode string    `gorm:"size:20;not null" json:"postalCode"`
	Phone      string    `gorm:"size:20;not null" json:"phone"`
	Status     string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	Total      int       `gorm:"not null" json:"total"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// OrderItem captures price at purchase time, independent of later product
// price changes.
type OrderItem struct {
	ID        int    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int    `gorm:"index;not null" json:"orderId"`
	ProductID int    `gorm:"index;not null" json:"productId"`
	Size      string `gorm:"size:20;not null" json:"size"`
	Quantity  int    `gorm:"not null" json:"quantity"`
	Price     int    `gorm:"not null" json:"price"`
}
