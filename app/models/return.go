package models

import "time"

const (
	ReturnStatusPending  = "pending"
	ReturnStatusApproved = "approved"
	ReturnStatusRejected = "rejected"
	ReturnStatusRefunded = "refunded"
	ReturnStatusReturned = "returned"
)

type Return struct {
	ID             int       `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID        int       `gorm:"index;not null" json:"orderId"`
	OrderItemID    int       `gorm:"not null" json:"orderItemId"`
	UserID         int       `gorm:"index;not null" json:"userId"`
	Reason         string    `gorm:"type:text;not null" json:"reason"`
	Status         string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	RefundAmount   *int      `json:"refundAmount,omitempty"`
	TrackingNumber *string   `gorm:"size:100" json:"trackingNumber,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
