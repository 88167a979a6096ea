package models

import "time"

const (
	RoleAdmin          = "admin"
	RoleContentManager = "contentManager"
	RoleCustomer       = "customer"
)

const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

type User struct {
	ID             int        `gorm:"primaryKey;autoIncrement" json:"id"`
	Username       string     `gorm:"size:100;not null;uniqueIndex" json:"username"`
	Password       string     `gorm:"size:255;not null" json:"-"`
	Email          string     `gorm:"size:100;uniqueIndex" json:"email,omitempty"`
	FullName       string     `gorm:"size:255" json:"fullName,omitempty"`
	Role           string     `gorm:"size:20;not null;default:'customer'" json:"role"`
	Gender         string     `gorm:"size:20" json:"gender,omitempty"`
	Status         string     `gorm:"size:20;default:'active'" json:"status"`
	ProfilePicture string     `gorm:"size:255" json:"profilePicture,omitempty"`
	PhoneNumber    string     `gorm:"size:20" json:"phoneNumber,omitempty"`
	Address        string     `gorm:"size:255" json:"address,omitempty"`
	Birthdate      *time.Time `json:"birthdate,omitempty"`
	LastLogin      *time.Time `json:"lastLogin,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// PublicProfile is the subset of user data exposed on the public user endpoint.
type PublicProfile struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName,omitempty"`
	Role     string `json:"role"`
}

func (u *User) PublicProfile() PublicProfile {
	return PublicProfile{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Role:     u.Role,
	}
}
