package migrations

import (
	"github.com/vastrakart/go-storefront/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Brand{},
		&models.Product{},
		&models.Inventory{},
		&models.Review{},
		&models.Order{},
		&models.OrderItem{},
		&models.Wishlist{},
		&models.RecentlyViewed{},
		&models.Return{},
		&models.Collection{},
		&models.ProductCollection{},
		&models.UserPreferences{},
	)
}
