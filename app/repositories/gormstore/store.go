package gormstore

import (
	"context"
	"errors"
	"time"

	"github.com/vastrakart/go-storefront/app/models"
	"github.com/vastrakart/go-storefront/app/repositories"
	"gorm.io/gorm"
)

// Store implements repositories.Datastore on top of gorm/MySQL so the
// in-memory store can be swapped for a real database without touching the
// handlers.
type Store struct {
	db *gorm.DB
}

var _ repositories.Datastore = (*Store)(nil)

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func first[T any](db *gorm.DB, conds ...interface{}) (*T, error) {
	var out T
	err := db.First(&out, conds...).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

// ---- Users ----

func (s *Store) GetUser(ctx context.Context, id int) (*models.User, error) {
	return first[models.User](s.db.WithContext(ctx), "id = ?", id)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return first[models.User](s.db.WithContext(ctx), "username = ?", username)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, nil
	}
	return first[models.User](s.db.WithContext(ctx), "email = ?", email)
}

func (s *Store) GetAllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("id").Find(&users).Error
	return users, err
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	existing, err := s.GetUserByUsername(ctx, user.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return repositories.ErrDuplicateUsername
	}
	existing, err = s.GetUserByEmail(ctx, user.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return repositories.ErrDuplicateEmail
	}
	if user.Role == "" {
		user.Role = models.RoleCustomer
	}
	if user.Status == "" {
		user.Status = models.UserStatusActive
	}
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	existing, err := s.GetUserByUsername(ctx, user.Username)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != user.ID {
		return repositories.ErrDuplicateUsername
	}
	existing, err = s.GetUserByEmail(ctx, user.Email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != user.ID {
		return repositories.ErrDuplicateEmail
	}
	return s.db.WithContext(ctx).Save(user).Error
}

func (s *Store) DeleteUser(ctx context.Context, id int) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&models.User{}, id)
	return res.RowsAffected > 0, res.Error
}

// ---- Categories ----

func (s *Store) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	err := s.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (s *Store) GetCategory(ctx context.Context, id int) (*models.Category, error) {
	return first[models.Category](s.db.WithContext(ctx), "id = ?", id)
}

func (s *Store) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	return first[models.Category](s.db.WithContext(ctx), "LOWER(name) = LOWER(?)", name)
}

func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	return s.db.WithContext(ctx).Create(category).Error
}

func (s *Store) DeleteCategory(ctx context.Context, id int) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, repositories.ErrCategoryInUse
	}
	res := s.db.WithContext(ctx).Delete(&models.Category{}, id)
	return res.RowsAffected > 0, res.Error
}

// ---- Brands ----

func (s *Store) GetAllBrands(ctx context.Context) ([]models.Brand, error) {
	var out []models.Brand
	err := s.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (s *Store) GetBrand(ctx context.Context, id int) (*models.Brand, error) {
	return first[models.Brand](s.db.WithContext(ctx), "id = ?", id)
}

func (s *Store) GetBrandByName(ctx context.Context, name string) (*models.Brand, error) {
	return first[models.Brand](s.db.WithContext(ctx), "LOWER(name) = LOWER(?)", name)
}

func (s *Store) CreateBrand(ctx context.Context, brand *models.Brand) error {
	return s.db.WithContext(ctx).Create(brand).Error
}

func (s *Store) DeleteBrand(ctx context.Context, id int) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Where("brand_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, repositories.ErrBrandInUse
	}
	res := s.db.WithContext(ctx).Delete(&models.Brand{}, id)
	return res.RowsAffected > 0, res.Error
}

// ---- Products ----

func (s *Store) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	err := s.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (s *Store) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	return first[models.Product](s.db.WithContext(ctx), "id = ?", id)
}

func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

func (s *Store) UpdateProduct(ctx context.Context, product *models.Product) error {
	return s.db.WithContext(ctx).Save(product).Error
}

func (s *Store) DeleteProduct(ctx context.Context, id int) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&models.Product{}, id)
	return res.RowsAffected > 0, res.Error
}

// ---- Inventory ----

func (s *Store) GetInventoryByProduct(ctx context.Context, productID int) ([]models.Inventory, error) {
	var out []models.Inventory
	err := s.db.WithContext(ctx).Where("product_id = ?", productID).Order("id").Find(&out).Error
	return out, err
}

func (s *Store) GetInventoryItem(ctx context.Context, id int) (*models.Inventory, error) {
	return first[models.Inventory](s.db.WithContext(ctx), "id = ?", id)
}

func (s *Store) CreateInventory(ctx context.Context, item *models.Inventory) error {
	existing, err := first[models.Inventory](s.db.WithContext(ctx),
		"product_id = ? AND LOWER(size) = LOWER(?)", item.ProductID, item.Size)
	if err != nil {
		return err
	}
	if existing != nil {
		existing.Quantity = item.Quantity
		existing.UpdatedAt = time.Now()
		if err := s.db.WithContext(ctx).Save(existing).Error; err != nil {
			return err
		}
		*item = *existing
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) UpdateInventory(ctx context.Context, item *models.Inventory) error {
	return s.db.WithContext(ctx).Save(item).Error
}

// ---- Collections ----

func (s *Store) GetAllCollections(ctx context.Context) ([]models.Collection, error) {
	var out []models.Collection
	err := s.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (s *Store) GetCollection(ctx context.Context, id int) (*models.Collection, error) {
	return first[models.Collection](s.db.WithContext(ctx), "id = ?", id)
}

func (s *Store) CreateCollection(ctx context.Context, collection *models.Collection) error {
	return s.db.WithContext(ctx).Create(collection).Error
}

func (s *Store) UpdateCollection(ctx context.Context, collection *models.Collection) error {
	return s.db.WithContext(ctx).Save(collection).Error
}

func (s *Store) DeleteCollection(ctx context.Context, id int) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&models.Collection{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	err := s.db.WithContext(ctx).Where("collection_id = ?", id).Delete(&models.ProductCollection{}).Error
	return true, err
}

func (s *Store) GetProductsByCollection(ctx context.Context, collectionID int) ([]models.Product, error) {
	var out []models.Product
	err := s.db.WithContext(ctx).
		Joins("JOIN product_collections pc ON pc.product_id = products.id").
		Where("pc.collection_id = ?", collectionID).
		Order("products.id").
		Find(&out).Error
	return out, err
}

func (s *Store) GetCollectionsByProduct(ctx context.Context, productID int) ([]models.Collection, error) {
	var out []models.Collection
	err := s.db.WithContext(ctx).
		Joins("JOIN product_collections pc ON pc.collection_id = collections.id").
		Where("pc.product_id = ?", productID).
		Order("collections.id").
		Find(&out).Error
	return out, err
}

func (s *Store) AddProductToCollection(ctx context.Context, productID, collectionID int) (*models.ProductCollection, error) {
	existing, err := first[models.ProductCollection](s.db.WithContext(ctx),
		"product_id = ? AND collection_id = ?", productID, collectionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	pc := models.ProductCollection{ProductID: productID, CollectionID: collectionID}
	if err := s.db.WithContext(ctx).Create(&pc).Error; err != nil {
		return nil, err
	}
	return &pc, nil
}

func (s *Store) RemoveProductFromCollection(ctx context.Context, productID, collectionID int) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("product_id = ? AND collection_id = ?", productID, collectionID).
		Delete(&models.ProductCollection{})
	return res.RowsAffected > 0, res.Error
}

// ---- Filter metadata ----

func (s *Store) GetAllSizes(ctx context.Context) ([]models.SizeOption, error) {
	return models.DefaultSizeOptions(), nil
}

func (s *Store) GetAllRatingOptions(ctx context.Context) ([]models.RatingOption, error) {
	return models.DefaultRatingOptions(), nil
}

// ---- Reviews ----

func (s *Store) GetAllReviews(ctx context.Context) ([]models.Review, error) {
	var out []models.Review
	err := s.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (s *Store) GetReviewsByProduct(ctx context.Context, productID int) ([]models.Review, error) {
	var out []models.Review
	err := s.db.WithContext(ctx).Where("product_id = ?", productID).Order("id").Find(&out).Error
	return out, err
}

func (s *Store) CreateReview(ctx context.Context, review *models.Review) error {
	return s.db.WithContext(ctx).Create(review).Error
}

func (s *Store) DeleteReview(ctx context.Context, id int) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&models.Review{}, id)
	return res.RowsAffected > 0, res.Error
}

// ---- Orders ----

func (s *Store) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	err := s.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (s *Store) GetOrder(ctx context.Context, id int) (*models.Order, error) {
	return first[models.Order](s.db.WithContext(ctx), "id = ?", id)
}

func (s *Store) GetOrdersByUser(ctx context.Context, userID int) ([]models.Order, error) {
	var out []models.Order
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&out).Error
	return out, err
}

func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	return s.db.WithContext(ctx).Create(order).Error
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id int, status string) (*models.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil || order == nil {
		return nil, err
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	if err := s.db.WithContext(ctx).Save(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Store) GetOrderItemsByOrder(ctx context.Context, orderID int) ([]models.OrderItem, error) {
	var out []models.OrderItem
	err := s.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id").Find(&out).Error
	return out, err
}

func (s *Store) GetOrderItem(ctx context.Context, id int) (*models.OrderItem, error) {
	return first[models.OrderItem](s.db.WithContext(ctx), "id = ?", id)
}

func (s *Store) CreateOrderItem(ctx context.Context, item *models.OrderItem) error {
	return s.db.WithContext(ctx).Create(item).Error
}

// ---- Wishlist ----

func (s *Store) GetWishlistByUser(ctx context.Context, userID int) ([]models.Wishlist, error) {
	var out []models.Wishlist
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&out).Error
	return out, err
}

func (s *Store) AddToWishlist(ctx context.Context, userID, productID int) (*models.Wishlist, error) {
	existing, err := first[models.Wishlist](s.db.WithContext(ctx),
		"user_id = ? AND product_id = ?", userID, productID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	w := models.Wishlist{UserID: userID, ProductID: productID, AddedAt: time.Now()}
	if err := s.db.WithContext(ctx).Create(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *Store) RemoveFromWishlist(ctx context.Context, userID, productID int) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.Wishlist{})
	return res.RowsAffected > 0, res.Error
}

// ---- Recently viewed ----

func (s *Store) GetRecentlyViewedByUser(ctx context.Context, userID int) ([]models.RecentlyViewed, error) {
	var out []models.RecentlyViewed
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id DESC").Find(&out).Error
	return out, err
}

func (s *Store) AddToRecentlyViewed(ctx context.Context, userID, productID int) (*models.RecentlyViewed, error) {
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.RecentlyViewed{}).Error
	if err != nil {
		return nil, err
	}
	rv := models.RecentlyViewed{UserID: userID, ProductID: productID, ViewedAt: time.Now()}
	if err := s.db.WithContext(ctx).Create(&rv).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

// ---- Returns ----

func (s *Store) GetAllReturns(ctx context.Context) ([]models.Return, error) {
	var out []models.Return
	err := s.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (s *Store) GetReturn(ctx context.Context, id int) (*models.Return, error) {
	return first[models.Return](s.db.WithContext(ctx), "id = ?", id)
}

func (s *Store) GetReturnsByUser(ctx context.Context, userID int) ([]models.Return, error) {
	var out []models.Return
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&out).Error
	return out, err
}

func (s *Store) CreateReturn(ctx context.Context, ret *models.Return) error {
	if ret.Status == "" {
		ret.Status = models.ReturnStatusPending
	}
	return s.db.WithContext(ctx).Create(ret).Error
}

func (s *Store) UpdateReturn(ctx context.Context, ret *models.Return) error {
	return s.db.WithContext(ctx).Save(ret).Error
}

// ---- User preferences ----

func (s *Store) GetUserPreferences(ctx context.Context, userID int) (*models.UserPreferences, error) {
	return first[models.UserPreferences](s.db.WithContext(ctx), "user_id = ?", userID)
}

func (s *Store) SaveUserPreferences(ctx context.Context, prefs *models.UserPreferences) error {
	existing, err := s.GetUserPreferences(ctx, prefs.UserID)
	if err != nil {
		return err
	}
	if existing != nil {
		prefs.ID = existing.ID
	}
	return s.db.WithContext(ctx).Save(prefs).Error
}
