package repositories

import (
	"context"
	"errors"

	"github.com/vastrakart/go-storefront/app/models"
)

var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrCategoryInUse     = errors.New("category is still referenced by products")
	ErrBrandInUse        = errors.New("brand is still referenced by products")
)

// Datastore is the storage boundary for every entity the storefront owns.
// Lookups return (nil, nil) when the record does not exist; deletes report
// whether a record was removed.
type Datastore interface {
	// Users
	GetUser(ctx context.Context, id int) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int) (bool, error)

	// Categories
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id int) (*models.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id int) (bool, error)

	// Brands
	GetAllBrands(ctx context.Context) ([]models.Brand, error)
	GetBrand(ctx context.Context, id int) (*models.Brand, error)
	GetBrandByName(ctx context.Context, name string) (*models.Brand, error)
	CreateBrand(ctx context.Context, brand *models.Brand) error
	DeleteBrand(ctx context.Context, id int) (bool, error)

	// Products
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id int) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id int) (bool, error)

	// Inventory
	GetInventoryByProduct(ctx context.Context, productID int) ([]models.Inventory, error)
	GetInventoryItem(ctx context.Context, id int) (*models.Inventory, error)
	CreateInventory(ctx context.Context, item *models.Inventory) error
	UpdateInventory(ctx context.Context, item *models.Inventory) error

	// Collections
	GetAllCollections(ctx context.Context) ([]models.Collection, error)
	GetCollection(ctx context.Context, id int) (*models.Collection, error)
	CreateCollection(ctx context.Context, collection *models.Collection) error
	UpdateCollection(ctx context.Context, collection *models.Collection) error
	DeleteCollection(ctx context.Context, id int) (bool, error)
	GetProductsByCollection(ctx context.Context, collectionID int) ([]models.Product, error)
	GetCollectionsByProduct(ctx context.Context, productID int) ([]models.Collection, error)
	AddProductToCollection(ctx context.Context, productID, collectionID int) (*models.ProductCollection, error)
	RemoveProductFromCollection(ctx context.Context, productID, collectionID int) (bool, error)

	// Filter metadata
	GetAllSizes(ctx context.Context) ([]models.SizeOption, error)
	GetAllRatingOptions(ctx context.Context) ([]models.RatingOption, error)

	// Reviews
	GetAllReviews(ctx context.Context) ([]models.Review, error)
	GetReviewsByProduct(ctx context.Context, productID int) ([]models.Review, error)
	CreateReview(ctx context.Context, review *models.Review) error
	DeleteReview(ctx context.Context, id int) (bool, error)

	// Orders
	GetAllOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id int) (*models.Order, error)
	GetOrdersByUser(ctx context.Context, userID int) ([]models.Order, error)
	CreateOrder(ctx context.Context, order *models.Order) error
	UpdateOrderStatus(ctx context.Context, id int, status string) (*models.Order, error)
	GetOrderItemsByOrder(ctx context.Context, orderID int) ([]models.OrderItem, error)
	GetOrderItem(ctx context.Context, id int) (*models.OrderItem, error)
	CreateOrderItem(ctx context.Context, item *models.OrderItem) error

	// Wishlist
	GetWishlistByUser(ctx context.Context, userID int) ([]models.Wishlist, error)
	AddToWishlist(ctx context.Context, userID, productID int) (*models.Wishlist, error)
	RemoveFromWishlist(ctx context.Context, userID, productID int) (bool, error)

	// Recently viewed
	GetRecentlyViewedByUser(ctx context.Context, userID int) ([]models.RecentlyViewed, error)
	AddToRecentlyViewed(ctx context.Context, userID, productID int) (*models.RecentlyViewed, error)

	// Returns
	GetAllReturns(ctx context.Context) ([]models.Return, error)
	GetReturn(ctx context.Context, id int) (*models.Return, error)
	GetReturnsByUser(ctx context.Context, userID int) ([]models.Return, error)
	CreateReturn(ctx context.Context, ret *models.Return) error
	UpdateReturn(ctx context.Context, ret *models.Return) error

	// User preferences
	GetUserPreferences(ctx context.Context, userID int) (*models.UserPreferences, error)
	SaveUserPreferences(ctx context.Context, prefs *models.UserPreferences) error
}
