package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vastrakart/go-storefront/app/models"
	"github.com/vastrakart/go-storefront/app/repositories"
)

// Store keeps every entity in process memory, one map per type keyed by an
// auto-incrementing id. All access goes through a single RWMutex: unlike the
// event-loop runtime this design came from, Go handles requests concurrently.
type Store struct {
	mu sync.RWMutex

	users              map[int]models.User
	categories         map[int]models.Category
	brands             map[int]models.Brand
	products           map[int]models.Product
	inventory          map[int]models.Inventory
	reviews            map[int]models.Review
	orders             map[int]models.Order
	orderItems         map[int]models.OrderItem
	wishlists          map[int]models.Wishlist
	recentlyViewed     map[int]models.RecentlyViewed
	returns            map[int]models.Return
	collections        map[int]models.Collection
	productCollections map[int]models.ProductCollection
	preferences        map[int]models.UserPreferences

	nextUserID              int
	nextCategoryID          int
	nextBrandID             int
	nextProductID           int
	nextInventoryID         int
	nextReviewID            int
	nextOrderID             int
	nextOrderItemID         int
	nextWishlistID          int
	nextRecentlyViewedID    int
	nextReturnID            int
	nextCollectionID        int
	nextProductCollectionID int
	nextPreferencesID       int

	sizeOptions   []models.SizeOption
	ratingOptions []models.RatingOption
}

var _ repositories.Datastore = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		users:              map[int]models.User{},
		categories:         map[int]models.Category{},
		brands:             map[int]models.Brand{},
		products:           map[int]models.Product{},
		inventory:          map[int]models.Inventory{},
		reviews:            map[int]models.Review{},
		orders:             map[int]models.Order{},
		orderItems:         map[int]models.OrderItem{},
		wishlists:          map[int]models.Wishlist{},
		recentlyViewed:     map[int]models.RecentlyViewed{},
		returns:            map[int]models.Return{},
		collections:        map[int]models.Collection{},
		productCollections: map[int]models.ProductCollection{},
		preferences:        map[int]models.UserPreferences{},

		nextUserID:              1,
		nextCategoryID:          1,
		nextBrandID:             1,
		nextProductID:           1,
		nextInventoryID:         1,
		nextReviewID:            1,
		nextOrderID:             1,
		nextOrderItemID:         1,
		nextWishlistID:          1,
		nextRecentlyViewedID:    1,
		nextReturnID:            1,
		nextCollectionID:        1,
		nextProductCollectionID: 1,
		nextPreferencesID:       1,

		sizeOptions:   models.DefaultSizeOptions(),
		ratingOptions: models.DefaultRatingOptions(),
	}
}

// sortedIDs returns map keys ascending, which matches insertion order because
// ids are assigned monotonically.
func sortedIDs[T any](m map[int]T) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// ---- Users ----

func (s *Store) GetUser(ctx context.Context, id int) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findUserByUsername(username), nil
}

func (s *Store) findUserByUsername(username string) *models.User {
	for _, id := range sortedIDs(s.users) {
		u := s.users[id]
		if strings.EqualFold(u.Username, username) {
			return &u
		}
	}
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findUserByEmail(email), nil
}

func (s *Store) findUserByEmail(email string) *models.User {
	if email == "" {
		return nil
	}
	for _, id := range sortedIDs(s.users) {
		u := s.users[id]
		if strings.EqualFold(u.Email, email) {
			return &u
		}
	}
	return nil
}

func (s *Store) GetAllUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, 0, len(s.users))
	for _, id := range sortedIDs(s.users) {
		users = append(users, s.users[id])
	}
	return users, nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findUserByUsername(user.Username) != nil {
		return repositories.ErrDuplicateUsername
	}
	if existing := s.findUserByEmail(user.Email); existing != nil {
		return repositories.ErrDuplicateEmail
	}
	now := time.Now()
	user.ID = s.nextUserID
	s.nextUserID++
	if user.Role == "" {
		user.Role = models.RoleCustomer
	}
	if user.Status == "" {
		user.Status = models.UserStatusActive
	}
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = *user
	return nil
}

func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing := s.findUserByUsername(user.Username); existing != nil && existing.ID != user.ID {
		return repositories.ErrDuplicateUsername
	}
	if existing := s.findUserByEmail(user.Email); existing != nil && existing.ID != user.ID {
		return repositories.ErrDuplicateEmail
	}
	user.UpdatedAt = time.Now()
	s.users[user.ID] = *user
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return false, nil
	}
	delete(s.users, id)
	return true, nil
}

// ---- Categories ----

func (s *Store) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Category, 0, len(s.categories))
	for _, id := range sortedIDs(s.categories) {
		out = append(out, s.categories[id])
	}
	return out, nil
}

func (s *Store) GetCategory(ctx context.Context, id int) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.categories[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (s *Store) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range sortedIDs(s.categories) {
		c := s.categories[id]
		if strings.EqualFold(c.Name, name) {
			return &c, nil
		}
	}
	return nil, nil
}

func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	category.ID = s.nextCategoryID
	s.nextCategoryID++
	category.CreatedAt = now
	category.UpdatedAt = now
	s.categories[category.ID] = *category
	return nil
}

func (s *Store) DeleteCategory(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return false, nil
	}
	for _, p := range s.products {
		if p.CategoryID == id {
			return false, repositories.ErrCategoryInUse
		}
	}
	delete(s.categories, id)
	return true, nil
}

// ---- Brands ----

func (s *Store) GetAllBrands(ctx context.Context) ([]models.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Brand, 0, len(s.brands))
	for _, id := range sortedIDs(s.brands) {
		out = append(out, s.brands[id])
	}
	return out, nil
}

func (s *Store) GetBrand(ctx context.Context, id int) (*models.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if b, ok := s.brands[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (s *Store) GetBrandByName(ctx context.Context, name string) (*models.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range sortedIDs(s.brands) {
		b := s.brands[id]
		if strings.EqualFold(b.Name, name) {
			return &b, nil
		}
	}
	return nil, nil
}

func (s *Store) CreateBrand(ctx context.Context, brand *models.Brand) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	brand.ID = s.nextBrandID
	s.nextBrandID++
	brand.CreatedAt = now
	brand.UpdatedAt = now
	s.brands[brand.ID] = *brand
	return nil
}

func (s *Store) DeleteBrand(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.brands[id]; !ok {
		return false, nil
	}
	for _, p := range s.products {
		if p.BrandID == id {
			return false, repositories.ErrBrandInUse
		}
	}
	delete(s.brands, id)
	return true, nil
}

// ---- Products ----

func (s *Store) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, 0, len(s.products))
	for _, id := range sortedIDs(s.products) {
		out = append(out, s.products[id])
	}
	return out, nil
}

func (s *Store) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	product.ID = s.nextProductID
	s.nextProductID++
	product.CreatedAt = now
	product.UpdatedAt = now
	s.products[product.ID] = *product
	return nil
}

func (s *Store) UpdateProduct(ctx context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	product.UpdatedAt = time.Now()
	s.products[product.ID] = *product
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return false, nil
	}
	delete(s.products, id)
	return true, nil
}

// ---- Inventory ----

func (s *Store) GetInventoryByProduct(ctx context.Context, productID int) ([]models.Inventory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Inventory
	for _, id := range sortedIDs(s.inventory) {
		item := s.inventory[id]
		if item.ProductID == productID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *Store) GetInventoryItem(ctx context.Context, id int) (*models.Inventory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if item, ok := s.inventory[id]; ok {
		return &item, nil
	}
	return nil, nil
}

// CreateInventory keeps one row per (product, size): a duplicate create folds
// into the existing row instead of inserting a second one.
func (s *Store) CreateInventory(ctx context.Context, item *models.Inventory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range sortedIDs(s.inventory) {
		existing := s.inventory[id]
		if existing.ProductID == item.ProductID && strings.EqualFold(existing.Size, item.Size) {
			existing.Quantity = item.Quantity
			existing.UpdatedAt = time.Now()
			s.inventory[id] = existing
			*item = existing
			return nil
		}
	}
	item.ID = s.nextInventoryID
	s.nextInventoryID++
	item.UpdatedAt = time.Now()
	s.inventory[item.ID] = *item
	return nil
}

func (s *Store) UpdateInventory(ctx context.Context, item *models.Inventory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item.UpdatedAt = time.Now()
	s.inventory[item.ID] = *item
	return nil
}

// ---- Collections ----

func (s *Store) GetAllCollections(ctx context.Context) ([]models.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Collection, 0, len(s.collections))
	for _, id := range sortedIDs(s.collections) {
		out = append(out, s.collections[id])
	}
	return out, nil
}

func (s *Store) GetCollection(ctx context.Context, id int) (*models.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.collections[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (s *Store) CreateCollection(ctx context.Context, collection *models.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	collection.ID = s.nextCollectionID
	s.nextCollectionID++
	collection.CreatedAt = now
	collection.UpdatedAt = now
	s.collections[collection.ID] = *collection
	return nil
}

func (s *Store) UpdateCollection(ctx context.Context, collection *models.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	collection.UpdatedAt = time.Now()
	s.collections[collection.ID] = *collection
	return nil
}

func (s *Store) DeleteCollection(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[id]; !ok {
		return false, nil
	}
	delete(s.collections, id)
	for _, pcID := range sortedIDs(s.productCollections) {
		if s.productCollections[pcID].CollectionID == id {
			delete(s.productCollections, pcID)
		}
	}
	return true, nil
}

func (s *Store) GetProductsByCollection(ctx context.Context, collectionID int) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Product
	for _, id := range sortedIDs(s.productCollections) {
		pc := s.productCollections[id]
		if pc.CollectionID != collectionID {
			continue
		}
		if p, ok := s.products[pc.ProductID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) GetCollectionsByProduct(ctx context.Context, productID int) ([]models.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Collection
	for _, id := range sortedIDs(s.productCollections) {
		pc := s.productCollections[id]
		if pc.ProductID != productID {
			continue
		}
		if c, ok := s.collections[pc.CollectionID]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Store) AddProductToCollection(ctx context.Context, productID, collectionID int) (*models.ProductCollection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range sortedIDs(s.productCollections) {
		pc := s.productCollections[id]
		if pc.ProductID == productID && pc.CollectionID == collectionID {
			return &pc, nil
		}
	}
	pc := models.ProductCollection{
		ID:           s.nextProductCollectionID,
		ProductID:    productID,
		CollectionID: collectionID,
		CreatedAt:    time.Now(),
	}
	s.nextProductCollectionID++
	s.productCollections[pc.ID] = pc
	return &pc, nil
}

func (s *Store) RemoveProductFromCollection(ctx context.Context, productID, collectionID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range sortedIDs(s.productCollections) {
		pc := s.productCollections[id]
		if pc.ProductID == productID && pc.CollectionID == collectionID {
			delete(s.productCollections, id)
			return true, nil
		}
	}
	return false, nil
}

// ---- Filter metadata ----

func (s *Store) GetAllSizes(ctx context.Context) ([]models.SizeOption, error) {
	return s.sizeOptions, nil
}

func (s *Store) GetAllRatingOptions(ctx context.Context) ([]models.RatingOption, error) {
	return s.ratingOptions, nil
}

// ---- Reviews ----

func (s *Store) GetAllReviews(ctx context.Context) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Review, 0, len(s.reviews))
	for _, id := range sortedIDs(s.reviews) {
		out = append(out, s.reviews[id])
	}
	return out, nil
}

func (s *Store) GetReviewsByProduct(ctx context.Context, productID int) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Review
	for _, id := range sortedIDs(s.reviews) {
		r := s.reviews[id]
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) CreateReview(ctx context.Context, review *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	review.ID = s.nextReviewID
	s.nextReviewID++
	review.CreatedAt = time.Now()
	s.reviews[review.ID] = *review
	return nil
}

func (s *Store) DeleteReview(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reviews[id]; !ok {
		return false, nil
	}
	delete(s.reviews, id)
	return true, nil
}

// ---- Orders ----

func (s *Store) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Order, 0, len(s.orders))
	for _, id := range sortedIDs(s.orders) {
		out = append(out, s.orders[id])
	}
	return out, nil
}

func (s *Store) GetOrder(ctx context.Context, id int) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if o, ok := s.orders[id]; ok {
		return &o, nil
	}
	return nil, nil
}

func (s *Store) GetOrdersByUser(ctx context.Context, userID int) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Order
	for _, id := range sortedIDs(s.orders) {
		o := s.orders[id]
		if o.UserID != nil && *o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	order.ID = s.nextOrderID
	s.nextOrderID++
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	order.CreatedAt = now
	order.UpdatedAt = now
	s.orders[order.ID] = *order
	return nil
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id int, status string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	s.orders[id] = o
	return &o, nil
}

func (s *Store) GetOrderItemsByOrder(ctx context.Context, orderID int) ([]models.OrderItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.OrderItem
	for _, id := range sortedIDs(s.orderItems) {
		item := s.orderItems[id]
		if item.OrderID == orderID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *Store) GetOrderItem(ctx context.Context, id int) (*models.OrderItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if item, ok := s.orderItems[id]; ok {
		return &item, nil
	}
	return nil, nil
}

func (s *Store) CreateOrderItem(ctx context.Context, item *models.OrderItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item.ID = s.nextOrderItemID
	s.nextOrderItemID++
	s.orderItems[item.ID] = *item
	return nil
}

// ---- Wishlist ----

func (s *Store) GetWishlistByUser(ctx context.Context, userID int) ([]models.Wishlist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Wishlist
	for _, id := range sortedIDs(s.wishlists) {
		w := s.wishlists[id]
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

// AddToWishlist is idempotent: an existing pair is returned unchanged.
func (s *Store) AddToWishlist(ctx context.Context, userID, productID int) (*models.Wishlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range sortedIDs(s.wishlists) {
		w := s.wishlists[id]
		if w.UserID == userID && w.ProductID == productID {
			return &w, nil
		}
	}
	w := models.Wishlist{
		ID:        s.nextWishlistID,
		UserID:    userID,
		ProductID: productID,
		AddedAt:   time.Now(),
	}
	s.nextWishlistID++
	s.wishlists[w.ID] = w
	return &w, nil
}

func (s *Store) RemoveFromWishlist(ctx context.Context, userID, productID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range sortedIDs(s.wishlists) {
		w := s.wishlists[id]
		if w.UserID == userID && w.ProductID == productID {
			delete(s.wishlists, id)
			return true, nil
		}
	}
	return false, nil
}

// ---- Recently viewed ----

func (s *Store) GetRecentlyViewedByUser(ctx context.Context, userID int) ([]models.RecentlyViewed, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.RecentlyViewed
	for _, id := range sortedIDs(s.recentlyViewed) {
		rv := s.recentlyViewed[id]
		if rv.UserID == userID {
			out = append(out, rv)
		}
	}
	// Most recent first.
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// AddToRecentlyViewed deduplicates by deleting any prior entry for the same
// pair before inserting, so a repeat view moves the product to the front.
func (s *Store) AddToRecentlyViewed(ctx context.Context, userID, productID int) (*models.RecentlyViewed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range sortedIDs(s.recentlyViewed) {
		rv := s.recentlyViewed[id]
		if rv.UserID == userID && rv.ProductID == productID {
			delete(s.recentlyViewed, id)
			break
		}
	}
	rv := models.RecentlyViewed{
		ID:        s.nextRecentlyViewedID,
		UserID:    userID,
		ProductID: productID,
		ViewedAt:  time.Now(),
	}
	s.nextRecentlyViewedID++
	s.recentlyViewed[rv.ID] = rv
	return &rv, nil
}

// ---- Returns ----

func (s *Store) GetAllReturns(ctx context.Context) ([]models.Return, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Return, 0, len(s.returns))
	for _, id := range sortedIDs(s.returns) {
		out = append(out, s.returns[id])
	}
	return out, nil
}

func (s *Store) GetReturn(ctx context.Context, id int) (*models.Return, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.returns[id]; ok {
		return &r, nil
	}
	return nil, nil
}

func (s *Store) GetReturnsByUser(ctx context.Context, userID int) ([]models.Return, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Return
	for _, id := range sortedIDs(s.returns) {
		r := s.returns[id]
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) CreateReturn(ctx context.Context, ret *models.Return) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	ret.ID = s.nextReturnID
	s.nextReturnID++
	if ret.Status == "" {
		ret.Status = models.ReturnStatusPending
	}
	ret.CreatedAt = now
	ret.UpdatedAt = now
	s.returns[ret.ID] = *ret
	return nil
}

func (s *Store) UpdateReturn(ctx context.Context, ret *models.Return) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ret.UpdatedAt = time.Now()
	s.returns[ret.ID] = *ret
	return nil
}

// ---- User preferences ----

func (s *Store) GetUserPreferences(ctx context.Context, userID int) (*models.UserPreferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range sortedIDs(s.preferences) {
		p := s.preferences[id]
		if p.UserID == userID {
			return &p, nil
		}
	}
	return nil, nil
}

func (s *Store) SaveUserPreferences(ctx context.Context, prefs *models.UserPreferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range sortedIDs(s.preferences) {
		p := s.preferences[id]
		if p.UserID == prefs.UserID {
			prefs.ID = p.ID
			prefs.UpdatedAt = time.Now()
			s.preferences[prefs.ID] = *prefs
			return nil
		}
	}
	prefs.ID = s.nextPreferencesID
	s.nextPreferencesID++
	prefs.UpdatedAt = time.Now()
	s.preferences[prefs.ID] = *prefs
	return nil
}
