package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vastrakart/go-storefront/app/models"
	"github.com/vastrakart/go-storefront/app/repositories"
)

func TestCreateUserAssignsDefaultsAndIDs(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	first := models.User{Username: "asha", Password: "x", Email: "asha@example.com"}
	require.NoError(t, store.CreateUser(ctx, &first))
	second := models.User{Username: "ravi", Password: "x", Email: "ravi@example.com"}
	require.NoError(t, store.CreateUser(ctx, &second))

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, models.RoleCustomer, first.Role)
	assert.Equal(t, models.UserStatusActive, first.Status)
	assert.False(t, first.CreatedAt.IsZero())
}

func TestCreateUserDuplicates(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.CreateUser(ctx, &models.User{Username: "asha", Password: "x", Email: "asha@example.com"}))

	err := store.CreateUser(ctx, &models.User{Username: "ASHA", Password: "x", Email: "other@example.com"})
	assert.ErrorIs(t, err, repositories.ErrDuplicateUsername, "usernames are case-insensitive")

	err = store.CreateUser(ctx, &models.User{Username: "someone", Password: "x", Email: "Asha@Example.com"})
	assert.ErrorIs(t, err, repositories.ErrDuplicateEmail)
}

func TestUpdateUserKeepsOwnUniqueValues(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	user := models.User{Username: "asha", Password: "x", Email: "asha@example.com"}
	require.NoError(t, store.CreateUser(ctx, &user))
	other := models.User{Username: "ravi", Password: "x", Email: "ravi@example.com"}
	require.NoError(t, store.CreateUser(ctx, &other))

	user.FullName = "Asha Verma"
	require.NoError(t, store.UpdateUser(ctx, &user), "re-saving own username/email is fine")

	user.Username = "ravi"
	assert.ErrorIs(t, store.UpdateUser(ctx, &user), repositories.ErrDuplicateUsername)
}

func TestLookupsReturnNilNotError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	user, err := store.GetUser(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, user)

	product, err := store.GetProduct(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, product)

	order, err := store.GetOrder(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, order)
}

func TestDeleteReportsWhetherRemoved(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	product := models.Product{Name: "Saree", Price: 100}
	require.NoError(t, store.CreateProduct(ctx, &product))

	removed, err := store.DeleteProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.DeleteProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestGetAllProductsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	for _, name := range []string{"first", "second", "third"} {
		p := models.Product{Name: name, Price: 1}
		require.NoError(t, store.CreateProduct(ctx, &p))
	}
	products, err := store.GetAllProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "first", products[0].Name)
	assert.Equal(t, "second", products[1].Name)
	assert.Equal(t, "third", products[2].Name)
}

func TestCategoryDeleteRefusedWhileReferenced(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	category := models.Category{Name: "sarees"}
	require.NoError(t, store.CreateCategory(ctx, &category))
	product := models.Product{Name: "Saree", Price: 100, CategoryID: category.ID}
	require.NoError(t, store.CreateProduct(ctx, &product))

	removed, err := store.DeleteCategory(ctx, category.ID)
	assert.ErrorIs(t, err, repositories.ErrCategoryInUse)
	assert.False(t, removed)

	_, err = store.DeleteProduct(ctx, product.ID)
	require.NoError(t, err)
	removed, err = store.DeleteCategory(ctx, category.ID)
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestCreateInventoryFoldsDuplicateSizes(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	first := models.Inventory{ProductID: 1, Size: "M", Quantity: 5}
	require.NoError(t, store.CreateInventory(ctx, &first))
	duplicate := models.Inventory{ProductID: 1, Size: "m", Quantity: 9}
	require.NoError(t, store.CreateInventory(ctx, &duplicate))

	rows, err := store.GetInventoryByProduct(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1, "one row per (product, size)")
	assert.Equal(t, 9, rows[0].Quantity)
	assert.Equal(t, first.ID, duplicate.ID)
}

func TestWishlistIdempotentAdd(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	first, err := store.AddToWishlist(ctx, 1, 10)
	require.NoError(t, err)
	again, err := store.AddToWishlist(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	entries, err := store.GetWishlistByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWishlistRemoveNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	removed, err := store.RemoveFromWishlist(ctx, 1, 10)
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = store.AddToWishlist(ctx, 1, 10)
	require.NoError(t, err)
	removed, err = store.RemoveFromWishlist(ctx, 1, 10)
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestRecentlyViewedMoveToFront(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	_, err := store.AddToRecentlyViewed(ctx, 1, 10)
	require.NoError(t, err)
	_, err = store.AddToRecentlyViewed(ctx, 1, 20)
	require.NoError(t, err)
	_, err = store.AddToRecentlyViewed(ctx, 1, 10)
	require.NoError(t, err)

	entries, err := store.GetRecentlyViewedByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 2, "repeat views do not duplicate")
	assert.Equal(t, 10, entries[0].ProductID, "repeat view moves to the front")
	assert.Equal(t, 20, entries[1].ProductID)
}

func TestOrdersByUserSkipsGuestOrders(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	userID := 7
	mine := models.Order{UserID: &userID, Email: "a@b.c", FullName: "A", Address: "x", City: "y", State: "z", PostalCode: "1", Phone: "2", Total: 100}
	require.NoError(t, store.CreateOrder(ctx, &mine))
	guest := models.Order{Email: "g@b.c", FullName: "G", Address: "x", City: "y", State: "z", PostalCode: "1", Phone: "2", Total: 50}
	require.NoError(t, store.CreateOrder(ctx, &guest))

	orders, err := store.GetOrdersByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, mine.ID, orders[0].ID)
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	order := models.Order{Email: "a@b.c", FullName: "A", Address: "x", City: "y", State: "z", PostalCode: "1", Phone: "2", Total: 100}
	require.NoError(t, store.CreateOrder(ctx, &order))
	assert.Equal(t, models.OrderStatusPending, order.Status)

	updated, err := store.UpdateOrderStatus(ctx, order.ID, models.OrderStatusProcessing)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, models.OrderStatusProcessing, updated.Status)

	missing, err := store.UpdateOrderStatus(ctx, 999, models.OrderStatusShipped)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSaveUserPreferencesUpserts(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	prefs := models.UserPreferences{UserID: 1, FavoriteCategories: []string{"sarees"}}
	require.NoError(t, store.SaveUserPreferences(ctx, &prefs))
	firstID := prefs.ID

	updated := models.UserPreferences{UserID: 1, FavoriteCategories: []string{"lehengas"}}
	require.NoError(t, store.SaveUserPreferences(ctx, &updated))
	assert.Equal(t, firstID, updated.ID, "same user keeps the same row")

	got, err := store.GetUserPreferences(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"lehengas"}, got.FavoriteCategories)
}

func TestCollectionMembership(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	product := models.Product{Name: "Saree", Price: 100}
	require.NoError(t, store.CreateProduct(ctx, &product))
	collection := models.Collection{Name: "Festival Ready", Active: true}
	require.NoError(t, store.CreateCollection(ctx, &collection))

	link, err := store.AddProductToCollection(ctx, product.ID, collection.ID)
	require.NoError(t, err)
	again, err := store.AddProductToCollection(ctx, product.ID, collection.ID)
	require.NoError(t, err)
	assert.Equal(t, link.ID, again.ID, "membership is idempotent")

	products, err := store.GetProductsByCollection(ctx, collection.ID)
	require.NoError(t, err)
	require.Len(t, products, 1)
	collections, err := store.GetCollectionsByProduct(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, collections, 1)

	removed, err := store.RemoveProductFromCollection(ctx, product.ID, collection.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = store.RemoveProductFromCollection(ctx, product.ID, collection.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}
