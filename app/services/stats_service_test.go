package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vastrakart/go-storefront/app/models"
	"github.com/vastrakart/go-storefront/app/repositories/memory"
)

func TestDashboardStats(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	stats := NewStatsService(store)

	sarees := models.Category{Name: "sarees", Label: "Sarees"}
	require.NoError(t, store.CreateCategory(ctx, &sarees))
	kurtis := models.Category{Name: "kurtis", Label: "Kurtis"}
	require.NoError(t, store.CreateCategory(ctx, &kurtis))

	saree := models.Product{Name: "Saree", Price: 1000, CategoryID: sarees.ID}
	require.NoError(t, store.CreateProduct(ctx, &saree))
	kurti := models.Product{Name: "Kurti", Price: 400, CategoryID: kurtis.ID}
	require.NoError(t, store.CreateProduct(ctx, &kurti))

	admin := models.User{Username: "admin", Password: "x", Role: models.RoleAdmin}
	require.NoError(t, store.CreateUser(ctx, &admin))
	buyer := models.User{Username: "buyer", Password: "x", Email: "b@example.com", Role: models.RoleCustomer}
	require.NoError(t, store.CreateUser(ctx, &buyer))

	order := models.Order{
		UserID: &buyer.ID, Email: "b@example.com", FullName: "B", Address: "a",
		City: "c", State: "s", PostalCode: "1", Phone: "2", Total: 1800,
	}
	require.NoError(t, store.CreateOrder(ctx, &order))
	require.NoError(t, store.CreateOrderItem(ctx, &models.OrderItem{OrderID: order.ID, ProductID: saree.ID, Size: "M", Quantity: 1, Price: 1000}))
	require.NoError(t, store.CreateOrderItem(ctx, &models.OrderItem{OrderID: order.ID, ProductID: kurti.ID, Size: "M", Quantity: 2, Price: 400}))

	require.NoError(t, store.CreateReview(ctx, &models.Review{ProductID: saree.ID, UserID: buyer.ID, Rating: 5}))
	require.NoError(t, store.CreateReview(ctx, &models.Review{ProductID: kurti.ID, UserID: buyer.ID, Rating: 3}))

	got, err := stats.Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1800, got.TotalSales)
	assert.Equal(t, "₹1,800", got.TotalSalesFormatted)
	assert.Equal(t, 1, got.TotalOrders)
	assert.Equal(t, 2, got.TotalProducts)
	assert.Equal(t, 1, got.TotalCustomers, "admins are not customers")
	assert.InDelta(t, 4.0, got.AvgRating, 0.001)

	require.Len(t, got.SalesByCategory, 2)
	assert.Equal(t, CategorySales{Category: "sarees", Sales: 1000}, got.SalesByCategory[0])
	assert.Equal(t, CategorySales{Category: "kurtis", Sales: 800}, got.SalesByCategory[1])

	require.Len(t, got.SalesByMonth, 12)
	assert.Equal(t, "Jan", got.SalesByMonth[0].Month)
	assert.Equal(t, "Dec", got.SalesByMonth[11].Month)

	require.Len(t, got.RatingDistribution, 5)
	assert.Equal(t, 1, got.RatingDistribution[4].Count, "one 5-star review")
	assert.Equal(t, 1, got.RatingDistribution[2].Count, "one 3-star review")
	assert.Zero(t, got.RatingDistribution[0].Count)
}

func TestDashboardStatsEmptyStore(t *testing.T) {
	stats := NewStatsService(memory.NewStore())
	got, err := stats.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Zero(t, got.TotalSales)
	assert.Zero(t, got.TotalOrders)
	assert.Zero(t, got.AvgRating)
	assert.Empty(t, got.SalesByCategory)
	assert.Len(t, got.SalesByMonth, 12)
}
