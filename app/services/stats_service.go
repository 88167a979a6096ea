package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/vastrakart/go-storefront/app/models"
	"github.com/vastrakart/go-storefront/app/repositories"
	"github.com/vastrakart/go-storefront/app/utils/calc"
	"github.com/vastrakart/go-storefront/app/utils/format"
)

type CategorySales struct {
	Category string `json:"category"`
	Sales    int    `json:"sales"`
}

type MonthlySales struct {
	Month string `json:"month"`
	Sales int    `json:"sales"`
}

type RatingBucket struct {
	Rating int `json:"rating"`
	Count  int `json:"count"`
}

type DashboardStats struct {
	TotalSales          int             `json:"totalSales"`
	TotalSalesFormatted string          `json:"totalSalesFormatted"`
	TotalOrders         int             `json:"totalOrders"`
	TotalProducts       int             `json:"totalProducts"`
	TotalCustomers      int             `json:"totalCustomers"`
	AvgRating           float64         `json:"avgRating"`
	SalesByCategory     []CategorySales `json:"salesByCategory"`
	SalesByMonth        []MonthlySales  `json:"salesByMonth"`
	RatingDistribution  []RatingBucket  `json:"ratingDistribution"`
}

// StatsService aggregates the dashboard numbers from the full entity set on
// every call. No caching; cost grows with orders × items per order.
type StatsService struct {
	store repositories.Datastore
}

func NewStatsService(store repositories.Datastore) *StatsService {
	return &StatsService{store: store}
}

func (s *StatsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	products, err := s.store.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.store.GetAllOrders(ctx)
	if err != nil {
		return nil, err
	}
	reviews, err := s.store.GetAllReviews(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.store.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}

	totalSales := decimal.Zero
	for _, o := range orders {
		totalSales = totalSales.Add(decimal.NewFromInt(int64(o.Total)))
	}

	customers := 0
	for _, u := range users {
		if u.Role == models.RoleCustomer {
			customers++
		}
	}

	salesByCategory, err := s.salesByCategory(ctx, orders)
	if err != nil {
		return nil, err
	}

	distribution := make([]RatingBucket, 5)
	ratingSum := decimal.Zero
	for i := range distribution {
		distribution[i].Rating = i + 1
	}
	for _, r := range reviews {
		if r.Rating >= 1 && r.Rating <= 5 {
			distribution[r.Rating-1].Count++
		}
		ratingSum = ratingSum.Add(decimal.NewFromInt(int64(r.Rating)))
	}
	avgRating := 0.0
	if len(reviews) > 0 {
		avgRating = ratingSum.Div(decimal.NewFromInt(int64(len(reviews)))).InexactFloat64()
	}

	return &DashboardStats{
		TotalSales:          int(totalSales.IntPart()),
		TotalSalesFormatted: format.Rupees(int(totalSales.IntPart())),
		TotalOrders:         len(orders),
		TotalProducts:       len(products),
		TotalCustomers:      customers,
		AvgRating:           avgRating,
		SalesByCategory:     salesByCategory,
		SalesByMonth:        sampleMonthlySales(),
		RatingDistribution:  distribution,
	}, nil
}

// salesByCategory walks every order's items and attributes the captured item
// subtotal to the product's category.
func (s *StatsService) salesByCategory(ctx context.Context, orders []models.Order) ([]CategorySales, error) {
	totals := map[int]decimal.Decimal{}
	var categoryOrder []int

	for _, order := range orders {
		items, err := s.store.GetOrderItemsByOrder(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			product, err := s.store.GetProduct(ctx, item.ProductID)
			if err != nil {
				return nil, err
			}
			if product == nil {
				continue
			}
			if _, seen := totals[product.CategoryID]; !seen {
				categoryOrder = append(categoryOrder, product.CategoryID)
			}
			totals[product.CategoryID] = totals[product.CategoryID].Add(calc.ItemSubtotal(item))
		}
	}

	out := make([]CategorySales, 0, len(categoryOrder))
	for _, categoryID := range categoryOrder {
		name := "unknown"
		if category, err := s.store.GetCategory(ctx, categoryID); err == nil && category != nil {
			name = category.Name
		}
		out = append(out, CategorySales{Category: name, Sales: int(totals[categoryID].IntPart())})
	}
	return out, nil
}

// sampleMonthlySales is placeholder chart data; there is no per-month ledger
// to derive it from yet.
func sampleMonthlySales() []MonthlySales {
	return []MonthlySales{
		{Month: "Jan", Sales: 120000},
		{Month: "Feb", Sales: 150000},
		{Month: "Mar", Sales: 180000},
		{Month: "Apr", Sales: 160000},
		{Month: "May", Sales: 190000},
		{Month: "Jun", Sales: 230000},
		{Month: "Jul", Sales: 210000},
		{Month: "Aug", Sales: 250000},
		{Month: "Sep", Sales: 270000},
		{Month: "Oct", Sales: 290000},
		{Month: "Nov", Sales: 350000},
		{Month: "Dec", Sales: 400000},
	}
}
