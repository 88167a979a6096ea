package calc

import (
	"github.com/shopspring/decimal"
	"github.com/vastrakart/go-storefront/app/models"
)

// EffectivePrice is the price a buyer actually pays: the discounted price
// when one is set, the list price otherwise.
func EffectivePrice(p models.Product) int {
	if p.DiscountedPrice != nil {
		return *p.DiscountedPrice
	}
	return p.Price
}

// DiscountPercent returns how far the effective price sits below the list
// price, as a percentage rounded to two places. Zero when no discount is set.
func DiscountPercent(p models.Product) decimal.Decimal {
	if p.DiscountedPrice == nil || p.Price == 0 {
		return decimal.Zero
	}
	saved := decimal.NewFromInt(int64(p.Price - *p.DiscountedPrice))
	return saved.Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(p.Price))).
		Round(2)
}

// ItemSubtotal multiplies captured unit price by quantity.
func ItemSubtotal(item models.OrderItem) decimal.Decimal {
	return decimal.NewFromInt(int64(item.Price)).Mul(decimal.NewFromInt(int64(item.Quantity)))
}
