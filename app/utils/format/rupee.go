package format

import "github.com/leekchan/accounting"

var rupee = accounting.Accounting{Symbol: "₹", Precision: 0, Thousand: ","}

// Rupees renders a whole-rupee amount for display, e.g. 12500 → "₹12,500".
func Rupees(amount int) string {
	return rupee.FormatMoney(amount)
}
