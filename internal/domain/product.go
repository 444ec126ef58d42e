package domain

import "github.com/shopspring/decimal"

// Category ids used by the storefront for routing and filtering.
const (
	CategoryMen         = "men"
	CategoryWomen       = "women"
	CategoryAccessories = "accessories"
	CategoryBeauty      = "beauty"
)

// Categories lists the closed set of product categories in menu order.
var Categories = []string{CategoryMen, CategoryWomen, CategoryAccessories, CategoryBeauty}

// IsCategory reports whether c is one of the known product categories.
func IsCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Product is a read-only catalog entry.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Category string          `json:"category"`
	IsNew    bool            `json:"is_new"`
}
