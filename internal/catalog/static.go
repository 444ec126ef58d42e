package catalog

import (
	"context"

	"github.com/fjod/maison/internal/domain"
	"github.com/shopspring/decimal"
)

// StaticSource serves the built-in mock collection.
type StaticSource struct {
	products []domain.Product
}

func NewStaticSource(products ...domain.Product) *StaticSource {
	if len(products) == 0 {
		products = DefaultProducts()
	}
	return &StaticSource{products: products}
}

func (s *StaticSource) Products(context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

// DefaultProducts is the house collection shown when no external catalog is configured.
func DefaultProducts() []domain.Product {
	return []domain.Product{
		{
			ID:       "1",
			Name:     "Silk Evening Gown",
			Price:    decimal.NewFromInt(2890),
			Image:    "https://images.unsplash.com/photo-1580698864216-8008843ce6b0?fit=max&fm=jpg&q=80&w=1080",
			Category: domain.CategoryWomen,
			IsNew:    true,
		},
		{
			ID:       "2",
			Name:     "Heritage Leather Handbag",
			Price:    decimal.NewFromInt(1450),
			Image:    "https://images.unsplash.com/photo-1575201046471-082b5c1a1e79?fit=max&fm=jpg&q=80&w=1080",
			Category: domain.CategoryAccessories,
		},
		{
			ID:       "3",
			Name:     "Diamond Tennis Bracelet",
			Price:    decimal.NewFromInt(3200),
			Image:    "https://images.unsplash.com/photo-1721206625181-e4b529f5afe2?fit=max&fm=jpg&q=80&w=1080",
			Category: domain.CategoryAccessories,
		},
		{
			ID:       "4",
			Name:     "Signature Eau de Parfum",
			Price:    decimal.NewFromInt(185),
			Image:    "https://images.unsplash.com/photo-1591375275686-e9b036b15f95?fit=max&fm=jpg&q=80&w=1080",
			Category: domain.CategoryBeauty,
		},
	}
}
