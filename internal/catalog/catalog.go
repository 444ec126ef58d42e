package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/fjod/maison/internal/domain"
	"golang.org/x/sync/singleflight"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product")
)

// Sort keys accepted by List.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

// CategoryAll selects every product.
const CategoryAll = "all"

// Sizes offered on the product detail page.
var Sizes = []string{"XS", "S", "M", "L", "XL"}

func ValidSize(size string) bool {
	for _, s := range Sizes {
		if s == size {
			return true
		}
	}
	return false
}

var titles = map[string]string{
	domain.CategoryWomen:       "Women's Collection",
	domain.CategoryMen:         "Men's Collection",
	domain.CategoryAccessories: "Accessories",
	domain.CategoryBeauty:      "Beauty & Fragrance",
}

// Title returns the heading shown above a category listing.
func Title(category string) string {
	if t, ok := titles[category]; ok {
		return t
	}
	return "All Products"
}

// Source provides the read-only product list.
type Source interface {
	Products(ctx context.Context) ([]domain.Product, error)
}

// Catalog caches the products of a Source in memory.
type Catalog struct {
	source Source
	sfg    singleflight.Group // coalesces concurrent loads

	mu       sync.RWMutex
	products []domain.Product
	byID     map[string]domain.Product
	loaded   bool
}

func New(source Source) *Catalog {
	return &Catalog{source: source}
}

// Refresh reloads the products from the source.
func (c *Catalog) Refresh(ctx context.Context) error {
	_, err, _ := c.sfg.Do("load", func() (interface{}, error) {
		products, err := c.source.Products(ctx)
		if err != nil {
			return nil, fmt.Errorf("load products: %w", err)
		}

		byID := make(map[string]domain.Product, len(products))
		for _, p := range products {
			if err := Validate(p); err != nil {
				return nil, err
			}
			if _, dup := byID[p.ID]; dup {
				return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidProduct, p.ID)
			}
			byID[p.ID] = p
		}

		c.mu.Lock()
		c.products = products
		c.byID = byID
		c.loaded = true
		c.mu.Unlock()
		return nil, nil
	})
	return err
}

func (c *Catalog) ensureLoaded(ctx context.Context) error {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if loaded {
		return nil
	}
	return c.Refresh(ctx)
}

// List returns the products of category ("" or "all" for every product) ordered by sortBy.
func (c *Catalog) List(ctx context.Context, category, sortBy string) ([]domain.Product, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if category == "" || category == CategoryAll || p.Category == category {
			out = append(out, p)
		}
	}
	c.mu.RUnlock()

	// newest keeps catalog order
	switch sortBy {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.GreaterThan(out[j].Price) })
	}
	return out, nil
}

func (c *Catalog) Get(ctx context.Context, id string) (domain.Product, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return domain.Product{}, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.byID[id]
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return p, nil
}

// Validate checks the shape every catalog product must have.
func Validate(p domain.Product) error {
	if p.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidProduct)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: negative price for %q", ErrInvalidProduct, p.ID)
	}
	if !domain.IsCategory(p.Category) {
		return fmt.Errorf("%w: unknown category %q for %q", ErrInvalidProduct, p.Category, p.ID)
	}
	return nil
}
