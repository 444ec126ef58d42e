package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fjod/maison/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	calls    atomic.Int32
	delay    time.Duration
	err      error
	products []domain.Product
}

func (s *countingSource) Products(context.Context) ([]domain.Product, error) {
	s.calls.Add(1)
	time.Sleep(s.delay)
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

func names(ps []domain.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}

func TestList_AllProducts(t *testing.T) {
	c := New(NewStaticSource())

	for _, category := range []string{"", CategoryAll} {
		products, err := c.List(context.Background(), category, SortNewest)
		require.NoError(t, err)
		assert.Len(t, products, 4)
		assert.Equal(t, "Silk Evening Gown", products[0].Name)
	}
}

func TestList_FilterByCategory(t *testing.T) {
	c := New(NewStaticSource())

	products, err := c.List(context.Background(), domain.CategoryAccessories, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Heritage Leather Handbag", "Diamond Tennis Bracelet"}, names(products))

	products, err = c.List(context.Background(), domain.CategoryMen, "")
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestList_Sorting(t *testing.T) {
	c := New(NewStaticSource())
	ctx := context.Background()

	asc, err := c.List(ctx, "", SortPriceAsc)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Signature Eau de Parfum", "Heritage Leather Handbag", "Silk Evening Gown", "Diamond Tennis Bracelet",
	}, names(asc))

	desc, err := c.List(ctx, "", SortPriceDesc)
	require.NoError(t, err)
	assert.Equal(t, "Diamond Tennis Bracelet", desc[0].Name)
	assert.Equal(t, "Signature Eau de Parfum", desc[3].Name)
}

func TestList_NewestKeepsCatalogOrder(t *testing.T) {
	src := NewStaticSource(
		domain.Product{ID: "a", Name: "A", Category: domain.CategoryMen, Price: decimal.NewFromInt(1)},
		domain.Product{ID: "b", Name: "B", Category: domain.CategoryMen, Price: decimal.NewFromInt(1), IsNew: true},
		domain.Product{ID: "c", Name: "C", Category: domain.CategoryMen, Price: decimal.NewFromInt(1)},
	)
	products, err := New(src).List(context.Background(), domain.CategoryMen, SortNewest)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, names(products))

	defaultSort, err := New(src).List(context.Background(), domain.CategoryMen, "")
	require.NoError(t, err)
	assert.Equal(t, names(products), names(defaultSort))
}

func TestGet(t *testing.T) {
	c := New(NewStaticSource())

	p, err := c.Get(context.Background(), "4")
	require.NoError(t, err)
	assert.Equal(t, "Signature Eau de Parfum", p.Name)
	assert.Equal(t, "185", p.Price.String())

	_, err = c.Get(context.Background(), "99")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestLoad_CachedAfterFirstUse(t *testing.T) {
	src := &countingSource{products: DefaultProducts()}
	c := New(src)

	_, err := c.List(context.Background(), "", "")
	require.NoError(t, err)
	_, err = c.Get(context.Background(), "1")
	require.NoError(t, err)

	assert.Equal(t, int32(1), src.calls.Load())

	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestLoad_ConcurrentCallersShareOneLoad(t *testing.T) {
	src := &countingSource{products: DefaultProducts(), delay: 50 * time.Millisecond}
	c := New(src)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Get(context.Background(), "2")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), src.calls.Load())
}

func TestLoad_SourceError(t *testing.T) {
	c := New(&countingSource{err: errors.New("connection refused")})

	_, err := c.List(context.Background(), "", "")
	require.ErrorContains(t, err, "connection refused")
}

func TestLoad_RejectsInvalidProducts(t *testing.T) {
	tests := []struct {
		name    string
		product domain.Product
	}{
		{"empty id", domain.Product{Category: domain.CategoryMen}},
		{"negative price", domain.Product{ID: "1", Category: domain.CategoryMen, Price: decimal.NewFromInt(-1)}},
		{"unknown category", domain.Product{ID: "1", Category: "shoes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(NewStaticSource(tt.product))
			_, err := c.List(context.Background(), "", "")
			assert.ErrorIs(t, err, ErrInvalidProduct)
		})
	}
}

func TestLoad_RejectsDuplicateIDs(t *testing.T) {
	p := domain.Product{ID: "1", Category: domain.CategoryMen}
	c := New(NewStaticSource(p, p))
	_, err := c.Get(context.Background(), "1")
	assert.ErrorIs(t, err, ErrInvalidProduct)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Women's Collection", Title("women"))
	assert.Equal(t, "Men's Collection", Title("men"))
	assert.Equal(t, "Accessories", Title("accessories"))
	assert.Equal(t, "Beauty & Fragrance", Title("beauty"))
	assert.Equal(t, "All Products", Title("all"))
	assert.Equal(t, "All Products", Title(""))
}

func TestValidSize(t *testing.T) {
	for _, s := range []string{"XS", "S", "M", "L", "XL"} {
		assert.True(t, ValidSize(s), s)
	}
	assert.False(t, ValidSize("XXL"))
	assert.False(t, ValidSize("m"))
	assert.False(t, ValidSize(""))
}
