package navigation

import (
	"testing"

	"github.com/fjod/maison/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		page       string
		kind       ViewKind
		category   string
		showFooter bool
	}{
		{"home", ViewHero, "", true},
		{"journal", ViewJournal, "", false},
		{"product", ViewProductDetail, "", false},
		{"men", ViewCategory, "men", true},
		{"women", ViewCategory, "women", true},
		{"accessories", ViewCategory, "accessories", true},
		{"beauty", ViewCategory, "beauty", true},
		{"unknown", ViewHero, "", false},
		{"", ViewHero, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.page, func(t *testing.T) {
			v := Resolve(tt.page, nil)
			assert.Equal(t, tt.page, v.Page)
			assert.Equal(t, tt.kind, v.Kind)
			assert.Equal(t, tt.category, v.Category)
			assert.Equal(t, tt.showFooter, v.ShowFooter)
		})
	}
}

func TestNavigator_StartsHome(t *testing.T) {
	assert.Equal(t, ViewHero, New().View().Kind)
}

func TestNavigator_ProductFlow(t *testing.T) {
	n := New()
	n.SelectCategory("women")

	gown := domain.Product{ID: "1", Name: "Silk Evening Gown", Price: decimal.NewFromInt(2890), Category: "women"}
	v := n.SelectProduct(gown)
	assert.Equal(t, ViewProductDetail, v.Kind)
	require.NotNil(t, v.Product)
	assert.Equal(t, "1", v.Product.ID)

	v = n.Back()
	assert.Equal(t, "women", v.Page)
	assert.Equal(t, ViewCategory, v.Kind)
	assert.Nil(t, v.Product)
}

func TestNavigator_SelectCategoryClearsSelection(t *testing.T) {
	n := New()
	n.SelectProduct(domain.Product{ID: "2"})
	v := n.SelectCategory("beauty")
	assert.Nil(t, v.Product)
	assert.Nil(t, n.View().Product)
}

func TestNavigator_BackFromJournal(t *testing.T) {
	n := New()
	n.SelectCategory("journal")
	assert.Equal(t, "home", n.Back().Page)
	// back on a page without a parent stays put
	assert.Equal(t, "home", n.Back().Page)
}

func TestChromeFor(t *testing.T) {
	empty := ChromeFor(domain.Snapshot{})
	assert.Equal(t, 0, empty.BadgeCount)
	assert.False(t, empty.ShowFloatingCart)

	c := ChromeFor(domain.Snapshot{
		Items:     []domain.LineItem{{Product: domain.Product{ID: "1"}, Quantity: 3}},
		ItemCount: 3,
	})
	assert.Equal(t, 3, c.BadgeCount)
	assert.True(t, c.ShowFloatingCart)
}
