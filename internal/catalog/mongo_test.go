package catalog

import (
	"context"
	"testing"

	"github.com/fjod/maison/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

func setupTestDB(t *testing.T) (*MongoSource, func()) {
	if testing.Short() {
		t.Skip("skipping MongoDB container test in short mode")
	}
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	source := NewMongoSource(db)
	require.NoError(t, source.CreateIndexes(ctx))

	cleanup := func() {
		_ = db.Client().Disconnect(ctx)
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return source, cleanup
}

func TestMongoSource_SeedAndRead(t *testing.T) {
	source, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, source.Seed(ctx, DefaultProducts()))

	products, err := source.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 4)
	assert.Equal(t, "1", products[0].ID)
	assert.Equal(t, "Silk Evening Gown", products[0].Name)
	assert.True(t, products[0].IsNew)
	assert.True(t, decimal.NewFromInt(2890).Equal(products[0].Price))
	assert.Equal(t, "4", products[3].ID)
}

func TestMongoSource_BacksCatalog(t *testing.T) {
	source, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, source.Seed(ctx, DefaultProducts()))
	c := New(source)

	p, err := c.Get(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "Diamond Tennis Bracelet", p.Name)

	// a product added later becomes visible after Refresh
	extra := domain.Product{ID: "5", Name: "Cashmere Overcoat", Price: decimal.NewFromInt(2100), Category: domain.CategoryMen}
	require.NoError(t, source.Seed(ctx, append(DefaultProducts(), extra)))

	_, err = c.Get(ctx, "5")
	assert.ErrorIs(t, err, ErrProductNotFound)

	require.NoError(t, c.Refresh(ctx))
	men, err := c.List(ctx, domain.CategoryMen, "")
	require.NoError(t, err)
	require.Len(t, men, 1)
	assert.Equal(t, "Cashmere Overcoat", men[0].Name)
}

func TestMongoSource_InvalidDocument(t *testing.T) {
	source, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	_, err := source.collection.InsertOne(ctx, productDocument{ID: "x", Name: "Bad", Price: 10, Category: "shoes"})
	require.NoError(t, err)

	_, err = source.Products(ctx)
	assert.ErrorIs(t, err, ErrInvalidProduct)
}

func TestMongoSource_Empty(t *testing.T) {
	source, cleanup := setupTestDB(t)
	defer cleanup()

	products, err := source.Products(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}
