package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/fjod/maison/internal/domain"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productsCollection = "products"

type productDocument struct {
	ID       string  `bson:"_id"`
	Name     string  `bson:"name"`
	Price    float64 `bson:"price"`
	Image    string  `bson:"image"`
	Category string  `bson:"category"`
	IsNew    bool    `bson:"is_new"`
	Position int     `bson:"position"`
}

func (d productDocument) toDomain() domain.Product {
	return domain.Product{
		ID:       d.ID,
		Name:     d.Name,
		Price:    decimal.NewFromFloat(d.Price),
		Image:    d.Image,
		Category: d.Category,
		IsNew:    d.IsNew,
	}
}

// MongoSource reads the catalog from the products collection, ordered by position.
type MongoSource struct {
	collection *mongo.Collection
}

func NewMongoSource(db *mongo.Database) *MongoSource {
	return &MongoSource{collection: db.Collection(productsCollection)}
}

func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(20)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

func (m *MongoSource) Products(ctx context.Context) ([]domain.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := m.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	products := make([]domain.Product, 0, len(docs))
	for _, d := range docs {
		p := d.toDomain()
		if err := Validate(p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// Seed replaces the collection content with products, keeping their order.
func (m *MongoSource) Seed(ctx context.Context, products []domain.Product) error {
	if _, err := m.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear products: %w", err)
	}
	if len(products) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(products))
	for i, p := range products {
		price, _ := p.Price.Float64()
		docs = append(docs, productDocument{
			ID:       p.ID,
			Name:     p.Name,
			Price:    price,
			Image:    p.Image,
			Category: p.Category,
			IsNew:    p.IsNew,
			Position: i,
		})
	}

	if _, err := m.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}
	return nil
}

func (m *MongoSource) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "position", Value: 1}}},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
