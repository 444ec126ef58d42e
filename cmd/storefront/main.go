package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/fjod/maison/internal/cart"
	"github.com/fjod/maison/internal/catalog"
	"github.com/fjod/maison/internal/config"
	h "github.com/fjod/maison/internal/http"
	"github.com/fjod/maison/internal/logger"
	"github.com/fjod/maison/internal/notify"
	"github.com/fjod/maison/internal/pricing"
	"github.com/fjod/maison/internal/session"
	"github.com/fjod/maison/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	ctx := context.Background()

	tp := telemetry.Setup()
	defer tp.Shutdown(context.Background())

	// Catalog
	source, mongoDB := catalogSource(ctx, cfg, log)
	if mongoDB != nil {
		defer mongoDB.Client().Disconnect(context.Background())
	}
	products := catalog.New(source)
	if err := products.Refresh(ctx); err != nil {
		log.Fatal("failed to load catalog", zap.Error(err))
	}

	// Cart event notifiers
	notifiers := notify.Multi{notify.NewLogNotifier(log.Named("events"))}

	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("redis connection failed", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		log.Info("redis ping succeeded", zap.String("channel", cfg.RedisChannel))

		notifiers = append(notifiers, notify.NewBreaker(
			notify.NewRedisNotifier(redisClient, cfg.RedisChannel),
			notify.BreakerSettings{Name: "redis-events"},
		))
	}

	if len(cfg.KafkaBrokers) > 0 {
		notifiers = append(notifiers, notify.NewBreaker(
			notify.NewKafkaNotifier(cfg.KafkaTopic, cfg.KafkaBrokers...),
			notify.BreakerSettings{Name: "kafka-orders"},
		))
		log.Info("kafka order events enabled",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaTopic),
		)
	}
	defer notifiers.Close()

	// Sessions
	sessions := session.NewRegistry(notifiers, log.Named("session"),
		session.WithIdleTTL(cfg.SessionIdleTTL),
		session.WithCartOptions(
			cart.WithDefaultSize(cfg.DefaultSize),
			cart.WithPricing(pricing.Policy{
				FreeShippingThreshold: cfg.FreeShippingThreshold,
				FlatShippingFee:       cfg.FlatShippingFee,
			}),
		),
	)
	defer sessions.Close()

	router := h.NewRouter(h.RouterConfig{
		Catalog:        products,
		Sessions:       sessions,
		Logger:         log.Named("http"),
		RequestTimeout: cfg.RequestTimeout,
		TracerProvider: tp,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("storefront starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}

// catalogSource picks MongoDB when MONGO_URI is set, seeding an empty collection with the
// house collection, and the built-in products otherwise.
func catalogSource(ctx context.Context, cfg *config.Config, log *zap.Logger) (catalog.Source, *mongo.Database) {
	if cfg.MongoURI == "" {
		log.Info("using built-in catalog")
		return catalog.NewStaticSource(), nil
	}

	db, err := catalog.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	log.Info("connected to MongoDB", zap.String("database", cfg.MongoDBName))

	src := catalog.NewMongoSource(db)
	if err := src.CreateIndexes(ctx); err != nil {
		log.Fatal("failed to create catalog indexes", zap.Error(err))
	}

	existing, err := src.Products(ctx)
	if err != nil {
		log.Fatal("failed to read catalog", zap.Error(err))
	}
	if len(existing) == 0 {
		if err := src.Seed(ctx, catalog.DefaultProducts()); err != nil {
			log.Fatal("failed to seed catalog", zap.Error(err))
		}
		log.Info("seeded empty catalog", zap.Int("products", len(catalog.DefaultProducts())))
	}

	return src, db
}
