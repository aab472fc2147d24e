// Command seed populates the sweets collection with a starter catalog.
// It is a no-op when the collection already contains documents.
package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
	"github.com/sweetshop/sweet-shop-api/internal/infrastructure/db/mongo"
	"github.com/sweetshop/sweet-shop-api/internal/pkg/config"
	"github.com/sweetshop/sweet-shop-api/pkg/logger"
)

var starterCatalog = []struct {
	name     string
	category string
	price    float64
	quantity int
	imageURL string
}{
	{"Gulab Jamun", "Milk", 5.99, 25, "https://images.unsplash.com/photo-1606313564200-e75d5e30476c?w=400"},
	{"Motichoor Ladoo", "Dry Fruit", 8.50, 30, "https://images.unsplash.com/photo-1578985545062-69928b1d9587?w=400"},
	{"Kaju Barfi", "Dry Fruit", 12.99, 20, "https://images.unsplash.com/photo-1603532648955-039310d9ed75?w=400"},
	{"Jalebi", "Milk", 6.50, 35, "https://images.unsplash.com/photo-1551024506-0bccd828d307?w=400"},
	{"Rasgulla", "Milk", 5.50, 15, "https://images.unsplash.com/photo-1563805042-7684c019e1cb?w=400"},
	{"Kesar Pista Barfi", "Dry Fruit", 9.99, 18, "https://images.unsplash.com/photo-1586444248902-2f64eddc13df?w=400"},
	{"Soan Papdi", "Sugar-Free", 7.99, 22, "https://images.unsplash.com/photo-1606312619070-d48b4bdc5b89?w=400"},
	{"Besan Ladoo", "Dry Fruit", 6.99, 28, "https://images.unsplash.com/photo-1603532648955-039310d9ed75?w=400"},
	{"Peda", "Milk", 7.50, 20, "https://images.unsplash.com/photo-1578985545062-69928b1d9587?w=400"},
	{"Badam Halwa", "Dry Fruit", 10.99, 12, "https://images.unsplash.com/photo-1603532648955-039310d9ed75?w=400"},
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	ctx := context.Background()

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	count, err := db.Collection("sweets").CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to count sweets")
	}
	if count > 0 {
		log.Info().Int64("count", count).Msg("catalog already seeded, nothing to do")
		return
	}

	repo := mongo.NewSweetRepository(db)
	now := time.Now().UTC()
	for _, s := range starterCatalog {
		sweet := &domain.Sweet{
			Name:      s.name,
			Category:  s.category,
			Price:     s.price,
			Quantity:  s.quantity,
			ImageURL:  s.imageURL,
			CreatedAt: now,
			UpdatedAt: now,
		}
		created, err := repo.Insert(ctx, sweet)
		if err != nil {
			log.Fatal().Err(err).Str("name", s.name).Msg("failed to insert sweet")
		}
		log.Info().Str("sweet_id", created.ID).Str("name", created.Name).Msg("seeded")
	}

	log.Info().Int("count", len(starterCatalog)).Msg("catalog seeded")
}
