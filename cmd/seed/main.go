package main

// Seeds a fresh database with a small demo catalog and two loyalty members
// so a new terminal has something to sell against. Safe to re-run: it skips
// seeding when products already exist.

import (
	"context"

	"github.com/paridu/pos-backend/internal/config"
	"github.com/paridu/pos-backend/internal/infra"
	"github.com/paridu/pos-backend/internal/model"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	ctx := context.Background()

	var count int64
	if err := db.WithContext(ctx).Model(&model.Product{}).Count(&count).Error; err != nil {
		log.Fatal().Err(err).Msg("failed to inspect catalog")
	}
	if count > 0 {
		log.Info().Int64("products", count).Msg("catalog already seeded, nothing to do")
		return
	}

	products := []model.Product{
		{Name: "Iced Coffee", Category: "Drinks", Price: decimal.NewFromInt(55), Cost: decimal.NewFromInt(20), Stock: 50, MinStock: 10, ImageURL: "https://picsum.photos/id/1060/200/200", Barcode: "885001", Active: true},
		{Name: "Matcha Green Tea", Category: "Drinks", Price: decimal.NewFromInt(65), Cost: decimal.NewFromInt(25), Stock: 32, MinStock: 10, ImageURL: "https://picsum.photos/id/225/200/200", Barcode: "885002", Active: true},
		{Name: "Butter Croissant", Category: "Bakery", Price: decimal.NewFromInt(45), Cost: decimal.NewFromInt(15), Stock: 12, MinStock: 10, ImageURL: "https://picsum.photos/id/1080/200/200", Barcode: "885003", Active: true},
		{Name: "Chocolate Cake", Category: "Bakery", Price: decimal.NewFromInt(85), Cost: decimal.NewFromInt(35), Stock: 8, MinStock: 10, ImageURL: "https://picsum.photos/id/292/200/200", Barcode: "885004", Active: true},
		{Name: "Drinking Water", Category: "Drinks", Price: decimal.NewFromInt(15), Cost: decimal.NewFromInt(5), Stock: 100, MinStock: 10, ImageURL: "https://picsum.photos/id/326/200/200", Barcode: "885005", Active: true},
	}
	if err := db.WithContext(ctx).Create(&products).Error; err != nil {
		log.Fatal().Err(err).Msg("failed to seed products")
	}

	customers := []model.Customer{
		{Name: "Somchai Jaidee", Phone: "0812345678", Points: 150, TotalSpent: decimal.NewFromInt(1500), Active: true},
		{Name: "Manee Meechai", Phone: "0898765432", Points: 50, TotalSpent: decimal.NewFromInt(500), Active: true},
	}
	if err := db.WithContext(ctx).Create(&customers).Error; err != nil {
		log.Fatal().Err(err).Msg("failed to seed customers")
	}

	log.Info().
		Int("products", len(products)).
		Int("customers", len(customers)).
		Msg("demo data seeded")
}
