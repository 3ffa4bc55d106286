package database

import (
	"context"
	"fmt"

	"github.com/mytheresa/catalog-api/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type seedProduct struct {
	name     string
	price    string
	stock    int
	category int // index into seedCategories
	tags     []int
}

var (
	seedCategories = []string{"Shirts", "Shorts", "Music", "Hats", "Shoes"}

	seedTags = []string{"rock music", "pop music", "blue", "red", "green", "white", "gold", "pop culture"}

	seedProducts = []seedProduct{
		{name: "Plain T-Shirt", price: "14.99", stock: 14, category: 0, tags: []int{5, 6, 7}},
		{name: "Running Sneakers", price: "90.00", stock: 25, category: 4, tags: []int{5}},
		{name: "Branded Baseball Hat", price: "22.99", stock: 12, category: 3, tags: []int{2, 6, 7}},
		{name: "Top 40 Music Compilation Vinyl Record", price: "12.99", stock: 50, category: 2, tags: []int{0, 1}},
		{name: "Cargo Shorts", price: "29.99", stock: 22, category: 1, tags: []int{0, 1, 2, 3}},
	}
)

// Seed inserts the demo catalog through the repositories inside a single
// transaction. It does nothing when categories already exist. Returns whether
// data was inserted.
func Seed(ctx context.Context, db *gorm.DB, log *zap.Logger) (bool, error) {
	var existing int64
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := models.NewCategoriesRepository(tx)
		tags := models.NewTagsRepository(tx)
		products := models.NewProductsRepository(tx)

		count, err := categories.CountCategories(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			existing = count
			return nil
		}

		categoryIDs := make([]uint, len(seedCategories))
		for i, name := range seedCategories {
			c := &models.Category{CategoryName: name}
			if err := categories.CreateCategory(ctx, c); err != nil {
				return fmt.Errorf("seed category %q: %w", name, err)
			}
			categoryIDs[i] = c.ID
		}

		tagIDs := make([]uint, len(seedTags))
		for i, name := range seedTags {
			t := &models.Tag{TagName: &name}
			if err := tags.CreateTag(ctx, t, nil); err != nil {
				return fmt.Errorf("seed tag %q: %w", name, err)
			}
			tagIDs[i] = t.ID
		}

		for _, sp := range seedProducts {
			p := &models.Product{
				ProductName: sp.name,
				Price:       decimal.RequireFromString(sp.price),
				Stock:       sp.stock,
				CategoryID:  &categoryIDs[sp.category],
			}
			links := make([]uint, len(sp.tags))
			for i, idx := range sp.tags {
				links[i] = tagIDs[idx]
			}
			if err := products.CreateProduct(ctx, p, links); err != nil {
				return fmt.Errorf("seed product %q: %w", sp.name, err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if existing > 0 {
		log.Info("catalog already seeded", zap.Int64("categories", existing))
		return false, nil
	}

	log.Info("catalog seeded",
		zap.Int("categories", len(seedCategories)),
		zap.Int("tags", len(seedTags)),
		zap.Int("products", len(seedProducts)),
	)
	return true, nil
}
