package models

import (
	"context"
	"testing"

	"github.com/mytheresa/catalog-api/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB returns a migrated in-memory catalog database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := testutil.OpenSQLite(t)
	require.NoError(t, AutoMigrate(db))
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *Category {
	t.Helper()
	c := &Category{CategoryName: name}
	require.NoError(t, NewCategoriesRepository(db).CreateCategory(context.Background(), c))
	return c
}

func seedTags(t *testing.T, db *gorm.DB, names ...string) []uint {
	t.Helper()
	ids := make([]uint, len(names))
	for i, name := range names {
		tag := &Tag{TagName: &name}
		require.NoError(t, NewTagsRepository(db).CreateTag(context.Background(), tag, nil))
		ids[i] = tag.ID
	}
	return ids
}

func seedProduct(t *testing.T, db *gorm.DB, name string, categoryID *uint, tagIDs ...uint) *Product {
	t.Helper()
	p := &Product{
		ProductName: name,
		Price:       decimal.RequireFromString("9.99"),
		Stock:       DefaultStock,
		CategoryID:  categoryID,
	}
	require.NoError(t, NewProductsRepository(db).CreateProduct(context.Background(), p, tagIDs))
	return p
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func tagIDsOf(p *Product) []uint {
	ids := make([]uint, len(p.Tags))
	for i, tag := range p.Tags {
		ids[i] = tag.ID
	}
	return ids
}

func productIDsOf(tag *Tag) []uint {
	ids := make([]uint, len(tag.Products))
	for i, p := range tag.Products {
		ids[i] = p.ID
	}
	return ids
}
