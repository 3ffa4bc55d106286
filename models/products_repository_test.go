package models

import (
	"context"
	"errors"
	"testing"

	"github.com/mytheresa/catalog-api/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductsRepository_CreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("links requested tags and reloads associations", func(t *testing.T) {
		db := newTestDB(t)
		category := seedCategory(t, db, "Sports")
		tags := seedTags(t, db, "ball", "outdoor", "gift")

		product := &Product{
			ProductName: "Basketball",
			Price:       decimal.RequireFromString("200.00"),
			Stock:       3,
			CategoryID:  &category.ID,
		}
		err := NewProductsRepository(db).CreateProduct(ctx, product, []uint{tags[0], tags[1]})
		require.NoError(t, err)

		assert.NotZero(t, product.ID)
		require.NotNil(t, product.Category)
		assert.Equal(t, "Sports", product.Category.CategoryName)
		assert.ElementsMatch(t, []uint{tags[0], tags[1]}, tagIDsOf(product))
		assert.True(t, product.Price.Equal(decimal.NewFromInt(200)))
	})

	t.Run("duplicate tag ids create one join row each", func(t *testing.T) {
		db := newTestDB(t)
		tags := seedTags(t, db, "a", "b", "c")

		product := seedProduct(t, db, "Cap", nil, tags[1], tags[1], tags[2])

		assert.ElementsMatch(t, []uint{tags[1], tags[2]}, tagIDsOf(product))
		assert.Equal(t, int64(2), countRows(t, db, &ProductTag{}))
	})

	t.Run("unknown tag id aborts the whole create", func(t *testing.T) {
		db := newTestDB(t)
		tags := seedTags(t, db, "a")

		product := &Product{ProductName: "Ghost", Price: decimal.NewFromInt(1), Stock: 1}
		err := NewProductsRepository(db).CreateProduct(ctx, product, []uint{tags[0], 999})

		var refErr *InvalidReferenceError
		require.ErrorAs(t, err, &refErr)
		assert.Equal(t, "tag", refErr.Kind)
		assert.Equal(t, []uint{999}, refErr.IDs)
		assert.Equal(t, int64(0), countRows(t, db, &Product{}))
		assert.Equal(t, int64(0), countRows(t, db, &ProductTag{}))
	})

	t.Run("unknown category id is rejected", func(t *testing.T) {
		db := newTestDB(t)
		missing := uint(42)

		product := &Product{ProductName: "Orphan", Price: decimal.NewFromInt(1), Stock: 1, CategoryID: &missing}
		err := NewProductsRepository(db).CreateProduct(ctx, product, nil)

		assert.ErrorIs(t, err, ErrInvalidReference)
		assert.Equal(t, int64(0), countRows(t, db, &Product{}))
	})
}

func TestProductsRepository_GetProductByID(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	tags := seedTags(t, db, "red")
	created := seedProduct(t, db, "Shirt", nil, tags...)

	t.Run("returns product with tags", func(t *testing.T) {
		product, err := NewProductsRepository(db).GetProductByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Shirt", product.ProductName)
		assert.Nil(t, product.Category)
		assert.Equal(t, tags, tagIDsOf(product))
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		product, err := NewProductsRepository(db).GetProductByID(ctx, 999)
		assert.Nil(t, product)
		assert.ErrorIs(t, err, ErrProductNotFound)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestProductsRepository_GetFilteredProducts(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	shoes := seedCategory(t, db, "Shoes")
	hats := seedCategory(t, db, "Hats")
	seedProduct(t, db, "Sneakers", &shoes.ID)
	seedProduct(t, db, "Boots", &shoes.ID)
	cheap := &Product{ProductName: "Beanie", Price: decimal.RequireFromString("4.50"), Stock: 2, CategoryID: &hats.ID}
	require.NoError(t, NewProductsRepository(db).CreateProduct(ctx, cheap, nil))

	repo := NewProductsRepository(db)

	all, err := repo.GetFilteredProducts(ctx, ProductFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "Sneakers", all[0].ProductName)
	require.NotNil(t, all[0].Category)
	assert.Equal(t, "Shoes", all[0].Category.CategoryName)

	byCategory, err := repo.GetFilteredProducts(ctx, ProductFilters{CategoryID: &shoes.ID})
	require.NoError(t, err)
	assert.Len(t, byCategory, 2)

	limit := decimal.NewFromInt(5)
	byPrice, err := repo.GetFilteredProducts(ctx, ProductFilters{PriceLessThan: &limit})
	require.NoError(t, err)
	require.Len(t, byPrice, 1)
	assert.Equal(t, "Beanie", byPrice[0].ProductName)
}

func TestProductsRepository_UpdateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("reconciles tags against the requested set", func(t *testing.T) {
		db := newTestDB(t)
		tags := seedTags(t, db, "t1", "t2", "t3", "t4")
		product := seedProduct(t, db, "Record", nil, tags[0], tags[1], tags[2])
		repo := NewProductsRepository(db)

		plan, err := repo.UpdateProduct(ctx, product.ID, ProductChanges{TagIDs: []uint{tags[1], tags[2], tags[3]}})
		require.NoError(t, err)
		assert.Equal(t, []uint{tags[3]}, plan.Add)
		assert.Equal(t, []uint{tags[0]}, plan.Remove)

		again, err := repo.UpdateProduct(ctx, product.ID, ProductChanges{TagIDs: []uint{tags[3], tags[2], tags[1]}})
		require.NoError(t, err)
		assert.True(t, again.Empty())

		reloaded, err := repo.GetProductByID(ctx, product.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []uint{tags[1], tags[2], tags[3]}, tagIDsOf(reloaded))
		assert.Equal(t, int64(3), countRows(t, db, &ProductTag{}))
	})

	t.Run("empty tag list removes all links", func(t *testing.T) {
		db := newTestDB(t)
		tags := seedTags(t, db, "t1", "t2")
		product := seedProduct(t, db, "Hat", nil, tags...)

		_, err := NewProductsRepository(db).UpdateProduct(ctx, product.ID, ProductChanges{TagIDs: []uint{}})
		require.NoError(t, err)
		assert.Equal(t, int64(0), countRows(t, db, &ProductTag{}))
	})

	t.Run("nil tag list leaves links untouched", func(t *testing.T) {
		db := newTestDB(t)
		tags := seedTags(t, db, "t1")
		product := seedProduct(t, db, "Hat", nil, tags...)
		name := "Bucket Hat"
		price := decimal.RequireFromString("19.95")
		stock := 0

		plan, err := NewProductsRepository(db).UpdateProduct(ctx, product.ID, ProductChanges{
			ProductName: &name,
			Price:       &price,
			Stock:       &stock,
		})
		require.NoError(t, err)
		assert.True(t, plan.Empty())

		reloaded, err := NewProductsRepository(db).GetProductByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Bucket Hat", reloaded.ProductName)
		assert.True(t, reloaded.Price.Equal(price))
		assert.Equal(t, 0, reloaded.Stock)
		assert.Equal(t, tags, tagIDsOf(reloaded))
	})

	t.Run("clear category detaches the product", func(t *testing.T) {
		db := newTestDB(t)
		shoes := seedCategory(t, db, "Shoes")
		product := seedProduct(t, db, "Sneakers", &shoes.ID)
		repo := NewProductsRepository(db)

		_, err := repo.UpdateProduct(ctx, product.ID, ProductChanges{ClearCategory: true})
		require.NoError(t, err)

		reloaded, err := repo.GetProductByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Nil(t, reloaded.CategoryID)
		assert.Nil(t, reloaded.Category)
		assert.Equal(t, int64(1), countRows(t, db, &Category{}))
	})

	t.Run("absent category keeps the product attached", func(t *testing.T) {
		db := newTestDB(t)
		shoes := seedCategory(t, db, "Shoes")
		product := seedProduct(t, db, "Sneakers", &shoes.ID)
		stock := 4
		repo := NewProductsRepository(db)

		_, err := repo.UpdateProduct(ctx, product.ID, ProductChanges{Stock: &stock})
		require.NoError(t, err)

		reloaded, err := repo.GetProductByID(ctx, product.ID)
		require.NoError(t, err)
		require.NotNil(t, reloaded.CategoryID)
		assert.Equal(t, shoes.ID, *reloaded.CategoryID)
	})

	t.Run("unknown tag id rolls back scalar changes", func(t *testing.T) {
		db := newTestDB(t)
		product := seedProduct(t, db, "Scarf", nil)
		name := "Renamed"

		_, err := NewProductsRepository(db).UpdateProduct(ctx, product.ID, ProductChanges{
			ProductName: &name,
			TagIDs:      []uint{404},
		})
		assert.ErrorIs(t, err, ErrInvalidReference)

		reloaded, err := NewProductsRepository(db).GetProductByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Scarf", reloaded.ProductName)
	})

	t.Run("unknown product is not found", func(t *testing.T) {
		db := newTestDB(t)
		_, err := NewProductsRepository(db).UpdateProduct(ctx, 999, ProductChanges{})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestProductsRepository_DeleteProduct(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	tags := seedTags(t, db, "t1", "t2")
	product := seedProduct(t, db, "Vinyl", nil, tags...)
	repo := NewProductsRepository(db)

	deleted, err := repo.DeleteProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.Equal(t, int64(0), countRows(t, db, &ProductTag{}))
	assert.Equal(t, int64(2), countRows(t, db, &Tag{}))

	_, err = repo.DeleteProduct(ctx, product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductsRepository_StoreFailures(t *testing.T) {
	ctx := context.Background()
	dbErr := errors.New("connection refused")

	t.Run("list surfaces the store error", func(t *testing.T) {
		db, mock := testutil.OpenMock(t)
		mock.ExpectQuery(`SELECT \* FROM "product"`).WillReturnError(dbErr)

		products, err := NewProductsRepository(db).GetFilteredProducts(ctx, ProductFilters{})
		assert.Nil(t, products)
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get by id is not reported as not found", func(t *testing.T) {
		db, mock := testutil.OpenMock(t)
		mock.ExpectQuery(`SELECT \* FROM "product" WHERE "product"."id" = \$1`).WillReturnError(dbErr)

		_, err := NewProductsRepository(db).GetProductByID(ctx, 1)
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update rolls back when the lookup fails", func(t *testing.T) {
		db, mock := testutil.OpenMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "id" FROM "product"`).WillReturnError(dbErr)
		mock.ExpectRollback()

		_, err := NewProductsRepository(db).UpdateProduct(ctx, 1, ProductChanges{})
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("create fails when no transaction can start", func(t *testing.T) {
		db, mock := testutil.OpenMock(t)
		mock.ExpectBegin().WillReturnError(dbErr)

		err := NewProductsRepository(db).CreateProduct(ctx, &Product{ProductName: "x"}, nil)
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
