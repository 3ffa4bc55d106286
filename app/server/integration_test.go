//go:build integration

package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/mytheresa/catalog-api/internal/database"
	"github.com/mytheresa/catalog-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newPostgresAPI starts PostgreSQL in a container, applies the SQL migrations
// and serves the API on top of it.
func newPostgresAPI(t *testing.T) (*testAPI, string) {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("catalog_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: Failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	migrator, err := database.NewMigrator(dsn, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, migrator.Up())
	version, dirty, err := migrator.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
	require.NoError(t, migrator.Close())

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.SetupJoinTables(db))
	t.Cleanup(func() { _ = database.Close(db) })

	return &testAPI{t: t, db: db, handler: NewHandler(db, zap.NewNop(), 1<<20)}, dsn
}

func TestPostgresBasketball(t *testing.T) {
	a, _ := newPostgresAPI(t)
	a.seedTags("rock music", "pop music")
	require.Equal(t, http.StatusOK, a.do("POST", "/api/categories", `{"category_name":"Sports"}`).Code)

	rec := a.do("POST", "/api/products", `{"product_name":"Basketball","price":200.00,"stock":3,"category_id":1,"associatedTagIds":[1,2]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got productView
	a.decode(a.do("GET", "/api/products/1", ""), &got)
	assert.Equal(t, []uint{1, 2}, tagIDs(got))
	assert.Equal(t, 200.0, got.Price)

	rec = a.do("POST", "/api/products", `{"product_name":"Ghost","price":1,"associatedTagIds":[999]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do("DELETE", "/api/categories/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	a.decode(a.do("GET", "/api/products/1", ""), &got)
	assert.Nil(t, got.CategoryID)
}

func TestPostgresUniquePair(t *testing.T) {
	a, _ := newPostgresAPI(t)
	a.seedTags("blue")
	require.Equal(t, http.StatusOK, a.do("POST", "/api/products", `{"product_name":"Ball","price":5,"associatedTagIds":[1]}`).Code)

	err := a.db.Create(&models.ProductTag{ProductID: 1, TagID: 1}).Error
	assert.Error(t, err)
}

func TestPostgresIDsBeyondColumnRange(t *testing.T) {
	a, _ := newPostgresAPI(t)
	require.Equal(t, http.StatusOK, a.do("POST", "/api/categories", `{"category_name":"Sports"}`).Code)

	for _, path := range []string{
		"/api/products/2147483648",
		"/api/tags/3000000000",
		"/api/categories/18446744073709551615",
	} {
		assert.Equal(t, http.StatusNotFound, a.do("GET", path, "").Code, path)
		assert.Equal(t, http.StatusNotFound, a.do("PUT", path, `{}`).Code, path)
		assert.Equal(t, http.StatusNotFound, a.do("DELETE", path, "").Code, path)
	}

	rec := a.do("POST", "/api/products", `{"product_name":"Ball","price":5,"category_id":2147483648}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	rec = a.do("GET", "/api/products?category_id=2147483648", "")
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestPostgresClearCategory(t *testing.T) {
	a, _ := newPostgresAPI(t)
	require.Equal(t, http.StatusOK, a.do("POST", "/api/categories", `{"category_name":"Sports"}`).Code)
	require.Equal(t, http.StatusOK, a.do("POST", "/api/products", `{"product_name":"Ball","price":5,"category_id":1}`).Code)

	rec := a.do("PUT", "/api/products/1", `{"category_id":null}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got productView
	a.decode(a.do("GET", "/api/products/1", ""), &got)
	assert.Nil(t, got.CategoryID)
}

func TestMigratorDownAndUp(t *testing.T) {
	a, dsn := newPostgresAPI(t)
	require.True(t, a.db.Migrator().HasTable("product_tag"))

	migrator, err := database.NewMigrator(dsn, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = migrator.Close() })

	require.NoError(t, migrator.Down())
	assert.False(t, a.db.Migrator().HasTable("product_tag"))
	assert.False(t, a.db.Migrator().HasTable("category"))

	require.NoError(t, migrator.Up())
	assert.True(t, a.db.Migrator().HasTable("product_tag"))
}
