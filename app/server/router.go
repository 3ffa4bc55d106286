// Package server wires the resource handlers into an HTTP server.
package server

import (
	"net/http"

	"github.com/mytheresa/catalog-api/app/api"
	"github.com/mytheresa/catalog-api/app/categories"
	"github.com/mytheresa/catalog-api/app/products"
	"github.com/mytheresa/catalog-api/app/tags"
	"github.com/mytheresa/catalog-api/internal/database"
	"github.com/mytheresa/catalog-api/internal/logger"
	"github.com/mytheresa/catalog-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewHandler builds the full HTTP handler: routes plus middleware.
func NewHandler(db *gorm.DB, log *zap.Logger, maxBodyBytes int64) http.Handler {
	categoryHandler := categories.NewCategoryHandler(models.NewCategoriesRepository(db))
	productHandler := products.NewProductHandler(models.NewProductsRepository(db))
	tagHandler := tags.NewTagHandler(models.NewTagsRepository(db))

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/categories", categoryHandler.HandleGetAll)
	mux.HandleFunc("POST /api/categories", categoryHandler.HandleCreate)
	mux.HandleFunc("GET /api/categories/{id}", categoryHandler.HandleGet)
	mux.HandleFunc("PUT /api/categories/{id}", categoryHandler.HandleUpdate)
	mux.HandleFunc("DELETE /api/categories/{id}", categoryHandler.HandleDelete)

	mux.HandleFunc("GET /api/products", productHandler.HandleGetAll)
	mux.HandleFunc("POST /api/products", productHandler.HandleCreate)
	mux.HandleFunc("GET /api/products/{id}", productHandler.HandleGet)
	mux.HandleFunc("PUT /api/products/{id}", productHandler.HandleUpdate)
	mux.HandleFunc("DELETE /api/products/{id}", productHandler.HandleDelete)

	mux.HandleFunc("GET /api/tags", tagHandler.HandleGetAll)
	mux.HandleFunc("POST /api/tags", tagHandler.HandleCreate)
	mux.HandleFunc("GET /api/tags/{id}", tagHandler.HandleGet)
	mux.HandleFunc("PUT /api/tags/{id}", tagHandler.HandleUpdate)
	mux.HandleFunc("DELETE /api/tags/{id}", tagHandler.HandleDelete)

	mux.HandleFunc("GET /health", healthHandler(db))

	return withMiddleware(mux, log, maxBodyBytes)
}

// withMiddleware wraps h so that every request, including one that panics,
// carries a request id and gets an access log line.
func withMiddleware(h http.Handler, log *zap.Logger, maxBodyBytes int64) http.Handler {
	h = limitBody(h, maxBodyBytes)
	h = recoverPanics(h)
	h = accessLog(h)
	h = requestID(h, log)
	return h
}

type healthResponse struct {
	Status string `json:"status"`
}

func healthHandler(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := database.Ping(r.Context(), db); err != nil {
			logger.FromContext(r.Context()).Warn("health check failed", zap.Error(err))
			api.WriteJSON(w, r, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
			return
		}
		api.WriteJSON(w, r, http.StatusOK, healthResponse{Status: "ok"})
	}
}
