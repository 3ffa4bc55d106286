package products

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/mytheresa/catalog-api/app/api"
	"github.com/mytheresa/catalog-api/internal/logger"
	"github.com/mytheresa/catalog-api/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const notFoundMsg = "No product found with that id!"

type Category struct {
	ID           uint   `json:"id"`
	CategoryName string `json:"category_name"`
}

type Tag struct {
	ID      uint    `json:"id"`
	TagName *string `json:"tag_name"`
}

type ProductResponse struct {
	ID          uint      `json:"id"`
	ProductName string    `json:"product_name"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	CategoryID  *uint     `json:"category_id"`
	Category    *Category `json:"category"`
	Tags        []Tag     `json:"tags"`
}

type createProductRequest struct {
	ProductName      string           `json:"product_name" validate:"required,max=255"`
	Price            *decimal.Decimal `json:"price" validate:"required,gte=0"`
	Stock            *int             `json:"stock" validate:"omitempty,gte=0"`
	CategoryID       *uint            `json:"category_id" validate:"omitempty,gt=0,lte=2147483647"`
	AssociatedTagIDs []uint           `json:"associatedTagIds" validate:"dive,gt=0,lte=2147483647"`
}

// category_id: null detaches the product from its category.
type updateProductRequest struct {
	ProductName      *string          `json:"product_name" validate:"omitempty,min=1,max=255"`
	Price            *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
	Stock            *int             `json:"stock" validate:"omitempty,gte=0"`
	CategoryID       api.NullableID   `json:"category_id" validate:"omitempty,gt=0,lte=2147483647"`
	AssociatedTagIDs []uint           `json:"associatedTagIds" validate:"dive,gt=0,lte=2147483647"`
}

type ProductProvider interface {
	GetFilteredProducts(ctx context.Context, filters models.ProductFilters) ([]models.Product, error)
	GetProductByID(ctx context.Context, id uint) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product, tagIDs []uint) error
	UpdateProduct(ctx context.Context, id uint, changes models.ProductChanges) (models.LinkPlan, error)
	DeleteProduct(ctx context.Context, id uint) (int64, error)
}

type ProductHandler struct {
	repo ProductProvider
}

func NewProductHandler(r ProductProvider) *ProductHandler {
	return &ProductHandler{
		repo: r,
	}
}

func (h *ProductHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	// Parse filters
	var filters models.ProductFilters

	if cStr := r.URL.Query().Get("category_id"); cStr != "" {
		if c, err := strconv.ParseUint(cStr, 10, 32); err == nil && c <= models.MaxID {
			id := uint(c)
			filters.CategoryID = &id
		}
	}

	if priceStr := r.URL.Query().Get("price_lt"); priceStr != "" {
		if val, err := decimal.NewFromString(priceStr); err == nil {
			filters.PriceLessThan = &val
		}
	}

	res, err := h.repo.GetFilteredProducts(r.Context(), filters)
	if err != nil {
		api.ServerError(w, r, http.StatusInternalServerError, "Failed to retrieve products", err)
		return
	}

	products := make([]ProductResponse, len(res))
	for i := range res {
		products[i] = toResponse(&res[i])
	}
	api.WriteJSON(w, r, http.StatusOK, products)
}

func (h *ProductHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r)
	if !ok {
		api.WriteError(w, r, http.StatusNotFound, notFoundMsg)
		return
	}

	product, err := h.repo.GetProductByID(r.Context(), id)
	switch {
	case errors.Is(err, models.ErrNotFound):
		api.WriteError(w, r, http.StatusNotFound, notFoundMsg)
		return
	case err != nil:
		api.ServerError(w, r, http.StatusInternalServerError, "Failed to retrieve product", err)
		return
	}
	api.WriteJSON(w, r, http.StatusOK, toResponse(product))
}

func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input createProductRequest
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	product := &models.Product{
		ProductName: input.ProductName,
		Price:       *input.Price,
		Stock:       models.DefaultStock,
		CategoryID:  input.CategoryID,
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}

	err := h.repo.CreateProduct(r.Context(), product, input.AssociatedTagIDs)
	switch {
	case errors.Is(err, models.ErrInvalidReference):
		api.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		api.ServerError(w, r, http.StatusBadRequest, "Failed to create product", err)
		return
	}
	api.WriteJSON(w, r, http.StatusOK, toResponse(product))
}

func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r)
	if !ok {
		api.WriteError(w, r, http.StatusNotFound, notFoundMsg)
		return
	}

	var input updateProductRequest
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := h.repo.UpdateProduct(r.Context(), id, models.ProductChanges{
		ProductName:   input.ProductName,
		Price:         input.Price,
		Stock:         input.Stock,
		CategoryID:    input.CategoryID.Value,
		ClearCategory: input.CategoryID.IsNull(),
		TagIDs:        input.AssociatedTagIDs,
	})
	switch {
	case errors.Is(err, models.ErrNotFound):
		api.WriteError(w, r, http.StatusNotFound, notFoundMsg)
		return
	case errors.Is(err, models.ErrInvalidReference):
		api.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		api.ServerError(w, r, http.StatusNotFound, "Failed to update product", err)
		return
	}

	if !plan.Empty() {
		logger.FromContext(r.Context()).Info("product tags reconciled",
			zap.Uint("product_id", id),
			zap.Uints("added", plan.Add),
			zap.Uints("removed", plan.Remove),
		)
	}
	api.WriteJSON(w, r, http.StatusOK, api.MessageResponse{Message: "Product updated"})
}

func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r)
	if !ok {
		api.WriteError(w, r, http.StatusNotFound, notFoundMsg)
		return
	}

	deleted, err := h.repo.DeleteProduct(r.Context(), id)
	switch {
	case errors.Is(err, models.ErrNotFound):
		api.WriteError(w, r, http.StatusNotFound, notFoundMsg)
		return
	case err != nil:
		api.ServerError(w, r, http.StatusNotFound, "Failed to delete product", err)
		return
	}
	api.WriteJSON(w, r, http.StatusOK, api.DeletedResponse{Deleted: deleted})
}

func toResponse(p *models.Product) ProductResponse {
	tags := make([]Tag, len(p.Tags))
	for i, t := range p.Tags {
		tags[i] = Tag{ID: t.ID, TagName: t.TagName}
	}

	response := ProductResponse{
		ID:          p.ID,
		ProductName: p.ProductName,
		Price:       p.Price.InexactFloat64(),
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		Tags:        tags,
	}
	if p.Category != nil {
		response.Category = &Category{
			ID:           p.Category.ID,
			CategoryName: p.Category.CategoryName,
		}
	}
	return response
}
