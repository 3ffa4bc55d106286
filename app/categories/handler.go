package categories

import (
	"context"
	"errors"
	"net/http"

	"github.com/mytheresa/catalog-api/app/api"
	"github.com/mytheresa/catalog-api/models"
)

const notFoundMsg = "No category found with that id!"

type CategoryResponse struct {
	ID           uint      `json:"id"`
	CategoryName string    `json:"category_name"`
	Products     []Product `json:"products"`
}

type Product struct {
	ID          uint    `json:"id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	CategoryID  *uint   `json:"category_id"`
}

type categoryRequest struct {
	CategoryName string `json:"category_name" validate:"required,max=255"`
}

type CategoryProvider interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryByID(ctx context.Context, id uint) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, id uint, name string) (int64, error)
	DeleteCategory(ctx context.Context, id uint) (int64, error)
}

type CategoryHandler struct {
	repo CategoryProvider
}

func NewCategoryHandler(r CategoryProvider) *CategoryHandler {
	return &CategoryHandler{repo: r}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.GetAllCategories(r.Context())
	if err != nil {
		api.ServerError(w, r, http.StatusInternalServerError, "failed to fetch categories", err)
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i := range categories {
		response[i] = toResponse(&categories[i])
	}
	api.WriteJSON(w, r, http.StatusOK, response)
}

func (h *CategoryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r)
	if !ok {
		api.WriteError(w, r, http.StatusNotFound, notFoundMsg)
		return
	}

	category, err := h.repo.GetCategoryByID(r.Context(), id)
	switch {
	case errors.Is(err, models.ErrNotFound):
		api.WriteError(w, r, http.StatusNotFound, notFoundMsg)
		return
	case err != nil:
		api.ServerError(w, r, http.StatusInternalServerError, "failed to fetch category", err)
		return
	}
	api.WriteJSON(w, r, http.StatusOK, toResponse(category))
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input categoryRequest
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	category := &models.Category{CategoryName: input.CategoryName}
	if err := h.repo.CreateCategory(r.Context(), category); err != nil {
		api.ServerError(w, r, http.StatusBadRequest, "Failed to create category", err)
		return
	}
	api.WriteJSON(w, r, http.StatusOK, toResponse(category))
}

func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r)
	if !ok {
		api.WriteError(w, r, http.StatusNotFound, notFoundMsg)
		return
	}

	var input categoryRequest
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.repo.UpdateCategory(r.Context(), id, input.CategoryName)
	switch {
	case errors.Is(err, models.ErrNotFound):
		api.WriteError(w, r, http.StatusNotFound, notFoundMsg)
		return
	case err != nil:
		api.ServerError(w, r, http.StatusNotFound, "Failed to update category", err)
		return
	}
	api.WriteJSON(w, r, http.StatusOK, api.UpdatedResponse{Updated: updated})
}

func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r)
	if !ok {
		api.WriteError(w, r, http.StatusNotFound, notFoundMsg)
		return
	}

	deleted, err := h.repo.DeleteCategory(r.Context(), id)
	switch {
	case errors.Is(err, models.ErrNotFound):
		api.WriteError(w, r, http.StatusNotFound, notFoundMsg)
		return
	case err != nil:
		api.ServerError(w, r, http.StatusNotFound, "Failed to delete category", err)
		return
	}
	api.WriteJSON(w, r, http.StatusOK, api.DeletedResponse{Deleted: deleted})
}

func toResponse(c *models.Category) CategoryResponse {
	products := make([]Product, len(c.Products))
	for i, p := range c.Products {
		products[i] = Product{
			ID:          p.ID,
			ProductName: p.ProductName,
			Price:       p.Price.InexactFloat64(),
			Stock:       p.Stock,
			CategoryID:  p.CategoryID,
		}
	}
	return CategoryResponse{
		ID:           c.ID,
		CategoryName: c.CategoryName,
		Products:     products,
	}
}
