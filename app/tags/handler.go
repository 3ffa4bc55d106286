package tags

import (
	"context"
	"errors"
	"net/http"

	"github.com/mytheresa/catalog-api/app/api"
	"github.com/mytheresa/catalog-api/internal/logger"
	"github.com/mytheresa/catalog-api/models"
	"go.uber.org/zap"
)

const notFoundMsg = "No tag found with that id!"

type TagResponse struct {
	ID       uint      `json:"id"`
	TagName  *string   `json:"tag_name"`
	Products []Product `json:"products"`
}

type Product struct {
	ID          uint    `json:"id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	CategoryID  *uint   `json:"category_id"`
}

// tag_name is nullable, so both payloads accept it absent.
type tagRequest struct {
	TagName              *string `json:"tag_name" validate:"omitempty,max=255"`
	AssociatedProductIDs []uint  `json:"associatedProductIds" validate:"dive,gt=0,lte=2147483647"`
}

type TagProvider interface {
	GetAllTags(ctx context.Context) ([]models.Tag, error)
	GetTagByID(ctx context.Context, id uint) (*models.Tag, error)
	CreateTag(ctx context.Context, tag *models.Tag, productIDs []uint) error
	UpdateTag(ctx context.Context, id uint, changes models.TagChanges) (models.LinkPlan, error)
	DeleteTag(ctx context.Context, id uint) (int64, error)
}

type TagHandler struct {
	repo TagProvider
}

func NewTagHandler(r TagProvider) *TagHandler {
	return &TagHandler{repo: r}
}

func (h *TagHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	tags, err := h.repo.GetAllTags(r.Context())
	if err != nil {
		api.ServerError(w, r, http.StatusInternalServerError, "Failed to retrieve tags", err)
		return
	}

	response := make([]TagResponse, len(tags))
	for i := range tags {
		response[i] = toResponse(&tags[i])
	}
	api.WriteJSON(w, r, http.StatusOK, response)
}

func (h *TagHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r)
	if !ok {
		api.WriteError(w, r, http.StatusNotFound, notFoundMsg)
		return
	}

	tag, err := h.repo.GetTagByID(r.Context(), id)
	switch {
	case errors.Is(err, models.ErrNotFound):
		api.WriteError(w, r, http.StatusNotFound, notFoundMsg)
		return
	case err != nil:
		api.ServerError(w, r, http.StatusInternalServerError, "Failed to retrieve tag", err)
		return
	}
	api.WriteJSON(w, r, http.StatusOK, toResponse(tag))
}

func (h *TagHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input tagRequest
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	tag := &models.Tag{TagName: input.TagName}
	err := h.repo.CreateTag(r.Context(), tag, input.AssociatedProductIDs)
	switch {
	case errors.Is(err, models.ErrInvalidReference):
		api.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		api.ServerError(w, r, http.StatusBadRequest, "Failed to create tag", err)
		return
	}
	api.WriteJSON(w, r, http.StatusOK, toResponse(tag))
}

func (h *TagHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r)
	if !ok {
		api.WriteError(w, r, http.StatusNotFound, notFoundMsg)
		return
	}

	var input tagRequest
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := h.repo.UpdateTag(r.Context(), id, models.TagChanges{
		TagName:    input.TagName,
		ProductIDs: input.AssociatedProductIDs,
	})
	switch {
	case errors.Is(err, models.ErrNotFound):
		api.WriteError(w, r, http.StatusNotFound, notFoundMsg)
		return
	case errors.Is(err, models.ErrInvalidReference):
		api.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		api.ServerError(w, r, http.StatusNotFound, "Failed to update tag", err)
		return
	}

	if !plan.Empty() {
		logger.FromContext(r.Context()).Info("tag products reconciled",
			zap.Uint("tag_id", id),
			zap.Uints("added", plan.Add),
			zap.Uints("removed", plan.Remove),
		)
	}
	api.WriteJSON(w, r, http.StatusOK, api.MessageResponse{Message: "Tag updated"})
}

func (h *TagHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r)
	if !ok {
		api.WriteError(w, r, http.StatusNotFound, notFoundMsg)
		return
	}

	deleted, err := h.repo.DeleteTag(r.Context(), id)
	switch {
	case errors.Is(err, models.ErrNotFound):
		api.WriteError(w, r, http.StatusNotFound, notFoundMsg)
		return
	case err != nil:
		api.ServerError(w, r, http.StatusNotFound, "Failed to delete tag", err)
		return
	}
	api.WriteJSON(w, r, http.StatusOK, api.DeletedResponse{Deleted: deleted})
}

func toResponse(t *models.Tag) TagResponse {
	products := make([]Product, len(t.Products))
	for i, p := range t.Products {
		products[i] = Product{
			ID:          p.ID,
			ProductName: p.ProductName,
			Price:       p.Price.InexactFloat64(),
			Stock:       p.Stock,
			CategoryID:  p.CategoryID,
		}
	}
	return TagResponse{
		ID:       t.ID,
		TagName:  t.TagName,
		Products: products,
	}
}
