// Package api holds the JSON plumbing shared by the resource handlers.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/mytheresa/catalog-api/internal/logger"
	"github.com/mytheresa/catalog-api/models"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type UpdatedResponse struct {
	Updated int64 `json:"updated"`
}

type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Warn("encode response", zap.Error(err))
	}
}

// WriteError writes {"error": msg} with the given status.
func WriteError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	WriteJSON(w, r, status, ErrorResponse{Error: msg})
}

// ServerError logs err and writes msg with the given status. Store failures
// are never echoed to clients.
func ServerError(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	logger.FromContext(r.Context()).Error(msg,
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	WriteError(w, r, status, msg)
}

// PathID parses the {id} path value. Zero, negative, non-numeric and
// out-of-range ids are rejected since no row can carry them.
func PathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil || id == 0 || id > models.MaxID {
		return 0, false
	}
	return uint(id), true
}
