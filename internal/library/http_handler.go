package library

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dehashizia/ReadMeMore-sub000/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type upsertReq struct {
	BookID string `json:"bookId" validate:"required"`
	Status string `json:"status" validate:"required,oneof=to_read reading read"`
}

// AddOrUpdate handles POST /library
// @Summary Tag a book in the caller's personal library
// @Tags library
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body upsertReq true "Library entry"
// @Success 204 "No Content"
// @Failure 404 {object} httpx.ErrorResponse
// @Router /library [post]
func (h *HTTPHandler) AddOrUpdate(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	var req upsertReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	if err := h.service.Upsert(r.Context(), userID, req.BookID, req.Status); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}

	httpx.JSONSuccessNoContent(w)
}

// ListByStatus handles GET /library?status=
// @Summary List the caller's library by reading status
// @Tags library
// @Produce json
// @Security Bearer
// @Param status query string true "Reading status"
// @Success 200 {object} httpx.SuccessResponse
// @Router /library [get]
func (h *HTTPHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	status := r.URL.Query().Get("status")

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	books, total, err := h.service.List(r.Context(), userID, status, limit, offset)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}

	httpx.JSONSuccess(w, r, books, map[string]any{
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// Remove handles DELETE /library/{bookID}
// @Summary Remove a book from the caller's library
// @Tags library
// @Security Bearer
// @Param bookID path string true "Book id"
// @Success 204 "No Content"
// @Failure 404 {object} httpx.ErrorResponse
// @Router /library/{bookID} [delete]
func (h *HTTPHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	bookID := r.PathValue("bookID")
	if bookID == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Book id is required", nil)
		return
	}

	if err := h.service.Remove(r.Context(), userID, bookID); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Library entry not found", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccessNoContent(w)
}
