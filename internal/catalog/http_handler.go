package catalog

import (
	"errors"
	"net/http"

	"github.com/dehashizia/ReadMeMore-sub000/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// Search handles GET /search-books
// @Summary Search the book catalog
// @Description Resolve a title query against stored books, falling back to the external provider
// @Tags catalog
// @Produce json
// @Param query query string true "Search query"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /search-books [get]
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	results, err := h.svc.SearchByTitle(r.Context(), query)
	if err != nil {
		if errors.Is(err, ErrInvalidQuery) {
			httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Query parameter is required", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, results, map[string]any{"total": len(results)})
}

// GetByISBN handles GET /books/isbn/{isbn}
// @Summary Resolve a book by ISBN
// @Tags catalog
// @Produce json
// @Param isbn path string true "Book ISBN"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books/isbn/{isbn} [get]
func (h *HTTPHandler) GetByISBN(w http.ResponseWriter, r *http.Request) {
	isbn := r.PathValue("isbn")

	result, err := h.svc.ResolveByISBN(r.Context(), isbn)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidQuery):
			httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "ISBN is required", nil)
		case errors.Is(err, ErrNotFound):
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}

	httpx.JSONSuccess(w, r, result, nil)
}
