package loan

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dehashizia/ReadMeMore-sub000/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type createReq struct {
	BookID string `json:"bookId" validate:"required"`
}

// Create handles POST /loans/request
// @Summary Request to borrow a book
// @Tags loans
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body createReq true "Loan request"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /loans/request [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	created, err := h.service.Create(r.Context(), req.BookID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookNotFound):
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		case errors.Is(err, ErrUnavailable):
			httpx.JSONError(w, r, http.StatusNotFound, "UNAVAILABLE", "Book is not available for loan", nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}

	httpx.JSONSuccessCreated(w, r, created)
}

type respondReq struct {
	LoanRequestID string `json:"loanRequestId" validate:"required"`
	Status        string `json:"status" validate:"required,oneof=accepted declined"`
}

// Respond handles POST /loans/respond
// @Summary Accept or decline a loan request
// @Tags loans
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body respondReq true "Decision"
// @Success 204 "No Content"
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /loans/respond [post]
func (h *HTTPHandler) Respond(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	var req respondReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	if err := h.service.Respond(r.Context(), req.LoanRequestID, userID, req.Status); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Loan request not found", nil)
		case errors.Is(err, ErrForbidden):
			httpx.JSONError(w, r, http.StatusForbidden, "FORBIDDEN", "Only the book owner may respond", nil)
		case errors.Is(err, ErrAlreadyResolved):
			httpx.JSONError(w, r, http.StatusConflict, "ALREADY_RESOLVED", "Loan request already resolved", nil)
		case errors.Is(err, ErrUnavailable):
			httpx.JSONError(w, r, http.StatusConflict, "UNAVAILABLE", "Book is no longer available for loan", nil)
		case errors.Is(err, ErrInvalidDecision):
			httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Decision must be accepted or declined", nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}

	httpx.JSONSuccessNoContent(w)
}

// ListForUser handles GET /loans
// @Summary List the caller's sent and received loan requests
// @Tags loans
// @Produce json
// @Security Bearer
// @Success 200 {object} httpx.SuccessResponse
// @Router /loans [get]
func (h *HTTPHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	inbox, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, inbox, nil)
}
