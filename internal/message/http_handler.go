package message

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

type sendReq struct {
	RecipientID string  `json:"recipientId" validate:"required"`
	Text        string  `json:"text" validate:"required,max=2000"`
	BookID      *string `json:"bookId,omitempty"`
}

// Send handles POST /messages
// @Summary Send a message to another user
// @Tags messages
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body sendReq true "Message"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /messages [post]
func (h *HTTPHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	var req sendReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	m, err := h.service.Send(r.Context(), userID, req.RecipientID, req.Text, req.BookID)
	if err != nil {
		if errors.Is(err, ErrRecipientNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Recipient not found", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccessCreated(w, r, m)
}

// ListConversation handles GET /messages/{userID}
// @Summary List the conversation with another user
// @Tags messages
// @Produce json
// @Security Bearer
// @Param userID path string true "Other user id"
// @Success 200 {object} httpx.SuccessResponse
// @Router /messages/{userID} [get]
func (h *HTTPHandler) ListConversation(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	otherID := r.PathValue("userID")
	if otherID == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "User id is required", nil)
		return
	}

	messages, err := h.service.ListConversation(r.Context(), userID, otherID)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, messages, map[string]any{"total": len(messages)})
}
