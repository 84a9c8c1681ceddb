package loan

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dehashizia/ReadMeMore-sub000/internal/httpx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func authedRequest(method, target, body, userID string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if userID != "" {
		r = r.WithContext(httpx.ContextWithUser(r.Context(), userID, "USER", "tester"))
	}
	return r
}

func TestHTTPHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mRepo := new(mockRepo)
		handler := NewHTTPHandler(NewService(mRepo, new(mockNotifier)))

		mRepo.On("Create", mock.Anything, "book-1", "user-2").Return(CreateInfo{
			Request: LoanRequest{ID: "lr-1", BookID: "book-1", Status: StatusPending},
		}, nil)

		w := httptest.NewRecorder()
		r := authedRequest(http.MethodPost, "/loans/request", `{"bookId":"book-1"}`, "user-2")

		handler.Create(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "lr-1")
	})

	t.Run("missing identity", func(t *testing.T) {
		handler := NewHTTPHandler(NewService(new(mockRepo), new(mockNotifier)))

		w := httptest.NewRecorder()
		r := authedRequest(http.MethodPost, "/loans/request", `{"bookId":"book-1"}`, "")

		handler.Create(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing book id", func(t *testing.T) {
		handler := NewHTTPHandler(NewService(new(mockRepo), new(mockNotifier)))

		w := httptest.NewRecorder()
		r := authedRequest(http.MethodPost, "/loans/request", `{}`, "user-2")

		handler.Create(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown book", func(t *testing.T) {
		mRepo := new(mockRepo)
		handler := NewHTTPHandler(NewService(mRepo, new(mockNotifier)))

		mRepo.On("Create", mock.Anything, "nope", "user-2").Return(CreateInfo{}, ErrBookNotFound)

		w := httptest.NewRecorder()
		r := authedRequest(http.MethodPost, "/loans/request", `{"bookId":"nope"}`, "user-2")

		handler.Create(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "NOT_FOUND")
	})

	t.Run("book not offered for loan", func(t *testing.T) {
		mRepo := new(mockRepo)
		handler := NewHTTPHandler(NewService(mRepo, new(mockNotifier)))

		mRepo.On("Create", mock.Anything, "book-1", "user-2").Return(CreateInfo{}, ErrUnavailable)

		w := httptest.NewRecorder()
		r := authedRequest(http.MethodPost, "/loans/request", `{"bookId":"book-1"}`, "user-2")

		handler.Create(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "UNAVAILABLE")
	})
}

func TestHTTPHandler_Respond(t *testing.T) {
	cases := []struct {
		name       string
		repoErr    error
		wantStatus int
		wantCode   string
	}{
		{"not found", ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"not the owner", ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"already resolved", ErrAlreadyResolved, http.StatusConflict, "ALREADY_RESOLVED"},
		{"book gone unavailable", ErrUnavailable, http.StatusConflict, "UNAVAILABLE"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mRepo := new(mockRepo)
			handler := NewHTTPHandler(NewService(mRepo, new(mockNotifier)))

			mRepo.On("Respond", mock.Anything, "lr-1", "owner-1", StatusAccepted).Return(DecisionInfo{}, tc.repoErr)

			w := httptest.NewRecorder()
			r := authedRequest(http.MethodPost, "/loans/respond", `{"loanRequestId":"lr-1","status":"accepted"}`, "owner-1")

			handler.Respond(w, r)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tc.wantCode)
		})
	}

	t.Run("success", func(t *testing.T) {
		mRepo := new(mockRepo)
		mNotif := new(mockNotifier)
		handler := NewHTTPHandler(NewService(mRepo, mNotif))

		mRepo.On("Respond", mock.Anything, "lr-1", "owner-1", StatusDeclined).Return(DecisionInfo{
			BookTitle:      "Dune",
			RequesterEmail: "bob@example.com",
		}, nil)
		mNotif.On("LoanDecision", mock.Anything, "bob@example.com", "Dune", StatusDeclined).Return()

		w := httptest.NewRecorder()
		r := authedRequest(http.MethodPost, "/loans/respond", `{"loanRequestId":"lr-1","status":"declined"}`, "owner-1")

		handler.Respond(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
		mNotif.AssertExpectations(t)
	})

	t.Run("bad decision rejected by validation", func(t *testing.T) {
		handler := NewHTTPHandler(NewService(new(mockRepo), new(mockNotifier)))

		w := httptest.NewRecorder()
		r := authedRequest(http.MethodPost, "/loans/respond", `{"loanRequestId":"lr-1","status":"maybe"}`, "owner-1")

		handler.Respond(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHTTPHandler_ListForUser(t *testing.T) {
	mRepo := new(mockRepo)
	handler := NewHTTPHandler(NewService(mRepo, new(mockNotifier)))

	mRepo.On("ListForUser", mock.Anything, "user-1").Return(Inbox{
		Sent:     []LoanRequest{{ID: "lr-1", BookTitle: "Dune"}},
		Received: []LoanRequest{},
	}, nil)

	w := httptest.NewRecorder()
	r := authedRequest(http.MethodGet, "/loans", "", "user-1")

	handler.ListForUser(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sent_requests")
	assert.Contains(t, w.Body.String(), "received_requests")
}
