package comment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dehashizia/ReadMeMore-sub000/internal/httpx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, c *Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockRepo) ListByBook(ctx context.Context, bookID string) ([]Comment, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Comment), args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, commentID, userID string) error {
	args := m.Called(ctx, commentID, userID)
	return args.Error(0)
}

func asUser(r *http.Request, userID string) *http.Request {
	return r.WithContext(httpx.ContextWithUser(r.Context(), userID, "USER", "tester"))
}

func TestHTTPHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mRepo := new(mockRepo)
		handler := NewHTTPHandler(NewService(mRepo))

		mRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *Comment) bool {
			return c.BookID == "b1" && c.UserID == "u1" && c.Rating == 4
		})).Return(nil)

		w := httptest.NewRecorder()
		r := asUser(httptest.NewRequest(http.MethodPost, "/books/b1/comments",
			strings.NewReader(`{"text":"Great read","rating":4}`)), "u1")
		r.SetPathValue("id", "b1")

		handler.Create(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Great read")
	})

	t.Run("rating out of range", func(t *testing.T) {
		handler := NewHTTPHandler(NewService(new(mockRepo)))

		w := httptest.NewRecorder()
		r := asUser(httptest.NewRequest(http.MethodPost, "/books/b1/comments",
			strings.NewReader(`{"text":"Meh","rating":6}`)), "u1")
		r.SetPathValue("id", "b1")

		handler.Create(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown book", func(t *testing.T) {
		mRepo := new(mockRepo)
		handler := NewHTTPHandler(NewService(mRepo))

		mRepo.On("Create", mock.Anything, mock.Anything).Return(ErrNotFound)

		w := httptest.NewRecorder()
		r := asUser(httptest.NewRequest(http.MethodPost, "/books/nope/comments",
			strings.NewReader(`{"text":"Great read","rating":4}`)), "u1")
		r.SetPathValue("id", "nope")

		handler.Create(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHTTPHandler_ListByBook(t *testing.T) {
	mRepo := new(mockRepo)
	handler := NewHTTPHandler(NewService(mRepo))

	mRepo.On("ListByBook", mock.Anything, "b1").Return([]Comment{
		{ID: "c1", BookID: "b1", Username: "alice", Text: "Great read", Rating: 5},
	}, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/books/b1/comments", nil)
	r.SetPathValue("id", "b1")

	handler.ListByBook(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestHTTPHandler_Delete(t *testing.T) {
	t.Run("author deletes own comment", func(t *testing.T) {
		mRepo := new(mockRepo)
		handler := NewHTTPHandler(NewService(mRepo))

		mRepo.On("Delete", mock.Anything, "c1", "u1").Return(nil)

		w := httptest.NewRecorder()
		r := asUser(httptest.NewRequest(http.MethodDelete, "/comments/c1", nil), "u1")
		r.SetPathValue("id", "c1")

		handler.Delete(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("someone else's comment is forbidden", func(t *testing.T) {
		mRepo := new(mockRepo)
		handler := NewHTTPHandler(NewService(mRepo))

		mRepo.On("Delete", mock.Anything, "c1", "u2").Return(ErrForbidden)

		w := httptest.NewRecorder()
		r := asUser(httptest.NewRequest(http.MethodDelete, "/comments/c1", nil), "u2")
		r.SetPathValue("id", "c1")

		handler.Delete(w, r)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing comment", func(t *testing.T) {
		mRepo := new(mockRepo)
		handler := NewHTTPHandler(NewService(mRepo))

		mRepo.On("Delete", mock.Anything, "nope", "u1").Return(ErrNotFound)

		w := httptest.NewRecorder()
		r := asUser(httptest.NewRequest(http.MethodDelete, "/comments/nope", nil), "u1")
		r.SetPathValue("id", "nope")

		handler.Delete(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
