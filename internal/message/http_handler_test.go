package message

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

func (m *mockRepo) Create(ctx context.Context, msg *Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *mockRepo) ListConversation(ctx context.Context, userID, otherID string) ([]Message, error) {
	args := m.Called(ctx, userID, otherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Message), args.Error(1)
}

func asUser(r *http.Request, userID string) *http.Request {
	return r.WithContext(httpx.ContextWithUser(r.Context(), userID, "USER", "tester"))
}

func TestHTTPHandler_Send(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mRepo := new(mockRepo)
		handler := NewHTTPHandler(NewService(mRepo))

		mRepo.On("Create", mock.Anything, mock.MatchedBy(func(msg *Message) bool {
			return msg.SenderID == "u1" && msg.RecipientID == "u2" && msg.BookID == nil
		})).Return(nil)

		w := httptest.NewRecorder()
		r := asUser(httptest.NewRequest(http.MethodPost, "/messages",
			strings.NewReader(`{"recipientId":"u2","text":"Is Dune still available?"}`)), "u1")

		handler.Send(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Is Dune still available?")
	})

	t.Run("carries an optional book reference", func(t *testing.T) {
		mRepo := new(mockRepo)
		handler := NewHTTPHandler(NewService(mRepo))

		mRepo.On("Create", mock.Anything, mock.MatchedBy(func(msg *Message) bool {
			return msg.BookID != nil && *msg.BookID == "b1"
		})).Return(nil)

		w := httptest.NewRecorder()
		r := asUser(httptest.NewRequest(http.MethodPost, "/messages",
			strings.NewReader(`{"recipientId":"u2","text":"About this one","bookId":"b1"}`)), "u1")

		handler.Send(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)
		mRepo.AssertExpectations(t)
	})

	t.Run("unknown recipient", func(t *testing.T) {
		mRepo := new(mockRepo)
		handler := NewHTTPHandler(NewService(mRepo))

		mRepo.On("Create", mock.Anything, mock.Anything).Return(ErrRecipientNotFound)

		w := httptest.NewRecorder()
		r := asUser(httptest.NewRequest(http.MethodPost, "/messages",
			strings.NewReader(`{"recipientId":"ghost","text":"Hello?"}`)), "u1")

		handler.Send(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("blank text rejected", func(t *testing.T) {
		handler := NewHTTPHandler(NewService(new(mockRepo)))

		w := httptest.NewRecorder()
		r := asUser(httptest.NewRequest(http.MethodPost, "/messages",
			strings.NewReader(`{"recipientId":"u2","text":""}`)), "u1")

		handler.Send(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHTTPHandler_ListConversation(t *testing.T) {
	mRepo := new(mockRepo)
	handler := NewHTTPHandler(NewService(mRepo))

	mRepo.On("ListConversation", mock.Anything, "u1", "u2").Return([]Message{
		{ID: "m1", SenderID: "u1", RecipientID: "u2", Text: "Hi"},
		{ID: "m2", SenderID: "u2", RecipientID: "u1", Text: "Hello"},
	}, nil)

	w := httptest.NewRecorder()
	r := asUser(httptest.NewRequest(http.MethodGet, "/messages/u2", nil), "u1")
	r.SetPathValue("userID", "u2")

	handler.ListConversation(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":2`)
}
