package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-todo-nosql/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAdminSvc struct{ mock.Mock }

func (m *mockAdminSvc) ListAll(ctx context.Context) ([]domain.TodoItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]domain.TodoItem)
	return items, args.Error(1)
}

func TestAdminListAll(t *testing.T) {
	svc := &mockAdminSvc{}
	svc.On("ListAll", mock.Anything).Return([]domain.TodoItem{{UserID: "u1", TodoID: "t1"}, {UserID: "u2", TodoID: "t2"}}, nil)
	rr := httptest.NewRecorder()
	NewAdminHandler(svc).ListAll(rr, httptest.NewRequest(http.MethodGet, "/v1/admin/todos", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp ItemsEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Len(t, resp.Items, 2)
}

func TestHealthPing(t *testing.T) {
	h := NewHealthHandler()

	rr := httptest.NewRecorder()
	h.Ping(rr, withParam(httptest.NewRequest(http.MethodGet, "/v1/health-check/ping", nil), "action", "ping"))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"pong"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	h.Ping(rr, withParam(httptest.NewRequest(http.MethodGet, "/v1/health-check/nope", nil), "action", "nope"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
