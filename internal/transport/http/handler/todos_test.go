package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-todo-nosql/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mock ---

type mockTodoSvc struct{ mock.Mock }

func (m *mockTodoSvc) List(ctx context.Context, userID string) ([]domain.TodoItem, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]domain.TodoItem)
	return items, args.Error(1)
}

func (m *mockTodoSvc) Get(ctx context.Context, userID, todoID string) (*domain.TodoItem, error) {
	args := m.Called(ctx, userID, todoID)
	if t, _ := args.Get(0).(*domain.TodoItem); t != nil {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTodoSvc) Create(ctx context.Context, userID string, req domain.CreateTodoRequest) (*domain.TodoItem, error) {
	args := m.Called(ctx, userID, req)
	if t, _ := args.Get(0).(*domain.TodoItem); t != nil {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTodoSvc) Update(ctx context.Context, userID, todoID string, req domain.UpdateTodoRequest) error {
	return m.Called(ctx, userID, todoID, req).Error(0)
}

func (m *mockTodoSvc) Delete(ctx context.Context, userID, todoID string) error {
	return m.Called(ctx, userID, todoID).Error(0)
}

func milk() *domain.TodoItem {
	return &domain.TodoItem{UserID: "u1", TodoID: "t1", Name: "Buy milk", DueDate: "2024-01-01", CreatedAt: "2023-12-01T10:30:00.000Z"}
}

// --- List ---

func TestList_MissingClaims(t *testing.T) {
	svc := &mockTodoSvc{}
	rr := httptest.NewRecorder()
	NewTodoHandler(svc).List(rr, httptest.NewRequest(http.MethodGet, "/v1/todos", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestList_UsesCallerAndWrapsItems(t *testing.T) {
	svc := &mockTodoSvc{}
	svc.On("List", mock.Anything, "u1").Return([]domain.TodoItem{*milk()}, nil)
	rr := httptest.NewRecorder()
	NewTodoHandler(svc).List(rr, authedReq(http.MethodGet, "/v1/todos", "u1", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp ItemsEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Buy milk", resp.Items[0].Name)
	svc.AssertExpectations(t)
}

func TestList_EmptyIsArrayNotNull(t *testing.T) {
	svc := &mockTodoSvc{}
	svc.On("List", mock.Anything, "u1").Return([]domain.TodoItem{}, nil)
	rr := httptest.NewRecorder()
	NewTodoHandler(svc).List(rr, authedReq(http.MethodGet, "/v1/todos", "u1", nil))
	assert.JSONEq(t, `{"items":[]}`, rr.Body.String())
}

func TestList_StorageFailureIs500WithoutDetail(t *testing.T) {
	svc := &mockTodoSvc{}
	svc.On("List", mock.Anything, "u1").Return(nil, errors.New("query todos: AccessDeniedException"))
	rr := httptest.NewRecorder()
	NewTodoHandler(svc).List(rr, authedReq(http.MethodGet, "/v1/todos", "u1", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, decodeError(t, rr), "AccessDenied")
}

// --- Create ---

func TestCreate_InvalidBody(t *testing.T) {
	svc := &mockTodoSvc{}
	rr := httptest.NewRecorder()
	NewTodoHandler(svc).Create(rr, authedReq(http.MethodPost, "/v1/todos", "u1", []byte("not-json")))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreate_ValidationFailure(t *testing.T) {
	svc := &mockTodoSvc{}
	body := mustJSON(t, map[string]string{"name": "Buy milk", "dueDate": "01/01/2024"})
	rr := httptest.NewRecorder()
	NewTodoHandler(svc).Create(rr, authedReq(http.MethodPost, "/v1/todos", "u1", body))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, decodeError(t, rr), "dueDate")
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_HappyPath(t *testing.T) {
	svc := &mockTodoSvc{}
	req := domain.CreateTodoRequest{Name: "Buy milk", DueDate: "2024-01-01"}
	svc.On("Create", mock.Anything, "u1", req).Return(milk(), nil)
	rr := httptest.NewRecorder()
	NewTodoHandler(svc).Create(rr, authedReq(http.MethodPost, "/v1/todos", "u1", mustJSON(t, req)))

	assert.Equal(t, http.StatusCreated, rr.Code)
	var resp ItemEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.NotNil(t, resp.Item)
	assert.Equal(t, "t1", resp.Item.TodoID)
	assert.False(t, resp.Item.Done)
	assert.Nil(t, resp.Item.AttachmentURL)
	svc.AssertExpectations(t)
}

// --- Get ---

func TestGet_NotFound(t *testing.T) {
	svc := &mockTodoSvc{}
	svc.On("Get", mock.Anything, "u1", "nope").Return(nil, fmt.Errorf("todo nope: %w", domain.ErrNotFound))
	rr := httptest.NewRecorder()
	NewTodoHandler(svc).Get(rr, withTodoID(authedReq(http.MethodGet, "/v1/todos/nope", "u1", nil), "nope"))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGet_Found(t *testing.T) {
	svc := &mockTodoSvc{}
	svc.On("Get", mock.Anything, "u1", "t1").Return(milk(), nil)
	rr := httptest.NewRecorder()
	NewTodoHandler(svc).Get(rr, withTodoID(authedReq(http.MethodGet, "/v1/todos/t1", "u1", nil), "t1"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"item":{"userId":"u1","todoId":"t1","name":"Buy milk","dueDate":"2024-01-01","createdAt":"2023-12-01T10:30:00.000Z","done":false,"attachmentUrl":null}}`, rr.Body.String())
}

// --- Update ---

func TestUpdate_RequiresDone(t *testing.T) {
	svc := &mockTodoSvc{}
	body := mustJSON(t, map[string]string{"name": "Buy milk", "dueDate": "2024-01-01"})
	rr := httptest.NewRecorder()
	NewTodoHandler(svc).Update(rr, withTodoID(authedReq(http.MethodPatch, "/v1/todos/t1", "u1", body), "t1"))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, decodeError(t, rr), "done is required")
}

func TestUpdate_HappyPath(t *testing.T) {
	svc := &mockTodoSvc{}
	svc.On("Update", mock.Anything, "u1", "t1", mock.MatchedBy(func(r domain.UpdateTodoRequest) bool {
		return r.Name == "Buy milk" && r.DueDate == "2024-01-01" && r.Done != nil && *r.Done
	})).Return(nil)
	body := []byte(`{"name":"Buy milk","dueDate":"2024-01-01","done":true}`)
	rr := httptest.NewRecorder()
	NewTodoHandler(svc).Update(rr, withTodoID(authedReq(http.MethodPatch, "/v1/todos/t1", "u1", body), "t1"))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
	svc.AssertExpectations(t)
}

func TestUpdate_MissingItem(t *testing.T) {
	svc := &mockTodoSvc{}
	svc.On("Update", mock.Anything, "u1", "t9", mock.Anything).Return(domain.ErrNotFound)
	body := []byte(`{"name":"x","dueDate":"2024-01-01","done":false}`)
	rr := httptest.NewRecorder()
	NewTodoHandler(svc).Update(rr, withTodoID(authedReq(http.MethodPatch, "/v1/todos/t9", "u1", body), "t9"))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// --- Delete ---

func TestDelete_NoContent(t *testing.T) {
	svc := &mockTodoSvc{}
	svc.On("Delete", mock.Anything, "u1", "t1").Return(nil)
	rr := httptest.NewRecorder()
	NewTodoHandler(svc).Delete(rr, withTodoID(authedReq(http.MethodDelete, "/v1/todos/t1", "u1", nil), "t1"))
	assert.Equal(t, http.StatusNoContent, rr.Code)
	svc.AssertExpectations(t)
}

func TestDelete_BadRequestFromService(t *testing.T) {
	svc := &mockTodoSvc{}
	svc.On("Delete", mock.Anything, "u1", "").Return(fmt.Errorf("todoId is required: %w", domain.ErrBadRequest))
	rr := httptest.NewRecorder()
	NewTodoHandler(svc).Delete(rr, withTodoID(authedReq(http.MethodDelete, "/v1/todos/", "u1", nil), ""))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeError(t, rr), "todoId is required")
}
