package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-todo-nosql/internal/domain"
	"github.com/go-todo-nosql/internal/transport/http/middleware"
)

// TodoRepository is the minimal interface the router requires from the item store.
type TodoRepository interface {
	Get(ctx context.Context, userID, todoID string) (*domain.TodoItem, error)
	ListByUser(ctx context.Context, userID string) ([]domain.TodoItem, error)
	// ScanAll reads the whole table. Only the admin route uses it.
	ScanAll(ctx context.Context) ([]domain.TodoItem, error)
	Put(ctx context.Context, t *domain.TodoItem) (*domain.TodoItem, error)
	Update(ctx context.Context, userID, todoID string, u domain.TodoUpdate) error
	SetAttachmentURL(ctx context.Context, userID, todoID, url string) error
	Delete(ctx context.Context, userID, todoID string) error
}

// ObjectStore is the minimal interface the router requires from the attachment bucket.
type ObjectStore interface {
	PresignPut(ctx context.Context, key string, ttl time.Duration) (string, error)
	ObjectURL(key string) string
	Exists(ctx context.Context, key string) (bool, error)
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	TodoRepo    TodoRepository
	Attachments ObjectStore
	Verifier    middleware.Verifier
	Logger      *slog.Logger
}
