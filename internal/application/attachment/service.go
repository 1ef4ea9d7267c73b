package attachment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-todo-nosql/internal/domain"
)

// Service issues upload capabilities for a to-do's attachment slot. The
// object key is the todoId.
type Service interface {
	// IssueUploadURL returns a presigned PUT URL and leaves the item untouched.
	IssueUploadURL(ctx context.Context, userID, todoID string) (string, error)
	// IssueUploadURLAndBind also records the public object URL on the item
	// before anything has been uploaded.
	IssueUploadURLAndBind(ctx context.Context, userID, todoID string) (string, error)
	// ConfirmUpload records the public object URL once the object exists.
	ConfirmUpload(ctx context.Context, userID, todoID string) (*domain.TodoItem, error)
}

type itemStore interface {
	Get(ctx context.Context, userID, todoID string) (*domain.TodoItem, error)
	SetAttachmentURL(ctx context.Context, userID, todoID, url string) error
}

type objectStore interface {
	PresignPut(ctx context.Context, key string, ttl time.Duration) (string, error)
	ObjectURL(key string) string
	Exists(ctx context.Context, key string) (bool, error)
}

type service struct {
	items      itemStore
	objects    objectStore
	expiration time.Duration
	logger     *slog.Logger
}

func NewService(items itemStore, objects objectStore, expiration time.Duration, logger *slog.Logger) Service {
	return &service{
		items:      items,
		objects:    objects,
		expiration: expiration,
		logger:     logger.With("component", "attachments"),
	}
}

func (s *service) IssueUploadURL(ctx context.Context, userID, todoID string) (string, error) {
	s.logger.InfoContext(ctx, "issuing upload url", "userId", userID, "todoId", todoID)
	return s.presign(ctx, userID, todoID)
}

func (s *service) IssueUploadURLAndBind(ctx context.Context, userID, todoID string) (string, error) {
	s.logger.InfoContext(ctx, "issuing upload url and binding attachment", "userId", userID, "todoId", todoID)
	uploadURL, err := s.presign(ctx, userID, todoID)
	if err != nil {
		return "", err
	}
	// Not atomic with the presign above, and the object may never be uploaded.
	if err := s.items.SetAttachmentURL(ctx, userID, todoID, s.objects.ObjectURL(todoID)); err != nil {
		return "", err
	}
	return uploadURL, nil
}

func (s *service) ConfirmUpload(ctx context.Context, userID, todoID string) (*domain.TodoItem, error) {
	if _, err := s.ownedItem(ctx, userID, todoID); err != nil {
		return nil, err
	}
	ok, err := s.objects.Exists(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("attachment for todo %s has not been uploaded: %w", todoID, domain.ErrNotFound)
	}
	s.logger.InfoContext(ctx, "binding uploaded attachment", "userId", userID, "todoId", todoID)
	if err := s.items.SetAttachmentURL(ctx, userID, todoID, s.objects.ObjectURL(todoID)); err != nil {
		return nil, err
	}
	return s.items.Get(ctx, userID, todoID)
}

// presign hands out an upload slot only for an item the caller owns; the
// key is the bare todoId, so without this check one user could overwrite
// another user's attachment.
func (s *service) presign(ctx context.Context, userID, todoID string) (string, error) {
	if _, err := s.ownedItem(ctx, userID, todoID); err != nil {
		return "", err
	}
	return s.objects.PresignPut(ctx, todoID, s.expiration)
}

func (s *service) ownedItem(ctx context.Context, userID, todoID string) (*domain.TodoItem, error) {
	if userID == "" || todoID == "" {
		return nil, fmt.Errorf("userId and todoId are required: %w", domain.ErrBadRequest)
	}
	return s.items.Get(ctx, userID, todoID)
}
