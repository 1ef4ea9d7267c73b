package todo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-todo-nosql/internal/domain"
	"github.com/go-todo-nosql/internal/pkg/id"
)

// createdAtLayout is ISO-8601 with millisecond precision in UTC.
const createdAtLayout = "2006-01-02T15:04:05.000Z"

// Service is the user-facing to-do API. Every method is scoped by the caller's userID.
type Service interface {
	List(ctx context.Context, userID string) ([]domain.TodoItem, error)
	Get(ctx context.Context, userID, todoID string) (*domain.TodoItem, error)
	Create(ctx context.Context, userID string, req domain.CreateTodoRequest) (*domain.TodoItem, error)
	Update(ctx context.Context, userID, todoID string, req domain.UpdateTodoRequest) error
	Delete(ctx context.Context, userID, todoID string) error
}

// AdminService exposes the unscoped listing. It is not covered by the
// ownership guarantee and is only wired behind the admin role.
type AdminService interface {
	ListAll(ctx context.Context) ([]domain.TodoItem, error)
}

type todoStore interface {
	Get(ctx context.Context, userID, todoID string) (*domain.TodoItem, error)
	ListByUser(ctx context.Context, userID string) ([]domain.TodoItem, error)
	Put(ctx context.Context, t *domain.TodoItem) (*domain.TodoItem, error)
	Update(ctx context.Context, userID, todoID string, u domain.TodoUpdate) error
	Delete(ctx context.Context, userID, todoID string) error
}

type scanStore interface {
	ScanAll(ctx context.Context) ([]domain.TodoItem, error)
}

type service struct {
	repo   todoStore
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo todoStore, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With("component", "todos"),
		now:    time.Now,
	}
}

func (s *service) List(ctx context.Context, userID string) ([]domain.TodoItem, error) {
	if err := requireID("userId", userID); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "listing todos", "userId", userID)
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Get(ctx context.Context, userID, todoID string) (*domain.TodoItem, error) {
	if err := requireIDs(userID, todoID); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "getting todo", "userId", userID, "todoId", todoID)
	return s.repo.Get(ctx, userID, todoID)
}

func (s *service) Create(ctx context.Context, userID string, req domain.CreateTodoRequest) (*domain.TodoItem, error) {
	if err := requireID("userId", userID); err != nil {
		return nil, err
	}
	t := &domain.TodoItem{
		UserID:    userID,
		TodoID:    id.New(),
		Name:      req.Name,
		DueDate:   req.DueDate,
		CreatedAt: s.now().UTC().Format(createdAtLayout),
		Done:      false,
	}
	s.logger.InfoContext(ctx, "creating todo", "userId", userID, "todoId", t.TodoID)
	return s.repo.Put(ctx, t)
}

func (s *service) Update(ctx context.Context, userID, todoID string, req domain.UpdateTodoRequest) error {
	if err := requireIDs(userID, todoID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "updating todo", "userId", userID, "todoId", todoID)
	return s.repo.Update(ctx, userID, todoID, req.Update())
}

func (s *service) Delete(ctx context.Context, userID, todoID string) error {
	if err := requireIDs(userID, todoID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "deleting todo", "userId", userID, "todoId", todoID)
	return s.repo.Delete(ctx, userID, todoID)
}

type adminService struct {
	repo   scanStore
	logger *slog.Logger
}

func NewAdminService(repo scanStore, logger *slog.Logger) AdminService {
	return &adminService{repo: repo, logger: logger.With("component", "todos-admin")}
}

func (s *adminService) ListAll(ctx context.Context) ([]domain.TodoItem, error) {
	s.logger.WarnContext(ctx, "unscoped scan of all todos")
	return s.repo.ScanAll(ctx)
}

func requireID(field, v string) error {
	if v == "" {
		return fmt.Errorf("%s is required: %w", field, domain.ErrBadRequest)
	}
	return nil
}

func requireIDs(userID, todoID string) error {
	if err := requireID("userId", userID); err != nil {
		return err
	}
	return requireID("todoId", todoID)
}
