package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-todo-nosql/internal/application/attachment"
	"github.com/go-todo-nosql/internal/application/todo"
	"github.com/go-todo-nosql/internal/config"
	"github.com/go-todo-nosql/internal/domain"
	"github.com/go-todo-nosql/internal/transport/http/handler"
	appmiddleware "github.com/go-todo-nosql/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router. ctx bounds background
// work owned by the router, such as rate-limiter cleanup.
func NewRouter(ctx context.Context, cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	uploadRL := appmiddleware.NewRateLimiter(ctx, rate.Limit(cfg.UploadURLRate), cfg.UploadURLBurst)

	todoSvc := todo.NewService(deps.TodoRepo, deps.Logger)
	adminSvc := todo.NewAdminService(deps.TodoRepo, deps.Logger)
	attachmentSvc := attachment.NewService(deps.TodoRepo, deps.Attachments, cfg.SignedURLExpiration, deps.Logger)

	healthH := handler.NewHealthHandler()
	todoH := handler.NewTodoHandler(todoSvc)
	attachmentH := handler.NewAttachmentHandler(attachmentSvc, cfg.BindOnIssue)
	adminH := handler.NewAdminHandler(adminSvc)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)

		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Auth(deps.Verifier))

			r.Get("/todos", todoH.List)
			r.Post("/todos", todoH.Create)
			r.Get("/todos/{todoId}", todoH.Get)
			r.Patch("/todos/{todoId}", todoH.Update)
			r.Delete("/todos/{todoId}", todoH.Delete)
			r.With(uploadRL.Limit).Post("/todos/{todoId}/attachment", attachmentH.IssueUploadURL)
			r.Post("/todos/{todoId}/attachment/confirm", attachmentH.Confirm)

			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))
				r.Get("/admin/todos", adminH.ListAll)
			})
		})
	})

	return r
}
