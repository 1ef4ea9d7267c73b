package handler

import (
	"net/http"

	"github.com/go-todo-nosql/internal/application/todo"
)

type AdminHandler struct {
	svc todo.AdminService
}

func NewAdminHandler(svc todo.AdminService) *AdminHandler { return &AdminHandler{svc: svc} }

func (h *AdminHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ItemsEnvelope{Items: items})
}
