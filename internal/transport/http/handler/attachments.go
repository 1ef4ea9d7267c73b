package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-todo-nosql/internal/application/attachment"
)

// AttachmentHandler hands out upload URLs for a to-do's attachment.
type AttachmentHandler struct {
	svc         attachment.Service
	bindOnIssue bool
}

// NewAttachmentHandler builds the handler. With bindOnIssue set, issuing a
// URL also records the attachment URL on the item.
func NewAttachmentHandler(svc attachment.Service, bindOnIssue bool) *AttachmentHandler {
	return &AttachmentHandler{svc: svc, bindOnIssue: bindOnIssue}
}

func (h *AttachmentHandler) IssueUploadURL(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	issue := h.svc.IssueUploadURL
	if h.bindOnIssue {
		issue = h.svc.IssueUploadURLAndBind
	}
	uploadURL, err := issue(r.Context(), userID, chi.URLParam(r, "todoId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, UploadURLEnvelope{UploadURL: uploadURL})
}

func (h *AttachmentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	item, err := h.svc.ConfirmUpload(r.Context(), userID, chi.URLParam(r, "todoId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ItemEnvelope{Item: item})
}
