package api

import (
	"net/http"

	serr "github.com/aaronsummercloud/recipe-api-project/internal/shared/errors"
)

// NotFound — JSON 404 для неизвестных путей.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusNotFound, serr.ErrNotFound)
}

// MethodNotAllowed — JSON 405. Allow выставляет chi.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
		Error: `Method "` + r.Method + `" not allowed.`,
	})
}
