package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/aaronsummercloud/recipe-api-project/internal/shared/models"
)

// writeJSONError пишет ошибку в том же формате, что и api-хендлеры.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: msg})
}
