package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"

	serr "github.com/aaronsummercloud/recipe-api-project/internal/shared/errors"
	"github.com/aaronsummercloud/recipe-api-project/internal/shared/models"
)

// NonFieldErrors — ключ для ошибок, не относящихся к конкретному полю.
const NonFieldErrors = "non_field_errors"

// ErrorResponse стандартный формат ошибки API.
type ErrorResponse = models.ErrorResponse

// WriteJSON пишет v в JSON с указанным статусом.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Вспомогательная функция вывода ошибки.
// Для ValidationError в ответ попадают ошибки по полям.
func WriteError(w http.ResponseWriter, status int, err error) {
	resp := ErrorResponse{Error: err.Error()}

	var verr *serr.ValidationError
	switch {
	case errors.As(err, &verr):
		resp.Error = serr.ErrInvalidInput.Error()
		resp.Fields = verr.Fields
	case errors.Is(err, serr.ErrInvalidCredentials):
		resp.Error = serr.ErrInvalidInput.Error()
		resp.Fields = map[string][]string{NonFieldErrors: {serr.ErrInvalidCredentials.Error()}}
	}

	WriteJSON(w, status, resp)
}

// writeServiceError маппит доменную ошибку в HTTP-ответ. Неизвестные ошибки логируются.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, serr.ErrInvalidInput),
		errors.Is(err, serr.ErrInvalidCredentials),
		errors.Is(err, serr.ErrBadJSON):
		WriteError(w, http.StatusBadRequest, err)
	case errors.Is(err, serr.ErrPayloadTooLarge):
		WriteError(w, http.StatusRequestEntityTooLarge, err)
	case errors.Is(err, serr.ErrUnauthorized):
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
	case errors.Is(err, serr.ErrForbidden):
		WriteError(w, http.StatusForbidden, serr.ErrForbidden)
	case errors.Is(err, serr.ErrNotFound):
		WriteError(w, http.StatusNotFound, serr.ErrNotFound)
	default:
		h.Log.Logger.Sugar().Errorw(
			op+" failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
		)
		WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
	}
}

// decodeJSON читает тело запроса в dst.
//
// Ошибки:
//   - ErrPayloadTooLarge если тело больше MaxBodyBytes
//   - *ValidationError если у поля неверный тип
//   - ErrBadJSON для прочих ошибок разбора
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBodyBytes)

	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return nil
	}

	var (
		maxErr  *http.MaxBytesError
		typeErr *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &maxErr):
		return serr.ErrPayloadTooLarge
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return serr.FieldError(typeErr.Field, typeMessage(typeErr))
	case errors.Is(err, io.EOF):
		// пустое тело: все поля не переданы
		return nil
	default:
		return fmt.Errorf("%w: %v", serr.ErrBadJSON, err)
	}
}

func typeMessage(e *json.UnmarshalTypeError) string {
	switch e.Type.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return serr.MsgInvalidInteger
	case reflect.Bool:
		return serr.MsgInvalidBoolean
	default:
		return serr.MsgInvalidString
	}
}
