// Package middleware содержит HTTP middleware сервера.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	serr "github.com/aaronsummercloud/recipe-api-project/internal/shared/errors"
)

// ctxKey используется как тип ключа для хранения значений в context.Context.
// Отдельный тип предотвращает коллизии ключей между пакетами.
type ctxKey string

const (
	// userIDKey — ID аутентифицированного пользователя.
	userIDKey ctxKey = "user_id"
	// tokenKey — предъявленный API-токен (нужен для logout).
	tokenKey ctxKey = "token"
)

// Authenticator проверяет API-токен и возвращает id его владельца.
// Реализуется service.AuthService.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (int64, error)
}

// UserIDFromContext извлекает userID аутентифицированного пользователя из контекста.
//
// Возвращает:
//   - userID
//   - false, если пользователь не аутентифицирован
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// TokenFromContext возвращает API-токен текущего запроса.
func TokenFromContext(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(tokenKey).(string)
	return t, ok && t != ""
}

// ContextWithUserID кладёт userID в контекст. Используется в тестах хендлеров.
func ContextWithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// TokenAuth возвращает middleware проверки API-токена.
//
// Middleware:
//   - ожидает заголовок Authorization: Bearer <token> (схема Token тоже принимается)
//   - проверяет токен через Authenticator
//   - сохраняет userID и токен в context.Context
//
// В случае ошибки возвращает 401 с заголовком WWW-Authenticate.
func TokenAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r.Header.Get("Authorization"))
			if token == "" {
				unauthorized(w, "Authentication credentials were not provided.")
				return
			}

			userID, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, serr.ErrUnauthorized) {
					unauthorized(w, "Invalid token.")
					return
				}
				writeJSONError(w, http.StatusInternalServerError, serr.ErrInternal.Error())
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeJSONError(w, http.StatusUnauthorized, msg)
}

// ExtractToken извлекает токен из заголовка Authorization.
//
// Ожидаемый формат:
//
//	Authorization: Bearer <token>
//	Authorization: Token <token>
//
// Возвращает пустую строку, если формат некорректен.
func ExtractToken(h string) string {
	h = strings.TrimSpace(h)
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") && !strings.EqualFold(parts[0], "Token") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
