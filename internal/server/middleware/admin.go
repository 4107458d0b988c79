package middleware

import (
	"context"
	"net/http"

	"github.com/aaronsummercloud/recipe-api-project/internal/server/models"
)

const staffKey ctxKey = "staff"

// SessionVerifier проверяет cookie сессии админки.
type SessionVerifier interface {
	VerifySession(ctx context.Context, session string) (models.User, error)
}

// StaffFromContext возвращает пользователя, вошедшего в админку.
func StaffFromContext(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(staffKey).(models.User)
	return u, ok
}

// ContextWithStaff кладёт пользователя админки в контекст.
func ContextWithStaff(ctx context.Context, u models.User) context.Context {
	return context.WithValue(ctx, staffKey, u)
}

// AdminSession пускает в админку только активных staff-пользователей.
// Без сессии — редирект на страницу входа с ?next=.
func AdminSession(v SessionVerifier, cookieName, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(cookieName)
			if err != nil || c.Value == "" {
				redirectToLogin(w, r, loginPath)
				return
			}

			u, err := v.VerifySession(r.Context(), c.Value)
			if err != nil {
				redirectToLogin(w, r, loginPath)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithStaff(r.Context(), u)))
		})
	}
}

func redirectToLogin(w http.ResponseWriter, r *http.Request, loginPath string) {
	target := loginPath + "?next=" + r.URL.EscapedPath()
	http.Redirect(w, r, target, http.StatusFound)
}
