package tests

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aaronsummercloud/recipe-api-project/internal/server/middleware"
	serr "github.com/aaronsummercloud/recipe-api-project/internal/shared/errors"
	"github.com/aaronsummercloud/recipe-api-project/internal/shared/models"
)

type fakeAuth struct {
	tokens map[string]int64
	err    error
}

func (f fakeAuth) Authenticate(_ context.Context, token string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	id, ok := f.tokens[token]
	if !ok {
		return 0, serr.ErrUnauthorized
	}
	return id, nil
}

func protected(t *testing.T, auth middleware.Authenticator, called *bool) http.Handler {
	return middleware.TokenAuth(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true

		uid, ok := middleware.UserIDFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, int64(7), uid)

		tok, ok := middleware.TokenFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, "good", tok)

		w.WriteHeader(http.StatusOK)
	}))
}

// Успех, обе схемы
func TestTokenAuth_OK(t *testing.T) {
	auth := fakeAuth{tokens: map[string]int64{"good": 7}}

	for _, scheme := range []string{"Bearer", "Token", "bearer"} {
		t.Run(scheme, func(t *testing.T) {
			called := false
			h := protected(t, auth, &called)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", scheme+" good")
			rr := httptest.NewRecorder()

			h.ServeHTTP(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			require.True(t, called)
		})
	}
}

// Нет токена
func TestTokenAuth_MissingToken(t *testing.T) {
	called := false
	h := protected(t, fakeAuth{}, &called)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
	require.False(t, called)

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.NotEmpty(t, body.Error)
}

// Неизвестный токен
func TestTokenAuth_InvalidToken(t *testing.T) {
	called := false
	h := protected(t, fakeAuth{tokens: map[string]int64{}}, &called)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.False(t, called)
}

// Ошибка хранилища — 500, а не 401
func TestTokenAuth_InternalError(t *testing.T) {
	called := false
	h := protected(t, fakeAuth{err: errors.New("db down")}, &called)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.False(t, called)
}

func TestExtractToken(t *testing.T) {
	cases := map[string]string{
		"":               "",
		"Bearer":         "",
		"Basic abc":      "",
		"Bearer abc":     "abc",
		"Token  abc ":    "abc",
		"  BEARER xyz  ": "xyz",
	}
	for in, want := range cases {
		require.Equal(t, want, middleware.ExtractToken(in), "header %q", in)
	}
}

func TestUserIDFromContext_Empty(t *testing.T) {
	_, ok := middleware.UserIDFromContext(context.Background())
	require.False(t, ok)

	ctx := middleware.ContextWithUserID(context.Background(), 3)
	id, ok := middleware.UserIDFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, int64(3), id)
}
