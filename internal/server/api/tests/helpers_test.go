package tests

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/aaronsummercloud/recipe-api-project/internal/server/api"
	"github.com/aaronsummercloud/recipe-api-project/internal/server/config"
	"github.com/aaronsummercloud/recipe-api-project/internal/server/crypto"
	"github.com/aaronsummercloud/recipe-api-project/internal/server/middleware"
	"github.com/aaronsummercloud/recipe-api-project/internal/server/service"
	svcmocks "github.com/aaronsummercloud/recipe-api-project/internal/server/service/mocks"
	"github.com/aaronsummercloud/recipe-api-project/internal/shared/logger"
)

type repos struct {
	users   *svcmocks.MockUsersRepo
	tokens  *svcmocks.MockTokensRepo
	recipes *svcmocks.MockRecipesRepo
}

var argon2Test = crypto.Argon2Params{Time: 1, MemoryKiB: 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			Issuer:   "recipe-api",
			Audience: "recipe-admin",
			JWT: config.JWTConfig{
				Algorithm:  "HS256",
				SigningKey: "supersecretkeysupersecretkey123456", // >= 32
			},
			Admin: config.AdminConfig{SessionTTL: time.Hour, CookieName: "admin_session"},
		},
		Password: config.PasswordConfig{
			Hasher:    "argon2id",
			MinLength: 5,
			Argon2: config.Argon2Config{
				Time:      argon2Test.Time,
				MemoryKiB: argon2Test.MemoryKiB,
				Threads:   argon2Test.Threads,
				KeyLen:    argon2Test.KeyLen,
				SaltLen:   argon2Test.SaltLen,
			},
		},
	}
}

// NewTestHandler создаёт Handler с моками репозиториев и настоящими сервисами
func NewTestHandler(t *testing.T) (*api.Handler, repos) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	r := repos{
		users:   svcmocks.NewMockUsersRepo(ctrl),
		tokens:  svcmocks.NewMockTokensRepo(ctrl),
		recipes: svcmocks.NewMockRecipesRepo(ctrl),
	}

	svc, err := service.NewServices(service.Repositories{
		Users:   r.users,
		Tokens:  r.tokens,
		Recipes: r.recipes,
	}, nil, testConfig())
	if err != nil {
		t.Fatalf("NewServices: %v", err)
	}

	return api.NewHandler(svc, logger.NewNop(), nil, 0), r
}

// asUser кладёт в запрос контекст аутентифицированного пользователя
func asUser(req *http.Request, userID int64) *http.Request {
	return req.WithContext(middleware.ContextWithUserID(req.Context(), userID))
}

// withID добавляет chi URL-параметр id
func withID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := crypto.HashPassword(password, argon2Test)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	return h
}
