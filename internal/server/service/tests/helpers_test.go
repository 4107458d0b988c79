package tests

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/aaronsummercloud/recipe-api-project/internal/server/config"
	"github.com/aaronsummercloud/recipe-api-project/internal/server/crypto"
	"github.com/aaronsummercloud/recipe-api-project/internal/server/service"
	"github.com/aaronsummercloud/recipe-api-project/internal/server/service/mocks"
)

// лёгкие параметры argon2, чтобы тесты не тормозили
func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			Issuer:   "recipe-api",
			Audience: "recipe-admin",
			JWT: config.JWTConfig{
				Algorithm:  "HS256",
				SigningKey: "test-signing-key-test-signing-key-123",
			},
			Admin: config.AdminConfig{SessionTTL: time.Hour, CookieName: "admin_session"},
		},
		Password: config.PasswordConfig{
			Hasher:    "argon2id",
			MinLength: 5,
			Argon2:    config.Argon2Config{Time: 1, MemoryKiB: 1024, Threads: 1, KeyLen: 32, SaltLen: 16},
		},
		Cache: config.CacheConfig{TTL: 5 * time.Minute},
	}
}

func testHasher() crypto.PasswordHasher {
	a := testConfig().Password.Argon2
	return crypto.Argon2Hasher{Params: crypto.Argon2Params{
		Time:      a.Time,
		MemoryKiB: a.MemoryKiB,
		Threads:   a.Threads,
		KeyLen:    a.KeyLen,
		SaltLen:   a.SaltLen,
	}}
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := testHasher().Hash(password)
	require.NoError(t, err)
	return h
}

type authDeps struct {
	users  *mocks.MockUsersRepo
	tokens *mocks.MockTokensRepo
	cache  *mocks.MockTokenCache
}

func newAuth(t *testing.T, cfg *config.Config, withCache bool) (*service.AuthService, authDeps) {
	t.Helper()

	ctrl := gomock.NewController(t)
	d := authDeps{
		users:  mocks.NewMockUsersRepo(ctrl),
		tokens: mocks.NewMockTokensRepo(ctrl),
	}

	var cache service.TokenCache
	if withCache {
		d.cache = mocks.NewMockTokenCache(ctrl)
		cache = d.cache
	}

	return service.NewAuthService(d.users, d.tokens, cache, testHasher(), cfg), d
}
