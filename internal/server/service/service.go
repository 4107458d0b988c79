// Package service содержит бизнес-логику приложения.
// Это прослойка между HTTP-обработчиками (api, admin) и хранилищем данных (repository).
package service

import (
	"context"
	"time"

	"github.com/aaronsummercloud/recipe-api-project/internal/server/config"
	"github.com/aaronsummercloud/recipe-api-project/internal/server/crypto"
	"github.com/aaronsummercloud/recipe-api-project/internal/server/models"
)

//go:generate mockgen -destination=mocks/mocks.go -package=mocks . UsersRepo,TokensRepo,RecipesRepo,TokenCache,HealthRepo

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users   UsersRepo
	Tokens  TokensRepo
	Recipes RecipesRepo
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Auth    *AuthService
	Users   *UsersService
	Recipes *RecipesService
}

// NewServices собирает все сервисы приложения.
// cache может быть nil — тогда токены всегда проверяются по БД.
func NewServices(repos Repositories, cache TokenCache, cfg *config.Config) (*Services, error) {
	hasher, err := crypto.NewPasswordHasher(
		cfg.Password.Hasher,
		crypto.Argon2Params{
			Time:      cfg.Password.Argon2.Time,
			MemoryKiB: cfg.Password.Argon2.MemoryKiB,
			Threads:   cfg.Password.Argon2.Threads,
			KeyLen:    cfg.Password.Argon2.KeyLen,
			SaltLen:   cfg.Password.Argon2.SaltLen,
		},
		cfg.Password.Bcrypt.Cost,
	)
	if err != nil {
		return nil, err
	}

	auth := NewAuthService(repos.Users, repos.Tokens, cache, hasher, cfg)
	return &Services{
		Auth:    auth,
		Users:   NewUsersService(repos.Users, auth),
		Recipes: NewRecipesService(repos.Recipes),
	}, nil
}

// HealthRepo — минимально нужное для health-check.
type HealthRepo interface {
	Ping(ctx context.Context) error
}

// UsersRepo — репозиторий пользователей.
type UsersRepo interface {
	Create(ctx context.Context, u models.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, u models.User) error
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
}

// TokensRepo — репозиторий API-токенов (хранятся только хэши).
type TokensRepo interface {
	Create(ctx context.Context, userID int64, keyHash []byte, expiresAt *time.Time) (int64, error)
	GetByHash(ctx context.Context, keyHash []byte) (models.Token, error)
	DeleteByHash(ctx context.Context, keyHash []byte) error
	DeleteAllForUser(ctx context.Context, userID int64) error
	PruneForUser(ctx context.Context, userID int64, keep int) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// RecipesRepo — репозиторий рецептов. Все методы ограничены владельцем.
type RecipesRepo interface {
	Create(ctx context.Context, r models.Recipe) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Recipe, error)
	GetByID(ctx context.Context, userID, id int64) (models.Recipe, error)
	Update(ctx context.Context, r models.Recipe) error
	Delete(ctx context.Context, userID, id int64) error
}

// TokenCache — кэш "хэш токена -> userID" перед таблицей tokens.
type TokenCache interface {
	Get(ctx context.Context, key string) (userID int64, ok bool, err error)
	Set(ctx context.Context, key string, userID int64, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteUser(ctx context.Context, userID int64) error
}
