package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aaronsummercloud/recipe-api-project/internal/server/config"
	"github.com/aaronsummercloud/recipe-api-project/internal/server/crypto"
	"github.com/aaronsummercloud/recipe-api-project/internal/server/models"
	serr "github.com/aaronsummercloud/recipe-api-project/internal/shared/errors"
	"github.com/aaronsummercloud/recipe-api-project/internal/shared/utils"
)

// AuthService реализует бизнес-логику аутентификации.
//
// Ответственность:
//   - регистрация пользователей и создание суперпользователей
//   - выдача API-токенов по email/паролю
//   - проверка токенов (с кэшем, если он настроен)
//   - logout и отзыв токенов
//   - вход в админку (сессия в JWT)
type AuthService struct {
	users  UsersRepo
	tokens TokensRepo
	cache  TokenCache

	hasher      crypto.PasswordHasher
	minPassword int

	tokenTTL  time.Duration
	maxTokens int
	cacheTTL  time.Duration
	session   crypto.JWTConfig

	now func() time.Time
}

// NewAuthService создаёт AuthService с зависимостями и настройками из конфига.
func NewAuthService(users UsersRepo, tokens TokensRepo, cache TokenCache, hasher crypto.PasswordHasher, cfg *config.Config) *AuthService {
	minPassword := cfg.Password.MinLength
	if minPassword <= 0 {
		minPassword = 5
	}
	return &AuthService{
		users:  users,
		tokens: tokens,
		cache:  cache,

		hasher:      hasher,
		minPassword: minPassword,

		tokenTTL:  cfg.Auth.TokenTTL,
		maxTokens: cfg.Auth.MaxTokensPerUser,
		cacheTTL:  cfg.Cache.TTL,
		session: crypto.JWTConfig{
			Issuer:     cfg.Auth.Issuer,
			Audience:   cfg.Auth.Audience,
			SigningKey: cfg.Auth.JWT.SigningKey,
			TTL:        cfg.Auth.Admin.SessionTTL,
		},

		now: time.Now,
	}
}

// SetClock подменяет источник времени. Для тестов.
func (s *AuthService) SetClock(now func() time.Time) {
	s.now = now
}

// NewUser — данные для создания пользователя.
type NewUser struct {
	Email    *string
	Password *string
	Name     *string

	IsActive    bool
	IsStaff     bool
	IsSuperuser bool
}

// Register регистрирует нового пользователя.
//
// Валидация:
//   - email обязателен и должен быть валидным, доменная часть приводится к нижнему регистру
//   - пароль обязателен и длиной >= password.min_length
//   - name обязателен
//
// Ошибки:
//   - *ValidationError (ErrInvalidInput), в том числе если email уже занят
func (s *AuthService) Register(ctx context.Context, email, password, name string) (models.User, error) {
	return s.createUser(ctx, NewUser{
		Email:    &email,
		Password: &password,
		Name:     &name,
		IsActive: true,
	}, true)
}

// CreateSuperuser создаёт пользователя с правами staff и superuser. Имя необязательно.
func (s *AuthService) CreateSuperuser(ctx context.Context, email, password, name string) (models.User, error) {
	return s.createUser(ctx, NewUser{
		Email:       &email,
		Password:    &password,
		Name:        &name,
		IsActive:    true,
		IsStaff:     true,
		IsSuperuser: true,
	}, false)
}

func (s *AuthService) createUser(ctx context.Context, in NewUser, nameRequired bool) (models.User, error) {
	verr := serr.NewValidationError()

	email := utils.NormalizeEmail(requiredString(verr, "email", in.Email, maxCharLen))
	validateEmail(verr, email)

	password := requiredString(verr, "password", in.Password, 0)
	validatePassword(verr, "password", password, s.minPassword)

	var name string
	if nameRequired {
		name = requiredString(verr, "name", in.Name, maxCharLen)
	} else {
		name = optionalString(verr, "name", utils.Deref(in.Name), maxCharLen)
	}

	if err := verr.OrNil(); err != nil {
		return models.User{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, serr.ErrInternal
	}

	u := models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		IsActive:     in.IsActive,
		IsStaff:      in.IsStaff,
		IsSuperuser:  in.IsSuperuser,
		DateJoined:   s.now(),
	}

	id, err := s.users.Create(ctx, u)
	if err != nil {
		if errors.Is(err, serr.ErrAlreadyExists) {
			return models.User{}, serr.FieldError("email", serr.MsgEmailTaken)
		}
		return models.User{}, err
	}
	u.ID = id
	return u, nil
}

// checkCredentials проверяет email/пароль. Не раскрывает факт существования email.
func (s *AuthService) checkCredentials(ctx context.Context, email, password string) (models.User, error) {
	verr := serr.NewValidationError()
	email = utils.NormalizeEmail(requiredString(verr, "email", &email, 0))
	// пароль сравнивается как есть, пробелы по краям значимы
	if password == "" {
		verr.Add("password", serr.MsgBlank)
	}
	if err := verr.OrNil(); err != nil {
		return models.User{}, err
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return models.User{}, serr.ErrInvalidCredentials
		}
		return models.User{}, err
	}

	ok, err := s.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		return models.User{}, serr.ErrInternal
	}
	if !ok || !u.IsActive {
		return models.User{}, serr.ErrInvalidCredentials
	}
	return u, nil
}

// ObtainToken проверяет учётные данные и выдаёт новый API-токен.
//
// Поведение:
//   - на каждый вход выпускается новый токен, в БД хранится только его хэш
//   - если задан max_tokens_per_user, старые токены сверх лимита удаляются,
//     а записи кэша пользователя сбрасываются
//   - обновляется last_login
//
// Ошибки:
//   - *ValidationError при пустых полях
//   - ErrInvalidCredentials при неверной паре email/пароль или неактивном пользователе
func (s *AuthService) ObtainToken(ctx context.Context, email, password string) (string, error) {
	u, err := s.checkCredentials(ctx, email, password)
	if err != nil {
		return "", err
	}

	token, err := crypto.NewAPIToken()
	if err != nil {
		return "", serr.ErrInternal
	}

	now := s.now()
	var expiresAt *time.Time
	if s.tokenTTL > 0 {
		e := now.Add(s.tokenTTL)
		expiresAt = &e
	}

	if _, err := s.tokens.Create(ctx, u.ID, crypto.HashAPIToken(token), expiresAt); err != nil {
		return "", err
	}

	if s.maxTokens > 0 {
		pruned, err := s.tokens.PruneForUser(ctx, u.ID, s.maxTokens)
		if err != nil {
			return "", err
		}
		// ключи кэша строятся от самого токена, поэтому удалённые
		// сбрасываем вместе со всеми записями пользователя
		if pruned > 0 && s.cache != nil {
			_ = s.cache.DeleteUser(ctx, u.ID)
		}
	}

	if err := s.users.TouchLastLogin(ctx, u.ID, now); err != nil {
		return "", err
	}

	return token, nil
}

// Authenticate возвращает id владельца токена.
//
// Сначала смотрим в кэш, при промахе идём в БД. Ошибки кэша не фатальны.
//
// Ошибки:
//   - ErrUnauthorized если токен не найден, истёк или пользователь неактивен
func (s *AuthService) Authenticate(ctx context.Context, token string) (int64, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, serr.ErrUnauthorized
	}

	key := crypto.TokenCacheKey(token)
	if s.cache != nil {
		if userID, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			return userID, nil
		}
	}

	t, err := s.tokens.GetByHash(ctx, crypto.HashAPIToken(token))
	if err != nil {
		return 0, err
	}

	now := s.now()
	if t.Expired(now) {
		// просроченный токен больше не нужен
		_ = s.tokens.DeleteByHash(ctx, crypto.HashAPIToken(token))
		return 0, serr.ErrUnauthorized
	}
	if !t.UserActive {
		return 0, serr.ErrUnauthorized
	}

	if s.cache != nil && s.cacheTTL > 0 {
		ttl := s.cacheTTL
		if t.ExpiresAt != nil {
			if left := t.ExpiresAt.Sub(now); left < ttl {
				ttl = left
			}
		}
		_ = s.cache.Set(ctx, key, t.UserID, ttl)
	}

	return t.UserID, nil
}

// Logout отзывает предъявленный токен.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return serr.ErrUnauthorized
	}
	if err := s.tokens.DeleteByHash(ctx, crypto.HashAPIToken(token)); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, crypto.TokenCacheKey(token))
	}
	return nil
}

// RevokeAll отзывает все токены пользователя (деактивация, сброс пароля в админке).
func (s *AuthService) RevokeAll(ctx context.Context, userID int64) error {
	if err := s.tokens.DeleteAllForUser(ctx, userID); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.DeleteUser(ctx, userID)
	}
	return nil
}

// PurgeExpired удаляет просроченные токены. Вызывается периодически из сервера.
func (s *AuthService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.tokens.DeleteExpired(ctx, s.now())
}

// LoginStaff проверяет учётные данные для входа в админку и выдаёт JWT сессии.
//
// Ошибки:
//   - *ValidationError / ErrInvalidCredentials как у ObtainToken
//   - ErrForbidden если пользователь не staff
func (s *AuthService) LoginStaff(ctx context.Context, email, password string) (string, error) {
	u, err := s.checkCredentials(ctx, email, password)
	if err != nil {
		return "", err
	}
	if !u.IsStaff {
		return "", serr.ErrForbidden
	}
	if err := s.users.TouchLastLogin(ctx, u.ID, s.now()); err != nil {
		return "", err
	}

	session, err := crypto.NewSessionToken(u.ID, s.session)
	if err != nil {
		return "", serr.ErrInternal
	}
	return session, nil
}

// VerifySession проверяет JWT сессии админки и возвращает пользователя.
// Пользователь должен оставаться активным staff.
func (s *AuthService) VerifySession(ctx context.Context, session string) (models.User, error) {
	id, err := crypto.ParseSessionToken(session, s.session)
	if err != nil {
		return models.User{}, serr.ErrUnauthorized
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return models.User{}, serr.ErrUnauthorized
		}
		return models.User{}, err
	}
	if !u.IsActive || !u.IsStaff {
		return models.User{}, serr.ErrUnauthorized
	}
	return u, nil
}

// HashPassword хэширует пароль настроенным хэшером.
func (s *AuthService) HashPassword(password string) (string, error) {
	return s.hasher.Hash(password)
}

// MinPasswordLength — минимальная длина пароля.
func (s *AuthService) MinPasswordLength() int {
	return s.minPassword
}
