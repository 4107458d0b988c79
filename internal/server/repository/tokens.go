package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aaronsummercloud/recipe-api-project/internal/server/models"
	serr "github.com/aaronsummercloud/recipe-api-project/internal/shared/errors"
)

// TokensRepository хранит API-токены пользователей.
//
// Используется для:
//   - хранения токенов (в виде sha256 хэшей)
//   - проверки токена на каждом запросе
//   - logout (удаление токена) и чистки старых/просроченных токенов
type TokensRepository struct {
	db *sql.DB
}

// NewTokensRepository создает новый TokensRepository.
func NewTokensRepository(db *sql.DB) *TokensRepository {
	return &TokensRepository{db: db}
}

// Create сохраняет хэш нового токена. expiresAt == nil — токен бессрочный.
func (r *TokensRepository) Create(ctx context.Context, userID int64, keyHash []byte, expiresAt *time.Time) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO tokens (user_id, key_hash, expires_at)
		 VALUES ($1,$2,$3)
		 RETURNING id`,
		userID, keyHash, expiresAt,
	).Scan(&id)

	if err != nil {
		if isUniqueViolation(err) {
			return 0, serr.ErrAlreadyExists
		}
		return 0, serr.ErrInternal
	}
	return id, nil
}

// GetByHash возвращает токен вместе с флагом активности владельца.
//
// Ошибки:
//   - ErrUnauthorized если токен не найден или ErrInternal при ошибке БД
func (r *TokensRepository) GetByHash(ctx context.Context, keyHash []byte) (models.Token, error) {
	var (
		t         models.Token
		expiresAt sql.NullTime
	)

	err := r.db.QueryRowContext(ctx,
		`SELECT t.id, t.user_id, t.expires_at, u.is_active
		   FROM tokens t
		   JOIN users u ON u.id = t.user_id
		  WHERE t.key_hash=$1`,
		keyHash,
	).Scan(&t.ID, &t.UserID, &expiresAt, &t.UserActive)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Token{}, serr.ErrUnauthorized
		}
		return models.Token{}, serr.ErrInternal
	}

	if expiresAt.Valid {
		e := expiresAt.Time
		t.ExpiresAt = &e
	}
	return t, nil
}

// DeleteByHash удаляет один токен (logout).
func (r *TokensRepository) DeleteByHash(ctx context.Context, keyHash []byte) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tokens WHERE key_hash=$1`, keyHash)
	if err != nil {
		return serr.ErrInternal
	}
	return nil
}

// DeleteAllForUser удаляет все токены пользователя.
//
// Используется при смене пароля и деактивации.
func (r *TokensRepository) DeleteAllForUser(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tokens WHERE user_id=$1`, userID)
	if err != nil {
		return serr.ErrInternal
	}
	return nil
}

// PruneForUser оставляет только keep самых новых токенов пользователя
// и возвращает число удалённых.
func (r *TokensRepository) PruneForUser(ctx context.Context, userID int64, keep int) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM tokens
		  WHERE user_id = $1
		    AND id NOT IN (
		        SELECT id FROM tokens
		         WHERE user_id = $1
		         ORDER BY id DESC
		         LIMIT $2
		    )`,
		userID, keep,
	)
	if err != nil {
		return 0, serr.ErrInternal
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, serr.ErrInternal
	}
	return n, nil
}

// DeleteExpired удаляет просроченные токены и возвращает их количество.
func (r *TokensRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM tokens WHERE expires_at IS NOT NULL AND expires_at <= $1`,
		now,
	)
	if err != nil {
		return 0, serr.ErrInternal
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, serr.ErrInternal
	}
	return n, nil
}
