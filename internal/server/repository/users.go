// Package repository содержит реализации слоя доступа к данным (Repository layer).
//
// Репозитории инкапсулируют работу с БД и не содержат бизнес-логики.
// Все ошибки приводятся к доменным ошибкам из internal/shared/errors.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgconn"

	"github.com/aaronsummercloud/recipe-api-project/internal/server/models"
	serr "github.com/aaronsummercloud/recipe-api-project/internal/shared/errors"
)

const userColumns = `id, email, password_hash, name, is_active, is_staff, is_superuser, last_login, date_joined`

type UsersRepository struct {
	db *sql.DB
}

func NewUsersRepository(db *sql.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

// Create сохраняет пользователя и возвращает его id.
//
// Ошибки:
//   - ErrAlreadyExists если email занят
//   - ErrInternal при других ошибках БД
func (r *UsersRepository) Create(ctx context.Context, u models.User) (int64, error) {
	var id int64

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (email, password_hash, name, is_active, is_staff, is_superuser)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 RETURNING id`,
		u.Email, u.PasswordHash, u.Name, u.IsActive, u.IsStaff, u.IsSuperuser,
	).Scan(&id)

	if err != nil {
		if isUniqueViolation(err) {
			return 0, serr.ErrAlreadyExists
		}
		return 0, serr.ErrInternal
	}

	return id, nil
}

func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email=$1`,
		email,
	)
	return scanUser(row)
}

func (r *UsersRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=$1`,
		id,
	)
	return scanUser(row)
}

// List возвращает всех пользователей, упорядоченных по id.
func (r *UsersRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id`,
	)
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.ErrInternal
	}
	return users, nil
}

// Update перезаписывает изменяемые поля пользователя.
func (r *UsersRepository) Update(ctx context.Context, u models.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users
		    SET email=$2, password_hash=$3, name=$4,
		        is_active=$5, is_staff=$6, is_superuser=$7
		  WHERE id=$1`,
		u.ID, u.Email, u.PasswordHash, u.Name, u.IsActive, u.IsStaff, u.IsSuperuser,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return serr.ErrAlreadyExists
		}
		return serr.ErrInternal
	}
	return expectAffected(res)
}

// TouchLastLogin проставляет время последнего входа.
func (r *UsersRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET last_login=$2 WHERE id=$1`,
		id, at,
	)
	if err != nil {
		return serr.ErrInternal
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		u         models.User
		lastLogin sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name,
		&u.IsActive, &u.IsStaff, &u.IsSuperuser,
		&lastLogin, &u.DateJoined,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, serr.ErrNotFound
		}
		return models.User{}, serr.ErrInternal
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLogin = &t
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" // unique_violation
}

// expectAffected возвращает ErrNotFound, если запрос не затронул ни одной строки.
func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return serr.ErrInternal
	}
	if n == 0 {
		return serr.ErrNotFound
	}
	return nil
}
