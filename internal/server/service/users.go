package service

import (
	"context"
	"errors"

	"github.com/aaronsummercloud/recipe-api-project/internal/server/models"
	serr "github.com/aaronsummercloud/recipe-api-project/internal/shared/errors"
	"github.com/aaronsummercloud/recipe-api-project/internal/shared/utils"
)

// UsersService — профиль текущего пользователя и управление пользователями из админки.
type UsersService struct {
	users UsersRepo
	auth  *AuthService
}

func NewUsersService(users UsersRepo, auth *AuthService) *UsersService {
	return &UsersService{users: users, auth: auth}
}

// UserInput — изменяемые поля профиля. nil означает "поле не передано".
type UserInput struct {
	Email    *string
	Password *string
	Name     *string
}

// AdminUserInput — форма пользователя в админке.
// Password/Password2 при изменении необязательны: пустые значения оставляют пароль прежним.
type AdminUserInput struct {
	Email     string
	Password  string
	Password2 string
	Name      string

	IsActive    bool
	IsStaff     bool
	IsSuperuser bool
}

// Me возвращает текущего пользователя.
func (s *UsersService) Me(ctx context.Context, userID int64) (models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			// токен жив, а пользователя нет: считаем запрос неаутентифицированным
			return models.User{}, serr.ErrUnauthorized
		}
		return models.User{}, err
	}
	return u, nil
}

// UpdateMe обновляет профиль текущего пользователя.
//
// partial=false (PUT): email, password и name обязательны.
// partial=true (PATCH): меняются только переданные поля.
// Пароль при изменении хэшируется заново.
func (s *UsersService) UpdateMe(ctx context.Context, userID int64, in UserInput, partial bool) (models.User, error) {
	u, err := s.Me(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	verr := serr.NewValidationError()

	if in.Email != nil || !partial {
		email := utils.NormalizeEmail(requiredString(verr, "email", in.Email, maxCharLen))
		validateEmail(verr, email)
		u.Email = email
	}

	var newPassword string
	if in.Password != nil || !partial {
		newPassword = requiredString(verr, "password", in.Password, 0)
		validatePassword(verr, "password", newPassword, s.auth.MinPasswordLength())
	}

	if in.Name != nil || !partial {
		u.Name = requiredString(verr, "name", in.Name, maxCharLen)
	}

	if err := verr.OrNil(); err != nil {
		return models.User{}, err
	}

	if newPassword != "" {
		hash, err := s.auth.HashPassword(newPassword)
		if err != nil {
			return models.User{}, serr.ErrInternal
		}
		u.PasswordHash = hash
	}

	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, serr.ErrAlreadyExists) {
			return models.User{}, serr.FieldError("email", serr.MsgEmailTaken)
		}
		return models.User{}, err
	}
	return u, nil
}

// List — все пользователи по возрастанию id. Для админки.
func (s *UsersService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// Get — пользователь по id. Для админки.
func (s *UsersService) Get(ctx context.Context, id int64) (models.User, error) {
	return s.users.GetByID(ctx, id)
}

// CreateByAdmin создаёт пользователя из формы админки. Пароль нужно ввести дважды.
func (s *UsersService) CreateByAdmin(ctx context.Context, in AdminUserInput) (models.User, error) {
	if in.Password != in.Password2 {
		verr := serr.FieldError("password2", serr.MsgPasswordsDiffer)
		return models.User{}, verr
	}
	return s.auth.createUser(ctx, NewUser{
		Email:       &in.Email,
		Password:    &in.Password,
		Name:        &in.Name,
		IsActive:    in.IsActive,
		IsStaff:     in.IsStaff,
		IsSuperuser: in.IsSuperuser,
	}, false)
}

// UpdateByAdmin меняет пользователя из формы админки.
//
// При деактивации или смене пароля все токены пользователя отзываются.
func (s *UsersService) UpdateByAdmin(ctx context.Context, id int64, in AdminUserInput) (models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	verr := serr.NewValidationError()

	email := utils.NormalizeEmail(requiredString(verr, "email", &in.Email, maxCharLen))
	validateEmail(verr, email)

	name := optionalString(verr, "name", in.Name, maxCharLen)

	passwordChanged := in.Password != "" || in.Password2 != ""
	if passwordChanged {
		validatePassword(verr, "password", in.Password, s.auth.MinPasswordLength())
		if in.Password != in.Password2 {
			verr.Add("password2", serr.MsgPasswordsDiffer)
		}
	}

	if err := verr.OrNil(); err != nil {
		return models.User{}, err
	}

	wasActive := u.IsActive

	u.Email = email
	u.Name = name
	u.IsActive = in.IsActive
	u.IsStaff = in.IsStaff
	u.IsSuperuser = in.IsSuperuser

	if passwordChanged {
		hash, err := s.auth.HashPassword(in.Password)
		if err != nil {
			return models.User{}, serr.ErrInternal
		}
		u.PasswordHash = hash
	}

	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, serr.ErrAlreadyExists) {
			return models.User{}, serr.FieldError("email", serr.MsgEmailTaken)
		}
		return models.User{}, err
	}

	if passwordChanged || (wasActive && !u.IsActive) {
		if err := s.auth.RevokeAll(ctx, u.ID); err != nil {
			return models.User{}, err
		}
	}

	return u, nil
}
