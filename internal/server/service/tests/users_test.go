package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/aaronsummercloud/recipe-api-project/internal/server/crypto"
	"github.com/aaronsummercloud/recipe-api-project/internal/server/models"
	"github.com/aaronsummercloud/recipe-api-project/internal/server/service"
	serr "github.com/aaronsummercloud/recipe-api-project/internal/shared/errors"
	"github.com/aaronsummercloud/recipe-api-project/internal/shared/utils"
)

func newUsers(t *testing.T) (*service.UsersService, authDeps) {
	t.Helper()
	auth, d := newAuth(t, testConfig(), false)
	return service.NewUsersService(d.users, auth), d
}

func existingUser() models.User {
	return models.User{ID: 1, Email: "test@example.com", Name: "Old", PasswordHash: "old-hash", IsActive: true}
}

func TestUsersService_Me(t *testing.T) {
	ctx := context.Background()
	svc, d := newUsers(t)

	d.users.EXPECT().GetByID(ctx, int64(1)).Return(existingUser(), nil)
	u, err := svc.Me(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "test@example.com", u.Email)

	// пользователя удалили, а токен ещё жив
	d.users.EXPECT().GetByID(ctx, int64(2)).Return(models.User{}, serr.ErrNotFound)
	_, err = svc.Me(ctx, 2)
	require.ErrorIs(t, err, serr.ErrUnauthorized)
}

// PATCH: меняем имя и пароль, email остаётся прежним
func TestUsersService_UpdateMe_Partial(t *testing.T) {
	ctx := context.Background()
	svc, d := newUsers(t)

	d.users.EXPECT().GetByID(ctx, int64(1)).Return(existingUser(), nil)
	d.users.EXPECT().
		Update(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.User) error {
			require.Equal(t, "test@example.com", u.Email)
			require.Equal(t, "Updated name", u.Name)
			ok, err := crypto.VerifyPassword("newpassword123", u.PasswordHash)
			require.NoError(t, err)
			require.True(t, ok)
			return nil
		})

	u, err := svc.UpdateMe(ctx, 1, service.UserInput{
		Name:     utils.StrPtr("Updated name"),
		Password: utils.StrPtr("newpassword123"),
	}, true)
	require.NoError(t, err)
	require.Equal(t, "Updated name", u.Name)
}

// PUT без обязательных полей
func TestUsersService_UpdateMe_FullRequiresAllFields(t *testing.T) {
	ctx := context.Background()
	svc, d := newUsers(t)

	d.users.EXPECT().GetByID(ctx, int64(1)).Return(existingUser(), nil)

	_, err := svc.UpdateMe(ctx, 1, service.UserInput{Name: utils.StrPtr("New")}, false)
	require.ErrorIs(t, err, serr.ErrInvalidInput)

	f := fieldsOf(t, err)
	require.Equal(t, []string{serr.MsgRequired}, f["email"])
	require.Equal(t, []string{serr.MsgRequired}, f["password"])
	require.NotContains(t, f, "name")
}

func TestUsersService_UpdateMe_EmailTaken(t *testing.T) {
	ctx := context.Background()
	svc, d := newUsers(t)

	d.users.EXPECT().GetByID(ctx, int64(1)).Return(existingUser(), nil)
	d.users.EXPECT().Update(ctx, gomock.Any()).Return(serr.ErrAlreadyExists)

	_, err := svc.UpdateMe(ctx, 1, service.UserInput{Email: utils.StrPtr("other@example.com")}, true)
	require.Equal(t, []string{serr.MsgEmailTaken}, fieldsOf(t, err)["email"])
}

func TestUsersService_CreateByAdmin_PasswordsDiffer(t *testing.T) {
	svc, _ := newUsers(t)

	_, err := svc.CreateByAdmin(context.Background(), service.AdminUserInput{
		Email:     "new@example.com",
		Password:  "password1",
		Password2: "password2",
	})
	require.Equal(t, []string{serr.MsgPasswordsDiffer}, fieldsOf(t, err)["password2"])
}

func TestUsersService_CreateByAdmin_OK(t *testing.T) {
	ctx := context.Background()
	svc, d := newUsers(t)

	d.users.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.User) (int64, error) {
			require.True(t, u.IsStaff)
			require.False(t, u.IsSuperuser)
			require.False(t, u.IsActive)
			return 11, nil
		})

	u, err := svc.CreateByAdmin(ctx, service.AdminUserInput{
		Email:     "new@example.com",
		Password:  "password1",
		Password2: "password1",
		IsStaff:   true,
	})
	require.NoError(t, err)
	require.Equal(t, int64(11), u.ID)
}

// Деактивация в админке отзывает токены
func TestUsersService_UpdateByAdmin_DeactivateRevokes(t *testing.T) {
	ctx := context.Background()
	svc, d := newUsers(t)

	d.users.EXPECT().GetByID(ctx, int64(1)).Return(existingUser(), nil)
	d.users.EXPECT().
		Update(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.User) error {
			require.False(t, u.IsActive)
			require.Equal(t, "old-hash", u.PasswordHash)
			return nil
		})
	d.tokens.EXPECT().DeleteAllForUser(ctx, int64(1)).Return(nil)

	_, err := svc.UpdateByAdmin(ctx, 1, service.AdminUserInput{
		Email:    "test@example.com",
		Name:     "Old",
		IsActive: false,
	})
	require.NoError(t, err)
}

// Без смены пароля и активности токены не трогаем
func TestUsersService_UpdateByAdmin_KeepsTokens(t *testing.T) {
	ctx := context.Background()
	svc, d := newUsers(t)

	d.users.EXPECT().GetByID(ctx, int64(1)).Return(existingUser(), nil)
	d.users.EXPECT().Update(ctx, gomock.Any()).Return(nil)

	u, err := svc.UpdateByAdmin(ctx, 1, service.AdminUserInput{
		Email:    "test@example.com",
		Name:     "New",
		IsActive: true,
		IsStaff:  true,
	})
	require.NoError(t, err)
	require.True(t, u.IsStaff)
	require.Equal(t, "New", u.Name)
}

func TestUsersService_UpdateByAdmin_PasswordReset(t *testing.T) {
	ctx := context.Background()
	svc, d := newUsers(t)

	d.users.EXPECT().GetByID(ctx, int64(1)).Return(existingUser(), nil)
	d.users.EXPECT().
		Update(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.User) error {
			require.NotEqual(t, "old-hash", u.PasswordHash)
			return nil
		})
	d.tokens.EXPECT().DeleteAllForUser(ctx, int64(1)).Return(nil)

	_, err := svc.UpdateByAdmin(ctx, 1, service.AdminUserInput{
		Email:     "test@example.com",
		Password:  "brandnew1",
		Password2: "brandnew1",
		IsActive:  true,
	})
	require.NoError(t, err)
}

func TestUsersService_UpdateByAdmin_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, d := newUsers(t)

	d.users.EXPECT().GetByID(ctx, int64(99)).Return(models.User{}, serr.ErrNotFound)

	_, err := svc.UpdateByAdmin(ctx, 99, service.AdminUserInput{Email: "x@example.com"})
	require.ErrorIs(t, err, serr.ErrNotFound)
}
