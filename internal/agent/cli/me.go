package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aaronsummercloud/recipe-api-project/internal/shared/models"
)

// NewMeCmd создаёт команду профиля: без подкоманды печатает email и имя.
func NewMeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "me",
		Short: "Профиль текущего пользователя",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.Token()
			if err != nil {
				return err
			}
			u, err := app.Client().Me(token)
			if err != nil {
				return err
			}
			printUser(cmd.OutOrStdout(), u)
			return nil
		},
	}

	cmd.AddCommand(newMeUpdateCmd(app))
	return cmd
}

// newMeUpdateCmd — изменение профиля.
//
// По умолчанию PATCH: отправляются только переданные флаги.
// С --replace выполняется PUT, и нужны все три поля.
func newMeUpdateCmd(app *App) *cobra.Command {
	var (
		email, name, password string
		replace               bool
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Изменить email, имя или пароль",
		Long: `Изменить профиль.

Примеры:
  recipectl me update --name "New name"
  recipectl me update --replace --email new@example.com --name "New" --password newpass123
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.Token()
			if err != nil {
				return err
			}

			var req models.UpdateUserRequest
			if cmd.Flags().Changed("email") {
				req.Email = &email
			}
			if cmd.Flags().Changed("name") {
				req.Name = &name
			}
			if cmd.Flags().Changed("password") {
				req.Password = &password
			}
			if !replace && req.Email == nil && req.Name == nil && req.Password == nil {
				return fmt.Errorf("nothing to update: pass --email, --name or --password")
			}

			u, err := app.Client().UpdateMe(token, req, !replace)
			if err != nil {
				return err
			}
			printUser(cmd.OutOrStdout(), u)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "new email")
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&password, "password", "", "new password")
	cmd.Flags().BoolVar(&replace, "replace", false, "full update (PUT) instead of partial (PATCH)")

	return cmd
}

func printUser(w io.Writer, u models.UserResponse) {
	fmt.Fprintf(w, "email=%s\nname=%s\n", u.Email, u.Name)
}
