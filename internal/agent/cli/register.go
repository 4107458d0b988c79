package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aaronsummercloud/recipe-api-project/internal/shared/models"
)

// NewRegisterCmd создаёт CLI-команду для регистрации нового пользователя.
//
// Пароль можно передать флагом --password или ввести интерактивно.
//
// Пример использования:
//
//	recipectl register --email test@example.com --name "Test name" --password testpass123
func NewRegisterCmd(app *App) *cobra.Command {
	var email, name, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Регистрация нового пользователя",
		Long: `Регистрация нового пользователя на сервере.

Пример:
  recipectl register --email test@example.com --name "Test name" --password testpass123
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordFlag(cmd, password)
			if err != nil {
				return err
			}

			u, err := app.Client().CreateUser(models.CreateUserRequest{
				Email:    email,
				Password: pw,
				Name:     name,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registration successful: %s (%s)\n", u.Email, u.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email for registration")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&password, "password", "", "password for registration")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
