package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aaronsummercloud/recipe-api-project/internal/agent/config"
)

// NewLoginCmd создаёт CLI-команду входа.
//
// Команда получает токен у сервера и сохраняет его вместе с адресом сервера
// в локальный файл учётных данных.
//
// Пример использования:
//
//	recipectl login --email test@example.com --password testpass123
func NewLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Получить токен и сохранить его локально",
		Long: `Логин пользователя.

Пример:
  recipectl login --email test@example.com --password testpass123
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordFlag(cmd, password)
			if err != nil {
				return err
			}

			token, err := app.Client().ObtainToken(email, pw)
			if err != nil {
				return err
			}

			app.Creds = &config.Credentials{
				Token:  token,
				Email:  email,
				Server: app.ServerURL,
			}
			if err := config.Save(app.CredsPath, app.Creds); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "login ok (token saved)")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email for login")
	cmd.Flags().StringVar(&password, "password", "", "password for login")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
