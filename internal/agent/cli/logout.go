package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aaronsummercloud/recipe-api-project/internal/agent/api"
	"github.com/aaronsummercloud/recipe-api-project/internal/agent/config"
)

// NewLogoutCmd создаёт CLI-команду выхода: токен отзывается на сервере
// и удаляется локально. Уже недействительный токен (401) тоже удаляется.
func NewLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Отозвать токен и удалить его локально",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.Token()
			if err != nil {
				return err
			}

			if err := app.Client().RevokeToken(token); err != nil && !api.IsUnauthorized(err) {
				return err
			}

			if err := config.Remove(app.CredsPath); err != nil {
				return err
			}
			app.Creds = &config.Credentials{}

			fmt.Fprintln(cmd.OutOrStdout(), "logout ok")
			return nil
		},
	}
}
