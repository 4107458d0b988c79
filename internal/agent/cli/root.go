// Package cli реализует командный интерфейс (CLI) клиента Recipe API.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд;
//   - разбор аргументов и флагов командной строки;
//   - загрузку сохранённого токена из локального файла;
//   - выполнение команд и вывод результата пользователю.
//
// Точка входа пакета — функция Execute.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aaronsummercloud/recipe-api-project/internal/agent/api"
	"github.com/aaronsummercloud/recipe-api-project/internal/agent/config"
)

// DefaultServerURL — адрес сервера, если не задан ни флагом, ни окружением.
const DefaultServerURL = "http://127.0.0.1:8000"

// ServerURLEnv — переменная окружения с адресом сервера.
const ServerURLEnv = "RECIPECTL_SERVER"

// ErrNotLoggedIn — команда требует токен, а его нет.
var ErrNotLoggedIn = errors.New("not logged in (run: recipectl login)")

// App содержит состояние CLI-приложения, разделяемое между командами.
type App struct {
	// ServerURL — базовый URL сервера (например, "http://127.0.0.1:8000").
	ServerURL string
	// Insecure — не проверять TLS-сертификат сервера.
	Insecure bool

	// CredsPath — путь к файлу с сохранённым токеном.
	CredsPath string
	// Creds — загруженные учётные данные.
	Creds *config.Credentials
}

// Client создаёт API-клиент с настройками приложения.
func (a *App) Client() *api.Client {
	var opts []api.Option
	if a.Insecure {
		opts = append(opts, api.WithInsecure())
	}
	return NewAPIClient(a.ServerURL, opts...)
}

// Token возвращает сохранённый токен или ErrNotLoggedIn.
func (a *App) Token() (string, error) {
	if !a.Creds.LoggedIn() {
		return "", ErrNotLoggedIn
	}
	return a.Creds.Token, nil
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// buildVersion и buildDate используются командой version.
// В PersistentPreRunE определяется путь к файлу учётных данных и загружается токен.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "recipectl",
		Short: "recipectl — консольный клиент Recipe API",
		Long: `recipectl — консольный клиент Recipe API.

Команды:
  register  Регистрация нового пользователя
  login     Получить токен (сохраняется локально)
  logout    Отозвать токен
  me        Профиль текущего пользователя
  recipe    Рецепты: list, get, create, update, delete
  version   Версия и дата сборки

Примеры:
  recipectl register --email test@example.com --name "Test" --password testpass123
  recipectl login --email test@example.com --password testpass123
  recipectl recipe create --title "Sample recipe" --time 10 --price 5.00
  recipectl recipe list
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.CredsPath == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				app.CredsPath = p
			}

			creds, err := config.Load(app.CredsPath)
			if err != nil {
				return fmt.Errorf("load credentials %s: %w", app.CredsPath, err)
			}
			app.Creds = creds

			// флаг > окружение > сервер из сохранённого входа > по умолчанию
			if !cmd.Flags().Changed("server") {
				switch {
				case os.Getenv(ServerURLEnv) != "":
					app.ServerURL = os.Getenv(ServerURLEnv)
				case creds.Server != "":
					app.ServerURL = creds.Server
				}
			}
			return nil
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", DefaultServerURL, "server base URL (или "+ServerURLEnv+")")
	cmd.PersistentFlags().BoolVar(&app.Insecure, "insecure", false, "не проверять TLS-сертификат (только для dev)")
	cmd.PersistentFlags().StringVar(&app.CredsPath, "credentials", "", "файл с токеном (по умолчанию ~/.recipectl/credentials.json)")

	cmd.AddCommand(NewRegisterCmd(app))
	cmd.AddCommand(NewLoginCmd(app))
	cmd.AddCommand(NewLogoutCmd(app))
	cmd.AddCommand(NewMeCmd(app))
	cmd.AddCommand(NewRecipeCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// Execute запускает обработку CLI-команд.
//
// При ошибке сообщение выводится в stderr, процесс завершается с кодом 1.
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
