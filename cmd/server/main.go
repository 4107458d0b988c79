// Package main содержит точку входа сервера Recipe API.
//
// Команды:
//   - serve            — HTTP(S)-сервер API и админки (по умолчанию);
//   - createsuperuser  — создание staff/superuser пользователя для входа в админку.
//
// Общий порядок запуска:
//   - загрузка .env (если есть) и конфига (--config, по умолчанию ./configs/server.yaml);
//   - логгер zap по секции log;
//   - подключение к PostgreSQL и миграции.
//
// Пакет не содержит бизнес-логики и не предназначен для unit-тестирования.
// HTTP API документируется через swag: go generate ./cmd/server
package main

//go:generate swag init -g handler.go -d ../../internal/server/api,../../internal/shared/models -o ../../swagger/docs --outputTypes go

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "recipe-server",
		Short:         "Recipe API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env необязателен, переменные могут прийти из окружения
			_ = godotenv.Load()
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "./configs/server.yaml", "путь к server.yaml")

	serve := newServeCmd(&configPath)
	root.AddCommand(serve, newCreateSuperuserCmd(&configPath))

	// без подкоманды запускаем сервер
	root.RunE = serve.RunE

	return root
}
