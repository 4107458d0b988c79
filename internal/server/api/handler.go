// Package api реализует JSON HTTP-слой сервера.
//
// Пакет отвечает за:
//   - обработку входящих запросов и формирование ответов (JSON, статусы);
//   - маппинг доменных ошибок (service/repository) в HTTP-коды и сообщения;
//   - преобразование серверных моделей в публичные представления.
//
// @title                       Recipe API
// @version                     1.0
// @description                 Users, tokens and per-user recipes.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package api

import (
	"context"

	"github.com/aaronsummercloud/recipe-api-project/internal/server/service"
	"github.com/aaronsummercloud/recipe-api-project/internal/shared/logger"
)

// Каждый метод если будет возвращать ответ то будет это делать в JSON
// Вынес Content-Type и JSON для удобства
const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// DefaultMaxBodyBytes — лимит тела запроса, если в конфиге не задан.
const DefaultMaxBodyBytes int64 = 1 << 20

// HealthChecker — зависимость, доступность которой проверяет /readyz.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - Log: логгер для записи событий и ошибок;
//   - Checks: зависимости для readiness-проверки (БД, Redis).
type Handler struct {
	Svc          *service.Services
	Log          *logger.HTTPLogger
	Checks       map[string]HealthChecker
	MaxBodyBytes int64
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
func NewHandler(svc *service.Services, log *logger.HTTPLogger, checks map[string]HealthChecker, maxBodyBytes int64) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &Handler{
		Svc:          svc,
		Log:          log,
		Checks:       checks,
		MaxBodyBytes: maxBodyBytes,
	}
}
