// Package config содержит инициализацию подключения к базе данных сервера
// и доступ к глобальному экземпляру *sql.DB.
//
// Пакет выполняет:
//   - открытие соединения с PostgreSQL (через драйвер pgx);
//   - ожидание доступности базы (Ping с повторами);
//   - запуск миграций (golang-migrate) при старте сервера.
//
// Примечание: пакет использует глобальную переменную DB. Инициализация должна
// выполняться один раз при запуске сервера.
package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"go.uber.org/zap"

	"github.com/aaronsummercloud/recipe-api-project/internal/shared/logger"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v4/stdlib"
)

// DB — глобальный экземпляр подключения к базе данных.
//
// Инициализируется функцией Init и используется другими пакетами через GetDB.
var DB *sql.DB

// Pinger — то, что умеет проверять соединение (*sql.DB).
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Init открывает подключение к базе данных, дожидается её доступности
// и применяет миграции (если они включены).
//
// Если миграции уже применены, ошибка migrate.ErrNoChange не считается ошибкой.
func Init(ctx context.Context, dbCfg DBConfig, migCfg MigrationsConfig, log *logger.HTTPLogger) error {
	customLog := log.Logger.Sugar()

	var err error
	DB, err = sql.Open("pgx", dbCfg.DSN)
	if err != nil {
		customLog.Errorf("error to connect db: %v", err)
		return err
	}

	if dbCfg.MaxOpenConns > 0 {
		DB.SetMaxOpenConns(dbCfg.MaxOpenConns)
	}
	if dbCfg.MaxIdleConns > 0 {
		DB.SetMaxIdleConns(dbCfg.MaxIdleConns)
	}
	DB.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)
	DB.SetConnMaxIdleTime(dbCfg.ConnMaxIdleTime)

	if err = WaitForDB(ctx, DB, dbCfg.ConnectRetries, dbCfg.ConnectRetryDelay, log); err != nil {
		customLog.Errorf("error check db connection: %v", err)
		return err
	}

	if !migCfg.Enabled {
		customLog.Info("migrations disabled")
		return nil
	}

	if err := RunMigrations(DB, migCfg); err != nil {
		customLog.Errorf("error applying migrations: %v", err)
		return err
	}

	customLog.Info("migrations applied successfully")
	return nil
}

// WaitForDB пингует базу, пока она не ответит, но не более attempts раз.
func WaitForDB(ctx context.Context, db Pinger, attempts int, delay time.Duration, log *logger.HTTPLogger) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 1; i <= attempts; i++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		log.Warn("database unavailable, waiting",
			zap.Int("attempt", i),
			zap.Int("attempts", attempts),
			zap.Error(err),
		)
		if i == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("database unavailable after %d attempts: %w", attempts, err)
}

// RunMigrations применяет миграции из migCfg.Path.
func RunMigrations(db *sql.DB, migCfg MigrationsConfig) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}

	// создаём миграции с выбранным драйвером
	m, err := migrate.NewWithDatabaseInstance(MigrationsSource(migCfg.Path), "postgres", driver)
	if err != nil {
		return fmt.Errorf("creating migrations: %w", err)
	}
	if migCfg.LockTimeout > 0 {
		m.LockTimeout = migCfg.LockTimeout
	}

	// запускаем создание миграций
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// MigrationsSource превращает путь в URL источника golang-migrate.
func MigrationsSource(path string) string {
	if strings.Contains(path, "://") {
		return path
	}
	return "file://" + path
}

// GetDB возвращает текущий глобальный экземпляр *sql.DB.
//
// Возвращаемое значение может быть nil, если Init ещё не вызывался
// или завершился ошибкой.
func GetDB() *sql.DB {
	return DB
}
