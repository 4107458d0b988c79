package tests

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/aaronsummercloud/recipe-api-project/internal/server/config"
	"github.com/aaronsummercloud/recipe-api-project/internal/shared/logger"

	_ "github.com/jackc/pgx/v4/stdlib"
)

// База отвечает с первой попытки
func TestWaitForDB_OK(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectPing()

	err = config.WaitForDB(context.Background(), db, 3, time.Millisecond, logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

// База поднимается со второй попытки
func TestWaitForDB_RetriesThenOK(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing()

	err = config.WaitForDB(context.Background(), db, 3, time.Millisecond, logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

// База так и не поднялась
func TestWaitForDB_GivesUp(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectPing().WillReturnError(errors.New("down"))
	mock.ExpectPing().WillReturnError(errors.New("down"))

	err = config.WaitForDB(context.Background(), db, 2, time.Millisecond, logger.NewNop())
	require.Error(t, err)
	require.Contains(t, err.Error(), "after 2 attempts")
}

// Отмена контекста прерывает ожидание
func TestWaitForDB_ContextCanceled(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectPing().WillReturnError(errors.New("down"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = config.WaitForDB(ctx, db, 5, time.Hour, logger.NewNop())
	require.ErrorIs(t, err, context.Canceled)
}

// Интеграционный тест с настоящей DB
func TestInit_WithDSN(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set; skipping integration test")
	}

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var x int
	require.NoError(t, db.QueryRow("SELECT 1").Scan(&x))
	require.Equal(t, 1, x)
}
