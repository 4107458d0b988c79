package tests

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aaronsummercloud/recipe-api-project/internal/shared/logger"
)

func TestNew_CreatesLogFileAndWrites(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "http.log")

	l, err := logger.New(logger.Options{File: logPath})
	require.NoError(t, err)
	l.Info("test message")
	_ = l.Sync()

	b, err := os.ReadFile(logPath)
	require.NoError(t, err)
	s := string(b)

	require.NotEmpty(t, s)
	require.Regexp(t, `\btest message\b`, s)

	// формат времени: "HH:MM:SS DD.MM.YYYY", пример: 11:57:16 16.01.2026
	require.Regexp(t, `\b\d{2}:\d{2}:\d{2} \d{2}\.\d{2}\.\d{4}\b`, s)
}

func TestHTTPLogger_LogRequest_WritesStructuredFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "http.log")

	l, err := logger.New(logger.Options{File: logPath})
	require.NoError(t, err)
	l.LogRequest("req-1", "POST", "/api/user/token/", 400, 20, 158.5463)
	_ = l.Sync()

	b, err := os.ReadFile(logPath)
	require.NoError(t, err)
	s := string(b)

	mustContain := []string{
		"HTTP request",
		"request_id", "req-1",
		"method", "POST",
		"uri", "/api/user/token/",
		"status", "400",
		"response_size", "20",
		"duration_ms",
	}
	for _, sub := range mustContain {
		require.Regexp(t, regexp.QuoteMeta(sub), s)
	}
}

func TestNew_JSONFormat(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "http.log")

	l, err := logger.New(logger.Options{File: logPath, Format: "json"})
	require.NoError(t, err)
	l.Info("json message")
	_ = l.Sync()

	b, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(b), `"msg":"json message"`)
}

func TestNew_LevelFiltersDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "http.log")

	l, err := logger.New(logger.Options{File: logPath, Level: "warn"})
	require.NoError(t, err)
	l.Info("hidden")
	l.Warn("visible")
	_ = l.Sync()

	b, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.NotContains(t, string(b), "hidden")
	require.Contains(t, string(b), "visible")
}

func TestNew_BadOptions(t *testing.T) {
	// Неизвестный уровень
	_, err := logger.New(logger.Options{Level: "loud", File: filepath.Join(t.TempDir(), "x.log")})
	require.Error(t, err)

	// Неизвестный формат
	_, err = logger.New(logger.Options{Format: "xml", File: filepath.Join(t.TempDir(), "x.log")})
	require.Error(t, err)
}
