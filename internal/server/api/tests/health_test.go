package tests

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/aaronsummercloud/recipe-api-project/internal/server/api"
	svcmocks "github.com/aaronsummercloud/recipe-api-project/internal/server/service/mocks"
	"github.com/aaronsummercloud/recipe-api-project/internal/shared/logger"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHandler_Healthz(t *testing.T) {
	h := api.NewHandler(nil, logger.NewNop(), nil, 0)

	rec := httptest.NewRecorder()
	h.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandler_Readyz(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := svcmocks.NewMockHealthRepo(ctrl)
	db.EXPECT().Ping(gomock.Any()).Return(nil).Times(2)

	ok := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("connection refused") })

	h := api.NewHandler(nil, logger.NewNop(), map[string]api.HealthChecker{"database": db, "cache": ok}, 0)
	rec := httptest.NewRecorder()
	h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok","checks":{"database":"ok","cache":"ok"}}`, rec.Body.String())

	h = api.NewHandler(nil, logger.NewNop(), map[string]api.HealthChecker{"database": db, "cache": down}, 0)
	rec = httptest.NewRecorder()
	h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), `"cache":"unavailable"`)
}
