package api

import (
	"context"
	"net/http"
	"sort"
	"time"
)

// HealthResponse — ответ health-проверок.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthz — liveness: процесс жив и отвечает.
//
// @Summary  Liveness probe
// @Tags     health
// @Produce  json
// @Success  200 {object} api.HealthResponse
// @Router   /healthz [get]
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz — readiness: доступны ли БД и кэш.
//
// @Summary  Readiness probe
// @Tags     health
// @Produce  json
// @Success  200 {object} api.HealthResponse
// @Failure  503 {object} api.HealthResponse
// @Router   /readyz [get]
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.Checks))
	for name := range h.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := HealthResponse{Status: "ok", Checks: make(map[string]string, len(names))}
	status := http.StatusOK
	for _, name := range names {
		if err := h.Checks[name].Ping(ctx); err != nil {
			h.Log.Logger.Sugar().Warnw("readiness check failed", "check", name, "error", err)
			resp.Checks[name] = "unavailable"
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	WriteJSON(w, status, resp)
}
