// HTTP-хендлеры пользователей и токенов
package api

import (
	"net/http"

	"github.com/aaronsummercloud/recipe-api-project/internal/server/middleware"
	"github.com/aaronsummercloud/recipe-api-project/internal/server/service"
	serr "github.com/aaronsummercloud/recipe-api-project/internal/shared/errors"
	"github.com/aaronsummercloud/recipe-api-project/internal/shared/models"
)

// CreateUser регистрирует пользователя.
//
// @Summary      Create user
// @Description  Registers a new user. The password is never returned.
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        request body models.CreateUserRequest true "New user"
// @Success      201 {object} models.UserResponse
// @Failure      400 {object} models.ErrorResponse "Invalid input, email taken or short password"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /api/user/create/ [post]
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeServiceError(w, r, "create user", err)
		return
	}

	u, err := h.Svc.Auth.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		h.writeServiceError(w, r, "create user", err)
		return
	}

	WriteJSON(w, http.StatusCreated, toUserResponse(u))
}

// CreateToken выдаёт API-токен по email и паролю.
//
// Ответы:
//   - 200 OK: {"token": "..."};
//   - 400 Bad Request: пустые поля или неверные учётные данные (non_field_errors).
//
// @Summary      Obtain token
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        request body models.TokenRequest true "Credentials"
// @Success      200 {object} models.TokenResponse
// @Failure      400 {object} models.ErrorResponse "Blank fields or bad credentials"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /api/user/token/ [post]
func (h *Handler) CreateToken(w http.ResponseWriter, r *http.Request) {
	var req models.TokenRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeServiceError(w, r, "create token", err)
		return
	}

	token, err := h.Svc.Auth.ObtainToken(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, r, "create token", err)
		return
	}

	WriteJSON(w, http.StatusOK, models.TokenResponse{Token: token})
}

// RevokeToken отзывает токен, которым подписан запрос.
//
// @Summary      Revoke token
// @Tags         user
// @Security     BearerAuth
// @Success      204
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Router       /api/user/token/ [delete]
func (h *Handler) RevokeToken(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	if err := h.Svc.Auth.Logout(r.Context(), token); err != nil {
		h.writeServiceError(w, r, "revoke token", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Me возвращает профиль текущего пользователя.
//
// @Summary      Retrieve self
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.UserResponse
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Router       /api/user/me/ [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	u, err := h.Svc.Users.Me(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, r, "get me", err)
		return
	}

	WriteJSON(w, http.StatusOK, toUserResponse(u))
}

// UpdateMe — PUT /api/user/me/: полное обновление профиля.
//
// @Summary      Update self
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.UpdateUserRequest true "Email, password and name"
// @Success      200 {object} models.UserResponse
// @Failure      400 {object} models.ErrorResponse "Invalid input"
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Router       /api/user/me/ [put]
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	h.updateMe(w, r, false)
}

// PatchMe — PATCH /api/user/me/: меняются только переданные поля.
//
// @Summary      Partially update self
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.UpdateUserRequest true "Any subset of fields"
// @Success      200 {object} models.UserResponse
// @Failure      400 {object} models.ErrorResponse "Invalid input"
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Router       /api/user/me/ [patch]
func (h *Handler) PatchMe(w http.ResponseWriter, r *http.Request) {
	h.updateMe(w, r, true)
}

func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request, partial bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	var req models.UpdateUserRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeServiceError(w, r, "update me", err)
		return
	}

	u, err := h.Svc.Users.UpdateMe(r.Context(), userID, service.UserInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	}, partial)
	if err != nil {
		h.writeServiceError(w, r, "update me", err)
		return
	}

	WriteJSON(w, http.StatusOK, toUserResponse(u))
}
