// Методы клиента для эндпоинтов /api/user: регистрация, токены и профиль.
package api

import "github.com/aaronsummercloud/recipe-api-project/internal/shared/models"

// CreateUser регистрирует пользователя (POST /api/user/create/).
func (c *Client) CreateUser(req models.CreateUserRequest) (models.UserResponse, error) {
	var resp models.UserResponse
	err := c.PostJSON("/api/user/create/", req, &resp, "")
	return resp, err
}

// ObtainToken выдаёт токен по email и паролю (POST /api/user/token/).
func (c *Client) ObtainToken(email, password string) (string, error) {
	var resp models.TokenResponse
	err := c.PostJSON("/api/user/token/", models.TokenRequest{Email: email, Password: password}, &resp, "")
	return resp.Token, err
}

// RevokeToken отзывает токен (DELETE /api/user/token/).
func (c *Client) RevokeToken(token string) error {
	return c.DeleteJSON("/api/user/token/", nil, token)
}

// Me возвращает профиль владельца токена (GET /api/user/me/).
func (c *Client) Me(token string) (models.UserResponse, error) {
	var resp models.UserResponse
	err := c.GetJSON("/api/user/me/", &resp, token)
	return resp, err
}

// UpdateMe обновляет профиль: partial=true — PATCH, иначе PUT.
func (c *Client) UpdateMe(token string, req models.UpdateUserRequest, partial bool) (models.UserResponse, error) {
	var resp models.UserResponse
	var err error
	if partial {
		err = c.PatchJSON("/api/user/me/", req, &resp, token)
	} else {
		err = c.PutJSON("/api/user/me/", req, &resp, token)
	}
	return resp, err
}
