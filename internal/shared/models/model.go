// Package models содержит JSON-модели HTTP API, общие для сервера и клиента.
package models

// ErrorResponse — стандартный формат ошибки API.
//
// Fields заполняется при ошибках валидации:
//
//	{"error":"invalid input","fields":{"password":["Ensure this field has at least 5 characters."]}}
type ErrorResponse struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// CreateUserRequest — запрос на создание пользователя.
//
// Используется в:
//
//	POST /api/user/create/
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// UserResponse — публичное представление пользователя. Пароль не отдаётся никогда.
type UserResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UpdateUserRequest — обновление своего профиля.
//
// Используется в:
//
//	PUT   /api/user/me/ (email, password и name обязательны)
//	PATCH /api/user/me/ (любое подмножество полей)
//
// Указатели позволяют отличить "поле не передано" от пустой строки.
type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Name     *string `json:"name,omitempty"`
}

// TokenRequest — запрос на выдачу токена.
//
// Используется в:
//
//	POST /api/user/token/
type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse — выданный токен.
type TokenResponse struct {
	Token string `json:"token"`
}
