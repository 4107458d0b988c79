// Package api содержит HTTP-клиент для взаимодействия с сервером Recipe API.
//
// Клиент инкапсулирует базовый URL сервера и настроенный http.Client,
// предоставляя методы для отправки JSON-запросов (POST/GET/PUT/PATCH/DELETE)
// с авторизацией по токену.
//
// Особенности:
//   - baseURL нормализуется (обрезаются завершающие "/").
//   - По умолчанию добавляется заголовок Accept: application/json.
//   - Заголовок Content-Type: application/json добавляется только при наличии тела запроса.
//   - При ответах 204 No Content тело не читается и это считается успехом.
//   - Пустое тело ответа (EOF при декодировании) не считается ошибкой.
//   - При ошибочных ответах (не 2xx) возвращается *APIError с разобранным телом.
package api

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/aaronsummercloud/recipe-api-project/internal/shared/models"
)

// Client реализует HTTP-клиент для общения с сервером.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option настраивает Client.
type Option func(*Client)

// WithInsecure отключает проверку TLS-сертификата сервера.
//
// ВНИМАНИЕ: только для локальной разработки с самоподписанным сертификатом.
func WithInsecure() Option {
	return func(c *Client) {
		c.http.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // только для dev
		}
	}
}

// WithTimeout задаёт таймаут на весь запрос.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient подменяет http.Client (например, httptest.Server.Client()).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient создаёт новый HTTP-клиент для общения с сервером.
//
// Параметры:
//   - baseURL: базовый адрес сервера (например: "http://127.0.0.1:8000").
//
// По умолчанию таймаут 10 секунд и проверка сертификата включена.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// APIError — ошибочный ответ сервера.
type APIError struct {
	Status  int
	Message string
	Fields  map[string][]string
}

// Error печатает сообщение и ошибки по полям в стабильном порядке:
//
//	invalid input: email: This field may not be blank.; password: ...
func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], " "))
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}

// IsUnauthorized сообщает, что сервер ответил 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// readAPIErrorBody читает тело ответа сервера и возвращает *APIError.
//
// Если тело — ErrorResponse, берём из него сообщение и поля,
// иначе сообщением становится текст тела или res.Status.
func readAPIErrorBody(res *http.Response) error {
	raw, _ := io.ReadAll(res.Body)

	apiErr := &APIError{Status: res.StatusCode}

	var body models.ErrorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.Fields = body.Fields
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(raw))
	if apiErr.Message == "" {
		apiErr.Message = res.Status
	}
	return apiErr
}

// decodeJSONOrOK декодирует JSON из r в resp.
// resp == nil и пустое тело (io.EOF) ошибкой не считаются.
func decodeJSONOrOK(r io.Reader, resp any) error {
	if resp == nil {
		return nil
	}
	err := json.NewDecoder(r).Decode(resp)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// doJSON отправляет запрос и декодирует ответ.
//
// Заголовки:
//   - всегда: Accept: application/json
//   - если req != nil: Content-Type: application/json
//   - если token непустой: Authorization: Bearer <token>
func (c *Client) doJSON(method, path string, req any, resp any, token string) error {
	var body io.Reader
	if req != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(req); err != nil {
			return err
		}
		body = &buf
	}

	r, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	r.Header.Set("Accept", "application/json")
	if req != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(r)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return readAPIErrorBody(res)
	}

	// 204/пустое тело — ок
	if res.StatusCode == http.StatusNoContent {
		return nil
	}

	return decodeJSONOrOK(res.Body, resp)
}

// PostJSON выполняет POST-запрос, сериализуя req в JSON.
func (c *Client) PostJSON(path string, req any, resp any, token string) error {
	return c.doJSON(http.MethodPost, path, req, resp, token)
}

// GetJSON выполняет GET-запрос и декодирует JSON-ответ в resp.
func (c *Client) GetJSON(path string, resp any, token string) error {
	return c.doJSON(http.MethodGet, path, nil, resp, token)
}

// PutJSON выполняет PUT-запрос (полное обновление).
func (c *Client) PutJSON(path string, req any, resp any, token string) error {
	return c.doJSON(http.MethodPut, path, req, resp, token)
}

// PatchJSON выполняет PATCH-запрос (частичное обновление).
func (c *Client) PatchJSON(path string, req any, resp any, token string) error {
	return c.doJSON(http.MethodPatch, path, req, resp, token)
}

// DeleteJSON выполняет DELETE-запрос.
func (c *Client) DeleteJSON(path string, resp any, token string) error {
	return c.doJSON(http.MethodDelete, path, nil, resp, token)
}
