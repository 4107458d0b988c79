// Package config содержит функции для работы с локальной конфигурацией CLI-клиента.
//
// Конфигурация хранит токен и адрес сервера, на котором он выдан, и размещается
// в домашней директории пользователя в файле:
//
//	~/.recipectl/credentials.json
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Credentials содержит учётные данные, используемые CLI-клиентом.
type Credentials struct {
	// Token — API-токен для заголовка Authorization.
	Token string `json:"token"`
	// Email — под кем выполнен вход. Только для вывода.
	Email string `json:"email,omitempty"`
	// Server — сервер, выдавший токен.
	Server string `json:"server,omitempty"`
}

// LoggedIn сообщает, есть ли сохранённый токен.
func (c *Credentials) LoggedIn() bool {
	return c != nil && c.Token != ""
}

// DefaultPath возвращает путь к файлу учётных данных:
//
//	<home>/.recipectl/credentials.json
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".recipectl", "credentials.json"), nil
}

// Load загружает учётные данные из файла.
//
// Если файл не существует, возвращает пустые Credentials без ошибки.
func Load(path string) (*Credentials, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Credentials{}, nil
		}
		return nil, err
	}
	var c Credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save сохраняет учётные данные в JSON (директория 0700, файл 0600).
func Save(path string, c *Credentials) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// Remove удаляет файл учётных данных. Отсутствие файла не ошибка.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
