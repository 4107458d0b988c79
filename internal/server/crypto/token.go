package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// NewAPIToken генерирует непрозрачный токен: 32 случайных байта в base64url.
func NewAPIToken() (string, error) {
	b := make([]byte, 32) // 256-bit
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// HashAPIToken — sha256 от токена. В БД лежит только он.
func HashAPIToken(token string) []byte {
	sum := sha256.Sum256([]byte(token))
	return sum[:]
}

// TokenCacheKey — hex от хэша, используется как ключ в кэше.
func TokenCacheKey(token string) string {
	return hex.EncodeToString(HashAPIToken(token))
}
