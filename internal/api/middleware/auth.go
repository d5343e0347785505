// Package middleware содержит HTTP middleware: аутентификация по API-ключу,
// лимиты запросов и метрики.
package middleware

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/bookflow/bookflow-api/internal/api/handlers"
)

// APIKeyHeader заголовок с ключом клиентского виджета
const APIKeyHeader = "X-BookFlow-API-Key"

const (
	msgMissingAPIKey = "missing " + APIKeyHeader + " header"
	msgInvalidAPIKey = "invalid API key"
)

type ctxKey int

const apiKeyPrefixKey ctxKey = iota

// apiKeyPrefixLen длина префикса ключа для идентификации в логах
const apiKeyPrefixLen = 8

// Auth middleware проверки API-ключа.
// Ключи хранятся в виде sha256-хешей, сравнение ведется по хешу.
type Auth struct {
	keyHashes map[string]struct{}
	logger    Logger
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// NewAuth создает middleware аутентификации для списка разрешенных ключей
func NewAuth(apiKeys []string, logger Logger) *Auth {
	hashes := make(map[string]struct{}, len(apiKeys))
	for _, key := range apiKeys {
		hashes[hashAPIKey(key)] = struct{}{}
	}
	return &Auth{
		keyHashes: hashes,
		logger:    logger,
	}
}

// Middleware проверяет API-ключ запроса
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get(APIKeyHeader)
		if apiKey == "" {
			a.logger.Warn("Auth: missing API key: method=%s, path=%s", r.Method, r.URL.Path)
			handlers.RespondUnauthorized(w, msgMissingAPIKey)
			return
		}

		if !a.validKey(apiKey) {
			a.logger.Warn("Auth: invalid API key prefix=%s: method=%s, path=%s",
				keyPrefix(apiKey), r.Method, r.URL.Path)
			handlers.RespondUnauthorized(w, msgInvalidAPIKey)
			return
		}

		ctx := context.WithValue(r.Context(), apiKeyPrefixKey, keyPrefix(apiKey))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Auth) validKey(apiKey string) bool {
	hash := hashAPIKey(apiKey)
	for known := range a.keyHashes {
		if subtle.ConstantTimeCompare([]byte(hash), []byte(known)) == 1 {
			return true
		}
	}
	return false
}

// GetAPIKeyPrefix возвращает префикс ключа текущего запроса для логов и лимитов
func GetAPIKeyPrefix(ctx context.Context) (string, bool) {
	prefix, ok := ctx.Value(apiKeyPrefixKey).(string)
	return prefix, ok
}

func hashAPIKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

func keyPrefix(key string) string {
	if len(key) < apiKeyPrefixLen {
		return key
	}
	return key[:apiKeyPrefixLen]
}
