// Package handlers содержит общие helpers для HTTP-ответов.
// Все ответы API заворачиваются в единый конверт:
// успех  - {"success": true, "data": ...}
// ошибка - {"success": false, "error": {"kind": "...", "message": "..."}}
package handlers

import (
	"encoding/json"
	"net/http"
)

// Виды ошибок API, клиентский виджет различает их по полю kind
const (
	KindValidationFailed = "validation_failed"
	KindSlotConflict     = "slot_conflict"
	KindNotFound         = "not_found"
	KindUnauthorized     = "unauthorized"
	KindRateLimited      = "rate_limited"
	KindInternalError    = "internal_error"
)

type apiError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

// DecodeJSON декодирует тело запроса в v
func DecodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// RespondJSON отправляет успешный ответ с данными
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

// RespondError отправляет ответ с ошибкой указанного вида
func RespondError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, envelope{Success: false, Error: &apiError{Kind: kind, Message: message}})
}

// RespondBadRequest отправляет 400 с ошибкой валидации
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, KindValidationFailed, message)
}

// RespondConflict отправляет 409 при конфликте слота
func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, KindSlotConflict, message)
}

// RespondNotFound отправляет 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, KindNotFound, message)
}

// RespondUnauthorized отправляет 401
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, KindUnauthorized, message)
}

// RespondTooManyRequests отправляет 429 при превышении лимита запросов
func RespondTooManyRequests(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusTooManyRequests, KindRateLimited, message)
}

// RespondInternalError отправляет 500 без деталей внутренней ошибки
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, KindInternalError, "internal server error")
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Ошибка записи здесь означает разорванное соединение, ответить уже нечем
	_ = json.NewEncoder(w).Encode(body)
}
