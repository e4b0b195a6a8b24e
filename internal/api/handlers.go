package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"TaroloGO/internal/config"
)

// ConfigContextKey - ключ для сохранения конфига в контексте запроса.
var ConfigContextKey = &contextKey{"Config"}

type contextKey struct {
	name string
}

// jsonResponse - вспомогательная структура для стандартного ответа API
type jsonResponse struct {
	Status  string      `json:"status"` // "success" или "error"
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// --- Вспомогательные функции для JSON-ответов ---

func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(jsonResponse{Status: "error", Message: message})
}

func writeJSONSuccess(w http.ResponseWriter, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(jsonResponse{Status: "success", Message: message, Data: data})
}

// configFromContext достаёт конфиг, положенный в контекст в SetupRoutes.
func configFromContext(r *http.Request) *config.Config {
	cfg, ok := r.Context().Value(ConfigContextKey).(*config.Config)
	if !ok {
		log.Println("configFromContext: конфиг отсутствует в контексте запроса")
		return &config.Config{}
	}
	return cfg
}

// parseIDParam читает положительный числовой параметр из URL.
func parseIDParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// timestampLayouts - поддерживаемые форматы временных меток в URL и телах запросов.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
}

// parseTimestamp разбирает временную метку в одном из поддерживаемых форматов.
func parseTimestamp(value string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// parseDate разбирает дату (дата рождения) как YYYY-MM-DD или полную метку.
func parseDate(value string) (time.Time, bool) {
	if ts, err := time.Parse("2006-01-02", value); err == nil {
		return ts, true
	}
	return parseTimestamp(value)
}
