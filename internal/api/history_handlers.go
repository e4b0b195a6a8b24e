package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"TaroloGO/internal/db"
	"TaroloGO/internal/utils"
)

// HistoryCreateRequest - тело запроса на создание записи истории услуг.
type HistoryCreateRequest struct {
	UserID    int64 `json:"user_id"`
	ServiceID int64 `json:"service_id"`
	StatusID  int64 `json:"status_id"`
}

// CreateHistory создаёт запись истории услуг (покупку). 404, если услуга не найдена.
func CreateHistory(w http.ResponseWriter, r *http.Request) {
	var req HistoryCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Некорректное тело запроса")
		return
	}
	if req.UserID <= 0 || req.ServiceID <= 0 || req.StatusID <= 0 {
		writeJSONError(w, http.StatusBadRequest, "user_id, service_id и status_id должны быть положительными")
		return
	}

	history, err := db.CreateHistory(req.UserID, req.ServiceID, req.StatusID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Услуга не найдена")
			return
		}
		writeJSONError(w, http.StatusBadRequest, "Не удалось создать запись истории")
		return
	}
	writeJSONSuccess(w, "Запись истории создана", history)
}

// ReviewUpdateRequest - тело запроса на создание или правку отзыва.
// review_date_time принимается для совместимости, но сервер всегда ставит свою метку.
type ReviewUpdateRequest struct {
	HistoryID      int64  `json:"history_id"`
	ReviewTitle    string `json:"review_title"`
	ReviewText     string `json:"review_text"`
	ReviewValue    int    `json:"review_value"`
	ReviewDateTime string `json:"review_date_time"`
}

// UpdateReview применяет отзыв к записи истории и пересчитывает рейтинг таролога.
// Оценка проверяется до вызова пересчёта; 404, если запись или профиль отсутствуют.
func UpdateReview(w http.ResponseWriter, r *http.Request) {
	historyID, ok := parseIDParam(r, "history_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный history_id")
		return
	}

	var req ReviewUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Некорректное тело запроса")
		return
	}
	if !utils.IsValidReviewValue(req.ReviewValue) {
		writeJSONError(w, http.StatusBadRequest, "Оценка должна быть от 1 до 5")
		return
	}

	history, err := db.UpdateReview(historyID, req.ReviewTitle, req.ReviewText, req.ReviewValue)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Запись истории или профиль таролога не найдены")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось обновить отзыв")
		return
	}
	writeJSONSuccess(w, "Отзыв обновлён", history)
}

// UpdateHistoryStatus меняет статус записи истории. status_id передаётся параметром
// запроса. 404, если запись или статус не найдены.
func UpdateHistoryStatus(w http.ResponseWriter, r *http.Request) {
	historyID, ok := parseIDParam(r, "history_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный history_id")
		return
	}
	statusID, err := strconv.ParseInt(r.URL.Query().Get("status_id"), 10, 64)
	if err != nil || statusID <= 0 {
		writeJSONError(w, http.StatusBadRequest, "Некорректный status_id")
		return
	}

	if err := db.UpdateHistoryStatus(historyID, statusID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Запись истории или статус не найдены")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось обновить статус")
		return
	}
	writeJSONSuccess(w, "Статус обновлён", nil)
}

// GetHistory возвращает запись истории по идентификатору.
func GetHistory(w http.ResponseWriter, r *http.Request) {
	historyID, ok := parseIDParam(r, "history_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный history_id")
		return
	}

	history, err := db.GetHistoryByID(historyID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Запись истории не найдена")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить запись истории")
		return
	}
	writeJSONSuccess(w, "Запись истории получена", history)
}

// GetUserHistory возвращает все купленные услуги пользователя.
func GetUserHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(r, "user_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный user_id")
		return
	}

	entries, err := db.GetUserHistory(userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "История услуг не найдена")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить историю услуг")
		return
	}
	writeJSONSuccess(w, "История услуг получена", entries)
}
