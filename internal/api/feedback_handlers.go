package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"TaroloGO/internal/db"
)

// FeedbackCreateRequest - тело запроса на создание обращения в поддержку.
type FeedbackCreateRequest struct {
	UserID       int64  `json:"user_id"`
	FeedbackText string `json:"feedback_text"`
}

// CreateFeedback сохраняет обращение пользователя в поддержку.
func CreateFeedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID <= 0 || req.FeedbackText == "" {
		writeJSONError(w, http.StatusBadRequest, "Некорректное тело запроса")
		return
	}
	feedback, err := db.CreateFeedback(req.UserID, req.FeedbackText, time.Now())
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Пользователь не найден")
			return
		}
		writeJSONError(w, http.StatusBadRequest, "Не удалось сохранить обращение")
		return
	}
	writeJSONSuccess(w, "Обращение сохранено", feedback)
}

// TakeNextFeedback выдаёт оператору самое старое непрочитанное обращение,
// попутно помечая его прочитанным.
func TakeNextFeedback(w http.ResponseWriter, r *http.Request) {
	feedback, err := db.MarkOldestUnreadFeedback()
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Непрочитанных обращений нет")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить обращение")
		return
	}
	writeJSONSuccess(w, "Обращение выдано", feedback)
}

// GetFeedback возвращает обращение по идентификатору.
func GetFeedback(w http.ResponseWriter, r *http.Request) {
	feedbackID, ok := parseIDParam(r, "feedback_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный feedback_id")
		return
	}
	feedback, err := db.GetFeedbackByID(feedbackID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Обращение не найдено")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить обращение")
		return
	}
	writeJSONSuccess(w, "Обращение получено", feedback)
}

// GetUserFeedback возвращает все обращения пользователя.
func GetUserFeedback(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(r, "user_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный user_id")
		return
	}
	feedbacks, err := db.GetUserFeedback(userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Обращения не найдены")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить обращения")
		return
	}
	writeJSONSuccess(w, "Обращения получены", feedbacks)
}

// PurgeResponse - результат чистки старых обращений.
type PurgeResponse struct {
	Deleted int64 `json:"deleted"`
}

// PurgeOldFeedback удаляет прочитанные обращения старше двух недель.
func PurgeOldFeedback(w http.ResponseWriter, r *http.Request) {
	deleted, err := db.DeleteOldReadFeedback()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Не удалось удалить старые обращения")
		return
	}
	writeJSONSuccess(w, "Старые обращения удалены", PurgeResponse{Deleted: deleted})
}
