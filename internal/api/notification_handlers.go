package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"TaroloGO/internal/db"
)

// --- Статусы уведомлений ---

// CreateNotificationStatus создаёт статус уведомления.
func CreateNotificationStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NotificationStatusName string `json:"notification_status_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NotificationStatusName == "" {
		writeJSONError(w, http.StatusBadRequest, "Некорректное тело запроса")
		return
	}
	status, err := db.CreateNotificationStatus(req.NotificationStatusName)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Не удалось создать статус уведомления")
		return
	}
	writeJSONSuccess(w, "Статус уведомления создан", status)
}

// GetNotificationStatus возвращает статус уведомления по идентификатору.
func GetNotificationStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "notification_status_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный notification_status_id")
		return
	}
	status, err := db.GetNotificationStatusByID(id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Статус уведомления не найден")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить статус уведомления")
		return
	}
	writeJSONSuccess(w, "Статус уведомления получен", status)
}

// DeleteNotificationStatus удаляет статус уведомления.
func DeleteNotificationStatus(w http.ResponseWriter, r *http.Request) {
	deleteByIDHandler(w, r, "notification_status_id", db.DeleteNotificationStatus, "Статус уведомления не найден", "Статус уведомления удалён")
}

// --- Типы уведомлений ---

// CreateNotificationType создаёт тип уведомления.
func CreateNotificationType(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NotificationTypeName string `json:"notification_type_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NotificationTypeName == "" {
		writeJSONError(w, http.StatusBadRequest, "Некорректное тело запроса")
		return
	}
	nType, err := db.CreateNotificationType(req.NotificationTypeName)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Не удалось создать тип уведомления")
		return
	}
	writeJSONSuccess(w, "Тип уведомления создан", nType)
}

// GetNotificationType возвращает тип уведомления по идентификатору.
func GetNotificationType(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "notification_type_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный notification_type_id")
		return
	}
	nType, err := db.GetNotificationTypeByID(id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Тип уведомления не найден")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить тип уведомления")
		return
	}
	writeJSONSuccess(w, "Тип уведомления получен", nType)
}

// DeleteNotificationType удаляет тип уведомления.
func DeleteNotificationType(w http.ResponseWriter, r *http.Request) {
	deleteByIDHandler(w, r, "notification_type_id", db.DeleteNotificationType, "Тип уведомления не найден", "Тип уведомления удалён")
}

// --- Уведомления ---

// NotificationCreateRequest - тело запроса на создание уведомления.
type NotificationCreateRequest struct {
	NotificationStatusID int64  `json:"notification_status_id"`
	NotificationTypeID   int64  `json:"notification_type_id"`
	NotificationTitle    string `json:"notification_title"`
	NotificationText     string `json:"notification_text"`
	NotificationDateTime string `json:"notification_date_time"`
}

// CreateNotification создаёт системное уведомление. Если дата не передана,
// ставится текущее время сервера.
func CreateNotification(w http.ResponseWriter, r *http.Request) {
	var req NotificationCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.NotificationStatusID <= 0 || req.NotificationTypeID <= 0 || req.NotificationTitle == "" {
		writeJSONError(w, http.StatusBadRequest, "Некорректное тело запроса")
		return
	}

	dateTime := time.Now()
	if req.NotificationDateTime != "" {
		parsed, ok := parseTimestamp(req.NotificationDateTime)
		if !ok {
			writeJSONError(w, http.StatusBadRequest, "Некорректная дата уведомления")
			return
		}
		dateTime = parsed
	}

	notification, err := db.CreateNotification(req.NotificationStatusID, req.NotificationTypeID, req.NotificationTitle, req.NotificationText, dateTime)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Не удалось создать уведомление")
		return
	}
	writeJSONSuccess(w, "Уведомление создано", notification)
}

// GetNotification возвращает уведомление по идентификатору.
func GetNotification(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "notification_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный notification_id")
		return
	}
	notification, err := db.GetNotificationByID(id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Уведомление не найдено")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить уведомление")
		return
	}
	writeJSONSuccess(w, "Уведомление получено", notification)
}

// DeleteNotification удаляет уведомление.
func DeleteNotification(w http.ResponseWriter, r *http.Request) {
	deleteByIDHandler(w, r, "notification_id", db.DeleteNotification, "Уведомление не найдено", "Уведомление удалено")
}

// FanOutResponse - результат рассылки уведомления по роли.
type FanOutResponse struct {
	NotificationID int64 `json:"notification_id"`
	RoleID         int64 `json:"role_id"`
	UsersNotified  int64 `json:"users_notified"`
}

// FanOutNotification рассылает уведомление всем пользователям роли.
// role_id = 0 означает рассылку всем пользователям.
func FanOutNotification(w http.ResponseWriter, r *http.Request) {
	notificationID, ok := parseIDParam(r, "notification_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный notification_id")
		return
	}
	var req struct {
		RoleID int64 `json:"role_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RoleID < 0 {
		writeJSONError(w, http.StatusBadRequest, "Некорректное тело запроса")
		return
	}

	notified, err := db.FanOutNotificationByRole(req.RoleID, notificationID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Получатели не найдены")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось разослать уведомление")
		return
	}
	writeJSONSuccess(w, "Уведомление разослано", FanOutResponse{
		NotificationID: notificationID,
		RoleID:         req.RoleID,
		UsersNotified:  notified,
	})
}

// GetUserNotifications возвращает все уведомления пользователя.
func GetUserNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(r, "user_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный user_id")
		return
	}
	notifications, err := db.GetNotificationsByUser(userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Уведомления не найдены")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить уведомления")
		return
	}
	writeJSONSuccess(w, "Уведомления получены", notifications)
}
