package db

import (
	"database/sql"
	"log"
	"time"

	"TaroloGO/internal/constants"
	"TaroloGO/internal/models"
)

// CreateNotificationStatus создаёт статус уведомления.
func CreateNotificationStatus(name string) (models.NotificationStatus, error) {
	var s models.NotificationStatus
	err := DB.QueryRow(`
        INSERT INTO notification_status (notification_status_name) VALUES ($1)
        RETURNING notification_status_id, notification_status_name`, name,
	).Scan(&s.NotificationStatusID, &s.NotificationStatusName)
	if err != nil {
		log.Printf("CreateNotificationStatus: ошибка создания статуса %s: %v", name, err)
		return models.NotificationStatus{}, err
	}
	return s, nil
}

// GetNotificationStatusByID возвращает статус уведомления по идентификатору.
func GetNotificationStatusByID(id int64) (models.NotificationStatus, error) {
	var s models.NotificationStatus
	err := DB.QueryRow(`
        SELECT notification_status_id, notification_status_name
        FROM notification_status WHERE notification_status_id = $1`, id,
	).Scan(&s.NotificationStatusID, &s.NotificationStatusName)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.NotificationStatus{}, ErrNotFound
		}
		log.Printf("GetNotificationStatusByID: ошибка получения статуса %d: %v", id, err)
		return models.NotificationStatus{}, err
	}
	return s, nil
}

// DeleteNotificationStatus удаляет статус уведомления.
func DeleteNotificationStatus(id int64) error {
	return deleteByID("notification_status", "notification_status_id", id, "DeleteNotificationStatus")
}

// CreateNotificationType создаёт тип уведомления.
func CreateNotificationType(name string) (models.NotificationType, error) {
	var t models.NotificationType
	err := DB.QueryRow(`
        INSERT INTO notification_type (notification_type_name) VALUES ($1)
        RETURNING notification_type_id, notification_type_name`, name,
	).Scan(&t.NotificationTypeID, &t.NotificationTypeName)
	if err != nil {
		log.Printf("CreateNotificationType: ошибка создания типа %s: %v", name, err)
		return models.NotificationType{}, err
	}
	return t, nil
}

// GetNotificationTypeByID возвращает тип уведомления по идентификатору.
func GetNotificationTypeByID(id int64) (models.NotificationType, error) {
	var t models.NotificationType
	err := DB.QueryRow(`
        SELECT notification_type_id, notification_type_name
        FROM notification_type WHERE notification_type_id = $1`, id,
	).Scan(&t.NotificationTypeID, &t.NotificationTypeName)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.NotificationType{}, ErrNotFound
		}
		log.Printf("GetNotificationTypeByID: ошибка получения типа %d: %v", id, err)
		return models.NotificationType{}, err
	}
	return t, nil
}

// DeleteNotificationType удаляет тип уведомления.
func DeleteNotificationType(id int64) error {
	return deleteByID("notification_type", "notification_type_id", id, "DeleteNotificationType")
}

// CreateNotification создаёт системное уведомление.
func CreateNotification(statusID, typeID int64, title, text string, dateTime time.Time) (models.SystemNotification, error) {
	var n models.SystemNotification
	err := DB.QueryRow(`
        INSERT INTO system_notification (notification_status_id, notification_type_id, notification_title, notification_text, notification_date_time)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING notification_id, notification_status_id, notification_type_id, notification_title, notification_text, notification_date_time`,
		statusID, typeID, title, text, dateTime,
	).Scan(&n.NotificationID, &n.NotificationStatusID, &n.NotificationTypeID, &n.NotificationTitle, &n.NotificationText, &n.NotificationDateTime)
	if err != nil {
		log.Printf("CreateNotification: ошибка создания уведомления %s: %v", title, err)
		return models.SystemNotification{}, err
	}
	log.Printf("Уведомление #%d (%s) создано.", n.NotificationID, title)
	return n, nil
}

// GetNotificationByID возвращает уведомление по идентификатору.
func GetNotificationByID(id int64) (models.SystemNotification, error) {
	var n models.SystemNotification
	err := DB.QueryRow(`
        SELECT notification_id, notification_status_id, notification_type_id, notification_title, notification_text, notification_date_time
        FROM system_notification WHERE notification_id = $1`, id,
	).Scan(&n.NotificationID, &n.NotificationStatusID, &n.NotificationTypeID, &n.NotificationTitle, &n.NotificationText, &n.NotificationDateTime)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.SystemNotification{}, ErrNotFound
		}
		log.Printf("GetNotificationByID: ошибка получения уведомления %d: %v", id, err)
		return models.SystemNotification{}, err
	}
	return n, nil
}

// DeleteNotification удаляет уведомление.
func DeleteNotification(id int64) error {
	return deleteByID("system_notification", "notification_id", id, "DeleteNotification")
}

// FanOutNotificationByRole привязывает уведомление ко всем пользователям указанной
// роли (constants.ROLE_ALL - ко всем пользователям). Возвращает число созданных
// связей; отсутствие подходящих пользователей - ErrNotFound.
func FanOutNotificationByRole(roleID, notificationID int64) (int64, error) {
	query := `
        INSERT INTO user_system_notification (user_id, notification_id)
        SELECT user_id, $1 FROM user_profile WHERE role_id = $2
        ON CONFLICT (user_id, notification_id) DO NOTHING`
	args := []interface{}{notificationID, roleID}
	if roleID == constants.ROLE_ALL {
		query = `
            INSERT INTO user_system_notification (user_id, notification_id)
            SELECT user_id, $1 FROM user_profile
            ON CONFLICT (user_id, notification_id) DO NOTHING`
		args = []interface{}{notificationID}
	}

	res, err := DB.Exec(query, args...)
	if err != nil {
		log.Printf("FanOutNotificationByRole: ошибка рассылки уведомления %d по роли %d: %v", notificationID, roleID, err)
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, ErrNotFound
	}
	log.Printf("Уведомление #%d разослано %d пользователям (роль %d).", notificationID, affected, roleID)
	return affected, nil
}

// GetNotificationsByUser возвращает все уведомления пользователя.
func GetNotificationsByUser(userID int64) ([]models.NotificationByUser, error) {
	rows, err := DB.Query(`
        SELECT n.notification_title, n.notification_text
        FROM system_notification n
        JOIN user_system_notification un ON un.notification_id = n.notification_id
        WHERE un.user_id = $1
        ORDER BY n.notification_date_time DESC`, userID)
	if err != nil {
		log.Printf("GetNotificationsByUser: ошибка получения уведомлений user_id %d: %v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var notifications []models.NotificationByUser
	for rows.Next() {
		var n models.NotificationByUser
		if errScan := rows.Scan(&n.NotificationTitle, &n.NotificationText); errScan != nil {
			return nil, errScan
		}
		notifications = append(notifications, n)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	if len(notifications) == 0 {
		return nil, ErrNotFound
	}
	return notifications, nil
}
