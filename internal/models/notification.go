package models

import "time"

// NotificationStatus represents a row of the notification_status dictionary.
type NotificationStatus struct {
	NotificationStatusID   int64  `json:"notification_status_id"`
	NotificationStatusName string `json:"notification_status_name"`
}

// NotificationType represents a row of the notification_type dictionary.
type NotificationType struct {
	NotificationTypeID   int64  `json:"notification_type_id"`
	NotificationTypeName string `json:"notification_type_name"`
}

// SystemNotification represents a row of the system_notification table.
type SystemNotification struct {
	NotificationID       int64     `json:"notification_id"`
	NotificationStatusID int64     `json:"notification_status_id"`
	NotificationTypeID   int64     `json:"notification_type_id"`
	NotificationTitle    string    `json:"notification_title"`
	NotificationText     string    `json:"notification_text"`
	NotificationDateTime time.Time `json:"notification_date_time"`
}

// UserSystemNotification - связь "пользователь - уведомление" после рассылки.
type UserSystemNotification struct {
	UserNotificationID int64 `json:"user_notification_id"`
	UserID             int64 `json:"user_id"`
	NotificationID     int64 `json:"notification_id"`
}

// NotificationByUser - то, что видит пользователь в списке своих уведомлений.
type NotificationByUser struct {
	NotificationTitle string `json:"notification_title"`
	NotificationText  string `json:"notification_text"`
}
