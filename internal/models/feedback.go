package models

import "time"

// Feedback - обращение пользователя в поддержку сервиса.
type Feedback struct {
	FeedbackID       int64     `json:"feedback_id"`
	UserID           int64     `json:"user_id"`
	FeedbackText     string    `json:"feedback_text"`
	FeedbackDatetime time.Time `json:"feedback_datetime"`
	IsRead           bool      `json:"is_read"`
}
