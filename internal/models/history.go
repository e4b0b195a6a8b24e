package models

import "database/sql"

// UserServiceHistory represents a row of the user_service_history table.
// tarot_id дублирует владельца услуги и фиксируется при создании записи.
type UserServiceHistory struct {
	HistoryID      int64          `json:"history_id"`
	UserID         int64          `json:"user_id"`
	ServiceID      int64          `json:"service_id"`
	TarotID        int64          `json:"tarot_id"`
	StatusID       int64          `json:"status_id"`
	ReviewTitle    sql.NullString `json:"review_title"`
	ReviewText     sql.NullString `json:"review_text"`
	ReviewValue    int            `json:"review_value"` // 0 = оценки нет, иначе 1..5
	ReviewDateTime sql.NullTime   `json:"review_date_time"`
}

// UserHistoryEntry - купленная услуга пользователя с именем таролога и данными услуги.
type UserHistoryEntry struct {
	HistoryID    int64          `json:"history_id"`
	TarotID      int64          `json:"tarot_id"`
	UserID       int64          `json:"user_id"`
	ServiceID    int64          `json:"service_id"`
	StatusID     int64          `json:"status_id"`
	FirstName    sql.NullString `json:"first_name"`
	SecondName   sql.NullString `json:"second_name"`
	ServiceName  string         `json:"service_name"`
	ServicePrice int            `json:"service_price"`
}
