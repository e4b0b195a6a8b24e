package models

import (
	"database/sql"
	"time"
)

// Message represents a row of the message table. Immutable after insert except for
// message_date_read, which is set once by the bulk read-marking operation.
type Message struct {
	MessageID       int64        `json:"message_id"`
	SenderID        int64        `json:"sender_id"`
	RecipientID     int64        `json:"recipient_id"`
	MessageText     string       `json:"message_text"`
	MessageDateSend time.Time    `json:"message_date_send"`
	MessageDateRead sql.NullTime `json:"message_date_read"`
}

// Contact - материализованная пара "пользователь обменивался сообщениями с контактом",
// по одной строке на направление. Никогда не обновляется и не удаляется автоматически.
type Contact struct {
	ContactID     int64 `json:"contact_id"`
	UserID        int64 `json:"user_id"`
	UserContactID int64 `json:"user_contact_id"`
}

// ContactSummary - последнее сообщение в переписке с одним собеседником,
// дополненное полями его профиля. Ровно одна строка на собеседника.
type ContactSummary struct {
	CompanionID     int64          `json:"companion_id"`
	Username        string         `json:"username"`
	FirstName       sql.NullString `json:"first_name"`
	SecondName      sql.NullString `json:"second_name"`
	SenderID        int64          `json:"sender_id"`
	MessageText     string         `json:"message_text"`
	MessageDateSend time.Time      `json:"message_date_send"`
	IsRead          bool           `json:"is_read"`
}
