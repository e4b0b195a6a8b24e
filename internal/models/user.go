package models

import (
	"database/sql"
	"time"
)

// UserProfile represents a row of the user_profile table.
type UserProfile struct {
	UserID           int64           `json:"user_id"`
	RoleID           int64           `json:"role_id"`
	Username         string          `json:"username"`
	Email            string          `json:"email"`
	PhoneNumber      string          `json:"phone_number"`
	PasswordHashed   string          `json:"-"` // никогда не отдаём наружу
	FirstName        sql.NullString  `json:"first_name"`
	SecondName       sql.NullString  `json:"second_name"`
	DateBirth        time.Time       `json:"date_birth"`
	DateRegistration time.Time       `json:"date_registration"`
	IsDeleted        bool            `json:"is_deleted"`
	UserDescription  sql.NullString  `json:"user_description"`
	TarotExperience  sql.NullFloat64 `json:"tarot_experience"`
	TarotRating      sql.NullFloat64 `json:"tarot_rating"`
	ReviewCount      int             `json:"review_count"`
	ProfilePicture   sql.NullString  `json:"profile_picture"`
}

// TarotInfo - краткая карточка таролога для витрины.
type TarotInfo struct {
	TarotID          int64           `json:"tarot_id"`
	FirstName        sql.NullString  `json:"first_name"`
	SecondName       sql.NullString  `json:"second_name"`
	TarotDescription sql.NullString  `json:"tarot_description"`
	TarotRating      sql.NullFloat64 `json:"tarot_rating"`
	ReviewsCount     int             `json:"reviews_count"`
}
