package models

// UserFavoriteTarot - таролог в избранном у пользователя.
// Уникальность пары (user_id, tarot_id) обеспечивается ограничением в БД.
type UserFavoriteTarot struct {
	FavoriteTarotID int64 `json:"favorite_tarot_id"`
	UserID          int64 `json:"user_id"`
	TarotID         int64 `json:"tarot_id"`
}
