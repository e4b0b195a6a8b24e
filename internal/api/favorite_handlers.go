package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"TaroloGO/internal/db"
)

// FavoriteCreateRequest - тело запроса на добавление таролога в избранные.
type FavoriteCreateRequest struct {
	UserID  int64 `json:"user_id"`
	TarotID int64 `json:"tarot_id"`
}

// CreateFavoriteTarot добавляет таролога в избранные пользователя.
func CreateFavoriteTarot(w http.ResponseWriter, r *http.Request) {
	var req FavoriteCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID <= 0 || req.TarotID <= 0 {
		writeJSONError(w, http.StatusBadRequest, "Некорректное тело запроса")
		return
	}
	favorite, err := db.CreateFavoriteTarot(req.UserID, req.TarotID)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Не удалось добавить в избранное")
		return
	}
	writeJSONSuccess(w, "Таролог добавлен в избранное", favorite)
}

// GetFavoriteTarots возвращает всех избранных тарологов пользователя.
func GetFavoriteTarots(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(r, "user_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный user_id")
		return
	}
	favorites, err := db.GetFavoriteTarots(userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Избранные тарологи не найдены")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить избранное")
		return
	}
	writeJSONSuccess(w, "Избранное получено", favorites)
}

// DeleteFavoriteTarot удаляет таролога из избранных пользователя.
func DeleteFavoriteTarot(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(r, "user_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный user_id")
		return
	}
	tarotID, ok := parseIDParam(r, "tarot_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный tarot_id")
		return
	}
	if err := db.DeleteFavoriteTarot(userID, tarotID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Запись избранного не найдена")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось удалить из избранного")
		return
	}
	writeJSONSuccess(w, "Таролог удалён из избранного", nil)
}
