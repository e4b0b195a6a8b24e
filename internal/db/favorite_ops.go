package db

import (
	"log"

	"TaroloGO/internal/models"
)

// CreateFavoriteTarot добавляет таролога в избранные пользователя.
func CreateFavoriteTarot(userID, tarotID int64) (models.UserFavoriteTarot, error) {
	var f models.UserFavoriteTarot
	err := DB.QueryRow(`
        INSERT INTO user_favorite_tarots (user_id, tarot_id)
        VALUES ($1, $2)
        RETURNING favorite_tarot_id, user_id, tarot_id`,
		userID, tarotID).Scan(&f.FavoriteTarotID, &f.UserID, &f.TarotID)
	if err != nil {
		log.Printf("CreateFavoriteTarot: ошибка добавления избранного (%d, %d): %v", userID, tarotID, err)
		return models.UserFavoriteTarot{}, err
	}
	log.Printf("Таролог %d добавлен в избранные пользователя %d.", tarotID, userID)
	return f, nil
}

// GetFavoriteTarots возвращает всех тарологов в избранных у пользователя.
func GetFavoriteTarots(userID int64) ([]models.UserFavoriteTarot, error) {
	rows, err := DB.Query(`
        SELECT favorite_tarot_id, user_id, tarot_id
        FROM user_favorite_tarots
        WHERE user_id = $1
        ORDER BY favorite_tarot_id ASC`, userID)
	if err != nil {
		log.Printf("GetFavoriteTarots: ошибка получения избранных user_id %d: %v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var favorites []models.UserFavoriteTarot
	for rows.Next() {
		var f models.UserFavoriteTarot
		if errScan := rows.Scan(&f.FavoriteTarotID, &f.UserID, &f.TarotID); errScan != nil {
			return nil, errScan
		}
		favorites = append(favorites, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	if len(favorites) == 0 {
		return nil, ErrNotFound
	}
	return favorites, nil
}

// DeleteFavoriteTarot удаляет таролога из избранных пользователя.
func DeleteFavoriteTarot(userID, tarotID int64) error {
	res, err := DB.Exec(`
        DELETE FROM user_favorite_tarots
        WHERE user_id = $1 AND tarot_id = $2`, userID, tarotID)
	if err != nil {
		log.Printf("DeleteFavoriteTarot: ошибка удаления избранного (%d, %d): %v", userID, tarotID, err)
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
