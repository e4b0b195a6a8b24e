package db

import (
	"database/sql"
	"log"

	"TaroloGO/internal/models"
)

// CreateHistory создаёт запись истории услуг. service_id обязан указывать на
// существующую услугу - из неё фиксируется tarot_id (денормализованная копия
// владельца услуги). Отсутствующая услуга - ErrNotFound.
func CreateHistory(userID, serviceID, statusID int64) (models.UserServiceHistory, error) {
	var history models.UserServiceHistory

	var tarotID int64
	err := DB.QueryRow("SELECT tarot_id FROM service WHERE service_id = $1", serviceID).Scan(&tarotID)
	if err != nil {
		if err == sql.ErrNoRows {
			return history, ErrNotFound
		}
		log.Printf("CreateHistory: ошибка поиска услуги %d: %v", serviceID, err)
		return history, err
	}

	err = DB.QueryRow(`
        INSERT INTO user_service_history (user_id, service_id, tarot_id, status_id, review_value)
        VALUES ($1, $2, $3, $4, 0)
        RETURNING history_id, user_id, service_id, tarot_id, status_id,
                  review_title, review_text, review_value, review_date_time`,
		userID, serviceID, tarotID, statusID,
	).Scan(&history.HistoryID, &history.UserID, &history.ServiceID, &history.TarotID, &history.StatusID,
		&history.ReviewTitle, &history.ReviewText, &history.ReviewValue, &history.ReviewDateTime)
	if err != nil {
		log.Printf("CreateHistory: ошибка создания записи истории (user_id %d, service_id %d): %v", userID, serviceID, err)
		return models.UserServiceHistory{}, err
	}
	log.Printf("Запись истории #%d (user_id %d, service_id %d, tarot_id %d) создана.", history.HistoryID, userID, serviceID, tarotID)
	return history, nil
}

// UpdateReview применяет отзыв к записи истории и пересчитывает рейтинг таролога.
// Порядок шагов внутри одной транзакции важен:
//  1. читаем запись истории, запоминаем старое значение оценки;
//  2. записываем заголовок/текст/серверную дату отзыва (но не значение);
//  3. пересчитываем рейтинг таролога по состоянию до правки;
//  4. только после пересчёта фиксируем новое значение оценки.
func UpdateReview(historyID int64, reviewTitle, reviewText string, reviewValue int) (models.UserServiceHistory, error) {
	var history models.UserServiceHistory

	tx, err := DB.Begin()
	if err != nil {
		log.Printf("UpdateReview: ошибка начала транзакции: %v", err)
		return history, err
	}
	defer tx.Rollback()

	var tarotID int64
	var oldValue int
	err = tx.QueryRow(`
        SELECT tarot_id, review_value
        FROM user_service_history
        WHERE history_id = $1
        FOR UPDATE`, historyID).Scan(&tarotID, &oldValue)
	if err != nil {
		if err == sql.ErrNoRows {
			return history, ErrNotFound
		}
		log.Printf("UpdateReview: ошибка поиска записи истории %d: %v", historyID, err)
		return history, err
	}

	_, err = tx.Exec(`
        UPDATE user_service_history
        SET review_title = $1, review_text = $2, review_date_time = NOW()
        WHERE history_id = $3`,
		reviewTitle, reviewText, historyID)
	if err != nil {
		log.Printf("UpdateReview: ошибка обновления текста отзыва для записи %d: %v", historyID, err)
		return history, err
	}

	if err = updateTarotRating(tx, tarotID, oldValue, reviewValue); err != nil {
		return history, err
	}

	err = tx.QueryRow(`
        UPDATE user_service_history
        SET review_value = $1
        WHERE history_id = $2
        RETURNING history_id, user_id, service_id, tarot_id, status_id,
                  review_title, review_text, review_value, review_date_time`,
		reviewValue, historyID,
	).Scan(&history.HistoryID, &history.UserID, &history.ServiceID, &history.TarotID, &history.StatusID,
		&history.ReviewTitle, &history.ReviewText, &history.ReviewValue, &history.ReviewDateTime)
	if err != nil {
		log.Printf("UpdateReview: ошибка фиксации значения оценки для записи %d: %v", historyID, err)
		return models.UserServiceHistory{}, err
	}

	if err = tx.Commit(); err != nil {
		log.Printf("UpdateReview: ошибка фиксации транзакции: %v", err)
		return models.UserServiceHistory{}, err
	}
	log.Printf("Отзыв для записи истории #%d обновлён (оценка %d -> %d, tarot_id %d).", historyID, oldValue, reviewValue, tarotID)
	return history, nil
}

// updateTarotRating пересчитывает рейтинг таролога внутри транзакции правки отзыва.
// Сумма и количество берутся по ненулевым оценкам в состоянии до применения правки.
func updateTarotRating(tx *sql.Tx, tarotID int64, oldValue, newValue int) error {
	var exists bool
	err := tx.QueryRow("SELECT EXISTS (SELECT 1 FROM user_profile WHERE user_id = $1)", tarotID).Scan(&exists)
	if err != nil {
		log.Printf("updateTarotRating: ошибка поиска профиля таролога %d: %v", tarotID, err)
		return err
	}
	if !exists {
		return ErrNotFound
	}

	var currentSum, currentCount int
	err = tx.QueryRow(`
        SELECT COALESCE(SUM(review_value), 0), COUNT(*)
        FROM user_service_history
        WHERE tarot_id = $1 AND review_value != 0`, tarotID).Scan(&currentSum, &currentCount)
	if err != nil {
		log.Printf("updateTarotRating: ошибка подсчёта отзывов для tarot_id %d: %v", tarotID, err)
		return err
	}

	rating, bumpCount := recalculatedRating(currentSum, currentCount, oldValue, newValue)
	if bumpCount {
		_, err = tx.Exec(`
            UPDATE user_profile
            SET tarot_rating = $1, review_count = review_count + 1
            WHERE user_id = $2`, rating, tarotID)
	} else {
		_, err = tx.Exec(`
            UPDATE user_profile
            SET tarot_rating = $1
            WHERE user_id = $2`, rating, tarotID)
	}
	if err != nil {
		log.Printf("updateTarotRating: ошибка обновления рейтинга tarot_id %d: %v", tarotID, err)
		return err
	}
	return nil
}

// recalculatedRating - арифметика пересчёта рейтинга. Менять её нельзя: клиенты
// полагаются на исторически сложившиеся значения. Если ненулевых отзывов нет,
// рейтинг равен новой оценке (или NULL при нулевой). Иначе новая средняя считается
// как (сумма - старое + новое) / (количество + 1): знаменатель учитывает правку как
// добавление к снимку, в который её новое значение ещё не вошло. Счётчик отзывов
// увеличивается только на этой ветке.
func recalculatedRating(currentSum, currentCount, oldValue, newValue int) (sql.NullFloat64, bool) {
	if currentCount == 0 {
		if newValue == 0 {
			return sql.NullFloat64{}, false
		}
		return sql.NullFloat64{Float64: float64(newValue), Valid: true}, false
	}
	newRating := float64(currentSum-oldValue+newValue) / float64(currentCount+1)
	return sql.NullFloat64{Float64: newRating, Valid: true}, true
}

// UpdateHistoryStatus меняет статус записи истории. И запись, и статус обязаны
// существовать, иначе ErrNotFound.
func UpdateHistoryStatus(historyID, statusID int64) error {
	var exists bool
	err := DB.QueryRow("SELECT EXISTS (SELECT 1 FROM status WHERE status_id = $1)", statusID).Scan(&exists)
	if err != nil {
		log.Printf("UpdateHistoryStatus: ошибка поиска статуса %d: %v", statusID, err)
		return err
	}
	if !exists {
		return ErrNotFound
	}

	res, err := DB.Exec("UPDATE user_service_history SET status_id = $1 WHERE history_id = $2", statusID, historyID)
	if err != nil {
		log.Printf("UpdateHistoryStatus: ошибка обновления статуса записи %d: %v", historyID, err)
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	log.Printf("Статус записи истории #%d обновлён на %d.", historyID, statusID)
	return nil
}

// GetHistoryByID возвращает запись истории по идентификатору.
func GetHistoryByID(historyID int64) (models.UserServiceHistory, error) {
	var history models.UserServiceHistory
	err := DB.QueryRow(`
        SELECT history_id, user_id, service_id, tarot_id, status_id,
               review_title, review_text, review_value, review_date_time
        FROM user_service_history
        WHERE history_id = $1`, historyID,
	).Scan(&history.HistoryID, &history.UserID, &history.ServiceID, &history.TarotID, &history.StatusID,
		&history.ReviewTitle, &history.ReviewText, &history.ReviewValue, &history.ReviewDateTime)
	if err != nil {
		if err == sql.ErrNoRows {
			return history, ErrNotFound
		}
		log.Printf("GetHistoryByID: ошибка получения записи %d: %v", historyID, err)
		return history, err
	}
	return history, nil
}

// GetUserHistory возвращает все купленные услуги пользователя с именем таролога
// и данными услуги.
func GetUserHistory(userID int64) ([]models.UserHistoryEntry, error) {
	rows, err := DB.Query(`
        SELECT h.history_id, h.tarot_id, h.user_id, h.service_id, h.status_id,
               u.first_name, u.second_name, s.service_name, s.service_price
        FROM user_service_history h
        JOIN user_profile u ON h.tarot_id = u.user_id
        JOIN service s ON h.service_id = s.service_id
        WHERE h.user_id = $1
        ORDER BY h.history_id ASC`, userID)
	if err != nil {
		log.Printf("GetUserHistory: ошибка получения истории для user_id %d: %v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.UserHistoryEntry
	for rows.Next() {
		var e models.UserHistoryEntry
		errScan := rows.Scan(&e.HistoryID, &e.TarotID, &e.UserID, &e.ServiceID, &e.StatusID,
			&e.FirstName, &e.SecondName, &e.ServiceName, &e.ServicePrice)
		if errScan != nil {
			log.Printf("GetUserHistory: ошибка сканирования строки: %v", errScan)
			return nil, errScan
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNotFound
	}
	return entries, nil
}

// GetTarotHistoryForExport возвращает записи истории таролога для выгрузки отчёта.
func GetTarotHistoryForExport(tarotID int64) ([]models.UserServiceHistory, error) {
	rows, err := DB.Query(`
        SELECT history_id, user_id, service_id, tarot_id, status_id,
               review_title, review_text, review_value, review_date_time
        FROM user_service_history
        WHERE tarot_id = $1
        ORDER BY history_id ASC`, tarotID)
	if err != nil {
		log.Printf("GetTarotHistoryForExport: ошибка получения истории tarot_id %d: %v", tarotID, err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.UserServiceHistory
	for rows.Next() {
		var h models.UserServiceHistory
		errScan := rows.Scan(&h.HistoryID, &h.UserID, &h.ServiceID, &h.TarotID, &h.StatusID,
			&h.ReviewTitle, &h.ReviewText, &h.ReviewValue, &h.ReviewDateTime)
		if errScan != nil {
			return nil, errScan
		}
		entries = append(entries, h)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNotFound
	}
	return entries, nil
}
