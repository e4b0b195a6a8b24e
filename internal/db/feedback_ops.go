package db

import (
	"database/sql"
	"log"
	"time"

	"TaroloGO/internal/models"
)

// CreateFeedback сохраняет обращение пользователя. Пользователь обязан существовать.
func CreateFeedback(userID int64, feedbackText string, feedbackDatetime time.Time) (models.Feedback, error) {
	var exists bool
	err := DB.QueryRow("SELECT EXISTS (SELECT 1 FROM user_profile WHERE user_id = $1)", userID).Scan(&exists)
	if err != nil {
		log.Printf("CreateFeedback: ошибка поиска пользователя %d: %v", userID, err)
		return models.Feedback{}, err
	}
	if !exists {
		return models.Feedback{}, ErrNotFound
	}

	var f models.Feedback
	err = DB.QueryRow(`
        INSERT INTO feedback (user_id, feedback_text, feedback_datetime, is_read)
        VALUES ($1, $2, $3, FALSE)
        RETURNING feedback_id, user_id, feedback_text, feedback_datetime, is_read`,
		userID, feedbackText, feedbackDatetime,
	).Scan(&f.FeedbackID, &f.UserID, &f.FeedbackText, &f.FeedbackDatetime, &f.IsRead)
	if err != nil {
		log.Printf("CreateFeedback: ошибка создания обращения от user_id %d: %v", userID, err)
		return models.Feedback{}, err
	}
	log.Printf("Обращение #%d от пользователя %d сохранено.", f.FeedbackID, userID)
	return f, nil
}

// MarkOldestUnreadFeedback помечает прочитанным самое старое непрочитанное обращение
// и возвращает его. Если непрочитанных нет - ErrNotFound.
func MarkOldestUnreadFeedback() (models.Feedback, error) {
	var f models.Feedback
	err := DB.QueryRow(`
        UPDATE feedback
        SET is_read = TRUE
        WHERE feedback_id = (
            SELECT feedback_id FROM feedback
            WHERE is_read = FALSE
            ORDER BY feedback_datetime ASC
            LIMIT 1
        )
        RETURNING feedback_id, user_id, feedback_text, feedback_datetime, is_read`,
	).Scan(&f.FeedbackID, &f.UserID, &f.FeedbackText, &f.FeedbackDatetime, &f.IsRead)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Feedback{}, ErrNotFound
		}
		log.Printf("MarkOldestUnreadFeedback: ошибка обновления: %v", err)
		return models.Feedback{}, err
	}
	return f, nil
}

// GetFeedbackByID возвращает обращение по идентификатору.
func GetFeedbackByID(feedbackID int64) (models.Feedback, error) {
	var f models.Feedback
	err := DB.QueryRow(`
        SELECT feedback_id, user_id, feedback_text, feedback_datetime, is_read
        FROM feedback WHERE feedback_id = $1`, feedbackID,
	).Scan(&f.FeedbackID, &f.UserID, &f.FeedbackText, &f.FeedbackDatetime, &f.IsRead)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Feedback{}, ErrNotFound
		}
		log.Printf("GetFeedbackByID: ошибка получения обращения %d: %v", feedbackID, err)
		return models.Feedback{}, err
	}
	return f, nil
}

// GetUserFeedback возвращает все обращения пользователя.
func GetUserFeedback(userID int64) ([]models.Feedback, error) {
	rows, err := DB.Query(`
        SELECT feedback_id, user_id, feedback_text, feedback_datetime, is_read
        FROM feedback
        WHERE user_id = $1
        ORDER BY feedback_datetime ASC`, userID)
	if err != nil {
		log.Printf("GetUserFeedback: ошибка получения обращений user_id %d: %v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var feedbacks []models.Feedback
	for rows.Next() {
		var f models.Feedback
		errScan := rows.Scan(&f.FeedbackID, &f.UserID, &f.FeedbackText, &f.FeedbackDatetime, &f.IsRead)
		if errScan != nil {
			return nil, errScan
		}
		feedbacks = append(feedbacks, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	if len(feedbacks) == 0 {
		return nil, ErrNotFound
	}
	return feedbacks, nil
}

// DeleteOldReadFeedback удаляет прочитанные обращения старше 14 дней.
// Возвращает число удалённых строк.
func DeleteOldReadFeedback() (int64, error) {
	res, err := DB.Exec(`
        DELETE FROM feedback
        WHERE is_read = TRUE AND feedback_datetime < NOW() - INTERVAL '14 days'`)
	if err != nil {
		log.Printf("DeleteOldReadFeedback: ошибка удаления старых обращений: %v", err)
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	log.Printf("Удалено %d прочитанных обращений старше 14 дней.", affected)
	return affected, nil
}
