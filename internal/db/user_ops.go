package db

import (
	"database/sql"
	"log"
	"time"

	"TaroloGO/internal/constants"
	"TaroloGO/internal/models"
)

const userProfileColumns = `user_id, role_id, username, email, phone_number, password_hashed,
        first_name, second_name, date_birth, date_registration, is_deleted,
        user_description, tarot_experience, tarot_rating, review_count, profile_picture`

func scanUserProfile(row *sql.Row) (models.UserProfile, error) {
	var u models.UserProfile
	err := row.Scan(&u.UserID, &u.RoleID, &u.Username, &u.Email, &u.PhoneNumber, &u.PasswordHashed,
		&u.FirstName, &u.SecondName, &u.DateBirth, &u.DateRegistration, &u.IsDeleted,
		&u.UserDescription, &u.TarotExperience, &u.TarotRating, &u.ReviewCount, &u.ProfilePicture)
	return u, err
}

// CreateUser создаёт профиль пользователя. Пароль должен быть уже захеширован.
func CreateUser(username string, roleID int64, email, phoneNumber, passwordHashed string, dateBirth time.Time) (models.UserProfile, error) {
	row := DB.QueryRow(`
        INSERT INTO user_profile (role_id, username, email, phone_number, password_hashed, date_birth, date_registration)
        VALUES ($1, $2, $3, $4, $5, $6, NOW())
        RETURNING `+userProfileColumns,
		roleID, username, email, phoneNumber, passwordHashed, dateBirth)
	u, err := scanUserProfile(row)
	if err != nil {
		log.Printf("CreateUser: ошибка создания пользователя %s: %v", username, err)
		return models.UserProfile{}, err
	}
	log.Printf("Пользователь #%d (%s) успешно создан.", u.UserID, username)
	return u, nil
}

// GetUserByID возвращает профиль пользователя по идентификатору.
func GetUserByID(userID int64) (models.UserProfile, error) {
	row := DB.QueryRow(`SELECT `+userProfileColumns+` FROM user_profile WHERE user_id = $1`, userID)
	u, err := scanUserProfile(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.UserProfile{}, ErrNotFound
		}
		log.Printf("GetUserByID: ошибка получения пользователя %d: %v", userID, err)
		return models.UserProfile{}, err
	}
	return u, nil
}

// GetUserByEmail возвращает профиль пользователя по email (для аутентификации).
func GetUserByEmail(email string) (models.UserProfile, error) {
	row := DB.QueryRow(`SELECT `+userProfileColumns+` FROM user_profile WHERE email = $1`, email)
	u, err := scanUserProfile(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.UserProfile{}, ErrNotFound
		}
		log.Printf("GetUserByEmail: ошибка получения пользователя по email: %v", err)
		return models.UserProfile{}, err
	}
	return u, nil
}

// updateUserColumn обновляет одну колонку профиля. Список колонок фиксирован
// вызывающими функциями, пользовательский ввод сюда не попадает.
func updateUserColumn(userID int64, column string, value interface{}) error {
	res, err := DB.Exec(`UPDATE user_profile SET `+column+` = $1 WHERE user_id = $2`, value, userID)
	if err != nil {
		log.Printf("updateUserColumn: ошибка обновления %s для user_id %d: %v", column, userID, err)
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	log.Printf("Поле %s пользователя #%d обновлено.", column, userID)
	return nil
}

// UpdateUserFirstName обновляет имя в профиле.
func UpdateUserFirstName(userID int64, firstName string) error {
	return updateUserColumn(userID, "first_name", firstName)
}

// UpdateUserSecondName обновляет фамилию в профиле.
func UpdateUserSecondName(userID int64, secondName string) error {
	return updateUserColumn(userID, "second_name", secondName)
}

// UpdateUserDateBirth обновляет дату рождения в профиле.
func UpdateUserDateBirth(userID int64, dateBirth time.Time) error {
	return updateUserColumn(userID, "date_birth", dateBirth)
}

// UpdateUserIsDeleted выставляет флаг удаления профиля.
func UpdateUserIsDeleted(userID int64, isDeleted bool) error {
	return updateUserColumn(userID, "is_deleted", isDeleted)
}

// UpdateUserDescription обновляет описание таролога.
func UpdateUserDescription(userID int64, description string) error {
	return updateUserColumn(userID, "user_description", description)
}

// UpdateUserProfilePicture сохраняет имя файла фотографии профиля.
func UpdateUserProfilePicture(userID int64, filename string) error {
	return updateUserColumn(userID, "profile_picture", filename)
}

// UpdateTarotExperience обновляет стаж таролога. Профиль обязан иметь роль таролога.
func UpdateTarotExperience(userID int64, experience float64) (bool, error) {
	var roleID int64
	err := DB.QueryRow("SELECT role_id FROM user_profile WHERE user_id = $1", userID).Scan(&roleID)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, ErrNotFound
		}
		log.Printf("UpdateTarotExperience: ошибка поиска пользователя %d: %v", userID, err)
		return false, err
	}
	if roleID != constants.ROLE_TAROT {
		return false, nil
	}
	if err := updateUserColumn(userID, "tarot_experience", experience); err != nil {
		return false, err
	}
	return true, nil
}

// GetTarots возвращает витрину тарологов: все профили с ролью таролога.
func GetTarots() ([]models.TarotInfo, error) {
	rows, err := DB.Query(`
        SELECT user_id, first_name, second_name, user_description, tarot_rating, review_count
        FROM user_profile
        WHERE role_id = $1 AND is_deleted = FALSE
        ORDER BY user_id ASC`, constants.ROLE_TAROT)
	if err != nil {
		log.Printf("GetTarots: ошибка получения списка тарологов: %v", err)
		return nil, err
	}
	defer rows.Close()

	var tarots []models.TarotInfo
	for rows.Next() {
		var t models.TarotInfo
		errScan := rows.Scan(&t.TarotID, &t.FirstName, &t.SecondName, &t.TarotDescription, &t.TarotRating, &t.ReviewsCount)
		if errScan != nil {
			log.Printf("GetTarots: ошибка сканирования таролога: %v", errScan)
			return nil, errScan
		}
		tarots = append(tarots, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	if len(tarots) == 0 {
		return nil, ErrNotFound
	}
	return tarots, nil
}

// DeleteUser удаляет профиль пользователя.
func DeleteUser(userID int64) error {
	res, err := DB.Exec("DELETE FROM user_profile WHERE user_id = $1", userID)
	if err != nil {
		log.Printf("DeleteUser: ошибка удаления пользователя %d: %v", userID, err)
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	log.Printf("Пользователь #%d удалён.", userID)
	return nil
}
