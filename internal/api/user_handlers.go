package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"TaroloGO/internal/db"
	"TaroloGO/internal/models"
	"TaroloGO/internal/utils"
)

// UserCreateRequest - тело запроса на регистрацию пользователя.
type UserCreateRequest struct {
	Username    string `json:"username"`
	RoleID      int64  `json:"role_id"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
	DateBirth   string `json:"date_birth"`
}

// UserOut - публичное представление профиля (без хеша пароля и служебных полей).
type UserOut struct {
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	DateBirth   string `json:"date_birth"`
}

func toUserOut(u models.UserProfile) UserOut {
	return UserOut{
		UserID:      u.UserID,
		Username:    u.Username,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		DateBirth:   u.DateBirth.Format("2006-01-02"),
	}
}

// CreateUser регистрирует нового пользователя.
func CreateUser(w http.ResponseWriter, r *http.Request) {
	var req UserCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Некорректное тело запроса")
		return
	}
	if !utils.IsValidUsername(req.Username) {
		writeJSONError(w, http.StatusBadRequest, "Некорректное имя пользователя")
		return
	}
	if req.RoleID < 1 {
		writeJSONError(w, http.StatusBadRequest, "role_id должен быть не меньше 1")
		return
	}
	if !utils.IsValidEmail(req.Email) {
		writeJSONError(w, http.StatusBadRequest, "Некорректный email")
		return
	}
	if !utils.IsValidPhoneNumber(req.PhoneNumber) {
		writeJSONError(w, http.StatusBadRequest, "Некорректный номер телефона")
		return
	}
	dateBirth, ok := parseDate(req.DateBirth)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректная дата рождения")
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Не удалось обработать пароль")
		return
	}

	user, err := db.CreateUser(req.Username, req.RoleID, req.Email, req.PhoneNumber, hashed, dateBirth)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Не удалось создать пользователя")
		return
	}
	writeJSONSuccess(w, "Пользователь создан", toUserOut(user))
}

// GetUser возвращает профиль пользователя по идентификатору.
func GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(r, "user_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный user_id")
		return
	}

	user, err := db.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Пользователь не найден")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить пользователя")
		return
	}
	writeJSONSuccess(w, "Пользователь получен", user)
}

// GetTarots возвращает витрину тарологов.
func GetTarots(w http.ResponseWriter, r *http.Request) {
	tarots, err := db.GetTarots()
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Тарологи не найдены")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить список тарологов")
		return
	}
	writeJSONSuccess(w, "Список тарологов получен", tarots)
}

// userFieldUpdate - общий шаблон обработчика обновления одного поля профиля.
func userFieldUpdate(w http.ResponseWriter, r *http.Request, apply func(userID int64) error) {
	userID, ok := parseIDParam(r, "user_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный user_id")
		return
	}
	if err := apply(userID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Пользователь не найден")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось обновить профиль")
		return
	}
	writeJSONSuccess(w, "Профиль обновлён", nil)
}

// UpdateUserFirstName обновляет имя в профиле.
func UpdateUserFirstName(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName string `json:"first_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FirstName == "" {
		writeJSONError(w, http.StatusBadRequest, "Некорректное тело запроса")
		return
	}
	userFieldUpdate(w, r, func(userID int64) error {
		return db.UpdateUserFirstName(userID, req.FirstName)
	})
}

// UpdateUserSecondName обновляет фамилию в профиле.
func UpdateUserSecondName(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SecondName string `json:"second_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SecondName == "" {
		writeJSONError(w, http.StatusBadRequest, "Некорректное тело запроса")
		return
	}
	userFieldUpdate(w, r, func(userID int64) error {
		return db.UpdateUserSecondName(userID, req.SecondName)
	})
}

// UpdateUserDateBirth обновляет дату рождения в профиле.
func UpdateUserDateBirth(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DateBirth string `json:"date_birth"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Некорректное тело запроса")
		return
	}
	dateBirth, ok := parseDate(req.DateBirth)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректная дата рождения")
		return
	}
	userFieldUpdate(w, r, func(userID int64) error {
		return db.UpdateUserDateBirth(userID, dateBirth)
	})
}

// UpdateUserIsDeleted выставляет флаг удаления профиля.
func UpdateUserIsDeleted(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IsDeleted bool `json:"is_deleted"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Некорректное тело запроса")
		return
	}
	userFieldUpdate(w, r, func(userID int64) error {
		return db.UpdateUserIsDeleted(userID, req.IsDeleted)
	})
}

// UpdateUserDescription обновляет описание таролога в профиле.
func UpdateUserDescription(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserDescription string `json:"user_description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserDescription == "" {
		writeJSONError(w, http.StatusBadRequest, "Некорректное тело запроса")
		return
	}
	userFieldUpdate(w, r, func(userID int64) error {
		return db.UpdateUserDescription(userID, req.UserDescription)
	})
}

// UpdateTarotExperience обновляет стаж таролога. 403, если роль не таролог.
func UpdateTarotExperience(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(r, "user_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный user_id")
		return
	}
	var req struct {
		TarotExperience float64 `json:"tarot_experience"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TarotExperience < 0 {
		writeJSONError(w, http.StatusBadRequest, "Некорректное тело запроса")
		return
	}

	roleOK, err := db.UpdateTarotExperience(userID, req.TarotExperience)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Пользователь не найден")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось обновить стаж")
		return
	}
	if !roleOK {
		writeJSONError(w, http.StatusForbidden, "Пользователь не является тарологом")
		return
	}
	writeJSONSuccess(w, "Стаж обновлён", nil)
}

// UserInfoResponse - агрегированный ответ get_info: избранные, витрина и диалоги.
type UserInfoResponse struct {
	FavoriteInfo []models.UserFavoriteTarot `json:"favorite_info"`
	TarotInfo    []models.TarotInfo         `json:"tarot_info"`
	MessageInfo  []models.ContactSummary    `json:"message_info"`
}

// GetUserInfo аутентифицирует пользователя по email и паролю и собирает сводку:
// избранные тарологи, витрина тарологов и последние сообщения по каждому контакту.
// Пустые разделы отдаются пустыми, а не ошибкой.
func GetUserInfo(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	password := r.URL.Query().Get("password")
	if email == "" || password == "" {
		writeJSONError(w, http.StatusBadRequest, "Требуются email и password")
		return
	}

	user, err := db.GetUserByEmail(email)
	if err != nil || !utils.VerifyPassword(password, user.PasswordHashed) {
		// Не раскрываем, что именно не совпало
		writeJSONError(w, http.StatusUnauthorized, "Неправильные email или пароль")
		return
	}

	resp := UserInfoResponse{}
	if favorites, err := db.GetFavoriteTarots(user.UserID); err == nil {
		resp.FavoriteInfo = favorites
	} else if !errors.Is(err, db.ErrNotFound) {
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить избранное")
		return
	}
	if tarots, err := db.GetTarots(); err == nil {
		resp.TarotInfo = tarots
	} else if !errors.Is(err, db.ErrNotFound) {
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить список тарологов")
		return
	}
	if summaries, err := db.GetContactSummaries(user.UserID); err == nil {
		resp.MessageInfo = summaries
	} else if !errors.Is(err, db.ErrNotFound) {
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить диалоги")
		return
	}

	writeJSONSuccess(w, "Сводка получена", resp)
}

// DeleteUser удаляет профиль пользователя.
func DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(r, "user_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный user_id")
		return
	}
	if err := db.DeleteUser(userID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Пользователь не найден")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось удалить пользователя")
		return
	}
	writeJSONSuccess(w, "Пользователь удалён", nil)
}
