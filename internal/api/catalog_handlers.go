package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"TaroloGO/internal/db"
)

// --- Роли ---

// RoleCreateRequest - тело запроса на создание роли.
type RoleCreateRequest struct {
	RoleName string `json:"role_name"`
}

// CreateRole создаёт роль.
func CreateRole(w http.ResponseWriter, r *http.Request) {
	var req RoleCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RoleName == "" {
		writeJSONError(w, http.StatusBadRequest, "Некорректное тело запроса")
		return
	}
	role, err := db.CreateRole(req.RoleName)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Не удалось создать роль")
		return
	}
	writeJSONSuccess(w, "Роль создана", role)
}

// GetRole возвращает роль по идентификатору.
func GetRole(w http.ResponseWriter, r *http.Request) {
	roleID, ok := parseIDParam(r, "role_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный role_id")
		return
	}
	role, err := db.GetRoleByID(roleID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Роль не найдена")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить роль")
		return
	}
	writeJSONSuccess(w, "Роль получена", role)
}

// RoleUsersResponse - пользователи с указанной ролью.
type RoleUsersResponse struct {
	RoleID    int64    `json:"role_id"`
	Usernames []string `json:"usernames"`
}

// GetRoleUsers возвращает имена всех пользователей с указанной ролью.
func GetRoleUsers(w http.ResponseWriter, r *http.Request) {
	roleID, ok := parseIDParam(r, "role_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный role_id")
		return
	}
	usernames, err := db.GetUsernamesByRole(roleID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Пользователи с такой ролью не найдены")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить пользователей")
		return
	}
	writeJSONSuccess(w, "Пользователи получены", RoleUsersResponse{RoleID: roleID, Usernames: usernames})
}

// DeleteRole удаляет роль.
func DeleteRole(w http.ResponseWriter, r *http.Request) {
	deleteByIDHandler(w, r, "role_id", db.DeleteRole, "Роль не найдена", "Роль удалена")
}

// --- Специализации ---

// SpecializationCreateRequest - тело запроса на создание специализации.
type SpecializationCreateRequest struct {
	SpecializationName string `json:"specialization_name"`
}

// CreateSpecialization создаёт специализацию.
func CreateSpecialization(w http.ResponseWriter, r *http.Request) {
	var req SpecializationCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SpecializationName == "" {
		writeJSONError(w, http.StatusBadRequest, "Некорректное тело запроса")
		return
	}
	spec, err := db.CreateSpecialization(req.SpecializationName)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Не удалось создать специализацию")
		return
	}
	writeJSONSuccess(w, "Специализация создана", spec)
}

// GetSpecialization возвращает специализацию по идентификатору.
func GetSpecialization(w http.ResponseWriter, r *http.Request) {
	specID, ok := parseIDParam(r, "specialization_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный specialization_id")
		return
	}
	spec, err := db.GetSpecializationByID(specID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Специализация не найдена")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить специализацию")
		return
	}
	writeJSONSuccess(w, "Специализация получена", spec)
}

// DeleteSpecialization удаляет специализацию.
func DeleteSpecialization(w http.ResponseWriter, r *http.Request) {
	deleteByIDHandler(w, r, "specialization_id", db.DeleteSpecialization, "Специализация не найдена", "Специализация удалена")
}

// SpecializationBondRequest - тело запроса на связь "таролог - специализация".
type SpecializationBondRequest struct {
	SpecializationID int64 `json:"specialization_id"`
	UserID           int64 `json:"user_id"`
}

// CreateSpecializationBond создаёт связь "таролог - специализация".
func CreateSpecializationBond(w http.ResponseWriter, r *http.Request) {
	var req SpecializationBondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SpecializationID <= 0 || req.UserID <= 0 {
		writeJSONError(w, http.StatusBadRequest, "Некорректное тело запроса")
		return
	}
	bond, err := db.CreateSpecializationBond(req.SpecializationID, req.UserID)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Не удалось создать связь")
		return
	}
	writeJSONSuccess(w, "Связь создана", bond)
}

// UserSpecializationsResponse - специализации одного пользователя.
type UserSpecializationsResponse struct {
	UserID          int64    `json:"user_id"`
	Specializations []string `json:"specializations"`
}

// GetUserSpecializations возвращает все специализации пользователя.
func GetUserSpecializations(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(r, "user_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный user_id")
		return
	}
	names, err := db.GetSpecializationsByUser(userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Специализации пользователя не найдены")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить специализации")
		return
	}
	writeJSONSuccess(w, "Специализации получены", UserSpecializationsResponse{UserID: userID, Specializations: names})
}

// SpecializationUsersResponse - тарологи одной специализации.
type SpecializationUsersResponse struct {
	SpecializationID int64    `json:"specialization_id"`
	Usernames        []string `json:"usernames"`
}

// GetSpecializationUsers возвращает имена всех тарологов специализации.
func GetSpecializationUsers(w http.ResponseWriter, r *http.Request) {
	specID, ok := parseIDParam(r, "specialization_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный specialization_id")
		return
	}
	usernames, err := db.GetUsernamesBySpecialization(specID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Тарологи специализации не найдены")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить тарологов")
		return
	}
	writeJSONSuccess(w, "Тарологи получены", SpecializationUsersResponse{SpecializationID: specID, Usernames: usernames})
}

// DeleteUserSpecialization удаляет связь "таролог - специализация".
func DeleteUserSpecialization(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(r, "user_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный user_id")
		return
	}
	specID, ok := parseIDParam(r, "specialization_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный specialization_id")
		return
	}
	if err := db.DeleteUserSpecialization(userID, specID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Связь не найдена")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось удалить связь")
		return
	}
	writeJSONSuccess(w, "Связь удалена", nil)
}

// --- Услуги ---

// ServiceCreateRequest - тело запроса на создание услуги.
type ServiceCreateRequest struct {
	ServiceName      string `json:"service_name"`
	TarotID          int64  `json:"tarot_id"`
	SpecializationID int64  `json:"specialization_id"`
	ServicePrice     int    `json:"service_price"`
}

// CreateService создаёт услугу таролога. 404, если владелец не найден; 403, если
// роль владельца не таролог.
func CreateService(w http.ResponseWriter, r *http.Request) {
	var req ServiceCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.ServiceName == "" || req.TarotID <= 0 || req.SpecializationID <= 0 || req.ServicePrice < 0 {
		writeJSONError(w, http.StatusBadRequest, "Некорректное тело запроса")
		return
	}

	service, roleOK, err := db.CreateService(req.ServiceName, req.TarotID, req.SpecializationID, req.ServicePrice)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Пользователь не найден")
			return
		}
		writeJSONError(w, http.StatusBadRequest, "Не удалось создать услугу")
		return
	}
	if !roleOK {
		writeJSONError(w, http.StatusForbidden, "Пользователь не является тарологом")
		return
	}
	writeJSONSuccess(w, "Услуга создана", service)
}

// GetService возвращает услугу по идентификатору.
func GetService(w http.ResponseWriter, r *http.Request) {
	serviceID, ok := parseIDParam(r, "service_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный service_id")
		return
	}
	service, err := db.GetServiceByID(serviceID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Услуга не найдена")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить услугу")
		return
	}
	writeJSONSuccess(w, "Услуга получена", service)
}

// UpdateServiceName обновляет название услуги.
func UpdateServiceName(w http.ResponseWriter, r *http.Request) {
	serviceID, ok := parseIDParam(r, "service_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный service_id")
		return
	}
	var req struct {
		ServiceName string `json:"service_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ServiceName == "" {
		writeJSONError(w, http.StatusBadRequest, "Некорректное тело запроса")
		return
	}
	if err := db.UpdateServiceName(serviceID, req.ServiceName); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Услуга не найдена")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось обновить услугу")
		return
	}
	writeJSONSuccess(w, "Название услуги обновлено", nil)
}

// UpdateServicePrice обновляет цену услуги.
func UpdateServicePrice(w http.ResponseWriter, r *http.Request) {
	serviceID, ok := parseIDParam(r, "service_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный service_id")
		return
	}
	var req struct {
		ServicePrice int `json:"service_price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ServicePrice < 0 {
		writeJSONError(w, http.StatusBadRequest, "Некорректное тело запроса")
		return
	}
	if err := db.UpdateServicePrice(serviceID, req.ServicePrice); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Услуга не найдена")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось обновить услугу")
		return
	}
	writeJSONSuccess(w, "Цена услуги обновлена", nil)
}

// DeleteService удаляет услугу.
func DeleteService(w http.ResponseWriter, r *http.Request) {
	deleteByIDHandler(w, r, "service_id", db.DeleteService, "Услуга не найдена", "Услуга удалена")
}

// --- Статусы ---

// StatusCreateRequest - тело запроса на создание статуса.
type StatusCreateRequest struct {
	StatusName string `json:"status_name"`
}

// CreateStatus создаёт статус.
func CreateStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.StatusName == "" {
		writeJSONError(w, http.StatusBadRequest, "Некорректное тело запроса")
		return
	}
	status, err := db.CreateStatus(req.StatusName)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Не удалось создать статус")
		return
	}
	writeJSONSuccess(w, "Статус создан", status)
}

// GetStatus возвращает статус по идентификатору.
func GetStatus(w http.ResponseWriter, r *http.Request) {
	statusID, ok := parseIDParam(r, "status_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный status_id")
		return
	}
	status, err := db.GetStatusByID(statusID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Статус не найден")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить статус")
		return
	}
	writeJSONSuccess(w, "Статус получен", status)
}

// DeleteStatus удаляет статус.
func DeleteStatus(w http.ResponseWriter, r *http.Request) {
	deleteByIDHandler(w, r, "status_id", db.DeleteStatus, "Статус не найден", "Статус удалён")
}

// deleteByIDHandler - общий шаблон обработчика удаления по идентификатору.
func deleteByIDHandler(w http.ResponseWriter, r *http.Request, param string, del func(int64) error, notFoundMsg, deletedMsg string) {
	id, ok := parseIDParam(r, param)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный "+param)
		return
	}
	if err := del(id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, notFoundMsg)
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось удалить запись")
		return
	}
	writeJSONSuccess(w, deletedMsg, nil)
}
