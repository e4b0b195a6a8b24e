package db

import (
	"database/sql"
	"log"

	"TaroloGO/internal/constants"
	"TaroloGO/internal/models"
)

// --- Роли ---

// CreateRole создаёт роль.
func CreateRole(roleName string) (models.Role, error) {
	var r models.Role
	err := DB.QueryRow(`
        INSERT INTO role (role_name) VALUES ($1)
        RETURNING role_id, role_name`, roleName).Scan(&r.RoleID, &r.RoleName)
	if err != nil {
		log.Printf("CreateRole: ошибка создания роли %s: %v", roleName, err)
		return models.Role{}, err
	}
	return r, nil
}

// GetRoleByID возвращает роль по идентификатору.
func GetRoleByID(roleID int64) (models.Role, error) {
	var r models.Role
	err := DB.QueryRow("SELECT role_id, role_name FROM role WHERE role_id = $1", roleID).Scan(&r.RoleID, &r.RoleName)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Role{}, ErrNotFound
		}
		log.Printf("GetRoleByID: ошибка получения роли %d: %v", roleID, err)
		return models.Role{}, err
	}
	return r, nil
}

// GetUsernamesByRole возвращает имена всех пользователей с указанной ролью.
func GetUsernamesByRole(roleID int64) ([]string, error) {
	rows, err := DB.Query("SELECT username FROM user_profile WHERE role_id = $1 ORDER BY user_id ASC", roleID)
	if err != nil {
		log.Printf("GetUsernamesByRole: ошибка получения пользователей роли %d: %v", roleID, err)
		return nil, err
	}
	defer rows.Close()

	var usernames []string
	for rows.Next() {
		var username string
		if errScan := rows.Scan(&username); errScan != nil {
			return nil, errScan
		}
		usernames = append(usernames, username)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	if len(usernames) == 0 {
		return nil, ErrNotFound
	}
	return usernames, nil
}

// DeleteRole удаляет роль.
func DeleteRole(roleID int64) error {
	return deleteByID("role", "role_id", roleID, "DeleteRole")
}

// --- Специализации ---

// CreateSpecialization создаёт специализацию.
func CreateSpecialization(name string) (models.Specialization, error) {
	var s models.Specialization
	err := DB.QueryRow(`
        INSERT INTO specialization (specialization_name) VALUES ($1)
        RETURNING specialization_id, specialization_name`, name).Scan(&s.SpecializationID, &s.SpecializationName)
	if err != nil {
		log.Printf("CreateSpecialization: ошибка создания специализации %s: %v", name, err)
		return models.Specialization{}, err
	}
	return s, nil
}

// GetSpecializationByID возвращает специализацию по идентификатору.
func GetSpecializationByID(specializationID int64) (models.Specialization, error) {
	var s models.Specialization
	err := DB.QueryRow(`
        SELECT specialization_id, specialization_name
        FROM specialization WHERE specialization_id = $1`, specializationID).Scan(&s.SpecializationID, &s.SpecializationName)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Specialization{}, ErrNotFound
		}
		log.Printf("GetSpecializationByID: ошибка получения специализации %d: %v", specializationID, err)
		return models.Specialization{}, err
	}
	return s, nil
}

// DeleteSpecialization удаляет специализацию.
func DeleteSpecialization(specializationID int64) error {
	return deleteByID("specialization", "specialization_id", specializationID, "DeleteSpecialization")
}

// CreateSpecializationBond создаёт связь "таролог - специализация".
func CreateSpecializationBond(specializationID, userID int64) (models.TarotSpecialization, error) {
	var b models.TarotSpecialization
	err := DB.QueryRow(`
        INSERT INTO tarot_specialization (specialization_id, user_id)
        VALUES ($1, $2)
        RETURNING tarot_specialization_id, specialization_id, user_id`,
		specializationID, userID).Scan(&b.TarotSpecializationID, &b.SpecializationID, &b.UserID)
	if err != nil {
		log.Printf("CreateSpecializationBond: ошибка создания связи (%d, %d): %v", specializationID, userID, err)
		return models.TarotSpecialization{}, err
	}
	return b, nil
}

// GetSpecializationsByUser возвращает названия всех специализаций пользователя.
func GetSpecializationsByUser(userID int64) ([]string, error) {
	rows, err := DB.Query(`
        SELECT s.specialization_name
        FROM specialization s
        JOIN tarot_specialization ts ON ts.specialization_id = s.specialization_id
        WHERE ts.user_id = $1
        ORDER BY s.specialization_name ASC`, userID)
	if err != nil {
		log.Printf("GetSpecializationsByUser: ошибка получения специализаций user_id %d: %v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if errScan := rows.Scan(&name); errScan != nil {
			return nil, errScan
		}
		names = append(names, name)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrNotFound
	}
	return names, nil
}

// GetUsernamesBySpecialization возвращает имена всех тарологов специализации.
func GetUsernamesBySpecialization(specializationID int64) ([]string, error) {
	rows, err := DB.Query(`
        SELECT u.username
        FROM user_profile u
        JOIN tarot_specialization ts ON ts.user_id = u.user_id
        WHERE ts.specialization_id = $1
        ORDER BY u.user_id ASC`, specializationID)
	if err != nil {
		log.Printf("GetUsernamesBySpecialization: ошибка получения пользователей специализации %d: %v", specializationID, err)
		return nil, err
	}
	defer rows.Close()

	var usernames []string
	for rows.Next() {
		var username string
		if errScan := rows.Scan(&username); errScan != nil {
			return nil, errScan
		}
		usernames = append(usernames, username)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	if len(usernames) == 0 {
		return nil, ErrNotFound
	}
	return usernames, nil
}

// DeleteUserSpecialization удаляет связь "таролог - специализация".
func DeleteUserSpecialization(userID, specializationID int64) error {
	res, err := DB.Exec(`
        DELETE FROM tarot_specialization
        WHERE user_id = $1 AND specialization_id = $2`, userID, specializationID)
	if err != nil {
		log.Printf("DeleteUserSpecialization: ошибка удаления связи (%d, %d): %v", userID, specializationID, err)
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

// --- Услуги ---

// CreateService создаёт услугу. Владелец обязан существовать и иметь роль таролога:
// первое нарушение - ErrNotFound, второе возвращается флагом roleOK=false.
func CreateService(serviceName string, tarotID, specializationID int64, servicePrice int) (models.Service, bool, error) {
	var roleID int64
	err := DB.QueryRow("SELECT role_id FROM user_profile WHERE user_id = $1", tarotID).Scan(&roleID)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Service{}, false, ErrNotFound
		}
		log.Printf("CreateService: ошибка поиска пользователя %d: %v", tarotID, err)
		return models.Service{}, false, err
	}
	if roleID != constants.ROLE_TAROT {
		return models.Service{}, false, nil
	}

	var s models.Service
	err = DB.QueryRow(`
        INSERT INTO service (service_name, tarot_id, specialization_id, service_price)
        VALUES ($1, $2, $3, $4)
        RETURNING service_id, tarot_id, service_name, specialization_id, service_price`,
		serviceName, tarotID, specializationID, servicePrice,
	).Scan(&s.ServiceID, &s.TarotID, &s.ServiceName, &s.SpecializationID, &s.ServicePrice)
	if err != nil {
		log.Printf("CreateService: ошибка создания услуги %s: %v", serviceName, err)
		return models.Service{}, true, err
	}
	log.Printf("Услуга #%d (%s) таролога %d создана.", s.ServiceID, serviceName, tarotID)
	return s, true, nil
}

// GetServiceByID возвращает услугу по идентификатору.
func GetServiceByID(serviceID int64) (models.Service, error) {
	var s models.Service
	err := DB.QueryRow(`
        SELECT service_id, tarot_id, service_name, specialization_id, service_price
        FROM service WHERE service_id = $1`, serviceID,
	).Scan(&s.ServiceID, &s.TarotID, &s.ServiceName, &s.SpecializationID, &s.ServicePrice)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Service{}, ErrNotFound
		}
		log.Printf("GetServiceByID: ошибка получения услуги %d: %v", serviceID, err)
		return models.Service{}, err
	}
	return s, nil
}

// UpdateServiceName обновляет название услуги.
func UpdateServiceName(serviceID int64, serviceName string) error {
	res, err := DB.Exec("UPDATE service SET service_name = $1 WHERE service_id = $2", serviceName, serviceID)
	if err != nil {
		log.Printf("UpdateServiceName: ошибка обновления услуги %d: %v", serviceID, err)
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

// UpdateServicePrice обновляет цену услуги.
func UpdateServicePrice(serviceID int64, servicePrice int) error {
	res, err := DB.Exec("UPDATE service SET service_price = $1 WHERE service_id = $2", servicePrice, serviceID)
	if err != nil {
		log.Printf("UpdateServicePrice: ошибка обновления услуги %d: %v", serviceID, err)
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

// DeleteService удаляет услугу.
func DeleteService(serviceID int64) error {
	return deleteByID("service", "service_id", serviceID, "DeleteService")
}

// --- Статусы ---

// CreateStatus создаёт статус.
func CreateStatus(statusName string) (models.Status, error) {
	var s models.Status
	err := DB.QueryRow(`
        INSERT INTO status (status_name) VALUES ($1)
        RETURNING status_id, status_name`, statusName).Scan(&s.StatusID, &s.StatusName)
	if err != nil {
		log.Printf("CreateStatus: ошибка создания статуса %s: %v", statusName, err)
		return models.Status{}, err
	}
	return s, nil
}

// GetStatusByID возвращает статус по идентификатору.
func GetStatusByID(statusID int64) (models.Status, error) {
	var s models.Status
	err := DB.QueryRow("SELECT status_id, status_name FROM status WHERE status_id = $1", statusID).Scan(&s.StatusID, &s.StatusName)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Status{}, ErrNotFound
		}
		log.Printf("GetStatusByID: ошибка получения статуса %d: %v", statusID, err)
		return models.Status{}, err
	}
	return s, nil
}

// DeleteStatus удаляет статус.
func DeleteStatus(statusID int64) error {
	return deleteByID("status", "status_id", statusID, "DeleteStatus")
}

// deleteByID - общий шаблон удаления по первичному ключу для справочников.
// Таблица и колонка задаются только кодом этого пакета.
func deleteByID(table, column string, id int64, opName string) error {
	res, err := DB.Exec(`DELETE FROM `+table+` WHERE `+column+` = $1`, id)
	if err != nil {
		log.Printf("%s: ошибка удаления записи %d: %v", opName, id, err)
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	log.Printf("%s: запись #%d удалена.", opName, id)
	return nil
}
