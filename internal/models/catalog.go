package models

// Role represents a row of the role table.
type Role struct {
	RoleID   int64  `json:"role_id"`
	RoleName string `json:"role_name"`
}

// Specialization represents a row of the specialization table.
type Specialization struct {
	SpecializationID   int64  `json:"specialization_id"`
	SpecializationName string `json:"specialization_name"`
}

// TarotSpecialization - связь "таролог - специализация".
type TarotSpecialization struct {
	TarotSpecializationID int64 `json:"tarot_specialization_id"`
	SpecializationID      int64 `json:"specialization_id"`
	UserID                int64 `json:"user_id"`
}

// Service represents a row of the service table.
type Service struct {
	ServiceID        int64  `json:"service_id"`
	TarotID          int64  `json:"tarot_id"`
	ServiceName      string `json:"service_name"`
	SpecializationID int64  `json:"specialization_id"`
	ServicePrice     int    `json:"service_price"`
}

// Status represents a row of the status table.
type Status struct {
	StatusID   int64  `json:"status_id"`
	StatusName string `json:"status_name"`
}
