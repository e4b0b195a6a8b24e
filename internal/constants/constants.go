package constants

// Роли пользователей. Записи в таблице role создаются в этом порядке при первом запуске.
const (
	ROLE_TAROT  = 1 // таролог, оказывает услуги
	ROLE_CLIENT = 2
	ROLE_ADMIN  = 3

	// ROLE_ALL используется при рассылке уведомлений: 0 означает "все роли".
	ROLE_ALL = 0
)

// Статусы записи в истории услуг.
const (
	STATUS_NEW       = "new"
	STATUS_IN_WORK   = "in_work"
	STATUS_COMPLETED = "completed"
	STATUS_CANCELED  = "canceled"
)

// Границы оценки отзыва. 0 означает "оценка ещё не выставлена".
const (
	REVIEW_VALUE_MIN = 1
	REVIEW_VALUE_MAX = 5
)
