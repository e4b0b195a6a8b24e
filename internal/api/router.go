package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"TaroloGO/internal/config"
)

// ApiDependencies содержит зависимости для обработчиков API.
type ApiDependencies struct {
	Config *config.Config
}

// SetupRoutes настраивает все маршруты для API.
func SetupRoutes(r *chi.Mux, deps ApiDependencies) {
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), ConfigContextKey, deps.Config)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})

	// Отдача медиафайлов публичная
	r.Get("/media/{filename}", ServeMedia)

	// --- Сообщения и контакты ---
	r.Route("/message", func(r chi.Router) {
		r.Post("/create", CreateMessage)
		r.Post("/message_read/{sender_id}/recipient/{recipient_id}", MarkConversationRead)
		r.Get("/show_chat/{sender_id}/recipient/{recipient_id}", ShowChat)
		r.Get("/contacts_info/{user_id}", GetContactsInfo)
		r.Get("/contacts/{user_id}", GetContacts)
		r.Delete("/message_delete/{sender_id}/recipient_id/{recipient_id}/message_date_send/{message_date_send}", DeleteMessage)
	})

	// --- История услуг и отзывы ---
	r.Route("/history", func(r chi.Router) {
		r.Post("/create", CreateHistory)
		r.Post("/update_review/{history_id}", UpdateReview)
		r.Post("/update_status/{history_id}", UpdateHistoryStatus)
		r.Get("/find/{history_id}", GetHistory)
		r.Get("/user/{user_id}", GetUserHistory)
		r.Get("/export/{tarot_id}", ExportTarotHistory)
	})

	// --- Пользователи ---
	r.Route("/user", func(r chi.Router) {
		r.Post("/create", CreateUser)
		r.Get("/find/{user_id}", GetUser)
		r.Get("/find_tarot", GetTarots)
		r.Get("/get_info", GetUserInfo)
		r.Get("/qr/{user_id}", GetUserQRCode)
		r.Post("/upload_photo/{user_id}", UploadProfilePhoto)
		r.Patch("/update_first_name/{user_id}", UpdateUserFirstName)
		r.Patch("/update_second_name/{user_id}", UpdateUserSecondName)
		r.Patch("/update_date_birth/{user_id}", UpdateUserDateBirth)
		r.Patch("/update_description/{user_id}", UpdateUserDescription)
		r.Patch("/update_tarot_experience/{user_id}", UpdateTarotExperience)
		r.Patch("/update_is_deleted/{user_id}", UpdateUserIsDeleted)
		r.Delete("/delete/{user_id}", DeleteUser)
	})

	// --- Роли ---
	r.Route("/role", func(r chi.Router) {
		r.Post("/create", CreateRole)
		r.Get("/find/{role_id}", GetRole)
		r.Get("/users/{role_id}", GetRoleUsers)
		r.Delete("/delete/{role_id}", DeleteRole)
	})

	// --- Специализации ---
	r.Route("/specialization", func(r chi.Router) {
		r.Post("/create", CreateSpecialization)
		r.Get("/find/{specialization_id}", GetSpecialization)
		r.Delete("/delete/{specialization_id}", DeleteSpecialization)
		r.Post("/bond/create", CreateSpecializationBond)
		r.Get("/bond/user/{user_id}", GetUserSpecializations)
		r.Get("/bond/users/{specialization_id}", GetSpecializationUsers)
		r.Delete("/bond/delete/{user_id}/{specialization_id}", DeleteUserSpecialization)
	})

	// --- Услуги ---
	r.Route("/service", func(r chi.Router) {
		r.Post("/create", CreateService)
		r.Get("/find/{service_id}", GetService)
		r.Patch("/update_name/{service_id}", UpdateServiceName)
		r.Patch("/update_price/{service_id}", UpdateServicePrice)
		r.Delete("/delete/{service_id}", DeleteService)
	})

	// --- Статусы ---
	r.Route("/status", func(r chi.Router) {
		r.Post("/create", CreateStatus)
		r.Get("/find/{status_id}", GetStatus)
		r.Delete("/delete/{status_id}", DeleteStatus)
	})

	// --- Избранные тарологи ---
	r.Route("/user_favorite_tarots", func(r chi.Router) {
		r.Post("/create", CreateFavoriteTarot)
		r.Get("/find/{user_id}", GetFavoriteTarots)
		r.Delete("/delete/{user_id}/{tarot_id}", DeleteFavoriteTarot)
	})

	// --- Уведомления ---
	r.Route("/notification", func(r chi.Router) {
		r.Post("/status/create", CreateNotificationStatus)
		r.Get("/status/find/{notification_status_id}", GetNotificationStatus)
		r.Delete("/status/delete/{notification_status_id}", DeleteNotificationStatus)
		r.Post("/type/create", CreateNotificationType)
		r.Get("/type/find/{notification_type_id}", GetNotificationType)
		r.Delete("/type/delete/{notification_type_id}", DeleteNotificationType)
		r.Post("/create", CreateNotification)
		r.Get("/find/{notification_id}", GetNotification)
		r.Delete("/delete/{notification_id}", DeleteNotification)
		r.Post("/fan_out/{notification_id}", FanOutNotification)
		r.Get("/user/{user_id}", GetUserNotifications)
	})

	// --- Обратная связь ---
	r.Route("/feedback", func(r chi.Router) {
		r.Post("/create", CreateFeedback)
		r.Post("/take_next", TakeNextFeedback)
		r.Get("/find/{feedback_id}", GetFeedback)
		r.Get("/user/{user_id}", GetUserFeedback)
		r.Delete("/purge_old", PurgeOldFeedback)
	})
}
