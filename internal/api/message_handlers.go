package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"TaroloGO/internal/db"
)

// MessageCreateRequest - тело запроса на отправку сообщения.
type MessageCreateRequest struct {
	SenderID    int64  `json:"sender_id"`
	RecipientID int64  `json:"recipient_id"`
	MessageText string `json:"message_text"`
}

// CreateMessage сохраняет новое сообщение и создаёт контактные пары в обе стороны.
func CreateMessage(w http.ResponseWriter, r *http.Request) {
	var req MessageCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Некорректное тело запроса")
		return
	}
	if req.SenderID <= 0 || req.RecipientID <= 0 {
		writeJSONError(w, http.StatusBadRequest, "sender_id и recipient_id должны быть положительными")
		return
	}
	if strings.TrimSpace(req.MessageText) == "" {
		writeJSONError(w, http.StatusBadRequest, "Текст сообщения не может быть пустым")
		return
	}

	msg, err := db.CreateMessage(req.SenderID, req.RecipientID, req.MessageText)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Не удалось создать сообщение")
		return
	}
	writeJSONSuccess(w, "Сообщение создано", msg)
}

// MarkReadResponse - результат пометки переписки прочитанной.
type MarkReadResponse struct {
	MarkedRead int64 `json:"marked_read"`
}

// MarkConversationRead помечает прочитанными все непрочитанные сообщения от
// отправителя к получателю. 404, если таких сообщений нет.
func MarkConversationRead(w http.ResponseWriter, r *http.Request) {
	senderID, ok := parseIDParam(r, "sender_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный sender_id")
		return
	}
	recipientID, ok := parseIDParam(r, "recipient_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный recipient_id")
		return
	}

	marked, err := db.MarkConversationRead(senderID, recipientID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Непрочитанных сообщений нет")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось пометить сообщения прочитанными")
		return
	}
	writeJSONSuccess(w, "Сообщения помечены прочитанными", MarkReadResponse{MarkedRead: marked})
}

// ShowChat возвращает всю переписку между двумя пользователями по возрастанию даты.
func ShowChat(w http.ResponseWriter, r *http.Request) {
	senderID, ok := parseIDParam(r, "sender_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный sender_id")
		return
	}
	recipientID, ok := parseIDParam(r, "recipient_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный recipient_id")
		return
	}

	messages, err := db.GetConversation(senderID, recipientID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Сообщения не найдены")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить переписку")
		return
	}
	writeJSONSuccess(w, "Переписка получена", messages)
}

// GetContactsInfo возвращает по одной записи на каждого собеседника пользователя:
// последнее сообщение, имя собеседника и признак прочтения.
func GetContactsInfo(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(r, "user_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный user_id")
		return
	}

	summaries, err := db.GetContactSummaries(userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Сообщения не найдены")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить контакты")
		return
	}
	writeJSONSuccess(w, "Контакты получены", summaries)
}

// GetContacts возвращает сырые контактные пары пользователя.
func GetContacts(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(r, "user_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный user_id")
		return
	}

	contacts, err := db.GetContactsByUserID(userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Контакты не найдены")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить контакты")
		return
	}
	writeJSONSuccess(w, "Контакты получены", contacts)
}

// DeleteMessage удаляет сообщение по точной тройке (отправитель, получатель, дата).
func DeleteMessage(w http.ResponseWriter, r *http.Request) {
	senderID, ok := parseIDParam(r, "sender_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный sender_id")
		return
	}
	recipientID, ok := parseIDParam(r, "recipient_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный recipient_id")
		return
	}
	dateSend, ok := parseTimestamp(chi.URLParam(r, "message_date_send"))
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректная дата отправки")
		return
	}

	if err := db.DeleteMessage(senderID, recipientID, dateSend); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Сообщение не найдено")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось удалить сообщение")
		return
	}
	writeJSONSuccess(w, "Сообщение удалено", nil)
}
