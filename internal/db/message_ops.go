package db

import (
	"database/sql"
	"log"
	"sort"
	"time"

	"TaroloGO/internal/models"
)

// CreateMessage сохраняет новое сообщение и попутно материализует контактную пару
// в обоих направлениях. Всё выполняется в одной транзакции: вставка сообщения и две
// вставки контактов. Повторная вставка контакта гасится ограничением уникальности
// (ON CONFLICT DO NOTHING) и не является ошибкой для вызывающего.
func CreateMessage(senderID, recipientID int64, messageText string) (models.Message, error) {
	var msg models.Message

	tx, err := DB.Begin()
	if err != nil {
		log.Printf("CreateMessage: ошибка начала транзакции: %v", err)
		return msg, err
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
        INSERT INTO message (sender_id, recipient_id, message_text, message_date_send)
        VALUES ($1, $2, $3, NOW())
        RETURNING message_id, sender_id, recipient_id, message_text, message_date_send, message_date_read`,
		senderID, recipientID, messageText,
	).Scan(&msg.MessageID, &msg.SenderID, &msg.RecipientID, &msg.MessageText, &msg.MessageDateSend, &msg.MessageDateRead)
	if err != nil {
		log.Printf("CreateMessage: ошибка добавления сообщения (%d -> %d): %v", senderID, recipientID, err)
		return models.Message{}, err
	}

	if err = ensureContact(tx, senderID, recipientID); err != nil {
		return models.Message{}, err
	}
	if err = ensureContact(tx, recipientID, senderID); err != nil {
		return models.Message{}, err
	}

	if err = tx.Commit(); err != nil {
		log.Printf("CreateMessage: ошибка фиксации транзакции: %v", err)
		return models.Message{}, err
	}
	log.Printf("Сообщение #%d (%d -> %d) успешно добавлено.", msg.MessageID, senderID, recipientID)
	return msg, nil
}

// ensureContact вставляет контактную пару, если её ещё нет. Источником истины служит
// ограничение уникальности (user_id, user_contact_id), а не предварительная проверка.
func ensureContact(tx *sql.Tx, userID, userContactID int64) error {
	_, err := tx.Exec(`
        INSERT INTO contacts (user_id, user_contact_id)
        VALUES ($1, $2)
        ON CONFLICT (user_id, user_contact_id) DO NOTHING`,
		userID, userContactID)
	if err != nil {
		log.Printf("ensureContact: ошибка добавления контакта (%d, %d): %v", userID, userContactID, err)
		return err
	}
	return nil
}

// MarkConversationRead помечает прочитанными все непрочитанные сообщения от sender к
// recipient одним запросом. Если подходящих сообщений нет, возвращает ErrNotFound.
func MarkConversationRead(senderID, recipientID int64) (int64, error) {
	res, err := DB.Exec(`
        UPDATE message
        SET message_date_read = NOW()
        WHERE sender_id = $1 AND recipient_id = $2 AND message_date_read IS NULL`,
		senderID, recipientID)
	if err != nil {
		log.Printf("MarkConversationRead: ошибка обновления (%d -> %d): %v", senderID, recipientID, err)
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		log.Printf("MarkConversationRead: ошибка получения числа строк: %v", err)
		return 0, err
	}
	if affected == 0 {
		return 0, ErrNotFound
	}
	log.Printf("Помечено прочитанными %d сообщений (%d -> %d).", affected, senderID, recipientID)
	return affected, nil
}

// GetConversation возвращает всю переписку между двумя пользователями в обоих
// направлениях, отсортированную по дате отправки. Пустая переписка - ErrNotFound.
func GetConversation(userA, userB int64) ([]models.Message, error) {
	rows, err := DB.Query(`
        SELECT message_id, sender_id, recipient_id, message_text, message_date_send, message_date_read
        FROM message
        WHERE (sender_id = $1 AND recipient_id = $2)
           OR (sender_id = $2 AND recipient_id = $1)
        ORDER BY message_date_send ASC, message_id ASC`,
		userA, userB)
	if err != nil {
		log.Printf("GetConversation: ошибка получения переписки (%d, %d): %v", userA, userB, err)
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var msg models.Message
		errScan := rows.Scan(&msg.MessageID, &msg.SenderID, &msg.RecipientID, &msg.MessageText, &msg.MessageDateSend, &msg.MessageDateRead)
		if errScan != nil {
			log.Printf("GetConversation: ошибка сканирования сообщения: %v", errScan)
			return nil, errScan
		}
		messages = append(messages, msg)
	}
	if err = rows.Err(); err != nil {
		log.Printf("GetConversation: ошибка после итерации по строкам: %v", err)
		return nil, err
	}
	if len(messages) == 0 {
		return nil, ErrNotFound
	}
	return messages, nil
}

// GetContactSummaries возвращает по одной записи на каждого собеседника пользователя:
// самое свежее сообщение в любую сторону плюс поля профиля собеседника. Вместо
// union-подзапросов используется один индексированный проход по message с группировкой
// в памяти (индексы по (sender_id, message_date_send) и (recipient_id, message_date_send)).
func GetContactSummaries(userID int64) ([]models.ContactSummary, error) {
	rows, err := DB.Query(`
        SELECT m.message_id, m.sender_id, m.message_text, m.message_date_send, m.message_date_read,
               u.user_id, u.username, u.first_name, u.second_name
        FROM message m
        JOIN user_profile u
          ON u.user_id = CASE WHEN m.sender_id = $1 THEN m.recipient_id ELSE m.sender_id END
        WHERE m.sender_id = $1 OR m.recipient_id = $1
        ORDER BY m.message_date_send DESC, m.message_id DESC`,
		userID)
	if err != nil {
		log.Printf("GetContactSummaries: ошибка получения контактов для user_id %d: %v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var candidates []models.ContactSummary
	for rows.Next() {
		var s models.ContactSummary
		var messageID int64
		var dateRead sql.NullTime
		errScan := rows.Scan(&messageID, &s.SenderID, &s.MessageText, &s.MessageDateSend, &dateRead,
			&s.CompanionID, &s.Username, &s.FirstName, &s.SecondName)
		if errScan != nil {
			log.Printf("GetContactSummaries: ошибка сканирования строки для user_id %d: %v", userID, errScan)
			return nil, errScan
		}
		s.IsRead = dateRead.Valid
		candidates = append(candidates, s)
	}
	if err = rows.Err(); err != nil {
		log.Printf("GetContactSummaries: ошибка после итерации по строкам: %v", err)
		return nil, err
	}

	summaries := collapseContactSummaries(candidates)
	if len(summaries) == 0 {
		return nil, ErrNotFound
	}
	return summaries, nil
}

// collapseContactSummaries схлопывает кандидатов до одной записи на собеседника.
// Побеждает сообщение с максимальной датой отправки; при точном равенстве дат
// остаётся первая встреченная запись. Результат отсортирован по дате отправки по
// убыванию, при равных датах - по companion_id по возрастанию.
func collapseContactSummaries(candidates []models.ContactSummary) []models.ContactSummary {
	latest := make(map[int64]models.ContactSummary, len(candidates))
	for _, c := range candidates {
		prev, ok := latest[c.CompanionID]
		if !ok || c.MessageDateSend.After(prev.MessageDateSend) {
			latest[c.CompanionID] = c
		}
	}

	summaries := make([]models.ContactSummary, 0, len(latest))
	for _, s := range latest {
		summaries = append(summaries, s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].MessageDateSend.Equal(summaries[j].MessageDateSend) {
			return summaries[i].MessageDateSend.After(summaries[j].MessageDateSend)
		}
		return summaries[i].CompanionID < summaries[j].CompanionID
	})
	return summaries
}

// DeleteMessage удаляет сообщение по точному совпадению (отправитель, получатель,
// дата отправки). Контактные пары при этом не трогаются: даже если удалено последнее
// сообщение переписки, строки contacts остаются.
func DeleteMessage(senderID, recipientID int64, messageDateSend time.Time) error {
	res, err := DB.Exec(`
        DELETE FROM message
        WHERE sender_id = $1 AND recipient_id = $2 AND message_date_send = $3`,
		senderID, recipientID, messageDateSend)
	if err != nil {
		log.Printf("DeleteMessage: ошибка удаления сообщения (%d -> %d, %s): %v", senderID, recipientID, messageDateSend, err)
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		log.Printf("DeleteMessage: ошибка получения числа строк: %v", err)
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	log.Printf("Сообщение (%d -> %d, %s) удалено.", senderID, recipientID, messageDateSend)
	return nil
}

// GetContactsByUserID возвращает все контактные пары пользователя.
func GetContactsByUserID(userID int64) ([]models.Contact, error) {
	rows, err := DB.Query(`
        SELECT contact_id, user_id, user_contact_id
        FROM contacts
        WHERE user_id = $1
        ORDER BY contact_id ASC`, userID)
	if err != nil {
		log.Printf("GetContactsByUserID: ошибка получения контактов для user_id %d: %v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		var c models.Contact
		if errScan := rows.Scan(&c.ContactID, &c.UserID, &c.UserContactID); errScan != nil {
			log.Printf("GetContactsByUserID: ошибка сканирования контакта: %v", errScan)
			return nil, errScan
		}
		contacts = append(contacts, c)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	if len(contacts) == 0 {
		return nil, ErrNotFound
	}
	return contacts, nil
}
