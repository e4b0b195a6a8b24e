// Файл: internal/db/db.go
package db

import (
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

var DB *sql.DB // Глобальная переменная для хранения подключения к БД

// InitDB инициализирует соединение с базой данных и выполняет миграции.
func InitDB() error {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL не установлена")
	}

	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return fmt.Errorf("ошибка парсинга DATABASE_URL: %v", err)
	}
	query := parsedURL.Query()
	parsedURL.RawQuery = query.Encode()
	finalURL := parsedURL.String()

	DB, err = sql.Open("postgres", finalURL)
	if err != nil {
		return fmt.Errorf("ошибка подключения к базе данных: %v", err)
	}

	DB.SetMaxOpenConns(50)
	DB.SetMaxIdleConns(20)
	DB.SetConnMaxLifetime(5 * time.Minute)

	if err := DB.Ping(); err != nil {
		return fmt.Errorf("ошибка проверки соединения с базой данных: %v", err)
	}
	log.Println("Успешное подключение к базе данных.")

	// Шаг 1: создание таблиц, если их ещё нет
	tx, err := DB.Begin()
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции для создания таблиц: %v", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			log.Printf("Откат транзакции из-за ошибки: %v", err)
			tx.Rollback()
		}
	}()

	createTablesSQL := `
        CREATE TABLE IF NOT EXISTS role (
            role_id SERIAL PRIMARY KEY,
            role_name TEXT NOT NULL UNIQUE
        );
        CREATE TABLE IF NOT EXISTS user_profile (
            user_id SERIAL PRIMARY KEY,
            role_id INTEGER REFERENCES role(role_id),
            username VARCHAR(100) NOT NULL UNIQUE,
            email TEXT NOT NULL UNIQUE,
            phone_number VARCHAR(20) NOT NULL UNIQUE,
            password_hashed TEXT NOT NULL,
            first_name VARCHAR(100),
            second_name VARCHAR(100),
            date_birth DATE NOT NULL,
            date_registration TIMESTAMP NOT NULL DEFAULT NOW(),
            is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
            user_description TEXT,
            tarot_experience FLOAT,
            tarot_rating FLOAT,
            review_count INTEGER NOT NULL DEFAULT 0,
            profile_picture TEXT
        );
        CREATE TABLE IF NOT EXISTS specialization (
            specialization_id SERIAL PRIMARY KEY,
            specialization_name TEXT NOT NULL UNIQUE
        );
        CREATE TABLE IF NOT EXISTS tarot_specialization (
            tarot_specialization_id SERIAL PRIMARY KEY,
            specialization_id INTEGER REFERENCES specialization(specialization_id),
            user_id INTEGER REFERENCES user_profile(user_id)
        );
        CREATE TABLE IF NOT EXISTS service (
            service_id SERIAL PRIMARY KEY,
            tarot_id INTEGER REFERENCES user_profile(user_id),
            service_name TEXT NOT NULL UNIQUE,
            specialization_id INTEGER REFERENCES specialization(specialization_id),
            service_price INTEGER NOT NULL
        );
        CREATE TABLE IF NOT EXISTS status (
            status_id SERIAL PRIMARY KEY,
            status_name TEXT NOT NULL UNIQUE
        );
        CREATE TABLE IF NOT EXISTS message (
            message_id SERIAL PRIMARY KEY,
            sender_id INTEGER REFERENCES user_profile(user_id),
            recipient_id INTEGER REFERENCES user_profile(user_id),
            message_text TEXT NOT NULL,
            message_date_send TIMESTAMP NOT NULL DEFAULT NOW(),
            message_date_read TIMESTAMP
        );
        CREATE TABLE IF NOT EXISTS contacts (
            contact_id SERIAL PRIMARY KEY,
            user_id INTEGER REFERENCES user_profile(user_id),
            user_contact_id INTEGER REFERENCES user_profile(user_id),
            UNIQUE (user_id, user_contact_id)
        );
        CREATE TABLE IF NOT EXISTS user_service_history (
            history_id SERIAL PRIMARY KEY,
            user_id INTEGER REFERENCES user_profile(user_id),
            service_id INTEGER REFERENCES service(service_id),
            tarot_id INTEGER NOT NULL,
            status_id INTEGER REFERENCES status(status_id),
            review_title TEXT,
            review_text TEXT,
            review_value INTEGER NOT NULL DEFAULT 0,
            review_date_time TIMESTAMP
        );
        CREATE TABLE IF NOT EXISTS user_favorite_tarots (
            favorite_tarot_id SERIAL PRIMARY KEY,
            user_id INTEGER REFERENCES user_profile(user_id),
            tarot_id INTEGER REFERENCES user_profile(user_id),
            UNIQUE (user_id, tarot_id)
        );
        CREATE TABLE IF NOT EXISTS notification_status (
            notification_status_id SERIAL PRIMARY KEY,
            notification_status_name TEXT NOT NULL
        );
        CREATE TABLE IF NOT EXISTS notification_type (
            notification_type_id SERIAL PRIMARY KEY,
            notification_type_name TEXT NOT NULL
        );
        CREATE TABLE IF NOT EXISTS system_notification (
            notification_id SERIAL PRIMARY KEY,
            notification_status_id INTEGER REFERENCES notification_status(notification_status_id),
            notification_type_id INTEGER REFERENCES notification_type(notification_type_id),
            notification_title TEXT,
            notification_text TEXT,
            notification_date_time TIMESTAMP NOT NULL DEFAULT NOW()
        );
        CREATE TABLE IF NOT EXISTS user_system_notification (
            user_notification_id SERIAL PRIMARY KEY,
            user_id INTEGER REFERENCES user_profile(user_id),
            notification_id INTEGER REFERENCES system_notification(notification_id),
            UNIQUE (user_id, notification_id)
        );
        CREATE TABLE IF NOT EXISTS feedback (
            feedback_id SERIAL PRIMARY KEY,
            user_id INTEGER REFERENCES user_profile(user_id),
            feedback_text TEXT,
            feedback_datetime TIMESTAMP NOT NULL DEFAULT NOW(),
            is_read BOOLEAN NOT NULL DEFAULT FALSE
        );
    `
	_, err = tx.Exec(createTablesSQL)
	if err != nil {
		return fmt.Errorf("ошибка создания таблиц: %v", err)
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("ошибка фиксации транзакции создания таблиц: %v", err)
	}
	log.Println("Создание таблиц (если не существуют) завершено.")

	// Шаг 2: миграции схемы (добавление колонок в существующие таблицы)
	err = migrateDBSchema()
	if err != nil {
		return fmt.Errorf("ошибка выполнения миграции схемы: %v", err)
	}
	log.Println("Миграция схемы базы данных успешно завершена.")

	// Шаг 3: индексы. CREATE INDEX IF NOT EXISTS идемпотентен, выполняем по одному,
	// чтобы ошибка одного индекса не мешала остальным.
	createIndexesSQL := `
        CREATE INDEX IF NOT EXISTS idx_user_profile_role_id ON user_profile(role_id);
        CREATE INDEX IF NOT EXISTS idx_user_profile_email ON user_profile(email);
        CREATE INDEX IF NOT EXISTS idx_message_sender_date ON message(sender_id, message_date_send);
        CREATE INDEX IF NOT EXISTS idx_message_recipient_date ON message(recipient_id, message_date_send);
        CREATE INDEX IF NOT EXISTS idx_contacts_user_id ON contacts(user_id);
        CREATE INDEX IF NOT EXISTS idx_service_tarot_id ON service(tarot_id);
        CREATE INDEX IF NOT EXISTS idx_history_user_id ON user_service_history(user_id);
        CREATE INDEX IF NOT EXISTS idx_history_tarot_id ON user_service_history(tarot_id);
        CREATE INDEX IF NOT EXISTS idx_favorite_user_id ON user_favorite_tarots(user_id);
        CREATE INDEX IF NOT EXISTS idx_user_notification_user_id ON user_system_notification(user_id);
        CREATE INDEX IF NOT EXISTS idx_feedback_user_id ON feedback(user_id);
        CREATE INDEX IF NOT EXISTS idx_feedback_is_read ON feedback(is_read);
    `
	indexStatements := strings.Split(strings.TrimSpace(createIndexesSQL), ";")
	for _, stmt := range indexStatements {
		trimmedStmt := strings.TrimSpace(stmt)
		if trimmedStmt == "" {
			continue
		}
		if _, errIdx := DB.Exec(trimmedStmt); errIdx != nil {
			log.Printf("Предупреждение: ошибка при создании индекса ('%s'): %v.", trimmedStmt, errIdx)
		}
	}
	log.Println("Создание индексов (если не существуют) завершено.")

	// Шаг 4: базовые справочники
	if err = seedDictionaries(); err != nil {
		return fmt.Errorf("ошибка заполнения справочников: %v", err)
	}

	log.Println("Инициализация базы данных успешно завершена.")
	return nil
}

// migrateDBSchema выполняет необходимые миграции схемы базы данных.
// Функция должна быть идемпотентной.
func migrateDBSchema() error {
	migrations := []struct {
		name string
		sql  string
	}{
		{
			name: "user_profile.rating_fields",
			sql: `ALTER TABLE user_profile
                  ADD COLUMN IF NOT EXISTS tarot_rating FLOAT,
                  ADD COLUMN IF NOT EXISTS review_count INTEGER NOT NULL DEFAULT 0;`,
		},
		{
			name: "user_profile.profile_picture",
			sql: `ALTER TABLE user_profile
                  ADD COLUMN IF NOT EXISTS profile_picture TEXT;`,
		},
		{
			name: "message.message_date_read",
			sql: `ALTER TABLE message
                  ADD COLUMN IF NOT EXISTS message_date_read TIMESTAMP;`,
		},
		{
			name: "contacts.unique_constraint",
			sql: `DO $$
                  BEGIN
                      IF NOT EXISTS (
                          SELECT 1 FROM pg_constraint
                          WHERE conrelid = 'contacts'::regclass
                          AND conname = 'contacts_user_id_user_contact_id_key'
                      ) AND EXISTS (
                          SELECT 1 FROM information_schema.tables
                          WHERE table_name = 'contacts'
                      ) THEN
                          ALTER TABLE contacts ADD CONSTRAINT contacts_user_id_user_contact_id_key UNIQUE (user_id, user_contact_id);
                      END IF;
                  END$$;`,
		},
		{
			name: "user_service_history.review_fields",
			sql: `ALTER TABLE user_service_history
                  ADD COLUMN IF NOT EXISTS review_title TEXT,
                  ADD COLUMN IF NOT EXISTS review_text TEXT,
                  ADD COLUMN IF NOT EXISTS review_value INTEGER NOT NULL DEFAULT 0,
                  ADD COLUMN IF NOT EXISTS review_date_time TIMESTAMP;`,
		},
	}

	for _, migration := range migrations {
		_, err := DB.Exec(migration.sql)
		if err != nil {
			if strings.Contains(err.Error(), "already exists") {
				log.Printf("INFO: Миграция '%s' пропущена (объект уже существует). Детали: %v", migration.name, err)
			} else {
				return fmt.Errorf("ошибка миграции схемы ('%s'): %v", migration.name, err)
			}
		} else {
			log.Printf("INFO: Миграция ('%s') успешно применена или объект уже существовал.", migration.name)
		}
	}

	log.Println("Миграция схемы базы данных успешно выполнена (или не требовалась).")
	return nil
}

// seedDictionaries заполняет справочники ролей и статусов значениями по умолчанию.
func seedDictionaries() error {
	seedSQL := `
        INSERT INTO role (role_name) VALUES ('tarot'), ('client'), ('admin')
        ON CONFLICT (role_name) DO NOTHING;
        INSERT INTO status (status_name) VALUES ('new'), ('in_work'), ('completed'), ('canceled')
        ON CONFLICT (status_name) DO NOTHING;
    `
	if _, err := DB.Exec(seedSQL); err != nil {
		return err
	}
	log.Println("Справочники ролей и статусов заполнены.")
	return nil
}

// CloseDB закрывает соединение с базой данных.
func CloseDB() {
	if DB != nil {
		DB.Close()
		log.Println("Соединение с базой данных закрыто.")
	}
}
