package utils

import (
	"log"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword хеширует пароль с помощью bcrypt (соль генерируется автоматически).
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("HashPassword: ошибка хеширования пароля: %v", err)
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword сверяет пароль с его хеш-версией.
func VerifyPassword(password, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
