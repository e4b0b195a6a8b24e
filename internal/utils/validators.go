package utils

import (
	"strings"
	"unicode"

	"TaroloGO/internal/constants"
)

// IsValidReviewValue проверяет, что оценка отзыва лежит в допустимых границах.
// Ноль здесь недопустим: он означает "оценки нет" и не принимается от клиента.
func IsValidReviewValue(value int) bool {
	return value >= constants.REVIEW_VALUE_MIN && value <= constants.REVIEW_VALUE_MAX
}

// IsValidEmail - минимальная проверка адреса почты: непустые локальная часть и домен
// с точкой. Полная валидация делается на стороне клиента.
func IsValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

// IsValidPhoneNumber проверяет телефон: только цифры, пробелы, скобки, дефисы и
// необязательный ведущий плюс, не меньше 10 цифр.
func IsValidPhoneNumber(phone string) bool {
	digits := 0
	for i, r := range phone {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '(' || r == ')' || r == '-':
		default:
			return false
		}
	}
	return digits >= 10
}

// IsValidUsername проверяет имя пользователя: 3-100 символов, буквы, цифры и
// подчёркивания.
func IsValidUsername(username string) bool {
	if len(username) < 3 || len(username) > 100 {
		return false
	}
	for _, r := range username {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
