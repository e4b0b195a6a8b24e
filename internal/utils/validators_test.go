package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidReviewValue(t *testing.T) {
	assert.True(t, IsValidReviewValue(1))
	assert.True(t, IsValidReviewValue(3))
	assert.True(t, IsValidReviewValue(5))

	// Ноль означает "оценки нет" и от клиента не принимается
	assert.False(t, IsValidReviewValue(0))
	assert.False(t, IsValidReviewValue(6))
	assert.False(t, IsValidReviewValue(-1))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("user@example.com"))
	assert.True(t, IsValidEmail("a.b@mail.ru"))

	assert.False(t, IsValidEmail(""))
	assert.False(t, IsValidEmail("user"))
	assert.False(t, IsValidEmail("@example.com"))
	assert.False(t, IsValidEmail("user@"))
	assert.False(t, IsValidEmail("user@example"))
}

func TestIsValidPhoneNumber(t *testing.T) {
	assert.True(t, IsValidPhoneNumber("+7 (912) 345-67-89"))
	assert.True(t, IsValidPhoneNumber("89123456789"))

	assert.False(t, IsValidPhoneNumber("12345"))
	assert.False(t, IsValidPhoneNumber("8912345678x"))
	assert.False(t, IsValidPhoneNumber("8+9123456789"))
}

func TestIsValidUsername(t *testing.T) {
	assert.True(t, IsValidUsername("tarolog_1"))
	assert.True(t, IsValidUsername("Ира"))

	assert.False(t, IsValidUsername("ab"))
	assert.False(t, IsValidUsername("bad name"))
	assert.False(t, IsValidUsername("bad@name"))
}

func TestHashAndVerifyPassword(t *testing.T) {
	hashed, err := HashPassword("secret-password")
	assert.NoError(t, err)
	assert.NotEqual(t, "secret-password", hashed)

	assert.True(t, VerifyPassword("secret-password", hashed))
	assert.False(t, VerifyPassword("wrong-password", hashed))
}
