package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecalculatedRatingFirstReview(t *testing.T) {
	// Первый отзыв: рейтинг равен самой оценке, счётчик не увеличивается здесь
	rating, bumpCount := recalculatedRating(0, 0, 0, 4)
	require.True(t, rating.Valid)
	assert.InDelta(t, 4.0, rating.Float64, 1e-9)
	assert.False(t, bumpCount)
}

func TestRecalculatedRatingSecondReview(t *testing.T) {
	// Один существующий отзыв с оценкой 4, новый отзыв 2: (4 - 0 + 2) / (1 + 1) = 3
	rating, bumpCount := recalculatedRating(4, 1, 0, 2)
	require.True(t, rating.Valid)
	assert.InDelta(t, 3.0, rating.Float64, 1e-9)
	assert.True(t, bumpCount)
}

func TestRecalculatedRatingEditExistingReview(t *testing.T) {
	// Правка отзыва: старая оценка вычитается из суммы до добавления новой.
	// Сумма 7 по двум отзывам (4 и 3), правим 3 -> 5: (7 - 3 + 5) / (2 + 1) = 3
	rating, bumpCount := recalculatedRating(7, 2, 3, 5)
	require.True(t, rating.Valid)
	assert.InDelta(t, 3.0, rating.Float64, 1e-9)
	assert.True(t, bumpCount)
}

func TestRecalculatedRatingRemoveOnlyReview(t *testing.T) {
	// Снятие единственной оценки при нулевом счётчике: рейтинг сбрасывается в NULL
	rating, bumpCount := recalculatedRating(0, 0, 3, 0)
	assert.False(t, rating.Valid)
	assert.False(t, bumpCount)
}

func TestRecalculatedRatingZeroAgainstExisting(t *testing.T) {
	// Снятие оценки при других существующих отзывах идёт по общей формуле:
	// (9 - 4 + 0) / (2 + 1) = 5/3
	rating, bumpCount := recalculatedRating(9, 2, 4, 0)
	require.True(t, rating.Valid)
	assert.InDelta(t, 5.0/3.0, rating.Float64, 1e-9)
	assert.True(t, bumpCount)
}

func TestRecalculatedRatingKeepsDenominatorOffset(t *testing.T) {
	// Знаменатель всегда count + 1, даже когда правится уже учтённый отзыв:
	// три отзыва по 5, правка одного 5 -> 5 даёт (15 - 5 + 5) / 4 = 3.75, а не 5
	rating, bumpCount := recalculatedRating(15, 3, 5, 5)
	require.True(t, rating.Valid)
	assert.InDelta(t, 3.75, rating.Float64, 1e-9)
	assert.True(t, bumpCount)
}
