package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TaroloGO/internal/models"
)

func summaryAt(companionID, senderID int64, text string, sentAt time.Time) models.ContactSummary {
	return models.ContactSummary{
		CompanionID:     companionID,
		Username:        "user",
		SenderID:        senderID,
		MessageText:     text,
		MessageDateSend: sentAt,
	}
}

func TestCollapseContactSummariesOneRowPerCompanion(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	candidates := []models.ContactSummary{
		summaryAt(2, 1, "третье", base.Add(2*time.Minute)),
		summaryAt(2, 2, "второе", base.Add(time.Minute)),
		summaryAt(2, 1, "первое", base),
		summaryAt(3, 3, "привет", base.Add(30*time.Second)),
	}

	summaries := collapseContactSummaries(candidates)
	require.Len(t, summaries, 2)
	assert.Equal(t, int64(2), summaries[0].CompanionID)
	assert.Equal(t, "третье", summaries[0].MessageText)
	assert.Equal(t, int64(3), summaries[1].CompanionID)
	assert.Equal(t, "привет", summaries[1].MessageText)
}

func TestCollapseContactSummariesSortedByDateDesc(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	candidates := []models.ContactSummary{
		summaryAt(5, 5, "старое", base),
		summaryAt(7, 7, "новое", base.Add(time.Hour)),
		summaryAt(6, 6, "среднее", base.Add(time.Minute)),
	}

	summaries := collapseContactSummaries(candidates)
	require.Len(t, summaries, 3)
	assert.Equal(t, int64(7), summaries[0].CompanionID)
	assert.Equal(t, int64(6), summaries[1].CompanionID)
	assert.Equal(t, int64(5), summaries[2].CompanionID)
}

func TestCollapseContactSummariesExactTieKeepsFirst(t *testing.T) {
	// При полном совпадении даты отправки у одного собеседника остаётся
	// первая встреченная запись
	ts := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	candidates := []models.ContactSummary{
		summaryAt(2, 1, "первая", ts),
		summaryAt(2, 2, "вторая", ts),
	}

	summaries := collapseContactSummaries(candidates)
	require.Len(t, summaries, 1)
	assert.Equal(t, "первая", summaries[0].MessageText)
}

func TestCollapseContactSummariesTieAcrossCompanions(t *testing.T) {
	// Одинаковая дата у разных собеседников: порядок по возрастанию companion_id
	ts := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	candidates := []models.ContactSummary{
		summaryAt(9, 9, "от девятого", ts),
		summaryAt(4, 4, "от четвёртого", ts),
	}

	summaries := collapseContactSummaries(candidates)
	require.Len(t, summaries, 2)
	assert.Equal(t, int64(4), summaries[0].CompanionID)
	assert.Equal(t, int64(9), summaries[1].CompanionID)
}

func TestCollapseContactSummariesEmpty(t *testing.T) {
	assert.Empty(t, collapseContactSummaries(nil))
}
