package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Post("/message/create", CreateMessage)
	r.Delete("/message/message_delete/{sender_id}/recipient_id/{recipient_id}/message_date_send/{message_date_send}", DeleteMessage)
	r.Post("/history/update_review/{history_id}", UpdateReview)
	r.Post("/user/create", CreateUser)
	return r
}

func doRequest(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, req)
	return rec
}

func TestCreateMessageRejectsMalformedBody(t *testing.T) {
	rec := doRequest(t, http.MethodPost, "/message/create", "{не json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateMessageRejectsNonPositiveIDs(t *testing.T) {
	rec := doRequest(t, http.MethodPost, "/message/create",
		`{"sender_id": 0, "recipient_id": 2, "message_text": "привет"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateMessageRejectsBlankText(t *testing.T) {
	rec := doRequest(t, http.MethodPost, "/message/create",
		`{"sender_id": 1, "recipient_id": 2, "message_text": "   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteMessageRejectsBadTimestamp(t *testing.T) {
	rec := doRequest(t, http.MethodDelete,
		"/message/message_delete/1/recipient_id/2/message_date_send/not-a-date", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateReviewRejectsOutOfRangeValue(t *testing.T) {
	for _, value := range []string{"0", "6", "-1"} {
		rec := doRequest(t, http.MethodPost, "/history/update_review/10",
			`{"review_title": "т", "review_text": "т", "review_value": `+value+`}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "оценка %s должна отклоняться", value)
	}
}

func TestUpdateReviewRejectsBadHistoryID(t *testing.T) {
	rec := doRequest(t, http.MethodPost, "/history/update_review/abc",
		`{"review_value": 4}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateUserRejectsInvalidEmail(t *testing.T) {
	rec := doRequest(t, http.MethodPost, "/user/create",
		`{"username": "client_1", "role_id": 2, "email": "нет", "phone_number": "89123456789", "password": "pw", "date_birth": "2000-01-02"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParseTimestampFormats(t *testing.T) {
	for _, value := range []string{
		"2026-03-10T12:00:00.123456Z",
		"2026-03-10T12:00:00.123456",
		"2026-03-10 12:00:00.123456",
	} {
		ts, ok := parseTimestamp(value)
		require.True(t, ok, "формат %s должен разбираться", value)
		assert.Equal(t, 2026, ts.Year())
		assert.Equal(t, time.March, ts.Month())
	}

	_, ok := parseTimestamp("10.03.2026")
	assert.False(t, ok)
}

func TestParseDate(t *testing.T) {
	ts, ok := parseDate("2000-01-02")
	require.True(t, ok)
	assert.Equal(t, 2000, ts.Year())

	_, ok = parseDate("02.01.2000")
	assert.False(t, ok)
}
