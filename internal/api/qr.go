package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"TaroloGO/internal/db"
)

// GetUserQRCode отдаёт PNG с QR-кодом, ведущим на публичную страницу профиля.
// Пользователь обязан существовать.
func GetUserQRCode(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(r, "user_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный user_id")
		return
	}

	if _, err := db.GetUserByID(userID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Пользователь не найден")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить пользователя")
		return
	}

	cfg := configFromContext(r)
	profileURL := fmt.Sprintf("%s/user/find/%d", strings.TrimRight(cfg.PublicURL, "/"), userID)

	png, err := qrcode.Encode(profileURL, qrcode.Medium, 256)
	if err != nil {
		log.Printf("GetUserQRCode: не удалось сгенерировать QR-код для user_id %d: %v", userID, err)
		writeJSONError(w, http.StatusInternalServerError, "Не удалось сгенерировать QR-код")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
