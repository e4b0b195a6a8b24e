package api

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"TaroloGO/internal/db"
)

// UploadPhotoResponse - результат загрузки фотографии профиля.
type UploadPhotoResponse struct {
	FileID string `json:"file_id"`
}

// UploadProfilePhoto принимает фотографию профиля (multipart-поле "photo"),
// сохраняет её под уникальным именем и записывает имя файла в профиль.
func UploadProfilePhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(r, "user_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный user_id")
		return
	}

	cfg := configFromContext(r)
	if err := os.MkdirAll(cfg.MediaDir, 0o755); err != nil {
		log.Printf("UploadProfilePhoto: не удалось создать каталог %s: %v", cfg.MediaDir, err)
		writeJSONError(w, http.StatusInternalServerError, "Не удалось подготовить хранилище")
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil { // 32 MB
		writeJSONError(w, http.StatusBadRequest, "Не удалось разобрать multipart-форму")
		return
	}

	file, handler, err := r.FormFile("photo")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "В форме отсутствует файл photo")
		return
	}
	defer file.Close()

	ext := filepath.Ext(handler.Filename)
	uniqueFilename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	destPath := filepath.Join(cfg.MediaDir, uniqueFilename)

	destFile, err := os.Create(destPath)
	if err != nil {
		log.Printf("UploadProfilePhoto: не удалось создать файл %s: %v", destPath, err)
		writeJSONError(w, http.StatusInternalServerError, "Не удалось сохранить файл")
		return
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, file); err != nil {
		log.Printf("UploadProfilePhoto: не удалось записать файл %s: %v", destPath, err)
		writeJSONError(w, http.StatusInternalServerError, "Не удалось сохранить файл")
		return
	}

	if err := db.UpdateUserProfilePicture(userID, uniqueFilename); err != nil {
		os.Remove(destPath)
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Пользователь не найден")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось обновить профиль")
		return
	}

	writeJSONSuccess(w, "Фотография профиля загружена", UploadPhotoResponse{FileID: uniqueFilename})
}

// ServeMedia отдаёт файл из медиа-хранилища по имени.
func ServeMedia(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if filename == "" || strings.Contains(filename, "/") || strings.Contains(filename, "\\") || strings.Contains(filename, "..") {
		http.Error(w, "Некорректное имя файла", http.StatusBadRequest)
		return
	}

	cfg := configFromContext(r)
	filePath := filepath.Join(cfg.MediaDir, filename)

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			http.Error(w, "Файл не найден", http.StatusNotFound)
		} else {
			http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		}
		return
	}
	if fileInfo.IsDir() {
		http.Error(w, "Некорректное имя файла", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", mediaContentType(filepath.Ext(filename)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeFile(w, r, filePath)
}

// mediaContentType возвращает Content-Type по расширению файла.
func mediaContentType(ext string) string {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
