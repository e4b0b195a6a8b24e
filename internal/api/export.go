package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"TaroloGO/internal/db"
	"TaroloGO/internal/models"
)

// exportHeaders - шапка отчёта по записям истории таролога.
var exportHeaders = []string{
	"ID записи", "ID клиента", "ID услуги", "ID статуса",
	"Заголовок отзыва", "Текст отзыва", "Оценка", "Дата отзыва",
}

// ExportTarotHistory выгружает все записи истории таролога в файл XLSX.
func ExportTarotHistory(w http.ResponseWriter, r *http.Request) {
	tarotID, ok := parseIDParam(r, "tarot_id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Некорректный tarot_id")
		return
	}

	entries, err := db.GetTarotHistoryForExport(tarotID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Записи истории не найдены")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Не удалось получить записи истории")
		return
	}

	f, err := buildHistoryWorkbook(entries)
	if err != nil {
		log.Printf("ExportTarotHistory: не удалось сформировать отчёт tarot_id %d: %v", tarotID, err)
		writeJSONError(w, http.StatusInternalServerError, "Не удалось сформировать отчёт")
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("tarot_history_%s.xlsx", uuid.New().String())
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := f.Write(w); err != nil {
		log.Printf("ExportTarotHistory: ошибка записи отчёта tarot_id %d: %v", tarotID, err)
	}
}

// buildHistoryWorkbook собирает книгу XLSX из записей истории.
func buildHistoryWorkbook(entries []models.UserServiceHistory) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			f.Close()
			return nil, err
		}
	}

	for row, e := range entries {
		values := []interface{}{
			e.HistoryID, e.UserID, e.ServiceID, e.StatusID,
			e.ReviewTitle.String, e.ReviewText.String, e.ReviewValue, "",
		}
		if e.ReviewDateTime.Valid {
			values[7] = e.ReviewDateTime.Time.Format("2006-01-02 15:04:05")
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				f.Close()
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				f.Close()
				return nil, err
			}
		}
	}
	return f, nil
}
