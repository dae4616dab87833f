package handlers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-cloud-drive/internal/database"
	"go-cloud-drive/internal/models"
	"go-cloud-drive/internal/utils"
)

type exportRow struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	MimeType  string    `json:"mime_type"`
	Size      string    `json:"size"`
	SizeBytes int64     `json:"size_bytes"`
	FolderID  string    `json:"folder_id,omitempty"`
	Favorite  bool      `json:"favorite"`
	CreatedAt time.Time `json:"created_at"`
}

func exportRows(files []models.File) []exportRow {
	rows := make([]exportRow, 0, len(files))
	for _, f := range files {
		folderID := ""
		if f.FolderID != nil {
			folderID = *f.FolderID
		}
		rows = append(rows, exportRow{
			ID:        f.ID,
			Name:      f.Name,
			Type:      utils.GetFileType(f.Name),
			MimeType:  f.MimeType,
			Size:      utils.FormatBytes(f.SizeBytes),
			SizeBytes: f.SizeBytes,
			FolderID:  folderID,
			Favorite:  f.IsFavorite,
			CreatedAt: f.CreatedAt,
		})
	}
	return rows
}

// ExportCSV downloads the user's full file inventory as CSV.
func ExportCSV(c *gin.Context) {
	var files []models.File
	userID, _ := c.Get("user_id")

	if err := database.GetDB().Where("owner_id = ?", userID).Find(&files).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch files"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment;filename=drive_export.csv")

	// Once the header row is out the response is a committed 200 stream;
	// write errors can only be logged and the stream cut short.
	if err := writeCSV(c.Writer, exportRows(files)); err != nil {
		log.Printf("export: csv stream aborted: %v", err)
	}
}

func writeCSV(w io.Writer, rows []exportRow) error {
	writer := csv.NewWriter(w)
	err := writer.Write([]string{"ID", "Name", "Type", "MimeType", "Size", "SizeBytes", "FolderID", "Favorite", "Created At"})
	if err != nil {
		return err
	}

	for _, row := range rows {
		err := writer.Write([]string{
			row.ID,
			row.Name,
			row.Type,
			row.MimeType,
			row.Size,
			fmt.Sprint(row.SizeBytes),
			row.FolderID,
			fmt.Sprint(row.Favorite),
			row.CreatedAt.String(),
		})
		if err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportJSON downloads the user's full file inventory as JSON.
func ExportJSON(c *gin.Context) {
	var files []models.File
	userID, _ := c.Get("user_id")

	if err := database.GetDB().Where("owner_id = ?", userID).Find(&files).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch files"})
		return
	}

	jsonData, err := json.MarshalIndent(exportRows(files), "", "  ")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to marshal JSON"})
		return
	}

	c.Header("Content-Disposition", "attachment;filename=drive_export.json")
	c.Data(http.StatusOK, "application/json", jsonData)
}
