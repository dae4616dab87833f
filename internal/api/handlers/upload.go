package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"go-cloud-drive/internal/drive"
	ws "go-cloud-drive/internal/websocket"
)

// UploadBatch accepts a multipart batch: one or more "files" parts, each
// optionally paired with a "relative_paths" value carrying the nested path
// from a folder selection ("Trip/Day1/a.jpg"). Files land in the folder
// named by the "folder_id" field, or the root when absent.
func UploadBatch(c *gin.Context) {
	user := currentUser(c)

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid multipart form: %v", err)})
		return
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files provided"})
		return
	}
	for _, fh := range fileHeaders {
		if fh.Size > cfg.Storage.MaxUploadSize {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("File %s exceeds the maximum upload size", fh.Filename),
			})
			return
		}
	}
	relativePaths := form.Value["relative_paths"]

	m, err := managerFor(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open drive session"})
		return
	}

	var folderID *string
	if id := c.PostForm("folder_id"); id != "" {
		folderID = &id
	}
	if err := m.NavigateTo(c.Request.Context(), folderID); err != nil {
		respondDriveError(c, err)
		return
	}

	items := make([]drive.UploadItem, 0, len(fileHeaders))
	opened := make([]multipart.File, 0, len(fileHeaders))
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()

	for i, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Failed to read %s: %v", fh.Filename, err)})
			return
		}
		opened = append(opened, f)

		rel := ""
		if i < len(relativePaths) {
			rel = relativePaths[i]
		}
		items = append(items, drive.UploadItem{
			Name:         filepath.Base(fh.Filename),
			RelativePath: rel,
			SizeBytes:    fh.Size,
			ContentType:  contentTypeOf(fh, f),
			Data:         f,
		})
	}

	result, err := m.UploadBatch(c.Request.Context(), items)
	if err != nil {
		ws.GetManager().SendUploadError(user.ID, err.Error())
		c.JSON(http.StatusOK, gin.H{"message": "Upload interrupted", "result": result})
		return
	}

	ws.GetManager().SendUploadComplete(user.ID, map[string]interface{}{
		"total":    result.Total,
		"uploaded": result.Uploaded,
		"skipped":  result.Skipped,
		"failed":   len(result.Failures),
	})
	c.JSON(http.StatusOK, gin.H{"message": "Upload completed", "result": result, "state": m.Snapshot()})
}

// contentTypeOf prefers the client-declared type and falls back to sniffing
// the payload. The reader is rewound afterwards.
func contentTypeOf(fh *multipart.FileHeader, f multipart.File) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" {
		return ct
	}
	mtype, err := mimetype.DetectReader(f)
	if _, seekErr := f.Seek(0, 0); seekErr != nil || err != nil {
		return "application/octet-stream"
	}
	return mtype.String()
}
