package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"go-cloud-drive/internal/database"
	"go-cloud-drive/internal/models"
	"go-cloud-drive/internal/utils"
)

// RenameFile handles renaming a file
func RenameFile(c *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required,min=1,max=255"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: file name is required"})
		return
	}

	m, err := managerFor(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open drive session"})
		return
	}

	if err := m.RenameFile(c.Request.Context(), c.Param("id"), input.Name); err != nil {
		respondDriveError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "File renamed"})
}

// DeleteFile removes the file's object and metadata row
func DeleteFile(c *gin.Context) {
	m, err := managerFor(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open drive session"})
		return
	}

	if err := m.DeleteFile(c.Request.Context(), c.Param("id")); err != nil {
		respondDriveError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "File deleted"})
}

// ToggleFavorite flips the star on a file
func ToggleFavorite(c *gin.Context) {
	m, err := managerFor(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open drive session"})
		return
	}

	favorite, err := m.ToggleFavorite(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDriveError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_favorite": favorite})
}

// ListFavorites returns the user's starred files across all folders
func ListFavorites(c *gin.Context) {
	m, err := managerFor(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open drive session"})
		return
	}

	files, err := m.Favorites(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

// ServeFile streams a file's object through the server, optionally resizing
// images on the fly (width/height/fit query parameters).
func ServeFile(c *gin.Context) {
	user := currentUser(c)

	var file models.File
	if err := database.GetDB().Where("id = ? AND owner_id = ?", c.Param("id"), user.ID).First(&file).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	reader, err := objects.Download(file.StorageKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to fetch object: %v", err)})
		return
	}
	defer reader.Close()

	opts := utils.ResizeOptions{
		Width:  utils.ParseIntOption(c.Query("width")),
		Height: utils.ParseIntOption(c.Query("height")),
		Fit:    c.Query("fit"),
	}
	if strings.HasPrefix(file.MimeType, "image/") && !opts.IsEmpty() {
		resized, err := utils.ResizeImage(reader, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to resize image: %v", err)})
			return
		}
		c.Data(http.StatusOK, "image/png", resized)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", file.Name))
	c.DataFromReader(http.StatusOK, file.SizeBytes, file.MimeType, reader, nil)
}

// ShareFile returns the payloads the share composer offers: the public URL,
// a time-limited signed URL, and prefilled mailto/WhatsApp links.
func ShareFile(c *gin.Context) {
	user := currentUser(c)

	var file models.File
	if err := database.GetDB().Where("id = ? AND owner_id = ?", c.Param("id"), user.ID).First(&file).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	signedURL, err := objects.GetPresignedURL(file.StorageKey, 24*time.Hour)
	if err != nil {
		signedURL = file.PublicURL
	}

	text := fmt.Sprintf("File: %s\n%s", file.Name, file.PublicURL)
	c.JSON(http.StatusOK, gin.H{
		"public_url":   file.PublicURL,
		"signed_url":   signedURL,
		"whatsapp_url": "https://wa.me/?text=" + url.QueryEscape(text),
		"mailto_url": fmt.Sprintf("mailto:?subject=%s&body=%s",
			url.QueryEscape("Shared file: "+file.Name), url.QueryEscape(file.PublicURL)),
	})
}
