package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-cloud-drive/internal/drive"
)

// respondDriveError maps drive-layer errors onto HTTP statuses.
func respondDriveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, drive.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, drive.ErrFolderNotEmpty):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete a folder that still has content"})
	case errors.Is(err, drive.ErrDuplicateName):
		c.JSON(http.StatusConflict, gin.H{"error": "A sibling with that name already exists"})
	case errors.Is(err, drive.ErrEmptyName):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name must not be empty"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// ListDrive returns the listing of the root or of the folder named in the
// route, together with the quota gauge the storage bar renders.
func ListDrive(c *gin.Context) {
	m, err := managerFor(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open drive session"})
		return
	}

	var folderID *string
	if id := c.Param("id"); id != "" {
		folderID = &id
	}
	if err := m.NavigateTo(c.Request.Context(), folderID); err != nil {
		respondDriveError(c, err)
		return
	}

	c.JSON(http.StatusOK, m.Snapshot())
}

// CreateFolder handles folder creation in the currently viewed folder
func CreateFolder(c *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required,min=1,max=255"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: folder name is required"})
		return
	}

	m, err := managerFor(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open drive session"})
		return
	}

	folder, err := m.CreateFolder(c.Request.Context(), input.Name)
	if err != nil {
		respondDriveError(c, err)
		return
	}
	c.JSON(http.StatusCreated, folder)
}

// RenameFolder handles renaming a folder
func RenameFolder(c *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required,min=1,max=255"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: folder name is required"})
		return
	}

	m, err := managerFor(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open drive session"})
		return
	}

	if err := m.RenameFolder(c.Request.Context(), c.Param("id"), input.Name); err != nil {
		respondDriveError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Folder renamed"})
}

// DeleteFolder handles folder deletion; non-empty folders are rejected
func DeleteFolder(c *gin.Context) {
	m, err := managerFor(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open drive session"})
		return
	}

	if err := m.DeleteFolder(c.Request.Context(), c.Param("id")); err != nil {
		respondDriveError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Folder deleted"})
}
