package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-cloud-drive/internal/config"
	"go-cloud-drive/internal/drive"
	"go-cloud-drive/internal/models"
	"go-cloud-drive/internal/storage"
	ws "go-cloud-drive/internal/websocket"
)

var (
	cfg      *config.Config
	sessions *drive.Registry
	objects  storage.Storage
)

// Init wires the handler package to its collaborators. Called once from main.
func Init(c *config.Config, registry *drive.Registry, store storage.Storage) {
	cfg = c
	sessions = registry
	objects = store
}

// HealthCheck reports liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// currentUser returns the account JWTAuth placed on the context.
func currentUser(c *gin.Context) *models.User {
	user, _ := c.Get("user")
	return user.(*models.User)
}

// managerFor returns the drive session for the authenticated user, with
// progress updates forwarded to the user's open WebSocket connections.
func managerFor(c *gin.Context) (*drive.Manager, error) {
	user := currentUser(c)
	m, err := sessions.Manager(c.Request.Context(), user.ID, user.StorageLimit)
	if err != nil {
		return nil, err
	}
	userID := user.ID
	m.OnProgress(func(progress int, message string) {
		ws.GetManager().SendUploadProgress(userID, progress, message)
	})
	return m, nil
}
