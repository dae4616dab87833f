package api

import (
	"github.com/gin-gonic/gin"

	"go-cloud-drive/internal/api/handlers"
	"go-cloud-drive/internal/api/middleware"
	"go-cloud-drive/internal/config"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(router *gin.Engine, cfg *config.Config) {
	router.GET("/health", handlers.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
		}

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(cfg))
		{
			drive := protected.Group("/drive")
			{
				drive.GET("", handlers.ListDrive)
				drive.GET("/folders/:id", handlers.ListDrive)
				drive.POST("/folders", handlers.CreateFolder)
				drive.PUT("/folders/:id", handlers.RenameFolder)
				drive.DELETE("/folders/:id", handlers.DeleteFolder)

				drive.POST("/upload", handlers.UploadBatch)
				drive.PUT("/files/:id", handlers.RenameFile)
				drive.DELETE("/files/:id", handlers.DeleteFile)
				drive.POST("/files/:id/favorite", handlers.ToggleFavorite)
				drive.GET("/files/:id/serve", handlers.ServeFile)
				drive.GET("/files/:id/share", handlers.ShareFile)
				drive.GET("/favorites", handlers.ListFavorites)
			}

			export := protected.Group("/export")
			{
				export.GET("/csv", handlers.ExportCSV)
				export.GET("/json", handlers.ExportJSON)
			}

			profile := protected.Group("/profile")
			{
				profile.GET("", handlers.GetProfile)
				profile.PUT("", handlers.UpdateProfile)
				profile.POST("/avatar", handlers.UploadAvatar)
			}

			protected.GET("/plans", handlers.ListPlans)
			protected.POST("/plans/:id/subscribe", handlers.Subscribe)
			protected.GET("/ws", handlers.ConnectWS)

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				admin.GET("/users", handlers.ListUsers)
				admin.POST("/users/:id/role", handlers.ToggleUserRole)
				admin.GET("/stats", handlers.AdminStats)
				admin.GET("/plans", handlers.ListPlans)
				admin.POST("/plans", handlers.CreatePlan)
				admin.DELETE("/plans/:id", handlers.DeletePlan)
			}
		}
	}
}
