package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-cloud-drive/internal/database"
	"go-cloud-drive/internal/models"
	"go-cloud-drive/internal/utils"
)

// ListUsers returns every account with its storage usage, for the admin
// console's user table.
func ListUsers(c *gin.Context) {
	var users []models.User
	db := database.GetDB()
	if err := db.Order("created_at DESC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	type userRow struct {
		models.User
		UsedBytes int64  `json:"used_bytes"`
		Used      string `json:"used"`
	}
	rows := make([]userRow, 0, len(users))
	for _, u := range users {
		var used int64
		db.Model(&models.File{}).
			Where("owner_id = ?", u.ID).
			Select("COALESCE(SUM(size_bytes), 0)").
			Scan(&used)
		rows = append(rows, userRow{User: u, UsedBytes: used, Used: utils.FormatBytes(used)})
	}

	c.JSON(http.StatusOK, gin.H{"users": rows})
}

// ToggleUserRole promotes a user to admin or demotes them back.
func ToggleUserRole(c *gin.Context) {
	admin := currentUser(c)
	if admin.ID == c.Param("id") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot change your own role"})
		return
	}

	var target models.User
	db := database.GetDB()
	if err := db.Where("id = ?", c.Param("id")).First(&target).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	newRole := models.RoleAdmin
	if target.IsAdmin() {
		newRole = models.RoleUser
	}
	if err := db.Model(&target).Update("role", newRole).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": target.ID, "role": newRole})
}

// AdminStats reports platform-wide totals for the admin dashboard.
func AdminStats(c *gin.Context) {
	db := database.GetDB()

	var userCount, fileCount int64
	var totalBytes int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.File{}).Count(&fileCount)
	db.Model(&models.File{}).Select("COALESCE(SUM(size_bytes), 0)").Scan(&totalBytes)

	c.JSON(http.StatusOK, gin.H{
		"users":       userCount,
		"files":       fileCount,
		"total_bytes": totalBytes,
		"total":       utils.FormatBytes(totalBytes),
	})
}

// ListPlans returns all subscription plans ordered by price.
func ListPlans(c *gin.Context) {
	var plans []models.Plan
	if err := database.GetDB().Order("price").Find(&plans).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch plans"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// CreatePlan adds a subscription plan.
func CreatePlan(c *gin.Context) {
	var input struct {
		Name         string   `json:"name" binding:"required"`
		Price        int64    `json:"price"`
		StorageLimit int64    `json:"storage_limit"`
		Features     []string `json:"features"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Plan name is required"})
		return
	}

	plan := models.Plan{
		Name:         input.Name,
		Price:        input.Price,
		StorageLimit: input.StorageLimit,
		Features:     input.Features,
	}
	if err := database.GetDB().Create(&plan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create plan"})
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// DeletePlan removes a subscription plan.
func DeletePlan(c *gin.Context) {
	result := database.GetDB().Where("id = ?", c.Param("id")).Delete(&models.Plan{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete plan"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plan deleted"})
}

// Subscribe puts the authenticated user on a plan and raises their quota.
// Payment collection happens outside this service; by the time this endpoint
// is called the plan is either free or already paid for.
func Subscribe(c *gin.Context) {
	var plan models.Plan
	db := database.GetDB()
	if err := db.Where("id = ?", c.Param("id")).First(&plan).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}

	user := currentUser(c)
	updates := map[string]interface{}{
		"plan":          plan.Name,
		"is_pro":        true,
		"storage_limit": plan.StorageLimit,
	}
	if err := db.Model(user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to activate plan"})
		return
	}

	// The next drive request picks the new limit up through the registry.
	c.JSON(http.StatusOK, gin.H{"plan": plan.Name, "storage_limit": plan.StorageLimit})
}
