package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prasetyawidi/attendance-app/models"
	"github.com/prasetyawidi/attendance-app/utils"
	"gorm.io/gorm"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetDashboardStats -> headline counts for the admin dashboard
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	if currentRole(c) != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, errors.New("admin access required"))
		return
	}

	var studentCount, courseCount, enrollmentCount int64
	ac.DB.Model(&models.User{}).Where("role = ?", models.RoleStudent).Count(&studentCount)
	ac.DB.Model(&models.Course{}).Where("is_active = ?", true).Count(&courseCount)
	ac.DB.Model(&models.Enrollment{}).
		Where("status = ? AND is_active = ?", models.EnrollmentStatusEnrolled, true).
		Count(&enrollmentCount)

	var activeNotifs, unreadNotifs int64
	ac.DB.Model(&models.Notification{}).Where("is_active = ?", true).Count(&activeNotifs)
	ac.DB.Model(&models.Notification{}).
		Where("is_active = ? AND is_read = ?", true, false).
		Count(&unreadNotifs)

	// Active notifications broken down by priority.
	type priorityRow struct {
		Priority string
		Count    int64
	}
	var rows []priorityRow
	ac.DB.Model(&models.Notification{}).
		Select("priority, count(*) as count").
		Where("is_active = ?", true).
		Group("priority").
		Scan(&rows)

	byPriority := map[string]int64{}
	for _, row := range rows {
		byPriority[row.Priority] = row.Count
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", gin.H{
		"students":                  studentCount,
		"active_courses":            courseCount,
		"active_enrollments":        enrollmentCount,
		"active_notifications":      activeNotifs,
		"unread_notifications":      unreadNotifs,
		"notifications_by_priority": byPriority,
	})
}
