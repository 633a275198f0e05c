package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prasetyawidi/attendance-app/models"
	"github.com/prasetyawidi/attendance-app/services"
	"github.com/prasetyawidi/attendance-app/utils"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB      *gorm.DB
	service *services.NotificationService
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{
		DB:      db,
		service: services.NewNotificationService(db),
	}
}

// GetNotifications -> the caller's active notifications, paginated.
// Query params: page, limit, type, is_read.
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	callerID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	var isRead *bool
	if raw := c.Query("is_read"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("is_read must be true or false"))
			return
		}
		isRead = &parsed
	}

	result, err := nc.service.List(callerID, page, limit, c.Query("type"), isRead)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notifications retrieved", result)
}

// MarkRead -> flag one of the caller's notifications as read
func (nc *NotificationController) MarkRead(c *gin.Context) {
	callerID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	notifID, err := strconv.Atoi(c.Param("notif_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid notification id"))
		return
	}

	notif, err := nc.service.MarkRead(uint(notifID), callerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notification marked as read", notif)
}

// MarkAllRead -> flag every unread notification of the caller as read
func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	callerID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	modified, err := nc.service.MarkAllRead(callerID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All notifications marked as read", gin.H{
		"modified_count": modified,
	})
}

// DeleteNotification -> soft delete, scoped to the owning recipient
func (nc *NotificationController) DeleteNotification(c *gin.Context) {
	callerID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	notifID, err := strconv.Atoi(c.Param("notif_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid notification id"))
		return
	}

	if err := nc.service.SoftDelete(uint(notifID), callerID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notification deleted", gin.H{"notif_id": notifID})
}

// GenerateDailyReminders -> admin triggers the daily reminder batch for a
// date, optionally restricted to one course and tagged with a subject.
func (nc *NotificationController) GenerateDailyReminders(c *gin.Context) {
	if currentRole(c) != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, errors.New("admin access required"))
		return
	}

	var req struct {
		Date      string `json:"date" binding:"required"` // YYYY-MM-DD
		CourseID  *uint  `json:"course_id"`
		SubjectID *uint  `json:"subject_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("date must be YYYY-MM-DD"))
		return
	}

	result, err := nc.service.GenerateDailyReminders(date, req.CourseID, req.SubjectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Daily reminders generated", result)
}

// CreateLowAttendanceAlert -> admin/lecturer raises an alert directly
func (nc *NotificationController) CreateLowAttendanceAlert(c *gin.Context) {
	role := currentRole(c)
	if role != models.RoleAdmin && role != models.RoleLecturer {
		utils.RespondError(c, http.StatusForbidden, errors.New("lecturer access required"))
		return
	}

	var req struct {
		StudentID            uint    `json:"student_id" binding:"required"`
		CourseID             uint    `json:"course_id" binding:"required"`
		AttendancePercentage float64 `json:"attendance_percentage"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	notif, err := nc.service.RecordLowAttendanceAlert(req.StudentID, req.CourseID, req.AttendancePercentage)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Low attendance alert created for student %d (%.0f%%)", req.StudentID, req.AttendancePercentage)
	utils.RespondJSON(c, http.StatusCreated, "Low attendance alert created", notif)
}
