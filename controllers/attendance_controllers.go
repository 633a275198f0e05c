package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prasetyawidi/attendance-app/models"
	"github.com/prasetyawidi/attendance-app/services"
	"github.com/prasetyawidi/attendance-app/utils"
	"gorm.io/gorm"
)

type AttendanceController struct {
	DB      *gorm.DB
	service *services.AttendanceService
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{
		DB:      db,
		service: services.NewAttendanceService(db),
	}
}

// MarkAttendance -> lecturer/admin records one attendance event. The
// notification engine produces the confirmation (and, if the student's
// percentage fell below the threshold, the low-attendance alert).
func (ac *AttendanceController) MarkAttendance(c *gin.Context) {
	role := currentRole(c)
	if role != models.RoleAdmin && role != models.RoleLecturer {
		utils.RespondError(c, http.StatusForbidden, errors.New("lecturer access required"))
		return
	}

	markerID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var req struct {
		StudentID uint   `json:"student_id" binding:"required"`
		CourseID  uint   `json:"course_id" binding:"required"`
		SubjectID *uint  `json:"subject_id"`
		Status    string `json:"status" binding:"required"`
		Date      string `json:"date" binding:"required"` // YYYY-MM-DD
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

	record, err := ac.service.MarkAttendance(req.StudentID, req.CourseID, req.SubjectID, req.Status, date, markerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Attendance marked: student %d course %d status=%s", req.StudentID, req.CourseID, req.Status)
	utils.RespondJSON(c, http.StatusCreated, "Attendance recorded", record)
}

// GetAttendance -> list attendance records filtered by course and/or student
func (ac *AttendanceController) GetAttendance(c *gin.Context) {
	query := ac.DB.Preload("Student").Preload("Course").Preload("MarkedBy")
	if courseID := c.Query("course_id"); courseID != "" {
		query = query.Where("course_id = ?", courseID)
	}
	if studentID := c.Query("student_id"); studentID != "" {
		query = query.Where("student_id = ?", studentID)
	}

	var records []models.AttendanceRecord
	if err := query.Order("date DESC").Find(&records).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Attendance records", records)
}

// respondServiceError maps the service error kinds onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
