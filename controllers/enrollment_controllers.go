package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prasetyawidi/attendance-app/models"
	"github.com/prasetyawidi/attendance-app/utils"
	"gorm.io/gorm"
)

type EnrollmentController struct {
	DB *gorm.DB
}

func NewEnrollmentController(db *gorm.DB) *EnrollmentController {
	return &EnrollmentController{DB: db}
}

// Enroll -> add a student to a course
func (ec *EnrollmentController) Enroll(c *gin.Context) {
	var req struct {
		StudentID uint `json:"student_id" binding:"required"`
		CourseID  uint `json:"course_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var student models.User
	if err := ec.DB.First(&student, req.StudentID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("student not found"))
		return
	}
	if student.Role != models.RoleStudent {
		utils.RespondError(c, http.StatusBadRequest, errors.New("user is not a student"))
		return
	}
	var course models.Course
	if err := ec.DB.First(&course, req.CourseID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("course not found"))
		return
	}

	// Re-activate a dropped enrollment instead of stacking duplicates.
	var existing models.Enrollment
	err := ec.DB.Where("student_id = ? AND course_id = ?", req.StudentID, req.CourseID).First(&existing).Error
	if err == nil {
		existing.Status = models.EnrollmentStatusEnrolled
		existing.IsActive = true
		if err := ec.DB.Save(&existing).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Enrollment re-activated", existing)
		return
	}

	enrollment := models.Enrollment{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Status:    models.EnrollmentStatusEnrolled,
		IsActive:  true,
	}
	if err := ec.DB.Create(&enrollment).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Student %d enrolled in course %d", req.StudentID, req.CourseID)
	utils.RespondJSON(c, http.StatusCreated, "Enrollment created successfully", enrollment)
}

// Drop -> mark an enrollment as dropped
func (ec *EnrollmentController) Drop(c *gin.Context) {
	var enrollment models.Enrollment
	if err := ec.DB.First(&enrollment, c.Param("enrollment_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	enrollment.Status = models.EnrollmentStatusDropped
	if err := ec.DB.Save(&enrollment).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Enrollment dropped", enrollment)
}

// GetRoster -> active enrolled students of a course
func (ec *EnrollmentController) GetRoster(c *gin.Context) {
	var enrollments []models.Enrollment
	err := ec.DB.Preload("Student").
		Where("course_id = ? AND status = ? AND is_active = ?",
			c.Param("course_id"), models.EnrollmentStatusEnrolled, true).
		Find(&enrollments).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Course roster", enrollments)
}
