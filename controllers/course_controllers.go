package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prasetyawidi/attendance-app/models"
	"github.com/prasetyawidi/attendance-app/utils"
	"gorm.io/gorm"
)

type CourseController struct {
	DB *gorm.DB
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{DB: db}
}

// CreateCourse -> register a new course offering
func (cc *CourseController) CreateCourse(c *gin.Context) {
	var req struct {
		Code       string `json:"code" binding:"required"`
		Title      string `json:"title" binding:"required"`
		LecturerID *uint  `json:"lecturer_id"`
		RoomID     *uint  `json:"room_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	course := models.Course{
		Code:       req.Code,
		Title:      req.Title,
		LecturerID: req.LecturerID,
		RoomID:     req.RoomID,
		IsActive:   true,
	}
	if err := cc.DB.Create(&course).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New course created: %s (%s)", course.Code, course.Title)
	utils.RespondJSON(c, http.StatusCreated, "Course created successfully", course)
}

// GetAllCourses -> list courses; ?active=true narrows to active offerings
func (cc *CourseController) GetAllCourses(c *gin.Context) {
	query := cc.DB.Preload("Lecturer").Preload("Room")
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}

	var courses []models.Course
	if err := query.Find(&courses).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of courses", courses)
}

// GetCourseByID
func (cc *CourseController) GetCourseByID(c *gin.Context) {
	var course models.Course
	if err := cc.DB.Preload("Lecturer").Preload("Room").First(&course, c.Param("course_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Course detail", course)
}

// UpdateCourse -> partial update of title/lecturer/room/active flag
func (cc *CourseController) UpdateCourse(c *gin.Context) {
	var course models.Course
	if err := cc.DB.First(&course, c.Param("course_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Title      *string `json:"title"`
		LecturerID *uint   `json:"lecturer_id"`
		RoomID     *uint   `json:"room_id"`
		IsActive   *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.LecturerID != nil {
		course.LecturerID = req.LecturerID
	}
	if req.RoomID != nil {
		course.RoomID = req.RoomID
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}

	if err := cc.DB.Save(&course).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Course updated successfully", course)
}

// CreateSubject -> add a subject/topic under a course
func (cc *CourseController) CreateSubject(c *gin.Context) {
	var course models.Course
	if err := cc.DB.First(&course, c.Param("course_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	subject := models.Subject{
		CourseID: course.ID,
		Name:     req.Name,
		Code:     req.Code,
	}
	if err := cc.DB.Create(&subject).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Subject created successfully", subject)
}

// GetSubjects -> subjects of a course
func (cc *CourseController) GetSubjects(c *gin.Context) {
	var subjects []models.Subject
	if err := cc.DB.Where("course_id = ?", c.Param("course_id")).Find(&subjects).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of subjects", subjects)
}
