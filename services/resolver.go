package services

import (
	"errors"
	"fmt"

	"github.com/prasetyawidi/attendance-app/models"
	"gorm.io/gorm"
)

// ReferenceResolver looks up the users, courses and rosters a notification
// references before any record is written. A missing reference fails the
// whole operation up front.
type ReferenceResolver struct {
	DB *gorm.DB
}

func NewReferenceResolver(db *gorm.DB) *ReferenceResolver {
	return &ReferenceResolver{DB: db}
}

func (r *ReferenceResolver) User(id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

func (r *ReferenceResolver) Course(id uint) (*models.Course, error) {
	var course models.Course
	if err := r.DB.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("course %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &course, nil
}

func (r *ReferenceResolver) Subject(id uint) (*models.Subject, error) {
	var subject models.Subject
	if err := r.DB.First(&subject, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("subject %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &subject, nil
}

// ActiveCourses returns every course currently flagged as offered.
func (r *ReferenceResolver) ActiveCourses() ([]models.Course, error) {
	var courses []models.Course
	if err := r.DB.Where("is_active = ?", true).Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

// EnrolledStudents returns the users with an active "enrolled" enrollment in
// the course.
func (r *ReferenceResolver) EnrolledStudents(courseID uint) ([]models.User, error) {
	var enrollments []models.Enrollment
	err := r.DB.Preload("Student").
		Where("course_id = ? AND status = ? AND is_active = ?", courseID, models.EnrollmentStatusEnrolled, true).
		Find(&enrollments).Error
	if err != nil {
		return nil, err
	}

	students := make([]models.User, 0, len(enrollments))
	for _, e := range enrollments {
		students = append(students, e.Student)
	}
	return students, nil
}
