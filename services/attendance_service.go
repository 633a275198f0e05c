package services

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/prasetyawidi/attendance-app/models"
	"github.com/prasetyawidi/attendance-app/utils"
	"gorm.io/gorm"
)

const defaultLowAttendanceThreshold = 75.0

// AttendanceService persists attendance records and drives the notification
// engine: every marking produces a confirmation notification, and a student
// whose course percentage drops below the threshold gets an alert.
type AttendanceService struct {
	db            *gorm.DB
	notifications *NotificationService
	resolver      *ReferenceResolver
	threshold     float64
}

func NewAttendanceService(db *gorm.DB) *AttendanceService {
	threshold := defaultLowAttendanceThreshold
	if raw := os.Getenv("LOW_ATTENDANCE_THRESHOLD"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			threshold = parsed
		}
	}
	return &AttendanceService{
		db:            db,
		notifications: NewNotificationService(db),
		resolver:      NewReferenceResolver(db),
		threshold:     threshold,
	}
}

// MarkAttendance records one attendance event and returns the stored record.
// The confirmation notification and any low-attendance alert are best
// effort: a notification failure is logged, not surfaced, since the
// attendance record itself is already durable.
func (s *AttendanceService) MarkAttendance(studentID, courseID uint, subjectID *uint, status string, date time.Time, markedByID uint) (*models.AttendanceRecord, error) {
	switch status {
	case models.AttendanceStatusPresent, models.AttendanceStatusAbsent,
		models.AttendanceStatusLate, models.AttendanceStatusExcused:
	default:
		return nil, fmt.Errorf("unknown attendance status %q: %w", status, ErrValidation)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("date is required: %w", ErrValidation)
	}

	if _, err := s.resolver.User(studentID); err != nil {
		return nil, err
	}
	if _, err := s.resolver.Course(courseID); err != nil {
		return nil, err
	}
	if _, err := s.resolver.User(markedByID); err != nil {
		return nil, err
	}

	record := models.AttendanceRecord{
		StudentID:  studentID,
		CourseID:   courseID,
		SubjectID:  subjectID,
		Date:       models.NormalizeDate(date),
		Status:     status,
		MarkedByID: markedByID,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, err
	}

	if _, err := s.notifications.RecordAttendanceMarked(studentID, courseID, subjectID, status, date, markedByID); err != nil {
		utils.ErrorLogger.Printf("Attendance confirmation notification failed for student %d: %v", studentID, err)
	}

	s.checkLowAttendance(studentID, courseID)

	return &record, nil
}

// AttendancePercentage computes the share of sessions the student attended
// (present or late) out of all recorded sessions for the course.
func (s *AttendanceService) AttendancePercentage(studentID, courseID uint) (float64, error) {
	var total, attended int64

	base := s.db.Model(&models.AttendanceRecord{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID)
	if err := base.Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 100, nil
	}

	err := s.db.Model(&models.AttendanceRecord{}).
		Where("student_id = ? AND course_id = ? AND status IN ?",
			studentID, courseID, []string{models.AttendanceStatusPresent, models.AttendanceStatusLate}).
		Count(&attended).Error
	if err != nil {
		return 0, err
	}

	return float64(attended) / float64(total) * 100, nil
}

func (s *AttendanceService) checkLowAttendance(studentID, courseID uint) {
	pct, err := s.AttendancePercentage(studentID, courseID)
	if err != nil {
		utils.ErrorLogger.Printf("Attendance percentage lookup failed for student %d course %d: %v", studentID, courseID, err)
		return
	}
	if pct >= s.threshold {
		return
	}

	if _, err := s.notifications.RecordLowAttendanceAlert(studentID, courseID, pct); err != nil {
		utils.ErrorLogger.Printf("Low attendance alert failed for student %d course %d: %v", studentID, courseID, err)
	}
}
