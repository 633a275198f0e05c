package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/prasetyawidi/attendance-app/models"
	"github.com/prasetyawidi/attendance-app/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GenerationFailure records one (course, student) unit that could not be
// processed. Failed units never abort their siblings.
type GenerationFailure struct {
	CourseID  uint   `json:"course_id"`
	StudentID uint   `json:"student_id,omitempty"`
	Reason    string `json:"reason"`
}

type GenerationResult struct {
	CreatedCount int                   `json:"created_count"`
	Created      []models.Notification `json:"created"`
	Failures     []GenerationFailure   `json:"failures,omitempty"`
}

// GenerateDailyReminders creates one daily reminder per (course, enrolled
// student) pair for the given date, skipping pairs that already have an
// active reminder. With a courseID only that course is processed, otherwise
// every active course. A subjectID tags the created reminders.
//
// The batch is not atomic: each pair is its own unit of failure, and a
// partially completed run is safe to repeat because generation is
// deduplicated per (recipient, course, date).
func (s *NotificationService) GenerateDailyReminders(date time.Time, courseID, subjectID *uint) (*GenerationResult, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("date is required: %w", ErrValidation)
	}
	date = models.NormalizeDate(date)

	var subject *models.Subject
	if subjectID != nil {
		var err error
		subject, err = s.resolver.Subject(*subjectID)
		if err != nil {
			return nil, err
		}
	}

	var courses []models.Course
	if courseID != nil {
		course, err := s.resolver.Course(*courseID)
		if err != nil {
			return nil, err
		}
		courses = []models.Course{*course}
	} else {
		var err error
		courses, err = s.resolver.ActiveCourses()
		if err != nil {
			return nil, err
		}
	}

	result := &GenerationResult{Created: []models.Notification{}}

	for _, course := range courses {
		students, err := s.resolver.EnrolledStudents(course.ID)
		if err != nil {
			utils.ErrorLogger.Printf("Reminder generation: roster lookup failed for course %d: %v", course.ID, err)
			result.Failures = append(result.Failures, GenerationFailure{
				CourseID: course.ID,
				Reason:   fmt.Sprintf("roster lookup failed: %v", err),
			})
			continue
		}

		for _, student := range students {
			notif, err := s.generateReminderUnit(course, student, subject, date)
			if err != nil {
				utils.ErrorLogger.Printf("Reminder generation: course %d student %d: %v", course.ID, student.ID, err)
				result.Failures = append(result.Failures, GenerationFailure{
					CourseID:  course.ID,
					StudentID: student.ID,
					Reason:    err.Error(),
				})
				continue
			}
			if notif != nil {
				result.Created = append(result.Created, *notif)
			}
		}
	}

	result.CreatedCount = len(result.Created)
	utils.InfoLogger.Printf("Daily reminders for %s: %d created, %d skipped or failed",
		date.Format("2006-01-02"), result.CreatedCount, len(result.Failures))
	return result, nil
}

// generateReminderUnit runs the check-then-create sequence for a single
// (course, student) pair. Returns (nil, nil) when the pair already has an
// active reminder, including the case where a concurrent batch wins the
// insert race and the dedup index rejects ours.
func (s *NotificationService) generateReminderUnit(course models.Course, student models.User, subject *models.Subject, date time.Time) (*models.Notification, error) {
	exists, err := s.hasActiveReminder(student.ID, course.ID, date)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, nil
	}

	metadata := datatypes.JSONMap{
		"courseCode":  course.Code,
		"courseTitle": course.Title,
	}
	if subject != nil {
		metadata["subjectName"] = subject.Name
		metadata["subjectCode"] = subject.Code
	}

	dedupKey := models.ReminderDedupKey(student.ID, course.ID, date)
	notif := models.Notification{
		Type:        models.NotificationDailyReminder,
		Title:       fmt.Sprintf("Attendance reminder: %s", course.Code),
		Message:     fmt.Sprintf("Don't forget to attend %s (%s) on %s.", course.Title, course.Code, date.Format("2006-01-02")),
		RecipientID: student.ID,
		CourseID:    course.ID,
		Date:        date,
		Priority:    PriorityFor(models.NotificationDailyReminder, 0),
		Metadata:    metadata,
		DedupKey:    &dedupKey,
	}
	if subject != nil {
		notif.SubjectID = &subject.ID
	}

	if err := s.db.Create(&notif).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil
		}
		return nil, err
	}
	return &notif, nil
}

// RecordAttendanceMarked creates a confirmation notification for the student
// whose attendance was just marked. Every marking event produces one; there
// is no dedup.
func (s *NotificationService) RecordAttendanceMarked(studentID, courseID uint, subjectID *uint, status string, date time.Time, markedByID uint) (*models.Notification, error) {
	if status == "" {
		return nil, fmt.Errorf("status is required: %w", ErrValidation)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("date is required: %w", ErrValidation)
	}

	student, err := s.resolver.User(studentID)
	if err != nil {
		return nil, err
	}
	course, err := s.resolver.Course(courseID)
	if err != nil {
		return nil, err
	}
	marker, err := s.resolver.User(markedByID)
	if err != nil {
		return nil, err
	}

	notif := models.Notification{
		Type:        models.NotificationAttendanceMarked,
		Title:       fmt.Sprintf("Attendance recorded: %s", course.Code),
		Message:     fmt.Sprintf("Your attendance for %s was marked as %s by %s.", course.Code, status, marker.Name),
		RecipientID: student.ID,
		CourseID:    course.ID,
		SubjectID:   subjectID,
		Date:        models.NormalizeDate(date),
		Priority:    PriorityFor(models.NotificationAttendanceMarked, 0),
		Metadata: datatypes.JSONMap{
			"status":      status,
			"markedBy":    marker.Name,
			"courseCode":  course.Code,
			"courseTitle": course.Title,
		},
	}

	if err := s.db.Create(&notif).Error; err != nil {
		return nil, err
	}
	return &notif, nil
}

// RecordLowAttendanceAlert warns a student that their attendance in a course
// fell to the given percentage. Below 50 the alert is urgent, otherwise
// high.
func (s *NotificationService) RecordLowAttendanceAlert(studentID, courseID uint, attendancePercentage float64) (*models.Notification, error) {
	student, err := s.resolver.User(studentID)
	if err != nil {
		return nil, err
	}
	course, err := s.resolver.Course(courseID)
	if err != nil {
		return nil, err
	}

	notif := models.Notification{
		Type:        models.NotificationLowAttendanceAlert,
		Title:       fmt.Sprintf("Low attendance in %s", course.Code),
		Message:     fmt.Sprintf("Your attendance in %s (%s) has dropped to %.0f%%.", course.Title, course.Code, attendancePercentage),
		RecipientID: student.ID,
		CourseID:    course.ID,
		Date:        models.NormalizeDate(time.Now()),
		Priority:    PriorityFor(models.NotificationLowAttendanceAlert, attendancePercentage),
		Metadata: datatypes.JSONMap{
			"attendancePercentage": attendancePercentage,
			"courseCode":           course.Code,
			"courseTitle":          course.Title,
		},
	}

	if err := s.db.Create(&notif).Error; err != nil {
		return nil, err
	}
	return &notif, nil
}
