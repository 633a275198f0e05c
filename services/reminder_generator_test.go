package services

import (
	"errors"
	"testing"
	"time"

	"github.com/prasetyawidi/attendance-app/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestGenerateDailyRemindersForCourse(t *testing.T) {
	db, f := setupTestDB(t)
	svc := NewNotificationService(db)

	date := time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC) // time-of-day must not matter

	result, err := svc.GenerateDailyReminders(date, &f.Course.ID, nil)
	assert.NoError(t, err)
	assert.Equal(t, 2, result.CreatedCount)
	assert.Empty(t, result.Failures)

	recipients := map[uint]bool{}
	for _, notif := range result.Created {
		assert.Equal(t, models.NotificationDailyReminder, notif.Type)
		assert.Equal(t, models.PriorityMedium, notif.Priority)
		assert.Equal(t, f.Course.ID, notif.CourseID)
		assert.Equal(t, "CS101", notif.Metadata["courseCode"])
		recipients[notif.RecipientID] = true
	}
	assert.True(t, recipients[f.StudentA.ID])
	assert.True(t, recipients[f.StudentB.ID])

	// Same date again, later in the day: nothing new.
	rerun, err := svc.GenerateDailyReminders(date.Add(5*time.Hour), &f.Course.ID, nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, rerun.CreatedCount)
	assert.Empty(t, rerun.Failures)

	var total int64
	db.Model(&models.Notification{}).
		Where("type = ?", models.NotificationDailyReminder).
		Count(&total)
	assert.Equal(t, int64(2), total)
}

func TestGenerateDailyRemindersAllActiveCourses(t *testing.T) {
	db, f := setupTestDB(t)
	svc := NewNotificationService(db)

	inactive := models.Course{Code: "CS900", Title: "Retired Course", IsActive: false}
	assert.NoError(t, db.Create(&inactive).Error)
	assert.NoError(t, db.Create(&models.Enrollment{
		StudentID: f.StudentA.ID,
		CourseID:  inactive.ID,
		Status:    models.EnrollmentStatusEnrolled,
		IsActive:  true,
	}).Error)

	// Student B drops the active course.
	assert.NoError(t, db.Model(&models.Enrollment{}).
		Where("student_id = ? AND course_id = ?", f.StudentB.ID, f.Course.ID).
		Update("status", models.EnrollmentStatusDropped).Error)

	result, err := svc.GenerateDailyReminders(time.Now(), nil, nil)
	assert.NoError(t, err)

	// Only student A in the active course qualifies.
	assert.Equal(t, 1, result.CreatedCount)
	assert.Equal(t, f.StudentA.ID, result.Created[0].RecipientID)
	assert.Equal(t, f.Course.ID, result.Created[0].CourseID)
}

func TestGenerateDailyRemindersValidation(t *testing.T) {
	db, _ := setupTestDB(t)
	svc := NewNotificationService(db)

	_, err := svc.GenerateDailyReminders(time.Time{}, nil, nil)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestGenerateDailyRemindersUnknownCourse(t *testing.T) {
	db, _ := setupTestDB(t)
	svc := NewNotificationService(db)

	missing := uint(9999)
	_, err := svc.GenerateDailyReminders(time.Now(), &missing, nil)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestGenerateAfterSoftDeleteRegenerates(t *testing.T) {
	db, f := setupTestDB(t)
	svc := NewNotificationService(db)

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	result, err := svc.GenerateDailyReminders(date, &f.Course.ID, nil)
	assert.NoError(t, err)
	assert.Equal(t, 2, result.CreatedCount)

	var mine models.Notification
	assert.NoError(t, db.Where("recipient_id = ?", f.StudentA.ID).First(&mine).Error)
	assert.NoError(t, svc.SoftDelete(mine.ID, f.StudentA.ID))

	// The deleted reminder's slot is free again; student B's is not.
	rerun, err := svc.GenerateDailyReminders(date, &f.Course.ID, nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, rerun.CreatedCount)
	assert.Equal(t, f.StudentA.ID, rerun.Created[0].RecipientID)
}

func TestGenerateDailyRemindersSubjectTag(t *testing.T) {
	db, f := setupTestDB(t)
	svc := NewNotificationService(db)

	result, err := svc.GenerateDailyReminders(time.Now(), &f.Course.ID, &f.Subject.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, result.CreatedCount)
	for _, notif := range result.Created {
		if assert.NotNil(t, notif.SubjectID) {
			assert.Equal(t, f.Subject.ID, *notif.SubjectID)
		}
		assert.Equal(t, "Algorithms", notif.Metadata["subjectName"])
	}
}

func TestRecordAttendanceMarked(t *testing.T) {
	db, f := setupTestDB(t)
	svc := NewNotificationService(db)

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	notif, err := svc.RecordAttendanceMarked(f.StudentA.ID, f.Course.ID, nil, models.AttendanceStatusPresent, date, f.Lecturer.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.NotificationAttendanceMarked, notif.Type)
	assert.Equal(t, models.PriorityLow, notif.Priority)
	assert.Equal(t, f.StudentA.ID, notif.RecipientID)
	assert.Contains(t, notif.Message, "CS101")
	assert.Contains(t, notif.Message, "Dr. Sari")
	assert.Equal(t, models.AttendanceStatusPresent, notif.Metadata["status"])
	assert.Equal(t, "Dr. Sari", notif.Metadata["markedBy"])

	// Every marking event produces a notification, no dedup.
	again, err := svc.RecordAttendanceMarked(f.StudentA.ID, f.Course.ID, nil, models.AttendanceStatusPresent, date, f.Lecturer.ID)
	assert.NoError(t, err)
	assert.NotEqual(t, notif.ID, again.ID)
}

func TestRecordAttendanceMarkedMissingReference(t *testing.T) {
	db, f := setupTestDB(t)
	svc := NewNotificationService(db)

	date := time.Now()
	_, err := svc.RecordAttendanceMarked(9999, f.Course.ID, nil, models.AttendanceStatusPresent, date, f.Lecturer.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = svc.RecordAttendanceMarked(f.StudentA.ID, 9999, nil, models.AttendanceStatusPresent, date, f.Lecturer.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = svc.RecordAttendanceMarked(f.StudentA.ID, f.Course.ID, nil, models.AttendanceStatusPresent, date, 9999)
	assert.True(t, errors.Is(err, ErrNotFound))

	// Nothing was written.
	var count int64
	db.Model(&models.Notification{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestGenerateDailyRemindersUnitFailureIsolation(t *testing.T) {
	db, f := setupTestDB(t)
	svc := NewNotificationService(db)

	// Reject the insert for student B only. Student A's reminder must still
	// land and the failure must be recorded instead of aborting the batch.
	err := db.Callback().Create().Before("gorm:create").Register("reject_one_recipient", func(tx *gorm.DB) {
		if notif, ok := tx.Statement.Dest.(*models.Notification); ok && notif.RecipientID == f.StudentB.ID {
			tx.AddError(errors.New("storage rejected insert"))
		}
	})
	assert.NoError(t, err)

	result, err := svc.GenerateDailyReminders(time.Now(), &f.Course.ID, nil)
	assert.NoError(t, err)

	assert.Equal(t, 1, result.CreatedCount)
	assert.Equal(t, f.StudentA.ID, result.Created[0].RecipientID)

	assert.Len(t, result.Failures, 1)
	assert.Equal(t, f.Course.ID, result.Failures[0].CourseID)
	assert.Equal(t, f.StudentB.ID, result.Failures[0].StudentID)
	assert.Contains(t, result.Failures[0].Reason, "storage rejected insert")

	var stored int64
	db.Model(&models.Notification{}).
		Where("type = ? AND is_active = ?", models.NotificationDailyReminder, true).
		Count(&stored)
	assert.Equal(t, int64(1), stored)
}

func TestGenerateDailyRemindersRosterFailureIsolation(t *testing.T) {
	db, f := setupTestDB(t)
	svc := NewNotificationService(db)

	broken := models.Course{Code: "CS202", Title: "Data Structures", IsActive: true}
	assert.NoError(t, db.Create(&broken).Error)
	assert.NoError(t, db.Create(&models.Enrollment{
		StudentID: f.StudentA.ID,
		CourseID:  broken.ID,
		Status:    models.EnrollmentStatusEnrolled,
		IsActive:  true,
	}).Error)

	// Fail the roster lookup for the second course after the query ran, so
	// that course's whole unit reports a failure while the first course is
	// processed normally.
	err := db.Callback().Query().After("gorm:query").Register("break_one_roster", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Dest.(*[]models.Enrollment); !ok {
			return
		}
		for _, v := range tx.Statement.Vars {
			if id, ok := v.(uint); ok && id == broken.ID {
				tx.AddError(errors.New("roster unavailable"))
			}
		}
	})
	assert.NoError(t, err)

	result, err := svc.GenerateDailyReminders(time.Now(), nil, nil)
	assert.NoError(t, err)

	// Both students of the healthy course still got their reminders.
	assert.Equal(t, 2, result.CreatedCount)
	for _, notif := range result.Created {
		assert.Equal(t, f.Course.ID, notif.CourseID)
	}

	assert.Len(t, result.Failures, 1)
	assert.Equal(t, broken.ID, result.Failures[0].CourseID)
	assert.Zero(t, result.Failures[0].StudentID)
	assert.Contains(t, result.Failures[0].Reason, "roster unavailable")
}

func TestRecordLowAttendanceAlert(t *testing.T) {
	db, f := setupTestDB(t)
	svc := NewNotificationService(db)

	urgent, err := svc.RecordLowAttendanceAlert(f.StudentA.ID, f.Course.ID, 42)
	assert.NoError(t, err)
	assert.Equal(t, models.NotificationLowAttendanceAlert, urgent.Type)
	assert.Equal(t, models.PriorityUrgent, urgent.Priority)
	assert.Equal(t, float64(42), urgent.Metadata["attendancePercentage"])
	assert.Contains(t, urgent.Message, "42%")

	high, err := svc.RecordLowAttendanceAlert(f.StudentA.ID, f.Course.ID, 65)
	assert.NoError(t, err)
	assert.Equal(t, models.PriorityHigh, high.Priority)

	_, err = svc.RecordLowAttendanceAlert(f.StudentA.ID, 9999, 42)
	assert.True(t, errors.Is(err, ErrNotFound))
}
