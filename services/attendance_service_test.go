package services

import (
	"errors"
	"testing"
	"time"

	"github.com/prasetyawidi/attendance-app/models"
	"github.com/stretchr/testify/assert"
)

func TestMarkAttendanceCreatesConfirmation(t *testing.T) {
	db, f := setupTestDB(t)
	svc := NewAttendanceService(db)

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	record, err := svc.MarkAttendance(f.StudentA.ID, f.Course.ID, nil, models.AttendanceStatusPresent, date, f.Lecturer.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.AttendanceStatusPresent, record.Status)

	var notifs []models.Notification
	assert.NoError(t, db.Where("recipient_id = ? AND type = ?",
		f.StudentA.ID, models.NotificationAttendanceMarked).Find(&notifs).Error)
	assert.Len(t, notifs, 1)
}

func TestMarkAttendanceInvalidStatus(t *testing.T) {
	db, f := setupTestDB(t)
	svc := NewAttendanceService(db)

	_, err := svc.MarkAttendance(f.StudentA.ID, f.Course.ID, nil, "vacationing", time.Now(), f.Lecturer.ID)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestMarkAttendanceMissingStudent(t *testing.T) {
	db, f := setupTestDB(t)
	svc := NewAttendanceService(db)

	_, err := svc.MarkAttendance(9999, f.Course.ID, nil, models.AttendanceStatusPresent, time.Now(), f.Lecturer.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	var count int64
	db.Model(&models.AttendanceRecord{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAttendancePercentage(t *testing.T) {
	db, f := setupTestDB(t)
	svc := NewAttendanceService(db)

	// No records yet: treated as full attendance.
	pct, err := svc.AttendancePercentage(f.StudentA.ID, f.Course.ID)
	assert.NoError(t, err)
	assert.Equal(t, float64(100), pct)

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	statuses := []string{
		models.AttendanceStatusPresent,
		models.AttendanceStatusLate,
		models.AttendanceStatusAbsent,
		models.AttendanceStatusAbsent,
	}
	for i, status := range statuses {
		_, err := svc.MarkAttendance(f.StudentA.ID, f.Course.ID, nil, status, base.AddDate(0, 0, i), f.Lecturer.ID)
		assert.NoError(t, err)
	}

	// present + late = 2 of 4.
	pct, err = svc.AttendancePercentage(f.StudentA.ID, f.Course.ID)
	assert.NoError(t, err)
	assert.Equal(t, float64(50), pct)
}

func TestLowAttendanceAlertFires(t *testing.T) {
	db, f := setupTestDB(t)
	svc := NewAttendanceService(db)

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	// First session absent: 0% attendance, well under the threshold.
	_, err := svc.MarkAttendance(f.StudentA.ID, f.Course.ID, nil, models.AttendanceStatusAbsent, base, f.Lecturer.ID)
	assert.NoError(t, err)

	var alerts []models.Notification
	assert.NoError(t, db.Where("recipient_id = ? AND type = ?",
		f.StudentA.ID, models.NotificationLowAttendanceAlert).Find(&alerts).Error)
	if assert.Len(t, alerts, 1) {
		assert.Equal(t, models.PriorityUrgent, alerts[0].Priority)
	}
}

func TestNoAlertAboveThreshold(t *testing.T) {
	db, f := setupTestDB(t)
	svc := NewAttendanceService(db)

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		_, err := svc.MarkAttendance(f.StudentA.ID, f.Course.ID, nil, models.AttendanceStatusPresent, base.AddDate(0, 0, i), f.Lecturer.ID)
		assert.NoError(t, err)
	}

	var count int64
	db.Model(&models.Notification{}).
		Where("type = ?", models.NotificationLowAttendanceAlert).
		Count(&count)
	assert.Equal(t, int64(0), count)
}
