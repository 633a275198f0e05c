package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

const (
	NotificationDailyReminder      = "daily_reminder"
	NotificationAttendanceMarked   = "attendance_marked"
	NotificationLowAttendanceAlert = "low_attendance_alert"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

type Notification struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Type        string            `gorm:"type:varchar(30);not null;index" json:"type"`
	Title       string            `gorm:"type:varchar(255);not null" json:"title"`
	Message     string            `gorm:"type:text;not null" json:"message"`
	RecipientID uint              `gorm:"not null;index" json:"recipient_id"`
	Recipient   User              `gorm:"foreignKey:RecipientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	CourseID    uint              `gorm:"not null;index" json:"course_id"`
	Course      Course            `gorm:"foreignKey:CourseID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"course"`
	SubjectID   *uint             `gorm:"index" json:"subject_id,omitempty"`
	Subject     *Subject          `gorm:"foreignKey:SubjectID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"subject,omitempty"`
	Date        time.Time         `gorm:"not null" json:"date"`
	Priority    string            `gorm:"type:varchar(10);not null" json:"priority"`
	Metadata    datatypes.JSONMap `json:"metadata"`
	IsRead      bool              `gorm:"not null;default:false;index" json:"is_read"`
	ReadAt      *time.Time        `json:"read_at,omitempty"`
	IsActive    bool              `gorm:"not null;default:true;index" json:"is_active"`
	// DedupKey is set only on active daily reminders and cleared on soft
	// delete, so the unique index enforces at most one active reminder per
	// (recipient, course, date).
	DedupKey  *string   `gorm:"type:varchar(100);uniqueIndex" json:"-"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// NormalizeDate truncates a timestamp to day granularity. Reminders are
// deduplicated per calendar date, not per instant.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ReminderDedupKey builds the uniqueness key for an active daily reminder.
func ReminderDedupKey(recipientID, courseID uint, date time.Time) string {
	d := NormalizeDate(date)
	return fmt.Sprintf("%s:%d:%d:%s", NotificationDailyReminder, recipientID, courseID, d.Format("2006-01-02"))
}
