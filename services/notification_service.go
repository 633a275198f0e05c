package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/prasetyawidi/attendance-app/models"
	"github.com/prasetyawidi/attendance-app/utils"
	"gorm.io/gorm"
)

// NotificationService owns the notification collection: creation, the
// recipient-scoped read/delete lifecycle, and the inbox listing. Batch
// reminder generation lives in reminder_generator.go on the same struct.
type NotificationService struct {
	db       *gorm.DB
	resolver *ReferenceResolver
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{
		db:       db,
		resolver: NewReferenceResolver(db),
	}
}

// hasActiveReminder reports whether an active daily reminder already exists
// for the (recipient, course, date) triple. Dates compare at day
// granularity. Advisory only; the dedup_key unique index is the hard
// guarantee.
func (s *NotificationService) hasActiveReminder(recipientID, courseID uint, date time.Time) (bool, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("type = ? AND recipient_id = ? AND course_id = ? AND date = ? AND is_active = ?",
			models.NotificationDailyReminder, recipientID, courseID, models.NormalizeDate(date), true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

type ListResult struct {
	Records   []models.Notification `json:"records"`
	Page      int                   `json:"page"`
	PageCount int                   `json:"page_count"`
	Total     int64                 `json:"total"`
}

// List returns one page of the caller's active notifications, newest first.
// Page and pageSize fall back to 1 and 10. typeFilter and isReadFilter are
// optional equality filters.
func (s *NotificationService) List(callerID uint, page, pageSize int, typeFilter string, isReadFilter *bool) (*ListResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	query := s.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_active = ?", callerID, true)
	if typeFilter != "" {
		query = query.Where("type = ?", typeFilter)
	}
	if isReadFilter != nil {
		query = query.Where("is_read = ?", *isReadFilter)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var records []models.Notification
	err := query.
		Preload("Course").Preload("Subject").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	pageCount := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &ListResult{
		Records:   records,
		Page:      page,
		PageCount: pageCount,
		Total:     total,
	}, nil
}

// findOwned fetches an active notification owned by the caller. Missing,
// soft-deleted and foreign records all come back as ErrNotFound.
func (s *NotificationService) findOwned(notificationID, callerID uint) (*models.Notification, error) {
	var notif models.Notification
	err := s.db.
		Where("id = ? AND recipient_id = ? AND is_active = ?", notificationID, callerID, true).
		First(&notif).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("notification %d: %w", notificationID, ErrNotFound)
		}
		return nil, err
	}
	return &notif, nil
}

// MarkRead sets is_read on one of the caller's notifications and stamps
// read_at. Calling it again on an already-read record refreshes read_at.
func (s *NotificationService) MarkRead(notificationID, callerID uint) (*models.Notification, error) {
	notif, err := s.findOwned(notificationID, callerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.db.Model(notif).Updates(map[string]interface{}{
		"is_read": true,
		"read_at": now,
	}).Error
	if err != nil {
		return nil, err
	}

	notif.IsRead = true
	notif.ReadAt = &now
	return notif, nil
}

// MarkAllRead marks every unread active notification of the caller as read
// in one bulk update and returns how many rows changed. Zero is a valid
// outcome.
func (s *NotificationService) MarkAllRead(callerID uint) (int64, error) {
	now := time.Now()
	result := s.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ? AND is_active = ?", callerID, false, true).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": now,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// SoftDelete deactivates one of the caller's notifications. The row stays
// for history but disappears from listings and dedup checks, so its dedup
// key is released.
func (s *NotificationService) SoftDelete(notificationID, callerID uint) error {
	notif, err := s.findOwned(notificationID, callerID)
	if err != nil {
		return err
	}

	err = s.db.Model(notif).Updates(map[string]interface{}{
		"is_active": false,
		"dedup_key": nil,
	}).Error
	if err != nil {
		return err
	}

	utils.InfoLogger.Printf("Notification %d soft-deleted by user %d", notificationID, callerID)
	return nil
}
