package services

import (
	"testing"

	"github.com/prasetyawidi/attendance-app/models"
	"github.com/stretchr/testify/assert"
)

func TestPriorityFor(t *testing.T) {
	tests := []struct {
		name      string
		notifType string
		pct       float64
		want      string
	}{
		{"daily reminder is medium", models.NotificationDailyReminder, 0, models.PriorityMedium},
		{"attendance marked is low", models.NotificationAttendanceMarked, 0, models.PriorityLow},
		{"alert below 50 is urgent", models.NotificationLowAttendanceAlert, 49, models.PriorityUrgent},
		{"alert at 50 is high", models.NotificationLowAttendanceAlert, 50, models.PriorityHigh},
		{"alert above 50 is high", models.NotificationLowAttendanceAlert, 74.9, models.PriorityHigh},
		{"alert at zero is urgent", models.NotificationLowAttendanceAlert, 0, models.PriorityUrgent},
		{"unknown type falls back to low", "something_else", 0, models.PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PriorityFor(tt.notifType, tt.pct))
		})
	}
}
