package services

import "github.com/prasetyawidi/attendance-app/models"

// Attendance percentage below which a low-attendance alert escalates from
// high to urgent.
const urgentAttendanceThreshold = 50.0

// PriorityFor maps a notification type (and, for low-attendance alerts, the
// attendance percentage) to its priority. Every notification gets its
// priority here, once, at creation.
func PriorityFor(notifType string, attendancePct float64) string {
	switch notifType {
	case models.NotificationDailyReminder:
		return models.PriorityMedium
	case models.NotificationAttendanceMarked:
		return models.PriorityLow
	case models.NotificationLowAttendanceAlert:
		if attendancePct < urgentAttendanceThreshold {
			return models.PriorityUrgent
		}
		return models.PriorityHigh
	}
	return models.PriorityLow
}
