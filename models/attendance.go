package models

import "time"

const (
	AttendanceStatusPresent = "present"
	AttendanceStatusAbsent  = "absent"
	AttendanceStatusLate    = "late"
	AttendanceStatusExcused = "excused"
)

type AttendanceRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	StudentID  uint      `gorm:"not null;index" json:"student_id"`
	Student    User      `gorm:"foreignKey:StudentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"student"`
	CourseID   uint      `gorm:"not null;index" json:"course_id"`
	Course     Course    `gorm:"foreignKey:CourseID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"course"`
	SubjectID  *uint     `gorm:"index" json:"subject_id,omitempty"`
	Subject    *Subject  `gorm:"foreignKey:SubjectID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"subject,omitempty"`
	Date       time.Time `gorm:"not null;index" json:"date"`
	Status     string    `gorm:"type:varchar(15);not null" json:"status"`
	MarkedByID uint      `gorm:"not null" json:"marked_by_id"`
	MarkedBy   User      `gorm:"foreignKey:MarkedByID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"marked_by"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}
