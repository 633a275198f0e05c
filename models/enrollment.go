package models

import "time"

const (
	EnrollmentStatusEnrolled = "enrolled"
	EnrollmentStatusDropped  = "dropped"
)

type Enrollment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"not null;index" json:"student_id"`
	Student   User      `gorm:"foreignKey:StudentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"student"`
	CourseID  uint      `gorm:"not null;index" json:"course_id"`
	Course    Course    `gorm:"foreignKey:CourseID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"course"`
	Status    string    `gorm:"type:varchar(15);not null;default:'enrolled'" json:"status"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
