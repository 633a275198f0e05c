package models

import "time"

type Course struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Code       string    `gorm:"type:varchar(20);unique;not null" json:"code"`
	Title      string    `gorm:"type:varchar(255);not null" json:"title"`
	LecturerID *uint     `gorm:"index" json:"lecturer_id,omitempty"`
	Lecturer   *User     `gorm:"foreignKey:LecturerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"lecturer,omitempty"`
	RoomID     *uint     `gorm:"index" json:"room_id,omitempty"`
	Room       *Room     `gorm:"foreignKey:RoomID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"room,omitempty"`
	IsActive   bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}
