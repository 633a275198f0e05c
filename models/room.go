package models

import "time"

type Room struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Number    string    `gorm:"type:varchar(20);not null;unique" json:"number"`
	Building  string    `gorm:"type:varchar(100)" json:"building"`
	Capacity  int       `json:"capacity"`
	Status    string    `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
