package models

import (
	"time"
)

// GuardianUser 表示监护人账户（家属、护工等）
type GuardianUser struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(50);not null" json:"name"`
	Phone     string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	Avatar    string    `gorm:"type:varchar(255)" json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Relations []GuardianElderlyRelation `gorm:"foreignKey:GuardianID" json:"relations,omitempty"`
}
