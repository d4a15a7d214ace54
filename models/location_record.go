package models

import (
	"time"
)

// LocationRecord GPS定位记录，只追加不修改
// 当前位置取每个老人最新的一条
type LocationRecord struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ElderlyID    uint      `gorm:"not null;index" json:"elderly_id"`
	Latitude     float64   `gorm:"not null" json:"latitude"`
	Longitude    float64   `gorm:"not null" json:"longitude"`
	LocationDesc string    `gorm:"type:varchar(200)" json:"location_desc"`
	UploadTime   time.Time `gorm:"index" json:"upload_time"`

	// 关联
	Elderly *ElderlyUser `gorm:"foreignKey:ElderlyID" json:"elderly,omitempty"`
}

// UnknownLocation 没有定位数据时使用的占位描述
const UnknownLocation = "未知位置"
