package models

import (
	"time"
)

// AlertType 报警类型
type AlertType string

const (
	AlertTypeFall      AlertType = "FALL"
	AlertTypeSOS       AlertType = "SOS"
	AlertTypeGeofence  AlertType = "GEOFENCE"
	AlertTypeLowBatt   AlertType = "BATTERY_LOW"
	AlertTypeHeartRate AlertType = "HEART_RATE_ABNORMAL"
)

// AlertTypeLabels 报警类型对应的中文名称
var AlertTypeLabels = map[AlertType]string{
	AlertTypeFall:      "跌倒报警",
	AlertTypeSOS:       "紧急呼叫",
	AlertTypeGeofence:  "电子围栏",
	AlertTypeLowBatt:   "低电量",
	AlertTypeHeartRate: "心率异常",
}

// AlertLevel 报警级别: 1:低, 2:中, 3:高
type AlertLevel int

const (
	AlertLevelLow    AlertLevel = 1
	AlertLevelMedium AlertLevel = 2
	AlertLevelHigh   AlertLevel = 3
)

// AlertStatus 报警处理状态，只允许单向流转: 0:未处理 -> 1:已确认 -> 2:已解决
type AlertStatus int

const (
	AlertStatusPending   AlertStatus = 0
	AlertStatusConfirmed AlertStatus = 1
	AlertStatusResolved  AlertStatus = 2
)

// AlertRecord 报警记录
type AlertRecord struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	ElderlyID    uint        `gorm:"not null;index" json:"elderly_id"`
	Type         AlertType   `gorm:"type:varchar(30);not null" json:"type"`
	Level        AlertLevel  `gorm:"default:1" json:"level"`
	Content      string      `gorm:"type:varchar(200)" json:"content"`
	LocationDesc string      `gorm:"type:varchar(200)" json:"location_desc"`
	Status       AlertStatus `gorm:"default:0;index" json:"status"`
	AlertTime    time.Time   `gorm:"index" json:"alert_time"`
	ConfirmedBy  string      `gorm:"type:varchar(50)" json:"confirmed_by,omitempty"`
	ConfirmedAt  *time.Time  `json:"confirmed_at,omitempty"`
	ResolvedBy   string      `gorm:"type:varchar(50)" json:"resolved_by,omitempty"`
	ResolvedAt   *time.Time  `json:"resolved_at,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`

	// 关联
	Elderly *ElderlyUser `gorm:"foreignKey:ElderlyID" json:"elderly,omitempty"`
}
