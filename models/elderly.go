package models

import (
	"time"
)

// HealthStatus 老人健康状况: 1:良好, 2:一般, 3:较差
type HealthStatus int

const (
	HealthStatusGood   HealthStatus = 1
	HealthStatusNormal HealthStatus = 2
	HealthStatusPoor   HealthStatus = 3
)

// ElderlyUser 表示被监护的老人档案
type ElderlyUser struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	Name           string       `gorm:"type:varchar(50);not null" json:"name"`
	Gender         string       `gorm:"type:varchar(10)" json:"gender"` // 男 / 女
	Phone          string       `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	EmergencyPhone string       `gorm:"type:varchar(20)" json:"emergency_phone"`
	Address        string       `gorm:"type:varchar(200)" json:"address"`
	HealthStatus   HealthStatus `gorm:"default:1" json:"health_status"`
	Height         float64      `json:"height"` // cm
	Weight         float64      `json:"weight"` // kg
	Avatar         string       `gorm:"type:varchar(255)" json:"avatar,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`

	// Relations
	Device          *MonitoringDevice         `gorm:"foreignKey:ElderlyID" json:"device,omitempty"`
	Relations       []GuardianElderlyRelation `gorm:"foreignKey:ElderlyID" json:"relations,omitempty"`
	ActivityRecords []ActivityRecord          `gorm:"foreignKey:ElderlyID" json:"activity_records,omitempty"`
	LocationRecords []LocationRecord          `gorm:"foreignKey:ElderlyID" json:"location_records,omitempty"`
	AlertRecords    []AlertRecord             `gorm:"foreignKey:ElderlyID" json:"alert_records,omitempty"`
}
