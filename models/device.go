package models

import (
	"time"
)

// DeviceStatus represents the working status of a monitoring device
type DeviceStatus string

const (
	DeviceStatusNormal DeviceStatus = "normal"
	DeviceStatusFault  DeviceStatus = "fault"
)

// MonitoringDevice 表示老人佩戴的监测设备（手环、手表等）
// 一个老人同一时间最多绑定一台设备，重新分配时旧的绑定被解除
type MonitoringDevice struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	SerialNumber   string       `gorm:"type:varchar(50);uniqueIndex;not null" json:"serial_number"`
	Name           string       `gorm:"type:varchar(50);not null" json:"name"`
	Type           string       `gorm:"type:varchar(30)" json:"type"` // 如：手环、手表
	Brand          string       `gorm:"type:varchar(30)" json:"brand"`
	ElderlyID      *uint        `gorm:"index" json:"elderly_id"` // 所属老人ID，可以为空表示未绑定
	BatteryLevel   int          `gorm:"default:100" json:"battery_level"`
	Status         DeviceStatus `gorm:"type:varchar(20);default:'normal'" json:"status"`
	IsOnline       bool         `gorm:"default:false" json:"is_online"`
	LastOnlineTime *time.Time   `json:"last_online_time,omitempty"`
	BindTime       *time.Time   `json:"bind_time,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`

	// Relations
	Elderly *ElderlyUser `gorm:"foreignKey:ElderlyID" json:"elderly,omitempty"`
}
