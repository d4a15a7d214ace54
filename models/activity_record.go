package models

import (
	"time"
)

// ActivityState 活动状态枚举
type ActivityState string

const (
	ActivityFallen     ActivityState = "fallen"
	ActivityStill      ActivityState = "still"
	ActivitySitting    ActivityState = "sitting"
	ActivityStanding   ActivityState = "standing"
	ActivityWalking    ActivityState = "walking"
	ActivityJogging    ActivityState = "jogging"
	ActivityRunning    ActivityState = "running"
	ActivityUpstairs   ActivityState = "upstairs"
	ActivityDownstairs ActivityState = "downstairs"
	ActivityUnknown    ActivityState = "unknown"
)

// ActivityLabels 活动状态对应的中文名称
var ActivityLabels = map[ActivityState]string{
	ActivityFallen:     "跌倒",
	ActivityStill:      "静止",
	ActivitySitting:    "坐下",
	ActivityStanding:   "站立",
	ActivityWalking:    "正常行走",
	ActivityJogging:    "慢跑",
	ActivityRunning:    "快跑",
	ActivityUpstairs:   "上楼",
	ActivityDownstairs: "下楼",
	ActivityUnknown:    "未知",
}

// Label 返回状态的中文名称
func (s ActivityState) Label() string {
	if label, ok := ActivityLabels[s]; ok {
		return label
	}
	return ActivityLabels[ActivityUnknown]
}

// IsDangerous 跌倒状态视为危险状态
func (s ActivityState) IsDangerous() bool {
	return s == ActivityFallen
}

// ActivityRecord 活动状态记录，按时间点追加
// 结束时间在写入时为空，读取时以下一条记录的开始时间推算时长
type ActivityRecord struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	ElderlyID   uint          `gorm:"not null;index" json:"elderly_id"`
	State       ActivityState `gorm:"type:varchar(20);not null" json:"state"`
	StateName   string        `gorm:"type:varchar(20)" json:"state_name"`
	IsDangerous bool          `gorm:"default:false" json:"is_dangerous"`
	StartTime   time.Time     `gorm:"index" json:"start_time"`
	EndTime     *time.Time    `json:"end_time,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`

	// 关联
	Elderly *ElderlyUser `gorm:"foreignKey:ElderlyID" json:"elderly,omitempty"`
}
