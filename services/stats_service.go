package services

import (
	"errors"
	"time"

	"elder-guardian-service/config"
	"elder-guardian-service/models"

	"gorm.io/gorm"
)

// 历史统计支持的时间范围
const (
	RangeYesterday = "yesterday"
	RangeWeek      = "week"
	RangeMonth     = "month"
)

// ElderlyStatus 单个老人的当前综合状态
// 读侧聚合：缺老人、缺设备、缺记录都返回零值而不是错误
type ElderlyStatus struct {
	ElderlyID      uint                 `json:"elderly_id"`
	DeviceID       uint                 `json:"device_id,omitempty"`
	ActivityState  models.ActivityState `json:"activity_state"`
	ActivityLabel  string               `json:"activity_label"`
	IsFall         bool                 `json:"is_fall"`
	Latitude       float64              `json:"latitude"`
	Longitude      float64              `json:"longitude"`
	LocationDesc   string               `json:"location_desc"`
	BatteryLevel   int                  `json:"battery_level"`
	IsOnline       bool                 `json:"is_online"`
	LastReportTime *time.Time           `json:"last_report_time,omitempty"`
}

// DashboardStats 管理后台仪表盘计数
type DashboardStats struct {
	TotalElderly  int64 `json:"totalElderly"`
	ActiveDevices int64 `json:"activeDevices"`
	TodayAlerts   int64 `json:"todayAlerts"`
	PendingAlerts int64 `json:"pendingAlerts"`
}

// StatusSlice 历史统计中单个状态的占比
type StatusSlice struct {
	Name    string `json:"name"`
	Minutes int    `json:"value"` // 该状态累计时长（分钟）
}

// HistoryStats 某老人一段时间内的汇总
type HistoryStats struct {
	TotalAlerts        int64                `json:"totalAlerts"`
	StatusDistribution []StatusSlice        `json:"statusDistribution"`
	Alerts             []models.AlertRecord `json:"alerts"`
}

// InterfaceStatsService defines the read-side aggregation interface
type InterfaceStatsService interface {
	CurrentStatusFor(elderlyID uint) (*ElderlyStatus, error)
	AllStatuses() (map[uint]*ElderlyStatus, error)
	DashboardSummary() (*DashboardStats, error)
	HistorySummary(elderlyID uint, rangeName string) (*HistoryStats, error)
	ResolveRange(rangeName string) (time.Time, time.Time)
}

// StatsService 读侧聚合查询
type StatsService struct {
	DB              *gorm.DB
	Config          *config.Config
	ActivityService InterfaceActivityService
	AlertService    InterfaceAlertService
	RedisService    InterfaceRedisService
}

// NewStatsService 创建一个新的统计服务
func NewStatsService(db *gorm.DB, cfg *config.Config, activityService InterfaceActivityService, alertService InterfaceAlertService, redisService InterfaceRedisService) InterfaceStatsService {
	return &StatsService{
		DB:              db,
		Config:          cfg,
		ActivityService: activityService,
		AlertService:    alertService,
		RedisService:    redisService,
	}
}

// 1 CurrentStatusFor 聚合最新活动、最新定位和设备状态
func (s *StatsService) CurrentStatusFor(elderlyID uint) (*ElderlyStatus, error) {
	status := &ElderlyStatus{
		ElderlyID:     elderlyID,
		ActivityState: models.ActivityUnknown,
		ActivityLabel: models.ActivityUnknown.Label(),
		LocationDesc:  models.UnknownLocation,
	}

	activity, err := s.ActivityService.LatestActivity(elderlyID)
	if err != nil {
		return nil, err
	}
	if activity != nil {
		status.ActivityState = activity.State
		status.ActivityLabel = activity.StateName
		status.IsFall = activity.State == models.ActivityFallen
		status.LastReportTime = &activity.StartTime
	}

	location, err := s.ActivityService.LatestLocation(elderlyID)
	if err != nil {
		return nil, err
	}
	if location != nil {
		status.Latitude = location.Latitude
		status.Longitude = location.Longitude
		status.LocationDesc = location.LocationDesc
	}

	var device models.MonitoringDevice
	err = s.DB.Where("elderly_id = ?", elderlyID).First(&device).Error
	if err == nil {
		status.DeviceID = device.ID
		status.BatteryLevel = device.BatteryLevel
		status.IsOnline = device.IsOnline
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return status, nil
}

// 2 AllStatuses 所有老人的当前状态，管理后台轮询用
func (s *StatsService) AllStatuses() (map[uint]*ElderlyStatus, error) {
	var elderly []models.ElderlyUser
	if err := s.DB.Select("id").Find(&elderly).Error; err != nil {
		return nil, err
	}

	statuses := make(map[uint]*ElderlyStatus, len(elderly))
	for _, e := range elderly {
		status, err := s.CurrentStatusFor(e.ID)
		if err != nil {
			return nil, err
		}
		statuses[e.ID] = status
	}
	return statuses, nil
}

// 3 DashboardSummary 仪表盘计数，短暂缓存在Redis里避免轮询打穿数据库
func (s *StatsService) DashboardSummary() (*DashboardStats, error) {
	if s.RedisService != nil {
		var cached DashboardStats
		if err := s.RedisService.GetDashboardStats(&cached); err == nil {
			return &cached, nil
		}
	}

	stats := &DashboardStats{}
	if err := s.DB.Model(&models.ElderlyUser{}).Count(&stats.TotalElderly).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.MonitoringDevice{}).
		Where("is_online = ?", true).Count(&stats.ActiveDevices).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := s.DB.Model(&models.AlertRecord{}).
		Where("alert_time >= ?", todayStart).Count(&stats.TodayAlerts).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.AlertRecord{}).
		Where("status = ?", models.AlertStatusPending).Count(&stats.PendingAlerts).Error; err != nil {
		return nil, err
	}

	if s.RedisService != nil {
		if err := s.RedisService.CacheDashboardStats(stats, 10*time.Second); err != nil {
			config.Warning("缓存仪表盘统计失败: %v", err)
		}
	}
	return stats, nil
}

// ResolveRange 把枚举的范围名转成具体时间窗口
// yesterday: 昨天整天; week: 最近7天; month: 最近30天; 其他值按最近7天处理
func (s *StatsService) ResolveRange(rangeName string) (time.Time, time.Time) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch rangeName {
	case RangeYesterday:
		return todayStart.AddDate(0, 0, -1), todayStart.Add(-time.Second)
	case RangeMonth:
		return todayStart.AddDate(0, 0, -30), now
	case RangeWeek:
		fallthrough
	default:
		return todayStart.AddDate(0, 0, -7), now
	}
}

// 4 HistorySummary 一段时间内的报警汇总和活动状态时长分布
// 空窗口返回零值结果，不报错
func (s *StatsService) HistorySummary(elderlyID uint, rangeName string) (*HistoryStats, error) {
	start, end := s.ResolveRange(rangeName)

	var alerts []models.AlertRecord
	if err := s.DB.Where("elderly_id = ? AND alert_time BETWEEN ? AND ?", elderlyID, start, end).
		Order("alert_time DESC").Find(&alerts).Error; err != nil {
		return nil, err
	}

	items, err := s.ActivityService.QueryActivityRange(elderlyID, start, end)
	if err != nil {
		return nil, err
	}

	// 按状态累计分钟数，保持首次出现的顺序
	minutes := make(map[string]int)
	var order []string
	for _, item := range items {
		name := item.StateName
		if _, seen := minutes[name]; !seen {
			order = append(order, name)
		}
		minutes[name] += int(item.EndTime.Sub(item.StartTime).Minutes())
	}

	distribution := make([]StatusSlice, 0, len(order))
	for _, name := range order {
		distribution = append(distribution, StatusSlice{Name: name, Minutes: minutes[name]})
	}

	return &HistoryStats{
		TotalAlerts:        int64(len(alerts)),
		StatusDistribution: distribution,
		Alerts:             alerts,
	}, nil
}
