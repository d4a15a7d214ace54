package services

import (
	"errors"
	"time"

	"elder-guardian-service/config"
	"elder-guardian-service/models"

	"gorm.io/gorm"
)

// InterfaceAlertService defines the alert log service interface
type InterfaceAlertService interface {
	Raise(elderlyID uint, alertType models.AlertType, level models.AlertLevel, content, locationDesc string) (*models.AlertRecord, error)
	RaiseFallAlert(elderlyID uint) (*models.AlertRecord, error)
	RaiseSosAlert(elderlyID uint) (*models.AlertRecord, error)
	Confirm(alertID uint, byWhom string) (*models.AlertRecord, error)
	Resolve(alertID uint, byWhom string) (*models.AlertRecord, error)
	GetAlertByID(alertID uint) (*models.AlertRecord, error)
	ListForGuardian(guardianID uint, elderlyID *uint, date string) ([]models.AlertRecord, error)
	ListAll(elderlyID *uint, date string) ([]models.AlertRecord, error)
}

// AlertService 报警记录服务
// 状态只允许单向流转：未处理 -> 已确认 -> 已解决
type AlertService struct {
	DB              *gorm.DB
	Config          *config.Config
	ActivityService InterfaceActivityService
	RedisService    InterfaceRedisService
}

// NewAlertService 创建一个新的报警服务
func NewAlertService(db *gorm.DB, cfg *config.Config, activityService InterfaceActivityService, redisService InterfaceRedisService) InterfaceAlertService {
	return &AlertService{
		DB:              db,
		Config:          cfg,
		ActivityService: activityService,
		RedisService:    redisService,
	}
}

// 1 Raise 生成一条报警记录，除入库外没有其他副作用（通知投递不在本服务范围内）
func (s *AlertService) Raise(elderlyID uint, alertType models.AlertType, level models.AlertLevel, content, locationDesc string) (*models.AlertRecord, error) {
	var elderly models.ElderlyUser
	if err := s.DB.First(&elderly, elderlyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrElderlyNotFound
		}
		return nil, err
	}

	if locationDesc == "" {
		locationDesc = models.UnknownLocation
	}

	alert := &models.AlertRecord{
		ElderlyID:    elderlyID,
		Type:         alertType,
		Level:        level,
		Content:      content,
		LocationDesc: locationDesc,
		Status:       models.AlertStatusPending,
		AlertTime:    time.Now(),
	}
	if err := s.DB.Create(alert).Error; err != nil {
		return nil, err
	}

	// 仪表盘计数缓存失效
	if s.RedisService != nil {
		if err := s.RedisService.InvalidateDashboardStats(); err != nil {
			config.Warning("使仪表盘缓存失效失败: %v", err)
		}
	}

	return alert, nil
}

// latestLocationDesc 取老人最新定位的描述，没有时返回"未知位置"
func (s *AlertService) latestLocationDesc(elderlyID uint) string {
	if s.ActivityService == nil {
		return models.UnknownLocation
	}
	location, err := s.ActivityService.LatestLocation(elderlyID)
	if err != nil || location == nil {
		return models.UnknownLocation
	}
	return location.LocationDesc
}

// 2 RaiseFallAlert 跌倒报警，级别固定为高，位置取最新定位
func (s *AlertService) RaiseFallAlert(elderlyID uint) (*models.AlertRecord, error) {
	return s.Raise(elderlyID, models.AlertTypeFall, models.AlertLevelHigh,
		"检测到老人跌倒", s.latestLocationDesc(elderlyID))
}

// 3 RaiseSosAlert SOS求救报警，级别固定为高，位置取最新定位
func (s *AlertService) RaiseSosAlert(elderlyID uint) (*models.AlertRecord, error) {
	return s.Raise(elderlyID, models.AlertTypeSOS, models.AlertLevelHigh,
		"老人发起SOS求救", s.latestLocationDesc(elderlyID))
}

// 4 GetAlertByID 根据ID获取报警记录
func (s *AlertService) GetAlertByID(alertID uint) (*models.AlertRecord, error) {
	var alert models.AlertRecord
	if err := s.DB.Preload("Elderly").First(&alert, alertID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, err
	}
	return &alert, nil
}

// 5 Confirm 确认报警，只允许从未处理状态确认
func (s *AlertService) Confirm(alertID uint, byWhom string) (*models.AlertRecord, error) {
	var alert models.AlertRecord

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&alert, alertID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAlertNotFound
			}
			return err
		}
		if alert.Status != models.AlertStatusPending {
			return ErrInvalidTransition
		}

		now := time.Now()
		return tx.Model(&alert).Updates(map[string]interface{}{
			"status":       models.AlertStatusConfirmed,
			"confirmed_by": byWhom,
			"confirmed_at": now,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	if s.RedisService != nil {
		if err := s.RedisService.InvalidateDashboardStats(); err != nil {
			config.Warning("使仪表盘缓存失效失败: %v", err)
		}
	}
	return s.GetAlertByID(alertID)
}

// 6 Resolve 解决报警，只允许从已确认状态解决；已解决为终态
func (s *AlertService) Resolve(alertID uint, byWhom string) (*models.AlertRecord, error) {
	var alert models.AlertRecord

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&alert, alertID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAlertNotFound
			}
			return err
		}
		if alert.Status != models.AlertStatusConfirmed {
			return ErrInvalidTransition
		}

		now := time.Now()
		return tx.Model(&alert).Updates(map[string]interface{}{
			"status":      models.AlertStatusResolved,
			"resolved_by": byWhom,
			"resolved_at": now,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	if s.RedisService != nil {
		if err := s.RedisService.InvalidateDashboardStats(); err != nil {
			config.Warning("使仪表盘缓存失效失败: %v", err)
		}
	}
	return s.GetAlertByID(alertID)
}

// dayRange 把 YYYY-MM-DD 转成当天的起止时间
func dayRange(date string) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return day, day.Add(24*time.Hour - time.Second), nil
}

// 7 ListForGuardian 查询监护人名下老人的报警，支持按老人和日期过滤，按时间降序
func (s *AlertService) ListForGuardian(guardianID uint, elderlyID *uint, date string) ([]models.AlertRecord, error) {
	query := s.DB.Preload("Elderly").
		Joins("JOIN guardian_elderly_relations r ON r.elderly_id = alert_records.elderly_id").
		Where("r.guardian_id = ?", guardianID)

	if elderlyID != nil {
		query = query.Where("alert_records.elderly_id = ?", *elderlyID)
	}
	if date != "" {
		start, end, err := dayRange(date)
		if err != nil {
			return nil, err
		}
		query = query.Where("alert_records.alert_time BETWEEN ? AND ?", start, end)
	}

	var alerts []models.AlertRecord
	if err := query.Order("alert_records.alert_time DESC, alert_records.id DESC").
		Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// 8 ListAll 管理后台查询全部报警，支持同样的过滤条件
func (s *AlertService) ListAll(elderlyID *uint, date string) ([]models.AlertRecord, error) {
	query := s.DB.Preload("Elderly").Model(&models.AlertRecord{})

	if elderlyID != nil {
		query = query.Where("elderly_id = ?", *elderlyID)
	}
	if date != "" {
		start, end, err := dayRange(date)
		if err != nil {
			return nil, err
		}
		query = query.Where("alert_time BETWEEN ? AND ?", start, end)
	}

	var alerts []models.AlertRecord
	if err := query.Order("alert_time DESC, id DESC").Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}
