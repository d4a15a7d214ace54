package services

import (
	"errors"
	"fmt"
	"time"

	"elder-guardian-service/config"
	"elder-guardian-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InterfaceDeviceService defines the monitoring device service interface
type InterfaceDeviceService interface {
	GetAllDevices(page int, pageSize int) ([]models.MonitoringDevice, int64, error)
	GetDeviceByID(id uint) (*models.MonitoringDevice, error)
	GetDeviceByElderlyID(elderlyID uint) (*models.MonitoringDevice, error)
	CreateDevice(device *models.MonitoringDevice) error
	UpdateDevice(id uint, updates map[string]interface{}) (*models.MonitoringDevice, error)
	DeleteDevice(id uint) error
	AssignDevice(deviceID uint, elderlyID *uint) (*models.MonitoringDevice, error)
	ReportStatus(deviceID uint, batteryLevel int, isOnline bool) (*models.MonitoringDevice, error)
}

// DeviceService 提供监测设备相关的服务
type DeviceService struct {
	DB           *gorm.DB
	Config       *config.Config
	AlertService InterfaceAlertService
}

// NewDeviceService 创建一个新的设备服务
func NewDeviceService(db *gorm.DB, cfg *config.Config, alertService InterfaceAlertService) InterfaceDeviceService {
	return &DeviceService{
		DB:           db,
		Config:       cfg,
		AlertService: alertService,
	}
}

// 1 GetAllDevices 获取所有设备
func (s *DeviceService) GetAllDevices(page int, pageSize int) ([]models.MonitoringDevice, int64, error) {
	var devices []models.MonitoringDevice
	var total int64
	if err := s.DB.Model(&models.MonitoringDevice{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := s.DB.Preload("Elderly").Offset((page - 1) * pageSize).Limit(pageSize).Find(&devices).Error; err != nil {
		return nil, 0, err
	}
	return devices, total, nil
}

// 2 GetDeviceByID 根据ID获取设备
func (s *DeviceService) GetDeviceByID(id uint) (*models.MonitoringDevice, error) {
	var device models.MonitoringDevice
	if err := s.DB.Preload("Elderly").First(&device, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, err
	}
	return &device, nil
}

// 3 GetDeviceByElderlyID 获取老人当前绑定的设备，未绑定时返回 ErrDeviceNotFound
func (s *DeviceService) GetDeviceByElderlyID(elderlyID uint) (*models.MonitoringDevice, error) {
	var device models.MonitoringDevice
	if err := s.DB.Where("elderly_id = ?", elderlyID).First(&device).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, err
	}
	return &device, nil
}

// 4 CreateDevice 创建新设备，序列号为空时自动生成
func (s *DeviceService) CreateDevice(device *models.MonitoringDevice) error {
	if device.SerialNumber == "" {
		device.SerialNumber = fmt.Sprintf("EG-%s", uuid.New().String()[:8])
	}

	var count int64
	if err := s.DB.Model(&models.MonitoringDevice{}).
		Where("serial_number = ?", device.SerialNumber).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrSerialAlreadyUsed
	}

	return s.DB.Create(device).Error
}

// 5 UpdateDevice 更新设备信息
func (s *DeviceService) UpdateDevice(id uint, updates map[string]interface{}) (*models.MonitoringDevice, error) {
	device, err := s.GetDeviceByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(device).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetDeviceByID(id)
}

// 6 DeleteDevice 删除设备
func (s *DeviceService) DeleteDevice(id uint) error {
	device, err := s.GetDeviceByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(device).Error
}

// 7 AssignDevice 分配设备给老人，elderlyID 为 nil 时解绑
// 绑定是排他的：设备换绑会离开上一个老人，老人换设备会解绑旧设备
func (s *DeviceService) AssignDevice(deviceID uint, elderlyID *uint) (*models.MonitoringDevice, error) {
	device, err := s.GetDeviceByID(deviceID)
	if err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if elderlyID == nil {
			return tx.Model(device).
				Updates(map[string]interface{}{"elderly_id": nil, "bind_time": nil}).Error
		}

		var elderly models.ElderlyUser
		if err := tx.First(&elderly, *elderlyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrElderlyNotFound
			}
			return err
		}

		// 该老人原来绑定的其他设备先解绑
		if err := tx.Model(&models.MonitoringDevice{}).
			Where("elderly_id = ? AND id != ?", *elderlyID, deviceID).
			Updates(map[string]interface{}{"elderly_id": nil, "bind_time": nil}).Error; err != nil {
			return err
		}

		now := time.Now()
		return tx.Model(device).
			Updates(map[string]interface{}{"elderly_id": *elderlyID, "bind_time": now}).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetDeviceByID(deviceID)
}

// 8 ReportStatus 设备上报电量和在线状态
// 电量跌破阈值时生成低电量报警（已有未处理的低电量报警时不重复生成）
func (s *DeviceService) ReportStatus(deviceID uint, batteryLevel int, isOnline bool) (*models.MonitoringDevice, error) {
	device, err := s.GetDeviceByID(deviceID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"battery_level": batteryLevel,
		"is_online":     isOnline,
	}
	if isOnline {
		updates["last_online_time"] = now
	}
	if err := s.DB.Model(device).Updates(updates).Error; err != nil {
		return nil, err
	}

	threshold := 20
	if s.Config != nil && s.Config.LowBatteryThreshold > 0 {
		threshold = s.Config.LowBatteryThreshold
	}

	if batteryLevel < threshold && device.ElderlyID != nil && s.AlertService != nil {
		var pending int64
		if err := s.DB.Model(&models.AlertRecord{}).
			Where("elderly_id = ? AND type = ? AND status = ?",
				*device.ElderlyID, models.AlertTypeLowBatt, models.AlertStatusPending).
			Count(&pending).Error; err != nil {
			return nil, err
		}
		if pending == 0 {
			content := fmt.Sprintf("监测设备电量过低（%d%%）", batteryLevel)
			if _, err := s.AlertService.Raise(*device.ElderlyID, models.AlertTypeLowBatt,
				models.AlertLevelMedium, content, ""); err != nil {
				return nil, err
			}
		}
	}

	return s.GetDeviceByID(deviceID)
}
