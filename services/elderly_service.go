package services

import (
	"errors"

	"elder-guardian-service/config"
	"elder-guardian-service/models"

	"gorm.io/gorm"
)

// InterfaceElderlyService defines the elderly profile service interface
type InterfaceElderlyService interface {
	GetAllElderly(page int, pageSize int) ([]models.ElderlyUser, int64, error)
	GetElderlyByID(id uint) (*models.ElderlyUser, error)
	GetElderlyByPhone(phone string) (*models.ElderlyUser, error)
	CreateElderly(elderly *models.ElderlyUser) error
	UpdateElderly(id uint, updates map[string]interface{}) (*models.ElderlyUser, error)
	DeleteElderly(id uint) error
}

// ElderlyService 提供老人档案相关的服务
type ElderlyService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewElderlyService 创建一个新的老人档案服务
func NewElderlyService(db *gorm.DB, cfg *config.Config) InterfaceElderlyService {
	return &ElderlyService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllElderly 获取所有老人档案
func (s *ElderlyService) GetAllElderly(page int, pageSize int) ([]models.ElderlyUser, int64, error) {
	var elderly []models.ElderlyUser
	var total int64
	if err := s.DB.Model(&models.ElderlyUser{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := s.DB.Preload("Device").Offset((page - 1) * pageSize).Limit(pageSize).Find(&elderly).Error; err != nil {
		return nil, 0, err
	}
	return elderly, total, nil
}

// 2 GetElderlyByID 根据ID获取老人档案
func (s *ElderlyService) GetElderlyByID(id uint) (*models.ElderlyUser, error) {
	var elderly models.ElderlyUser
	if err := s.DB.Preload("Device").First(&elderly, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrElderlyNotFound
		}
		return nil, err
	}
	return &elderly, nil
}

// 3 GetElderlyByPhone 根据手机号获取老人档案（绑定和登录用）
func (s *ElderlyService) GetElderlyByPhone(phone string) (*models.ElderlyUser, error) {
	var elderly models.ElderlyUser
	if err := s.DB.Where("phone = ?", phone).First(&elderly).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhoneNotRegistered
		}
		return nil, err
	}
	return &elderly, nil
}

// 4 CreateElderly 创建新的老人档案
func (s *ElderlyService) CreateElderly(elderly *models.ElderlyUser) error {
	// 验证手机号唯一性
	var count int64
	if err := s.DB.Model(&models.ElderlyUser{}).Where("phone = ?", elderly.Phone).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrPhoneAlreadyUsed
	}

	return s.DB.Create(elderly).Error
}

// 5 UpdateElderly 更新老人档案
func (s *ElderlyService) UpdateElderly(id uint, updates map[string]interface{}) (*models.ElderlyUser, error) {
	elderly, err := s.GetElderlyByID(id)
	if err != nil {
		return nil, err
	}

	// 如果更新手机号，需要检查唯一性
	if phone, ok := updates["phone"].(string); ok && phone != elderly.Phone {
		var count int64
		if err := s.DB.Model(&models.ElderlyUser{}).Where("phone = ? AND id != ?", phone, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrPhoneAlreadyUsed
		}
	}

	if err := s.DB.Model(elderly).Updates(updates).Error; err != nil {
		return nil, err
	}

	// 重新获取更新后的档案
	return s.GetElderlyByID(id)
}

// 6 DeleteElderly 删除老人档案，级联删除监护关系并解绑设备
func (s *ElderlyService) DeleteElderly(id uint) error {
	elderly, err := s.GetElderlyByID(id)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		// 删除监护关系
		if err := tx.Where("elderly_id = ?", id).Delete(&models.GuardianElderlyRelation{}).Error; err != nil {
			return err
		}
		// 解绑监测设备
		if err := tx.Model(&models.MonitoringDevice{}).Where("elderly_id = ?", id).
			Updates(map[string]interface{}{"elderly_id": nil, "bind_time": nil}).Error; err != nil {
			return err
		}
		return tx.Delete(elderly).Error
	})
}
