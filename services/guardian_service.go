package services

import (
	"errors"

	"elder-guardian-service/config"
	"elder-guardian-service/models"

	"gorm.io/gorm"
)

// InterfaceGuardianService defines the guardian account service interface
type InterfaceGuardianService interface {
	GetAllGuardians(page int, pageSize int) ([]models.GuardianUser, int64, error)
	GetGuardianByID(id uint) (*models.GuardianUser, error)
	GetGuardianByPhone(phone string) (*models.GuardianUser, error)
	CreateGuardian(guardian *models.GuardianUser) error
	UpdateGuardian(id uint, updates map[string]interface{}) (*models.GuardianUser, error)
	DeleteGuardian(id uint) error
}

// GuardianService 提供监护人账户相关的服务
type GuardianService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewGuardianService 创建一个新的监护人服务
func NewGuardianService(db *gorm.DB, cfg *config.Config) InterfaceGuardianService {
	return &GuardianService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllGuardians 获取所有监护人
func (s *GuardianService) GetAllGuardians(page int, pageSize int) ([]models.GuardianUser, int64, error) {
	var guardians []models.GuardianUser
	var total int64
	if err := s.DB.Model(&models.GuardianUser{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := s.DB.Offset((page - 1) * pageSize).Limit(pageSize).Find(&guardians).Error; err != nil {
		return nil, 0, err
	}
	return guardians, total, nil
}

// 2 GetGuardianByID 根据ID获取监护人
func (s *GuardianService) GetGuardianByID(id uint) (*models.GuardianUser, error) {
	var guardian models.GuardianUser
	if err := s.DB.First(&guardian, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuardianNotFound
		}
		return nil, err
	}
	return &guardian, nil
}

// 3 GetGuardianByPhone 根据手机号获取监护人（绑定和登录用）
func (s *GuardianService) GetGuardianByPhone(phone string) (*models.GuardianUser, error) {
	var guardian models.GuardianUser
	if err := s.DB.Where("phone = ?", phone).First(&guardian).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhoneNotRegistered
		}
		return nil, err
	}
	return &guardian, nil
}

// 4 CreateGuardian 创建新监护人
func (s *GuardianService) CreateGuardian(guardian *models.GuardianUser) error {
	// 验证手机号唯一性
	var count int64
	if err := s.DB.Model(&models.GuardianUser{}).Where("phone = ?", guardian.Phone).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrPhoneAlreadyUsed
	}

	return s.DB.Create(guardian).Error
}

// 5 UpdateGuardian 更新监护人信息
func (s *GuardianService) UpdateGuardian(id uint, updates map[string]interface{}) (*models.GuardianUser, error) {
	guardian, err := s.GetGuardianByID(id)
	if err != nil {
		return nil, err
	}

	// 如果更新手机号，需要检查唯一性
	if phone, ok := updates["phone"].(string); ok && phone != guardian.Phone {
		var count int64
		if err := s.DB.Model(&models.GuardianUser{}).Where("phone = ? AND id != ?", phone, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrPhoneAlreadyUsed
		}
	}

	if err := s.DB.Model(guardian).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetGuardianByID(id)
}

// 6 DeleteGuardian 删除监护人，级联删除其监护关系
func (s *GuardianService) DeleteGuardian(id uint) error {
	guardian, err := s.GetGuardianByID(id)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("guardian_id = ?", id).Delete(&models.GuardianElderlyRelation{}).Error; err != nil {
			return err
		}
		return tx.Delete(guardian).Error
	})
}
