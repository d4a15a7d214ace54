package services

import (
	"errors"

	"elder-guardian-service/config"
	"elder-guardian-service/models"

	"gorm.io/gorm"
)

// InterfaceAdminService defines the admin account service interface
type InterfaceAdminService interface {
	Authenticate(username, password string) (*models.Admin, error)
	GetAdminByID(id uint) (*models.Admin, error)
	EnsureDefaultAdmin() error
}

// AdminService 后台管理员账户服务
type AdminService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewAdminService 创建一个新的管理员服务
func NewAdminService(db *gorm.DB, cfg *config.Config) InterfaceAdminService {
	return &AdminService{
		DB:     db,
		Config: cfg,
	}
}

// 1 Authenticate 校验管理员用户名和密码
func (s *AdminService) Authenticate(username, password string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.DB.Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}

	if !models.CheckPasswordHash(password, admin.Password) {
		return nil, ErrPasswordIncorrect
	}
	return &admin, nil
}

// 2 GetAdminByID 根据ID获取管理员
func (s *AdminService) GetAdminByID(id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := s.DB.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// 3 EnsureDefaultAdmin 系统启动时确保存在一个管理员账户
func (s *AdminService) EnsureDefaultAdmin() error {
	var count int64
	if err := s.DB.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := &models.Admin{
		Username: "admin",
		Password: s.Config.DefaultAdminPassword,
		Name:     "系统管理员",
	}
	return s.DB.Create(admin).Error
}
